package repository

import (
	"github.com/auca/lostandfound-backend/internal/app/model"
	"github.com/auca/lostandfound-backend/pkg/logger"
	"gorm.io/gorm"
)

type MatchRepository interface {
	Create(match *model.Match) error
	FindByID(id uint) (*model.Match, error)
	FindAll() ([]model.Match, error)
	FindAllOpenWithDetails() ([]model.Match, error)
	// UpdateStatusIfOpen transitions the match in a single conditional
	// statement. Returns false when the row was not OPEN anymore, which
	// makes the OPEN -> terminal transition exactly-once under concurrent
	// callers.
	UpdateStatusIfOpen(id uint, status model.ItemStatus) (bool, error)
	SearchByItemName(query string) ([]model.Match, error)
}

type matchRepository struct {
	db *gorm.DB
}

func NewMatchRepository(db *gorm.DB) MatchRepository {
	return &matchRepository{db: db}
}

func (r *matchRepository) Create(match *model.Match) error {
	if err := r.db.Create(match).Error; err != nil {
		logger.Error("Failed to create match in database", err, map[string]interface{}{
			"lost_item_id":  match.LostItemID,
			"found_item_id": match.FoundItemID,
		})
		return err
	}

	logger.Debug("Match created in database", map[string]interface{}{
		"match_id": match.ID,
		"status":   match.Status,
	})
	return nil
}

func (r *matchRepository) FindByID(id uint) (*model.Match, error) {
	var match model.Match
	err := r.db.
		Preload("LostItem").
		Preload("FoundItem").
		Preload("MatchedBy").
		First(&match, id).Error
	if err != nil {
		return nil, err
	}
	return &match, nil
}

func (r *matchRepository) FindAll() ([]model.Match, error) {
	var matches []model.Match
	err := r.db.
		Preload("LostItem").
		Preload("FoundItem").
		Find(&matches).Error
	if err != nil {
		return nil, err
	}
	return matches, nil
}

func (r *matchRepository) FindAllOpenWithDetails() ([]model.Match, error) {
	var matches []model.Match
	err := r.db.
		Preload("LostItem").
		Preload("FoundItem").
		Preload("MatchedBy").
		Where("status = ?", model.StatusOpen).
		Find(&matches).Error
	if err != nil {
		return nil, err
	}
	return matches, nil
}

func (r *matchRepository) SearchByItemName(query string) ([]model.Match, error) {
	var matches []model.Match
	pattern := "%" + query + "%"
	err := r.db.
		Preload("LostItem").
		Preload("FoundItem").
		Joins("LEFT JOIN lost_items ON lost_items.id = matches.lost_item_id").
		Joins("LEFT JOIN found_items ON found_items.id = matches.found_item_id").
		Where("LOWER(lost_items.item_name) LIKE LOWER(?) OR LOWER(found_items.item_name) LIKE LOWER(?)", pattern, pattern).
		Find(&matches).Error
	if err != nil {
		return nil, err
	}
	return matches, nil
}

func (r *matchRepository) UpdateStatusIfOpen(id uint, status model.ItemStatus) (bool, error) {
	result := r.db.Model(&model.Match{}).
		Where("id = ? AND status = ?", id, model.StatusOpen).
		Update("status", status)
	if result.Error != nil {
		logger.Error("Failed to update match status in database", result.Error, map[string]interface{}{
			"match_id": id,
			"status":   status,
		})
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
