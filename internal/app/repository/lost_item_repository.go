package repository

import (
	"github.com/auca/lostandfound-backend/internal/app/model"
	"github.com/auca/lostandfound-backend/pkg/logger"
	"gorm.io/gorm"
)

type LostItemRepository interface {
	Create(item *model.LostItem) error
	FindByID(id uint) (*model.LostItem, error)
	FindAll() ([]model.LostItem, error)
	Update(item *model.LostItem) error
	Delete(id uint) error
	SearchByNameOrDescription(query string) ([]model.LostItem, error)
}

type lostItemRepository struct {
	db *gorm.DB
}

func NewLostItemRepository(db *gorm.DB) LostItemRepository {
	return &lostItemRepository{db: db}
}

func (r *lostItemRepository) Create(item *model.LostItem) error {
	if err := r.db.Create(item).Error; err != nil {
		logger.Error("Failed to create lost item in database", err, map[string]interface{}{
			"item_name": item.ItemName,
		})
		return err
	}

	logger.Debug("Lost item created in database", map[string]interface{}{
		"lost_item_id": item.ID,
		"item_name":    item.ItemName,
	})
	return nil
}

func (r *lostItemRepository) FindByID(id uint) (*model.LostItem, error) {
	var item model.LostItem
	err := r.db.
		Preload("Category").
		Preload("VerificationDetails").
		First(&item, id).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *lostItemRepository) FindAll() ([]model.LostItem, error) {
	var items []model.LostItem
	err := r.db.
		Preload("Category").
		Preload("VerificationDetails").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *lostItemRepository) Update(item *model.LostItem) error {
	if err := r.db.Save(item).Error; err != nil {
		logger.Error("Failed to update lost item in database", err, map[string]interface{}{
			"lost_item_id": item.ID,
		})
		return err
	}
	return nil
}

func (r *lostItemRepository) Delete(id uint) error {
	if err := r.db.Delete(&model.LostItem{}, id).Error; err != nil {
		logger.Error("Failed to delete lost item from database", err, map[string]interface{}{
			"lost_item_id": id,
		})
		return err
	}
	return nil
}

func (r *lostItemRepository) SearchByNameOrDescription(query string) ([]model.LostItem, error) {
	var items []model.LostItem
	pattern := "%" + query + "%"
	err := r.db.
		Where("LOWER(item_name) LIKE LOWER(?) OR LOWER(description) LIKE LOWER(?)", pattern, pattern).
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}
