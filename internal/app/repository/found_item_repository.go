package repository

import (
	"github.com/auca/lostandfound-backend/internal/app/model"
	"github.com/auca/lostandfound-backend/pkg/logger"
	"gorm.io/gorm"
)

type FoundItemRepository interface {
	Create(item *model.FoundItem) error
	FindByID(id uint) (*model.FoundItem, error)
	FindAll() ([]model.FoundItem, error)
	FindByStatus(status model.ItemStatus) ([]model.FoundItem, error)
	FindByCategoryID(categoryID uint) ([]model.FoundItem, error)
	Update(item *model.FoundItem) error
	UpdateStatus(id uint, status model.ItemStatus) error
	Delete(id uint) error
	SearchByNameOrLocation(query string) ([]model.FoundItem, error)
}

type foundItemRepository struct {
	db *gorm.DB
}

func NewFoundItemRepository(db *gorm.DB) FoundItemRepository {
	return &foundItemRepository{db: db}
}

func (r *foundItemRepository) Create(item *model.FoundItem) error {
	if err := r.db.Create(item).Error; err != nil {
		logger.Error("Failed to create found item in database", err, map[string]interface{}{
			"item_name": item.ItemName,
		})
		return err
	}

	logger.Debug("Found item created in database", map[string]interface{}{
		"found_item_id": item.ID,
		"item_name":     item.ItemName,
	})
	return nil
}

func (r *foundItemRepository) FindByID(id uint) (*model.FoundItem, error) {
	var item model.FoundItem
	err := r.db.
		Preload("Category").
		Preload("VerificationDetails").
		First(&item, id).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *foundItemRepository) FindAll() ([]model.FoundItem, error) {
	var items []model.FoundItem
	err := r.db.
		Preload("Category").
		Preload("VerificationDetails").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *foundItemRepository) FindByStatus(status model.ItemStatus) ([]model.FoundItem, error) {
	var items []model.FoundItem
	err := r.db.
		Preload("Category").
		Where("status = ?", status).
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *foundItemRepository) FindByCategoryID(categoryID uint) ([]model.FoundItem, error) {
	var items []model.FoundItem
	err := r.db.
		Preload("Category").
		Where("category_id = ?", categoryID).
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *foundItemRepository) Update(item *model.FoundItem) error {
	if err := r.db.Save(item).Error; err != nil {
		logger.Error("Failed to update found item in database", err, map[string]interface{}{
			"found_item_id": item.ID,
		})
		return err
	}
	return nil
}

func (r *foundItemRepository) UpdateStatus(id uint, status model.ItemStatus) error {
	err := r.db.Model(&model.FoundItem{}).
		Where("id = ?", id).
		Update("status", status).Error
	if err != nil {
		logger.Error("Failed to update found item status in database", err, map[string]interface{}{
			"found_item_id": id,
			"status":        status,
		})
		return err
	}
	return nil
}

func (r *foundItemRepository) Delete(id uint) error {
	if err := r.db.Delete(&model.FoundItem{}, id).Error; err != nil {
		logger.Error("Failed to delete found item from database", err, map[string]interface{}{
			"found_item_id": id,
		})
		return err
	}
	return nil
}

func (r *foundItemRepository) SearchByNameOrLocation(query string) ([]model.FoundItem, error) {
	var items []model.FoundItem
	pattern := "%" + query + "%"
	err := r.db.
		Where("LOWER(item_name) LIKE LOWER(?) OR LOWER(found_location) LIKE LOWER(?)", pattern, pattern).
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}
