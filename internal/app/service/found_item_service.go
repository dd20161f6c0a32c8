package service

import (
	"errors"

	"github.com/auca/lostandfound-backend/internal/app/model"
	"github.com/auca/lostandfound-backend/internal/app/repository"
	"github.com/auca/lostandfound-backend/pkg/logger"
	"gorm.io/gorm"
)

var ErrFoundItemNotFound = errors.New("found item not found")

type FoundItemService interface {
	GetAll() ([]model.FoundItem, error)
	GetByID(id uint) (*model.FoundItem, error)
	GetByStatus(status model.ItemStatus) ([]model.FoundItem, error)
	GetByCategory(categoryID uint) ([]model.FoundItem, error)
	Create(item *model.FoundItem) (*model.FoundItem, error)
	Update(id uint, details *model.FoundItem) (*model.FoundItem, error)
	Delete(id uint) error
}

type foundItemService struct {
	foundRepo repository.FoundItemRepository
}

func NewFoundItemService(foundRepo repository.FoundItemRepository) FoundItemService {
	return &foundItemService{foundRepo: foundRepo}
}

func (s *foundItemService) GetAll() ([]model.FoundItem, error) {
	return s.foundRepo.FindAll()
}

func (s *foundItemService) GetByID(id uint) (*model.FoundItem, error) {
	item, err := s.foundRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFoundItemNotFound
		}
		return nil, err
	}
	return item, nil
}

func (s *foundItemService) GetByStatus(status model.ItemStatus) ([]model.FoundItem, error) {
	return s.foundRepo.FindByStatus(status)
}

func (s *foundItemService) GetByCategory(categoryID uint) ([]model.FoundItem, error) {
	return s.foundRepo.FindByCategoryID(categoryID)
}

func (s *foundItemService) Create(item *model.FoundItem) (*model.FoundItem, error) {
	if item.Status == "" {
		item.Status = model.StatusAvailable
	}
	if err := s.foundRepo.Create(item); err != nil {
		return nil, err
	}

	logger.Info("Found item reported", map[string]interface{}{
		"found_item_id": item.ID,
		"item_name":     item.ItemName,
	})
	return s.foundRepo.FindByID(item.ID)
}

func (s *foundItemService) Update(id uint, details *model.FoundItem) (*model.FoundItem, error) {
	item, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	item.ItemName = details.ItemName
	item.Description = details.Description
	item.FoundLocation = details.FoundLocation
	item.FoundDate = details.FoundDate
	if details.Status != "" {
		item.Status = details.Status
	}
	item.CategoryID = details.CategoryID
	if details.VerificationDetails != nil {
		item.VerificationDetails = details.VerificationDetails
	}

	if err := s.foundRepo.Update(item); err != nil {
		return nil, err
	}
	return s.foundRepo.FindByID(id)
}

func (s *foundItemService) Delete(id uint) error {
	if _, err := s.GetByID(id); err != nil {
		return err
	}
	return s.foundRepo.Delete(id)
}
