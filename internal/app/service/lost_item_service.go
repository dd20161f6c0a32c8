package service

import (
	"errors"

	"github.com/auca/lostandfound-backend/internal/app/model"
	"github.com/auca/lostandfound-backend/internal/app/repository"
	"github.com/auca/lostandfound-backend/pkg/logger"
	"gorm.io/gorm"
)

var ErrLostItemNotFound = errors.New("lost item not found")

type LostItemService interface {
	GetAll() ([]model.LostItem, error)
	GetByID(id uint) (*model.LostItem, error)
	Create(item *model.LostItem) (*model.LostItem, error)
	Update(id uint, details *model.LostItem) (*model.LostItem, error)
	Delete(id uint) error
}

type lostItemService struct {
	lostRepo repository.LostItemRepository
}

func NewLostItemService(lostRepo repository.LostItemRepository) LostItemService {
	return &lostItemService{lostRepo: lostRepo}
}

func (s *lostItemService) GetAll() ([]model.LostItem, error) {
	return s.lostRepo.FindAll()
}

func (s *lostItemService) GetByID(id uint) (*model.LostItem, error) {
	item, err := s.lostRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLostItemNotFound
		}
		return nil, err
	}
	return item, nil
}

func (s *lostItemService) Create(item *model.LostItem) (*model.LostItem, error) {
	if item.Status == "" {
		item.Status = model.StatusAvailable
	}
	if err := s.lostRepo.Create(item); err != nil {
		return nil, err
	}

	logger.Info("Lost item reported", map[string]interface{}{
		"lost_item_id": item.ID,
		"item_name":    item.ItemName,
	})
	return s.lostRepo.FindByID(item.ID)
}

func (s *lostItemService) Update(id uint, details *model.LostItem) (*model.LostItem, error) {
	item, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	item.ItemName = details.ItemName
	item.Description = details.Description
	item.LostLocation = details.LostLocation
	item.LostDate = details.LostDate
	if details.Status != "" {
		item.Status = details.Status
	}
	item.CategoryID = details.CategoryID
	if details.VerificationDetails != nil {
		item.VerificationDetails = details.VerificationDetails
	}

	if err := s.lostRepo.Update(item); err != nil {
		return nil, err
	}
	return s.lostRepo.FindByID(id)
}

func (s *lostItemService) Delete(id uint) error {
	if _, err := s.GetByID(id); err != nil {
		return err
	}
	return s.lostRepo.Delete(id)
}
