package service

import (
	"errors"
	"time"

	"github.com/auca/lostandfound-backend/internal/app/model"
	"github.com/auca/lostandfound-backend/internal/app/repository"
	"github.com/auca/lostandfound-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrMatchNotFound     = errors.New("match not found")
	ErrMissingReference  = errors.New("lost item and found item are required")
	ErrInvalidReferences = errors.New("match has invalid item references")
	ErrInvalidDecision   = errors.New("decision must be APPROVE or REJECT")
	ErrInvalidTransition = errors.New("only open matches can be decided")
)

// MatchService manages proposed pairings between lost and found items.
// A match starts OPEN and transitions exactly once, to APPROVE or REJECT.
type MatchService interface {
	Propose(lostItemID, foundItemID, proposerID uint) (*model.Match, error)
	Decide(matchID uint, decision model.ItemStatus) (*model.Match, error)
	GetByID(id uint) (*model.Match, error)
	GetAll() ([]model.Match, error)
	ListOpen() ([]model.Match, error)
}

type matchService struct {
	matchRepo repository.MatchRepository
	lostRepo  repository.LostItemRepository
	foundRepo repository.FoundItemRepository
	now       func() time.Time
}

func NewMatchService(
	matchRepo repository.MatchRepository,
	lostRepo repository.LostItemRepository,
	foundRepo repository.FoundItemRepository,
) MatchService {
	return &matchService{
		matchRepo: matchRepo,
		lostRepo:  lostRepo,
		foundRepo: foundRepo,
		now:       time.Now,
	}
}

func (s *matchService) Propose(lostItemID, foundItemID, proposerID uint) (*model.Match, error) {
	logger.Info("Proposing match", map[string]interface{}{
		"lost_item_id":  lostItemID,
		"found_item_id": foundItemID,
		"proposer_id":   proposerID,
	})

	lost, err := s.lostRepo.FindByID(lostItemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Cannot propose match: lost item absent", map[string]interface{}{
				"lost_item_id": lostItemID,
			})
			return nil, ErrMissingReference
		}
		return nil, err
	}

	found, err := s.foundRepo.FindByID(foundItemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Cannot propose match: found item absent", map[string]interface{}{
				"found_item_id": foundItemID,
			})
			return nil, ErrMissingReference
		}
		return nil, err
	}

	match := &model.Match{
		LostItemID:  &lost.ID,
		FoundItemID: &found.ID,
		MatchDate:   s.now(),
		Status:      model.StatusOpen,
	}
	if proposerID != 0 {
		match.MatchedByID = &proposerID
	}

	if err := s.matchRepo.Create(match); err != nil {
		return nil, err
	}

	logger.Info("Match proposed", map[string]interface{}{
		"match_id": match.ID,
	})
	return s.matchRepo.FindByID(match.ID)
}

func (s *matchService) Decide(matchID uint, decision model.ItemStatus) (*model.Match, error) {
	logger.Info("Deciding match", map[string]interface{}{
		"match_id": matchID,
		"decision": decision,
	})

	if !decision.IsMatchDecision() {
		logger.Warn("Invalid match decision", map[string]interface{}{
			"match_id": matchID,
			"decision": decision,
		})
		return nil, ErrInvalidDecision
	}

	match, err := s.matchRepo.FindByID(matchID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, err
	}

	// Items can be deleted out from under a persisted match.
	if match.LostItem == nil || match.FoundItem == nil {
		logger.Error("Match has dangling item references", nil, map[string]interface{}{
			"match_id":      matchID,
			"lost_item_id":  match.LostItemID,
			"found_item_id": match.FoundItemID,
		})
		return nil, ErrInvalidReferences
	}

	if match.Status != model.StatusOpen {
		logger.Warn("Match is no longer open", map[string]interface{}{
			"match_id": matchID,
			"status":   match.Status,
		})
		return nil, ErrInvalidTransition
	}

	// Conditional update: only an OPEN row transitions. Zero rows affected
	// means a concurrent decision won, and this one is rejected.
	transitioned, err := s.matchRepo.UpdateStatusIfOpen(matchID, decision)
	if err != nil {
		return nil, err
	}
	if !transitioned {
		logger.Warn("Match transition lost the race", map[string]interface{}{
			"match_id": matchID,
			"decision": decision,
		})
		return nil, ErrInvalidTransition
	}

	logger.Info("Match decided", map[string]interface{}{
		"match_id": matchID,
		"decision": decision,
	})
	return s.matchRepo.FindByID(matchID)
}

func (s *matchService) GetByID(id uint) (*model.Match, error) {
	match, err := s.matchRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, err
	}
	return match, nil
}

func (s *matchService) GetAll() ([]model.Match, error) {
	return s.matchRepo.FindAll()
}

func (s *matchService) ListOpen() ([]model.Match, error) {
	logger.Debug("Listing open matches")
	return s.matchRepo.FindAllOpenWithDetails()
}
