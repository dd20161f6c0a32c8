package service

import (
	"strings"

	"github.com/auca/lostandfound-backend/internal/app/model"
	"github.com/auca/lostandfound-backend/internal/app/repository"
	"github.com/auca/lostandfound-backend/pkg/logger"
)

// SearchResults groups the per-entity hits for a single keyword query.
type SearchResults struct {
	LostItems  []model.LostItem  `json:"lostItems"`
	FoundItems []model.FoundItem `json:"foundItems"`
	Users      []model.User      `json:"users"`
	Matches    []model.Match     `json:"matches"`
}

type SearchService interface {
	Search(query string) (*SearchResults, error)
}

type searchService struct {
	lostRepo  repository.LostItemRepository
	foundRepo repository.FoundItemRepository
	userRepo  repository.UserRepository
	matchRepo repository.MatchRepository
}

func NewSearchService(
	lostRepo repository.LostItemRepository,
	foundRepo repository.FoundItemRepository,
	userRepo repository.UserRepository,
	matchRepo repository.MatchRepository,
) SearchService {
	return &searchService{
		lostRepo:  lostRepo,
		foundRepo: foundRepo,
		userRepo:  userRepo,
		matchRepo: matchRepo,
	}
}

func (s *searchService) Search(query string) (*SearchResults, error) {
	query = strings.TrimSpace(query)
	results := &SearchResults{
		LostItems:  []model.LostItem{},
		FoundItems: []model.FoundItem{},
		Users:      []model.User{},
		Matches:    []model.Match{},
	}
	if query == "" {
		return results, nil
	}

	lost, err := s.lostRepo.SearchByNameOrDescription(query)
	if err != nil {
		return nil, err
	}
	found, err := s.foundRepo.SearchByNameOrLocation(query)
	if err != nil {
		return nil, err
	}
	users, err := s.userRepo.SearchByUsernameOrEmail(query)
	if err != nil {
		return nil, err
	}
	matches, err := s.matchRepo.SearchByItemName(query)
	if err != nil {
		return nil, err
	}

	results.LostItems = lost
	results.FoundItems = found
	results.Users = users
	results.Matches = matches

	logger.Debug("Search completed", map[string]interface{}{
		"query":       query,
		"lost_items":  len(lost),
		"found_items": len(found),
		"users":       len(users),
		"matches":     len(matches),
	})
	return results, nil
}
