package service

import (
	"testing"
	"time"

	"github.com/auca/lostandfound-backend/internal/app/model"
	"github.com/auca/lostandfound-backend/internal/app/repository"
	"github.com/auca/lostandfound-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupSearchServiceTest(t *testing.T) (SearchService, *gorm.DB) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() { db.CleanupTestDB(testDB) })

	svc := NewSearchService(
		repository.NewLostItemRepository(testDB),
		repository.NewFoundItemRepository(testDB),
		repository.NewUserRepository(testDB),
		repository.NewMatchRepository(testDB),
	)
	return svc, testDB
}

func TestSearchService_Search(t *testing.T) {
	svc, testDB := setupSearchServiceTest(t)

	lost := &model.LostItem{ItemName: "Black Wallet", Description: "Leather", Status: model.StatusAvailable}
	require.NoError(t, testDB.Create(lost).Error)
	found := &model.FoundItem{ItemName: "Umbrella", FoundLocation: "wallet counter", Status: model.StatusAvailable}
	require.NoError(t, testDB.Create(found).Error)
	user := &model.User{Username: "walletfan", Email: "fan@auca.kg", Password: "x", Role: "USER"}
	require.NoError(t, testDB.Create(user).Error)
	match := &model.Match{
		LostItemID:  &lost.ID,
		FoundItemID: &found.ID,
		MatchDate:   time.Now(),
		Status:      model.StatusOpen,
	}
	require.NoError(t, testDB.Create(match).Error)

	// Case-insensitive substring matching across every entity.
	results, err := svc.Search("WALLET")
	require.NoError(t, err)

	require.Len(t, results.LostItems, 1)
	assert.Equal(t, "Black Wallet", results.LostItems[0].ItemName)
	require.Len(t, results.FoundItems, 1)
	assert.Equal(t, "Umbrella", results.FoundItems[0].ItemName)
	require.Len(t, results.Users, 1)
	assert.Equal(t, "walletfan", results.Users[0].Username)
	require.Len(t, results.Matches, 1)
	assert.Equal(t, match.ID, results.Matches[0].ID)
}

func TestSearchService_Search_NoHits(t *testing.T) {
	svc, testDB := setupSearchServiceTest(t)

	require.NoError(t, testDB.Create(&model.LostItem{ItemName: "Keys", Status: model.StatusAvailable}).Error)

	results, err := svc.Search("laptop")
	require.NoError(t, err)

	assert.Empty(t, results.LostItems)
	assert.Empty(t, results.FoundItems)
	assert.Empty(t, results.Users)
	assert.Empty(t, results.Matches)
}

func TestSearchService_Search_BlankQuery(t *testing.T) {
	svc, testDB := setupSearchServiceTest(t)

	require.NoError(t, testDB.Create(&model.LostItem{ItemName: "Keys", Status: model.StatusAvailable}).Error)

	// Whitespace-only queries return empty result sets, not everything.
	results, err := svc.Search("   ")
	require.NoError(t, err)
	assert.Empty(t, results.LostItems)
}
