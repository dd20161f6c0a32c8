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

type matchServiceFixture struct {
	matchService MatchService
	db           *gorm.DB
	lostItem     *model.LostItem
	foundItem    *model.FoundItem
}

func setupMatchServiceTest(t *testing.T) *matchServiceFixture {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() { db.CleanupTestDB(testDB) })

	matchRepo := repository.NewMatchRepository(testDB)
	lostRepo := repository.NewLostItemRepository(testDB)
	foundRepo := repository.NewFoundItemRepository(testDB)

	lostItem := &model.LostItem{
		ItemName:     "Black Wallet",
		LostLocation: "Main Building",
		LostDate:     time.Now().AddDate(0, 0, -3),
		Status:       model.StatusAvailable,
	}
	require.NoError(t, testDB.Create(lostItem).Error)

	foundItem := &model.FoundItem{
		ItemName:      "Wallet",
		FoundLocation: "Library",
		FoundDate:     time.Now().AddDate(0, 0, -1),
		Status:        model.StatusAvailable,
	}
	require.NoError(t, testDB.Create(foundItem).Error)

	return &matchServiceFixture{
		matchService: NewMatchService(matchRepo, lostRepo, foundRepo),
		db:           testDB,
		lostItem:     lostItem,
		foundItem:    foundItem,
	}
}

func TestMatchService_Propose(t *testing.T) {
	fixture := setupMatchServiceTest(t)

	match, err := fixture.matchService.Propose(fixture.lostItem.ID, fixture.foundItem.ID, 0)
	require.NoError(t, err)

	assert.Equal(t, model.StatusOpen, match.Status)
	require.NotNil(t, match.LostItem)
	require.NotNil(t, match.FoundItem)
	assert.Equal(t, "Black Wallet", match.LostItem.ItemName)
	assert.Equal(t, "Wallet", match.FoundItem.ItemName)
	assert.Nil(t, match.MatchedByID)
	assert.WithinDuration(t, time.Now(), match.MatchDate, time.Minute)
}

func TestMatchService_Propose_MissingReference(t *testing.T) {
	fixture := setupMatchServiceTest(t)

	tests := []struct {
		name        string
		lostItemID  uint
		foundItemID uint
	}{
		{"Unknown lost item", 9999, fixture.foundItem.ID},
		{"Unknown found item", fixture.lostItem.ID, 9999},
		{"Both unknown", 9999, 9999},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := fixture.matchService.Propose(tt.lostItemID, tt.foundItemID, 0)
			assert.ErrorIs(t, err, ErrMissingReference)
		})
	}
}

func TestMatchService_Propose_RecordsProposer(t *testing.T) {
	fixture := setupMatchServiceTest(t)

	user := &model.User{Username: "staff", Email: "staff@auca.kg", Password: "x", Role: "ADMIN"}
	require.NoError(t, fixture.db.Create(user).Error)

	match, err := fixture.matchService.Propose(fixture.lostItem.ID, fixture.foundItem.ID, user.ID)
	require.NoError(t, err)
	require.NotNil(t, match.MatchedByID)
	assert.Equal(t, user.ID, *match.MatchedByID)
}

func TestMatchService_Decide(t *testing.T) {
	tests := []struct {
		name     string
		decision model.ItemStatus
	}{
		{"Approve", model.StatusApprove},
		{"Reject", model.StatusReject},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fixture := setupMatchServiceTest(t)

			match, err := fixture.matchService.Propose(fixture.lostItem.ID, fixture.foundItem.ID, 0)
			require.NoError(t, err)

			decided, err := fixture.matchService.Decide(match.ID, tt.decision)
			require.NoError(t, err)
			assert.Equal(t, tt.decision, decided.Status)
		})
	}
}

func TestMatchService_Decide_ExactlyOnce(t *testing.T) {
	fixture := setupMatchServiceTest(t)

	match, err := fixture.matchService.Propose(fixture.lostItem.ID, fixture.foundItem.ID, 0)
	require.NoError(t, err)

	_, err = fixture.matchService.Decide(match.ID, model.StatusApprove)
	require.NoError(t, err)

	// A decided match never transitions again, not even to the same state.
	_, err = fixture.matchService.Decide(match.ID, model.StatusApprove)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	_, err = fixture.matchService.Decide(match.ID, model.StatusReject)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	reloaded, err := fixture.matchService.GetByID(match.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusApprove, reloaded.Status)
}

func TestMatchService_Decide_InvalidDecision(t *testing.T) {
	fixture := setupMatchServiceTest(t)

	match, err := fixture.matchService.Propose(fixture.lostItem.ID, fixture.foundItem.ID, 0)
	require.NoError(t, err)

	tests := []struct {
		name     string
		decision model.ItemStatus
	}{
		{"Open is not terminal", model.StatusOpen},
		{"Item status literal", model.StatusClaimed},
		{"Lowercase literal", model.ItemStatus("approve")},
		{"Garbage literal", model.ItemStatus("MAYBE")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := fixture.matchService.Decide(match.ID, tt.decision)
			assert.ErrorIs(t, err, ErrInvalidDecision)
		})
	}

	// The match stayed open through all the rejected literals.
	reloaded, err := fixture.matchService.GetByID(match.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusOpen, reloaded.Status)
}

func TestMatchService_Decide_UnknownMatch(t *testing.T) {
	fixture := setupMatchServiceTest(t)

	_, err := fixture.matchService.Decide(9999, model.StatusApprove)
	assert.ErrorIs(t, err, ErrMatchNotFound)
}

func TestMatchService_ListOpen(t *testing.T) {
	fixture := setupMatchServiceTest(t)

	match, err := fixture.matchService.Propose(fixture.lostItem.ID, fixture.foundItem.ID, 0)
	require.NoError(t, err)

	open, err := fixture.matchService.ListOpen()
	require.NoError(t, err)
	require.Len(t, open, 1)
	assert.Equal(t, match.ID, open[0].ID)
	require.NotNil(t, open[0].LostItem)
	require.NotNil(t, open[0].FoundItem)

	_, err = fixture.matchService.Decide(match.ID, model.StatusReject)
	require.NoError(t, err)

	open, err = fixture.matchService.ListOpen()
	require.NoError(t, err)
	assert.Empty(t, open)
}
