package controller

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/auca/lostandfound-backend/internal/app/model"
	"github.com/auca/lostandfound-backend/internal/app/repository"
	"github.com/auca/lostandfound-backend/internal/app/service"
	"github.com/auca/lostandfound-backend/internal/db"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type matchControllerFixture struct {
	router    *gin.Engine
	db        *gorm.DB
	lostItem  *model.LostItem
	foundItem *model.FoundItem
}

func setupMatchControllerTest(t *testing.T) *matchControllerFixture {
	gin.SetMode(gin.TestMode)

	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() { db.CleanupTestDB(testDB) })

	matchService := service.NewMatchService(
		repository.NewMatchRepository(testDB),
		repository.NewLostItemRepository(testDB),
		repository.NewFoundItemRepository(testDB),
	)
	ctrl := NewMatchController(matchService)

	router := gin.New()
	router.GET("/matches", ctrl.GetAll)
	router.GET("/matches/:id", ctrl.GetByID)
	router.POST("/matches", ctrl.Propose)
	router.PUT("/matches/:id", ctrl.Decide)

	lostItem := &model.LostItem{ItemName: "Laptop", Status: model.StatusAvailable, LostDate: time.Now()}
	require.NoError(t, testDB.Create(lostItem).Error)
	foundItem := &model.FoundItem{ItemName: "Laptop", Status: model.StatusAvailable, FoundDate: time.Now()}
	require.NoError(t, testDB.Create(foundItem).Error)

	return &matchControllerFixture{
		router:    router,
		db:        testDB,
		lostItem:  lostItem,
		foundItem: foundItem,
	}
}

func (f *matchControllerFixture) propose(t *testing.T) uint {
	w := postJSON(t, f.router, "/matches", ProposeMatchRequest{
		LostItemID:  f.lostItem.ID,
		FoundItemID: f.foundItem.ID,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var match model.Match
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &match))
	return match.ID
}

func putJSON(t *testing.T, router *gin.Engine, path string, payload interface{}) *httptest.ResponseRecorder {
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest("PUT", path, bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestMatchController_Propose(t *testing.T) {
	fixture := setupMatchControllerTest(t)

	w := postJSON(t, fixture.router, "/matches", ProposeMatchRequest{
		LostItemID:  fixture.lostItem.ID,
		FoundItemID: fixture.foundItem.ID,
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	var match model.Match
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &match))
	assert.Equal(t, model.StatusOpen, match.Status)
	require.NotNil(t, match.LostItem)
	assert.Equal(t, "Laptop", match.LostItem.ItemName)
}

func TestMatchController_Propose_MissingReference(t *testing.T) {
	fixture := setupMatchControllerTest(t)

	w := postJSON(t, fixture.router, "/matches", ProposeMatchRequest{
		LostItemID:  9999,
		FoundItemID: fixture.foundItem.ID,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMatchController_Decide(t *testing.T) {
	fixture := setupMatchControllerTest(t)
	matchID := fixture.propose(t)

	w := putJSON(t, fixture.router, "/matches/"+strconv.FormatUint(uint64(matchID), 10), DecideMatchRequest{Status: "APPROVE"})
	assert.Equal(t, http.StatusOK, w.Code)

	var match model.Match
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &match))
	assert.Equal(t, model.StatusApprove, match.Status)
}

func TestMatchController_Decide_Conflicts(t *testing.T) {
	fixture := setupMatchControllerTest(t)
	matchID := fixture.propose(t)

	w := putJSON(t, fixture.router, "/matches/"+strconv.FormatUint(uint64(matchID), 10), DecideMatchRequest{Status: "REJECT"})
	require.Equal(t, http.StatusOK, w.Code)

	// A second decision hits the already-closed match.
	w = putJSON(t, fixture.router, "/matches/"+strconv.FormatUint(uint64(matchID), 10), DecideMatchRequest{Status: "APPROVE"})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestMatchController_Decide_InvalidDecision(t *testing.T) {
	fixture := setupMatchControllerTest(t)
	matchID := fixture.propose(t)

	w := putJSON(t, fixture.router, "/matches/"+strconv.FormatUint(uint64(matchID), 10), DecideMatchRequest{Status: "CLAIMED"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMatchController_Decide_NotFound(t *testing.T) {
	fixture := setupMatchControllerTest(t)

	w := putJSON(t, fixture.router, "/matches/9999", DecideMatchRequest{Status: "APPROVE"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestMatchController_GetAll_FiltersOpen(t *testing.T) {
	fixture := setupMatchControllerTest(t)
	matchID := fixture.propose(t)

	w := putJSON(t, fixture.router, "/matches/"+strconv.FormatUint(uint64(matchID), 10), DecideMatchRequest{Status: "APPROVE"})
	require.Equal(t, http.StatusOK, w.Code)
	fixture.propose(t)

	req := httptest.NewRequest("GET", "/matches?status=OPEN", nil)
	rec := httptest.NewRecorder()
	fixture.router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var open []model.Match
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &open))
	require.Len(t, open, 1)
	assert.Equal(t, model.StatusOpen, open[0].Status)

	req = httptest.NewRequest("GET", "/matches", nil)
	rec = httptest.NewRecorder()
	fixture.router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var all []model.Match
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &all))
	assert.Len(t, all, 2)
}
