package controller

import (
	"errors"
	"net/http"

	"github.com/auca/lostandfound-backend/internal/app/model"
	"github.com/auca/lostandfound-backend/internal/app/service"
	apperrors "github.com/auca/lostandfound-backend/internal/errors"
	"github.com/auca/lostandfound-backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

type MatchController struct {
	matchService service.MatchService
}

func NewMatchController(matchService service.MatchService) *MatchController {
	return &MatchController{matchService: matchService}
}

type ProposeMatchRequest struct {
	LostItemID  uint `json:"lost_item_id" binding:"required"`
	FoundItemID uint `json:"found_item_id" binding:"required"`
}

type DecideMatchRequest struct {
	Status string `json:"status" binding:"required"`
}

// GetAll lists matches, only the open ones when ?status=OPEN
// GET /api/matches
func (ctrl *MatchController) GetAll(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var (
		matches []model.Match
		err     error
	)
	if c.Query("status") == string(model.StatusOpen) {
		matches, err = ctrl.matchService.ListOpen()
	} else {
		matches, err = ctrl.matchService.GetAll()
	}
	if err != nil {
		log.Error("Failed to list matches", err, nil)
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "list matches")
		return
	}

	c.JSON(http.StatusOK, matches)
}

// GetByID returns a single match with its items
// GET /api/matches/:id
func (ctrl *MatchController) GetByID(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	match, err := ctrl.matchService.GetByID(id)
	if err != nil {
		if errors.Is(err, service.ErrMatchNotFound) {
			apperrors.NotFound(c, apperrors.MatchNotFound, "Match not found")
			return
		}
		log.Error("Failed to get match", err, map[string]interface{}{
			"match_id": id,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "get match")
		return
	}

	c.JSON(http.StatusOK, match)
}

// Propose pairs a lost item with a found item for review
// POST /api/matches
func (ctrl *MatchController) Propose(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req ProposeMatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid match request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.MatchMissingReference, "Lost item and found item are required")
		return
	}

	proposerID, _ := middleware.GetUserID(c)

	match, err := ctrl.matchService.Propose(req.LostItemID, req.FoundItemID, proposerID)
	if err != nil {
		if errors.Is(err, service.ErrMissingReference) {
			apperrors.BadRequest(c, apperrors.MatchMissingReference, "Lost item or found item does not exist")
			return
		}
		log.Error("Failed to propose match", err, map[string]interface{}{
			"lost_item_id":  req.LostItemID,
			"found_item_id": req.FoundItemID,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "propose match")
		return
	}

	c.JSON(http.StatusCreated, match)
}

// Decide approves or rejects an open match
// PUT /api/matches/:id
func (ctrl *MatchController) Decide(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req DecideMatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid decision request", map[string]interface{}{
			"match_id": id,
			"error":    err.Error(),
		})
		apperrors.BadRequest(c, apperrors.MatchInvalidDecision, "Decision status is required")
		return
	}

	match, err := ctrl.matchService.Decide(id, model.ItemStatus(req.Status))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidDecision):
			apperrors.BadRequest(c, apperrors.MatchInvalidDecision, "Decision must be APPROVE or REJECT")
		case errors.Is(err, service.ErrMatchNotFound):
			apperrors.NotFound(c, apperrors.MatchNotFound, "Match not found")
		case errors.Is(err, service.ErrInvalidReferences):
			apperrors.Conflict(c, apperrors.MatchInvalidReferences, "Match references items that no longer exist")
		case errors.Is(err, service.ErrInvalidTransition):
			apperrors.Conflict(c, apperrors.MatchInvalidTransition, "Match has already been decided")
		default:
			log.Error("Failed to decide match", err, map[string]interface{}{
				"match_id": id,
				"decision": req.Status,
			})
			apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "decide match")
		}
		return
	}

	log.Info("Match decided", map[string]interface{}{
		"match_id": id,
		"status":   match.Status,
	})

	c.JSON(http.StatusOK, match)
}
