package controller

import (
	"errors"
	"net/http"
	"time"

	"github.com/auca/lostandfound-backend/internal/app/model"
	"github.com/auca/lostandfound-backend/internal/app/service"
	apperrors "github.com/auca/lostandfound-backend/internal/errors"
	"github.com/auca/lostandfound-backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

type LostItemController struct {
	lostItemService service.LostItemService
}

func NewLostItemController(lostItemService service.LostItemService) *LostItemController {
	return &LostItemController{lostItemService: lostItemService}
}

type LostItemRequest struct {
	ItemName     string     `json:"item_name" binding:"required"`
	Description  string     `json:"description"`
	LostLocation string     `json:"lost_location"`
	LostDate     time.Time  `json:"lost_date"`
	Status       string     `json:"status"`
	CategoryID   *uint      `json:"category_id"`

	VerificationDetails *VerificationDetailsRequest `json:"verification_details"`
}

type VerificationDetailsRequest struct {
	UniqueMark   string `json:"unique_mark"`
	SerialNumber string `json:"serial_number"`
	PhotoURL     string `json:"photo_url"`
}

func (req *LostItemRequest) toModel() (*model.LostItem, bool) {
	status, ok := parseOptionalStatus(req.Status)
	if !ok {
		return nil, false
	}
	item := &model.LostItem{
		ItemName:     req.ItemName,
		Description:  req.Description,
		LostLocation: req.LostLocation,
		LostDate:     req.LostDate,
		Status:       status,
		CategoryID:   req.CategoryID,
	}
	if req.VerificationDetails != nil {
		item.VerificationDetails = &model.VerificationDetails{
			UniqueMark:   req.VerificationDetails.UniqueMark,
			SerialNumber: req.VerificationDetails.SerialNumber,
			PhotoURL:     req.VerificationDetails.PhotoURL,
		}
	}
	return item, true
}

// parseOptionalStatus accepts an empty status (the service applies the
// default) and rejects unknown literals.
func parseOptionalStatus(s string) (model.ItemStatus, bool) {
	if s == "" {
		return "", true
	}
	return model.ParseItemStatus(s)
}

// GetAll lists all lost item reports
// GET /api/lost-items
func (ctrl *LostItemController) GetAll(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	items, err := ctrl.lostItemService.GetAll()
	if err != nil {
		log.Error("Failed to list lost items", err, nil)
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "list lost items")
		return
	}

	c.JSON(http.StatusOK, items)
}

// GetByID returns a single lost item
// GET /api/lost-items/:id
func (ctrl *LostItemController) GetByID(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	item, err := ctrl.lostItemService.GetByID(id)
	if err != nil {
		if errors.Is(err, service.ErrLostItemNotFound) {
			apperrors.NotFound(c, apperrors.ResourceNotFound, "Lost item not found")
			return
		}
		log.Error("Failed to get lost item", err, map[string]interface{}{
			"lost_item_id": id,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "get lost item")
		return
	}

	c.JSON(http.StatusOK, item)
}

// Create reports a lost item
// POST /api/lost-items
func (ctrl *LostItemController) Create(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req LostItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid lost item request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Item name is required")
		return
	}

	item, ok := req.toModel()
	if !ok {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Unknown item status")
		return
	}

	created, err := ctrl.lostItemService.Create(item)
	if err != nil {
		log.Error("Failed to create lost item", err, map[string]interface{}{
			"item_name": req.ItemName,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "create lost item")
		return
	}

	c.JSON(http.StatusCreated, created)
}

// Update modifies a lost item report
// PUT /api/lost-items/:id
func (ctrl *LostItemController) Update(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req LostItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid lost item request", map[string]interface{}{
			"lost_item_id": id,
			"error":        err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Item name is required")
		return
	}

	details, ok := req.toModel()
	if !ok {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Unknown item status")
		return
	}

	item, err := ctrl.lostItemService.Update(id, details)
	if err != nil {
		if errors.Is(err, service.ErrLostItemNotFound) {
			apperrors.NotFound(c, apperrors.ResourceNotFound, "Lost item not found")
			return
		}
		log.Error("Failed to update lost item", err, map[string]interface{}{
			"lost_item_id": id,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "update lost item")
		return
	}

	c.JSON(http.StatusOK, item)
}

// Delete removes a lost item report
// DELETE /api/lost-items/:id
func (ctrl *LostItemController) Delete(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := ctrl.lostItemService.Delete(id); err != nil {
		if errors.Is(err, service.ErrLostItemNotFound) {
			apperrors.NotFound(c, apperrors.ResourceNotFound, "Lost item not found")
			return
		}
		log.Error("Failed to delete lost item", err, map[string]interface{}{
			"lost_item_id": id,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "delete lost item")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Lost item deleted successfully",
	})
}
