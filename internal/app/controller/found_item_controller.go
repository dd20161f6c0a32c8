package controller

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/auca/lostandfound-backend/internal/app/model"
	"github.com/auca/lostandfound-backend/internal/app/service"
	apperrors "github.com/auca/lostandfound-backend/internal/errors"
	"github.com/auca/lostandfound-backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

type FoundItemController struct {
	foundItemService service.FoundItemService
}

func NewFoundItemController(foundItemService service.FoundItemService) *FoundItemController {
	return &FoundItemController{foundItemService: foundItemService}
}

type FoundItemRequest struct {
	ItemName      string    `json:"item_name" binding:"required"`
	Description   string    `json:"description"`
	FoundLocation string    `json:"found_location"`
	FoundDate     time.Time `json:"found_date"`
	Status        string    `json:"status"`
	CategoryID    *uint     `json:"category_id"`

	VerificationDetails *VerificationDetailsRequest `json:"verification_details"`
}

func (req *FoundItemRequest) toModel() (*model.FoundItem, bool) {
	status, ok := parseOptionalStatus(req.Status)
	if !ok {
		return nil, false
	}
	item := &model.FoundItem{
		ItemName:      req.ItemName,
		Description:   req.Description,
		FoundLocation: req.FoundLocation,
		FoundDate:     req.FoundDate,
		Status:        status,
		CategoryID:    req.CategoryID,
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

// GetAll lists found items, optionally filtered by status or category
// GET /api/found-items?status=AVAILABLE&category_id=3
func (ctrl *FoundItemController) GetAll(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var (
		items []model.FoundItem
		err   error
	)

	switch {
	case c.Query("status") != "":
		status, ok := model.ParseItemStatus(c.Query("status"))
		if !ok {
			apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Unknown item status")
			return
		}
		items, err = ctrl.foundItemService.GetByStatus(status)
	case c.Query("category_id") != "":
		categoryID, parseErr := strconv.ParseUint(c.Query("category_id"), 10, 32)
		if parseErr != nil {
			apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid category_id")
			return
		}
		items, err = ctrl.foundItemService.GetByCategory(uint(categoryID))
	default:
		items, err = ctrl.foundItemService.GetAll()
	}

	if err != nil {
		log.Error("Failed to list found items", err, nil)
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "list found items")
		return
	}

	c.JSON(http.StatusOK, items)
}

// GetByID returns a single found item
// GET /api/found-items/:id
func (ctrl *FoundItemController) GetByID(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	item, err := ctrl.foundItemService.GetByID(id)
	if err != nil {
		if errors.Is(err, service.ErrFoundItemNotFound) {
			apperrors.NotFound(c, apperrors.ResourceNotFound, "Found item not found")
			return
		}
		log.Error("Failed to get found item", err, map[string]interface{}{
			"found_item_id": id,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "get found item")
		return
	}

	c.JSON(http.StatusOK, item)
}

// Create reports a found item
// POST /api/found-items
func (ctrl *FoundItemController) Create(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req FoundItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid found item request", map[string]interface{}{
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

	created, err := ctrl.foundItemService.Create(item)
	if err != nil {
		log.Error("Failed to create found item", err, map[string]interface{}{
			"item_name": req.ItemName,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "create found item")
		return
	}

	c.JSON(http.StatusCreated, created)
}

// Update modifies a found item report
// PUT /api/found-items/:id
func (ctrl *FoundItemController) Update(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req FoundItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid found item request", map[string]interface{}{
			"found_item_id": id,
			"error":         err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Item name is required")
		return
	}

	details, ok := req.toModel()
	if !ok {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Unknown item status")
		return
	}

	item, err := ctrl.foundItemService.Update(id, details)
	if err != nil {
		if errors.Is(err, service.ErrFoundItemNotFound) {
			apperrors.NotFound(c, apperrors.ResourceNotFound, "Found item not found")
			return
		}
		log.Error("Failed to update found item", err, map[string]interface{}{
			"found_item_id": id,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "update found item")
		return
	}

	c.JSON(http.StatusOK, item)
}

// Delete removes a found item report
// DELETE /api/found-items/:id
func (ctrl *FoundItemController) Delete(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := ctrl.foundItemService.Delete(id); err != nil {
		if errors.Is(err, service.ErrFoundItemNotFound) {
			apperrors.NotFound(c, apperrors.ResourceNotFound, "Found item not found")
			return
		}
		log.Error("Failed to delete found item", err, map[string]interface{}{
			"found_item_id": id,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "delete found item")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Found item deleted successfully",
	})
}
