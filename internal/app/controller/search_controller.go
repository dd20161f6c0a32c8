package controller

import (
	"net/http"

	"github.com/auca/lostandfound-backend/internal/app/service"
	apperrors "github.com/auca/lostandfound-backend/internal/errors"
	"github.com/auca/lostandfound-backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

type SearchController struct {
	searchService service.SearchService
}

func NewSearchController(searchService service.SearchService) *SearchController {
	return &SearchController{searchService: searchService}
}

// Search runs a keyword search across items, users and matches
// GET /api/search?q=wallet
func (ctrl *SearchController) Search(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	query := c.Query("q")
	if query == "" {
		apperrors.BadRequest(c, apperrors.ValidationRequired, "Query parameter q is required")
		return
	}

	results, err := ctrl.searchService.Search(query)
	if err != nil {
		log.Error("Search failed", err, map[string]interface{}{
			"query": query,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "search")
		return
	}

	c.JSON(http.StatusOK, results)
}
