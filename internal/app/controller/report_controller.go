package controller

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/auca/lostandfound-backend/internal/app/service"
	apperrors "github.com/auca/lostandfound-backend/internal/errors"
	"github.com/auca/lostandfound-backend/internal/middleware"
	"github.com/auca/lostandfound-backend/internal/report"
	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type ReportController struct {
	exporter    *report.RegisterExporter
	userService service.UserService
}

func NewReportController(exporter *report.RegisterExporter, userService service.UserService) *ReportController {
	return &ReportController{
		exporter:    exporter,
		userService: userService,
	}
}

// ExportRegister downloads the full register workbook. Admin only.
// GET /api/reports/register.xlsx
func (ctrl *ReportController) ExportRegister(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "Authentication required")
		return
	}

	isAdmin, err := ctrl.userService.IsAdmin(userID)
	if err != nil {
		log.Error("Failed to check admin role", err, map[string]interface{}{
			"user_id": userID,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "export register")
		return
	}
	if !isAdmin {
		log.Warn("Register export denied", map[string]interface{}{
			"user_id": userID,
		})
		apperrors.Forbidden(c, "Only administrators can export the register")
		return
	}

	var buf bytes.Buffer
	if err := ctrl.exporter.Export(&buf); err != nil {
		log.Error("Failed to build register workbook", err, nil)
		apperrors.InternalError(c, "Failed to build the register export")
		return
	}

	filename := fmt.Sprintf("register-%s.xlsx", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())

	log.Info("Register exported", map[string]interface{}{
		"user_id": userID,
		"bytes":   buf.Len(),
	})
}
