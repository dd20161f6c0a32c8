package errors

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ErrorInfo carries a parsed error code and message
type ErrorInfo struct {
	Code    string
	Message string
}

// ParseError translates storage and driver errors into user friendly codes.
// Sensitive detail stays out of the response; domain errors are handled in
// the services before ever reaching this point.
func ParseError(err error, context string) ErrorInfo {
	if err == nil {
		return ErrorInfo{Code: InternalServerError, Message: "An internal error occurred"}
	}

	errStrLower := strings.ToLower(err.Error())

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrorInfo{
			Code:    ResourceNotFound,
			Message: notFoundMessage(context),
		}
	}

	// Postgres constraint violations

	// Unique constraint (23505)
	if strings.Contains(errStrLower, "duplicate key") || strings.Contains(errStrLower, "unique constraint") {
		return parseDuplicateKeyError(errStrLower)
	}

	// Foreign key constraint (23503)
	if strings.Contains(errStrLower, "foreign key constraint") {
		if strings.Contains(errStrLower, "still referenced") {
			return ErrorInfo{
				Code:    ResourceConflict,
				Message: "Other records still reference this one, it cannot be deleted",
			}
		}
		return ErrorInfo{
			Code:    ResourceNotFound,
			Message: "A referenced record does not exist",
		}
	}

	// Not null constraint (23502)
	if strings.Contains(errStrLower, "null value") && strings.Contains(errStrLower, "not-null constraint") {
		return ErrorInfo{
			Code:    ValidationRequired,
			Message: "A required field is missing",
		}
	}

	// Connectivity
	if strings.Contains(errStrLower, "connection refused") ||
		strings.Contains(errStrLower, "no such host") ||
		strings.Contains(errStrLower, "timeout") {
		return ErrorInfo{
			Code:    InternalExternalAPI,
			Message: "A backing service is unreachable. Please try again later",
		}
	}

	return ErrorInfo{
		Code:    InternalServerError,
		Message: "An internal error occurred. Please try again later",
	}
}

func parseDuplicateKeyError(errLower string) ErrorInfo {
	if strings.Contains(errLower, "email") {
		return ErrorInfo{Code: AuthEmailAlreadyExists, Message: "Email is already in use"}
	}
	if strings.Contains(errLower, "username") {
		return ErrorInfo{Code: AuthUsernameExists, Message: "Username is already in use"}
	}
	if strings.Contains(errLower, "session_token") || strings.Contains(errLower, "token") {
		// OTP session handle or reset token collided. The random space makes
		// this an entropy failure, not something a retry should paper over.
		return ErrorInfo{Code: InternalServerError, Message: "An internal error occurred. Please try again later"}
	}
	return ErrorInfo{Code: ResourceAlreadyExists, Message: "The record already exists"}
}

func notFoundMessage(context string) string {
	contextLower := strings.ToLower(context)

	switch {
	case strings.Contains(contextLower, "user"):
		return "User not found"
	case strings.Contains(contextLower, "lost"):
		return "Lost item not found"
	case strings.Contains(contextLower, "found"):
		return "Found item not found"
	case strings.Contains(contextLower, "categor"):
		return "Category not found"
	case strings.Contains(contextLower, "match"):
		return "Match not found"
	}
	return "The requested record was not found"
}

// ParseAndRespond parses err and writes the response in one call
func ParseAndRespond(c *gin.Context, statusCode int, err error, context string) {
	errorInfo := ParseError(err, context)
	if errorInfo.Code == ResourceNotFound && statusCode == http.StatusInternalServerError {
		statusCode = http.StatusNotFound
	}
	c.JSON(statusCode, ErrorResponse{
		Error:   errorInfo.Code,
		Message: errorInfo.Message,
	})
}
