package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/auca/lostandfound-backend/pkg/util"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupAuthMiddlewareTest(required bool) *gin.Engine {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	handler := func(c *gin.Context) {
		userID, exists := GetUserID(c)
		c.JSON(http.StatusOK, gin.H{"user_id": userID, "authenticated": exists})
	}

	if required {
		router.GET("/protected", Authenticate(), handler)
	} else {
		router.GET("/protected", OptionalAuthenticate(), handler)
	}
	return router
}

func doGet(router *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("GET", "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAuthenticate(t *testing.T) {
	router := setupAuthMiddlewareTest(true)

	tests := []struct {
		name       string
		authHeader string
		wantStatus int
	}{
		{"Valid token", "Bearer " + util.FormatAccessToken(7), http.StatusOK},
		{"Missing header", "", http.StatusUnauthorized},
		{"Not bearer", "Basic abc123", http.StatusUnauthorized},
		{"Malformed token", "Bearer what-is-this", http.StatusUnauthorized},
		{"Bare bearer", "Bearer", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doGet(router, tt.authHeader)
			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

func TestAuthenticate_SetsUserID(t *testing.T) {
	router := setupAuthMiddlewareTest(true)

	w := doGet(router, "Bearer "+util.FormatAccessToken(42))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"user_id":42`)
}

func TestOptionalAuthenticate(t *testing.T) {
	router := setupAuthMiddlewareTest(false)

	// Guests pass through without user info.
	w := doGet(router, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"authenticated":false`)

	// Garbage tokens degrade to guest instead of failing.
	w = doGet(router, "Bearer nonsense")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"authenticated":false`)

	w = doGet(router, "Bearer "+util.FormatAccessToken(7))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"authenticated":true`)
}
