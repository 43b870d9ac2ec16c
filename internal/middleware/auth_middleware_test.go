package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/realty-review-backend/internal/app/model"
	"github.com/ikkim/realty-review-backend/pkg/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testJWTSecret = "test-jwt-secret-for-middleware"

// stubIdentity resolves callers from a fixed table
type stubIdentity struct {
	callers map[uint]model.Caller
	err     error
}

func (s stubIdentity) ResolveCaller(_ context.Context, userID uint) (model.Caller, error) {
	if s.err != nil {
		return model.Caller{}, s.err
	}
	if c, ok := s.callers[userID]; ok {
		return c, nil
	}
	return model.Caller{ID: userID}, nil
}

func setupMiddlewareTest(identity stubIdentity) (*gin.Engine, *AuthMiddleware) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(LoggingMiddleware())
	return router, NewAuthMiddleware(testJWTSecret, identity)
}

func generateTestToken(t *testing.T, userID uint) string {
	token, err := util.GenerateToken(userID, testJWTSecret, 15*time.Minute)
	require.NoError(t, err)
	return token
}

func callerHandler(c *gin.Context) {
	caller := GetCaller(c)
	c.JSON(http.StatusOK, gin.H{
		"user_id":   caller.ID,
		"is_admin":  caller.IsAdmin,
		"companies": caller.RepresentedCompanyIDs,
	})
}

func TestAuthMiddleware_Authenticate_Success(t *testing.T) {
	router, auth := setupMiddlewareTest(stubIdentity{callers: map[uint]model.Caller{
		1: {ID: 1, RepresentedCompanyIDs: []uint{4}},
	}})
	router.GET("/test", auth.Authenticate(), callerHandler)

	req := httptest.NewRequest("GET", "/test", nil)
	req.Header.Set("Authorization", "Bearer "+generateTestToken(t, 1))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		UserID    uint   `json:"user_id"`
		IsAdmin   bool   `json:"is_admin"`
		Companies []uint `json:"companies"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, uint(1), body.UserID)
	assert.False(t, body.IsAdmin)
	assert.Equal(t, []uint{4}, body.Companies)
	assert.NotEmpty(t, w.Header().Get(RequestIDHeader))
}

func TestAuthMiddleware_Authenticate_QueryToken(t *testing.T) {
	router, auth := setupMiddlewareTest(stubIdentity{})
	router.GET("/ws", auth.Authenticate(), callerHandler)

	req := httptest.NewRequest("GET", "/ws?token="+generateTestToken(t, 9), nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"user_id":9`)
}

func TestAuthMiddleware_Authenticate_NoToken(t *testing.T) {
	router, auth := setupMiddlewareTest(stubIdentity{})
	router.GET("/test", auth.Authenticate(), callerHandler)

	req := httptest.NewRequest("GET", "/test", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "AUTH_UNAUTHORIZED")
}

func TestAuthMiddleware_Authenticate_InvalidFormat(t *testing.T) {
	router, auth := setupMiddlewareTest(stubIdentity{})
	router.GET("/test", auth.Authenticate(), callerHandler)

	tests := []struct {
		name   string
		header string
	}{
		{name: "Missing Bearer prefix", header: "invalid-token"},
		{name: "Wrong prefix", header: "Basic token123"},
		{name: "Empty token", header: "Bearer "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/test", nil)
			req.Header.Set("Authorization", tt.header)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.Contains(t, w.Body.String(), "AUTH_TOKEN_INVALID")
		})
	}
}

func TestAuthMiddleware_Authenticate_ExpiredToken(t *testing.T) {
	router, auth := setupMiddlewareTest(stubIdentity{})
	router.GET("/test", auth.Authenticate(), callerHandler)

	token, err := util.GenerateToken(1, testJWTSecret, -time.Minute)
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/test", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "AUTH_TOKEN_EXPIRED")
}

func TestAuthMiddleware_Authenticate_IdentityFailure(t *testing.T) {
	router, auth := setupMiddlewareTest(stubIdentity{err: errors.New("db down")})
	router.GET("/test", auth.Authenticate(), callerHandler)

	req := httptest.NewRequest("GET", "/test", nil)
	req.Header.Set("Authorization", "Bearer "+generateTestToken(t, 1))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestAuthMiddleware_OptionalAuthenticate(t *testing.T) {
	router, auth := setupMiddlewareTest(stubIdentity{})
	router.GET("/test", auth.OptionalAuthenticate(), callerHandler)

	tests := []struct {
		name       string
		header     string
		wantUserID string
	}{
		{name: "Guest", header: "", wantUserID: `"user_id":0`},
		{name: "Invalid token", header: "Bearer nope", wantUserID: `"user_id":0`},
		{name: "Valid token", header: "Bearer " + generateTestToken(t, 3), wantUserID: `"user_id":3`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/test", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, http.StatusOK, w.Code)
			assert.Contains(t, w.Body.String(), tt.wantUserID)
		})
	}
}

func TestAuthMiddleware_RequireAdmin(t *testing.T) {
	router, auth := setupMiddlewareTest(stubIdentity{callers: map[uint]model.Caller{
		1: {ID: 1, IsAdmin: true},
	}})
	router.GET("/admin", auth.Authenticate(), auth.RequireAdmin(), callerHandler)

	for id, want := range map[uint]int{1: http.StatusOK, 2: http.StatusForbidden} {
		req := httptest.NewRequest("GET", "/admin", nil)
		req.Header.Set("Authorization", "Bearer "+generateTestToken(t, id))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, want, w.Code, "user %d", id)
	}
}

func TestLoggingMiddleware_KeepsUpstreamRequestID(t *testing.T) {
	router, _ := setupMiddlewareTest(stubIdentity{})
	router.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, GetRequestID(c))
	})

	req := httptest.NewRequest("GET", "/ping", nil)
	req.Header.Set(RequestIDHeader, "req-123")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, "req-123", w.Body.String())
	assert.Equal(t, "req-123", w.Header().Get(RequestIDHeader))
}

func TestLoggingMiddleware_GeneratesRequestID(t *testing.T) {
	router, _ := setupMiddlewareTest(stubIdentity{})
	router.GET("/ping", func(c *gin.Context) {
		assert.NotNil(t, GetLoggerFromContext(c))
		c.String(http.StatusOK, GetRequestID(c))
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/ping", nil))

	assert.NotEmpty(t, w.Body.String())
	assert.Equal(t, w.Body.String(), w.Header().Get(RequestIDHeader))
}
