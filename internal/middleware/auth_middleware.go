package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/realty-review-backend/internal/app/model"
	"github.com/ikkim/realty-review-backend/internal/app/service"
	apperrors "github.com/ikkim/realty-review-backend/internal/errors"
	"github.com/ikkim/realty-review-backend/pkg/util"
)

// Context keys for caller information
const (
	UserIDKey = "user_id"
	CallerKey = "caller"
)

var errMalformedHeader = errors.New("malformed authorization header")

type AuthMiddleware struct {
	jwtSecret string
	identity  service.IdentityService
}

func NewAuthMiddleware(jwtSecret string, identity service.IdentityService) *AuthMiddleware {
	return &AuthMiddleware{
		jwtSecret: jwtSecret,
		identity:  identity,
	}
}

// bearerToken extracts the token from "Bearer <token>", falling back to the
// token query parameter used by WebSocket clients
func bearerToken(c *gin.Context) (string, error) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return c.Query("token"), nil
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", errMalformedHeader
	}
	return parts[1], nil
}

// Authenticate validates the identity provider token and resolves the caller (required)
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		log := GetLoggerFromContext(c)

		token, err := bearerToken(c)
		if err != nil {
			log.Warn("Invalid authorization header format", map[string]interface{}{
				"path": c.Request.URL.Path,
			})
			apperrors.RespondWithError(c, http.StatusUnauthorized, apperrors.AuthTokenInvalid, "인증 형식이 올바르지 않습니다")
			c.Abort()
			return
		}
		if token == "" {
			log.Warn("Missing authorization header", map[string]interface{}{
				"path": c.Request.URL.Path,
			})
			apperrors.Unauthorized(c, "로그인이 필요합니다")
			c.Abort()
			return
		}

		claims, err := util.ValidateToken(token, m.jwtSecret)
		if err != nil {
			log.Warn("Token validation failed", map[string]interface{}{
				"path":  c.Request.URL.Path,
				"error": err.Error(),
			})

			// 토큰 만료 에러인 경우 명확히 표시
			if errors.Is(err, util.ErrExpiredToken) {
				apperrors.RespondWithError(c, http.StatusUnauthorized, apperrors.AuthTokenExpired, "로그인이 만료되었습니다")
			} else {
				apperrors.RespondWithError(c, http.StatusUnauthorized, apperrors.AuthTokenInvalid, "유효하지 않은 인증 토큰입니다")
			}
			c.Abort()
			return
		}

		if !m.setCaller(c, claims.UserID) {
			c.Abort()
			return
		}

		c.Next()
	}
}

// OptionalAuthenticate resolves the caller if a valid token is present
// - If token is present and valid: sets caller in context
// - If token is missing or invalid: continues as guest
func (m *AuthMiddleware) OptionalAuthenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		log := GetLoggerFromContext(c)

		token, err := bearerToken(c)
		if err != nil || token == "" {
			log.Debug("No usable authorization header - continuing as guest", map[string]interface{}{
				"path": c.Request.URL.Path,
			})
			c.Next()
			return
		}

		claims, err := util.ValidateToken(token, m.jwtSecret)
		if err != nil {
			// Invalid or expired token - continue as guest
			log.Debug("Token validation failed - continuing as guest", map[string]interface{}{
				"path":  c.Request.URL.Path,
				"error": err.Error(),
			})
			c.Next()
			return
		}

		if !m.setCaller(c, claims.UserID) {
			c.Abort()
			return
		}

		c.Next()
	}
}

// setCaller looks up the caller's admin flag and memberships once per request
func (m *AuthMiddleware) setCaller(c *gin.Context, userID uint) bool {
	log := GetLoggerFromContext(c)

	caller, err := m.identity.ResolveCaller(c.Request.Context(), userID)
	if err != nil {
		log.Error("Failed to resolve caller", err, map[string]interface{}{
			"user_id": userID,
		})
		apperrors.RespondWithServiceError(c, err, "resolve caller")
		return false
	}

	c.Set(UserIDKey, caller.ID)
	c.Set(CallerKey, caller)

	log.Debug("User authenticated successfully", map[string]interface{}{
		"user_id":        caller.ID,
		"is_admin":       caller.IsAdmin,
		"representative": len(caller.RepresentedCompanyIDs) > 0,
	})
	return true
}

// RequireAdmin rejects callers whose profile is not flagged is_admin
func (m *AuthMiddleware) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		caller := GetCaller(c)
		if !service.IsAdmin(caller) {
			GetLoggerFromContext(c).Warn("Insufficient permissions", map[string]interface{}{
				"user_id": caller.ID,
				"path":    c.Request.URL.Path,
			})
			apperrors.RespondWithError(c, http.StatusForbidden, apperrors.AuthzAdminOnly, "관리자만 이용할 수 있습니다")
			c.Abort()
			return
		}
		c.Next()
	}
}

// GetUserID extracts user ID from context
func GetUserID(c *gin.Context) (uint, bool) {
	userID, exists := c.Get(UserIDKey)
	if !exists {
		return 0, false
	}
	id, ok := userID.(uint)
	return id, ok
}

// GetCaller returns the resolved caller, or the zero Caller for guests
func GetCaller(c *gin.Context) model.Caller {
	if v, exists := c.Get(CallerKey); exists {
		if caller, ok := v.(model.Caller); ok {
			return caller
		}
	}
	return model.Caller{}
}
