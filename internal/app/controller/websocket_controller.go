package controller

import (
	"github.com/gin-gonic/gin"
	"github.com/ikkim/realty-review-backend/internal/middleware"
	"github.com/ikkim/realty-review-backend/internal/websocket"
	apperrors "github.com/ikkim/realty-review-backend/internal/errors"
)

// WebSocketController 실시간 알림 WebSocket 컨트롤러
type WebSocketController struct {
	hub      *websocket.Hub
	upgrader *websocket.Upgrader
}

func NewWebSocketController(hub *websocket.Hub, allowedOrigins []string) *WebSocketController {
	return &WebSocketController{
		hub:      hub,
		upgrader: websocket.NewUpgrader(allowedOrigins),
	}
}

// HandleNotifications 알림 WebSocket 연결 (GET /ws/notifications?token=...)
func (ctrl *WebSocketController) HandleNotifications(ctx *gin.Context) {
	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		apperrors.Unauthorized(ctx, "로그인이 필요합니다")
		return
	}

	conn, err := ctrl.upgrader.Upgrade(ctx.Writer, ctx.Request)
	if err != nil {
		middleware.GetLoggerFromContext(ctx).Warn("WebSocket upgrade failed", map[string]interface{}{
			"user_id": userID,
			"error":   err.Error(),
		})
		return
	}

	ctrl.hub.Attach(conn, userID)
}
