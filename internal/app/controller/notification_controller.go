package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/realty-review-backend/internal/app/service"
	apperrors "github.com/ikkim/realty-review-backend/internal/errors"
	"github.com/ikkim/realty-review-backend/internal/middleware"
)

// NotificationController 로그인 사용자의 알림함
type NotificationController struct {
	service service.NotificationService
}

func NewNotificationController(service service.NotificationService) *NotificationController {
	return &NotificationController{service: service}
}

// GetNotifications 알림 목록 (GET /api/v1/notifications?is_read=&page=&page_size=)
func (ctrl *NotificationController) GetNotifications(ctx *gin.Context) {
	isRead, ok := parseOptionalBool(ctx, "is_read")
	if !ok {
		return
	}
	page, pageSize := parsePage(ctx)

	list, total, unread, err := ctrl.service.GetNotifications(ctx.Request.Context(), middleware.GetCaller(ctx), isRead, page, pageSize)
	if err != nil {
		apperrors.RespondWithServiceError(ctx, err, "list notifications")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"data":         list,
		"total":        total,
		"page":         page,
		"page_size":    pageSize,
		"unread_count": unread,
	})
}

func (ctrl *NotificationController) GetUnreadCount(ctx *gin.Context) {
	unread, err := ctrl.service.GetUnreadCount(ctx.Request.Context(), middleware.GetCaller(ctx))
	if err != nil {
		apperrors.RespondWithServiceError(ctx, err, "count unread notifications")
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"unread_count": unread})
}

// MarkAsRead 수신자 본인만 가능 (PUT /api/v1/notifications/:id/read)
func (ctrl *NotificationController) MarkAsRead(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	n, err := ctrl.service.MarkAsRead(ctx.Request.Context(), middleware.GetCaller(ctx), id)
	if err != nil {
		apperrors.RespondWithServiceError(ctx, err, "mark notification read")
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"notification": n})
}

// MarkAllAsRead PUT /api/v1/notifications/read-all
func (ctrl *NotificationController) MarkAllAsRead(ctx *gin.Context) {
	updated, err := ctrl.service.MarkAllAsRead(ctx.Request.Context(), middleware.GetCaller(ctx))
	if err != nil {
		apperrors.RespondWithServiceError(ctx, err, "mark all notifications read")
		return
	}
	ctx.JSON(http.StatusOK, gin.H{
		"message": "모든 알림을 읽음 처리했습니다",
		"updated": updated,
	})
}
