package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/realty-review-backend/internal/app/model"
	"github.com/ikkim/realty-review-backend/internal/app/service"
	apperrors "github.com/ikkim/realty-review-backend/internal/errors"
	"github.com/ikkim/realty-review-backend/internal/middleware"
)

// ModerationController 관리자 콘텐츠 관리 컨트롤러
type ModerationController struct {
	service service.ModerationService
}

func NewModerationController(service service.ModerationService) *ModerationController {
	return &ModerationController{service: service}
}

// HideReview 리뷰 숨김
func (ctrl *ModerationController) HideReview(ctx *gin.Context) {
	reviewID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	result, err := ctrl.service.HideReview(ctx.Request.Context(), middleware.GetCaller(ctx), reviewID)
	if err != nil {
		apperrors.RespondWithServiceError(ctx, err, "hide review")
		return
	}
	ctx.JSON(http.StatusOK, result)
}

// HideReply 답글 숨김
func (ctrl *ModerationController) HideReply(ctx *gin.Context) {
	replyID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	result, err := ctrl.service.HideReply(ctx.Request.Context(), middleware.GetCaller(ctx), replyID)
	if err != nil {
		apperrors.RespondWithServiceError(ctx, err, "hide reply")
		return
	}
	ctx.JSON(http.StatusOK, result)
}

// DeleteReview godoc
// @Summary 리뷰 영구 삭제
// @Description 투표/신고/답글을 함께 삭제하고 작성자에게 알림을 보냅니다. 알림 실패는 warnings로 전달됩니다
// @Tags admin
// @Produce json
// @Param id path int true "리뷰 ID"
// @Success 200 {object} model.ModerationResult
// @Failure 403 {object} apperrors.ErrorResponse
// @Failure 404 {object} apperrors.ErrorResponse
// @Security BearerAuth
// @Router /api/v1/admin/reviews/{id} [delete]
func (ctrl *ModerationController) DeleteReview(ctx *gin.Context) {
	reviewID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	result, err := ctrl.service.DeleteReview(ctx.Request.Context(), middleware.GetCaller(ctx), reviewID)
	if err != nil {
		apperrors.RespondWithServiceError(ctx, err, "delete review")
		return
	}
	ctx.JSON(http.StatusOK, result)
}

// DeleteReply 답글 영구 삭제
func (ctrl *ModerationController) DeleteReply(ctx *gin.Context) {
	replyID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	result, err := ctrl.service.DeleteReply(ctx.Request.Context(), middleware.GetCaller(ctx), replyID)
	if err != nil {
		apperrors.RespondWithServiceError(ctx, err, "delete reply")
		return
	}
	ctx.JSON(http.StatusOK, result)
}

// ListReports 신고 목록 (?kind=review|reply&status=received|reviewed|dismissed)
func (ctrl *ModerationController) ListReports(ctx *gin.Context) {
	kind, err := model.ParseTargetKind(ctx.DefaultQuery("kind", string(model.TargetReview)))
	if err != nil {
		apperrors.RespondWithValidationError(ctx, map[string]string{"kind": err.Error()})
		return
	}

	var status *model.ReportStatus
	if raw := ctx.Query("status"); raw != "" {
		parsed, err := model.ParseReportStatus(raw)
		if err != nil {
			apperrors.RespondWithValidationError(ctx, map[string]string{"status": err.Error()})
			return
		}
		status = &parsed
	}

	page, pageSize := parsePage(ctx)
	reports, total, err := ctrl.service.ListReports(ctx.Request.Context(), middleware.GetCaller(ctx), kind, status, page, pageSize)
	if err != nil {
		apperrors.RespondWithServiceError(ctx, err, "list reports")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"data":      reports,
		"total":     total,
		"page":      page,
		"page_size": pageSize,
	})
}

// UpdateReportStatus 신고 처리 상태 변경 (PUT /admin/reports/:kind/:id/status)
func (ctrl *ModerationController) UpdateReportStatus(ctx *gin.Context) {
	kind, err := model.ParseTargetKind(ctx.Param("kind"))
	if err != nil {
		apperrors.RespondWithValidationError(ctx, map[string]string{"kind": err.Error()})
		return
	}
	reportID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req model.UpdateReportStatusRequest
	if !bindJSON(ctx, &req) {
		return
	}
	status, err := model.ParseReportStatus(req.Status)
	if err != nil {
		apperrors.RespondWithValidationError(ctx, map[string]string{"status": err.Error()})
		return
	}

	if err := ctrl.service.UpdateReportStatus(ctx.Request.Context(), middleware.GetCaller(ctx), kind, reportID, status); err != nil {
		apperrors.RespondWithServiceError(ctx, err, "update report status")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "신고 상태가 변경되었습니다", "status": status})
}
