package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/realty-review-backend/internal/app/model"
	"github.com/ikkim/realty-review-backend/internal/app/service"
	apperrors "github.com/ikkim/realty-review-backend/internal/errors"
	"github.com/ikkim/realty-review-backend/internal/middleware"
)

// EngagementController 도움돼요 투표와 신고 컨트롤러
// 리뷰와 답글 라우트가 같은 핸들러를 대상 종류만 바꿔 사용한다
type EngagementController struct {
	engagement service.EngagementService
	reports    service.ReportService
}

func NewEngagementController(engagement service.EngagementService, reports service.ReportService) *EngagementController {
	return &EngagementController{
		engagement: engagement,
		reports:    reports,
	}
}

// ToggleVote 투표 토글 (POST /reviews/:id/vote, /replies/:id/vote)
func (ctrl *EngagementController) ToggleVote(kind model.TargetKind) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		targetID, ok := parseIDParam(ctx, "id")
		if !ok {
			return
		}

		result, err := ctrl.engagement.ToggleVote(ctx.Request.Context(), middleware.GetCaller(ctx), kind, targetID)
		if err != nil {
			apperrors.RespondWithServiceError(ctx, err, "toggle vote")
			return
		}

		ctx.JSON(http.StatusOK, result)
	}
}

// CountVotes 투표 수 조회
func (ctrl *EngagementController) CountVotes(kind model.TargetKind) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		targetID, ok := parseIDParam(ctx, "id")
		if !ok {
			return
		}

		result, err := ctrl.engagement.CountVotes(ctx.Request.Context(), middleware.GetCaller(ctx), kind, targetID)
		if err != nil {
			apperrors.RespondWithServiceError(ctx, err, "count votes")
			return
		}

		ctx.JSON(http.StatusOK, result)
	}
}

// SubmitReport 신고 접수 (reason: spam, inappropriate, fake, other)
func (ctrl *EngagementController) SubmitReport(kind model.TargetKind) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		targetID, ok := parseIDParam(ctx, "id")
		if !ok {
			return
		}

		var req model.CreateReportRequest
		if !bindJSON(ctx, &req) {
			return
		}

		report, err := ctrl.reports.SubmitReport(ctx.Request.Context(), middleware.GetCaller(ctx), kind, targetID, &req)
		if err != nil {
			apperrors.RespondWithServiceError(ctx, err, "submit report")
			return
		}

		ctx.JSON(http.StatusCreated, gin.H{
			"message": "신고가 접수되었습니다",
			"report":  report,
		})
	}
}
