package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/realty-review-backend/internal/app/model"
	"github.com/ikkim/realty-review-backend/internal/app/service"
	apperrors "github.com/ikkim/realty-review-backend/internal/errors"
	"github.com/ikkim/realty-review-backend/internal/middleware"
)

// ReviewController 리뷰 컨트롤러
type ReviewController struct {
	service service.ReviewService
}

func NewReviewController(service service.ReviewService) *ReviewController {
	return &ReviewController{service: service}
}

// ListCompanyReviews godoc
// @Summary 회사 리뷰 목록 조회
// @Description 게시된 리뷰를 최신순으로 조회합니다 (평균 평점, 투표 수, 답글 포함)
// @Tags reviews
// @Produce json
// @Param id path int true "회사 ID"
// @Success 200 {object} model.CompanyReviews
// @Failure 404 {object} apperrors.ErrorResponse
// @Router /api/v1/companies/{id}/reviews [get]
func (ctrl *ReviewController) ListCompanyReviews(ctx *gin.Context) {
	companyID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	result, err := ctrl.service.ListPublishedReviewsForCompany(ctx.Request.Context(), companyID, middleware.GetCaller(ctx))
	if err != nil {
		apperrors.RespondWithServiceError(ctx, err, "list company reviews")
		return
	}

	ctx.JSON(http.StatusOK, result)
}

// CreateReview godoc
// @Summary 리뷰 작성
// @Description 네 가지 세부 평점(1-5)은 필수이며 리뷰는 즉시 게시됩니다
// @Tags reviews
// @Accept json
// @Produce json
// @Param id path int true "회사 ID"
// @Param request body model.CreateReviewRequest true "리뷰 내용"
// @Success 201 {object} gin.H{review=model.Review}
// @Failure 400 {object} apperrors.ErrorResponse
// @Failure 401 {object} apperrors.ErrorResponse
// @Security BearerAuth
// @Router /api/v1/companies/{id}/reviews [post]
func (ctrl *ReviewController) CreateReview(ctx *gin.Context) {
	companyID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req model.CreateReviewRequest
	if !bindJSON(ctx, &req) {
		return
	}

	review, err := ctrl.service.CreateReview(ctx.Request.Context(), middleware.GetCaller(ctx), companyID, &req)
	if err != nil {
		apperrors.RespondWithServiceError(ctx, err, "create review")
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"message": "리뷰가 등록되었습니다",
		"review":  review,
	})
}

// GetDashboard 회사 대표자 대시보드
func (ctrl *ReviewController) GetDashboard(ctx *gin.Context) {
	companyID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	dashboard, err := ctrl.service.GetCompanyDashboard(ctx.Request.Context(), middleware.GetCaller(ctx), companyID)
	if err != nil {
		apperrors.RespondWithServiceError(ctx, err, "get company dashboard")
		return
	}

	ctx.JSON(http.StatusOK, dashboard)
}

// UpdateReview 리뷰 수정 (작성자, 답글 전)
func (ctrl *ReviewController) UpdateReview(ctx *gin.Context) {
	reviewID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req model.UpdateReviewRequest
	if !bindJSON(ctx, &req) {
		return
	}

	review, err := ctrl.service.EditReview(ctx.Request.Context(), middleware.GetCaller(ctx), reviewID, &req)
	if err != nil {
		apperrors.RespondWithServiceError(ctx, err, "update review")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message": "리뷰가 수정되었습니다",
		"review":  review,
	})
}

// DeleteReview 리뷰 삭제 (작성자, 답글 전)
func (ctrl *ReviewController) DeleteReview(ctx *gin.Context) {
	reviewID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := ctrl.service.DeleteReview(ctx.Request.Context(), middleware.GetCaller(ctx), reviewID); err != nil {
		apperrors.RespondWithServiceError(ctx, err, "delete review")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "리뷰가 삭제되었습니다"})
}
