package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/realty-review-backend/internal/app/model"
	"github.com/ikkim/realty-review-backend/internal/app/service"
	apperrors "github.com/ikkim/realty-review-backend/internal/errors"
	"github.com/ikkim/realty-review-backend/internal/middleware"
)

// ReplyController 회사 답글 컨트롤러
type ReplyController struct {
	service service.ReplyService
}

func NewReplyController(service service.ReplyService) *ReplyController {
	return &ReplyController{service: service}
}

// CreateReply godoc
// @Summary 리뷰 답글 작성
// @Description 회사 대표자만 작성할 수 있으며 리뷰당 하나만 허용됩니다
// @Tags replies
// @Accept json
// @Produce json
// @Param id path int true "리뷰 ID"
// @Param request body model.CreateReplyRequest true "답글 내용"
// @Success 201 {object} gin.H{reply=model.CompanyReply}
// @Failure 403 {object} apperrors.ErrorResponse
// @Failure 409 {object} apperrors.ErrorResponse
// @Security BearerAuth
// @Router /api/v1/reviews/{id}/reply [post]
func (ctrl *ReplyController) CreateReply(ctx *gin.Context) {
	reviewID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req model.CreateReplyRequest
	if !bindJSON(ctx, &req) {
		return
	}

	reply, err := ctrl.service.SubmitReply(ctx.Request.Context(), middleware.GetCaller(ctx), reviewID, req.Body)
	if err != nil {
		apperrors.RespondWithServiceError(ctx, err, "create reply")
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"message": "답글이 등록되었습니다",
		"reply":   reply,
	})
}

func (ctrl *ReplyController) UpdateReply(ctx *gin.Context) {
	replyID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req model.UpdateReplyRequest
	if !bindJSON(ctx, &req) {
		return
	}

	reply, err := ctrl.service.EditReply(ctx.Request.Context(), middleware.GetCaller(ctx), replyID, req.Body)
	if err != nil {
		apperrors.RespondWithServiceError(ctx, err, "update reply")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message": "답글이 수정되었습니다",
		"reply":   reply,
	})
}

func (ctrl *ReplyController) DeleteReply(ctx *gin.Context) {
	replyID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := ctrl.service.DeleteReply(ctx.Request.Context(), middleware.GetCaller(ctx), replyID); err != nil {
		apperrors.RespondWithServiceError(ctx, err, "delete reply")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "답글이 삭제되었습니다"})
}
