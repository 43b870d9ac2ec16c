package controller

import (
	"strconv"

	"github.com/gin-gonic/gin"
	apperrors "github.com/ikkim/realty-review-backend/internal/errors"
)

// parseIDParam 경로 파라미터를 ID로 변환 (실패 시 400 응답)
func parseIDParam(ctx *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(ctx.Param(name), 10, 32)
	if err != nil || id == 0 {
		apperrors.BadRequest(ctx, apperrors.ValidationInvalidID, "잘못된 ID입니다")
		return 0, false
	}
	return uint(id), true
}

func parsePage(ctx *gin.Context) (int, int) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(ctx.DefaultQuery("page_size", "20"))
	return page, pageSize
}

func bindJSON(ctx *gin.Context, req interface{}) bool {
	if err := ctx.ShouldBindJSON(req); err != nil {
		apperrors.RespondWithValidationError(ctx, map[string]string{"body": err.Error()})
		return false
	}
	return true
}

// parseOptionalBool 쿼리 값이 없으면 nil, 형식 오류면 400 응답
func parseOptionalBool(ctx *gin.Context, name string) (*bool, bool) {
	raw, present := ctx.GetQuery(name)
	if !present || raw == "" {
		return nil, true
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		apperrors.RespondWithValidationError(ctx, map[string]string{name: "true 또는 false만 허용됩니다"})
		return nil, false
	}
	return &v, true
}
