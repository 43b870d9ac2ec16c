package errors

import (
	"errors"
	"net/http"

	"github.com/ikkim/realty-review-backend/internal/app/service"
	"gorm.io/gorm"
)

// ErrorInfo 에러 정보 구조
type ErrorInfo struct {
	Status  int    // HTTP 상태 코드
	Code    string // 에러 코드 (codes.go 참조)
	Message string // 사용자 친화적 메시지
}

// 구체적인 서비스 에러 → 코드/메시지 (위에서부터 먼저 일치하는 항목 사용)
var knownErrors = []struct {
	err  error
	info ErrorInfo
}{
	{service.ErrCompanyNotFound, ErrorInfo{http.StatusNotFound, CompanyNotFound, "회사를 찾을 수 없습니다"}},
	{service.ErrReviewNotFound, ErrorInfo{http.StatusNotFound, ReviewNotFound, "리뷰를 찾을 수 없습니다"}},
	{service.ErrReplyNotFound, ErrorInfo{http.StatusNotFound, ReplyNotFound, "답글을 찾을 수 없습니다"}},
	{service.ErrReportNotFound, ErrorInfo{http.StatusNotFound, ReportNotFound, "신고 내역을 찾을 수 없습니다"}},
	{service.ErrNotificationNotFound, ErrorInfo{http.StatusNotFound, NotificationNotFound, "알림을 찾을 수 없습니다"}},

	{service.ErrReviewHasReply, ErrorInfo{http.StatusForbidden, ReviewHasReply, "답글이 달린 리뷰는 수정하거나 삭제할 수 없습니다"}},
	{service.ErrReviewRemoved, ErrorInfo{http.StatusForbidden, ReviewRemoved, "관리자에 의해 숨김 처리된 리뷰입니다"}},
	{service.ErrReplyRemoved, ErrorInfo{http.StatusForbidden, ReplyRemoved, "관리자에 의해 숨김 처리된 답글입니다"}},
	{service.ErrNotReviewAuthor, ErrorInfo{http.StatusForbidden, AuthzOwnerOnly, "본인이 작성한 리뷰만 수정할 수 있습니다"}},
	{service.ErrNotReplyAuthor, ErrorInfo{http.StatusForbidden, AuthzOwnerOnly, "본인이 작성한 답글만 수정할 수 있습니다"}},
	{service.ErrNotRecipient, ErrorInfo{http.StatusForbidden, AuthzOwnerOnly, "본인의 알림만 처리할 수 있습니다"}},
	{service.ErrNotRepresentative, ErrorInfo{http.StatusForbidden, AuthzRepresentativeOnly, "회사 대표자만 이용할 수 있습니다"}},
	{service.ErrAdminOnly, ErrorInfo{http.StatusForbidden, AuthzAdminOnly, "관리자만 이용할 수 있습니다"}},

	{service.ErrReplyExists, ErrorInfo{http.StatusConflict, ReplyAlreadyExists, "이미 답글이 작성된 리뷰입니다"}},
}

// 에러 종류별 기본값
var kindDefaults = []struct {
	err  error
	info ErrorInfo
}{
	{service.ErrValidation, ErrorInfo{http.StatusBadRequest, ValidationInvalidInput, "입력값이 올바르지 않습니다"}},
	{service.ErrUnauthenticated, ErrorInfo{http.StatusUnauthorized, AuthUnauthorized, "로그인이 필요합니다"}},
	{service.ErrForbidden, ErrorInfo{http.StatusForbidden, AuthzForbidden, "접근 권한이 없습니다"}},
	{service.ErrNotFound, ErrorInfo{http.StatusNotFound, ResourceNotFound, "요청한 데이터를 찾을 수 없습니다"}},
	{service.ErrConflict, ErrorInfo{http.StatusConflict, ResourceConflict, "이미 처리된 요청입니다"}},
	{gorm.ErrRecordNotFound, ErrorInfo{http.StatusNotFound, ResourceNotFound, "요청한 데이터를 찾을 수 없습니다"}},
}

// ParseError 서비스 에러를 HTTP 응답 정보로 변환
// 분류되지 않은 에러는 내부 정보를 숨기고 500으로 처리
func ParseError(err error) ErrorInfo {
	if err == nil {
		return ErrorInfo{http.StatusInternalServerError, InternalServerError, "서버 오류가 발생했습니다"}
	}

	for _, known := range knownErrors {
		if errors.Is(err, known.err) {
			return known.info
		}
	}
	for _, kind := range kindDefaults {
		if errors.Is(err, kind.err) {
			return kind.info
		}
	}

	return ErrorInfo{
		Status:  http.StatusInternalServerError,
		Code:    InternalServerError,
		Message: "서버 오류가 발생했습니다. 잠시 후 다시 시도해주세요",
	}
}
