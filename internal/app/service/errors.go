package service

import (
	"errors"
	"fmt"

	"github.com/ikkim/realty-review-backend/internal/app/model"
	"gorm.io/gorm"
)

// 에러 종류 (errors.Is로 판별)
var (
	ErrValidation      = errors.New("validation failed")
	ErrForbidden       = errors.New("forbidden")
	ErrConflict        = errors.New("conflict")
	ErrNotFound        = errors.New("not found")
	ErrUnauthenticated = errors.New("unauthenticated")
)

var (
	ErrReviewNotFound       = fmt.Errorf("%w: review not found", ErrNotFound)
	ErrReplyNotFound        = fmt.Errorf("%w: reply not found", ErrNotFound)
	ErrCompanyNotFound      = fmt.Errorf("%w: company not found", ErrNotFound)
	ErrReportNotFound       = fmt.Errorf("%w: report not found", ErrNotFound)
	ErrNotificationNotFound = fmt.Errorf("%w: notification not found", ErrNotFound)

	ErrReviewHasReply    = fmt.Errorf("%w: cannot edit a review that has been replied to", ErrForbidden)
	ErrNotReviewAuthor   = fmt.Errorf("%w: only the author can modify this review", ErrForbidden)
	ErrReviewRemoved     = fmt.Errorf("%w: review has been removed by moderation", ErrForbidden)
	ErrNotRepresentative = fmt.Errorf("%w: caller is not a representative of this company", ErrForbidden)
	ErrNotReplyAuthor    = fmt.Errorf("%w: only the author can modify this reply", ErrForbidden)
	ErrReplyRemoved      = fmt.Errorf("%w: reply has been removed by moderation", ErrForbidden)
	ErrAdminOnly         = fmt.Errorf("%w: admin privileges required", ErrForbidden)
	ErrNotRecipient      = fmt.Errorf("%w: notification belongs to another user", ErrForbidden)

	ErrReplyExists = fmt.Errorf("%w: review already has a reply", ErrConflict)

	ErrLoginRequired = fmt.Errorf("%w: caller identity is required", ErrUnauthenticated)
)

// ValidationError 잘못되었거나 누락된 입력
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

func newValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// notFoundOr gorm.ErrRecordNotFound를 도메인 NotFound 에러로 변환
func notFoundOr(err error, notFound error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound
	}
	return err
}

// enumError 열거형 파싱 실패를 필드 검증 에러로 변환
func enumError(field string, err error) error {
	if errors.Is(err, model.ErrInvalidEnum) {
		return newValidationError(field, err.Error())
	}
	return err
}
