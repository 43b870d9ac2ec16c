package model

import (
	"database/sql/driver"
	"errors"
	"fmt"
)

// ErrInvalidEnum 허용되지 않은 상태/종류 값
var ErrInvalidEnum = errors.New("invalid enum value")

// ReviewStatus 리뷰 상태
type ReviewStatus string

const (
	ReviewStatusPendingApproval ReviewStatus = "pending_approval" // 예약됨 (현재 흐름에서는 사용하지 않음)
	ReviewStatusPublished       ReviewStatus = "published"
	ReviewStatusRemoved         ReviewStatus = "removed"
)

func ParseReviewStatus(s string) (ReviewStatus, error) {
	switch st := ReviewStatus(s); st {
	case ReviewStatusPendingApproval, ReviewStatusPublished, ReviewStatusRemoved:
		return st, nil
	}
	return "", fmt.Errorf("%w: review status %q", ErrInvalidEnum, s)
}

func (s ReviewStatus) Value() (driver.Value, error) {
	if _, err := ParseReviewStatus(string(s)); err != nil {
		return nil, err
	}
	return string(s), nil
}

func (s *ReviewStatus) Scan(src interface{}) error {
	raw, err := scanString(src)
	if err != nil {
		return err
	}
	parsed, err := ParseReviewStatus(raw)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// ReplyStatus 회사 답글 상태
type ReplyStatus string

const (
	ReplyStatusPublished ReplyStatus = "published"
	ReplyStatusRemoved   ReplyStatus = "removed"
)

func ParseReplyStatus(s string) (ReplyStatus, error) {
	switch st := ReplyStatus(s); st {
	case ReplyStatusPublished, ReplyStatusRemoved:
		return st, nil
	}
	return "", fmt.Errorf("%w: reply status %q", ErrInvalidEnum, s)
}

func (s ReplyStatus) Value() (driver.Value, error) {
	if _, err := ParseReplyStatus(string(s)); err != nil {
		return nil, err
	}
	return string(s), nil
}

func (s *ReplyStatus) Scan(src interface{}) error {
	raw, err := scanString(src)
	if err != nil {
		return err
	}
	parsed, err := ParseReplyStatus(raw)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// ReportStatus 신고 처리 상태
type ReportStatus string

const (
	ReportStatusReceived  ReportStatus = "received"
	ReportStatusReviewed  ReportStatus = "reviewed"
	ReportStatusDismissed ReportStatus = "dismissed"
)

func ParseReportStatus(s string) (ReportStatus, error) {
	switch st := ReportStatus(s); st {
	case ReportStatusReceived, ReportStatusReviewed, ReportStatusDismissed:
		return st, nil
	}
	return "", fmt.Errorf("%w: report status %q", ErrInvalidEnum, s)
}

func (s ReportStatus) Value() (driver.Value, error) {
	if _, err := ParseReportStatus(string(s)); err != nil {
		return nil, err
	}
	return string(s), nil
}

func (s *ReportStatus) Scan(src interface{}) error {
	raw, err := scanString(src)
	if err != nil {
		return err
	}
	parsed, err := ParseReportStatus(raw)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// ReportReason 신고 사유
type ReportReason string

const (
	ReportReasonSpam          ReportReason = "spam"
	ReportReasonInappropriate ReportReason = "inappropriate"
	ReportReasonFake          ReportReason = "fake"
	ReportReasonOther         ReportReason = "other"
)

func ParseReportReason(s string) (ReportReason, error) {
	switch r := ReportReason(s); r {
	case ReportReasonSpam, ReportReasonInappropriate, ReportReasonFake, ReportReasonOther:
		return r, nil
	}
	return "", fmt.Errorf("%w: report reason %q", ErrInvalidEnum, s)
}

func (r ReportReason) Value() (driver.Value, error) {
	if _, err := ParseReportReason(string(r)); err != nil {
		return nil, err
	}
	return string(r), nil
}

func (r *ReportReason) Scan(src interface{}) error {
	raw, err := scanString(src)
	if err != nil {
		return err
	}
	parsed, err := ParseReportReason(raw)
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// TargetKind 투표/신고 대상 종류
type TargetKind string

const (
	TargetReview TargetKind = "review"
	TargetReply  TargetKind = "reply"
)

func ParseTargetKind(s string) (TargetKind, error) {
	switch k := TargetKind(s); k {
	case TargetReview, TargetReply:
		return k, nil
	}
	return "", fmt.Errorf("%w: target kind %q", ErrInvalidEnum, s)
}

func scanString(src interface{}) (string, error) {
	switch v := src.(type) {
	case string:
		return v, nil
	case []byte:
		return string(v), nil
	case nil:
		return "", fmt.Errorf("%w: NULL", ErrInvalidEnum)
	default:
		return "", fmt.Errorf("%w: unsupported type %T", ErrInvalidEnum, src)
	}
}
