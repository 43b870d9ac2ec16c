package model

import "time"

// ReplyView 공개 표시용 답글
type ReplyView struct {
	ID        uint      `json:"id"`
	ReviewID  uint      `json:"review_id"`
	AuthorID  uint      `json:"author_id"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	VoteCount int64     `json:"vote_count"`
	Voted     bool      `json:"voted"`
}

// ReviewView 공개 표시용 리뷰 (익명 리뷰는 작성자 정보 제거)
type ReviewView struct {
	ID               uint         `json:"id"`
	AuthorID         *uint        `json:"author_id"`
	AuthorName       string       `json:"author_name,omitempty"`
	CompanyID        uint         `json:"company_id"`
	Title            *string      `json:"title,omitempty"`
	Body             *string      `json:"body,omitempty"`
	Communication    int          `json:"communication"`
	Responsiveness   int          `json:"responsiveness"`
	Value            int          `json:"value"`
	Friendliness     int          `json:"friendliness"`
	OverallRating    *float64     `json:"overall_rating"`
	DateOfExperience *time.Time   `json:"date_of_experience,omitempty"`
	IsAnonymous      bool         `json:"is_anonymous"`
	Status           ReviewStatus `json:"status"`
	CreatedAt        time.Time    `json:"created_at"`
	VoteCount        int64        `json:"vote_count"`
	Voted            bool         `json:"voted"`
	Reply            *ReplyView   `json:"reply,omitempty"`
}

// CompanyReviews 회사 리뷰 목록과 평균 평점
type CompanyReviews struct {
	CompanyID     uint         `json:"company_id"`
	CompanyName   string       `json:"company_name"`
	AverageRating float64      `json:"average_rating"`
	ReviewCount   int          `json:"review_count"`
	Reviews       []ReviewView `json:"reviews"`
}

// CompanyDashboard 회사 대표자용 대시보드
type CompanyDashboard struct {
	CompanyReviews
	AwaitingReplyCount int `json:"awaiting_reply_count"`
}

// VoteResult 투표 토글 결과
type VoteResult struct {
	TargetKind TargetKind `json:"target_kind"`
	TargetID   uint       `json:"target_id"`
	VoteCount  int64      `json:"vote_count"`
	Voted      bool       `json:"voted"`
}

// ModerationResult 관리자 조치 결과 (알림 실패는 경고로만 전달)
type ModerationResult struct {
	TargetKind TargetKind `json:"target_kind"`
	TargetID   uint       `json:"target_id"`
	Action     string     `json:"action"`
	Warnings   []string   `json:"warnings,omitempty"`
}
