package model

import "time"

// Report 리뷰 신고 (같은 신고자의 중복 신고 허용)
type Report struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	ReviewID   uint         `gorm:"not null;index" json:"review_id"`
	ReporterID uint         `gorm:"not null;index" json:"reporter_id"`
	Reason     ReportReason `gorm:"type:varchar(20);not null" json:"reason"`
	Details    *string      `gorm:"type:text" json:"details,omitempty"`
	Status     ReportStatus `gorm:"type:varchar(20);not null;index" json:"status"`
}

func (Report) TableName() string {
	return "reports"
}

// ReplyReport 답글 신고
type ReplyReport struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	ReplyID    uint         `gorm:"not null;index" json:"reply_id"`
	ReporterID uint         `gorm:"not null;index" json:"reporter_id"`
	Reason     ReportReason `gorm:"type:varchar(20);not null" json:"reason"`
	Details    *string      `gorm:"type:text" json:"details,omitempty"`
	Status     ReportStatus `gorm:"type:varchar(20);not null;index" json:"status"`
}

func (ReplyReport) TableName() string {
	return "reply_reports"
}

// ReportView 관리자용 신고 목록 항목 (리뷰/답글 공통)
type ReportView struct {
	ID         uint         `json:"id"`
	TargetKind TargetKind   `json:"target_kind"`
	TargetID   uint         `json:"target_id"`
	ReporterID uint         `json:"reporter_id"`
	Reason     ReportReason `json:"reason"`
	Details    *string      `json:"details,omitempty"`
	Status     ReportStatus `json:"status"`
	CreatedAt  time.Time    `json:"created_at"`
}

// CreateReportRequest 신고 요청
type CreateReportRequest struct {
	Reason  string  `json:"reason" binding:"required"`
	Details *string `json:"details" binding:"omitempty,max=2000"`
}

// UpdateReportStatusRequest 신고 처리 상태 변경 요청
type UpdateReportStatusRequest struct {
	Status string `json:"status" binding:"required"`
}
