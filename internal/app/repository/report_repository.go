package repository

import (
	"context"
	"fmt"

	"github.com/ikkim/realty-review-backend/internal/app/model"
	"gorm.io/gorm"
)

type ReportRepository interface {
	CreateReviewReport(ctx context.Context, report *model.Report) error
	CreateReplyReport(ctx context.Context, report *model.ReplyReport) error
	List(ctx context.Context, kind model.TargetKind, status *model.ReportStatus, limit, offset int) ([]model.ReportView, int64, error)
	UpdateStatus(ctx context.Context, kind model.TargetKind, id uint, status model.ReportStatus) error
}

type reportRepository struct {
	db *gorm.DB
}

func NewReportRepository(db *gorm.DB) ReportRepository {
	return &reportRepository{db: db}
}

// CreateReviewReport 리뷰 신고 저장
func (r *reportRepository) CreateReviewReport(ctx context.Context, report *model.Report) error {
	return r.db.WithContext(ctx).Create(report).Error
}

// CreateReplyReport 답글 신고 저장
func (r *reportRepository) CreateReplyReport(ctx context.Context, report *model.ReplyReport) error {
	return r.db.WithContext(ctx).Create(report).Error
}

// List 신고 목록 조회 (최신순)
func (r *reportRepository) List(
	ctx context.Context,
	kind model.TargetKind,
	status *model.ReportStatus,
	limit, offset int,
) ([]model.ReportView, int64, error) {
	var (
		m       interface{}
		columns string
	)
	switch kind {
	case model.TargetReview:
		m, columns = &model.Report{}, "id, review_id AS target_id, reporter_id, reason, details, status, created_at"
	case model.TargetReply:
		m, columns = &model.ReplyReport{}, "id, reply_id AS target_id, reporter_id, reason, details, status, created_at"
	default:
		return nil, 0, fmt.Errorf("%w: target kind %q", model.ErrInvalidEnum, kind)
	}

	base := r.db.WithContext(ctx).Model(m)
	if status != nil {
		base = base.Where("status = ?", *status)
	}

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query := base.Session(&gorm.Session{}).
		Select(columns).
		Order("created_at DESC").
		Order("id DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	var views []model.ReportView
	if err := query.Scan(&views).Error; err != nil {
		return nil, 0, err
	}
	for i := range views {
		views[i].TargetKind = kind
	}
	return views, total, nil
}

// UpdateStatus 신고 처리 상태 변경
func (r *reportRepository) UpdateStatus(ctx context.Context, kind model.TargetKind, id uint, status model.ReportStatus) error {
	var m interface{}
	switch kind {
	case model.TargetReview:
		m = &model.Report{}
	case model.TargetReply:
		m = &model.ReplyReport{}
	default:
		return fmt.Errorf("%w: target kind %q", model.ErrInvalidEnum, kind)
	}
	return requireAffected(r.db.WithContext(ctx).Model(m).Where("id = ?", id).Update("status", status))
}
