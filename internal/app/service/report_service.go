package service

import (
	"context"

	"github.com/ikkim/realty-review-backend/internal/app/model"
	"github.com/ikkim/realty-review-backend/internal/app/repository"
	"github.com/ikkim/realty-review-backend/pkg/logger"
)

const maxReportDetailsLength = 2000

// ReportService 리뷰/답글 신고 서비스
type ReportService interface {
	SubmitReport(ctx context.Context, caller model.Caller, kind model.TargetKind, targetID uint, req *model.CreateReportRequest) (*model.ReportView, error)
}

type reportService struct {
	reportRepo repository.ReportRepository
	targets    targetResolver
}

func NewReportService(
	reportRepo repository.ReportRepository,
	reviewRepo repository.ReviewRepository,
	replyRepo repository.ReplyRepository,
) ReportService {
	return &reportService{
		reportRepo: reportRepo,
		targets:    targetResolver{reviewRepo: reviewRepo, replyRepo: replyRepo},
	}
}

// SubmitReport 신고 접수 (같은 사용자의 반복 신고도 각각 저장)
func (s *reportService) SubmitReport(
	ctx context.Context,
	caller model.Caller,
	kind model.TargetKind,
	targetID uint,
	req *model.CreateReportRequest,
) (*model.ReportView, error) {
	if !caller.Authenticated() {
		return nil, ErrLoginRequired
	}

	reason, err := model.ParseReportReason(req.Reason)
	if err != nil {
		return nil, enumError("reason", err)
	}

	details := trimmedOrNil(req.Details)
	if details != nil && len([]rune(*details)) > maxReportDetailsLength {
		return nil, newValidationError("details", "details are too long")
	}

	if err := s.targets.ensureVisible(ctx, kind, targetID); err != nil {
		return nil, err
	}

	view := &model.ReportView{
		TargetKind: kind,
		TargetID:   targetID,
		ReporterID: caller.ID,
		Reason:     reason,
		Details:    details,
		Status:     model.ReportStatusReceived,
	}

	switch kind {
	case model.TargetReview:
		report := &model.Report{
			ReviewID:   targetID,
			ReporterID: caller.ID,
			Reason:     reason,
			Details:    details,
			Status:     model.ReportStatusReceived,
		}
		err = s.reportRepo.CreateReviewReport(ctx, report)
		view.ID, view.CreatedAt = report.ID, report.CreatedAt
	case model.TargetReply:
		report := &model.ReplyReport{
			ReplyID:    targetID,
			ReporterID: caller.ID,
			Reason:     reason,
			Details:    details,
			Status:     model.ReportStatusReceived,
		}
		err = s.reportRepo.CreateReplyReport(ctx, report)
		view.ID, view.CreatedAt = report.ID, report.CreatedAt
	}
	if err != nil {
		logger.Error("Failed to create report", err, map[string]interface{}{
			"target_kind": kind,
			"target_id":   targetID,
		})
		return nil, err
	}

	logger.Info("Report submitted", map[string]interface{}{
		"report_id":   view.ID,
		"target_kind": kind,
		"target_id":   targetID,
		"reporter_id": caller.ID,
		"reason":      reason,
	})
	return view, nil
}
