package service

import (
	"context"
	"fmt"

	"github.com/ikkim/realty-review-backend/internal/app/model"
	"github.com/ikkim/realty-review-backend/internal/app/repository"
	"github.com/ikkim/realty-review-backend/pkg/logger"
)

// 관리자 조치 종류
const (
	ActionHide   = "hide"
	ActionDelete = "delete"
)

// ModerationService 관리자 전용 숨김/삭제/신고 처리
type ModerationService interface {
	HideReview(ctx context.Context, caller model.Caller, reviewID uint) (*model.ModerationResult, error)
	HideReply(ctx context.Context, caller model.Caller, replyID uint) (*model.ModerationResult, error)
	DeleteReview(ctx context.Context, caller model.Caller, reviewID uint) (*model.ModerationResult, error)
	DeleteReply(ctx context.Context, caller model.Caller, replyID uint) (*model.ModerationResult, error)
	ListReports(ctx context.Context, caller model.Caller, kind model.TargetKind, status *model.ReportStatus, page, pageSize int) ([]model.ReportView, int64, error)
	UpdateReportStatus(ctx context.Context, caller model.Caller, kind model.TargetKind, reportID uint, status model.ReportStatus) error
}

type moderationService struct {
	reviewRepo repository.ReviewRepository
	replyRepo  repository.ReplyRepository
	reportRepo repository.ReportRepository
	notifier   Dispatcher
}

func NewModerationService(
	reviewRepo repository.ReviewRepository,
	replyRepo repository.ReplyRepository,
	reportRepo repository.ReportRepository,
	notifier Dispatcher,
) ModerationService {
	return &moderationService{
		reviewRepo: reviewRepo,
		replyRepo:  replyRepo,
		reportRepo: reportRepo,
		notifier:   notifier,
	}
}

func requireAdmin(caller model.Caller) error {
	if !IsAdmin(caller) {
		return ErrAdminOnly
	}
	return nil
}

// HideReview 리뷰 숨김 (행은 감사 목적으로 유지)
func (s *moderationService) HideReview(ctx context.Context, caller model.Caller, reviewID uint) (*model.ModerationResult, error) {
	if err := requireAdmin(caller); err != nil {
		return nil, err
	}

	if err := s.reviewRepo.UpdateStatus(ctx, reviewID, model.ReviewStatusRemoved); err != nil {
		return nil, notFoundOr(err, ErrReviewNotFound)
	}

	logger.Info("Review hidden by admin", map[string]interface{}{
		"review_id": reviewID,
		"admin_id":  caller.ID,
	})
	return &model.ModerationResult{TargetKind: model.TargetReview, TargetID: reviewID, Action: ActionHide}, nil
}

// HideReply 답글 숨김
func (s *moderationService) HideReply(ctx context.Context, caller model.Caller, replyID uint) (*model.ModerationResult, error) {
	if err := requireAdmin(caller); err != nil {
		return nil, err
	}

	if err := s.replyRepo.UpdateStatus(ctx, replyID, model.ReplyStatusRemoved); err != nil {
		return nil, notFoundOr(err, ErrReplyNotFound)
	}

	logger.Info("Reply hidden by admin", map[string]interface{}{
		"reply_id": replyID,
		"admin_id": caller.ID,
	})
	return &model.ModerationResult{TargetKind: model.TargetReply, TargetID: replyID, Action: ActionHide}, nil
}

// DeleteReview 리뷰 영구 삭제 후 작성자에게 알림
// 알림 문구에 필요한 정보는 삭제 전에 읽어둔다
func (s *moderationService) DeleteReview(ctx context.Context, caller model.Caller, reviewID uint) (*model.ModerationResult, error) {
	if err := requireAdmin(caller); err != nil {
		return nil, err
	}

	review, err := s.reviewRepo.FindByID(ctx, reviewID)
	if err != nil {
		return nil, notFoundOr(err, ErrReviewNotFound)
	}
	authorID := review.AuthorID
	companyID := review.CompanyID
	companyName := companyNameOf(review.Company)

	if err := s.reviewRepo.DeleteCascade(ctx, reviewID); err != nil {
		logger.Error("Failed to delete review", err, map[string]interface{}{
			"review_id": reviewID,
		})
		return nil, notFoundOr(err, ErrReviewNotFound)
	}

	logger.Info("Review deleted by admin", map[string]interface{}{
		"review_id": reviewID,
		"admin_id":  caller.ID,
	})

	result := &model.ModerationResult{TargetKind: model.TargetReview, TargetID: reviewID, Action: ActionDelete}
	if authorID == nil {
		logger.Info("Review author unknown, skipping deletion notice", map[string]interface{}{
			"review_id": reviewID,
		})
		return result, nil
	}

	message := s.notifier.Message(model.NotificationTypeReviewDeleted, companyName)
	if !s.notifier.Notify(ctx, *authorID, model.NotificationTypeReviewDeleted, message, CompanyLink(companyID)) {
		result.Warnings = append(result.Warnings, fmt.Sprintf("failed to notify review author %d", *authorID))
	}
	return result, nil
}

// DeleteReply 답글 영구 삭제 후 답글 작성자에게 알림
func (s *moderationService) DeleteReply(ctx context.Context, caller model.Caller, replyID uint) (*model.ModerationResult, error) {
	if err := requireAdmin(caller); err != nil {
		return nil, err
	}

	reply, err := s.replyRepo.FindByID(ctx, replyID)
	if err != nil {
		return nil, notFoundOr(err, ErrReplyNotFound)
	}
	authorID := reply.AuthorID
	var companyID uint
	companyName := ""
	if reply.Review != nil {
		companyID = reply.Review.CompanyID
		companyName = companyNameOf(reply.Review.Company)
	}

	if err := s.replyRepo.DeleteCascade(ctx, replyID); err != nil {
		logger.Error("Failed to delete reply", err, map[string]interface{}{
			"reply_id": replyID,
		})
		return nil, notFoundOr(err, ErrReplyNotFound)
	}

	logger.Info("Reply deleted by admin", map[string]interface{}{
		"reply_id": replyID,
		"admin_id": caller.ID,
	})

	result := &model.ModerationResult{TargetKind: model.TargetReply, TargetID: replyID, Action: ActionDelete}
	message := s.notifier.Message(model.NotificationTypeReplyDeleted, companyName)
	if !s.notifier.Notify(ctx, authorID, model.NotificationTypeReplyDeleted, message, CompanyLink(companyID)) {
		result.Warnings = append(result.Warnings, fmt.Sprintf("failed to notify reply author %d", authorID))
	}
	return result, nil
}

// ListReports 신고 목록 (종류별, 상태 필터 선택)
func (s *moderationService) ListReports(
	ctx context.Context,
	caller model.Caller,
	kind model.TargetKind,
	status *model.ReportStatus,
	page, pageSize int,
) ([]model.ReportView, int64, error) {
	if err := requireAdmin(caller); err != nil {
		return nil, 0, err
	}

	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	if pageSize > 100 {
		pageSize = 100
	}

	return s.reportRepo.List(ctx, kind, status, pageSize, (page-1)*pageSize)
}

// UpdateReportStatus 신고 처리 상태 변경 (reviewed / dismissed)
func (s *moderationService) UpdateReportStatus(
	ctx context.Context,
	caller model.Caller,
	kind model.TargetKind,
	reportID uint,
	status model.ReportStatus,
) error {
	if err := requireAdmin(caller); err != nil {
		return err
	}
	if status != model.ReportStatusReviewed && status != model.ReportStatusDismissed {
		return newValidationError("status", "status must be reviewed or dismissed")
	}

	if err := s.reportRepo.UpdateStatus(ctx, kind, reportID, status); err != nil {
		return notFoundOr(err, ErrReportNotFound)
	}

	logger.Info("Report status updated", map[string]interface{}{
		"target_kind": kind,
		"report_id":   reportID,
		"status":      status,
		"admin_id":    caller.ID,
	})
	return nil
}

func companyNameOf(company *model.Company) string {
	if company == nil {
		return ""
	}
	return company.Name
}
