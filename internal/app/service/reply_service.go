package service

import (
	"context"
	"errors"
	"strings"

	"github.com/ikkim/realty-review-backend/internal/app/model"
	"github.com/ikkim/realty-review-backend/internal/app/repository"
	"github.com/ikkim/realty-review-backend/pkg/logger"
)

const maxReplyLength = 5000

// ReplyService 회사 답글 서비스
type ReplyService interface {
	SubmitReply(ctx context.Context, caller model.Caller, reviewID uint, body string) (*model.CompanyReply, error)
	EditReply(ctx context.Context, caller model.Caller, replyID uint, body string) (*model.CompanyReply, error)
	DeleteReply(ctx context.Context, caller model.Caller, replyID uint) error
}

type replyService struct {
	replyRepo  repository.ReplyRepository
	reviewRepo repository.ReviewRepository
	notifier   Dispatcher
}

func NewReplyService(
	replyRepo repository.ReplyRepository,
	reviewRepo repository.ReviewRepository,
	notifier Dispatcher,
) ReplyService {
	return &replyService{
		replyRepo:  replyRepo,
		reviewRepo: reviewRepo,
		notifier:   notifier,
	}
}

// SubmitReply 회사 대표자의 리뷰 답글 작성 (리뷰당 1개)
func (s *replyService) SubmitReply(ctx context.Context, caller model.Caller, reviewID uint, body string) (*model.CompanyReply, error) {
	if !caller.Authenticated() {
		return nil, ErrLoginRequired
	}

	body, err := validateReplyBody(body)
	if err != nil {
		return nil, err
	}

	review, err := s.reviewRepo.FindByID(ctx, reviewID)
	if err != nil {
		return nil, notFoundOr(err, ErrReviewNotFound)
	}
	if review.Status != model.ReviewStatusPublished {
		return nil, ErrReviewNotFound
	}

	if !IsRepresentativeOf(caller, review.CompanyID) {
		return nil, ErrNotRepresentative
	}

	hasReply, err := s.reviewRepo.HasReply(ctx, reviewID)
	if err != nil {
		return nil, err
	}
	if hasReply {
		return nil, ErrReplyExists
	}

	reply := &model.CompanyReply{
		ReviewID: reviewID,
		AuthorID: caller.ID,
		Body:     body,
		Status:   model.ReplyStatusPublished,
	}
	if err := s.replyRepo.Create(ctx, reply); err != nil {
		// 동시에 작성된 답글은 유니크 제약으로 걸러짐
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrReplyExists
		}
		logger.Error("Failed to create reply", err, map[string]interface{}{
			"review_id": reviewID,
		})
		return nil, err
	}

	logger.Info("Reply created", map[string]interface{}{
		"reply_id":   reply.ID,
		"review_id":  reviewID,
		"company_id": review.CompanyID,
		"author_id":  caller.ID,
	})

	if review.AuthorID != nil && !IsOwner(review.AuthorID, caller.ID) && review.Company != nil {
		s.notifier.Notify(ctx, *review.AuthorID, model.NotificationTypeNewReply,
			s.notifier.Message(model.NotificationTypeNewReply, review.Company.Name),
			CompanyLink(review.CompanyID))
	}

	return reply, nil
}

// EditReply 답글 작성자 본인만 수정
func (s *replyService) EditReply(ctx context.Context, caller model.Caller, replyID uint, body string) (*model.CompanyReply, error) {
	reply, err := s.loadOwnReply(ctx, caller, replyID)
	if err != nil {
		return nil, err
	}

	body, err = validateReplyBody(body)
	if err != nil {
		return nil, err
	}

	reply.Body = body
	reply.Review = nil
	if err := s.replyRepo.UpdateBody(ctx, reply); err != nil {
		if errors.Is(err, repository.ErrStale) {
			return nil, ErrReplyRemoved
		}
		logger.Error("Failed to update reply", err, map[string]interface{}{
			"reply_id": replyID,
		})
		return nil, err
	}

	logger.Info("Reply updated", map[string]interface{}{
		"reply_id":  replyID,
		"author_id": caller.ID,
	})
	return reply, nil
}

// DeleteReply 답글 작성자 본인 삭제 (투표/신고 함께 삭제)
func (s *replyService) DeleteReply(ctx context.Context, caller model.Caller, replyID uint) error {
	if _, err := s.loadOwnReply(ctx, caller, replyID); err != nil {
		return err
	}

	if err := s.replyRepo.DeleteCascade(ctx, replyID); err != nil {
		logger.Error("Failed to delete reply", err, map[string]interface{}{
			"reply_id": replyID,
		})
		return notFoundOr(err, ErrReplyNotFound)
	}

	logger.Info("Reply deleted by author", map[string]interface{}{
		"reply_id":  replyID,
		"author_id": caller.ID,
	})
	return nil
}

func (s *replyService) loadOwnReply(ctx context.Context, caller model.Caller, replyID uint) (*model.CompanyReply, error) {
	if !caller.Authenticated() {
		return nil, ErrLoginRequired
	}

	reply, err := s.replyRepo.FindByID(ctx, replyID)
	if err != nil {
		return nil, notFoundOr(err, ErrReplyNotFound)
	}
	if !IsOwner(&reply.AuthorID, caller.ID) {
		return nil, ErrNotReplyAuthor
	}
	if reply.Status == model.ReplyStatusRemoved {
		return nil, ErrReplyRemoved
	}
	return reply, nil
}

func validateReplyBody(body string) (string, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return "", newValidationError("body", "reply body must not be empty")
	}
	if len([]rune(body)) > maxReplyLength {
		return "", newValidationError("body", "reply body is too long")
	}
	return body, nil
}
