package service

import (
	"context"

	"github.com/ikkim/realty-review-backend/internal/app/model"
	"github.com/ikkim/realty-review-backend/internal/app/repository"
)

// targetResolver 투표/신고 대상(리뷰 또는 답글) 존재 확인
type targetResolver struct {
	reviewRepo repository.ReviewRepository
	replyRepo  repository.ReplyRepository
}

// ensureVisible 대상이 존재하고 숨김 처리되지 않았는지 확인
func (t targetResolver) ensureVisible(ctx context.Context, kind model.TargetKind, id uint) error {
	switch kind {
	case model.TargetReview:
		review, err := t.reviewRepo.FindByID(ctx, id)
		if err != nil {
			return notFoundOr(err, ErrReviewNotFound)
		}
		if review.Status != model.ReviewStatusPublished {
			return ErrReviewNotFound
		}
		return nil
	case model.TargetReply:
		reply, err := t.replyRepo.FindByID(ctx, id)
		if err != nil {
			return notFoundOr(err, ErrReplyNotFound)
		}
		// 상위 리뷰가 숨겨지면 답글도 공개 대상에서 빠짐
		if reply.Status != model.ReplyStatusPublished ||
			reply.Review == nil || reply.Review.Status != model.ReviewStatusPublished {
			return ErrReplyNotFound
		}
		return nil
	}
	return newValidationError("target_kind", "unknown target kind")
}
