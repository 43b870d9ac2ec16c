package service

import (
	"context"
	"errors"

	"github.com/ikkim/realty-review-backend/internal/app/model"
	"github.com/ikkim/realty-review-backend/internal/app/repository"
	"github.com/ikkim/realty-review-backend/pkg/logger"
)

// EngagementService 도움돼요 투표 서비스
type EngagementService interface {
	ToggleVote(ctx context.Context, caller model.Caller, kind model.TargetKind, targetID uint) (*model.VoteResult, error)
	CountVotes(ctx context.Context, caller model.Caller, kind model.TargetKind, targetID uint) (*model.VoteResult, error)
}

type engagementService struct {
	voteRepo repository.VoteRepository
	targets  targetResolver
}

func NewEngagementService(
	voteRepo repository.VoteRepository,
	reviewRepo repository.ReviewRepository,
	replyRepo repository.ReplyRepository,
) EngagementService {
	return &engagementService{
		voteRepo: voteRepo,
		targets:  targetResolver{reviewRepo: reviewRepo, replyRepo: replyRepo},
	}
}

// ToggleVote 투표가 있으면 취소, 없으면 추가
// 동시 요청은 (대상, 투표자) 기본키로 정리되며 최종 상태는 행 1개 또는 0개
func (s *engagementService) ToggleVote(
	ctx context.Context,
	caller model.Caller,
	kind model.TargetKind,
	targetID uint,
) (*model.VoteResult, error) {
	if !caller.Authenticated() {
		return nil, ErrLoginRequired
	}
	if err := s.targets.ensureVisible(ctx, kind, targetID); err != nil {
		return nil, err
	}

	exists, err := s.voteRepo.Exists(ctx, kind, targetID, caller.ID)
	if err != nil {
		return nil, err
	}

	voted := !exists
	if exists {
		if _, err := s.voteRepo.Delete(ctx, kind, targetID, caller.ID); err != nil {
			logger.Error("Failed to remove vote", err, map[string]interface{}{
				"target_kind": kind,
				"target_id":   targetID,
				"voter_id":    caller.ID,
			})
			return nil, err
		}
	} else if err := s.voteRepo.Insert(ctx, kind, targetID, caller.ID); err != nil && !errors.Is(err, repository.ErrDuplicate) {
		logger.Error("Failed to add vote", err, map[string]interface{}{
			"target_kind": kind,
			"target_id":   targetID,
			"voter_id":    caller.ID,
		})
		return nil, err
	}

	count, err := s.voteRepo.Count(ctx, kind, targetID)
	if err != nil {
		return nil, err
	}

	logger.Debug("Vote toggled", map[string]interface{}{
		"target_kind": kind,
		"target_id":   targetID,
		"voter_id":    caller.ID,
		"voted":       voted,
	})

	return &model.VoteResult{
		TargetKind: kind,
		TargetID:   targetID,
		VoteCount:  count,
		Voted:      voted,
	}, nil
}

// CountVotes 대상의 투표 수 (로그인한 경우 본인 투표 여부 포함)
func (s *engagementService) CountVotes(
	ctx context.Context,
	caller model.Caller,
	kind model.TargetKind,
	targetID uint,
) (*model.VoteResult, error) {
	if err := s.targets.ensureVisible(ctx, kind, targetID); err != nil {
		return nil, err
	}

	count, err := s.voteRepo.Count(ctx, kind, targetID)
	if err != nil {
		return nil, err
	}

	result := &model.VoteResult{TargetKind: kind, TargetID: targetID, VoteCount: count}
	if caller.Authenticated() {
		if result.Voted, err = s.voteRepo.Exists(ctx, kind, targetID, caller.ID); err != nil {
			return nil, err
		}
	}
	return result, nil
}
