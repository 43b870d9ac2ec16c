package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/ikkim/realty-review-backend/internal/app/model"
	"github.com/ikkim/realty-review-backend/internal/app/repository"
	"github.com/ikkim/realty-review-backend/pkg/logger"
)

const dateLayout = "2006-01-02"

// ReviewCreatedHook 리뷰가 게시된 직후 호출 (실패해도 리뷰 작성에는 영향 없음)
type ReviewCreatedHook func(ctx context.Context, review *model.Review, company *model.Company)

// ReviewService 리뷰 작성/조회/수정 서비스
type ReviewService interface {
	CreateReview(ctx context.Context, caller model.Caller, companyID uint, req *model.CreateReviewRequest) (*model.Review, error)
	ListPublishedReviewsForCompany(ctx context.Context, companyID uint, caller model.Caller) (*model.CompanyReviews, error)
	GetCompanyDashboard(ctx context.Context, caller model.Caller, companyID uint) (*model.CompanyDashboard, error)
	EditReview(ctx context.Context, caller model.Caller, reviewID uint, req *model.UpdateReviewRequest) (*model.Review, error)
	DeleteReview(ctx context.Context, caller model.Caller, reviewID uint) error
}

type reviewService struct {
	reviewRepo  repository.ReviewRepository
	companyRepo repository.CompanyRepository
	voteRepo    repository.VoteRepository
	hooks       []ReviewCreatedHook
	now         func() time.Time
}

func NewReviewService(
	reviewRepo repository.ReviewRepository,
	companyRepo repository.CompanyRepository,
	voteRepo repository.VoteRepository,
	hooks ...ReviewCreatedHook,
) ReviewService {
	return &reviewService{
		reviewRepo:  reviewRepo,
		companyRepo: companyRepo,
		voteRepo:    voteRepo,
		hooks:       hooks,
		now:         time.Now,
	}
}

// CreateReview 리뷰 작성 (즉시 게시)
func (s *reviewService) CreateReview(
	ctx context.Context,
	caller model.Caller,
	companyID uint,
	req *model.CreateReviewRequest,
) (*model.Review, error) {
	if !caller.Authenticated() {
		return nil, ErrLoginRequired
	}

	company, err := s.companyRepo.FindByID(ctx, companyID)
	if err != nil {
		return nil, notFoundOr(err, ErrCompanyNotFound)
	}

	overall, err := ComputeOverallRating(req.SubRatings)
	if err != nil {
		return nil, err
	}

	experienced, err := s.parseExperienceDate(req.DateOfExperience)
	if err != nil {
		return nil, err
	}

	authorID := caller.ID
	review := &model.Review{
		AuthorID:         &authorID,
		CompanyID:        company.ID,
		Title:            trimmedOrNil(req.Title),
		Body:             trimmedOrNil(req.Body),
		Communication:    *req.Communication,
		Responsiveness:   *req.Responsiveness,
		Value:            *req.Value,
		Friendliness:     *req.Friendliness,
		OverallRating:    &overall,
		DateOfExperience: experienced,
		IsAnonymous:      req.IsAnonymous,
		Status:           model.ReviewStatusPublished,
	}

	if err := s.reviewRepo.Create(ctx, review); err != nil {
		logger.Error("Failed to create review", err, map[string]interface{}{
			"company_id": companyID,
			"author_id":  caller.ID,
		})
		return nil, err
	}

	logger.Info("Review created", map[string]interface{}{
		"review_id":      review.ID,
		"company_id":     companyID,
		"author_id":      caller.ID,
		"overall_rating": overall,
	})

	for _, hook := range s.hooks {
		hook(ctx, review, company)
	}

	return review, nil
}

// ListPublishedReviewsForCompany 회사의 게시된 리뷰 목록 (최신순)
func (s *reviewService) ListPublishedReviewsForCompany(
	ctx context.Context,
	companyID uint,
	caller model.Caller,
) (*model.CompanyReviews, error) {
	result, _, err := s.listForCompany(ctx, companyID, caller)
	return result, err
}

// GetCompanyDashboard 회사 대표자/관리자용 리뷰 현황
func (s *reviewService) GetCompanyDashboard(
	ctx context.Context,
	caller model.Caller,
	companyID uint,
) (*model.CompanyDashboard, error) {
	if !caller.Authenticated() {
		return nil, ErrLoginRequired
	}
	if !IsRepresentativeOf(caller, companyID) && !IsAdmin(caller) {
		return nil, ErrNotRepresentative
	}

	result, reviews, err := s.listForCompany(ctx, companyID, caller)
	if err != nil {
		return nil, err
	}

	// 답글 행이 없는 리뷰만 답글 대기로 집계 (숨긴 답글도 답글로 취급)
	awaiting := 0
	for _, r := range reviews {
		if r.Reply == nil {
			awaiting++
		}
	}

	return &model.CompanyDashboard{
		CompanyReviews:     *result,
		AwaitingReplyCount: awaiting,
	}, nil
}

func (s *reviewService) listForCompany(
	ctx context.Context,
	companyID uint,
	caller model.Caller,
) (*model.CompanyReviews, []model.Review, error) {
	company, err := s.companyRepo.FindByID(ctx, companyID)
	if err != nil {
		return nil, nil, notFoundOr(err, ErrCompanyNotFound)
	}

	reviews, err := s.reviewRepo.ListByCompany(ctx, companyID, model.ReviewStatusPublished)
	if err != nil {
		return nil, nil, err
	}

	views, err := s.buildViews(ctx, reviews, caller)
	if err != nil {
		return nil, nil, err
	}

	return &model.CompanyReviews{
		CompanyID:     company.ID,
		CompanyName:   company.Name,
		AverageRating: ComputeCompanyAverage(reviews),
		ReviewCount:   len(reviews),
		Reviews:       views,
	}, reviews, nil
}

// buildViews 투표 수/투표 여부를 붙이고 익명 작성자를 가린 공개용 목록 생성
func (s *reviewService) buildViews(ctx context.Context, reviews []model.Review, caller model.Caller) ([]model.ReviewView, error) {
	reviewIDs := make([]uint, 0, len(reviews))
	replyIDs := make([]uint, 0, len(reviews))
	for _, r := range reviews {
		reviewIDs = append(reviewIDs, r.ID)
		if r.Reply != nil && r.Reply.Status == model.ReplyStatusPublished {
			replyIDs = append(replyIDs, r.Reply.ID)
		}
	}

	reviewCounts, err := s.voteRepo.CountByTargets(ctx, model.TargetReview, reviewIDs)
	if err != nil {
		return nil, err
	}
	replyCounts, err := s.voteRepo.CountByTargets(ctx, model.TargetReply, replyIDs)
	if err != nil {
		return nil, err
	}

	reviewVoted := map[uint]bool{}
	replyVoted := map[uint]bool{}
	if caller.Authenticated() {
		if reviewVoted, err = s.voteRepo.VotedTargets(ctx, model.TargetReview, reviewIDs, caller.ID); err != nil {
			return nil, err
		}
		if replyVoted, err = s.voteRepo.VotedTargets(ctx, model.TargetReply, replyIDs, caller.ID); err != nil {
			return nil, err
		}
	}

	views := make([]model.ReviewView, 0, len(reviews))
	for i := range reviews {
		r := &reviews[i]
		view := model.ReviewView{
			ID:               r.ID,
			CompanyID:        r.CompanyID,
			Title:            r.Title,
			Body:             r.Body,
			Communication:    r.Communication,
			Responsiveness:   r.Responsiveness,
			Value:            r.Value,
			Friendliness:     r.Friendliness,
			OverallRating:    r.OverallRating,
			DateOfExperience: r.DateOfExperience,
			IsAnonymous:      r.IsAnonymous,
			Status:           r.Status,
			CreatedAt:        r.CreatedAt,
			VoteCount:        reviewCounts[r.ID],
			Voted:            reviewVoted[r.ID],
		}
		if !r.IsAnonymous {
			view.AuthorID = r.AuthorID
			if r.Author != nil {
				view.AuthorName = r.Author.DisplayName
			}
		}
		if r.Reply != nil && r.Reply.Status == model.ReplyStatusPublished {
			view.Reply = &model.ReplyView{
				ID:        r.Reply.ID,
				ReviewID:  r.ID,
				AuthorID:  r.Reply.AuthorID,
				Body:      r.Reply.Body,
				CreatedAt: r.Reply.CreatedAt,
				UpdatedAt: r.Reply.UpdatedAt,
				VoteCount: replyCounts[r.Reply.ID],
				Voted:     replyVoted[r.Reply.ID],
			}
		}
		views = append(views, view)
	}
	return views, nil
}

// EditReview 작성자 리뷰 수정 (답글이 달리면 수정 불가)
func (s *reviewService) EditReview(
	ctx context.Context,
	caller model.Caller,
	reviewID uint,
	req *model.UpdateReviewRequest,
) (*model.Review, error) {
	review, err := s.loadEditable(ctx, caller, reviewID)
	if err != nil {
		return nil, err
	}

	if req.SubRatings.Any() {
		merged := model.RatingsOf(review)
		if req.Communication != nil {
			merged.Communication = req.Communication
		}
		if req.Responsiveness != nil {
			merged.Responsiveness = req.Responsiveness
		}
		if req.Value != nil {
			merged.Value = req.Value
		}
		if req.Friendliness != nil {
			merged.Friendliness = req.Friendliness
		}
		overall, err := ComputeOverallRating(merged)
		if err != nil {
			return nil, err
		}
		review.Communication = *merged.Communication
		review.Responsiveness = *merged.Responsiveness
		review.Value = *merged.Value
		review.Friendliness = *merged.Friendliness
		review.OverallRating = &overall
	}
	if req.Title != nil {
		review.Title = trimmedOrNil(req.Title)
	}
	if req.Body != nil {
		review.Body = trimmedOrNil(req.Body)
	}
	if req.DateOfExperience != nil {
		experienced, err := s.parseExperienceDate(req.DateOfExperience)
		if err != nil {
			return nil, err
		}
		review.DateOfExperience = experienced
	}
	if req.IsAnonymous != nil {
		review.IsAnonymous = *req.IsAnonymous
	}

	if err := s.reviewRepo.UpdateContent(ctx, review); err != nil {
		if errors.Is(err, repository.ErrStale) {
			return nil, s.staleReason(ctx, caller, reviewID)
		}
		logger.Error("Failed to update review", err, map[string]interface{}{
			"review_id": reviewID,
		})
		return nil, err
	}

	logger.Info("Review updated", map[string]interface{}{
		"review_id": reviewID,
		"author_id": caller.ID,
	})
	return review, nil
}

// DeleteReview 작성자 리뷰 삭제 (답글이 달리면 삭제 불가)
func (s *reviewService) DeleteReview(ctx context.Context, caller model.Caller, reviewID uint) error {
	if _, err := s.loadEditable(ctx, caller, reviewID); err != nil {
		return err
	}

	if err := s.reviewRepo.DeleteUnreplied(ctx, reviewID); err != nil {
		if errors.Is(err, repository.ErrStale) {
			return ErrReviewHasReply
		}
		logger.Error("Failed to delete review", err, map[string]interface{}{
			"review_id": reviewID,
		})
		return notFoundOr(err, ErrReviewNotFound)
	}

	logger.Info("Review deleted by author", map[string]interface{}{
		"review_id": reviewID,
		"author_id": caller.ID,
	})
	return nil
}

// loadEditable 작성자 본인이고 답글이 없으며 숨김 처리되지 않은 리뷰만 반환
func (s *reviewService) loadEditable(ctx context.Context, caller model.Caller, reviewID uint) (*model.Review, error) {
	if !caller.Authenticated() {
		return nil, ErrLoginRequired
	}

	review, err := s.reviewRepo.FindByID(ctx, reviewID)
	if err != nil {
		return nil, notFoundOr(err, ErrReviewNotFound)
	}

	if !IsOwner(review.AuthorID, caller.ID) {
		return nil, ErrNotReviewAuthor
	}
	if review.Status == model.ReviewStatusRemoved {
		return nil, ErrReviewRemoved
	}

	hasReply, err := s.reviewRepo.HasReply(ctx, reviewID)
	if err != nil {
		return nil, err
	}
	if hasReply {
		return nil, ErrReviewHasReply
	}

	review.Reply = nil
	return review, nil
}

// staleReason 조건부 쓰기가 실패한 뒤 현재 상태로 거부 사유 결정
func (s *reviewService) staleReason(ctx context.Context, caller model.Caller, reviewID uint) error {
	if _, err := s.loadEditable(ctx, caller, reviewID); err != nil {
		return err
	}
	return ErrReviewHasReply
}

// parseExperienceDate YYYY-MM-DD, 오늘 이후 날짜는 불가
func (s *reviewService) parseExperienceDate(raw *string) (*time.Time, error) {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return nil, nil
	}

	parsed, err := time.Parse(dateLayout, strings.TrimSpace(*raw))
	if err != nil {
		return nil, newValidationError("date_of_experience", "date must be formatted as YYYY-MM-DD")
	}

	now := s.now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if parsed.After(today) {
		return nil, newValidationError("date_of_experience", "date must not be in the future")
	}
	return &parsed, nil
}

func trimmedOrNil(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
