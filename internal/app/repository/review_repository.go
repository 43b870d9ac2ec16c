package repository

import (
	"context"

	"github.com/ikkim/realty-review-backend/internal/app/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ReviewRepository interface {
	Create(ctx context.Context, review *model.Review) error
	FindByID(ctx context.Context, id uint) (*model.Review, error)
	ListByCompany(ctx context.Context, companyID uint, status model.ReviewStatus) ([]model.Review, error)
	// UpdateContent 게시 중이고 답글이 없는 리뷰만 수정, 아니면 ErrStale
	UpdateContent(ctx context.Context, review *model.Review) error
	UpdateStatus(ctx context.Context, id uint, status model.ReviewStatus) error
	HasReply(ctx context.Context, reviewID uint) (bool, error)
	DeleteCascade(ctx context.Context, id uint) error
	// DeleteUnreplied 답글이 없을 때만 삭제, 답글이 생겼으면 ErrStale
	DeleteUnreplied(ctx context.Context, id uint) error
}

// reviewEditableColumns 작성자가 바꿀 수 있는 컬럼 (status 제외)
var reviewEditableColumns = []string{
	"title", "body",
	"communication", "responsiveness", "value", "friendliness", "overall_rating",
	"date_of_experience", "is_anonymous",
}

const noReplyCondition = "NOT EXISTS (SELECT 1 FROM company_replies WHERE company_replies.review_id = reviews.id)"

type reviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

// Create 리뷰 생성
func (r *reviewRepository) Create(ctx context.Context, review *model.Review) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(review).Error
}

// FindByID ID로 리뷰 조회 (회사, 작성자, 답글 포함)
func (r *reviewRepository) FindByID(ctx context.Context, id uint) (*model.Review, error) {
	var review model.Review
	err := r.db.WithContext(ctx).
		Preload("Company").
		Preload("Author").
		Preload("Reply").
		First(&review, id).Error
	if err != nil {
		return nil, err
	}
	return &review, nil
}

// ListByCompany 회사별 리뷰 목록 (최신순)
func (r *reviewRepository) ListByCompany(ctx context.Context, companyID uint, status model.ReviewStatus) ([]model.Review, error) {
	var reviews []model.Review
	err := r.db.WithContext(ctx).
		Preload("Author").
		Preload("Reply").
		Where("company_id = ? AND status = ?", companyID, status).
		Order("created_at DESC").
		Order("id DESC").
		Find(&reviews).Error
	if err != nil {
		return nil, err
	}
	return reviews, nil
}

func (r *reviewRepository) UpdateContent(ctx context.Context, review *model.Review) error {
	result := r.db.WithContext(ctx).
		Model(review).
		Where("status = ?", model.ReviewStatusPublished).
		Where(noReplyCondition).
		Select(reviewEditableColumns).
		Omit(clause.Associations).
		Updates(review)
	return staleIfUnaffected(result)
}

// UpdateStatus 리뷰 상태 변경
func (r *reviewRepository) UpdateStatus(ctx context.Context, id uint, status model.ReviewStatus) error {
	return requireAffected(r.db.WithContext(ctx).
		Model(&model.Review{}).
		Where("id = ?", id).
		Update("status", status))
}

// HasReply 리뷰에 답글(숨김 포함)이 존재하는지 확인
func (r *reviewRepository) HasReply(ctx context.Context, reviewID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.CompanyReply{}).
		Where("review_id = ?", reviewID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// DeleteCascade 리뷰와 하위 데이터를 한 트랜잭션에서 삭제
// 순서: 답글 투표 → 답글 신고 → 답글 → 리뷰 투표 → 리뷰 신고 → 리뷰
func (r *reviewRepository) DeleteCascade(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var replyIDs []uint
		if err := tx.Model(&model.CompanyReply{}).Where("review_id = ?", id).Pluck("id", &replyIDs).Error; err != nil {
			return err
		}
		for _, replyID := range replyIDs {
			if err := deleteReplyTree(tx, replyID); err != nil {
				return err
			}
		}
		if err := deleteReviewChildren(tx, id); err != nil {
			return err
		}
		return requireAffected(tx.Delete(&model.Review{}, id))
	})
}

// DeleteUnreplied 리뷰 삭제는 답글 부재 조건과 함께 실행되고, 조건이 깨지면 전체 롤백
func (r *reviewRepository) DeleteUnreplied(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := deleteReviewChildren(tx, id); err != nil {
			return err
		}
		result := tx.Where(noReplyCondition).Delete(&model.Review{}, id)
		if result.Error != nil || result.RowsAffected > 0 {
			return result.Error
		}

		var exists int64
		if err := tx.Model(&model.Review{}).Where("id = ?", id).Count(&exists).Error; err != nil {
			return err
		}
		if exists == 0 {
			return gorm.ErrRecordNotFound
		}
		return ErrStale
	})
}

func deleteReviewChildren(tx *gorm.DB, reviewID uint) error {
	if err := tx.Where("review_id = ?", reviewID).Delete(&model.ReviewVote{}).Error; err != nil {
		return err
	}
	return tx.Where("review_id = ?", reviewID).Delete(&model.Report{}).Error
}

// deleteReplyTree 답글의 투표와 신고를 먼저 지운 뒤 답글 삭제
func deleteReplyTree(tx *gorm.DB, replyID uint) error {
	if err := tx.Where("reply_id = ?", replyID).Delete(&model.ReplyVote{}).Error; err != nil {
		return err
	}
	if err := tx.Where("reply_id = ?", replyID).Delete(&model.ReplyReport{}).Error; err != nil {
		return err
	}
	return requireAffected(tx.Delete(&model.CompanyReply{}, replyID))
}
