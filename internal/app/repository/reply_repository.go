package repository

import (
	"context"

	"github.com/ikkim/realty-review-backend/internal/app/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ReplyRepository interface {
	Create(ctx context.Context, reply *model.CompanyReply) error
	FindByID(ctx context.Context, id uint) (*model.CompanyReply, error)
	FindByReviewID(ctx context.Context, reviewID uint) (*model.CompanyReply, error)
	// UpdateBody 게시 중인 답글만 수정, 숨김 처리되었으면 ErrStale
	UpdateBody(ctx context.Context, reply *model.CompanyReply) error
	UpdateStatus(ctx context.Context, id uint, status model.ReplyStatus) error
	DeleteCascade(ctx context.Context, id uint) error
}

type replyRepository struct {
	db *gorm.DB
}

func NewReplyRepository(db *gorm.DB) ReplyRepository {
	return &replyRepository{db: db}
}

// Create 답글 생성 (review_id 유니크 위반 시 ErrDuplicate)
func (r *replyRepository) Create(ctx context.Context, reply *model.CompanyReply) error {
	return translateError(r.db.WithContext(ctx).Omit(clause.Associations).Create(reply).Error)
}

// FindByID 답글 조회 (상위 리뷰와 회사 포함)
func (r *replyRepository) FindByID(ctx context.Context, id uint) (*model.CompanyReply, error) {
	var reply model.CompanyReply
	err := r.db.WithContext(ctx).
		Preload("Review").
		Preload("Review.Company").
		First(&reply, id).Error
	if err != nil {
		return nil, err
	}
	return &reply, nil
}

// FindByReviewID 리뷰의 답글 조회
func (r *replyRepository) FindByReviewID(ctx context.Context, reviewID uint) (*model.CompanyReply, error) {
	var reply model.CompanyReply
	if err := r.db.WithContext(ctx).Where("review_id = ?", reviewID).First(&reply).Error; err != nil {
		return nil, err
	}
	return &reply, nil
}

func (r *replyRepository) UpdateBody(ctx context.Context, reply *model.CompanyReply) error {
	result := r.db.WithContext(ctx).
		Model(reply).
		Where("status = ?", model.ReplyStatusPublished).
		Omit(clause.Associations).
		Update("body", reply.Body)
	return staleIfUnaffected(result)
}

// UpdateStatus 답글 상태 변경
func (r *replyRepository) UpdateStatus(ctx context.Context, id uint, status model.ReplyStatus) error {
	return requireAffected(r.db.WithContext(ctx).
		Model(&model.CompanyReply{}).
		Where("id = ?", id).
		Update("status", status))
}

// DeleteCascade 답글 투표/신고를 먼저 지우고 답글 삭제
func (r *replyRepository) DeleteCascade(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return deleteReplyTree(tx, id)
	})
}
