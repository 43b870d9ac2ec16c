package repository

import (
	"context"
	"fmt"

	"github.com/ikkim/realty-review-backend/internal/app/model"
	"gorm.io/gorm"
)

// VoteRepository 리뷰/답글 투표 저장소
// 투표 수는 항상 행 개수로 계산한다 (비정규화 카운터 없음)
type VoteRepository interface {
	Exists(ctx context.Context, kind model.TargetKind, targetID, voterID uint) (bool, error)
	Insert(ctx context.Context, kind model.TargetKind, targetID, voterID uint) error
	Delete(ctx context.Context, kind model.TargetKind, targetID, voterID uint) (bool, error)
	Count(ctx context.Context, kind model.TargetKind, targetID uint) (int64, error)
	CountByTargets(ctx context.Context, kind model.TargetKind, targetIDs []uint) (map[uint]int64, error)
	VotedTargets(ctx context.Context, kind model.TargetKind, targetIDs []uint, voterID uint) (map[uint]bool, error)
}

type voteRepository struct {
	db *gorm.DB
}

func NewVoteRepository(db *gorm.DB) VoteRepository {
	return &voteRepository{db: db}
}

// voteTable 대상 종류별 모델과 대상 컬럼
func voteTable(kind model.TargetKind) (interface{}, string, error) {
	switch kind {
	case model.TargetReview:
		return &model.ReviewVote{}, "review_id", nil
	case model.TargetReply:
		return &model.ReplyVote{}, "reply_id", nil
	}
	return nil, "", fmt.Errorf("%w: target kind %q", model.ErrInvalidEnum, kind)
}

// Exists 투표 여부 확인
func (r *voteRepository) Exists(ctx context.Context, kind model.TargetKind, targetID, voterID uint) (bool, error) {
	m, col, err := voteTable(kind)
	if err != nil {
		return false, err
	}
	var count int64
	err = r.db.WithContext(ctx).Model(m).
		Where(col+" = ? AND voter_id = ?", targetID, voterID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Insert 투표 추가 (이미 존재하면 ErrDuplicate)
func (r *voteRepository) Insert(ctx context.Context, kind model.TargetKind, targetID, voterID uint) error {
	var row interface{}
	switch kind {
	case model.TargetReview:
		row = &model.ReviewVote{ReviewID: targetID, VoterID: voterID}
	case model.TargetReply:
		row = &model.ReplyVote{ReplyID: targetID, VoterID: voterID}
	default:
		return fmt.Errorf("%w: target kind %q", model.ErrInvalidEnum, kind)
	}
	return translateError(r.db.WithContext(ctx).Create(row).Error)
}

// Delete 투표 취소, 실제로 삭제된 행이 있었는지 반환
func (r *voteRepository) Delete(ctx context.Context, kind model.TargetKind, targetID, voterID uint) (bool, error) {
	m, col, err := voteTable(kind)
	if err != nil {
		return false, err
	}
	result := r.db.WithContext(ctx).
		Where(col+" = ? AND voter_id = ?", targetID, voterID).
		Delete(m)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// Count 대상의 투표 수
func (r *voteRepository) Count(ctx context.Context, kind model.TargetKind, targetID uint) (int64, error) {
	m, col, err := voteTable(kind)
	if err != nil {
		return 0, err
	}
	var count int64
	err = r.db.WithContext(ctx).Model(m).Where(col+" = ?", targetID).Count(&count).Error
	return count, err
}

// CountByTargets 여러 대상의 투표 수를 한 번에 조회
func (r *voteRepository) CountByTargets(ctx context.Context, kind model.TargetKind, targetIDs []uint) (map[uint]int64, error) {
	counts := make(map[uint]int64, len(targetIDs))
	if len(targetIDs) == 0 {
		return counts, nil
	}
	m, col, err := voteTable(kind)
	if err != nil {
		return nil, err
	}

	var rows []struct {
		TargetID uint
		Total    int64
	}
	err = r.db.WithContext(ctx).Model(m).
		Select(col+" AS target_id, COUNT(*) AS total").
		Where(col+" IN ?", targetIDs).
		Group(col).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		counts[row.TargetID] = row.Total
	}
	return counts, nil
}

// VotedTargets 사용자가 투표한 대상 집합
func (r *voteRepository) VotedTargets(ctx context.Context, kind model.TargetKind, targetIDs []uint, voterID uint) (map[uint]bool, error) {
	voted := make(map[uint]bool)
	if len(targetIDs) == 0 || voterID == 0 {
		return voted, nil
	}
	m, col, err := voteTable(kind)
	if err != nil {
		return nil, err
	}

	var ids []uint
	err = r.db.WithContext(ctx).Model(m).
		Where(col+" IN ? AND voter_id = ?", targetIDs, voterID).
		Pluck(col, &ids).Error
	if err != nil {
		return nil, err
	}
	for _, id := range ids {
		voted[id] = true
	}
	return voted, nil
}
