package repository

import (
	"context"

	"github.com/ikkim/realty-review-backend/internal/app/model"
	"gorm.io/gorm"
)

// ProfileRepository 프로필과 회사 대표자 소속 정보 (읽기 전용 사실)
type ProfileRepository interface {
	FindByID(ctx context.Context, id uint) (*model.Profile, error)
	RepresentedCompanyIDs(ctx context.Context, profileID uint) ([]uint, error)
	RepresentativeIDs(ctx context.Context, companyID uint) ([]uint, error)
}

type profileRepository struct {
	db *gorm.DB
}

func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &profileRepository{db: db}
}

// FindByID 프로필 조회
func (r *profileRepository) FindByID(ctx context.Context, id uint) (*model.Profile, error) {
	var profile model.Profile
	if err := r.db.WithContext(ctx).First(&profile, id).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

// RepresentedCompanyIDs 사용자가 대표하는 회사 ID 목록
func (r *profileRepository) RepresentedCompanyIDs(ctx context.Context, profileID uint) ([]uint, error) {
	var ids []uint
	err := r.db.WithContext(ctx).Model(&model.CompanyRepresentative{}).
		Where("profile_id = ?", profileID).
		Order("company_id").
		Pluck("company_id", &ids).Error
	return ids, err
}

// RepresentativeIDs 회사의 대표자 ID 목록
func (r *profileRepository) RepresentativeIDs(ctx context.Context, companyID uint) ([]uint, error) {
	var ids []uint
	err := r.db.WithContext(ctx).Model(&model.CompanyRepresentative{}).
		Where("company_id = ?", companyID).
		Order("profile_id").
		Pluck("profile_id", &ids).Error
	return ids, err
}
