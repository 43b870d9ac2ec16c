package service

import (
	"context"
	"errors"

	"github.com/ikkim/realty-review-backend/internal/app/model"
	"github.com/ikkim/realty-review-backend/internal/app/repository"
	"github.com/ikkim/realty-review-backend/pkg/logger"
	"gorm.io/gorm"
)

// IsRepresentativeOf 요청자가 회사 대표자인지 확인 (이미 조회된 소속 정보 기준)
func IsRepresentativeOf(caller model.Caller, companyID uint) bool {
	if !caller.Authenticated() {
		return false
	}
	for _, id := range caller.RepresentedCompanyIDs {
		if id == companyID {
			return true
		}
	}
	return false
}

// IsAdmin 요청자 프로필의 is_admin 여부
func IsAdmin(caller model.Caller) bool {
	return caller.Authenticated() && caller.IsAdmin
}

// IsOwner 리소스 작성자와 사용자가 같은지 확인
func IsOwner(authorID *uint, userID uint) bool {
	return authorID != nil && userID != 0 && *authorID == userID
}

// IdentityService 인증된 사용자 ID로 요청자 권한 정보를 조회
type IdentityService interface {
	ResolveCaller(ctx context.Context, userID uint) (model.Caller, error)
}

type identityService struct {
	profileRepo repository.ProfileRepository
}

func NewIdentityService(profileRepo repository.ProfileRepository) IdentityService {
	return &identityService{profileRepo: profileRepo}
}

// ResolveCaller 프로필(is_admin)과 대표자 소속을 한 번에 조회
// 프로필이 아직 없는 사용자는 일반 사용자로 취급
func (s *identityService) ResolveCaller(ctx context.Context, userID uint) (model.Caller, error) {
	if userID == 0 {
		return model.Caller{}, ErrLoginRequired
	}

	caller := model.Caller{ID: userID}

	profile, err := s.profileRepo.FindByID(ctx, userID)
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		logger.Debug("Profile not found, resolving as regular user", map[string]interface{}{
			"user_id": userID,
		})
	case err != nil:
		logger.Error("Failed to load caller profile", err, map[string]interface{}{
			"user_id": userID,
		})
		return model.Caller{}, err
	default:
		caller.IsAdmin = profile.IsAdmin
	}

	companyIDs, err := s.profileRepo.RepresentedCompanyIDs(ctx, userID)
	if err != nil {
		logger.Error("Failed to load representative memberships", err, map[string]interface{}{
			"user_id": userID,
		})
		return model.Caller{}, err
	}
	caller.RepresentedCompanyIDs = companyIDs

	return caller, nil
}
