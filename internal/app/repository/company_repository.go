package repository

import (
	"context"

	"github.com/ikkim/realty-review-backend/internal/app/model"
	"gorm.io/gorm"
)

type CompanyRepository interface {
	FindByID(ctx context.Context, id uint) (*model.Company, error)
	Create(ctx context.Context, company *model.Company) error
}

type companyRepository struct {
	db *gorm.DB
}

func NewCompanyRepository(db *gorm.DB) CompanyRepository {
	return &companyRepository{db: db}
}

// FindByID 회사 조회
func (r *companyRepository) FindByID(ctx context.Context, id uint) (*model.Company, error) {
	var company model.Company
	if err := r.db.WithContext(ctx).First(&company, id).Error; err != nil {
		return nil, err
	}
	return &company, nil
}

// Create 회사 생성
func (r *companyRepository) Create(ctx context.Context, company *model.Company) error {
	return r.db.WithContext(ctx).Create(company).Error
}
