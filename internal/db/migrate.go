package db

import (
	"errors"

	"github.com/ikkim/realty-review-backend/internal/app/model"
	"github.com/ikkim/realty-review-backend/pkg/logger"
	"gorm.io/gorm"
)

// Models lists every table owned by the review engine, parents first
func Models() []interface{} {
	return []interface{}{
		&model.Profile{},
		&model.Company{},
		&model.CompanyRepresentative{},
		&model.Review{},
		&model.ReviewVote{},
		&model.CompanyReply{},
		&model.ReplyVote{},
		&model.Report{},
		&model.ReplyReport{},
		&model.Notification{},
	}
}

// Migrate creates or updates every table in Models
func Migrate(conn *gorm.DB) error {
	logger.Debug("Running database migrations")

	models := Models()
	if err := conn.AutoMigrate(models...); err != nil {
		logger.Error("Failed to run migrations", err)
		return err
	}

	logger.Info("Database migrations completed successfully", map[string]interface{}{
		"models_count": len(models),
	})
	return nil
}

// SeedData development fixtures created by Seed
type SeedData struct {
	Admin          model.Profile
	Representative model.Profile
	Member         model.Profile
	Company        model.Company
}

// Seed creates an admin, a company with one representative and a regular
// member. Existing rows are reused so the command can be re-run.
func Seed(db *gorm.DB) (*SeedData, error) {
	logger.Info("Seeding development data...")

	data := &SeedData{
		Admin:          model.Profile{ID: 1, DisplayName: "관리자", IsAdmin: true},
		Representative: model.Profile{ID: 2, DisplayName: "회사 대표"},
		Member:         model.Profile{ID: 3, DisplayName: "일반 회원"},
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		for _, p := range []*model.Profile{&data.Admin, &data.Representative, &data.Member} {
			if err := tx.FirstOrCreate(p, model.Profile{ID: p.ID}).Error; err != nil {
				return err
			}
		}

		err := tx.Where("name = ?", "샘플 부동산").First(&data.Company).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			data.Company = model.Company{Name: "샘플 부동산"}
			err = tx.Create(&data.Company).Error
		}
		if err != nil {
			return err
		}

		membership := model.CompanyRepresentative{CompanyID: data.Company.ID, ProfileID: data.Representative.ID}
		return tx.FirstOrCreate(&membership, membership).Error
	})
	if err != nil {
		logger.Error("Failed to seed development data", err)
		return nil, err
	}

	logger.Info("Development data seeded successfully", map[string]interface{}{
		"company_id": data.Company.ID,
	})
	return data, nil
}
