package repository

import (
	"context"
	"testing"

	"github.com/ikkim/realty-review-backend/internal/app/model"
	"github.com/ikkim/realty-review-backend/internal/db"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupRepositoryTest(t *testing.T) (*gorm.DB, *db.SeedData) {
	t.Helper()

	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	seed, err := db.Seed(testDB)
	require.NoError(t, err)
	return testDB, seed
}

func newTestReview(t *testing.T, repo ReviewRepository, seed *db.SeedData, status model.ReviewStatus) *model.Review {
	t.Helper()

	authorID := seed.Member.ID
	overall := 4.0
	review := &model.Review{
		AuthorID:       &authorID,
		CompanyID:      seed.Company.ID,
		Communication:  4,
		Responsiveness: 4,
		Value:          4,
		Friendliness:   4,
		OverallRating:  &overall,
		Status:         status,
	}
	require.NoError(t, repo.Create(context.Background(), review))
	return review
}

func newTestReply(t *testing.T, repo ReplyRepository, seed *db.SeedData, reviewID uint) *model.CompanyReply {
	t.Helper()

	reply := &model.CompanyReply{
		ReviewID: reviewID,
		AuthorID: seed.Representative.ID,
		Body:     "감사합니다",
		Status:   model.ReplyStatusPublished,
	}
	require.NoError(t, repo.Create(context.Background(), reply))
	return reply
}
