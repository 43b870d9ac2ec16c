package service

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/ikkim/realty-review-backend/internal/app/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeOverallRating(t *testing.T) {
	tests := []struct {
		name      string
		sub       model.SubRatings
		want      float64
		wantField string
	}{
		{name: "mixed ratings", sub: ratings(5, 4, 5, 4), want: 4.5},
		{name: "all minimum", sub: ratings(1, 1, 1, 1), want: 1},
		{name: "all maximum", sub: ratings(5, 5, 5, 5), want: 5},
		{name: "unrounded mean", sub: ratings(5, 4, 4, 4), want: 4.25},
		{name: "communication out of range", sub: ratings(0, 4, 4, 4), wantField: "communication"},
		{name: "value out of range", sub: ratings(3, 3, 6, 3), wantField: "value"},
		{
			name:      "friendliness missing",
			sub:       model.SubRatings{Communication: intPtr(3), Responsiveness: intPtr(3), Value: intPtr(3)},
			wantField: "friendliness",
		},
		{name: "all missing", sub: model.SubRatings{}, wantField: "communication"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ComputeOverallRating(tt.sub)
			if tt.wantField != "" {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrValidation)
				var verr *ValidationError
				require.True(t, errors.As(err, &verr))
				assert.Equal(t, tt.wantField, verr.Field)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestComputeCompanyAverage(t *testing.T) {
	published := func(v float64) model.Review {
		return model.Review{Status: model.ReviewStatusPublished, OverallRating: &v}
	}

	t.Run("empty set", func(t *testing.T) {
		assert.Equal(t, float64(0), ComputeCompanyAverage(nil))
		assert.Equal(t, float64(0), ComputeCompanyAverage([]model.Review{}))
	})

	t.Run("only unpublished or unrated", func(t *testing.T) {
		removed := 5.0
		reviews := []model.Review{
			{Status: model.ReviewStatusRemoved, OverallRating: &removed},
			{Status: model.ReviewStatusPublished},
		}
		assert.Equal(t, float64(0), ComputeCompanyAverage(reviews))
	})

	t.Run("rounds to one decimal", func(t *testing.T) {
		reviews := []model.Review{published(4.5), published(4.25), published(3.75)}
		assert.Equal(t, 4.2, ComputeCompanyAverage(reviews))
	})

	t.Run("ignores removed reviews", func(t *testing.T) {
		removed := 1.0
		reviews := []model.Review{
			published(5),
			published(4),
			{Status: model.ReviewStatusRemoved, OverallRating: &removed},
		}
		assert.Equal(t, 4.5, ComputeCompanyAverage(reviews))
	})

	t.Run("invariant under permutation", func(t *testing.T) {
		values := []float64{4.5, 1.1, 3.3, 2.25, 4.75, 0.7, 3.9, 2.2, 4.05, 1.35}
		reviews := make([]model.Review, 0, len(values))
		for _, v := range values {
			reviews = append(reviews, published(v))
		}
		want := ComputeCompanyAverage(reviews)

		rng := rand.New(rand.NewSource(42))
		for i := 0; i < 50; i++ {
			shuffled := append([]model.Review(nil), reviews...)
			rng.Shuffle(len(shuffled), func(a, b int) { shuffled[a], shuffled[b] = shuffled[b], shuffled[a] })
			assert.Equal(t, want, ComputeCompanyAverage(shuffled))
		}
	})
}
