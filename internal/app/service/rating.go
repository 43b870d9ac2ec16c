package service

import (
	"fmt"
	"math"
	"sort"

	"github.com/ikkim/realty-review-backend/internal/app/model"
)

const (
	MinSubRating = 1
	MaxSubRating = 5
)

// ComputeOverallRating 네 가지 세부 평점의 산술 평균 (반올림은 표시 단계에서)
func ComputeOverallRating(sub model.SubRatings) (float64, error) {
	fields := []struct {
		name  string
		value *int
	}{
		{"communication", sub.Communication},
		{"responsiveness", sub.Responsiveness},
		{"value", sub.Value},
		{"friendliness", sub.Friendliness},
	}

	sum := 0
	for _, f := range fields {
		if f.value == nil {
			return 0, newValidationError(f.name, "rating is required")
		}
		if *f.value < MinSubRating || *f.value > MaxSubRating {
			return 0, newValidationError(f.name, fmt.Sprintf("rating must be between %d and %d", MinSubRating, MaxSubRating))
		}
		sum += *f.value
	}
	return float64(sum) / float64(len(fields)), nil
}

// ComputeCompanyAverage 게시된 리뷰의 종합 평점 평균 (소수점 첫째 자리 반올림)
// 입력 순서와 무관하도록 정렬 후 합산
func ComputeCompanyAverage(reviews []model.Review) float64 {
	ratings := make([]float64, 0, len(reviews))
	for _, r := range reviews {
		if r.Status != model.ReviewStatusPublished || r.OverallRating == nil {
			continue
		}
		ratings = append(ratings, *r.OverallRating)
	}
	if len(ratings) == 0 {
		return 0
	}

	sort.Float64s(ratings)
	var sum float64
	for _, v := range ratings {
		sum += v
	}
	return math.Round(sum/float64(len(ratings))*10) / 10
}
