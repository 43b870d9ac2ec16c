package controller

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/realty-review-backend/internal/app/model"
	apperrors "github.com/ikkim/realty-review-backend/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReviewController_CreateAndList(t *testing.T) {
	env := setupControllerTest(t)

	body := validReviewBody()
	body["is_anonymous"] = true
	env.createReview(t, body)

	w := env.do(t, http.MethodGet, companyPath(env.seed.Company.ID, "reviews"), "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp model.CompanyReviews
	decode(t, w, &resp)
	assert.Equal(t, 1, resp.ReviewCount)
	assert.Equal(t, 4.5, resp.AverageRating)
	require.Len(t, resp.Reviews, 1)
	assert.Nil(t, resp.Reviews[0].AuthorID, "anonymous reviews hide the author")
	assert.Empty(t, resp.Reviews[0].AuthorName)
}

func TestReviewController_CreateReview_MissingRating(t *testing.T) {
	env := setupControllerTest(t)

	body := validReviewBody()
	delete(body, "communication")
	w := env.do(t, http.MethodPost, companyPath(env.seed.Company.ID, "reviews"), env.memberToken, body)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var resp apperrors.ErrorResponse
	decode(t, w, &resp)
	assert.Equal(t, apperrors.ValidationInvalidInput, resp.Error)
	assert.Contains(t, resp.Fields, "communication")
}

func TestReviewController_CreateReview_RequiresLogin(t *testing.T) {
	env := setupControllerTest(t)

	w := env.do(t, http.MethodPost, companyPath(env.seed.Company.ID, "reviews"), "", validReviewBody())
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestReviewController_UnknownCompany(t *testing.T) {
	env := setupControllerTest(t)

	w := env.do(t, http.MethodGet, companyPath(9999, "reviews"), "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	var resp apperrors.ErrorResponse
	decode(t, w, &resp)
	assert.Equal(t, apperrors.CompanyNotFound, resp.Error)
}

func TestReviewController_InvalidID(t *testing.T) {
	env := setupControllerTest(t)

	w := env.do(t, http.MethodGet, "/api/v1/companies/abc/reviews", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp apperrors.ErrorResponse
	decode(t, w, &resp)
	assert.Equal(t, apperrors.ValidationInvalidID, resp.Error)
}

func TestReviewController_EditAndDelete(t *testing.T) {
	env := setupControllerTest(t)
	reviewID := env.createReview(t, validReviewBody())

	// 다른 사용자는 수정할 수 없음
	w := env.do(t, http.MethodPut, reviewPath(reviewID, ""), env.repToken, gin.H{"title": "수정"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = env.do(t, http.MethodPut, reviewPath(reviewID, ""), env.memberToken, gin.H{"communication": 1})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var updated struct {
		Review model.Review `json:"review"`
	}
	decode(t, w, &updated)
	require.NotNil(t, updated.Review.OverallRating)
	assert.Equal(t, 3.5, *updated.Review.OverallRating)

	w = env.do(t, http.MethodDelete, reviewPath(reviewID, ""), env.memberToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = env.do(t, http.MethodDelete, reviewPath(reviewID, ""), env.memberToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestReviewController_ReplyLocksReview(t *testing.T) {
	env := setupControllerTest(t)
	reviewID := env.createReview(t, validReviewBody())
	env.createReply(t, reviewID)

	w := env.do(t, http.MethodPut, reviewPath(reviewID, ""), env.memberToken, gin.H{"title": "수정"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	var resp apperrors.ErrorResponse
	decode(t, w, &resp)
	assert.Equal(t, apperrors.ReviewHasReply, resp.Error)
}

func TestReviewController_Dashboard(t *testing.T) {
	env := setupControllerTest(t)
	env.createReview(t, validReviewBody())

	path := fmt.Sprintf("/api/v1/companies/%d/dashboard", env.seed.Company.ID)

	w := env.do(t, http.MethodGet, path, env.memberToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = env.do(t, http.MethodGet, path, env.repToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var dashboard model.CompanyDashboard
	decode(t, w, &dashboard)
	assert.Equal(t, 1, dashboard.ReviewCount)
	assert.Equal(t, 1, dashboard.AwaitingReplyCount)
}
