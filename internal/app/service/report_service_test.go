package service

import (
	"context"
	"testing"

	"github.com/ikkim/realty-review-backend/internal/app/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReportService_SubmitReport(t *testing.T) {
	env := setupServiceTest(t)
	ctx := context.Background()

	review := env.createReview(t, env.member, ratings(1, 1, 1, 1))

	t.Run("repeat reports are kept as separate rows", func(t *testing.T) {
		first, err := env.reports.SubmitReport(ctx, env.voter, model.TargetReview, review.ID, &model.CreateReportRequest{Reason: "spam"})
		require.NoError(t, err)
		second, err := env.reports.SubmitReport(ctx, env.voter, model.TargetReview, review.ID, &model.CreateReportRequest{
			Reason:  "spam",
			Details: strPtr("같은 내용을 반복 게시"),
		})
		require.NoError(t, err)
		assert.NotEqual(t, first.ID, second.ID)

		var stored []model.Report
		require.NoError(t, env.db.Where("review_id = ?", review.ID).Find(&stored).Error)
		require.Len(t, stored, 2)
		for _, r := range stored {
			assert.Equal(t, model.ReportStatusReceived, r.Status)
			assert.Equal(t, model.ReportReasonSpam, r.Reason)
			assert.Equal(t, env.voter.ID, r.ReporterID)
		}
	})

	t.Run("reply report", func(t *testing.T) {
		reply, err := env.replies.SubmitReply(ctx, env.representative, review.ID, "사실이 아닙니다")
		require.NoError(t, err)

		view, err := env.reports.SubmitReport(ctx, env.member, model.TargetReply, reply.ID, &model.CreateReportRequest{Reason: "inappropriate"})
		require.NoError(t, err)
		assert.Equal(t, model.TargetReply, view.TargetKind)
		assert.Equal(t, reply.ID, view.TargetID)
		assert.Equal(t, model.ReportStatusReceived, view.Status)
	})

	t.Run("unknown reason", func(t *testing.T) {
		_, err := env.reports.SubmitReport(ctx, env.voter, model.TargetReview, review.ID, &model.CreateReportRequest{Reason: "boring"})
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("unknown target", func(t *testing.T) {
		_, err := env.reports.SubmitReport(ctx, env.voter, model.TargetReview, 999, &model.CreateReportRequest{Reason: "fake"})
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("unauthenticated", func(t *testing.T) {
		_, err := env.reports.SubmitReport(ctx, model.Caller{}, model.TargetReview, review.ID, &model.CreateReportRequest{Reason: "fake"})
		assert.ErrorIs(t, err, ErrUnauthenticated)
	})
}
