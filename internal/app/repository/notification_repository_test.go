package repository

import (
	"context"
	"testing"

	"github.com/ikkim/realty-review-backend/internal/app/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestNotificationRepository_ListByRecipient(t *testing.T) {
	testDB, seed := setupRepositoryTest(t)
	repo := NewNotificationRepository(testDB)
	ctx := context.Background()

	recipient := seed.Member.ID
	for i := 0; i < 3; i++ {
		require.NoError(t, repo.Create(ctx, &model.Notification{
			RecipientID: recipient,
			Type:        model.NotificationTypeNewReply,
			Message:     "새 답글",
		}))
	}
	require.NoError(t, repo.Create(ctx, &model.Notification{
		RecipientID: seed.Admin.ID,
		Type:        model.NotificationTypeNewReview,
		Message:     "다른 사용자",
	}))

	list, total, err := repo.ListByRecipient(ctx, recipient, nil, 2, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, list, 2)
	assert.Greater(t, list[0].ID, list[1].ID)

	require.NoError(t, repo.MarkRead(ctx, list[0].ID))

	unread := false
	_, total, err = repo.ListByRecipient(ctx, recipient, &unread, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)

	count, err := repo.CountUnread(ctx, recipient)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	updated, err := repo.MarkAllRead(ctx, recipient)
	require.NoError(t, err)
	assert.Equal(t, int64(2), updated)

	assert.ErrorIs(t, repo.MarkRead(ctx, 9999), gorm.ErrRecordNotFound)
}

func TestNotificationRepository_RejectsUnknownType(t *testing.T) {
	testDB, seed := setupRepositoryTest(t)
	repo := NewNotificationRepository(testDB)

	err := repo.Create(context.Background(), &model.Notification{
		RecipientID: seed.Member.ID,
		Type:        model.NotificationType("digest"),
		Message:     "알 수 없는 종류",
	})
	assert.Error(t, err)
}
