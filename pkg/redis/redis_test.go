package redis

import (
	"context"
	"testing"

	"github.com/ikkim/realty-review-backend/internal/app/model"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotificationEventEncoding(t *testing.T) {
	link := "/companies/3/reviews"
	n := &model.Notification{
		ID:          9,
		RecipientID: 4,
		Type:        model.NotificationTypeReviewDeleted,
		Message:     "관리자가 리뷰를 삭제했습니다",
		LinkTarget:  &link,
	}

	payload, err := EncodeNotificationEvent(n, 2)
	require.NoError(t, err)
	assert.Contains(t, string(payload), `"type":"new_notification"`)

	event, err := DecodeNotificationEvent(payload)
	require.NoError(t, err)
	assert.Equal(t, model.NotificationEventType, event.Type)
	assert.Equal(t, int64(2), event.UnreadCount)
	require.NotNil(t, event.Notification)
	assert.Equal(t, uint(4), event.Notification.RecipientID)
	assert.Equal(t, model.NotificationTypeReviewDeleted, event.Notification.Type)
	assert.Equal(t, link, *event.Notification.LinkTarget)
}

func TestDecodeNotificationEventRejectsBadPayloads(t *testing.T) {
	for _, payload := range []string{
		`not json`,
		`{"type":"new_notification"}`,
		`{"type":"new_notification","notification":{"recipient_id":0,"type":"new_reply"}}`,
		`{"type":"new_notification","notification":{"recipient_id":1,"type":"digest"}}`,
	} {
		_, err := DecodeNotificationEvent([]byte(payload))
		assert.Error(t, err, payload)
	}
}

func TestEncodeNilNotification(t *testing.T) {
	_, err := EncodeNotificationEvent(nil, 0)
	assert.Error(t, err)
}

func TestPublisherPushFailsWithoutServer(t *testing.T) {
	client := goredis.NewClient(&goredis.Options{Addr: "127.0.0.1:1", MaxRetries: -1})
	defer client.Close()

	p := NewNotificationPublisher(client, "notifications")
	err := p.Push(context.Background(), &model.Notification{ID: 1, RecipientID: 1, Type: model.NotificationTypeNewReply}, 1)
	assert.Error(t, err)
}
