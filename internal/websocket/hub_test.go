package websocket

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/ikkim/realty-review-backend/internal/app/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startHub(t *testing.T) *Hub {
	t.Helper()
	hub := NewHub()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go hub.Run(ctx)
	return hub
}

func registerClient(t *testing.T, hub *Hub, userID uint) *Client {
	t.Helper()
	client := NewClient(hub, nil, userID)
	before := hub.SessionCount(userID)
	hub.Register(client)
	require.Eventually(t, func() bool { return hub.SessionCount(userID) == before+1 }, time.Second, 5*time.Millisecond)
	return client
}

func receive(t *testing.T, client *Client) []byte {
	t.Helper()
	select {
	case msg := <-client.Send:
		return msg
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for message")
		return nil
	}
}

func TestHub_PushToAllSessions(t *testing.T) {
	hub := startHub(t)
	phone := registerClient(t, hub, 7)
	laptop := registerClient(t, hub, 7)
	other := registerClient(t, hub, 8)

	n := &model.Notification{ID: 1, RecipientID: 7, Type: model.NotificationTypeNewReply, Message: "답글"}
	require.NoError(t, hub.Push(context.Background(), n, 3))

	for _, c := range []*Client{phone, laptop} {
		var event model.NotificationEvent
		require.NoError(t, json.Unmarshal(receive(t, c), &event))
		assert.Equal(t, model.NotificationEventType, event.Type)
		assert.Equal(t, int64(3), event.UnreadCount)
		assert.Equal(t, uint(1), event.Notification.ID)
	}

	select {
	case <-other.Send:
		t.Fatal("other user must not receive the notification")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestHub_OfflineUserIsNoop(t *testing.T) {
	hub := startHub(t)
	n := &model.Notification{ID: 2, RecipientID: 99, Type: model.NotificationTypeNewReview}
	assert.NoError(t, hub.Push(context.Background(), n, 1))
	assert.False(t, hub.IsUserOnline(99))
}

func TestHub_Unregister(t *testing.T) {
	hub := startHub(t)
	first := registerClient(t, hub, 5)
	second := registerClient(t, hub, 5)

	hub.Unregister(first)
	require.Eventually(t, func() bool { return hub.SessionCount(5) == 1 }, time.Second, 5*time.Millisecond)

	_, ok := <-first.Send
	assert.False(t, ok, "send channel is closed on unregister")

	hub.Unregister(second)
	require.Eventually(t, func() bool { return !hub.IsUserOnline(5) }, time.Second, 5*time.Millisecond)
}

func TestHub_DeliverEvent(t *testing.T) {
	hub := startHub(t)
	client := registerClient(t, hub, 3)

	hub.DeliverEvent(model.NewNotificationEvent(&model.Notification{ID: 4, RecipientID: 3, Type: model.NotificationTypeReviewDeleted}, 1))
	hub.DeliverEvent(model.NotificationEvent{})

	var event model.NotificationEvent
	require.NoError(t, json.Unmarshal(receive(t, client), &event))
	assert.Equal(t, uint(4), event.Notification.ID)
}

func TestHub_HandleClientMessage(t *testing.T) {
	hub := startHub(t)
	client := registerClient(t, hub, 11)

	hub.HandleClientMessage(client, []byte(`{"type":"ping"}`))
	assert.JSONEq(t, `{"type":"pong"}`, string(receive(t, client)))

	// malformed input is ignored
	hub.HandleClientMessage(client, []byte(`not json`))

	// rate limited after maxMessagesPerSecond
	for i := 0; i < maxMessagesPerSecond+5; i++ {
		hub.HandleClientMessage(client, []byte(`{"type":"ping"}`))
	}
	time.Sleep(50 * time.Millisecond)
	assert.LessOrEqual(t, len(client.Send), maxMessagesPerSecond)
}
