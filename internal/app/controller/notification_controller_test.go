package controller

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/ikkim/realty-review-backend/internal/app/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotificationController_MarkAsRead(t *testing.T) {
	env := setupControllerTest(t)
	reviewID := env.createReview(t, validReviewBody())
	env.createReply(t, reviewID)

	w := env.do(t, http.MethodGet, "/api/v1/notifications", env.memberToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var list struct {
		Data []model.Notification `json:"data"`
	}
	decode(t, w, &list)
	require.Len(t, list.Data, 1)
	assert.Equal(t, model.NotificationTypeNewReply, list.Data[0].Type)

	path := fmt.Sprintf("/api/v1/notifications/%d/read", list.Data[0].ID)

	// 수신자가 아닌 사용자
	w = env.do(t, http.MethodPut, path, env.repToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	for i := 0; i < 2; i++ {
		w = env.do(t, http.MethodPut, path, env.memberToken, nil)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		var resp struct {
			Notification model.Notification `json:"notification"`
		}
		decode(t, w, &resp)
		assert.True(t, resp.Notification.IsRead)
	}

	w = env.do(t, http.MethodPut, "/api/v1/notifications/9999/read", env.memberToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestNotificationController_MarkAllAsRead(t *testing.T) {
	env := setupControllerTest(t)

	// 새 리뷰 알림은 대표자에게 전달됨
	env.createReview(t, validReviewBody())
	env.createReview(t, validReviewBody())

	w := env.do(t, http.MethodPut, "/api/v1/notifications/read-all", env.repToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Updated int64 `json:"updated"`
	}
	decode(t, w, &resp)
	assert.Equal(t, int64(2), resp.Updated)

	w = env.do(t, http.MethodGet, "/api/v1/notifications/unread-count", env.repToken, nil)
	var count struct {
		UnreadCount int64 `json:"unread_count"`
	}
	decode(t, w, &count)
	assert.Zero(t, count.UnreadCount)
}

func TestNotificationController_InvalidFilter(t *testing.T) {
	env := setupControllerTest(t)

	w := env.do(t, http.MethodGet, "/api/v1/notifications?is_read=maybe", env.memberToken, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
