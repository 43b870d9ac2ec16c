package model

import (
	"database/sql/driver"
	"fmt"
	"time"
)

type NotificationType string

const (
	NotificationTypeReviewDeleted NotificationType = "review_deleted"
	NotificationTypeReplyDeleted  NotificationType = "reply_deleted"
	NotificationTypeNewReply      NotificationType = "new_reply"
	NotificationTypeNewReview     NotificationType = "new_review"
)

func ParseNotificationType(s string) (NotificationType, error) {
	switch t := NotificationType(s); t {
	case NotificationTypeReviewDeleted, NotificationTypeReplyDeleted, NotificationTypeNewReply, NotificationTypeNewReview:
		return t, nil
	}
	return "", fmt.Errorf("%w: notification type %q", ErrInvalidEnum, s)
}

func (t NotificationType) Value() (driver.Value, error) {
	if _, err := ParseNotificationType(string(t)); err != nil {
		return nil, err
	}
	return string(t), nil
}

func (t *NotificationType) Scan(src interface{}) error {
	raw, err := scanString(src)
	if err != nil {
		return err
	}
	parsed, err := ParseNotificationType(raw)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Notification 알림 모델 (수신자의 읽음 처리 외에는 변경/삭제되지 않음)
type Notification struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`

	// 알림 받을 사용자
	RecipientID uint `gorm:"not null;index" json:"recipient_id"`

	Type NotificationType `gorm:"type:varchar(50);not null;index" json:"type"`

	// 생성 시점의 로케일로 렌더링된 메시지
	Message    string  `gorm:"type:text;not null" json:"message"`
	LinkTarget *string `gorm:"type:text" json:"link_target,omitempty"`

	IsRead bool `gorm:"not null;default:false;index" json:"is_read"`
}

func (Notification) TableName() string {
	return "notifications"
}

// NotificationEventType 실시간 채널 메시지 종류
const NotificationEventType = "new_notification"

// NotificationEvent 웹소켓/Redis로 전달되는 실시간 알림 메시지
type NotificationEvent struct {
	Type         string        `json:"type"`
	UnreadCount  int64         `json:"unread_count"`
	Notification *Notification `json:"notification"`
}

// NewNotificationEvent 저장된 알림으로 실시간 메시지 생성
func NewNotificationEvent(n *Notification, unreadCount int64) NotificationEvent {
	return NotificationEvent{
		Type:         NotificationEventType,
		UnreadCount:  unreadCount,
		Notification: n,
	}
}
