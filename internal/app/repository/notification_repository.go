package repository

import (
	"context"

	"github.com/ikkim/realty-review-backend/internal/app/model"
	"gorm.io/gorm"
)

// NotificationRepository 알림 저장소
type NotificationRepository interface {
	Create(ctx context.Context, notification *model.Notification) error
	FindByID(ctx context.Context, id uint) (*model.Notification, error)
	// ListByRecipient 최신순 (created_at, id 내림차순); isRead가 nil이면 전체
	ListByRecipient(ctx context.Context, recipientID uint, isRead *bool, limit, offset int) ([]model.Notification, int64, error)
	CountUnread(ctx context.Context, recipientID uint) (int64, error)
	MarkRead(ctx context.Context, id uint) error
	MarkAllRead(ctx context.Context, recipientID uint) (int64, error)
}

type notificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Create(ctx context.Context, notification *model.Notification) error {
	return r.db.WithContext(ctx).Create(notification).Error
}

func (r *notificationRepository) FindByID(ctx context.Context, id uint) (*model.Notification, error) {
	var n model.Notification
	if err := r.db.WithContext(ctx).First(&n, id).Error; err != nil {
		return nil, err
	}
	return &n, nil
}

// inbox 수신자 알림 범위
func (r *notificationRepository) inbox(ctx context.Context, recipientID uint) *gorm.DB {
	return r.db.WithContext(ctx).Model(&model.Notification{}).Where("recipient_id = ?", recipientID)
}

func unreadOnly(db *gorm.DB) *gorm.DB {
	return db.Where("is_read = ?", false)
}

func (r *notificationRepository) ListByRecipient(
	ctx context.Context,
	recipientID uint,
	isRead *bool,
	limit, offset int,
) ([]model.Notification, int64, error) {
	scoped := r.inbox(ctx, recipientID)
	if isRead != nil {
		scoped = scoped.Where("is_read = ?", *isRead)
	}

	var total int64
	if err := scoped.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page := scoped.Session(&gorm.Session{}).Order("created_at DESC, id DESC")
	if limit > 0 {
		page = page.Limit(limit).Offset(offset)
	}

	var list []model.Notification
	if err := page.Find(&list).Error; err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

func (r *notificationRepository) CountUnread(ctx context.Context, recipientID uint) (int64, error) {
	var count int64
	err := r.inbox(ctx, recipientID).Scopes(unreadOnly).Count(&count).Error
	return count, err
}

func (r *notificationRepository) MarkRead(ctx context.Context, id uint) error {
	return requireAffected(r.db.WithContext(ctx).Model(&model.Notification{}).
		Where("id = ?", id).
		Update("is_read", true))
}

// MarkAllRead 안읽은 알림만 갱신하고 갱신 개수 반환
func (r *notificationRepository) MarkAllRead(ctx context.Context, recipientID uint) (int64, error) {
	result := r.inbox(ctx, recipientID).Scopes(unreadOnly).Update("is_read", true)
	return result.RowsAffected, result.Error
}
