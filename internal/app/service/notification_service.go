package service

import (
	"context"
	"fmt"

	"github.com/ikkim/realty-review-backend/config"
	"github.com/ikkim/realty-review-backend/internal/app/model"
	"github.com/ikkim/realty-review-backend/internal/app/repository"
	"github.com/ikkim/realty-review-backend/pkg/logger"
)

// NotificationSink 저장된 알림을 실시간 채널(웹소켓, Redis 등)로 전달
type NotificationSink interface {
	Push(ctx context.Context, notification *model.Notification, unreadCount int64) error
}

// Dispatcher 도메인 서비스가 사용하는 알림 발송기
// Notify는 실패해도 에러를 반환하지 않고 false만 돌려준다
type Dispatcher interface {
	Notify(ctx context.Context, recipientID uint, notifType model.NotificationType, message string, linkTarget *string) bool
	Message(notifType model.NotificationType, companyName string) string
}

// NotificationService 알림 서비스 인터페이스
type NotificationService interface {
	Dispatcher

	GetNotifications(ctx context.Context, caller model.Caller, isRead *bool, page, pageSize int) ([]model.Notification, int64, int64, error)
	GetUnreadCount(ctx context.Context, caller model.Caller) (int64, error)
	MarkAsRead(ctx context.Context, caller model.Caller, notificationID uint) (*model.Notification, error)
	MarkAllAsRead(ctx context.Context, caller model.Caller) (int64, error)

	// NotifyNewReview 새 리뷰를 회사 대표자들에게 알림 (ReviewCreatedHook)
	NotifyNewReview(ctx context.Context, review *model.Review, company *model.Company)
}

type notificationService struct {
	repo        repository.NotificationRepository
	profileRepo repository.ProfileRepository
	locale      string
	sinks       []NotificationSink
}

// NewNotificationService 알림 서비스 생성자
func NewNotificationService(
	repo repository.NotificationRepository,
	profileRepo repository.ProfileRepository,
	locale string,
	sinks ...NotificationSink,
) NotificationService {
	if _, ok := messageCatalog[locale]; !ok {
		locale = config.LocaleKorean
	}
	return &notificationService{
		repo:        repo,
		profileRepo: profileRepo,
		locale:      locale,
		sinks:       sinks,
	}
}

var messageCatalog = map[string]map[model.NotificationType]string{
	config.LocaleKorean: {
		model.NotificationTypeReviewDeleted: "관리자가 %s에 작성하신 리뷰를 삭제했습니다",
		model.NotificationTypeReplyDeleted:  "관리자가 %s 리뷰에 작성하신 답글을 삭제했습니다",
		model.NotificationTypeNewReply:      "%s에서 회원님의 리뷰에 답글을 남겼습니다",
		model.NotificationTypeNewReview:     "%s에 새 리뷰가 등록되었습니다",
	},
	config.LocaleEnglish: {
		model.NotificationTypeReviewDeleted: "A moderator removed your review of %s",
		model.NotificationTypeReplyDeleted:  "A moderator removed your reply on a review of %s",
		model.NotificationTypeNewReply:      "%s replied to your review",
		model.NotificationTypeNewReview:     "A new review was posted for %s",
	},
}

// Message 설정된 로케일로 알림 문구 생성
func (s *notificationService) Message(notifType model.NotificationType, companyName string) string {
	format, ok := messageCatalog[s.locale][notifType]
	if !ok {
		return companyName
	}
	return fmt.Sprintf(format, companyName)
}

// CompanyLink 회사 리뷰 페이지 링크
func CompanyLink(companyID uint) *string {
	link := fmt.Sprintf("/companies/%d/reviews", companyID)
	return &link
}

// Notify 알림 저장 후 실시간 채널로 전달
func (s *notificationService) Notify(
	ctx context.Context,
	recipientID uint,
	notifType model.NotificationType,
	message string,
	linkTarget *string,
) bool {
	if recipientID == 0 {
		logger.Warn("Notification skipped: no recipient", map[string]interface{}{
			"type": notifType,
		})
		return false
	}
	if _, err := model.ParseNotificationType(string(notifType)); err != nil {
		logger.Warn("Notification skipped: unknown type", map[string]interface{}{
			"recipient_id": recipientID,
			"type":         notifType,
		})
		return false
	}

	notification := &model.Notification{
		RecipientID: recipientID,
		Type:        notifType,
		Message:     message,
		LinkTarget:  linkTarget,
	}
	if err := s.repo.Create(ctx, notification); err != nil {
		logger.Warn("Failed to create notification", map[string]interface{}{
			"recipient_id": recipientID,
			"type":         notifType,
			"error":        err.Error(),
		})
		return false
	}

	logger.Info("Notification created", map[string]interface{}{
		"notification_id": notification.ID,
		"recipient_id":    recipientID,
		"type":            notifType,
	})

	s.push(ctx, notification)
	return true
}

// push 실시간 전달은 최선 노력 (실패해도 저장된 알림은 유지)
func (s *notificationService) push(ctx context.Context, notification *model.Notification) {
	if len(s.sinks) == 0 {
		return
	}

	unreadCount, err := s.repo.CountUnread(ctx, notification.RecipientID)
	if err != nil {
		logger.Warn("Failed to count unread notifications", map[string]interface{}{
			"recipient_id": notification.RecipientID,
			"error":        err.Error(),
		})
	}

	for _, sink := range s.sinks {
		if err := sink.Push(ctx, notification, unreadCount); err != nil {
			logger.Warn("Failed to push notification", map[string]interface{}{
				"notification_id": notification.ID,
				"recipient_id":    notification.RecipientID,
				"sink":            fmt.Sprintf("%T", sink),
				"error":           err.Error(),
			})
		}
	}
}

// NotifyNewReview 새 리뷰 알림 (대표자 본인이 작성한 리뷰는 제외)
func (s *notificationService) NotifyNewReview(ctx context.Context, review *model.Review, company *model.Company) {
	representativeIDs, err := s.profileRepo.RepresentativeIDs(ctx, company.ID)
	if err != nil {
		logger.Warn("Failed to load company representatives", map[string]interface{}{
			"company_id": company.ID,
			"error":      err.Error(),
		})
		return
	}

	message := s.Message(model.NotificationTypeNewReview, company.Name)
	for _, id := range representativeIDs {
		if IsOwner(review.AuthorID, id) {
			continue
		}
		s.Notify(ctx, id, model.NotificationTypeNewReview, message, CompanyLink(company.ID))
	}
}

// GetNotifications 알림 목록 조회
func (s *notificationService) GetNotifications(
	ctx context.Context,
	caller model.Caller,
	isRead *bool,
	page, pageSize int,
) ([]model.Notification, int64, int64, error) {
	if !caller.Authenticated() {
		return nil, 0, 0, ErrLoginRequired
	}

	// 페이지 기본값
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	if pageSize > 100 {
		pageSize = 100
	}

	offset := (page - 1) * pageSize

	notifications, total, err := s.repo.ListByRecipient(ctx, caller.ID, isRead, pageSize, offset)
	if err != nil {
		return nil, 0, 0, err
	}

	// 안읽은 개수
	unreadCount, err := s.repo.CountUnread(ctx, caller.ID)
	if err != nil {
		return nil, 0, 0, err
	}

	return notifications, total, unreadCount, nil
}

// GetUnreadCount 안읽은 알림 개수 조회
func (s *notificationService) GetUnreadCount(ctx context.Context, caller model.Caller) (int64, error) {
	if !caller.Authenticated() {
		return 0, ErrLoginRequired
	}
	return s.repo.CountUnread(ctx, caller.ID)
}

// MarkAsRead 알림 읽음 처리 (수신자 본인만)
func (s *notificationService) MarkAsRead(ctx context.Context, caller model.Caller, notificationID uint) (*model.Notification, error) {
	if !caller.Authenticated() {
		return nil, ErrLoginRequired
	}

	notification, err := s.repo.FindByID(ctx, notificationID)
	if err != nil {
		return nil, notFoundOr(err, ErrNotificationNotFound)
	}

	// 권한 확인
	if notification.RecipientID != caller.ID {
		return nil, ErrNotRecipient
	}

	// 이미 읽은 알림이면 그대로 반환
	if notification.IsRead {
		return notification, nil
	}

	if err := s.repo.MarkRead(ctx, notificationID); err != nil {
		return nil, notFoundOr(err, ErrNotificationNotFound)
	}

	notification.IsRead = true
	return notification, nil
}

// MarkAllAsRead 모든 알림 읽음 처리
func (s *notificationService) MarkAllAsRead(ctx context.Context, caller model.Caller) (int64, error) {
	if !caller.Authenticated() {
		return 0, ErrLoginRequired
	}
	return s.repo.MarkAllRead(ctx, caller.ID)
}
