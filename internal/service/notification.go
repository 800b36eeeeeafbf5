package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"story_web/internal/models"
	"story_web/internal/repository"
)

// NotificationPusher 把通知推送給線上的收件者
type NotificationPusher interface {
	PushNotification(userID uint, notification *models.Notification)
}

type NotificationService struct {
	notificationRepo repository.NotificationRepository
	pusher           NotificationPusher
	logger           *zap.Logger
}

func NewNotificationService(notificationRepo repository.NotificationRepository, pusher NotificationPusher, logger *zap.Logger) *NotificationService {
	return &NotificationService{
		notificationRepo: notificationRepo,
		pusher:           pusher,
		logger:           logger.Named("NotificationService"),
	}
}

// Notify 寫入通知並即時推送；不通知自己。
// 通知失敗只記錄，不影響觸發它的操作。
func (s *NotificationService) Notify(ctx context.Context, recipientID, senderID uint, message string) {
	if recipientID == 0 || recipientID == senderID {
		return
	}

	notification := &models.Notification{
		RecipientID: recipientID,
		Message:     message,
	}
	if senderID != 0 {
		sender := senderID
		notification.SenderID = &sender
	}

	if err := s.notificationRepo.Create(ctx, notification); err != nil {
		s.logger.Error("failed to store notification",
			zap.Uint("recipientID", recipientID),
			zap.Error(err),
		)
		return
	}

	if s.pusher != nil {
		s.pusher.PushNotification(recipientID, notification)
	}
}

func (s *NotificationService) List(ctx context.Context, userID uint, page repository.Page) ([]models.Notification, int64, error) {
	notifications, total, err := s.notificationRepo.ListByRecipient(ctx, userID, page)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list notifications: %w", err)
	}
	return notifications, total, nil
}

func (s *NotificationService) CountUnread(ctx context.Context, userID uint) (int64, error) {
	return s.notificationRepo.CountUnread(ctx, userID)
}

func (s *NotificationService) MarkAllRead(ctx context.Context, userID uint) (int64, error) {
	return s.notificationRepo.MarkAllRead(ctx, userID)
}
