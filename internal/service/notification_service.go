package service

import (
	"context"

	"clicknet/internal/models"
	"clicknet/internal/repository"
)

// NotificationService provides notification listing and read-state logic.
type NotificationService struct {
	notificationRepo repository.NotificationRepository
}

func NewNotificationService(notificationRepo repository.NotificationRepository) *NotificationService {
	return &NotificationService{notificationRepo: notificationRepo}
}

// List returns the user's notifications newest first, denormalized with
// actor summaries and surviving posts.
func (s *NotificationService) List(ctx context.Context, userID uint, limit, offset int) ([]models.NotificationView, error) {
	limit = clampLimit(limit)
	return s.notificationRepo.ListByRecipient(ctx, userID, limit, offset)
}

// MarkRead flips one of the user's notifications to read.
func (s *NotificationService) MarkRead(ctx context.Context, userID, notificationID uint) error {
	return s.notificationRepo.MarkRead(ctx, userID, notificationID)
}

// MarkAllRead flips all of the user's unread notifications to read.
func (s *NotificationService) MarkAllRead(ctx context.Context, userID uint) error {
	return s.notificationRepo.MarkAllRead(ctx, userID)
}

// UnreadCount returns how many of the user's notifications are unread.
func (s *NotificationService) UnreadCount(ctx context.Context, userID uint) (int64, error) {
	return s.notificationRepo.CountUnread(ctx, userID)
}
