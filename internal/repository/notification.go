package repository

import (
	"context"

	"clicknet/internal/models"
	"clicknet/internal/observability"

	"gorm.io/gorm"
)

// NotificationRepository defines persistence for per-user notifications.
// Rows are append-only; the only mutation is flipping the read flag.
type NotificationRepository interface {
	Create(ctx context.Context, tx *gorm.DB, n *models.Notification) error
	ListByRecipient(ctx context.Context, recipientID uint, limit, offset int) ([]models.NotificationView, error)
	MarkRead(ctx context.Context, recipientID, id uint) error
	MarkAllRead(ctx context.Context, recipientID uint) error
	CountUnread(ctx context.Context, recipientID uint) (int64, error)
}

type notificationRepository struct {
	db *gorm.DB
}

// NewNotificationRepository creates a new notification repository.
func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

// Create appends a notification. When tx is non-nil the insert joins the
// caller's transaction.
func (r *notificationRepository) Create(ctx context.Context, tx *gorm.DB, n *models.Notification) error {
	db := tx
	if db == nil {
		db = r.db
	}
	if err := db.WithContext(ctx).Create(n).Error; err != nil {
		return models.NewInternalError(err)
	}
	observability.NotificationsEmitted.WithLabelValues(string(n.Type)).Inc()
	return nil
}

// ListByRecipient returns notifications newest first, denormalized with actor
// summaries and referenced posts. Notifications whose post has since been
// deleted are kept with a nil Post.
func (r *notificationRepository) ListByRecipient(ctx context.Context, recipientID uint, limit, offset int) ([]models.NotificationView, error) {
	var notifications []models.Notification
	if err := r.db.WithContext(ctx).
		Preload("Actor").
		Where("recipient_id = ?", recipientID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&notifications).Error; err != nil {
		return nil, models.NewInternalError(err)
	}

	postIDs := make([]uint, 0, len(notifications))
	seen := map[uint]struct{}{}
	for _, n := range notifications {
		if n.PostID == nil {
			continue
		}
		if _, dup := seen[*n.PostID]; dup {
			continue
		}
		seen[*n.PostID] = struct{}{}
		postIDs = append(postIDs, *n.PostID)
	}

	postsByID := map[uint]*models.Post{}
	if len(postIDs) > 0 {
		var posts []models.Post
		if err := r.db.WithContext(ctx).Where("id IN ?", postIDs).Find(&posts).Error; err != nil {
			return nil, models.NewInternalError(err)
		}
		for i := range posts {
			postsByID[posts[i].ID] = &posts[i]
		}
	}

	views := make([]models.NotificationView, 0, len(notifications))
	for _, n := range notifications {
		view := models.NotificationView{Notification: n}
		if n.Actor.ID != 0 {
			view.ActorSummary = n.Actor.Summary()
		}
		if n.PostID != nil {
			view.Post = postsByID[*n.PostID]
		}
		views = append(views, view)
	}
	return views, nil
}

func (r *notificationRepository) MarkRead(ctx context.Context, recipientID, id uint) error {
	result := r.db.WithContext(ctx).
		Model(&models.Notification{}).
		Where("id = ? AND recipient_id = ?", id, recipientID).
		Update("read", true)
	if result.Error != nil {
		return models.NewInternalError(result.Error)
	}
	if result.RowsAffected == 0 {
		return models.NewNotFoundError("Notification", id)
	}
	return nil
}

func (r *notificationRepository) MarkAllRead(ctx context.Context, recipientID uint) error {
	if err := r.db.WithContext(ctx).
		Model(&models.Notification{}).
		Where("recipient_id = ? AND read = ?", recipientID, false).
		Update("read", true).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *notificationRepository) CountUnread(ctx context.Context, recipientID uint) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Notification{}).
		Where("recipient_id = ? AND read = ?", recipientID, false).
		Count(&count).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}
