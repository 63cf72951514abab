package repository

import (
	"context"
	"errors"

	"clicknet/internal/models"

	"gorm.io/gorm"
)

// ConnectionRepository defines persistence for connection requests. Accepted
// rows are the source of truth for who is connected to whom: a connection
// between A and B exists exactly when an accepted request row links them in
// either direction.
type ConnectionRepository interface {
	Create(ctx context.Context, req *models.ConnectionRequest) error
	GetByID(ctx context.Context, id uint) (*models.ConnectionRequest, error)
	GetBetween(ctx context.Context, userA, userB uint, statuses ...models.ConnectionStatus) (*models.ConnectionRequest, error)
	UpdateStatus(ctx context.Context, tx *gorm.DB, id uint, status models.ConnectionStatus) error
	DeleteAcceptedBetween(ctx context.Context, userA, userB uint) error
	ListIncomingPending(ctx context.Context, userID uint) ([]*models.ConnectionRequest, error)
	ConnectedIDs(ctx context.Context, userID uint) ([]uint, error)
	Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type connectionRepository struct {
	db *gorm.DB
}

// NewConnectionRepository creates a new connection repository.
func NewConnectionRepository(db *gorm.DB) ConnectionRepository {
	return &connectionRepository{db: db}
}

func (r *connectionRepository) Create(ctx context.Context, req *models.ConnectionRequest) error {
	if err := r.db.WithContext(ctx).Create(req).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *connectionRepository) GetByID(ctx context.Context, id uint) (*models.ConnectionRequest, error) {
	var req models.ConnectionRequest
	if err := r.db.WithContext(ctx).Preload("Sender").First(&req, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Connection request", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &req, nil
}

// GetBetween finds the most recent request linking the two users in either
// direction, optionally filtered by status. Returns nil when no row matches.
func (r *connectionRepository) GetBetween(ctx context.Context, userA, userB uint, statuses ...models.ConnectionStatus) (*models.ConnectionRequest, error) {
	var req models.ConnectionRequest
	q := r.db.WithContext(ctx).
		Where("(sender_id = ? AND recipient_id = ?) OR (sender_id = ? AND recipient_id = ?)",
			userA, userB, userB, userA)
	if len(statuses) > 0 {
		q = q.Where("status IN ?", statuses)
	}
	if err := q.Order("created_at DESC").First(&req).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &req, nil
}

// UpdateStatus sets the request status. When tx is non-nil the update joins
// the caller's transaction so accept plus notification commit atomically.
func (r *connectionRepository) UpdateStatus(ctx context.Context, tx *gorm.DB, id uint, status models.ConnectionStatus) error {
	db := tx
	if db == nil {
		db = r.db
	}
	result := db.WithContext(ctx).
		Model(&models.ConnectionRequest{}).
		Where("id = ?", id).
		Update("status", status)
	if result.Error != nil {
		return models.NewInternalError(result.Error)
	}
	if result.RowsAffected == 0 {
		return models.NewNotFoundError("Connection request", id)
	}
	return nil
}

// DeleteAcceptedBetween removes the accepted edge between two users in
// either direction. Deleting nothing is not an error.
func (r *connectionRepository) DeleteAcceptedBetween(ctx context.Context, userA, userB uint) error {
	if err := r.db.WithContext(ctx).
		Where("((sender_id = ? AND recipient_id = ?) OR (sender_id = ? AND recipient_id = ?)) AND status = ?",
			userA, userB, userB, userA, models.ConnectionStatusAccepted).
		Delete(&models.ConnectionRequest{}).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *connectionRepository) ListIncomingPending(ctx context.Context, userID uint) ([]*models.ConnectionRequest, error) {
	var reqs []*models.ConnectionRequest
	if err := r.db.WithContext(ctx).
		Preload("Sender").
		Where("recipient_id = ? AND status = ?", userID, models.ConnectionStatusPending).
		Order("created_at DESC").
		Find(&reqs).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return reqs, nil
}

// ConnectedIDs returns the IDs of every user connected to userID, derived
// from accepted request rows in both directions.
func (r *connectionRepository) ConnectedIDs(ctx context.Context, userID uint) ([]uint, error) {
	var reqs []models.ConnectionRequest
	if err := r.db.WithContext(ctx).
		Select("sender_id", "recipient_id").
		Where("(sender_id = ? OR recipient_id = ?) AND status = ?",
			userID, userID, models.ConnectionStatusAccepted).
		Find(&reqs).Error; err != nil {
		return nil, models.NewInternalError(err)
	}

	ids := make([]uint, 0, len(reqs))
	seen := map[uint]struct{}{}
	for _, req := range reqs {
		other := req.SenderID
		if other == userID {
			other = req.RecipientID
		}
		if _, dup := seen[other]; dup {
			continue
		}
		seen[other] = struct{}{}
		ids = append(ids, other)
	}
	return ids, nil
}

func (r *connectionRepository) Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return r.db.WithContext(ctx).Transaction(fn)
}
