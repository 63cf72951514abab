// Package service implements application business logic on top of the
// repository layer.
package service

import (
	"context"
	"errors"

	"clicknet/internal/models"
	"clicknet/internal/repository"

	"gorm.io/gorm"
)

// Connection status values reported to clients.
const (
	ConnectionNone            = "none"
	ConnectionConnected       = "connected"
	ConnectionPendingOutgoing = "pending_outgoing"
	ConnectionPendingIncoming = "pending_incoming"
)

// ConnectionService provides connection-request and connection business logic.
type ConnectionService struct {
	connRepo         repository.ConnectionRepository
	userRepo         repository.UserRepository
	notificationRepo repository.NotificationRepository
}

// NewConnectionService returns a new ConnectionService.
func NewConnectionService(
	connRepo repository.ConnectionRepository,
	userRepo repository.UserRepository,
	notificationRepo repository.NotificationRepository,
) *ConnectionService {
	return &ConnectionService{
		connRepo:         connRepo,
		userRepo:         userRepo,
		notificationRepo: notificationRepo,
	}
}

// SendRequest creates a pending connection request from userID to
// targetUserID. A live request or an existing connection between the pair
// conflicts; a rejected history does not block a fresh request.
func (s *ConnectionService) SendRequest(ctx context.Context, userID, targetUserID uint) (*models.ConnectionRequest, error) {
	if userID == targetUserID {
		return nil, models.NewValidationError("Cannot send a connection request to yourself")
	}

	if _, err := s.userRepo.GetByID(ctx, targetUserID); err != nil {
		return nil, err
	}

	existing, err := s.connRepo.GetBetween(ctx, userID, targetUserID,
		models.ConnectionStatusPending, models.ConnectionStatusAccepted)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		switch existing.Status {
		case models.ConnectionStatusAccepted:
			return nil, models.NewConflictError("You are already connected")
		case models.ConnectionStatusPending:
			if existing.SenderID == userID {
				return nil, models.NewConflictError("Connection request already sent")
			}
			return nil, models.NewConflictError("This user has already sent you a connection request")
		}
	}

	req := &models.ConnectionRequest{
		SenderID:    userID,
		RecipientID: targetUserID,
		Status:      models.ConnectionStatusPending,
	}
	if err := s.connRepo.Create(ctx, req); err != nil {
		return nil, err
	}
	return s.connRepo.GetByID(ctx, req.ID)
}

// AcceptRequest accepts a pending request addressed to userID. The status
// change and the notification to the original sender commit in one
// transaction.
func (s *ConnectionService) AcceptRequest(ctx context.Context, userID, requestID uint) (*models.ConnectionRequest, error) {
	req, err := s.connRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}

	if req.RecipientID != userID {
		return nil, models.NewForbiddenError("You can only accept connection requests sent to you")
	}
	if req.Status != models.ConnectionStatusPending {
		return nil, models.NewValidationError("Connection request is not pending")
	}

	err = s.connRepo.Transaction(ctx, func(tx *gorm.DB) error {
		if err := s.connRepo.UpdateStatus(ctx, tx, requestID, models.ConnectionStatusAccepted); err != nil {
			return err
		}
		return s.notificationRepo.Create(ctx, tx, &models.Notification{
			RecipientID: req.SenderID,
			ActorID:     userID,
			Type:        models.NotificationTypeConnectionAccepted,
		})
	})
	if err != nil {
		return nil, err
	}

	return s.connRepo.GetByID(ctx, requestID)
}

// RejectRequest rejects a pending request addressed to userID. No
// notification is emitted; the sender is not told about rejections.
func (s *ConnectionService) RejectRequest(ctx context.Context, userID, requestID uint) (*models.ConnectionRequest, error) {
	req, err := s.connRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}

	if req.RecipientID != userID {
		return nil, models.NewForbiddenError("You can only reject connection requests sent to you")
	}
	if req.Status != models.ConnectionStatusPending {
		return nil, models.NewValidationError("Connection request is not pending")
	}

	if err := s.connRepo.UpdateStatus(ctx, nil, requestID, models.ConnectionStatusRejected); err != nil {
		return nil, err
	}
	return s.connRepo.GetByID(ctx, requestID)
}

// RemoveConnection deletes the accepted edge between the user and
// otherUserID. Removing a connection that does not exist is a no-op.
func (s *ConnectionService) RemoveConnection(ctx context.Context, userID, otherUserID uint) error {
	if userID == otherUserID {
		return models.NewValidationError("Cannot remove a connection to yourself")
	}
	return s.connRepo.DeleteAcceptedBetween(ctx, userID, otherUserID)
}

// PendingRequests returns the pending requests addressed to the user.
func (s *ConnectionService) PendingRequests(ctx context.Context, userID uint) ([]*models.ConnectionRequest, error) {
	return s.connRepo.ListIncomingPending(ctx, userID)
}

// Status reports the relationship between userID and targetUserID along with
// the live request ID when one is pending.
func (s *ConnectionService) Status(ctx context.Context, userID, targetUserID uint) (string, uint, error) {
	if _, err := s.userRepo.GetByID(ctx, targetUserID); err != nil {
		return "", 0, err
	}

	req, err := s.connRepo.GetBetween(ctx, userID, targetUserID,
		models.ConnectionStatusPending, models.ConnectionStatusAccepted)
	if err != nil {
		return "", 0, err
	}
	if req == nil {
		return ConnectionNone, 0, nil
	}

	switch req.Status {
	case models.ConnectionStatusAccepted:
		return ConnectionConnected, 0, nil
	case models.ConnectionStatusPending:
		if req.SenderID == userID {
			return ConnectionPendingOutgoing, req.ID, nil
		}
		return ConnectionPendingIncoming, req.ID, nil
	}
	return ConnectionNone, 0, nil
}

// Connections returns summaries of everyone connected to the user.
func (s *ConnectionService) Connections(ctx context.Context, userID uint) ([]models.UserSummary, error) {
	ids, err := s.connRepo.ConnectedIDs(ctx, userID)
	if err != nil {
		return nil, err
	}

	summaries := make([]models.UserSummary, 0, len(ids))
	for _, id := range ids {
		user, err := s.userRepo.GetByID(ctx, id)
		if err != nil {
			// A connection row may outlive a deleted account; skip it.
			var appErr *models.AppError
			if errors.As(err, &appErr) && appErr.Code == models.CodeNotFound {
				continue
			}
			return nil, err
		}
		summaries = append(summaries, user.Summary())
	}
	return summaries, nil
}

// ConnectedIDs exposes the raw connected-user IDs for feed and suggestion
// queries.
func (s *ConnectionService) ConnectedIDs(ctx context.Context, userID uint) ([]uint, error) {
	return s.connRepo.ConnectedIDs(ctx, userID)
}
