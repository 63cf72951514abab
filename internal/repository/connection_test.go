package repository

import (
	"context"
	"testing"

	"clicknet/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnectionRepository_Integration(t *testing.T) {
	repo := NewConnectionRepository(testDB)
	ctx := context.Background()

	alice := makeUser(t)
	bob := makeUser(t)
	carol := makeUser(t)

	t.Run("Create and ListIncomingPending", func(t *testing.T) {
		req := &models.ConnectionRequest{
			SenderID:    alice.ID,
			RecipientID: bob.ID,
			Status:      models.ConnectionStatusPending,
		}
		require.NoError(t, repo.Create(ctx, req))

		pending, err := repo.ListIncomingPending(ctx, bob.ID)
		require.NoError(t, err)
		require.Len(t, pending, 1)
		assert.Equal(t, alice.ID, pending[0].SenderID)
		assert.Equal(t, alice.Username, pending[0].Sender.Username)

		// The sender has no incoming requests.
		pending, err = repo.ListIncomingPending(ctx, alice.ID)
		require.NoError(t, err)
		assert.Empty(t, pending)
	})

	t.Run("GetBetween matches either direction", func(t *testing.T) {
		req, err := repo.GetBetween(ctx, bob.ID, alice.ID)
		require.NoError(t, err)
		require.NotNil(t, req)
		assert.Equal(t, alice.ID, req.SenderID)

		none, err := repo.GetBetween(ctx, alice.ID, carol.ID)
		require.NoError(t, err)
		assert.Nil(t, none)
	})

	t.Run("Accept makes the connection visible to both sides", func(t *testing.T) {
		req, err := repo.GetBetween(ctx, alice.ID, bob.ID)
		require.NoError(t, err)
		require.NoError(t, repo.UpdateStatus(ctx, nil, req.ID, models.ConnectionStatusAccepted))

		fromAlice, err := repo.ConnectedIDs(ctx, alice.ID)
		require.NoError(t, err)
		fromBob, err := repo.ConnectedIDs(ctx, bob.ID)
		require.NoError(t, err)

		assert.Equal(t, []uint{bob.ID}, fromAlice)
		assert.Equal(t, []uint{alice.ID}, fromBob)
	})

	t.Run("Rejected requests do not connect", func(t *testing.T) {
		req := &models.ConnectionRequest{
			SenderID:    carol.ID,
			RecipientID: alice.ID,
			Status:      models.ConnectionStatusPending,
		}
		require.NoError(t, repo.Create(ctx, req))
		require.NoError(t, repo.UpdateStatus(ctx, nil, req.ID, models.ConnectionStatusRejected))

		ids, err := repo.ConnectedIDs(ctx, carol.ID)
		require.NoError(t, err)
		assert.Empty(t, ids)
	})

	t.Run("UpdateStatus on missing request returns not found", func(t *testing.T) {
		err := repo.UpdateStatus(ctx, nil, 999999, models.ConnectionStatusAccepted)
		require.Error(t, err)
		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, models.CodeNotFound, appErr.Code)
	})

	t.Run("GetBetween filters by status", func(t *testing.T) {
		pending, err := repo.GetBetween(ctx, alice.ID, carol.ID, models.ConnectionStatusPending)
		require.NoError(t, err)
		assert.Nil(t, pending)

		rejected, err := repo.GetBetween(ctx, alice.ID, carol.ID, models.ConnectionStatusRejected)
		require.NoError(t, err)
		require.NotNil(t, rejected)
	})
}
