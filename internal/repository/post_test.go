package repository

import (
	"context"
	"testing"

	"clicknet/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostRepository_Integration(t *testing.T) {
	repo := NewPostRepository(testDB)
	ctx := context.Background()

	author := makeUser(t)
	viewer := makeUser(t)
	post := makePost(t, author.ID, "golden hour at the pier")

	t.Run("GetByID includes counts and liked flag", func(t *testing.T) {
		got, err := repo.GetByID(ctx, post.ID, viewer.ID)
		require.NoError(t, err)
		assert.Equal(t, 0, got.LikesCount)
		assert.Equal(t, 0, got.CommentsCount)
		assert.False(t, got.Liked)
		assert.Equal(t, author.Username, got.User.Username)
	})

	t.Run("Like is idempotent", func(t *testing.T) {
		inserted, err := repo.Like(ctx, viewer.ID, post.ID)
		require.NoError(t, err)
		assert.True(t, inserted)

		inserted, err = repo.Like(ctx, viewer.ID, post.ID)
		require.NoError(t, err)
		assert.False(t, inserted)

		got, err := repo.GetByID(ctx, post.ID, viewer.ID)
		require.NoError(t, err)
		assert.Equal(t, 1, got.LikesCount)
		assert.True(t, got.Liked)
	})

	t.Run("Unlike removes the like", func(t *testing.T) {
		require.NoError(t, repo.Unlike(ctx, viewer.ID, post.ID))

		liked, err := repo.IsLiked(ctx, viewer.ID, post.ID)
		require.NoError(t, err)
		assert.False(t, liked)

		got, err := repo.GetByID(ctx, post.ID, viewer.ID)
		require.NoError(t, err)
		assert.Equal(t, 0, got.LikesCount)
	})

	t.Run("Feed returns only the requested authors", func(t *testing.T) {
		stranger := makeUser(t)
		makePost(t, stranger.ID, "not in this feed")
		mine := makePost(t, viewer.ID, "my own shot")

		posts, err := repo.Feed(ctx, []uint{viewer.ID, author.ID}, 50, 0, viewer.ID)
		require.NoError(t, err)

		seen := map[uint]bool{}
		for _, p := range posts {
			seen[p.ID] = true
			assert.Contains(t, []uint{viewer.ID, author.ID}, p.UserID)
		}
		assert.True(t, seen[post.ID])
		assert.True(t, seen[mine.ID])
	})

	t.Run("Feed with no authors is empty", func(t *testing.T) {
		posts, err := repo.Feed(ctx, nil, 50, 0, viewer.ID)
		require.NoError(t, err)
		assert.Empty(t, posts)
	})

	t.Run("Delete removes the post with its comments and likes", func(t *testing.T) {
		doomed := makePost(t, author.ID, "soon gone")
		require.NoError(t, testDB.Create(&models.Comment{
			PostID: doomed.ID, UserID: viewer.ID, Content: "gone with it",
		}).Error)
		inserted, err := repo.Like(ctx, viewer.ID, doomed.ID)
		require.NoError(t, err)
		require.True(t, inserted)

		require.NoError(t, repo.Delete(ctx, doomed.ID))

		_, err = repo.GetByID(ctx, doomed.ID, viewer.ID)
		require.Error(t, err)
		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, models.CodeNotFound, appErr.Code)

		var comments, likes int64
		testDB.Model(&models.Comment{}).Where("post_id = ?", doomed.ID).Count(&comments)
		testDB.Model(&models.Like{}).Where("post_id = ?", doomed.ID).Count(&likes)
		assert.Equal(t, int64(0), comments)
		assert.Equal(t, int64(0), likes)
	})
}
