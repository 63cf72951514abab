package repository

import (
	"context"
	"testing"

	"clicknet/internal/cache"
	"clicknet/internal/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// withCache points the package-global cache client at a fresh miniredis for
// the duration of the test.
func withCache(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	cache.SetClient(rdb)
	t.Cleanup(func() {
		cache.SetClient(nil)
		_ = rdb.Close()
	})
	return mr
}

func TestUserRepository_CachedReadKeepsPasswordHash(t *testing.T) {
	mr := withCache(t)
	repo := NewUserRepository(testDB)
	ctx := context.Background()

	user := makeUser(t)

	// first read fills the cache, second is served from it
	_, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	require.True(t, mr.Exists(cache.UserKey(user.ID)))

	cached, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.Password, cached.Password)

	// saving the cached row must not blank the stored hash
	cached.Bio = "updated from a cached read"
	cached.Experience = nil
	cached.Qualifications = nil
	require.NoError(t, repo.Update(ctx, cached))

	var row models.User
	require.NoError(t, testDB.First(&row, user.ID).Error)
	assert.Equal(t, user.Password, row.Password)
	assert.Equal(t, "updated from a cached read", row.Bio)
}

func TestPostRepository_CachedReadKeepsImageKey(t *testing.T) {
	mr := withCache(t)
	repo := NewPostRepository(testDB)
	ctx := context.Background()

	author := makeUser(t)
	post := &models.Post{
		UserID:   author.ID,
		Content:  "with a stored image",
		ImageURL: "https://cdn.test/posts/abc.jpg",
		ImageKey: "posts/abc.jpg",
	}
	require.NoError(t, testDB.Create(post).Error)

	_, err := repo.GetByID(ctx, post.ID, 0)
	require.NoError(t, err)
	require.True(t, mr.Exists(cache.PostKey(post.ID)))

	cached, err := repo.GetByID(ctx, post.ID, 0)
	require.NoError(t, err)
	assert.Equal(t, "posts/abc.jpg", cached.ImageKey)
}

func TestPostRepository_WriteInvalidatesCachedPost(t *testing.T) {
	mr := withCache(t)
	repo := NewPostRepository(testDB)
	ctx := context.Background()

	author := makeUser(t)
	viewer := makeUser(t)
	post := makePost(t, author.ID, "likeable")

	_, err := repo.GetByID(ctx, post.ID, 0)
	require.NoError(t, err)
	require.True(t, mr.Exists(cache.PostKey(post.ID)))

	inserted, err := repo.Like(ctx, viewer.ID, post.ID)
	require.NoError(t, err)
	require.True(t, inserted)
	assert.False(t, mr.Exists(cache.PostKey(post.ID)))

	cached, err := repo.GetByID(ctx, post.ID, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, cached.LikesCount)
}
