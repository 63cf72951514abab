package service

import (
	"context"
	"strings"

	"clicknet/internal/models"
	"clicknet/internal/repository"
	"clicknet/internal/storage"
)

const maxContentLen = 5000

// PostService provides post, feed and like business logic.
type PostService struct {
	postRepo         repository.PostRepository
	userRepo         repository.UserRepository
	connRepo         repository.ConnectionRepository
	notificationRepo repository.NotificationRepository
	store            storage.ObjectStore
	isAdmin          func(ctx context.Context, userID uint) (bool, error)
}

// CreatePostInput carries the fields for a new post. Image is either empty,
// an inline base64 data URL, or an already hosted URL.
type CreatePostInput struct {
	UserID  uint
	Content string
	Image   string
}

func NewPostService(
	postRepo repository.PostRepository,
	userRepo repository.UserRepository,
	connRepo repository.ConnectionRepository,
	notificationRepo repository.NotificationRepository,
	store storage.ObjectStore,
	isAdmin func(ctx context.Context, userID uint) (bool, error),
) *PostService {
	return &PostService{
		postRepo:         postRepo,
		userRepo:         userRepo,
		connRepo:         connRepo,
		notificationRepo: notificationRepo,
		store:            store,
		isAdmin:          isAdmin,
	}
}

// CreatePost validates and stores a new post. A post needs content or an
// image; inline image data is uploaded to object storage first.
func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	content := strings.TrimSpace(in.Content)
	if content == "" && in.Image == "" {
		return nil, models.NewValidationError("A post needs text or an image")
	}
	if len(content) > maxContentLen {
		return nil, models.NewValidationError("Content too long (max 5000 characters)")
	}

	post := &models.Post{
		UserID:  in.UserID,
		Content: content,
	}

	if in.Image != "" {
		if storage.IsDataURL(in.Image) {
			key, url, err := storage.SaveDataURL(ctx, s.store, "posts", in.Image)
			if err != nil {
				return nil, models.NewValidationError(err.Error())
			}
			post.ImageKey = key
			post.ImageURL = url
		} else {
			post.ImageURL = in.Image
		}
	}

	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}
	return s.postRepo.GetByID(ctx, post.ID, in.UserID)
}

// GetPost returns a single post with counts and the viewer's liked flag.
func (s *PostService) GetPost(ctx context.Context, postID, currentUserID uint) (*models.Post, error) {
	return s.postRepo.GetByID(ctx, postID, currentUserID)
}

// Feed returns posts by the user and their connections, newest first.
func (s *PostService) Feed(ctx context.Context, userID uint, limit, offset int) ([]*models.Post, error) {
	limit = clampLimit(limit)

	connectedIDs, err := s.connRepo.ConnectedIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	authorIDs := append([]uint{userID}, connectedIDs...)
	return s.postRepo.Feed(ctx, authorIDs, limit, offset, userID)
}

// PostsByUser returns one user's posts for their profile page.
func (s *PostService) PostsByUser(ctx context.Context, authorID, currentUserID uint, limit, offset int) ([]*models.Post, error) {
	limit = clampLimit(limit)
	if _, err := s.userRepo.GetByID(ctx, authorID); err != nil {
		return nil, err
	}
	return s.postRepo.GetByUserID(ctx, authorID, limit, offset, currentUserID)
}

// DeletePost removes a post. Only the author or an admin may delete; the
// stored image object is removed best effort.
func (s *PostService) DeletePost(ctx context.Context, userID, postID uint) error {
	post, err := s.postRepo.GetByID(ctx, postID, 0)
	if err != nil {
		return err
	}

	if post.UserID != userID {
		admin, err := s.isAdmin(ctx, userID)
		if err != nil {
			return err
		}
		if !admin {
			return models.NewForbiddenError("You can only delete your own posts")
		}
	}

	if err := s.postRepo.Delete(ctx, postID); err != nil {
		return err
	}
	// Image cleanup is best effort; the post row is already gone.
	_ = storage.DeleteObject(ctx, s.store, post.ImageKey)
	return nil
}

// ToggleLike likes the post when the user has not liked it, and unlikes it
// when they have. Liking someone else's post notifies the author; the
// notification is emitted only on the transition into the liked state.
func (s *PostService) ToggleLike(ctx context.Context, userID, postID uint) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, postID, userID)
	if err != nil {
		return nil, err
	}

	if post.Liked {
		if err := s.postRepo.Unlike(ctx, userID, postID); err != nil {
			return nil, err
		}
		return s.postRepo.GetByID(ctx, postID, userID)
	}

	inserted, err := s.postRepo.Like(ctx, userID, postID)
	if err != nil {
		return nil, err
	}
	if inserted && post.UserID != userID {
		if err := s.notificationRepo.Create(ctx, nil, &models.Notification{
			RecipientID: post.UserID,
			ActorID:     userID,
			Type:        models.NotificationTypeLike,
			PostID:      &postID,
		}); err != nil {
			return nil, err
		}
	}
	return s.postRepo.GetByID(ctx, postID, userID)
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return 20
	}
	if limit > 100 {
		return 100
	}
	return limit
}
