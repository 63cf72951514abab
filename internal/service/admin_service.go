package service

import (
	"context"

	"clicknet/internal/models"
	"clicknet/internal/repository"
	"clicknet/internal/storage"
)

// AdminStats is the moderation dashboard headline: per-entity totals plus
// their sum.
type AdminStats struct {
	Users    int64 `json:"users"`
	Posts    int64 `json:"posts"`
	Comments int64 `json:"comments"`
	Total    int64 `json:"total"`
}

// AdminService provides the moderation dashboard: stats, listings and
// deletions that bypass ownership checks. Callers must already have verified
// the admin role.
type AdminService struct {
	userRepo    repository.UserRepository
	postRepo    repository.PostRepository
	commentRepo repository.CommentRepository
	store       storage.ObjectStore
}

func NewAdminService(
	userRepo repository.UserRepository,
	postRepo repository.PostRepository,
	commentRepo repository.CommentRepository,
	store storage.ObjectStore,
) *AdminService {
	return &AdminService{
		userRepo:    userRepo,
		postRepo:    postRepo,
		commentRepo: commentRepo,
		store:       store,
	}
}

// Stats returns entity counts for the dashboard.
func (s *AdminService) Stats(ctx context.Context) (*AdminStats, error) {
	users, err := s.userRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	posts, err := s.postRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	comments, err := s.commentRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	return &AdminStats{
		Users:    users,
		Posts:    posts,
		Comments: comments,
		Total:    users + posts + comments,
	}, nil
}

// Users lists accounts for the dashboard. Password hashes never serialize;
// the model excludes them from JSON.
func (s *AdminService) Users(ctx context.Context, limit, offset int) ([]models.User, error) {
	return s.userRepo.List(ctx, clampLimit(limit), offset)
}

// Posts lists all posts regardless of author.
func (s *AdminService) Posts(ctx context.Context, limit, offset int) ([]*models.Post, error) {
	return s.postRepo.List(ctx, clampLimit(limit), offset, 0)
}

// Comments lists all comments regardless of author.
func (s *AdminService) Comments(ctx context.Context, limit, offset int) ([]*models.Comment, error) {
	return s.commentRepo.List(ctx, clampLimit(limit), offset)
}

// DeleteUser removes an account. Admins cannot delete themselves through the
// dashboard; notifications referencing the account are left in place.
func (s *AdminService) DeleteUser(ctx context.Context, adminID, userID uint) error {
	if adminID == userID {
		return models.NewValidationError("Admins cannot delete their own account")
	}
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return err
	}
	return s.userRepo.Delete(ctx, userID)
}

// DeletePost removes any post, skipping ownership checks.
func (s *AdminService) DeletePost(ctx context.Context, postID uint) error {
	post, err := s.postRepo.GetByID(ctx, postID, 0)
	if err != nil {
		return err
	}
	if err := s.postRepo.Delete(ctx, postID); err != nil {
		return err
	}
	_ = storage.DeleteObject(ctx, s.store, post.ImageKey)
	return nil
}

// DeleteComment removes a comment from a given post, skipping ownership
// checks. The comment must belong to the named post.
func (s *AdminService) DeleteComment(ctx context.Context, postID, commentID uint) error {
	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return err
	}
	if comment.PostID != postID {
		return models.NewNotFoundError("Comment", commentID)
	}
	return s.commentRepo.Delete(ctx, commentID)
}
