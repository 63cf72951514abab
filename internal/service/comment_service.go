package service

import (
	"context"
	"strings"

	"clicknet/internal/mailer"
	"clicknet/internal/middleware"
	"clicknet/internal/models"
	"clicknet/internal/repository"
)

const maxCommentLen = 2000

// CommentService provides comment business logic.
type CommentService struct {
	commentRepo      repository.CommentRepository
	postRepo         repository.PostRepository
	userRepo         repository.UserRepository
	notificationRepo repository.NotificationRepository
	mail             mailer.Mailer
	isAdmin          func(ctx context.Context, userID uint) (bool, error)
}

func NewCommentService(
	commentRepo repository.CommentRepository,
	postRepo repository.PostRepository,
	userRepo repository.UserRepository,
	notificationRepo repository.NotificationRepository,
	mail mailer.Mailer,
	isAdmin func(ctx context.Context, userID uint) (bool, error),
) *CommentService {
	return &CommentService{
		commentRepo:      commentRepo,
		postRepo:         postRepo,
		userRepo:         userRepo,
		notificationRepo: notificationRepo,
		mail:             mail,
		isAdmin:          isAdmin,
	}
}

// AddComment creates a comment on a post. Commenting on someone else's post
// notifies the author in-app and by email; email failure never fails the
// comment.
func (s *CommentService) AddComment(ctx context.Context, userID, postID uint, content string) (*models.Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, models.NewValidationError("Comment content is required")
	}
	if len(content) > maxCommentLen {
		return nil, models.NewValidationError("Comment too long (max 2000 characters)")
	}

	post, err := s.postRepo.GetByID(ctx, postID, 0)
	if err != nil {
		return nil, err
	}

	comment := &models.Comment{
		UserID:  userID,
		PostID:  postID,
		Content: content,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}

	if post.UserID != userID {
		if err := s.notificationRepo.Create(ctx, nil, &models.Notification{
			RecipientID: post.UserID,
			ActorID:     userID,
			Type:        models.NotificationTypeComment,
			PostID:      &postID,
		}); err != nil {
			return nil, err
		}
		s.emailPostAuthor(ctx, post, userID)
	}

	return s.commentRepo.GetByID(ctx, comment.ID)
}

func (s *CommentService) emailPostAuthor(ctx context.Context, post *models.Post, commenterID uint) {
	author, err := s.userRepo.GetByID(ctx, post.UserID)
	if err != nil {
		middleware.Logger.Warn("comment email skipped, author lookup failed",
			"post_id", post.ID, "error", err)
		return
	}
	commenter, err := s.userRepo.GetByID(ctx, commenterID)
	if err != nil {
		middleware.Logger.Warn("comment email skipped, commenter lookup failed",
			"user_id", commenterID, "error", err)
		return
	}
	if err := s.mail.SendCommentNotification(author.Email, author.Name, commenter.Name, post.Content); err != nil {
		middleware.Logger.Warn("comment notification email failed",
			"post_id", post.ID, "error", err)
	}
}

// Comments lists a post's comments oldest first.
func (s *CommentService) Comments(ctx context.Context, postID uint, limit, offset int) ([]*models.Comment, error) {
	limit = clampLimit(limit)
	if _, err := s.postRepo.GetByID(ctx, postID, 0); err != nil {
		return nil, err
	}
	return s.commentRepo.GetByPostID(ctx, postID, limit, offset)
}

// DeleteComment removes a comment addressed by post and comment id. Only the
// comment author or an admin may delete it; a comment id under the wrong
// post does not resolve.
func (s *CommentService) DeleteComment(ctx context.Context, userID, postID, commentID uint) error {
	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return err
	}
	if comment.PostID != postID {
		return models.NewNotFoundError("Comment", commentID)
	}

	if comment.UserID != userID {
		admin, err := s.isAdmin(ctx, userID)
		if err != nil {
			return err
		}
		if !admin {
			return models.NewForbiddenError("You can only delete your own comments")
		}
	}

	return s.commentRepo.Delete(ctx, commentID)
}
