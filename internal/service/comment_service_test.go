package service

import (
	"context"
	"errors"
	"testing"

	"clicknet/internal/mailer"
	"clicknet/internal/models"

	"gorm.io/gorm"
)

func newCommentService(comments *commentRepoStub, posts *postRepoStub, users *userRepoStub, notifications *notificationRepoStub, mail mailer.Mailer, isAdmin func(context.Context, uint) (bool, error)) *CommentService {
	if mail == nil {
		mail = &mailer.RecordingMailer{}
	}
	return NewCommentService(comments, posts, users, notifications, mail, isAdmin)
}

func TestCommentServiceAddRequiresContent(t *testing.T) {
	svc := newCommentService(noopCommentRepo(), noopPostRepo(), noopUserRepo(), noopNotificationRepo(), nil, neverAdmin)
	_, err := svc.AddComment(context.Background(), 1, 2, "  ")
	var appErr *models.AppError
	if !errors.As(err, &appErr) || appErr.Code != models.CodeValidation {
		t.Fatalf("expected validation app error, got %#v", err)
	}
}

func TestCommentServiceAddNotifiesAndEmailsAuthor(t *testing.T) {
	posts := noopPostRepo()
	posts.getByIDFn = func(context.Context, uint, uint) (*models.Post, error) {
		return &models.Post{ID: 2, UserID: 10, Content: "sunset over the bay"}, nil
	}

	users := noopUserRepo()
	users.getByIDFn = func(_ context.Context, id uint) (*models.User, error) {
		if id == 10 {
			return &models.User{ID: 10, Name: "Author", Email: "author@example.com"}, nil
		}
		return &models.User{ID: id, Name: "Commenter", Email: "commenter@example.com"}, nil
	}

	var notified *models.Notification
	notifications := noopNotificationRepo()
	notifications.createFn = func(_ context.Context, _ *gorm.DB, n *models.Notification) error {
		notified = n
		return nil
	}

	mail := &mailer.RecordingMailer{}
	svc := newCommentService(noopCommentRepo(), posts, users, notifications, mail, neverAdmin)

	if _, err := svc.AddComment(context.Background(), 1, 2, "great light"); err != nil {
		t.Fatalf("add comment failed: %v", err)
	}
	if notified == nil || notified.RecipientID != 10 || notified.Type != models.NotificationTypeComment {
		t.Fatalf("notification wrong: %#v", notified)
	}
	if mail.Count() != 1 {
		t.Fatalf("expected one email, got %d", mail.Count())
	}
	if mail.Sent[0].To != "author@example.com" {
		t.Fatalf("email to %q, want author", mail.Sent[0].To)
	}
}

func TestCommentServiceAddOwnPostIsSilent(t *testing.T) {
	posts := noopPostRepo()
	posts.getByIDFn = func(context.Context, uint, uint) (*models.Post, error) {
		return &models.Post{ID: 2, UserID: 1}, nil
	}

	notified := false
	notifications := noopNotificationRepo()
	notifications.createFn = func(context.Context, *gorm.DB, *models.Notification) error {
		notified = true
		return nil
	}

	mail := &mailer.RecordingMailer{}
	svc := newCommentService(noopCommentRepo(), posts, noopUserRepo(), notifications, mail, neverAdmin)

	if _, err := svc.AddComment(context.Background(), 1, 2, "note to self"); err != nil {
		t.Fatalf("add comment failed: %v", err)
	}
	if notified || mail.Count() != 0 {
		t.Fatal("commenting on your own post must not notify or email")
	}
}

func TestCommentServiceDeleteForbiddenForStranger(t *testing.T) {
	comments := noopCommentRepo()
	comments.getByIDFn = func(context.Context, uint) (*models.Comment, error) {
		return &models.Comment{ID: 3, UserID: 1, PostID: 2}, nil
	}

	svc := newCommentService(comments, noopPostRepo(), noopUserRepo(), noopNotificationRepo(), nil, neverAdmin)
	err := svc.DeleteComment(context.Background(), 9, 2, 3)
	var appErr *models.AppError
	if !errors.As(err, &appErr) || appErr.Code != models.CodeForbidden {
		t.Fatalf("expected forbidden app error, got %#v", err)
	}
}

func TestCommentServiceDeleteWrongPostNotFound(t *testing.T) {
	comments := noopCommentRepo()
	comments.getByIDFn = func(context.Context, uint) (*models.Comment, error) {
		return &models.Comment{ID: 3, UserID: 1, PostID: 2}, nil
	}
	deleted := false
	comments.deleteFn = func(context.Context, uint) error {
		deleted = true
		return nil
	}

	svc := newCommentService(comments, noopPostRepo(), noopUserRepo(), noopNotificationRepo(), nil, alwaysAdmin)
	err := svc.DeleteComment(context.Background(), 1, 99, 3)
	var appErr *models.AppError
	if !errors.As(err, &appErr) || appErr.Code != models.CodeNotFound {
		t.Fatalf("expected not found app error, got %#v", err)
	}
	if deleted {
		t.Fatal("comment under a different post must not be deleted")
	}
}

func TestCommentServiceDeleteAllowedForAdmin(t *testing.T) {
	comments := noopCommentRepo()
	comments.getByIDFn = func(context.Context, uint) (*models.Comment, error) {
		return &models.Comment{ID: 3, UserID: 1, PostID: 2}, nil
	}
	deleted := false
	comments.deleteFn = func(context.Context, uint) error {
		deleted = true
		return nil
	}

	svc := newCommentService(comments, noopPostRepo(), noopUserRepo(), noopNotificationRepo(), nil, alwaysAdmin)
	if err := svc.DeleteComment(context.Background(), 9, 2, 3); err != nil {
		t.Fatalf("admin delete failed: %v", err)
	}
	if !deleted {
		t.Fatal("expected comment deletion")
	}
}
