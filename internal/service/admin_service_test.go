package service

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"clicknet/internal/models"
	"clicknet/internal/storage"
)

func TestAdminServiceStatsSumsEntities(t *testing.T) {
	users := noopUserRepo()
	users.countFn = func(context.Context) (int64, error) { return 3, nil }
	posts := noopPostRepo()
	posts.countFn = func(context.Context) (int64, error) { return 5, nil }
	comments := noopCommentRepo()
	comments.countFn = func(context.Context) (int64, error) { return 7, nil }

	svc := NewAdminService(users, posts, comments, storage.NewMemoryStore(""))
	stats, err := svc.Stats(context.Background())
	if err != nil {
		t.Fatalf("stats failed: %v", err)
	}
	if stats.Users != 3 || stats.Posts != 5 || stats.Comments != 7 {
		t.Fatalf("counts wrong: %#v", stats)
	}
	if stats.Total != 15 {
		t.Fatalf("total %d, want 15", stats.Total)
	}
}

func TestAdminServiceDeleteUserSelf(t *testing.T) {
	svc := NewAdminService(noopUserRepo(), noopPostRepo(), noopCommentRepo(), storage.NewMemoryStore(""))
	err := svc.DeleteUser(context.Background(), 1, 1)
	var appErr *models.AppError
	if !errors.As(err, &appErr) || appErr.Code != models.CodeValidation {
		t.Fatalf("expected validation app error, got %#v", err)
	}
}

func TestAdminServiceDeleteCommentWrongPost(t *testing.T) {
	comments := noopCommentRepo()
	comments.getByIDFn = func(context.Context, uint) (*models.Comment, error) {
		return &models.Comment{ID: 3, PostID: 99}, nil
	}

	svc := NewAdminService(noopUserRepo(), noopPostRepo(), comments, storage.NewMemoryStore(""))
	err := svc.DeleteComment(context.Background(), 2, 3)
	var appErr *models.AppError
	if !errors.As(err, &appErr) || appErr.Code != models.CodeNotFound {
		t.Fatalf("expected not-found app error, got %#v", err)
	}
}

func TestAdminServiceDeletePostRemovesImage(t *testing.T) {
	store := storage.NewMemoryStore("")
	_ = store.Put(context.Background(), "posts/x.jpg", bytes.NewReader([]byte("jpg")), 3, "image/jpeg")

	posts := noopPostRepo()
	posts.getByIDFn = func(context.Context, uint, uint) (*models.Post, error) {
		return &models.Post{ID: 7, ImageKey: "posts/x.jpg"}, nil
	}

	svc := NewAdminService(noopUserRepo(), posts, noopCommentRepo(), store)
	if err := svc.DeletePost(context.Background(), 7); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if store.Has("posts/x.jpg") {
		t.Fatal("expected image object removed")
	}
}
