package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"clicknet/internal/models"
	"clicknet/internal/storage"
)

func strptr(s string) *string { return &s }

func TestUserServiceUpdateProfileAllowlist(t *testing.T) {
	var saved *models.User
	users := noopUserRepo()
	users.getByIDFn = func(context.Context, uint) (*models.User, error) {
		return &models.User{ID: 1, Username: "ansel", Name: "Ansel", IsAdmin: false}, nil
	}
	users.updateFn = func(_ context.Context, u *models.User) error {
		saved = u
		return nil
	}

	svc := NewUserService(users, noopConnectionRepo(), storage.NewMemoryStore(""))
	photographer := true
	_, err := svc.UpdateProfile(context.Background(), 1, UpdateProfileInput{
		Bio:            strptr("Landscape work, mostly."),
		IsPhotographer: &photographer,
		SocialLinks:    &models.SocialLinks{Instagram: "https://instagram.com/ansel"},
	})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if saved.Bio != "Landscape work, mostly." || !saved.IsPhotographer {
		t.Fatalf("profile fields not applied: %#v", saved)
	}
	if saved.SocialLinks.Instagram == "" {
		t.Fatal("social links not applied")
	}
	// Untouched fields keep their values.
	if saved.Username != "ansel" || saved.IsAdmin {
		t.Fatalf("immutable fields changed: %#v", saved)
	}
}

func TestUserServiceUpdateProfileBioTooLong(t *testing.T) {
	svc := NewUserService(noopUserRepo(), noopConnectionRepo(), storage.NewMemoryStore(""))
	_, err := svc.UpdateProfile(context.Background(), 1, UpdateProfileInput{
		Bio: strptr(strings.Repeat("x", 501)),
	})
	var appErr *models.AppError
	if !errors.As(err, &appErr) || appErr.Code != models.CodeValidation {
		t.Fatalf("expected validation app error, got %#v", err)
	}
}

func TestUserServiceUpdateProfileStoresInlineAvatar(t *testing.T) {
	store := storage.NewMemoryStore("")
	var saved *models.User
	users := noopUserRepo()
	users.updateFn = func(_ context.Context, u *models.User) error {
		saved = u
		return nil
	}

	svc := NewUserService(users, noopConnectionRepo(), store)
	_, err := svc.UpdateProfile(context.Background(), 1, UpdateProfileInput{
		ProfilePicture: strptr("data:image/jpeg;base64,aGk="),
	})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if saved.ProfilePicture == "" || strings.HasPrefix(saved.ProfilePicture, "data:") {
		t.Fatalf("avatar not resolved to a hosted URL: %q", saved.ProfilePicture)
	}
	if store.Len() != 1 {
		t.Fatalf("expected one stored object, got %d", store.Len())
	}
}

func TestUserServiceUpdateProfileReplacesExperience(t *testing.T) {
	var replaced []models.Experience
	users := noopUserRepo()
	users.replaceExperienceFn = func(_ context.Context, _ uint, items []models.Experience) error {
		replaced = items
		return nil
	}

	svc := NewUserService(users, noopConnectionRepo(), storage.NewMemoryStore(""))
	_, err := svc.UpdateProfile(context.Background(), 1, UpdateProfileInput{
		Experience: []models.Experience{{Title: "Wedding season 2024", Location: "Austin"}},
	})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if len(replaced) != 1 || replaced[0].Title != "Wedding season 2024" {
		t.Fatalf("experience not replaced: %#v", replaced)
	}
}

func TestUserServiceSuggestionsExcludesSelfAndConnections(t *testing.T) {
	conns := noopConnectionRepo()
	conns.connectedIDsFn = func(context.Context, uint) ([]uint, error) {
		return []uint{4, 8}, nil
	}

	var gotExclude []uint
	var gotLimit int
	users := noopUserRepo()
	users.suggestionsFn = func(_ context.Context, excludeIDs []uint, limit int) ([]models.User, error) {
		gotExclude = excludeIDs
		gotLimit = limit
		return []models.User{{ID: 20, Username: "fresh"}}, nil
	}

	svc := NewUserService(users, conns, storage.NewMemoryStore(""))
	out, err := svc.Suggestions(context.Background(), 2)
	if err != nil {
		t.Fatalf("suggestions failed: %v", err)
	}
	if gotLimit != suggestionLimit {
		t.Fatalf("limit %d, want %d", gotLimit, suggestionLimit)
	}
	want := []uint{2, 4, 8}
	if len(gotExclude) != len(want) {
		t.Fatalf("exclude %v, want %v", gotExclude, want)
	}
	if len(out) != 1 || out[0].Username != "fresh" {
		t.Fatalf("unexpected suggestions %#v", out)
	}
}

func TestUserServiceProfileRequiresUsername(t *testing.T) {
	svc := NewUserService(noopUserRepo(), noopConnectionRepo(), storage.NewMemoryStore(""))
	_, err := svc.Profile(context.Background(), "  ")
	var appErr *models.AppError
	if !errors.As(err, &appErr) || appErr.Code != models.CodeValidation {
		t.Fatalf("expected validation app error, got %#v", err)
	}
}
