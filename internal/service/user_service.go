package service

import (
	"context"
	"strings"

	"clicknet/internal/models"
	"clicknet/internal/repository"
	"clicknet/internal/storage"
)

const suggestionLimit = 5

// UserService provides profile and discovery business logic.
type UserService struct {
	userRepo repository.UserRepository
	connRepo repository.ConnectionRepository
	store    storage.ObjectStore
}

// UpdateProfileInput lists the fields a user may change on their own profile.
// Nil pointers leave the current value untouched. Identity and role fields
// (username, email, password, is_admin) are deliberately absent.
type UpdateProfileInput struct {
	Name           *string
	Bio            *string
	Location       *string
	Website        *string
	IsPhotographer *bool
	SocialLinks    *models.SocialLinks
	ProfilePicture *string
	CoverPhoto     *string
	Experience     []models.Experience
	Qualifications []models.Qualification
}

func NewUserService(
	userRepo repository.UserRepository,
	connRepo repository.ConnectionRepository,
	store storage.ObjectStore,
) *UserService {
	return &UserService{
		userRepo: userRepo,
		connRepo: connRepo,
		store:    store,
	}
}

// Profile returns the public profile for a username, including experience
// and qualifications.
func (s *UserService) Profile(ctx context.Context, username string) (*models.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, models.NewValidationError("Username is required")
	}
	return s.userRepo.GetProfile(ctx, username)
}

// UpdateProfile applies the allowed profile changes for the user. Inline
// image payloads are stored and replaced with their hosted URLs.
func (s *UserService) UpdateProfile(ctx context.Context, userID uint, in UpdateProfileInput) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, models.NewValidationError("Name cannot be empty")
		}
		user.Name = name
	}
	if in.Bio != nil {
		if len(*in.Bio) > 500 {
			return nil, models.NewValidationError("Bio too long (max 500 characters)")
		}
		user.Bio = *in.Bio
	}
	if in.Location != nil {
		user.Location = *in.Location
	}
	if in.Website != nil {
		user.Website = *in.Website
	}
	if in.IsPhotographer != nil {
		user.IsPhotographer = *in.IsPhotographer
	}
	if in.SocialLinks != nil {
		user.SocialLinks = *in.SocialLinks
	}

	if in.ProfilePicture != nil {
		url, err := s.resolveImage(ctx, "avatars", *in.ProfilePicture)
		if err != nil {
			return nil, err
		}
		user.ProfilePicture = url
	}
	if in.CoverPhoto != nil {
		url, err := s.resolveImage(ctx, "covers", *in.CoverPhoto)
		if err != nil {
			return nil, err
		}
		user.CoverPhoto = url
	}

	// Avoid re-saving association slices loaded by GetByID.
	user.Experience = nil
	user.Qualifications = nil
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	if in.Experience != nil {
		if err := s.userRepo.ReplaceExperience(ctx, userID, in.Experience); err != nil {
			return nil, err
		}
	}
	if in.Qualifications != nil {
		if err := s.userRepo.ReplaceQualifications(ctx, userID, in.Qualifications); err != nil {
			return nil, err
		}
	}
	return s.userRepo.GetProfile(ctx, user.Username)
}

func (s *UserService) resolveImage(ctx context.Context, prefix, value string) (string, error) {
	if value == "" || !storage.IsDataURL(value) {
		return value, nil
	}
	_, url, err := storage.SaveDataURL(ctx, s.store, prefix, value)
	if err != nil {
		return "", models.NewValidationError(err.Error())
	}
	return url, nil
}

// Suggestions returns up to five users the viewer is not connected to,
// excluding the viewer themselves.
func (s *UserService) Suggestions(ctx context.Context, userID uint) ([]models.UserSummary, error) {
	connectedIDs, err := s.connRepo.ConnectedIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	exclude := append([]uint{userID}, connectedIDs...)

	users, err := s.userRepo.Suggestions(ctx, exclude, suggestionLimit)
	if err != nil {
		return nil, err
	}

	summaries := make([]models.UserSummary, 0, len(users))
	for i := range users {
		summaries = append(summaries, users[i].Summary())
	}
	return summaries, nil
}
