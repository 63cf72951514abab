package server

import (
	"clicknet/internal/models"
	"clicknet/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetSuggestions handles GET /api/users/suggestions
func (s *Server) GetSuggestions(c *fiber.Ctx) error {
	suggestions, err := s.userService.Suggestions(c.Context(), currentUserID(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"suggestions": suggestions})
}

// GetProfile handles GET /api/users/:username
func (s *Server) GetProfile(c *fiber.Ctx) error {
	user, err := s.userService.Profile(c.Context(), c.Params("username"))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(user)
}

// GetUserPosts handles GET /api/users/:username/posts
func (s *Server) GetUserPosts(c *fiber.Ctx) error {
	user, err := s.userService.Profile(c.Context(), c.Params("username"))
	if err != nil {
		return respondServiceError(c, err)
	}

	p := parsePagination(c, 20)
	posts, err := s.postService.PostsByUser(c.Context(), user.ID, currentUserID(c), p.Limit, p.Offset)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"posts": posts})
}

// UpdateProfile handles PUT /api/users/profile
func (s *Server) UpdateProfile(c *fiber.Ctx) error {
	var req struct {
		Name           *string                `json:"name"`
		Bio            *string                `json:"bio"`
		Location       *string                `json:"location"`
		Website        *string                `json:"website"`
		IsPhotographer *bool                  `json:"is_photographer"`
		SocialLinks    *models.SocialLinks    `json:"social_links"`
		ProfilePicture *string                `json:"profile_picture"`
		CoverPhoto     *string                `json:"cover_photo"`
		Experience     []models.Experience    `json:"experience"`
		Qualifications []models.Qualification `json:"qualifications"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.userService.UpdateProfile(c.Context(), currentUserID(c), service.UpdateProfileInput{
		Name:           req.Name,
		Bio:            req.Bio,
		Location:       req.Location,
		Website:        req.Website,
		IsPhotographer: req.IsPhotographer,
		SocialLinks:    req.SocialLinks,
		ProfilePicture: req.ProfilePicture,
		CoverPhoto:     req.CoverPhoto,
		Experience:     req.Experience,
		Qualifications: req.Qualifications,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(user)
}
