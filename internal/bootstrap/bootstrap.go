// Package bootstrap handles development-time runtime initialization.
package bootstrap

import (
	"errors"
	"fmt"
	"strings"

	"clicknet/internal/config"
	"clicknet/internal/middleware"
	"clicknet/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// EnsureDevAdmin creates or repairs the development admin account when
// DEV_BOOTSTRAP_ADMIN is enabled. It never runs outside the development
// environment.
func EnsureDevAdmin(cfg *config.Config, db *gorm.DB) error {
	if cfg == nil || db == nil {
		return nil
	}
	if !strings.EqualFold(cfg.Env, "development") || !cfg.DevBootstrapAdmin {
		return nil
	}

	username := strings.TrimSpace(cfg.DevAdminUsername)
	if username == "" {
		username = "clicknet_admin"
	}
	email := strings.TrimSpace(strings.ToLower(cfg.DevAdminEmail))
	if email == "" {
		email = "admin@clicknet.local"
	}
	password := cfg.DevAdminPassword
	if password == "" {
		return fmt.Errorf("DEV_ADMIN_PASSWORD must be set when DEV_BOOTSTRAP_ADMIN is enabled")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}

	return db.Transaction(func(tx *gorm.DB) error {
		var admin models.User
		findErr := tx.Where("username = ?", username).First(&admin).Error
		switch {
		case errors.Is(findErr, gorm.ErrRecordNotFound):
			admin = models.User{
				Username: username,
				Name:     "ClickNet Admin",
				Email:    email,
				Password: string(hashed),
				IsAdmin:  true,
			}
			if err := tx.Create(&admin).Error; err != nil {
				return err
			}
			middleware.Logger.Info("development admin created", "username", username)
		case findErr != nil:
			return findErr
		default:
			updates := map[string]any{
				"is_admin": true,
				"email":    email,
				"password": string(hashed),
			}
			if err := tx.Model(&models.User{}).Where("id = ?", admin.ID).Updates(updates).Error; err != nil {
				return err
			}
			middleware.Logger.Info("development admin refreshed", "username", username)
		}
		return nil
	})
}
