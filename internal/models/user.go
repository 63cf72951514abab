// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"gorm.io/gorm"
)

// SocialLinks holds the external profile links a photographer can publish.
type SocialLinks struct {
	Facebook  string `json:"facebook,omitempty"`
	Twitter   string `json:"twitter,omitempty"`
	Instagram string `json:"instagram,omitempty"`
	LinkedIn  string `json:"linkedin,omitempty"`
	YouTube   string `json:"youtube,omitempty"`
	Portfolio string `json:"portfolio,omitempty"`
}

// Experience is a work-history entry on a photographer profile.
type Experience struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	UserID       uint       `gorm:"not null;index" json:"user_id"`
	Title        string     `gorm:"not null" json:"title"`
	Location     string     `json:"location"`
	StartDate    *time.Time `json:"start_date,omitempty"`
	EndDate      *time.Time `json:"end_date,omitempty"`
	BestPhoto    string     `json:"best_photo,omitempty"`
	ContactPhone string     `json:"contact_phone,omitempty"`
	ContactEmail string     `json:"contact_email,omitempty"`
}

// Qualification is an education/certification entry on a photographer profile.
type Qualification struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	UserID       uint   `gorm:"not null;index" json:"user_id"`
	Title        string `gorm:"not null" json:"title"`
	Institution  string `json:"institution"`
	FieldOfStudy string `json:"field_of_study,omitempty"`
	Certificate  string `json:"certificate,omitempty"`
}

// User represents an account in the ClickNet application. Connections are
// derived from accepted ConnectionRequest rows, not stored on the user row,
// so the symmetry invariant holds by construction.
type User struct {
	ID             uint            `gorm:"primaryKey" json:"id"`
	Username       string          `gorm:"unique;not null" json:"username"`
	Name           string          `gorm:"not null" json:"name"`
	Email          string          `gorm:"unique;not null" json:"email"`
	Password       string          `gorm:"not null" json:"-"`
	ProfilePicture string          `json:"profile_picture"`
	CoverPhoto     string          `json:"cover_photo"`
	IsPhotographer bool            `gorm:"default:false" json:"is_photographer"`
	IsAdmin        bool            `gorm:"default:false" json:"is_admin"`
	Bio            string          `gorm:"size:500" json:"bio"`
	Location       string          `json:"location"`
	Website        string          `json:"website"`
	SocialLinks    SocialLinks     `gorm:"embedded;embeddedPrefix:social_" json:"social_links"`
	Experience     []Experience    `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"experience,omitempty"`
	Qualifications []Qualification `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"qualifications,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
	DeletedAt      gorm.DeletedAt  `gorm:"index" json:"-"`
	Posts          []Post          `gorm:"foreignKey:UserID" json:"posts,omitempty"`
}

// UserSummary is the denormalized author/actor shape embedded in feed and
// notification responses.
type UserSummary struct {
	ID             uint   `json:"id"`
	Username       string `json:"username"`
	Name           string `json:"name"`
	ProfilePicture string `json:"profile_picture"`
	IsPhotographer bool   `json:"is_photographer"`
}

// Summary projects the fields exposed alongside posts and notifications.
func (u *User) Summary() UserSummary {
	return UserSummary{
		ID:             u.ID,
		Username:       u.Username,
		Name:           u.Name,
		ProfilePicture: u.ProfilePicture,
		IsPhotographer: u.IsPhotographer,
	}
}
