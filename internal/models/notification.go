package models

import "time"

// NotificationType classifies the event a notification records.
type NotificationType string

const (
	// NotificationTypeLike is emitted when someone likes a user's post.
	NotificationTypeLike NotificationType = "like"
	// NotificationTypeComment is emitted when someone comments on a user's post.
	NotificationTypeComment NotificationType = "comment"
	// NotificationTypeConnectionAccepted is emitted to the original sender
	// when their connection request is accepted.
	NotificationTypeConnectionAccepted NotificationType = "connection_accepted"
)

// Notification is an append-only per-recipient event record. PostID is
// nullable and may reference a post that has since been deleted; readers
// tolerate the orphaned reference.
type Notification struct {
	ID          uint             `gorm:"primaryKey" json:"id"`
	RecipientID uint             `gorm:"not null;index" json:"recipient_id"`
	ActorID     uint             `gorm:"not null" json:"actor_id"`
	Type        NotificationType `gorm:"type:varchar(32);not null" json:"type"`
	PostID      *uint            `json:"post_id,omitempty"`
	Read        bool             `gorm:"default:false" json:"read"`
	CreatedAt   time.Time        `json:"created_at"`

	Actor User `gorm:"foreignKey:ActorID" json:"actor,omitempty"`
}

// NotificationView is the denormalized shape returned to clients: the raw
// notification plus actor and (possibly absent) post summaries.
type NotificationView struct {
	Notification
	ActorSummary UserSummary `json:"actor_summary"`
	// Post is nil when the referenced post no longer exists.
	Post *Post `json:"post,omitempty"`
}
