package models

import "time"

// ConnectionStatus represents the state of a connection request.
type ConnectionStatus string

const (
	// ConnectionStatusPending indicates a request awaiting the recipient's decision.
	ConnectionStatusPending ConnectionStatus = "pending"
	// ConnectionStatusAccepted indicates an accepted request; the accepted row
	// IS the connection edge between the two users.
	ConnectionStatusAccepted ConnectionStatus = "accepted"
	// ConnectionStatusRejected indicates a rejected request (terminal).
	ConnectionStatusRejected ConnectionStatus = "rejected"
)

// ConnectionRequest represents a connection between two users, mediated by a
// pending request. At most one non-rejected row may exist per unordered
// (sender, recipient) pair; the service layer enforces this.
type ConnectionRequest struct {
	ID          uint             `gorm:"primaryKey" json:"id"`
	SenderID    uint             `gorm:"not null;index:idx_connection_pair" json:"sender_id"`
	RecipientID uint             `gorm:"not null;index:idx_connection_pair" json:"recipient_id"`
	Status      ConnectionStatus `gorm:"type:varchar(20);default:'pending';index" json:"status"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`

	Sender    User `gorm:"foreignKey:SenderID" json:"sender,omitempty"`
	Recipient User `gorm:"foreignKey:RecipientID" json:"recipient,omitempty"`
}

// TableName specifies the table name for GORM
func (ConnectionRequest) TableName() string {
	return "connection_requests"
}
