package entities

import (
	"time"

	"github.com/google/uuid"
)

const (
	MessageTypeEmail = "email"
	MessageTypeSMS   = "sms"
	MessageTypeBoth  = "both"

	RecipientStatusPending = "pending"
	RecipientStatusSent    = "sent"
	RecipientStatusFailed  = "failed"
)

type Message struct {
	ID              uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Title           string    `gorm:"not null" json:"title"`
	Body            string    `gorm:"not null" json:"message"`
	Type            string    `gorm:"not null" json:"type"` // email, sms, both
	SentByID        uuid.UUID `gorm:"type:uuid;not null" json:"sent_by_id"`
	TotalRecipients int       `gorm:"default:0" json:"total_recipients"`
	SuccessCount    int       `gorm:"default:0" json:"success_count"`
	FailureCount    int       `gorm:"default:0" json:"failure_count"`

	SentBy     *User               `gorm:"foreignKey:SentByID" json:"sent_by,omitempty"`
	Recipients []*MessageRecipient `gorm:"foreignKey:MessageID" json:"recipients,omitempty"`
	Timestamp
}

type MessageRecipient struct {
	ID        uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	MessageID uuid.UUID  `gorm:"type:uuid;not null;index" json:"message_id"`
	UserID    uuid.UUID  `gorm:"type:uuid;not null" json:"user_id"`
	Status    string     `gorm:"default:pending" json:"status"` // pending, sent, failed
	SentAt    *time.Time `json:"sent_at,omitempty"`
	Error     string     `json:"error,omitempty"`

	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Timestamp
}
