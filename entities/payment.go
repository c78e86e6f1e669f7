package entities

import (
	"time"

	"github.com/google/uuid"
)

const (
	PaymentStatusPending   = "pending"
	PaymentStatusCompleted = "completed"
	PaymentStatusFailed    = "failed"
)

type Payment struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	UserID        uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	PackageID     uuid.UUID `gorm:"type:uuid;not null;index" json:"package_id"`
	Amount        float64   `gorm:"not null" json:"amount"`
	PaymentMode   string    `gorm:"not null" json:"payment_mode"` // UPI, Cash, Card, Bank Transfer
	Month         string    `gorm:"not null" json:"month"`
	Year          int       `gorm:"not null" json:"year"`
	PaymentDate   time.Time `json:"payment_date"`
	Status        string    `gorm:"default:completed" json:"status"` // pending, completed, failed
	TransactionID string    `gorm:"uniqueIndex;not null" json:"transaction_id"`
	Notes         string    `json:"notes,omitempty"`

	User    *User    `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Package *Package `gorm:"foreignKey:PackageID" json:"package,omitempty"`
	Timestamp
}
