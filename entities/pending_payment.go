package entities

import (
	"time"

	"github.com/google/uuid"
)

const (
	PendingPaymentStatusPending = "pending"
	PendingPaymentStatusPaid    = "paid"
	PendingPaymentStatusOverdue = "overdue"
)

// PendingPayment is a reminder-tracking row, not part of the payment ledger.
// Email and phone are snapshotted so reminders survive user edits.
type PendingPayment struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	Email       string    `gorm:"not null" json:"email"`
	Phone       string    `gorm:"not null" json:"phone"`
	Amount      float64   `gorm:"not null" json:"amount"`
	DueDate     time.Time `gorm:"not null" json:"due_date"`
	Status      string    `gorm:"default:pending" json:"status"` // pending, paid, overdue
	Description string    `json:"description,omitempty"`

	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Timestamp
}
