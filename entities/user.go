package entities

import (
	"time"

	"github.com/google/uuid"
)

const (
	RoleUser       = "user"
	RoleAdmin      = "admin"
	RoleSuperadmin = "superadmin"
)

type User struct {
	ID                uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	Name              string     `gorm:"not null" json:"name"`
	Email             string     `gorm:"uniqueIndex;not null" json:"email"`
	Phone             string     `gorm:"uniqueIndex;not null" json:"phone"`
	Password          string     `gorm:"not null" json:"-"`
	VirtualCardNumber string     `gorm:"uniqueIndex;not null" json:"virtual_card_number"`
	City              string     `json:"city"`
	Address           string     `json:"address,omitempty"`
	DateOfBirth       *time.Time `json:"date_of_birth,omitempty"`
	Role              string     `gorm:"default:user" json:"role"` // user, admin, superadmin
	Branch            string     `json:"branch,omitempty"`
	IsActive          bool       `gorm:"default:true" json:"is_active"`
	TotalAmountPaid   float64    `gorm:"default:0" json:"total_amount_paid"`
	MonthsPaid        int        `gorm:"default:0" json:"months_paid"`

	Timestamp
}
