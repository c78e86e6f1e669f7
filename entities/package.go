package entities

import (
	"time"

	"github.com/google/uuid"
)

const (
	PackageStatusUpcoming      = "upcoming"
	PackageStatusCurrent       = "current"
	PackageStatusDrawCompleted = "draw_completed"
)

// Winner is the snapshot taken at draw time. It is decoupled from the live
// user record on purpose: later profile edits must not rewrite history.
type Winner struct {
	Name              string     `json:"name"`
	VirtualCardNumber string     `json:"virtual_card_number"`
	City              string     `json:"city"`
	Phone             string     `json:"phone"`
	FeedbackMessage   string     `json:"feedback_message,omitempty"`
	FeedbackVideo     string     `json:"feedback_video,omitempty"`
	ChosenPrize       string     `json:"chosen_prize,omitempty"`
	UserID            *uuid.UUID `json:"user_id,omitempty"`
}

type Package struct {
	ID                 uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	PackageID          string    `gorm:"uniqueIndex;not null" json:"package_id"`
	Name               string    `gorm:"not null" json:"name"`
	Destination        []string  `gorm:"serializer:json" json:"destination"`
	Couples            int       `gorm:"not null" json:"couples"`
	Duration           string    `json:"duration"`
	Images             []string  `gorm:"serializer:json" json:"images"`
	Description        string    `json:"description"`
	Inclusions         []string  `gorm:"serializer:json" json:"inclusions"`
	DrawDate           time.Time `json:"draw_date"`
	Month              string    `gorm:"not null" json:"month"`
	Year               int       `gorm:"not null" json:"year"`
	MonthlyInstallment float64   `gorm:"not null" json:"monthly_installment"`
	Status             string    `gorm:"default:upcoming;index" json:"status"` // upcoming, current, draw_completed
	LiveVideoURL       string    `json:"live_video_url,omitempty"`
	PrizeDescription   string    `json:"prize_description,omitempty"`

	Winner *Winner `gorm:"embedded;embeddedPrefix:winner_" json:"winner,omitempty"`

	TotalParticipants int     `gorm:"default:0" json:"total_participants"`
	TotalRevenue      float64 `gorm:"default:0" json:"total_revenue"`

	Timestamp
}
