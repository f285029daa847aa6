package models

import (
	"time"

	"github.com/google/uuid"
)

// PurchaseRecord is the server-side copy of a completed (or failed) purchase,
// kept so users can list their transaction history. The authoritative record
// lives with the billing provider; Reference ties the two together.
type PurchaseRecord struct {
	BaseModel
	UserID     uuid.UUID `gorm:"type:uuid;index" json:"user_id"`
	User       *User     `json:"user,omitempty"`
	Type       string    `gorm:"index" json:"type"`
	Recipient  string    `json:"recipient"`
	Product    string    `json:"product"`
	Network    string    `json:"network"`
	Amount     int64     `json:"amount"`
	Currency   string    `json:"currency"`
	Status     string    `json:"status"`
	Reference  string    `gorm:"uniqueIndex" json:"reference"`
	FailReason string    `json:"fail_reason,omitempty"`
	PlacedAt   time.Time `json:"placed_at"`
}
