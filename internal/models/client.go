package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Client represents a customer listed in the client directory.
type Client struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`

	Name    string `gorm:"size:255;not null;index" json:"name"`
	Email   string `gorm:"size:255" json:"email,omitempty"`
	Address string `gorm:"size:500" json:"address,omitempty"`

	BalanceDue decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"balance_due"`

	// Position orders the directory; the first client is the default bill-to.
	Position int `gorm:"default:0;index" json:"-"`
}
