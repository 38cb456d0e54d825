package models

import (
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// Item is a catalog entry that invoice lines reference.
type Item struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`

	Name        string `gorm:"size:255;not null;index" json:"name"`
	Description string `gorm:"type:text" json:"description,omitempty"`

	// Amount is the unit price.
	Amount decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"amount"`

	// Inventory is nil for unlimited stock (subscriptions, services).
	Inventory *int   `json:"inventory,omitempty"`
	Unit      string `gorm:"size:50;default:'Each'" json:"unit"`
	ImageURL  string `gorm:"size:500" json:"image_url,omitempty"`

	// Position orders the catalog; the first item seeds new invoice lines.
	Position int `gorm:"default:0;index" json:"-"`
}

// IsUnlimited reports whether the item has no stock limit.
func (i *Item) IsUnlimited() bool {
	return i.Inventory == nil
}

// InventoryLabel returns the stock count, or unlimited when the item has none.
func (i *Item) InventoryLabel(unlimited string) string {
	if i.Inventory == nil {
		return unlimited
	}
	return strconv.Itoa(*i.Inventory)
}
