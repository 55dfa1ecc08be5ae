package entity

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type OrderItem struct {
	gorm.Model

	OrderID uint  `gorm:"index" json:"orderId"`
	Order   Order `json:"-"`

	MenuItemID uint     `json:"menuItemId"`
	MenuItem   MenuItem `json:"-"`

	// MenuItemName and UnitPrice are snapshots taken at checkout so the
	// line survives later catalog edits.
	MenuItemName string          `gorm:"size:150;not null" json:"menuItemName"`
	UnitPrice    decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"unitPrice"`

	Quantity int `gorm:"not null" json:"quantity"`

	// Subtotal = (UnitPrice + sum of modifier prices) * Quantity,
	// recomputed by the pricing engine before persisting, never trusted
	// from the client.
	Subtotal decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"subtotal"`

	Note string `gorm:"size:255" json:"note"`

	Modifiers []OrderItemModifier `json:"modifiers,omitempty"`
}
