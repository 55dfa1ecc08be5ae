package entity

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// OrderItemModifier is one selected modifier choice on an order line,
// with the modifier price frozen at checkout.
type OrderItemModifier struct {
	gorm.Model

	OrderItemID uint      `gorm:"index" json:"orderItemId"`
	OrderItem   OrderItem `json:"-"`

	ModifierItemID uint         `json:"modifierItemId"`
	ModifierItem   ModifierItem `json:"-"`

	ModifierName string          `gorm:"size:150;not null" json:"modifierName"`
	UnitPrice    decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"unitPrice"`
	Quantity     int             `gorm:"not null;default:1" json:"quantity"`
}
