package entity

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Order struct {
	gorm.Model

	// OrderNumber is the human readable reference: ORD-YYYYMMDD-NNN,
	// NNN a daily sequence starting at 001.
	OrderNumber string `gorm:"size:20;uniqueIndex;not null" json:"orderNumber"`

	TableID uint  `gorm:"index" json:"tableId"`
	Table   Table `json:"-"` // preload only when the table label is needed

	CustomerName string `gorm:"size:100;not null;default:'Guest'" json:"customerName"`

	Status        OrderStatus        `gorm:"size:20;not null;default:'pending'" json:"status"`
	PaymentStatus OrderPaymentStatus `gorm:"size:20;not null;default:'unpaid'" json:"paymentStatus"`
	PaymentMethod PaymentMethod      `gorm:"size:20;not null" json:"paymentMethod"`

	// TotalAmount is frozen at checkout and never recomputed afterwards.
	TotalAmount decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"totalAmount"`

	Notes       string     `gorm:"size:500" json:"notes"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`

	Items   []OrderItem `json:"items,omitempty"`
	Payment *Payment    `json:"-"` // preload on detail endpoints only
}
