package entity

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Payment struct {
	gorm.Model

	OrderID uint  `gorm:"uniqueIndex;not null" json:"orderId"`
	Order   Order `json:"-"`

	Amount decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"amount"`

	Method PaymentMethod `gorm:"size:20;not null" json:"method"`
	Status PaymentStatus `gorm:"size:20;not null;default:'pending'" json:"status"`

	// Gateway sub-method (gopay, qris, bank_transfer, ...); empty for cash.
	PaymentType string `gorm:"size:50" json:"paymentType"`

	TransactionID string `gorm:"size:100;index" json:"transactionId"`
	FraudStatus   string `gorm:"size:20" json:"fraudStatus"`
	SnapToken     string `gorm:"size:100" json:"-"`

	PaidAt *time.Time `json:"paidAt,omitempty"`

	// RawResponse keeps the last gateway notification verbatim for
	// audit and signature re-checks.
	RawResponse datatypes.JSON `json:"-"`

	// ProofURL references an uploaded payment proof on the cash path.
	ProofURL string `gorm:"size:255" json:"proofUrl,omitempty"`
}
