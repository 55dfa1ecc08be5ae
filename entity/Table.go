package entity

import (
	"gorm.io/gorm"
)

type Table struct {
	gorm.Model
	Number string `gorm:"size:20;uniqueIndex;not null" json:"number"`

	// Uuid is the public token embedded in the QR-code URL. Customers
	// only ever see this, never the numeric id.
	Uuid string `gorm:"size:36;uniqueIndex;not null" json:"uuid"`

	Status TableStatus `gorm:"size:20;not null;default:'available'" json:"status"`

	Orders []Order `json:"-"`
}
