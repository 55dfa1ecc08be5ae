package entity

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ModifierItem struct {
	gorm.Model
	ModifierGroupID uint          `gorm:"index;not null" json:"modifierGroupId"`
	ModifierGroup   ModifierGroup `json:"-"`

	Name        string          `gorm:"size:100;not null" json:"name"`
	Price       decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"price"`
	IsAvailable bool            `gorm:"not null;default:true" json:"isAvailable"`
	SortOrder   int             `gorm:"not null;default:0" json:"sortOrder"`
}
