package entity

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type MenuItem struct {
	gorm.Model
	Name        string          `gorm:"size:150;not null" json:"name"`
	Description string          `gorm:"size:500" json:"description"`
	Price       decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"price"`
	ImageURL    string          `gorm:"size:255" json:"imageUrl"`
	IsAvailable bool            `gorm:"not null;default:true" json:"isAvailable"`

	CategoryID uint     `gorm:"index" json:"categoryId"`
	Category   Category `json:"-"` // preload on detail only

	ModifierGroups []ModifierGroup `gorm:"many2many:menu_item_modifier_groups;" json:"modifierGroups,omitempty"`

	OrderItems []OrderItem `json:"-"`
}
