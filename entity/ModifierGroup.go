package entity

import (
	"gorm.io/gorm"
)

// ModifierGroup is a named set of choices attached to menu items
// (e.g. "Spice Level"). IsMultiple selects between single-choice and
// min/max-bounded multi-choice rules.
type ModifierGroup struct {
	gorm.Model
	Name         string `gorm:"size:100;not null" json:"name"`
	IsRequired   bool   `gorm:"not null;default:false" json:"isRequired"`
	IsMultiple   bool   `gorm:"not null;default:false" json:"isMultiple"`
	MinSelection int    `gorm:"not null;default:0" json:"minSelection"`
	MaxSelection int    `gorm:"not null;default:1" json:"maxSelection"`

	Items []ModifierItem `json:"items,omitempty"`

	MenuItems []MenuItem `gorm:"many2many:menu_item_modifier_groups;" json:"-"`
}
