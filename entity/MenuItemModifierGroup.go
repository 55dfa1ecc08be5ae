package entity

type MenuItemModifierGroup struct {
	MenuItemID      uint `gorm:"primaryKey" json:"menuItemId"`
	ModifierGroupID uint `gorm:"primaryKey" json:"modifierGroupId"`
	SortOrder       int  `gorm:"not null;default:0" json:"sortOrder"`
}
