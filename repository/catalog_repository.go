package repository

import (
	"github.com/mhusainh/ScanDine-sub000/entity"
	"gorm.io/gorm"
)

// CatalogRepository is the read side the order path depends on: price
// and availability snapshots at checkout time, plus the menu rendered
// behind a table QR URL. Catalog writes live in CatalogService.
type CatalogRepository struct {
	DB *gorm.DB
}

func NewCatalogRepository(db *gorm.DB) *CatalogRepository {
	return &CatalogRepository{DB: db}
}

func (r *CatalogRepository) GetMenuItem(id uint) (*entity.MenuItem, error) {
	var m entity.MenuItem
	if err := r.DB.First(&m, id).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *CatalogRepository) GetModifierItem(id uint) (*entity.ModifierItem, error) {
	var mi entity.ModifierItem
	if err := r.DB.First(&mi, id).Error; err != nil {
		return nil, err
	}
	return &mi, nil
}

// GetModifierGroupsForMenuItem returns the groups attached to a menu
// item with their choices, ordered by the join table's sort order.
func (r *CatalogRepository) GetModifierGroupsForMenuItem(menuItemID uint) ([]entity.ModifierGroup, error) {
	var groups []entity.ModifierGroup
	err := r.DB.
		Joins("JOIN menu_item_modifier_groups mg ON mg.modifier_group_id = modifier_groups.id").
		Where("mg.menu_item_id = ?", menuItemID).
		Order("mg.sort_order ASC").
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC")
		}).
		Find(&groups).Error
	return groups, err
}

// ListMenu returns the full customer menu: categories in display order
// with available items and their modifier groups.
func (r *CatalogRepository) ListMenu() ([]entity.Category, error) {
	var cats []entity.Category
	err := r.DB.Order("sort_order ASC").
		Preload("MenuItems", "is_available = ?", true).
		Preload("MenuItems.ModifierGroups").
		Preload("MenuItems.ModifierGroups.Items", "is_available = ?", true).
		Find(&cats).Error
	return cats, err
}

func (r *CatalogRepository) CountMenuItemsInCategory(categoryID uint) (int64, error) {
	var cnt int64
	err := r.DB.Model(&entity.MenuItem{}).Where("category_id = ?", categoryID).Count(&cnt).Error
	return cnt, err
}

func (r *CatalogRepository) CountItemsInModifierGroup(groupID uint) (int64, error) {
	var cnt int64
	err := r.DB.Model(&entity.ModifierItem{}).Where("modifier_group_id = ?", groupID).Count(&cnt).Error
	return cnt, err
}
