package services

import (
	"errors"
	"fmt"

	"github.com/mhusainh/ScanDine-sub000/entity"
	"github.com/mhusainh/ScanDine-sub000/repository"
	"gorm.io/gorm"
)

var (
	ErrCategoryInUse      = errors.New("category still has menu items")
	ErrModifierGroupInUse = errors.New("modifier group still has items")
	ErrNotFound           = errors.New("not found")
)

// CatalogService owns catalog writes. The order path never calls this;
// it reads through CatalogRepository so checkout always sees the
// current price and availability.
type CatalogService struct {
	DB   *gorm.DB
	Repo *repository.CatalogRepository
}

func NewCatalogService(db *gorm.DB, repo *repository.CatalogRepository) *CatalogService {
	return &CatalogService{DB: db, Repo: repo}
}

// ----- Categories -----

func (s *CatalogService) CreateCategory(c *entity.Category) error {
	return s.DB.Create(c).Error
}

func (s *CatalogService) UpdateCategory(id uint, updates map[string]any) (*entity.Category, error) {
	var c entity.Category
	if err := s.DB.First(&c, id).Error; err != nil {
		return nil, wrapNotFound(err)
	}
	if err := s.DB.Model(&c).Updates(updates).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *CatalogService) DeleteCategory(id uint) error {
	cnt, err := s.Repo.CountMenuItemsInCategory(id)
	if err != nil {
		return err
	}
	if cnt > 0 {
		return fmt.Errorf("%w: %d items", ErrCategoryInUse, cnt)
	}
	res := s.DB.Delete(&entity.Category{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ----- Menu items -----

func (s *CatalogService) CreateMenuItem(m *entity.MenuItem) error {
	var cnt int64
	if err := s.DB.Model(&entity.Category{}).Where("id = ?", m.CategoryID).Count(&cnt).Error; err != nil {
		return err
	}
	if cnt == 0 {
		return fmt.Errorf("%w: category %d", ErrNotFound, m.CategoryID)
	}
	return s.DB.Create(m).Error
}

func (s *CatalogService) UpdateMenuItem(id uint, updates map[string]any) (*entity.MenuItem, error) {
	var m entity.MenuItem
	if err := s.DB.First(&m, id).Error; err != nil {
		return nil, wrapNotFound(err)
	}
	if err := s.DB.Model(&m).Updates(updates).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

// DeleteMenuItem soft-deletes; past order lines keep their snapshots
// so nothing breaks downstream.
func (s *CatalogService) DeleteMenuItem(id uint) error {
	res := s.DB.Delete(&entity.MenuItem{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ----- Modifier groups / items -----

func (s *CatalogService) CreateModifierGroup(g *entity.ModifierGroup) error {
	if g.IsMultiple && g.MaxSelection < g.MinSelection {
		return fmt.Errorf("%w: max_selection below min_selection", ErrModifierSelectionInvalid)
	}
	return s.DB.Create(g).Error
}

func (s *CatalogService) UpdateModifierGroup(id uint, updates map[string]any) (*entity.ModifierGroup, error) {
	var g entity.ModifierGroup
	if err := s.DB.First(&g, id).Error; err != nil {
		return nil, wrapNotFound(err)
	}
	if err := s.DB.Model(&g).Updates(updates).Error; err != nil {
		return nil, err
	}
	return &g, nil
}

func (s *CatalogService) DeleteModifierGroup(id uint) error {
	cnt, err := s.Repo.CountItemsInModifierGroup(id)
	if err != nil {
		return err
	}
	if cnt > 0 {
		return fmt.Errorf("%w: %d items", ErrModifierGroupInUse, cnt)
	}
	res := s.DB.Delete(&entity.ModifierGroup{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *CatalogService) CreateModifierItem(mi *entity.ModifierItem) error {
	var cnt int64
	if err := s.DB.Model(&entity.ModifierGroup{}).Where("id = ?", mi.ModifierGroupID).Count(&cnt).Error; err != nil {
		return err
	}
	if cnt == 0 {
		return fmt.Errorf("%w: modifier group %d", ErrNotFound, mi.ModifierGroupID)
	}
	return s.DB.Create(mi).Error
}

func (s *CatalogService) UpdateModifierItem(id uint, updates map[string]any) (*entity.ModifierItem, error) {
	var mi entity.ModifierItem
	if err := s.DB.First(&mi, id).Error; err != nil {
		return nil, wrapNotFound(err)
	}
	if err := s.DB.Model(&mi).Updates(updates).Error; err != nil {
		return nil, err
	}
	return &mi, nil
}

func (s *CatalogService) DeleteModifierItem(id uint) error {
	res := s.DB.Delete(&entity.ModifierItem{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// AttachModifierGroup links a group to a menu item with a display
// position.
func (s *CatalogService) AttachModifierGroup(menuItemID, groupID uint, sortOrder int) error {
	var m entity.MenuItem
	if err := s.DB.First(&m, menuItemID).Error; err != nil {
		return wrapNotFound(err)
	}
	var g entity.ModifierGroup
	if err := s.DB.First(&g, groupID).Error; err != nil {
		return wrapNotFound(err)
	}
	link := entity.MenuItemModifierGroup{
		MenuItemID:      menuItemID,
		ModifierGroupID: groupID,
		SortOrder:       sortOrder,
	}
	return s.DB.Save(&link).Error
}

func (s *CatalogService) DetachModifierGroup(menuItemID, groupID uint) error {
	return s.DB.
		Where("menu_item_id = ? AND modifier_group_id = ?", menuItemID, groupID).
		Delete(&entity.MenuItemModifierGroup{}).Error
}

func (s *CatalogService) ListMenu() ([]entity.Category, error) {
	return s.Repo.ListMenu()
}

func wrapNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
