package repository

import (
	"github.com/mhusainh/ScanDine-sub000/entity"
	"gorm.io/gorm"
)

type TableRepository struct {
	DB *gorm.DB
}

func NewTableRepository(db *gorm.DB) *TableRepository {
	return &TableRepository{DB: db}
}

func (r *TableRepository) Create(t *entity.Table) error {
	return r.DB.Create(t).Error
}

func (r *TableRepository) Get(id uint) (*entity.Table, error) {
	var t entity.Table
	if err := r.DB.First(&t, id).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

// GetByUuid resolves the public QR token. This is the only lookup the
// customer-facing endpoints are allowed to use.
func (r *TableRepository) GetByUuid(uuid string) (*entity.Table, error) {
	var t entity.Table
	if err := r.DB.Where("uuid = ?", uuid).First(&t).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *TableRepository) List() ([]entity.Table, error) {
	var tables []entity.Table
	err := r.DB.Order("number ASC").Find(&tables).Error
	return tables, err
}

// CountActiveOrders counts orders on the table that are neither
// completed nor cancelled.
func (r *TableRepository) CountActiveOrders(tx *gorm.DB, tableID uint) (int64, error) {
	var cnt int64
	err := tx.Model(&entity.Order{}).
		Where("table_id = ? AND status NOT IN ?", tableID,
			[]entity.OrderStatus{entity.OrderCompleted, entity.OrderCancelled}).
		Count(&cnt).Error
	return cnt, err
}

func (r *TableRepository) UpdateStatus(tx *gorm.DB, tableID uint, status entity.TableStatus) (int64, error) {
	res := tx.Model(&entity.Table{}).
		Where("id = ?", tableID).
		Update("status", status)
	return res.RowsAffected, res.Error
}
