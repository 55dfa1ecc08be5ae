package services

import (
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/mhusainh/ScanDine-sub000/entity"
	"github.com/mhusainh/ScanDine-sub000/repository"
	"gorm.io/gorm"
)

type TableService struct {
	DB   *gorm.DB
	Repo *repository.TableRepository

	// PublicBaseURL is the origin the QR code points customers at.
	PublicBaseURL string
}

func NewTableService(db *gorm.DB, repo *repository.TableRepository, publicBaseURL string) *TableService {
	return &TableService{DB: db, Repo: repo, PublicBaseURL: publicBaseURL}
}

func (s *TableService) Create(number string) (*entity.Table, error) {
	t := &entity.Table{
		Number: number,
		Uuid:   uuid.NewString(),
		Status: entity.TableAvailable,
	}
	if err := s.Repo.Create(t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *TableService) List() ([]entity.Table, error) {
	return s.Repo.List()
}

func (s *TableService) Get(id uint) (*entity.Table, error) {
	t, err := s.Repo.Get(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrTableNotFound
	}
	return t, err
}

func (s *TableService) GetByUuid(token string) (*entity.Table, error) {
	t, err := s.Repo.GetByUuid(token)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrTableNotFound
	}
	return t, err
}

// QRURL is the customer-facing menu URL embedded in the table's QR
// code. Only the opaque token appears, never the numeric id.
func (s *TableService) QRURL(t *entity.Table) string {
	return fmt.Sprintf("%s/t/%s", s.PublicBaseURL, t.Uuid)
}

// SyncTable recomputes the occupancy flag from the table's order set:
// occupied iff at least one order is neither completed nor cancelled.
// Idempotent, safe to re-run after every order creation and every
// terminal transition, including concurrently — the derived value is
// the same whichever invocation writes last, as long as each reads a
// consistent snapshot (hence the caller's tx).
func (s *TableService) SyncTable(tx *gorm.DB, tableID uint) error {
	active, err := s.Repo.CountActiveOrders(tx, tableID)
	if err != nil {
		return err
	}

	status := entity.TableAvailable
	if active > 0 {
		status = entity.TableOccupied
	}

	affected, err := s.Repo.UpdateStatus(tx, tableID, status)
	if err != nil {
		return err
	}
	if affected == 0 {
		// The update matches on id alone, so zero rows means the table
		// row is gone while orders still reference it.
		var cnt int64
		if err := tx.Model(&entity.Table{}).Where("id = ?", tableID).Count(&cnt).Error; err != nil {
			return err
		}
		if cnt == 0 {
			log.Printf("ALERT table sync integrity: table %d missing with %d active orders", tableID, active)
			return fmt.Errorf("%w: table %d", ErrTableIntegrity, tableID)
		}
	}
	return nil
}
