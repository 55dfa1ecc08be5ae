package services

import (
	"errors"
	"fmt"

	"github.com/mhusainh/ScanDine-sub000/entity"
	"gorm.io/gorm"
)

// Transition moves an order to newStatus.
//
// The table is deliberately permissive: any non-terminal order may move
// to any other status, including skipping kitchen steps or stepping
// back, so staff can correct mis-clicks. Only terminal orders are
// frozen. The write is a conditional update keyed on the status the
// order had when we read it, so two racing staff actions cannot both
// win.
func (s *OrderService) Transition(orderID uint, newStatus entity.OrderStatus) (*entity.Order, error) {
	if !newStatus.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidTransition, newStatus)
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		o, err := s.Repo.GetOrder(tx, orderID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrOrderNotFound
			}
			return err
		}

		if o.Status.IsTerminal() {
			return fmt.Errorf("%w: order is already %s", ErrInvalidTransition, o.Status)
		}

		affected, err := s.Repo.UpdateStatusGuard(tx, o.ID, o.Status, newStatus)
		if err != nil {
			return err
		}
		if affected == 0 {
			return fmt.Errorf("%w: order moved from %s concurrently", ErrInvalidTransition, o.Status)
		}

		// Terminal transitions may free the table.
		if newStatus.IsTerminal() {
			if err := s.Tables.SyncTable(tx, o.TableID); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	out, err := s.Repo.GetOrderDetail(orderID)
	if err != nil {
		return nil, err
	}
	if s.OnOrderStatusChanged != nil {
		s.OnOrderStatusChanged(out)
	}
	return out, nil
}
