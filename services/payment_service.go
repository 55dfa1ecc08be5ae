package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/mhusainh/ScanDine-sub000/entity"
	"github.com/mhusainh/ScanDine-sub000/pkg/midtrans"
	"github.com/mhusainh/ScanDine-sub000/repository"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// PaymentService reconciles the two confirmation paths — staff cash
// confirmation and gateway webhooks — onto one Payment state machine.
// Both paths use conditional updates keyed on the expected current
// payment status, so a cash confirm and a stale webhook can never both
// finalize the same payment.
type PaymentService struct {
	DB       *gorm.DB
	Orders   *repository.OrderRepository
	Payments *repository.PaymentRepository
	Tables   *TableService

	ServerKey string
}

func NewPaymentService(
	db *gorm.DB,
	orders *repository.OrderRepository,
	payments *repository.PaymentRepository,
	tables *TableService,
	serverKey string,
) *PaymentService {
	return &PaymentService{DB: db, Orders: orders, Payments: payments, Tables: tables, ServerKey: serverKey}
}

type ConfirmCashRes struct {
	Order   *entity.Order   `json:"order"`
	Payment *entity.Payment `json:"payment"`
}

// ConfirmCashPayment settles a cash order: payment goes to settlement
// with paid_at, the order is marked paid and (if still pending)
// confirmed, and the table is re-synced. A second call fails with
// ErrAlreadyConfirmed instead of double-applying.
func (s *PaymentService) ConfirmCashPayment(orderID uint) (*ConfirmCashRes, error) {
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		o, err := s.Orders.GetOrder(tx, orderID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrOrderNotFound
			}
			return err
		}
		if o.PaymentMethod != entity.PayCash {
			return ErrNotCashOrder
		}
		if o.PaymentStatus == entity.OrderPaid {
			return ErrAlreadyConfirmed
		}

		p, err := s.Payments.GetByOrderID(tx, o.ID)
		if err != nil {
			return err
		}

		now := time.Now()
		affected, err := s.Payments.UpdateStatusGuard(tx, p.ID, entity.PaymentPending, entity.PaymentSettlement, &now)
		if err != nil {
			return err
		}
		if affected == 0 {
			// Someone else finalized this payment between our read and
			// write; the second confirmation must not re-date paid_at.
			return ErrAlreadyConfirmed
		}

		if _, err := s.Orders.UpdatePaymentStatusGuard(tx, o.ID, entity.OrderUnpaid, entity.OrderPaid); err != nil {
			return err
		}
		// A confirmed cash payment means the party is dining: move a
		// still-pending order into the kitchen pipeline.
		if _, err := s.Orders.UpdateStatusGuard(tx, o.ID, entity.OrderPending, entity.OrderConfirmed); err != nil {
			return err
		}

		return s.Tables.SyncTable(tx, o.TableID)
	})
	if err != nil {
		return nil, err
	}

	return s.result(orderID)
}

// ApplyGatewayNotification applies one Midtrans HTTP notification.
// Delivery is at-least-once and unordered, so the handler is a no-op
// whenever the notification cannot change anything: same status again,
// or the payment already reached a terminal status. The raw payload is
// stored for audit on every signature-valid delivery, no-ops included.
func (s *PaymentService) ApplyGatewayNotification(raw []byte) (*ConfirmCashRes, error) {
	var n midtrans.Notification
	if err := json.Unmarshal(raw, &n); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}
	if n.OrderID == "" || n.TransactionStatus == "" || n.SignatureKey == "" {
		return nil, fmt.Errorf("%w: missing required fields", ErrMalformedPayload)
	}
	if !midtrans.VerifySignature(&n, s.ServerKey) {
		return nil, ErrInvalidSignature
	}

	target, err := mapTransactionStatus(n.TransactionStatus)
	if err != nil {
		return nil, err
	}

	order, err := s.Orders.GetOrderByNumber(n.OrderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	if order.PaymentMethod != entity.PayOnline {
		return nil, fmt.Errorf("%w: order %s is not an online order", ErrMalformedPayload, order.OrderNumber)
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		p, err := s.Payments.GetByOrderID(tx, order.ID)
		if err != nil {
			return err
		}

		// Audit first, outcome or not.
		if err := s.Payments.SaveRawPayload(tx, p.ID, datatypes.JSON(raw)); err != nil {
			return err
		}

		if p.Status == target || p.Status.IsTerminal() {
			log.Printf("webhook no-op: order %s payment already %s (got %s)", order.OrderNumber, p.Status, n.TransactionStatus)
			return nil
		}

		var paidAt *time.Time
		if target.Settled() {
			t := parseGatewayTime(n.SettlementTime, n.TransactionTime)
			paidAt = &t
		}

		affected, err := s.Payments.ApplyGatewayResult(tx, p.ID, p.Status, target, n.PaymentType, n.TransactionID, n.FraudStatus, paidAt)
		if err != nil {
			return err
		}
		if affected == 0 {
			// A concurrent delivery or cash confirm won the row; treat
			// this delivery as already applied.
			log.Printf("webhook no-op: order %s payment moved concurrently", order.OrderNumber)
			return nil
		}

		if target.Settled() {
			if _, err := s.Orders.UpdatePaymentStatusGuard(tx, order.ID, entity.OrderUnpaid, entity.OrderPaid); err != nil {
				return err
			}
			if _, err := s.Orders.UpdateStatusGuard(tx, order.ID, entity.OrderPending, entity.OrderConfirmed); err != nil {
				return err
			}
		}

		return s.Tables.SyncTable(tx, order.TableID)
	})
	if err != nil {
		return nil, err
	}

	return s.result(order.ID)
}

func (s *PaymentService) result(orderID uint) (*ConfirmCashRes, error) {
	o, err := s.Orders.GetOrderDetail(orderID)
	if err != nil {
		return nil, err
	}
	p, err := s.Payments.GetByOrderID(s.DB, orderID)
	if err != nil {
		return nil, err
	}
	return &ConfirmCashRes{Order: o, Payment: p}, nil
}

// mapTransactionStatus translates the gateway vocabulary onto the
// Payment state machine. Unknown statuses are malformed, not ignored.
func mapTransactionStatus(ts string) (entity.PaymentStatus, error) {
	switch ts {
	case "settlement":
		return entity.PaymentSettlement, nil
	case "capture":
		return entity.PaymentCapture, nil
	case "pending":
		return entity.PaymentPending, nil
	case "expire":
		return entity.PaymentExpire, nil
	case "cancel":
		return entity.PaymentCancel, nil
	case "deny":
		return entity.PaymentDeny, nil
	case "refund":
		return entity.PaymentRefund, nil
	case "failure":
		return entity.PaymentFailed, nil
	default:
		return "", fmt.Errorf("%w: unknown transaction_status %q", ErrMalformedPayload, ts)
	}
}

func parseGatewayTime(values ...string) time.Time {
	for _, v := range values {
		if v == "" {
			continue
		}
		if t, err := time.ParseInLocation("2006-01-02 15:04:05", v, time.Local); err == nil {
			return t
		}
	}
	return time.Now()
}
