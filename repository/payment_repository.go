package repository

import (
	"time"

	"github.com/mhusainh/ScanDine-sub000/entity"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type PaymentRepository struct {
	DB *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) *PaymentRepository {
	return &PaymentRepository{DB: db}
}

func (r *PaymentRepository) GetByOrderID(tx *gorm.DB, orderID uint) (*entity.Payment, error) {
	var p entity.Payment
	if err := tx.Where("order_id = ?", orderID).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// UpdateStatusGuard moves the payment out of an expected current status.
// RowsAffected == 0 means another path (cash confirm vs. a racing
// webhook) already moved it.
func (r *PaymentRepository) UpdateStatusGuard(tx *gorm.DB, paymentID uint, from, to entity.PaymentStatus, paidAt *time.Time) (int64, error) {
	updates := map[string]any{"status": to}
	if paidAt != nil {
		updates["paid_at"] = paidAt
	}
	res := tx.Model(&entity.Payment{}).
		Where("id = ? AND status = ?", paymentID, from).
		Updates(updates)
	return res.RowsAffected, res.Error
}

// ApplyGatewayResult is the webhook variant of the guard: alongside the
// status it records the gateway sub-method, transaction reference and
// fraud flag.
func (r *PaymentRepository) ApplyGatewayResult(tx *gorm.DB, paymentID uint, from, to entity.PaymentStatus, paymentType, transactionID, fraudStatus string, paidAt *time.Time) (int64, error) {
	updates := map[string]any{
		"status":         to,
		"payment_type":   paymentType,
		"transaction_id": transactionID,
		"fraud_status":   fraudStatus,
	}
	if paidAt != nil {
		updates["paid_at"] = paidAt
	}
	res := tx.Model(&entity.Payment{}).
		Where("id = ? AND status = ?", paymentID, from).
		Updates(updates)
	return res.RowsAffected, res.Error
}

// SaveRawPayload stores the notification verbatim. Runs regardless of
// whether the notification changed anything.
func (r *PaymentRepository) SaveRawPayload(tx *gorm.DB, paymentID uint, raw datatypes.JSON) error {
	return tx.Model(&entity.Payment{}).
		Where("id = ?", paymentID).
		Update("raw_response", raw).Error
}

func (r *PaymentRepository) SetSnapToken(tx *gorm.DB, paymentID uint, token string) error {
	return tx.Model(&entity.Payment{}).
		Where("id = ?", paymentID).
		Update("snap_token", token).Error
}
