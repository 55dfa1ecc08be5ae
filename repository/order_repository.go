package repository

import (
	"fmt"
	"time"

	"github.com/mhusainh/ScanDine-sub000/entity"
	"gorm.io/gorm"
)

type OrderRepository struct {
	DB *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{DB: db}
}

// ---------------- Orders ----------------

func (r *OrderRepository) CreateOrder(tx *gorm.DB, o *entity.Order) error {
	return tx.Create(o).Error
}

// GetOrder reads through tx so callers inside a transaction see their
// own snapshot; pass r.DB outside one.
func (r *OrderRepository) GetOrder(tx *gorm.DB, orderID uint) (*entity.Order, error) {
	var o entity.Order
	if err := tx.First(&o, orderID).Error; err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *OrderRepository) GetOrderByNumber(number string) (*entity.Order, error) {
	var o entity.Order
	if err := r.DB.Where("order_number = ?", number).First(&o).Error; err != nil {
		return nil, err
	}
	return &o, nil
}

// GetOrderDetail loads the order with its lines, selections and payment.
func (r *OrderRepository) GetOrderDetail(orderID uint) (*entity.Order, error) {
	var o entity.Order
	err := r.DB.
		Preload("Items").
		Preload("Items.Modifiers").
		Preload("Payment").
		Preload("Table").
		First(&o, orderID).Error
	if err != nil {
		return nil, err
	}
	return &o, nil
}

type OrderSummary struct {
	ID            uint                      `json:"id"`
	OrderNumber   string                    `json:"orderNumber"`
	TableID       uint                      `json:"tableId"`
	CustomerName  string                    `json:"customerName"`
	Status        entity.OrderStatus        `json:"status"`
	PaymentStatus entity.OrderPaymentStatus `json:"paymentStatus"`
	TotalAmount   string                    `json:"totalAmount"`
	CreatedAt     time.Time                 `json:"createdAt"`
}

func (r *OrderRepository) ListOrders(status *entity.OrderStatus, page, limit int) ([]OrderSummary, int64, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 || limit > 200 {
		limit = 20
	}
	offset := (page - 1) * limit

	q := r.DB.Model(&entity.Order{})
	if status != nil && *status != "" {
		q = q.Where("status = ?", *status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var out []OrderSummary
	err := q.
		Select("id, order_number, table_id, customer_name, status, payment_status, total_amount, created_at").
		Order("id DESC").Limit(limit).Offset(offset).
		Scan(&out).Error
	return out, total, err
}

// ListActiveOrders feeds the kitchen board: everything not yet terminal,
// oldest first.
func (r *OrderRepository) ListActiveOrders() ([]entity.Order, error) {
	var orders []entity.Order
	err := r.DB.
		Where("status NOT IN ?", []entity.OrderStatus{entity.OrderCompleted, entity.OrderCancelled}).
		Preload("Items").
		Preload("Items.Modifiers").
		Preload("Table").
		Order("id ASC").
		Find(&orders).Error
	return orders, err
}

// UpdateStatusGuard applies a conditional status change keyed on the
// expected prior status. RowsAffected == 0 means the order moved under
// us (or never existed) and the caller must treat it as a conflict.
func (r *OrderRepository) UpdateStatusGuard(tx *gorm.DB, orderID uint, from, to entity.OrderStatus) (int64, error) {
	updates := map[string]any{"status": to}
	if to == entity.OrderCompleted {
		now := time.Now()
		updates["completed_at"] = &now
	}
	res := tx.Model(&entity.Order{}).
		Where("id = ? AND status = ?", orderID, from).
		Updates(updates)
	return res.RowsAffected, res.Error
}

// UpdatePaymentStatusGuard flips the coarse unpaid/paid flag only when
// the current value matches.
func (r *OrderRepository) UpdatePaymentStatusGuard(tx *gorm.DB, orderID uint, from, to entity.OrderPaymentStatus) (int64, error) {
	res := tx.Model(&entity.Order{}).
		Where("id = ? AND payment_status = ?", orderID, from).
		Update("payment_status", to)
	return res.RowsAffected, res.Error
}

// ---------------- Order items ----------------

func (r *OrderRepository) CreateOrderItem(tx *gorm.DB, oi *entity.OrderItem) error {
	return tx.Create(oi).Error
}

func (r *OrderRepository) CreateOrderItemModifier(tx *gorm.DB, om *entity.OrderItemModifier) error {
	return tx.Create(om).Error
}

// ---------------- Payments ----------------

func (r *OrderRepository) CreatePayment(tx *gorm.DB, p *entity.Payment) error {
	return tx.Create(p).Error
}

// ---------------- Order number ----------------

// NextOrderNumber hands out ORD-YYYYMMDD-NNN. The per-day counter row
// is upsert-incremented inside the caller's transaction, so two
// concurrent checkouts serialize on the row and can never share a
// sequence number.
func (r *OrderRepository) NextOrderNumber(tx *gorm.DB, at time.Time) (string, error) {
	day := at.Format("20060102")

	err := tx.Exec(
		"INSERT INTO order_counters (day, last_seq) VALUES (?, 1) "+
			"ON CONFLICT(day) DO UPDATE SET last_seq = last_seq + 1",
		day,
	).Error
	if err != nil {
		return "", err
	}

	var counter entity.OrderCounter
	if err := tx.Where("day = ?", day).First(&counter).Error; err != nil {
		return "", err
	}
	return fmt.Sprintf("ORD-%s-%03d", day, counter.LastSeq), nil
}
