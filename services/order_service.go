package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/mhusainh/ScanDine-sub000/entity"
	"github.com/mhusainh/ScanDine-sub000/pkg/midtrans"
	"github.com/mhusainh/ScanDine-sub000/repository"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type OrderService struct {
	DB       *gorm.DB
	Repo     *repository.OrderRepository
	Catalog  *repository.CatalogRepository
	Payments *repository.PaymentRepository
	Tables   *TableService
	Snap     *midtrans.SnapClient

	TaxRate decimal.Decimal

	// OnOrderCreated and OnOrderStatusChanged, when set, feed the
	// kitchen display. Both run outside the transaction, after commit.
	OnOrderCreated       func(*entity.Order)
	OnOrderStatusChanged func(*entity.Order)
}

func NewOrderService(
	db *gorm.DB,
	repo *repository.OrderRepository,
	catalog *repository.CatalogRepository,
	payments *repository.PaymentRepository,
	tables *TableService,
	snap *midtrans.SnapClient,
	taxRate decimal.Decimal,
) *OrderService {
	return &OrderService{
		DB: db, Repo: repo, Catalog: catalog, Payments: payments,
		Tables: tables, Snap: snap, TaxRate: taxRate,
	}
}

// ----- DTOs from Controller -----

type PlaceOrderReq struct {
	TableUuid     string               `json:"tableUuid" binding:"required"`
	CustomerName  string               `json:"customerName"`
	PaymentMethod entity.PaymentMethod `json:"paymentMethod" binding:"required,oneof=cash online"`
	Notes         string               `json:"notes"`
	Items         []CartLine           `json:"items" binding:"required,min=1,dive"`
}

type PlaceOrderRes struct {
	ID            uint                      `json:"id"`
	OrderNumber   string                    `json:"orderNumber"`
	TotalAmount   decimal.Decimal           `json:"totalAmount"`
	Status        entity.OrderStatus        `json:"status"`
	PaymentStatus entity.OrderPaymentStatus `json:"paymentStatus"`
	SnapToken     string                    `json:"snapToken,omitempty"`
}

// ----- Checkout -----

// PlaceOrder runs the whole checkout: table lookup, modifier-rule
// validation, pricing, and the atomic persist of order + items +
// selections + payment with a serialized order number. Any failure
// rolls the lot back; no partial order is ever observable.
func (s *OrderService) PlaceOrder(req *PlaceOrderReq) (*PlaceOrderRes, error) {
	table, err := s.Tables.GetByUuid(req.TableUuid)
	if err != nil {
		return nil, err
	}
	// Tables take new orders regardless of current occupancy; a party
	// ordering a second round is normal.

	// The binding tag already rejects unknown methods on the HTTP path;
	// this guards direct service callers.
	if !req.PaymentMethod.Valid() {
		return nil, fmt.Errorf("%w: got %q", ErrInvalidPaymentMethod, req.PaymentMethod)
	}

	for _, line := range req.Items {
		if err := s.validateModifierSelection(&line); err != nil {
			return nil, err
		}
	}

	cart, err := PriceCart(s.Catalog, s.TaxRate, req.Items)
	if err != nil {
		return nil, err
	}

	customerName := req.CustomerName
	if customerName == "" {
		customerName = "Guest"
	}

	var out PlaceOrderRes
	var created entity.Order
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		number, err := s.Repo.NextOrderNumber(tx, time.Now())
		if err != nil {
			return err
		}

		order := entity.Order{
			OrderNumber:   number,
			TableID:       table.ID,
			CustomerName:  customerName,
			Status:        entity.OrderPending,
			PaymentStatus: entity.OrderUnpaid,
			PaymentMethod: req.PaymentMethod,
			TotalAmount:   cart.Total,
			Notes:         req.Notes,
		}
		if err := s.Repo.CreateOrder(tx, &order); err != nil {
			return err
		}

		for _, line := range cart.Lines {
			oi := entity.OrderItem{
				OrderID:      order.ID,
				MenuItemID:   line.MenuItemID,
				MenuItemName: line.Name,
				UnitPrice:    line.UnitPrice,
				Quantity:     line.Quantity,
				Subtotal:     line.Subtotal,
				Note:         line.Note,
			}
			if err := s.Repo.CreateOrderItem(tx, &oi); err != nil {
				return err
			}
			for _, mod := range line.Modifiers {
				om := entity.OrderItemModifier{
					OrderItemID:    oi.ID,
					ModifierItemID: mod.ModifierItemID,
					ModifierName:   mod.Name,
					UnitPrice:      mod.UnitPrice,
					Quantity:       1,
				}
				if err := s.Repo.CreateOrderItemModifier(tx, &om); err != nil {
					return err
				}
			}
		}

		payment := entity.Payment{
			OrderID: order.ID,
			Amount:  cart.Total,
			Method:  req.PaymentMethod,
			Status:  entity.PaymentPending,
		}
		if err := s.Repo.CreatePayment(tx, &payment); err != nil {
			return err
		}

		// The snap call sits inside the transaction on purpose: a
		// gateway failure must abort the whole checkout rather than
		// leave an online order nobody can pay for.
		var snapToken string
		if req.PaymentMethod == entity.PayOnline {
			if s.Snap == nil {
				return ErrGatewayFailure
			}
			snapToken, err = s.Snap.CreateTransaction(order.OrderNumber, cart.Total, customerName)
			if err != nil {
				return fmt.Errorf("%w: %v", ErrGatewayFailure, err)
			}
			if err := s.Payments.SetSnapToken(tx, payment.ID, snapToken); err != nil {
				return err
			}
		}

		if err := s.Tables.SyncTable(tx, table.ID); err != nil {
			return err
		}

		created = order
		out = PlaceOrderRes{
			ID:            order.ID,
			OrderNumber:   order.OrderNumber,
			TotalAmount:   order.TotalAmount,
			Status:        order.Status,
			PaymentStatus: order.PaymentStatus,
			SnapToken:     snapToken,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.OnOrderCreated != nil {
		// Kitchen displays need the line items, so broadcast the
		// preloaded order, not the bare row from the transaction.
		detail, err := s.Repo.GetOrderDetail(created.ID)
		if err != nil {
			log.Printf("order %s created but detail load for broadcast failed: %v", created.OrderNumber, err)
		} else {
			s.OnOrderCreated(detail)
		}
	}
	return &out, nil
}

// validateModifierSelection checks one cart line against the modifier
// groups attached to its menu item: required single-choice groups need
// exactly one pick, required multi-choice groups need min..max picks,
// optional groups only bound the upper end. Selections pointing at a
// group the item does not carry are rejected too.
func (s *OrderService) validateModifierSelection(line *CartLine) error {
	if line.Quantity < 1 {
		return ErrInvalidQuantity
	}

	groups, err := s.Catalog.GetModifierGroupsForMenuItem(line.MenuItemID)
	if err != nil {
		return err
	}

	groupByItem := make(map[uint]uint) // modifier item id -> group id
	for _, g := range groups {
		for _, it := range g.Items {
			groupByItem[it.ID] = g.ID
		}
	}

	counts := make(map[uint]int)
	for _, modID := range line.ModifierItemIDs {
		gid, ok := groupByItem[modID]
		if !ok {
			// Either the modifier does not exist or it belongs to a
			// group this item does not carry; the pricing pass will
			// produce the precise unavailable error for the former.
			mod, err := s.Catalog.GetModifierItem(modID)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("%w: modifier %d", ErrModifierUnavailable, modID)
				}
				return err
			}
			return fmt.Errorf("%w: modifier %q not offered for this item", ErrModifierSelectionInvalid, mod.Name)
		}
		counts[gid]++
	}

	for _, g := range groups {
		n := counts[g.ID]
		switch {
		case g.IsRequired && !g.IsMultiple:
			if n != 1 {
				return fmt.Errorf("%w: group %q requires exactly one selection", ErrModifierSelectionInvalid, g.Name)
			}
		case g.IsRequired && g.IsMultiple:
			if n < g.MinSelection || n > g.MaxSelection {
				return fmt.Errorf("%w: group %q requires between %d and %d selections", ErrModifierSelectionInvalid, g.Name, g.MinSelection, g.MaxSelection)
			}
		case !g.IsRequired && !g.IsMultiple:
			if n > 1 {
				return fmt.Errorf("%w: group %q allows at most one selection", ErrModifierSelectionInvalid, g.Name)
			}
		default:
			if n > g.MaxSelection {
				return fmt.Errorf("%w: group %q allows at most %d selections", ErrModifierSelectionInvalid, g.Name, g.MaxSelection)
			}
		}
	}
	return nil
}

// ----- Queries -----

func (s *OrderService) Detail(orderID uint) (*entity.Order, error) {
	o, err := s.Repo.GetOrderDetail(orderID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrOrderNotFound
	}
	return o, err
}

type OrderListOut struct {
	Items []repository.OrderSummary `json:"items"`
	Total int64                     `json:"total"`
	Page  int                       `json:"page"`
	Limit int                       `json:"limit"`
}

func (s *OrderService) List(status *entity.OrderStatus, page, limit int) (*OrderListOut, error) {
	items, total, err := s.Repo.ListOrders(status, page, limit)
	if err != nil {
		return nil, err
	}
	return &OrderListOut{Items: items, Total: total, Page: page, Limit: limit}, nil
}

func (s *OrderService) ActiveOrders() ([]entity.Order, error) {
	return s.Repo.ListActiveOrders()
}
