package controllers

import (
	"errors"
	"strconv"

	"github.com/mhusainh/ScanDine-sub000/entity"
	"github.com/mhusainh/ScanDine-sub000/pkg/resp"
	"github.com/mhusainh/ScanDine-sub000/services"

	"github.com/gin-gonic/gin"
)

type OrderController struct {
	Orders   *services.OrderService
	Payments *services.PaymentService
}

func NewOrderController(orders *services.OrderService, payments *services.PaymentService) *OrderController {
	return &OrderController{Orders: orders, Payments: payments}
}

// POST /orders — customer checkout from the table QR page.
func (oc *OrderController) Create(c *gin.Context) {
	var req services.PlaceOrderReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	out, err := oc.Orders.PlaceOrder(&req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrTableNotFound):
			resp.NotFound(c, err.Error())
		case errors.Is(err, services.ErrItemUnavailable),
			errors.Is(err, services.ErrModifierUnavailable),
			errors.Is(err, services.ErrModifierSelectionInvalid),
			errors.Is(err, services.ErrEmptyCart),
			errors.Is(err, services.ErrInvalidQuantity),
			errors.Is(err, services.ErrInvalidPaymentMethod):
			resp.BadRequest(c, err.Error())
		case errors.Is(err, services.ErrGatewayFailure):
			resp.ServerError(c, err)
		default:
			resp.ServerError(c, err)
		}
		return
	}
	resp.Created(c, out)
}

// GET /orders/:id — customers poll this from the order page.
func (oc *OrderController) Detail(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		resp.BadRequest(c, "invalid order id")
		return
	}

	o, err := oc.Orders.Detail(uint(id))
	if err != nil {
		if errors.Is(err, services.ErrOrderNotFound) {
			resp.NotFound(c, "order not found")
			return
		}
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, o)
}

// GET /orders?status=&page=&limit= — staff list.
func (oc *OrderController) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	var status *entity.OrderStatus
	if s := c.Query("status"); s != "" {
		st := entity.OrderStatus(s)
		if !st.Valid() {
			resp.BadRequest(c, "unknown status filter")
			return
		}
		status = &st
	}

	out, err := oc.Orders.List(status, page, limit)
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, out)
}

// GET /kitchen/orders — everything not yet terminal, oldest first.
func (oc *OrderController) Active(c *gin.Context) {
	orders, err := oc.Orders.ActiveOrders()
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, gin.H{"items": orders})
}

// PATCH /orders/:id/status
func (oc *OrderController) UpdateStatus(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		resp.BadRequest(c, "invalid order id")
		return
	}

	var body struct {
		Status entity.OrderStatus `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	o, err := oc.Orders.Transition(uint(id), body.Status)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrOrderNotFound):
			resp.NotFound(c, "order not found")
		case errors.Is(err, services.ErrInvalidTransition):
			resp.Unprocessable(c, err.Error())
		default:
			resp.ServerError(c, err)
		}
		return
	}
	resp.OK(c, gin.H{"order": o})
}

// POST /orders/:id/confirm-payment — staff confirms cash received.
func (oc *OrderController) ConfirmPayment(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		resp.BadRequest(c, "invalid order id")
		return
	}

	out, err := oc.Payments.ConfirmCashPayment(uint(id))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrOrderNotFound):
			resp.NotFound(c, "order not found")
		case errors.Is(err, services.ErrNotCashOrder):
			resp.BadRequest(c, err.Error())
		case errors.Is(err, services.ErrAlreadyConfirmed):
			resp.Conflict(c, err.Error())
		default:
			resp.ServerError(c, err)
		}
		return
	}
	resp.OK(c, out)
}
