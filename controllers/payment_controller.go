package controllers

import (
	"errors"
	"io"
	"log"
	"net/http"

	"github.com/mhusainh/ScanDine-sub000/pkg/resp"
	"github.com/mhusainh/ScanDine-sub000/services"

	"github.com/gin-gonic/gin"
)

type PaymentController struct {
	Payments *services.PaymentService
}

func NewPaymentController(payments *services.PaymentService) *PaymentController {
	return &PaymentController{Payments: payments}
}

// POST /payments/webhook — Midtrans HTTP notification.
//
// The gateway retries anything that is not a 2xx, so an applied-or-
// already-applied notification must answer 200. Only malformed
// payloads (400) and bad signatures (403) are rejected; the gateway
// owns its own retry policy for those.
func (pc *PaymentController) Webhook(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		resp.BadRequest(c, "cannot read body")
		return
	}

	out, err := pc.Payments.ApplyGatewayNotification(body)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidSignature):
			log.Printf("webhook rejected: %v", err)
			resp.Forbidden(c, "invalid signature")
		case errors.Is(err, services.ErrMalformedPayload):
			log.Printf("webhook rejected: %v", err)
			resp.BadRequest(c, err.Error())
		case errors.Is(err, services.ErrOrderNotFound):
			log.Printf("webhook for unknown order: %v", err)
			resp.NotFound(c, "order not found")
		default:
			resp.ServerError(c, err)
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "paymentStatus": out.Payment.Status})
}
