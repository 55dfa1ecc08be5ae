package services

import (
	"encoding/json"
	"testing"

	"github.com/mhusainh/ScanDine-sub000/entity"
	"github.com/mhusainh/ScanDine-sub000/pkg/midtrans"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func onlineFixture(t *testing.T) *fixture {
	t.Helper()
	srv := newSnapTestServer(t)
	return newFixture(t, midtrans.NewSnapClient(srv.URL, testServerKey))
}

func (f *fixture) placeOnlineOrder(t *testing.T) *PlaceOrderRes {
	t.Helper()
	res, err := f.orders.PlaceOrder(&PlaceOrderReq{
		TableUuid:     f.table.Uuid,
		CustomerName:  "Budi",
		PaymentMethod: entity.PayOnline,
		Items: []CartLine{
			{MenuItemID: f.latte.ID, Quantity: 2, ModifierItemIDs: []uint{f.sizeLarge.ID}},
		},
	})
	require.NoError(t, err)
	return res
}

// notifJSON builds a signature-valid gateway notification body.
func notifJSON(t *testing.T, orderNumber, txStatus string) []byte {
	t.Helper()
	n := map[string]string{
		"order_id":           orderNumber,
		"status_code":        "200",
		"gross_amount":       "56000.00",
		"transaction_id":     "mt-" + orderNumber,
		"transaction_status": txStatus,
		"transaction_time":   "2026-08-30 12:00:00",
		"settlement_time":    "2026-08-30 12:01:00",
		"payment_type":       "qris",
		"fraud_status":       "accept",
	}
	n["signature_key"] = midtrans.Signature(n["order_id"], n["status_code"], n["gross_amount"], testServerKey)
	raw, err := json.Marshal(n)
	require.NoError(t, err)
	return raw
}

// ----- cash path -----

func TestConfirmCashPayment(t *testing.T) {
	f := newFixture(t, nil)
	res := f.placeCashOrder(t)

	out, err := f.payments.ConfirmCashPayment(res.ID)
	require.NoError(t, err)

	assert.Equal(t, entity.OrderPaid, out.Order.PaymentStatus)
	assert.Equal(t, entity.OrderConfirmed, out.Order.Status)
	assert.Equal(t, entity.PaymentSettlement, out.Payment.Status)
	require.NotNil(t, out.Payment.PaidAt)
	assert.Equal(t, entity.TableOccupied, f.tableStatus(t))
}

func TestConfirmCashPaymentTwice(t *testing.T) {
	f := newFixture(t, nil)
	res := f.placeCashOrder(t)

	out, err := f.payments.ConfirmCashPayment(res.ID)
	require.NoError(t, err)
	firstPaidAt := *out.Payment.PaidAt

	_, err = f.payments.ConfirmCashPayment(res.ID)
	assert.ErrorIs(t, err, ErrAlreadyConfirmed)

	p := f.payment(t, res.ID)
	require.NotNil(t, p.PaidAt)
	assert.True(t, p.PaidAt.Equal(firstPaidAt), "paid_at must not be re-dated")
}

func TestConfirmCashKeepsKitchenStatus(t *testing.T) {
	f := newFixture(t, nil)
	res := f.placeCashOrder(t)

	// Kitchen already started before the cashier caught up.
	_, err := f.orders.Transition(res.ID, entity.OrderPreparing)
	require.NoError(t, err)

	out, err := f.payments.ConfirmCashPayment(res.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderPaid, out.Order.PaymentStatus)
	assert.Equal(t, entity.OrderPreparing, out.Order.Status)
}

func TestConfirmCashOnOnlineOrder(t *testing.T) {
	f := onlineFixture(t)
	res := f.placeOnlineOrder(t)

	_, err := f.payments.ConfirmCashPayment(res.ID)
	assert.ErrorIs(t, err, ErrNotCashOrder)
}

func TestConfirmCashUnknownOrder(t *testing.T) {
	f := newFixture(t, nil)
	_, err := f.payments.ConfirmCashPayment(4242)
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

// ----- webhook path -----

func TestWebhookSettlement(t *testing.T) {
	f := onlineFixture(t)
	res := f.placeOnlineOrder(t)
	assert.Equal(t, "snap-test-token", res.SnapToken)

	out, err := f.payments.ApplyGatewayNotification(notifJSON(t, res.OrderNumber, "settlement"))
	require.NoError(t, err)

	assert.Equal(t, entity.OrderPaid, out.Order.PaymentStatus)
	assert.Equal(t, entity.OrderConfirmed, out.Order.Status)
	assert.Equal(t, entity.PaymentSettlement, out.Payment.Status)
	assert.Equal(t, "qris", out.Payment.PaymentType)
	assert.Equal(t, "mt-"+res.OrderNumber, out.Payment.TransactionID)
	require.NotNil(t, out.Payment.PaidAt)

	// Raw payload kept verbatim for audit.
	p := f.payment(t, res.ID)
	assert.NotEmpty(t, p.RawResponse)
}

func TestWebhookRedelivery(t *testing.T) {
	f := onlineFixture(t)
	res := f.placeOnlineOrder(t)

	raw := notifJSON(t, res.OrderNumber, "settlement")
	first, err := f.payments.ApplyGatewayNotification(raw)
	require.NoError(t, err)
	firstPaidAt := *first.Payment.PaidAt

	// Same delivery again: accepted, but nothing changes.
	second, err := f.payments.ApplyGatewayNotification(raw)
	require.NoError(t, err)
	assert.Equal(t, entity.PaymentSettlement, second.Payment.Status)
	require.NotNil(t, second.Payment.PaidAt)
	assert.True(t, second.Payment.PaidAt.Equal(firstPaidAt))
}

func TestWebhookTerminalStatusImmutable(t *testing.T) {
	f := onlineFixture(t)
	res := f.placeOnlineOrder(t)

	_, err := f.payments.ApplyGatewayNotification(notifJSON(t, res.OrderNumber, "settlement"))
	require.NoError(t, err)

	// A stale expire delivered after settlement must not move anything.
	out, err := f.payments.ApplyGatewayNotification(notifJSON(t, res.OrderNumber, "expire"))
	require.NoError(t, err)
	assert.Equal(t, entity.PaymentSettlement, out.Payment.Status)
	assert.Equal(t, entity.OrderPaid, out.Order.PaymentStatus)
}

func TestWebhookPendingThenSettlement(t *testing.T) {
	f := onlineFixture(t)
	res := f.placeOnlineOrder(t)

	// pending arrives first; payment is already pending, so no-op.
	out, err := f.payments.ApplyGatewayNotification(notifJSON(t, res.OrderNumber, "pending"))
	require.NoError(t, err)
	assert.Equal(t, entity.PaymentPending, out.Payment.Status)
	assert.Equal(t, entity.OrderUnpaid, out.Order.PaymentStatus)

	out, err = f.payments.ApplyGatewayNotification(notifJSON(t, res.OrderNumber, "settlement"))
	require.NoError(t, err)
	assert.Equal(t, entity.PaymentSettlement, out.Payment.Status)
	assert.Equal(t, entity.OrderPaid, out.Order.PaymentStatus)
}

func TestWebhookExpireLeavesOrderUnpaid(t *testing.T) {
	f := onlineFixture(t)
	res := f.placeOnlineOrder(t)

	out, err := f.payments.ApplyGatewayNotification(notifJSON(t, res.OrderNumber, "expire"))
	require.NoError(t, err)
	assert.Equal(t, entity.PaymentExpire, out.Payment.Status)
	assert.Equal(t, entity.OrderUnpaid, out.Order.PaymentStatus)
	assert.Equal(t, entity.OrderPending, out.Order.Status)
}

func TestWebhookInvalidSignature(t *testing.T) {
	f := onlineFixture(t)
	res := f.placeOnlineOrder(t)

	var n map[string]string
	require.NoError(t, json.Unmarshal(notifJSON(t, res.OrderNumber, "settlement"), &n))
	n["signature_key"] = "deadbeef"
	raw, err := json.Marshal(n)
	require.NoError(t, err)

	_, err = f.payments.ApplyGatewayNotification(raw)
	require.ErrorIs(t, err, ErrInvalidSignature)

	assert.Equal(t, entity.PaymentPending, f.payment(t, res.ID).Status)
}

func TestWebhookMalformedPayload(t *testing.T) {
	f := onlineFixture(t)

	_, err := f.payments.ApplyGatewayNotification([]byte("{not json"))
	assert.ErrorIs(t, err, ErrMalformedPayload)

	_, err = f.payments.ApplyGatewayNotification([]byte(`{"order_id":"ORD-20260830-001"}`))
	assert.ErrorIs(t, err, ErrMalformedPayload)
}

func TestWebhookUnknownTransactionStatus(t *testing.T) {
	f := onlineFixture(t)
	res := f.placeOnlineOrder(t)

	_, err := f.payments.ApplyGatewayNotification(notifJSON(t, res.OrderNumber, "vanished"))
	assert.ErrorIs(t, err, ErrMalformedPayload)
}

func TestWebhookUnknownOrder(t *testing.T) {
	f := onlineFixture(t)
	_, err := f.payments.ApplyGatewayNotification(notifJSON(t, "ORD-20990101-001", "settlement"))
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestWebhookRejectedForCashOrder(t *testing.T) {
	f := onlineFixture(t)
	res := f.placeCashOrder(t)

	_, err := f.payments.ApplyGatewayNotification(notifJSON(t, res.OrderNumber, "settlement"))
	assert.ErrorIs(t, err, ErrMalformedPayload)
}
