package midtrans

import (
	"crypto/sha512"
	"crypto/subtle"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/shopspring/decimal"
)

// SnapClient creates Snap transactions so the frontend can open the
// hosted payment page with the returned token.
type SnapClient struct {
	BaseURL   string
	ServerKey string
	http      *resty.Client
}

func NewSnapClient(baseURL, serverKey string) *SnapClient {
	return &SnapClient{
		BaseURL:   baseURL,
		ServerKey: serverKey,
		http:      resty.New().SetTimeout(30 * time.Second),
	}
}

// CreateTransaction registers the order with Snap and returns the
// token. orderID must be the order number; the webhook echoes it back
// as order_id.
func (c *SnapClient) CreateTransaction(orderID string, grossAmount decimal.Decimal, customerName string) (string, error) {
	body := map[string]any{
		"transaction_details": map[string]any{
			"order_id":     orderID,
			"gross_amount": grossAmount.InexactFloat64(),
		},
		"customer_details": map[string]any{
			"first_name": customerName,
		},
	}

	resp, err := c.http.R().
		SetBasicAuth(c.ServerKey, "").
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json").
		SetBody(body).
		Post(c.BaseURL + "/snap/v1/transactions")
	if err != nil {
		return "", err
	}
	if resp.StatusCode() != 201 && resp.StatusCode() != 200 {
		return "", fmt.Errorf("snap transaction failed with status %d: %s", resp.StatusCode(), string(resp.Body()))
	}

	var out struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(resp.Body(), &out); err != nil {
		return "", fmt.Errorf("failed to parse snap response: %w", err)
	}
	if out.Token == "" {
		return "", fmt.Errorf("token not found in snap response: %s", string(resp.Body()))
	}
	return out.Token, nil
}

// Notification is the HTTP notification Midtrans POSTs to the webhook.
// Field names follow the gateway's wire format.
type Notification struct {
	OrderID           string `json:"order_id"`
	StatusCode        string `json:"status_code"`
	GrossAmount       string `json:"gross_amount"`
	SignatureKey      string `json:"signature_key"`
	TransactionID     string `json:"transaction_id"`
	TransactionStatus string `json:"transaction_status"`
	TransactionTime   string `json:"transaction_time"`
	SettlementTime    string `json:"settlement_time"`
	PaymentType       string `json:"payment_type"`
	FraudStatus       string `json:"fraud_status"`
}

// Signature computes the notification signature:
// sha512(order_id + status_code + gross_amount + server key).
func Signature(orderID, statusCode, grossAmount, serverKey string) string {
	sum := sha512.Sum512([]byte(orderID + statusCode + grossAmount + serverKey))
	return hex.EncodeToString(sum[:])
}

// VerifySignature checks a notification against the server key in
// constant time.
func VerifySignature(n *Notification, serverKey string) bool {
	want := Signature(n.OrderID, n.StatusCode, n.GrossAmount, serverKey)
	return subtle.ConstantTimeCompare([]byte(want), []byte(n.SignatureKey)) == 1
}
