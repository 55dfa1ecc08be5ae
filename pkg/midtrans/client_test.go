package midtrans

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignatureRoundTrip(t *testing.T) {
	n := &Notification{
		OrderID:     "ORD-20260830-001",
		StatusCode:  "200",
		GrossAmount: "56000.00",
	}
	n.SignatureKey = Signature(n.OrderID, n.StatusCode, n.GrossAmount, "server-key")

	assert.True(t, VerifySignature(n, "server-key"))
	assert.False(t, VerifySignature(n, "other-key"))

	tampered := *n
	tampered.GrossAmount = "1.00"
	assert.False(t, VerifySignature(&tampered, "server-key"))
}

func TestCreateTransaction(t *testing.T) {
	var gotBody map[string]any
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"token":"tok-123","redirect_url":"https://example.test/pay"}`))
	}))
	defer srv.Close()

	c := NewSnapClient(srv.URL, "server-key")
	token, err := c.CreateTransaction("ORD-20260830-001", decimal.NewFromInt(56000), "Ayu")
	require.NoError(t, err)
	assert.Equal(t, "tok-123", token)

	assert.NotEmpty(t, gotAuth)
	td := gotBody["transaction_details"].(map[string]any)
	assert.Equal(t, "ORD-20260830-001", td["order_id"])
	assert.EqualValues(t, 56000, td["gross_amount"])
}

func TestCreateTransactionGatewayError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error_messages":["unauthorized"]}`))
	}))
	defer srv.Close()

	c := NewSnapClient(srv.URL, "bad-key")
	_, err := c.CreateTransaction("ORD-20260830-002", decimal.NewFromInt(1000), "Ayu")
	assert.Error(t, err)
}
