package adapters

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"settlement-engine/internal/core/config"
	"settlement-engine/internal/features/payments/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newGateway(url string) *RestGatewayAdapter {
	return NewRestGatewayAdapter(config.GatewayConfig{
		URL:       url,
		KeyID:     "key_test",
		KeySecret: "secret_test",
		Currency:  "INR",
	})
}

func TestRestGatewayAdapter_CreateOrder(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/orders", r.URL.Path)

		user, pass, ok := r.BasicAuth()
		require.True(t, ok)
		assert.Equal(t, "key_test", user)
		assert.Equal(t, "secret_test", pass)

		var body gatewayOrderRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, int64(2500), body.Amount)
		assert.Equal(t, "INR", body.Currency)
		assert.Equal(t, "receipt-1", body.Receipt)

		json.NewEncoder(w).Encode(gatewayOrderResponse{
			ID:       "gw_order_1",
			Amount:   body.Amount,
			Currency: body.Currency,
		})
	}))
	defer srv.Close()

	gw := newGateway(srv.URL)

	order, err := gw.CreateOrder(context.Background(), 2500, "INR", "receipt-1")
	require.NoError(t, err)
	assert.Equal(t, "gw_order_1", order.ID)
	assert.EqualValues(t, 2500, order.Amount)
	assert.Equal(t, "INR", order.Currency)
	assert.Equal(t, "key_test", order.KeyID)
}

func TestRestGatewayAdapter_CreateOrder_ProviderError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	gw := newGateway(srv.URL)

	order, err := gw.CreateOrder(context.Background(), 2500, "INR", "receipt-1")
	assert.Nil(t, order)
	assert.ErrorIs(t, err, domain.ErrGatewayUnavailable)
}

func TestRestGatewayAdapter_CreateOrder_NetworkError(t *testing.T) {
	gw := newGateway("http://127.0.0.1:1")

	order, err := gw.CreateOrder(context.Background(), 2500, "INR", "receipt-1")
	assert.Nil(t, order)
	assert.ErrorIs(t, err, domain.ErrGatewayUnavailable)
}

func signPayload(secret, orderID, paymentID string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

func TestRestGatewayAdapter_VerifySignature(t *testing.T) {
	gw := newGateway("http://unused")
	valid := signPayload("secret_test", "gw_order_1", "gw_pay_1")

	t.Run("Valid", func(t *testing.T) {
		assert.True(t, gw.VerifySignature("gw_order_1", "gw_pay_1", valid))
	})

	t.Run("Idempotent", func(t *testing.T) {
		assert.True(t, gw.VerifySignature("gw_order_1", "gw_pay_1", valid))
		assert.True(t, gw.VerifySignature("gw_order_1", "gw_pay_1", valid))
	})

	t.Run("TamperedSignature", func(t *testing.T) {
		tampered := []byte(valid)
		if tampered[0] == 'a' {
			tampered[0] = 'b'
		} else {
			tampered[0] = 'a'
		}
		assert.False(t, gw.VerifySignature("gw_order_1", "gw_pay_1", string(tampered)))
	})

	t.Run("WrongOrderID", func(t *testing.T) {
		assert.False(t, gw.VerifySignature("gw_order_2", "gw_pay_1", valid))
	})

	t.Run("WrongPaymentID", func(t *testing.T) {
		assert.False(t, gw.VerifySignature("gw_order_1", "gw_pay_2", valid))
	})

	t.Run("WrongSecret", func(t *testing.T) {
		forged := signPayload("other_secret", "gw_order_1", "gw_pay_1")
		assert.False(t, gw.VerifySignature("gw_order_1", "gw_pay_1", forged))
	})

	t.Run("Empty", func(t *testing.T) {
		assert.False(t, gw.VerifySignature("gw_order_1", "gw_pay_1", ""))
	})
}
