package adapters

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"settlement-engine/internal/core/config"
	"settlement-engine/internal/core/httpclient"
	"settlement-engine/internal/core/logger"
	"settlement-engine/internal/features/payments/domain"
	pricing "settlement-engine/internal/features/pricing/domain"

	"go.uber.org/zap"
)

// RestGatewayAdapter implements the Gateway port against the provider's
// REST API. Authentication is Basic auth with the key id and secret.
type RestGatewayAdapter struct {
	// client is the HTTP client used for API requests.
	client *http.Client
	// config holds the gateway connection details.
	config config.GatewayConfig
}

// NewRestGatewayAdapter creates a new instance of RestGatewayAdapter.
func NewRestGatewayAdapter(cfg config.GatewayConfig) *RestGatewayAdapter {
	return &RestGatewayAdapter{
		client: httpclient.NewClient(10 * time.Second),
		config: cfg,
	}
}

// gatewayOrderRequest is the provider's create-order request body.
type gatewayOrderRequest struct {
	// Amount is the amount to reserve, in minor units.
	Amount int64 `json:"amount"`
	// Currency is the ISO currency code.
	Currency string `json:"currency"`
	// Receipt is our reference for reconciliation.
	Receipt string `json:"receipt"`
}

// gatewayOrderResponse is the provider's create-order response body.
type gatewayOrderResponse struct {
	// ID is the provider-side order id.
	ID string `json:"id"`
	// Amount echoes the reserved amount.
	Amount int64 `json:"amount"`
	// Currency echoes the currency.
	Currency string `json:"currency"`
}

// CreateOrder reserves an amount with the provider ahead of payment.
func (a *RestGatewayAdapter) CreateOrder(ctx context.Context, amount pricing.Money, currency, receipt string) (*domain.GatewayOrder, error) {
	payload, err := json.Marshal(gatewayOrderRequest{
		Amount:   int64(amount),
		Currency: currency,
		Receipt:  receipt,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode gateway order: %w", err)
	}

	url := fmt.Sprintf("%s/v1/orders", a.config.URL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Basic "+a.basicAuth())

	resp, err := a.client.Do(req)
	if err != nil {
		logger.Get().Warn("Gateway order creation failed", zap.String("receipt", receipt), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", domain.ErrGatewayUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		logger.Get().Warn("Gateway returned error status",
			zap.String("receipt", receipt),
			zap.Int("status", resp.StatusCode),
		)
		return nil, fmt.Errorf("%w: status %d", domain.ErrGatewayUnavailable, resp.StatusCode)
	}

	var gwResp gatewayOrderResponse
	if err := json.NewDecoder(resp.Body).Decode(&gwResp); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", domain.ErrGatewayUnavailable, err)
	}

	return &domain.GatewayOrder{
		ID:       gwResp.ID,
		Amount:   pricing.Money(gwResp.Amount),
		Currency: gwResp.Currency,
		KeyID:    a.config.KeyID,
	}, nil
}

// VerifySignature recomputes the callback signature and compares it in
// constant time. The signature covers gatewayOrderID + "|" +
// gatewayPaymentID; the amount is NOT bound by it, which is why amounts
// are pinned server-side at order creation time.
func (a *RestGatewayAdapter) VerifySignature(gatewayOrderID, gatewayPaymentID, signature string) bool {
	mac := hmac.New(sha256.New, []byte(a.config.KeySecret))
	mac.Write([]byte(gatewayOrderID + "|" + gatewayPaymentID))
	expected := hex.EncodeToString(mac.Sum(nil))

	return hmac.Equal([]byte(expected), []byte(signature))
}

// basicAuth builds the Basic auth value from the key id and secret.
func (a *RestGatewayAdapter) basicAuth() string {
	authVal := make([]byte, 0, len(a.config.KeyID)+len(a.config.KeySecret)+1)
	authVal = fmt.Appendf(authVal, "%s:%s", a.config.KeyID, a.config.KeySecret)
	return base64.StdEncoding.EncodeToString(authVal)
}
