package domain

import (
	"errors"
	"time"

	ordersdomain "settlement-engine/internal/features/orders/domain"
	pricing "settlement-engine/internal/features/pricing/domain"
)

// ErrGatewayUnavailable is returned when the payment provider cannot be
// reached or answers with an error. The whole checkout attempt is safe to
// retry: no order exists yet.
var ErrGatewayUnavailable = errors.New("payment gateway unavailable")

// GatewayOrder is the provider-side reservation of an amount, created
// before the customer completes payment.
type GatewayOrder struct {
	// ID is the provider's order identifier, echoed back in the callback.
	ID string `json:"gateway_order_id"`
	// Amount is the reserved amount in minor units.
	Amount pricing.Money `json:"amount"`
	// Currency is the ISO currency code.
	Currency string `json:"currency"`
	// KeyID is the public key the storefront widget needs to open the
	// provider's checkout UI.
	KeyID string `json:"key"`
}

// Attempt pins a priced checkout draft against a gateway order. The
// callback signature does not bind the amount, so the confirm path reads
// amounts exclusively from here and never from client input.
type Attempt struct {
	// GatewayOrderID keys the attempt.
	GatewayOrderID string `json:"gateway_order_id"`
	// UserID is the customer the draft belongs to.
	UserID string `json:"user_id"`
	// Items are the server-priced cart lines.
	Items []pricing.LineItem `json:"items"`
	// Total is the server-computed breakdown the gateway order was opened for.
	Total pricing.OrderTotal `json:"total"`
	// ShippingAddress is the delivery destination.
	ShippingAddress ordersdomain.ShippingAddress `json:"shipping_address"`
	// CouponCode is the validated coupon, if any.
	CouponCode string `json:"coupon_code,omitempty"`
	// Currency is the ISO currency code of the gateway order.
	Currency string `json:"currency"`
	// CreatedAt is when the gateway order was opened.
	CreatedAt time.Time `json:"created_at"`
}
