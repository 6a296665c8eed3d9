package domain

import (
	ordersdomain "settlement-engine/internal/features/orders/domain"
)

// CheckoutItem is a cart line as the storefront sends it. Only the
// product id and quantity are trusted; price and name come from the
// catalog at settlement time.
type CheckoutItem struct {
	// ProductID identifies the catalog product.
	ProductID string `json:"product_id"`
	// Quantity is the number of units, at least 1.
	Quantity int `json:"quantity"`
	// VariantLabel is an optional display label such as size or color.
	VariantLabel string `json:"variant_label,omitempty"`
}

// CheckoutInput is a settlement request before repricing.
type CheckoutInput struct {
	// UserID is the customer placing the order.
	UserID string `json:"user_id"`
	// Items are the requested cart lines.
	Items []CheckoutItem `json:"items"`
	// CouponCode is an optional coupon to apply. Always revalidated
	// server-side regardless of any earlier check.
	CouponCode string `json:"coupon_code,omitempty"`
	// ShippingAddress is the delivery destination.
	ShippingAddress ordersdomain.ShippingAddress `json:"shipping_address"`
}

// PaymentConfirmation is the storefront's relay of the gateway's
// payment completion callback.
type PaymentConfirmation struct {
	// GatewayOrderID is the provider order the payment settles.
	GatewayOrderID string `json:"gateway_order_id"`
	// GatewayPaymentID is the provider's payment identifier.
	GatewayPaymentID string `json:"gateway_payment_id"`
	// Signature authenticates the pair above.
	Signature string `json:"signature"`
}
