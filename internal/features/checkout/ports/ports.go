package ports

import (
	"context"

	"settlement-engine/internal/features/checkout/domain"
	ordersdomain "settlement-engine/internal/features/orders/domain"
	paymentsdomain "settlement-engine/internal/features/payments/domain"
)

// CheckoutService is the primary port for the settlement flow.
type CheckoutService interface {
	// PlaceOrder settles a cash-on-delivery checkout in one step.
	PlaceOrder(ctx context.Context, input domain.CheckoutInput) (*ordersdomain.Order, error)

	// InitiatePayment opens a gateway order for a prepaid checkout and
	// pins the priced draft. No order exists until confirmation.
	InitiatePayment(ctx context.Context, input domain.CheckoutInput) (*paymentsdomain.GatewayOrder, error)

	// ConfirmPayment verifies a completion callback and settles the
	// pinned draft into an order.
	ConfirmPayment(ctx context.Context, conf domain.PaymentConfirmation) (*ordersdomain.Order, error)
}
