package ports

import (
	"context"

	"settlement-engine/internal/features/payments/domain"
	pricing "settlement-engine/internal/features/pricing/domain"
)

// Gateway is the secondary port to the payment provider. This is the only
// trust boundary in the settlement flow.
type Gateway interface {
	// CreateOrder reserves an amount with the provider ahead of payment.
	// Returns domain.ErrGatewayUnavailable on network or provider errors.
	CreateOrder(ctx context.Context, amount pricing.Money, currency, receipt string) (*domain.GatewayOrder, error)

	// VerifySignature reports whether a payment completion callback is
	// authentic. Pure and idempotent; identical inputs always yield the
	// same answer.
	VerifySignature(gatewayOrderID, gatewayPaymentID, signature string) bool
}

// AttemptStore is the secondary port pinning priced drafts between
// payment initiation and confirmation.
type AttemptStore interface {
	// Save pins an attempt under its gateway order id.
	Save(ctx context.Context, attempt *domain.Attempt) error
	// Find returns the pinned attempt, or (nil, nil) when absent or expired.
	Find(ctx context.Context, gatewayOrderID string) (*domain.Attempt, error)
	// Delete removes the pinned attempt.
	Delete(ctx context.Context, gatewayOrderID string) error
}
