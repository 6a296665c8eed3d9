package ports

import (
	"context"

	"settlement-engine/internal/features/carts/domain"
	pricing "settlement-engine/internal/features/pricing/domain"
)

// CartService defines the primary port for cart snapshot operations.
type CartService interface {
	SetCart(ctx context.Context, userID string, items []pricing.LineItem) (*domain.Cart, error)
	GetCart(ctx context.Context, userID string) (*domain.Cart, error)
	ClearCart(ctx context.Context, userID string) error
}

// CartStore defines the secondary port for cart snapshot storage.
type CartStore interface {
	// Save stores the user's cart snapshot, replacing any previous one.
	Save(ctx context.Context, cart *domain.Cart) error
	// Get returns the user's cart snapshot, or (nil, nil) when none exists.
	Get(ctx context.Context, userID string) (*domain.Cart, error)
	// Clear removes the user's cart snapshot.
	Clear(ctx context.Context, userID string) error
}
