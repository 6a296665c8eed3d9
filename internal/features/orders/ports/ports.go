package ports

import (
	"context"

	"settlement-engine/internal/features/orders/domain"
)

// OrderCreator is the primary port checkout uses to settle an order.
type OrderCreator interface {
	Create(ctx context.Context, input domain.NewOrderInput) (*domain.Order, error)
}

// OrderRepository defines the secondary port for order persistence.
type OrderRepository interface {
	// Insert stores a new order.
	Insert(ctx context.Context, order *domain.Order) error
	// FindByID returns the order with the given id, or (nil, nil) when absent.
	FindByID(ctx context.Context, id string) (*domain.Order, error)
	// FindAll returns orders sorted by creation time descending. A non-empty
	// userID restricts the result to that user's orders.
	FindAll(ctx context.Context, userID string) ([]domain.Order, error)
	// UpdateStatus persists a status change and, when non-empty, the tracking URL.
	// Returns the updated order, or (nil, nil) when the order does not exist.
	UpdateStatus(ctx context.Context, id string, status domain.OrderStatus, trackingURL string) (*domain.Order, error)
}
