package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"settlement-engine/internal/features/carts/domain"
	"settlement-engine/internal/features/carts/ports"
	pricing "settlement-engine/internal/features/pricing/domain"
)

// ErrInvalidCartItem is returned when a cart line has a non-positive quantity
// or no product id.
var ErrInvalidCartItem = errors.New("invalid cart item")

// CartServiceImpl implements ports.CartService.
type CartServiceImpl struct {
	store ports.CartStore
}

// NewCartService creates a new CartServiceImpl.
func NewCartService(store ports.CartStore) *CartServiceImpl {
	return &CartServiceImpl{
		store: store,
	}
}

// SetCart replaces the user's cart snapshot with the given items.
func (s *CartServiceImpl) SetCart(ctx context.Context, userID string, items []pricing.LineItem) (*domain.Cart, error) {
	for _, item := range items {
		if item.ProductID == "" || item.Quantity <= 0 {
			return nil, ErrInvalidCartItem
		}
	}

	cart := &domain.Cart{
		UserID:    userID,
		Items:     items,
		UpdatedAt: time.Now(),
	}

	if err := s.store.Save(ctx, cart); err != nil {
		return nil, fmt.Errorf("service: failed to save cart: %w", err)
	}

	return cart, nil
}

// GetCart retrieves the user's cart snapshot.
func (s *CartServiceImpl) GetCart(ctx context.Context, userID string) (*domain.Cart, error) {
	cart, err := s.store.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("service: failed to get cart: %w", err)
	}

	return cart, nil
}

// ClearCart removes the user's cart snapshot.
func (s *CartServiceImpl) ClearCart(ctx context.Context, userID string) error {
	if err := s.store.Clear(ctx, userID); err != nil {
		return fmt.Errorf("service: failed to clear cart: %w", err)
	}

	return nil
}
