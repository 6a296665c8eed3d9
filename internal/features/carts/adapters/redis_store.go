package adapters

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"settlement-engine/internal/core/cache"
	"settlement-engine/internal/features/carts/domain"
)

const cartKeyPrefix = "cart:"

// RedisCartStore implements ports.CartStore on top of the cache port.
// Snapshots have no TTL; they live until checkout clears them or the
// user replaces them.
type RedisCartStore struct {
	cache cache.Cache
}

// NewRedisCartStore creates a new RedisCartStore.
func NewRedisCartStore(c cache.Cache) *RedisCartStore {
	return &RedisCartStore{
		cache: c,
	}
}

func cartKey(userID string) string {
	return cartKeyPrefix + userID
}

// Save stores the cart snapshot for its user.
func (s *RedisCartStore) Save(ctx context.Context, cart *domain.Cart) error {
	data, err := json.Marshal(cart)
	if err != nil {
		return fmt.Errorf("failed to marshal cart: %w", err)
	}

	if err := s.cache.Set(ctx, cartKey(cart.UserID), data, 0); err != nil {
		return fmt.Errorf("failed to save cart: %w", err)
	}

	return nil
}

// Get retrieves the cart snapshot for a user.
func (s *RedisCartStore) Get(ctx context.Context, userID string) (*domain.Cart, error) {
	data, err := s.cache.Get(ctx, cartKey(userID))
	if errors.Is(err, cache.ErrKeyNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get cart: %w", err)
	}

	var cart domain.Cart
	if err := json.Unmarshal(data, &cart); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cart: %w", err)
	}

	return &cart, nil
}

// Clear removes the cart snapshot for a user.
func (s *RedisCartStore) Clear(ctx context.Context, userID string) error {
	if err := s.cache.Delete(ctx, cartKey(userID)); err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}
	return nil
}
