package adapters

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"settlement-engine/internal/core/cache"
	"settlement-engine/internal/features/payments/domain"
)

const attemptKeyPrefix = "payment_attempt:"

// RedisAttemptStore implements ports.AttemptStore on top of the cache
// port. Attempts expire with the configured TTL so abandoned payments
// cannot be redeemed indefinitely.
type RedisAttemptStore struct {
	cache cache.Cache
	ttl   time.Duration
}

// NewRedisAttemptStore creates a new RedisAttemptStore.
func NewRedisAttemptStore(c cache.Cache, ttl time.Duration) *RedisAttemptStore {
	return &RedisAttemptStore{
		cache: c,
		ttl:   ttl,
	}
}

func attemptKey(gatewayOrderID string) string {
	return attemptKeyPrefix + gatewayOrderID
}

// Save pins an attempt under its gateway order id.
func (s *RedisAttemptStore) Save(ctx context.Context, attempt *domain.Attempt) error {
	data, err := json.Marshal(attempt)
	if err != nil {
		return fmt.Errorf("failed to marshal attempt: %w", err)
	}

	if err := s.cache.Set(ctx, attemptKey(attempt.GatewayOrderID), data, s.ttl); err != nil {
		return fmt.Errorf("failed to save attempt: %w", err)
	}

	return nil
}

// Find returns the pinned attempt, or (nil, nil) when absent or expired.
func (s *RedisAttemptStore) Find(ctx context.Context, gatewayOrderID string) (*domain.Attempt, error) {
	data, err := s.cache.Get(ctx, attemptKey(gatewayOrderID))
	if errors.Is(err, cache.ErrKeyNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get attempt: %w", err)
	}

	var attempt domain.Attempt
	if err := json.Unmarshal(data, &attempt); err != nil {
		return nil, fmt.Errorf("failed to unmarshal attempt: %w", err)
	}

	return &attempt, nil
}

// Delete removes the pinned attempt.
func (s *RedisAttemptStore) Delete(ctx context.Context, gatewayOrderID string) error {
	if err := s.cache.Delete(ctx, attemptKey(gatewayOrderID)); err != nil {
		return fmt.Errorf("failed to delete attempt: %w", err)
	}
	return nil
}
