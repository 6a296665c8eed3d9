package adapters

import (
	"context"
	"testing"
	"time"

	"settlement-engine/internal/core/cache"
	ordersdomain "settlement-engine/internal/features/orders/domain"
	"settlement-engine/internal/features/payments/domain"
	pricing "settlement-engine/internal/features/pricing/domain"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAttemptStore(t *testing.T) (*RedisAttemptStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)

	adapter, err := cache.NewRedisAdapter("redis://" + mr.Addr())
	require.NoError(t, err)
	t.Cleanup(func() { adapter.Close() })

	return NewRedisAttemptStore(adapter, 30*time.Minute), mr
}

func testAttempt() *domain.Attempt {
	return &domain.Attempt{
		GatewayOrderID: "gw_order_1",
		UserID:         "user-1",
		Items: []pricing.LineItem{
			{ProductID: "p1", Name: "Widget", UnitPrice: 1000, Quantity: 2},
		},
		Total: pricing.OrderTotal{Subtotal: 2000, Discount: 500, Total: 1500},
		ShippingAddress: ordersdomain.ShippingAddress{
			Phone: "5551234", Street: "123 Main St", City: "Springfield",
		},
		CouponCode: "SAVE500",
		Currency:   "INR",
		CreatedAt:  time.Now().UTC().Truncate(time.Second),
	}
}

func TestRedisAttemptStore_SaveFind(t *testing.T) {
	store, _ := newAttemptStore(t)
	ctx := context.Background()

	attempt := testAttempt()
	require.NoError(t, store.Save(ctx, attempt))

	got, err := store.Find(ctx, "gw_order_1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, attempt.UserID, got.UserID)
	assert.Equal(t, attempt.Items, got.Items)
	assert.Equal(t, attempt.Total, got.Total)
	assert.Equal(t, attempt.CouponCode, got.CouponCode)
}

func TestRedisAttemptStore_FindMissing(t *testing.T) {
	store, _ := newAttemptStore(t)

	got, err := store.Find(context.Background(), "unknown")
	assert.NoError(t, err)
	assert.Nil(t, got)
}

func TestRedisAttemptStore_Expiry(t *testing.T) {
	store, mr := newAttemptStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, testAttempt()))

	mr.FastForward(31 * time.Minute)

	got, err := store.Find(ctx, "gw_order_1")
	assert.NoError(t, err)
	assert.Nil(t, got)
}

func TestRedisAttemptStore_Delete(t *testing.T) {
	store, _ := newAttemptStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, testAttempt()))
	require.NoError(t, store.Delete(ctx, "gw_order_1"))

	got, err := store.Find(ctx, "gw_order_1")
	assert.NoError(t, err)
	assert.Nil(t, got)
}
