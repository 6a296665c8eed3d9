package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition_Forward(t *testing.T) {
	assert.True(t, CanTransition(OrderStatusPending, OrderStatusProcessing))
	assert.True(t, CanTransition(OrderStatusProcessing, OrderStatusShipped))
	assert.True(t, CanTransition(OrderStatusShipped, OrderStatusDelivered))
}

func TestCanTransition_Cancel(t *testing.T) {
	assert.True(t, CanTransition(OrderStatusPending, OrderStatusCancelled))
	assert.True(t, CanTransition(OrderStatusProcessing, OrderStatusCancelled))
	assert.True(t, CanTransition(OrderStatusShipped, OrderStatusCancelled))

	// Terminal states stay terminal
	assert.False(t, CanTransition(OrderStatusDelivered, OrderStatusCancelled))
	assert.False(t, CanTransition(OrderStatusCancelled, OrderStatusCancelled))
}

func TestCanTransition_RejectsJumpsAndReversals(t *testing.T) {
	assert.False(t, CanTransition(OrderStatusPending, OrderStatusShipped))
	assert.False(t, CanTransition(OrderStatusPending, OrderStatusDelivered))
	assert.False(t, CanTransition(OrderStatusShipped, OrderStatusProcessing))
	assert.False(t, CanTransition(OrderStatusDelivered, OrderStatusPending))
	assert.False(t, CanTransition(OrderStatusCancelled, OrderStatusProcessing))
	assert.False(t, CanTransition(OrderStatusPending, OrderStatusPending))
}

func TestCanTransition_UnknownStatus(t *testing.T) {
	assert.False(t, CanTransition("mystery", OrderStatusProcessing))
	assert.False(t, CanTransition(OrderStatusPending, "mystery"))
}

func TestOrderStatus_Terminal(t *testing.T) {
	assert.True(t, OrderStatusDelivered.Terminal())
	assert.True(t, OrderStatusCancelled.Terminal())
	assert.False(t, OrderStatusPending.Terminal())
	assert.False(t, OrderStatusProcessing.Terminal())
	assert.False(t, OrderStatusShipped.Terminal())
}
