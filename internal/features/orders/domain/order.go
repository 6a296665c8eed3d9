package domain

import (
	"time"

	pricing "settlement-engine/internal/features/pricing/domain"
)

// OrderStatus represents the current state of an order.
type OrderStatus string

const (
	// OrderStatusPending indicates the order is settled but not yet picked up by fulfilment.
	OrderStatusPending OrderStatus = "pending"
	// OrderStatusProcessing indicates fulfilment is preparing the order.
	OrderStatusProcessing OrderStatus = "processing"
	// OrderStatusShipped indicates the order has been handed to the carrier.
	OrderStatusShipped OrderStatus = "shipped"
	// OrderStatusDelivered indicates the order reached the customer. Terminal.
	OrderStatusDelivered OrderStatus = "delivered"
	// OrderStatusCancelled indicates the order was cancelled. Terminal.
	OrderStatusCancelled OrderStatus = "cancelled"
)

// Valid reports whether the status is one of the known states.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusShipped,
		OrderStatusDelivered, OrderStatusCancelled:
		return true
	default:
		return false
	}
}

// Terminal reports whether the status admits no further transitions.
func (s OrderStatus) Terminal() bool {
	return s == OrderStatusDelivered || s == OrderStatusCancelled
}

// forward is the allowed forward transition per state.
var forward = map[OrderStatus]OrderStatus{
	OrderStatusPending:    OrderStatusProcessing,
	OrderStatusProcessing: OrderStatusShipped,
	OrderStatusShipped:    OrderStatusDelivered,
}

// CanTransition reports whether an order may move from one status to
// another: one step forward along pending -> processing -> shipped ->
// delivered, or to cancelled from any non-terminal state.
func CanTransition(from, to OrderStatus) bool {
	if !from.Valid() || !to.Valid() || from.Terminal() {
		return false
	}
	if to == OrderStatusCancelled {
		return true
	}
	return forward[from] == to
}

// PaymentMethod distinguishes how an order was paid for.
type PaymentMethod string

const (
	// PaymentMethodCOD is pay-on-delivery; no gateway involvement.
	PaymentMethodCOD PaymentMethod = "cod"
	// PaymentMethodPrepaid means the gateway verified payment before settlement.
	PaymentMethodPrepaid PaymentMethod = "prepaid"
)

// ShippingAddress is where the order ships. Immutable once embedded.
type ShippingAddress struct {
	Phone      string `json:"phone" bson:"phone"`
	Street     string `json:"street" bson:"street"`
	City       string `json:"city" bson:"city"`
	State      string `json:"state" bson:"state"`
	PostalCode string `json:"postal_code" bson:"postal_code"`
	Country    string `json:"country" bson:"country"`
}

// Order is the durable result of a settled checkout. Created once by the
// checkout flow; mutated afterwards only through status transitions.
type Order struct {
	// ID is the unique identifier for the order.
	ID string `json:"id" bson:"_id"`
	// UserID is the customer who placed the order.
	UserID string `json:"user_id" bson:"user_id"`
	// Status is the lifecycle state.
	Status OrderStatus `json:"order_status" bson:"order_status"`
	// Items are the purchased lines, priced at settlement time.
	Items []pricing.LineItem `json:"items" bson:"items"`
	// Total is the server-computed money breakdown.
	Total pricing.OrderTotal `json:"order_total" bson:"order_total"`
	// ShippingAddress is the delivery destination.
	ShippingAddress ShippingAddress `json:"shipping_address" bson:"shipping_address"`
	// PaymentMethod records how the order was paid.
	PaymentMethod PaymentMethod `json:"payment_method" bson:"payment_method"`
	// CouponCode is the applied coupon, if any.
	CouponCode string `json:"coupon_code,omitempty" bson:"coupon_code,omitempty"`
	// TrackingURL points at the carrier's tracking page once shipped.
	TrackingURL string `json:"tracking_url,omitempty" bson:"tracking_url,omitempty"`
	// CreatedAt is the settlement timestamp.
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}

// NewOrderInput holds everything needed to settle a new order.
// ID, status and timestamp are assigned by the service.
type NewOrderInput struct {
	UserID          string             `json:"user_id"`
	Items           []pricing.LineItem `json:"items"`
	Total           pricing.OrderTotal `json:"order_total"`
	ShippingAddress ShippingAddress    `json:"shipping_address"`
	PaymentMethod   PaymentMethod      `json:"payment_method"`
	CouponCode      string             `json:"coupon_code,omitempty"`
}
