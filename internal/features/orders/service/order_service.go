package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"settlement-engine/internal/core/logger"
	"settlement-engine/internal/features/orders/domain"
	"settlement-engine/internal/features/orders/ports"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	// ErrOrderNotFound is returned when the order does not exist.
	ErrOrderNotFound = errors.New("order not found")
	// ErrInvalidOrder is returned when a new order is missing items, a
	// well-formed address, or a reconciling total.
	ErrInvalidOrder = errors.New("invalid order")
	// ErrInvalidTransition is returned when a status update falls outside
	// the allowed transition graph.
	ErrInvalidTransition = errors.New("invalid status transition")
	// ErrTrackingURLRequired is returned when an order is marked shipped
	// without a tracking URL.
	ErrTrackingURLRequired = errors.New("tracking url required when shipping")
)

// OrderService owns the order lifecycle: settlement-time creation and
// administrative status transitions.
type OrderService struct {
	repo ports.OrderRepository
}

// NewOrderService creates a new instance of OrderService.
func NewOrderService(repo ports.OrderRepository) *OrderService {
	return &OrderService{
		repo: repo,
	}
}

// Create validates and persists a new order with status pending.
func (s *OrderService) Create(ctx context.Context, input domain.NewOrderInput) (*domain.Order, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	order := &domain.Order{
		ID:              uuid.NewString(),
		UserID:          input.UserID,
		Status:          domain.OrderStatusPending,
		Items:           input.Items,
		Total:           input.Total,
		ShippingAddress: input.ShippingAddress,
		PaymentMethod:   input.PaymentMethod,
		CouponCode:      input.CouponCode,
		CreatedAt:       time.Now().UTC(),
	}

	if err := s.repo.Insert(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to persist order: %w", err)
	}

	logger.Get().Info("Order created",
		zap.String("order_id", order.ID),
		zap.String("user_id", order.UserID),
		zap.String("payment_method", string(order.PaymentMethod)),
		zap.Int64("total", int64(order.Total.Total)),
	)

	return order, nil
}

// Get retrieves an order by id.
func (s *OrderService) Get(ctx context.Context, id string) (*domain.Order, error) {
	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// List retrieves orders, optionally restricted to one user.
func (s *OrderService) List(ctx context.Context, userID string) ([]domain.Order, error) {
	return s.repo.FindAll(ctx, userID)
}

// UpdateStatus transitions an order to a new status, enforcing the
// transition graph. A tracking URL is required when shipping and ignored
// (with a warning) on other transitions.
func (s *OrderService) UpdateStatus(ctx context.Context, id string, newStatus domain.OrderStatus, trackingURL string) (*domain.Order, error) {
	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}

	if !domain.CanTransition(order.Status, newStatus) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, order.Status, newStatus)
	}

	if newStatus == domain.OrderStatusShipped && trackingURL == "" {
		return nil, ErrTrackingURLRequired
	}
	if newStatus != domain.OrderStatusShipped && trackingURL != "" {
		logger.Get().Warn("Tracking URL ignored outside shipped transition",
			zap.String("order_id", id),
			zap.String("new_status", string(newStatus)),
		)
		trackingURL = ""
	}

	updated, err := s.repo.UpdateStatus(ctx, id, newStatus, trackingURL)
	if err != nil {
		return nil, fmt.Errorf("failed to update order status: %w", err)
	}
	if updated == nil {
		return nil, ErrOrderNotFound
	}

	logger.Get().Info("Order status updated",
		zap.String("order_id", id),
		zap.String("from", string(order.Status)),
		zap.String("to", string(newStatus)),
	)

	return updated, nil
}

// validateInput checks the structural invariants of a new order.
func validateInput(input domain.NewOrderInput) error {
	if input.UserID == "" {
		return fmt.Errorf("%w: missing user id", ErrInvalidOrder)
	}
	if len(input.Items) == 0 {
		return fmt.Errorf("%w: no items", ErrInvalidOrder)
	}
	for _, item := range input.Items {
		if item.ProductID == "" || item.Quantity <= 0 || item.UnitPrice < 0 {
			return fmt.Errorf("%w: malformed item %q", ErrInvalidOrder, item.ProductID)
		}
	}
	if !input.Total.Reconciles() {
		return fmt.Errorf("%w: total does not reconcile", ErrInvalidOrder)
	}
	if input.PaymentMethod != domain.PaymentMethodCOD && input.PaymentMethod != domain.PaymentMethodPrepaid {
		return fmt.Errorf("%w: unknown payment method %q", ErrInvalidOrder, input.PaymentMethod)
	}
	addr := input.ShippingAddress
	if addr.Phone == "" || addr.Street == "" || addr.City == "" {
		return fmt.Errorf("%w: incomplete shipping address", ErrInvalidOrder)
	}
	return nil
}
