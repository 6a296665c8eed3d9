package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"settlement-engine/internal/core/logger"
	cartports "settlement-engine/internal/features/carts/ports"
	catalogports "settlement-engine/internal/features/catalog/ports"
	"settlement-engine/internal/features/checkout/domain"
	couponports "settlement-engine/internal/features/coupons/ports"
	ordersdomain "settlement-engine/internal/features/orders/domain"
	orderports "settlement-engine/internal/features/orders/ports"
	paymentsdomain "settlement-engine/internal/features/payments/domain"
	paymentports "settlement-engine/internal/features/payments/ports"
	pricing "settlement-engine/internal/features/pricing/domain"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	// ErrEmptyCheckout is returned when the request carries no items.
	ErrEmptyCheckout = errors.New("checkout has no items")
	// ErrInvalidQuantity is returned when a line has a non-positive quantity.
	ErrInvalidQuantity = errors.New("invalid item quantity")
	// ErrUnknownProduct is returned when a requested product is not in the catalog.
	ErrUnknownProduct = errors.New("unknown product")
	// ErrVerificationFailed is returned when a payment callback's signature
	// does not authenticate. No order is created and the pinned draft is
	// kept for review.
	ErrVerificationFailed = errors.New("payment verification failed")
	// ErrAttemptNotFound is returned when a confirmation references a
	// payment attempt that was never pinned or has already expired.
	ErrAttemptNotFound = errors.New("payment attempt not found")
)

// CheckoutServiceImpl orchestrates settlement across the catalog, coupon,
// payment, order and cart features. Amounts always come from the catalog
// and the coupon rules; client-supplied totals are never trusted.
type CheckoutServiceImpl struct {
	catalog  catalogports.ProductCatalog
	coupons  couponports.CouponValidator
	gateway  paymentports.Gateway
	attempts paymentports.AttemptStore
	orders   orderports.OrderCreator
	carts    cartports.CartService
	currency string
}

// NewCheckoutService creates a new CheckoutServiceImpl.
func NewCheckoutService(
	catalog catalogports.ProductCatalog,
	coupons couponports.CouponValidator,
	gateway paymentports.Gateway,
	attempts paymentports.AttemptStore,
	orders orderports.OrderCreator,
	carts cartports.CartService,
	currency string,
) *CheckoutServiceImpl {
	return &CheckoutServiceImpl{
		catalog:  catalog,
		coupons:  coupons,
		gateway:  gateway,
		attempts: attempts,
		orders:   orders,
		carts:    carts,
		currency: currency,
	}
}

// PlaceOrder settles a cash-on-delivery checkout in one step.
func (s *CheckoutServiceImpl) PlaceOrder(ctx context.Context, input domain.CheckoutInput) (*ordersdomain.Order, error) {
	items, total, err := s.price(ctx, input)
	if err != nil {
		return nil, err
	}

	order, err := s.orders.Create(ctx, ordersdomain.NewOrderInput{
		UserID:          input.UserID,
		Items:           items,
		Total:           total,
		ShippingAddress: input.ShippingAddress,
		PaymentMethod:   ordersdomain.PaymentMethodCOD,
		CouponCode:      input.CouponCode,
	})
	if err != nil {
		return nil, err
	}

	s.clearCart(ctx, input.UserID, order.ID)

	return order, nil
}

// InitiatePayment opens a gateway order for the priced total and pins the
// draft against the gateway order id. No order exists until confirmation.
func (s *CheckoutServiceImpl) InitiatePayment(ctx context.Context, input domain.CheckoutInput) (*paymentsdomain.GatewayOrder, error) {
	items, total, err := s.price(ctx, input)
	if err != nil {
		return nil, err
	}

	gwOrder, err := s.gateway.CreateOrder(ctx, total.Total, s.currency, uuid.NewString())
	if err != nil {
		return nil, err
	}

	attempt := &paymentsdomain.Attempt{
		GatewayOrderID:  gwOrder.ID,
		UserID:          input.UserID,
		Items:           items,
		Total:           total,
		ShippingAddress: input.ShippingAddress,
		CouponCode:      input.CouponCode,
		Currency:        gwOrder.Currency,
		CreatedAt:       time.Now().UTC(),
	}
	if err := s.attempts.Save(ctx, attempt); err != nil {
		return nil, fmt.Errorf("failed to pin payment attempt: %w", err)
	}

	logger.Get().Info("Payment initiated",
		zap.String("user_id", input.UserID),
		zap.String("gateway_order_id", gwOrder.ID),
		zap.Int64("amount", int64(total.Total)),
	)

	return gwOrder, nil
}

// ConfirmPayment authenticates a completion callback and settles the pinned
// draft into a prepaid order. Amounts are read exclusively from the pin.
func (s *CheckoutServiceImpl) ConfirmPayment(ctx context.Context, conf domain.PaymentConfirmation) (*ordersdomain.Order, error) {
	if !s.gateway.VerifySignature(conf.GatewayOrderID, conf.GatewayPaymentID, conf.Signature) {
		logger.Get().Warn("Payment signature rejected",
			zap.String("gateway_order_id", conf.GatewayOrderID),
			zap.String("gateway_payment_id", conf.GatewayPaymentID),
		)
		return nil, ErrVerificationFailed
	}

	attempt, err := s.attempts.Find(ctx, conf.GatewayOrderID)
	if err != nil {
		return nil, err
	}
	if attempt == nil {
		return nil, ErrAttemptNotFound
	}

	order, err := s.orders.Create(ctx, ordersdomain.NewOrderInput{
		UserID:          attempt.UserID,
		Items:           attempt.Items,
		Total:           attempt.Total,
		ShippingAddress: attempt.ShippingAddress,
		PaymentMethod:   ordersdomain.PaymentMethodPrepaid,
		CouponCode:      attempt.CouponCode,
	})
	if err != nil {
		return nil, err
	}

	s.clearCart(ctx, attempt.UserID, order.ID)

	if err := s.attempts.Delete(ctx, conf.GatewayOrderID); err != nil {
		logger.Get().Warn("Failed to drop settled payment attempt",
			zap.String("gateway_order_id", conf.GatewayOrderID),
			zap.Error(err),
		)
	}

	return order, nil
}

// price reprices the requested lines from the catalog and applies the
// coupon when one is given.
func (s *CheckoutServiceImpl) price(ctx context.Context, input domain.CheckoutInput) ([]pricing.LineItem, pricing.OrderTotal, error) {
	items, err := s.reprice(ctx, input.Items)
	if err != nil {
		return nil, pricing.OrderTotal{}, err
	}

	subtotal := pricing.Subtotal(items)

	var discount pricing.Money
	if input.CouponCode != "" {
		ids := make([]string, 0, len(input.Items))
		for _, it := range input.Items {
			ids = append(ids, it.ProductID)
		}

		coupon, err := s.coupons.Validate(ctx, input.CouponCode, subtotal, ids)
		if err != nil {
			return nil, pricing.OrderTotal{}, err
		}
		discount = coupon.DiscountOn(subtotal)
	}

	total := pricing.OrderTotal{
		Subtotal: subtotal,
		Discount: discount,
		Total:    pricing.Total(subtotal, discount),
	}

	return items, total, nil
}

// reprice exchanges the requested lines for catalog-priced ones. Quantity
// comes from the request; unit price and name come from the catalog.
func (s *CheckoutServiceImpl) reprice(ctx context.Context, requested []domain.CheckoutItem) ([]pricing.LineItem, error) {
	if len(requested) == 0 {
		return nil, ErrEmptyCheckout
	}

	ids := make([]string, 0, len(requested))
	for _, it := range requested {
		if it.Quantity <= 0 {
			return nil, fmt.Errorf("%w: product %s", ErrInvalidQuantity, it.ProductID)
		}
		ids = append(ids, it.ProductID)
	}

	products, err := s.catalog.FindByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load products: %w", err)
	}

	byID := make(map[string]int, len(products))
	for i, p := range products {
		byID[p.ID] = i
	}

	items := make([]pricing.LineItem, 0, len(requested))
	for _, it := range requested {
		idx, ok := byID[it.ProductID]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownProduct, it.ProductID)
		}

		p := products[idx]
		items = append(items, pricing.LineItem{
			ProductID:    p.ID,
			Name:         p.Name,
			UnitPrice:    p.UnitPrice,
			Quantity:     it.Quantity,
			VariantLabel: it.VariantLabel,
		})
	}

	return items, nil
}

// clearCart drops the user's cart snapshot after an order exists. Failure
// is not fatal; the order is already settled.
func (s *CheckoutServiceImpl) clearCart(ctx context.Context, userID, orderID string) {
	if err := s.carts.ClearCart(ctx, userID); err != nil {
		logger.Get().Warn("Failed to clear cart after settlement",
			zap.String("user_id", userID),
			zap.String("order_id", orderID),
			zap.Error(err),
		)
	}
}
