package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"settlement-engine/internal/features/checkout/domain"
	"settlement-engine/internal/features/checkout/service"
	couponservice "settlement-engine/internal/features/coupons/service"
	ordersdomain "settlement-engine/internal/features/orders/domain"
	paymentsdomain "settlement-engine/internal/features/payments/domain"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockCheckoutService struct {
	placeOrder      func(ctx context.Context, input domain.CheckoutInput) (*ordersdomain.Order, error)
	initiatePayment func(ctx context.Context, input domain.CheckoutInput) (*paymentsdomain.GatewayOrder, error)
	confirmPayment  func(ctx context.Context, conf domain.PaymentConfirmation) (*ordersdomain.Order, error)
}

func (m *mockCheckoutService) PlaceOrder(ctx context.Context, input domain.CheckoutInput) (*ordersdomain.Order, error) {
	return m.placeOrder(ctx, input)
}

func (m *mockCheckoutService) InitiatePayment(ctx context.Context, input domain.CheckoutInput) (*paymentsdomain.GatewayOrder, error) {
	return m.initiatePayment(ctx, input)
}

func (m *mockCheckoutService) ConfirmPayment(ctx context.Context, conf domain.PaymentConfirmation) (*ordersdomain.Order, error) {
	return m.confirmPayment(ctx, conf)
}

func newTestApp(svc *mockCheckoutService) *fiber.App {
	handler := NewCheckoutHandler(svc)

	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("requestid", "test-ray-id")
		return c.Next()
	})
	app.Post("/checkout", handler.PlaceOrder)
	app.Post("/checkout/payment", handler.InitiatePayment)
	app.Post("/checkout/payment/confirm", handler.ConfirmPayment)
	return app
}

func checkoutBody(t *testing.T) *bytes.Reader {
	t.Helper()
	body, err := json.Marshal(domain.CheckoutInput{
		Items: []domain.CheckoutItem{{ProductID: "p1", Quantity: 2}},
		ShippingAddress: ordersdomain.ShippingAddress{
			Phone: "5551234", Street: "123 Main St", City: "Springfield",
		},
	})
	require.NoError(t, err)
	return bytes.NewReader(body)
}

func TestCheckoutHandler_PlaceOrder(t *testing.T) {
	svc := &mockCheckoutService{
		placeOrder: func(_ context.Context, input domain.CheckoutInput) (*ordersdomain.Order, error) {
			assert.Equal(t, "user-1", input.UserID)
			return &ordersdomain.Order{ID: "order-1", Status: ordersdomain.OrderStatusPending}, nil
		},
	}
	app := newTestApp(svc)

	req := httptest.NewRequest("POST", "/checkout", checkoutBody(t))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-ID", "user-1")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var order ordersdomain.Order
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&order))
	assert.Equal(t, "order-1", order.ID)
}

func TestCheckoutHandler_PlaceOrder_MissingUser(t *testing.T) {
	app := newTestApp(&mockCheckoutService{})

	req := httptest.NewRequest("POST", "/checkout", checkoutBody(t))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestCheckoutHandler_PlaceOrder_ErrorMapping(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
	}{
		{"UnknownProduct", service.ErrUnknownProduct, fiber.StatusBadRequest},
		{"EmptyCheckout", service.ErrEmptyCheckout, fiber.StatusBadRequest},
		{"CouponNotFound", couponservice.ErrCouponNotFound, fiber.StatusNotFound},
		{"CouponExpired", couponservice.ErrCouponExpired, fiber.StatusUnprocessableEntity},
		{"BelowMinimum", couponservice.ErrBelowMinimum, fiber.StatusUnprocessableEntity},
		{"GatewayDown", paymentsdomain.ErrGatewayUnavailable, fiber.StatusBadGateway},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := &mockCheckoutService{
				placeOrder: func(context.Context, domain.CheckoutInput) (*ordersdomain.Order, error) {
					return nil, tc.err
				},
			}
			app := newTestApp(svc)

			req := httptest.NewRequest("POST", "/checkout", checkoutBody(t))
			req.Header.Set("Content-Type", "application/json")
			req.Header.Set("X-User-ID", "user-1")

			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tc.status, resp.StatusCode)

			var errResp ErrorResponse
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&errResp))
			assert.Equal(t, "test-ray-id", errResp.RayID)
		})
	}
}

func TestCheckoutHandler_InitiatePayment(t *testing.T) {
	svc := &mockCheckoutService{
		initiatePayment: func(_ context.Context, input domain.CheckoutInput) (*paymentsdomain.GatewayOrder, error) {
			return &paymentsdomain.GatewayOrder{
				ID: "gw_order_1", Amount: 200, Currency: "INR", KeyID: "key_test",
			}, nil
		},
	}
	app := newTestApp(svc)

	req := httptest.NewRequest("POST", "/checkout/payment", checkoutBody(t))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-ID", "user-1")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var gwOrder paymentsdomain.GatewayOrder
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&gwOrder))
	assert.Equal(t, "gw_order_1", gwOrder.ID)
	assert.Equal(t, "key_test", gwOrder.KeyID)
}

func TestCheckoutHandler_ConfirmPayment(t *testing.T) {
	confirmation := domain.PaymentConfirmation{
		GatewayOrderID:   "gw_order_1",
		GatewayPaymentID: "gw_pay_1",
		Signature:        "sig",
	}

	t.Run("Success", func(t *testing.T) {
		svc := &mockCheckoutService{
			confirmPayment: func(_ context.Context, conf domain.PaymentConfirmation) (*ordersdomain.Order, error) {
				assert.Equal(t, confirmation, conf)
				return &ordersdomain.Order{ID: "order-1"}, nil
			},
		}
		app := newTestApp(svc)

		body, _ := json.Marshal(confirmation)
		req := httptest.NewRequest("POST", "/checkout/payment/confirm", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
	})

	t.Run("MissingFields", func(t *testing.T) {
		app := newTestApp(&mockCheckoutService{})

		body, _ := json.Marshal(domain.PaymentConfirmation{GatewayOrderID: "gw_order_1"})
		req := httptest.NewRequest("POST", "/checkout/payment/confirm", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	})

	t.Run("BadSignature", func(t *testing.T) {
		svc := &mockCheckoutService{
			confirmPayment: func(context.Context, domain.PaymentConfirmation) (*ordersdomain.Order, error) {
				return nil, service.ErrVerificationFailed
			},
		}
		app := newTestApp(svc)

		body, _ := json.Marshal(confirmation)
		req := httptest.NewRequest("POST", "/checkout/payment/confirm", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusPaymentRequired, resp.StatusCode)
	})

	t.Run("ExpiredAttempt", func(t *testing.T) {
		svc := &mockCheckoutService{
			confirmPayment: func(context.Context, domain.PaymentConfirmation) (*ordersdomain.Order, error) {
				return nil, service.ErrAttemptNotFound
			},
		}
		app := newTestApp(svc)

		body, _ := json.Marshal(confirmation)
		req := httptest.NewRequest("POST", "/checkout/payment/confirm", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	})
}
