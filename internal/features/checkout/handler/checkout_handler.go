package handler

import (
	"errors"
	"net/http"

	"settlement-engine/internal/core/logger"
	"settlement-engine/internal/features/checkout/domain"
	"settlement-engine/internal/features/checkout/ports"
	"settlement-engine/internal/features/checkout/service"
	couponservice "settlement-engine/internal/features/coupons/service"
	orderservice "settlement-engine/internal/features/orders/service"
	paymentsdomain "settlement-engine/internal/features/payments/domain"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const userIDHeader = "X-User-ID"

// CheckoutHandler handles HTTP requests for the settlement flow.
type CheckoutHandler struct {
	// service is the CheckoutService instance.
	service ports.CheckoutService
}

// NewCheckoutHandler creates a new instance of CheckoutHandler.
func NewCheckoutHandler(s ports.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{
		service: s,
	}
}

// ErrorResponse represents the structure of an error response.
type ErrorResponse struct {
	// Message is the error description.
	Message string `json:"message"`
	// RayID is the unique request identifier for debugging.
	RayID string `json:"ray_id"`
}

func rayID(c *fiber.Ctx) string {
	id, ok := c.Locals("requestid").(string)
	if !ok {
		return "unknown"
	}
	return id
}

// PlaceOrder handles POST /checkout.
// @Summary Place a cash-on-delivery order
// @Description Reprices the cart from the catalog, revalidates the coupon and settles the order in one step.
// @Tags Checkout
// @Accept json
// @Produce json
// @Param X-User-ID header string true "User ID"
// @Param checkout body domain.CheckoutInput true "Checkout fields"
// @Success 201 {object} ordersdomain.Order
// @Failure 400 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Router /checkout [post]
func (h *CheckoutHandler) PlaceOrder(c *fiber.Ctx) error {
	input, ok := h.parseInput(c)
	if !ok {
		return nil
	}

	order, err := h.service.PlaceOrder(c.Context(), *input)
	if err != nil {
		return h.checkoutError(c, err, "Failed to place order")
	}

	return c.Status(http.StatusCreated).JSON(order)
}

// InitiatePayment handles POST /checkout/payment.
// @Summary Start a prepaid checkout
// @Description Reprices the cart, opens a gateway order for the total and returns what the storefront widget needs. No order exists yet.
// @Tags Checkout
// @Accept json
// @Produce json
// @Param X-User-ID header string true "User ID"
// @Param checkout body domain.CheckoutInput true "Checkout fields"
// @Success 200 {object} paymentsdomain.GatewayOrder
// @Failure 400 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Router /checkout/payment [post]
func (h *CheckoutHandler) InitiatePayment(c *fiber.Ctx) error {
	input, ok := h.parseInput(c)
	if !ok {
		return nil
	}

	gwOrder, err := h.service.InitiatePayment(c.Context(), *input)
	if err != nil {
		return h.checkoutError(c, err, "Failed to initiate payment")
	}

	return c.Status(http.StatusOK).JSON(gwOrder)
}

// ConfirmPayment handles POST /checkout/payment/confirm.
// @Summary Confirm a prepaid checkout
// @Description Verifies the gateway callback signature and settles the pinned draft into an order.
// @Tags Checkout
// @Accept json
// @Produce json
// @Param confirmation body domain.PaymentConfirmation true "Gateway callback fields"
// @Success 201 {object} ordersdomain.Order
// @Failure 400 {object} ErrorResponse
// @Failure 402 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /checkout/payment/confirm [post]
func (h *CheckoutHandler) ConfirmPayment(c *fiber.Ctx) error {
	var conf domain.PaymentConfirmation
	if err := c.BodyParser(&conf); err != nil {
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Message: "Invalid request body",
			RayID:   rayID(c),
		})
	}

	if conf.GatewayOrderID == "" || conf.GatewayPaymentID == "" || conf.Signature == "" {
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Message: "gateway_order_id, gateway_payment_id and signature are required",
			RayID:   rayID(c),
		})
	}

	order, err := h.service.ConfirmPayment(c.Context(), conf)
	if err != nil {
		return h.checkoutError(c, err, "Failed to confirm payment")
	}

	return c.Status(http.StatusCreated).JSON(order)
}

// parseInput reads the checkout body and stamps the authenticated user on
// it. On failure the error response has already been written.
func (h *CheckoutHandler) parseInput(c *fiber.Ctx) (*domain.CheckoutInput, bool) {
	userID := c.Get(userIDHeader)
	if userID == "" {
		c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Message: "X-User-ID header is required",
			RayID:   rayID(c),
		})
		return nil, false
	}

	var input domain.CheckoutInput
	if err := c.BodyParser(&input); err != nil {
		c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Message: "Invalid request body",
			RayID:   rayID(c),
		})
		return nil, false
	}
	input.UserID = userID

	return &input, true
}

// checkoutError maps settlement errors onto HTTP statuses.
func (h *CheckoutHandler) checkoutError(c *fiber.Ctx, err error, logMsg string) error {
	status := http.StatusInternalServerError
	msg := "Internal Server Error"

	switch {
	case errors.Is(err, service.ErrEmptyCheckout),
		errors.Is(err, service.ErrInvalidQuantity),
		errors.Is(err, service.ErrUnknownProduct),
		errors.Is(err, orderservice.ErrInvalidOrder):
		status = http.StatusBadRequest
		msg = err.Error()
	case errors.Is(err, couponservice.ErrCouponNotFound),
		errors.Is(err, service.ErrAttemptNotFound):
		status = http.StatusNotFound
		msg = err.Error()
	case errors.Is(err, couponservice.ErrCouponInactive),
		errors.Is(err, couponservice.ErrCouponExpired),
		errors.Is(err, couponservice.ErrBelowMinimum),
		errors.Is(err, couponservice.ErrCouponNotApplicable):
		status = http.StatusUnprocessableEntity
		msg = err.Error()
	case errors.Is(err, service.ErrVerificationFailed):
		status = http.StatusPaymentRequired
		msg = "Payment verification failed"
	case errors.Is(err, paymentsdomain.ErrGatewayUnavailable):
		status = http.StatusBadGateway
		msg = "Payment gateway unavailable"
	default:
		logger.Get().Error(logMsg, zap.String("ray_id", rayID(c)), zap.Error(err))
	}

	return c.Status(status).JSON(ErrorResponse{
		Message: msg,
		RayID:   rayID(c),
	})
}
