package handler

import (
	"errors"
	"net/http"

	"settlement-engine/internal/core/logger"
	"settlement-engine/internal/features/orders/domain"
	"settlement-engine/internal/features/orders/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// OrderHandler handles HTTP requests related to orders.
type OrderHandler struct {
	// service is the OrderService instance.
	service *service.OrderService
}

// NewOrderHandler creates a new instance of OrderHandler.
func NewOrderHandler(s *service.OrderService) *OrderHandler {
	return &OrderHandler{
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

// UpdateStatusRequest represents the request body for a status update.
type UpdateStatusRequest struct {
	// OrderStatus is the target lifecycle state.
	OrderStatus domain.OrderStatus `json:"order_status"`
	// TrackingURL is required when moving to shipped.
	TrackingURL string `json:"tracking_url,omitempty"`
}

func rayID(c *fiber.Ctx) string {
	id, ok := c.Locals("requestid").(string)
	if !ok {
		return "unknown"
	}
	return id
}

// CreateOrder handles POST /orders.
// @Summary Create an order
// @Description Persists an order. The checkout flow is the normal creator; this endpoint serves imports and admin tooling and applies the same validation.
// @Tags Orders
// @Accept json
// @Produce json
// @Param order body domain.NewOrderInput true "Order fields"
// @Success 201 {object} domain.Order
// @Failure 400 {object} ErrorResponse
// @Router /orders [post]
func (h *OrderHandler) CreateOrder(c *fiber.Ctx) error {
	var input domain.NewOrderInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Message: "Invalid request body",
			RayID:   rayID(c),
		})
	}

	order, err := h.service.Create(c.Context(), input)
	if err != nil {
		if errors.Is(err, service.ErrInvalidOrder) {
			return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
				Message: err.Error(),
				RayID:   rayID(c),
			})
		}
		logger.Get().Error("Failed to create order", zap.String("ray_id", rayID(c)), zap.Error(err))
		return c.Status(http.StatusInternalServerError).JSON(ErrorResponse{
			Message: "Internal Server Error",
			RayID:   rayID(c),
		})
	}

	return c.Status(http.StatusCreated).JSON(order)
}

// ListOrders handles GET /orders.
// @Summary List orders
// @Description Lists orders newest first. Pass user_id to restrict to one customer.
// @Tags Orders
// @Produce json
// @Param user_id query string false "Restrict to a user"
// @Success 200 {array} domain.Order
// @Router /orders [get]
func (h *OrderHandler) ListOrders(c *fiber.Ctx) error {
	orders, err := h.service.List(c.Context(), c.Query("user_id"))
	if err != nil {
		logger.Get().Error("Failed to list orders", zap.String("ray_id", rayID(c)), zap.Error(err))
		return c.Status(http.StatusInternalServerError).JSON(ErrorResponse{
			Message: "Internal Server Error",
			RayID:   rayID(c),
		})
	}

	if orders == nil {
		orders = []domain.Order{}
	}
	return c.Status(http.StatusOK).JSON(orders)
}

// GetOrder handles GET /orders/:id.
// @Summary Get an order by id
// @Tags Orders
// @Produce json
// @Param id path string true "Order ID"
// @Success 200 {object} domain.Order
// @Failure 404 {object} ErrorResponse
// @Router /orders/{id} [get]
func (h *OrderHandler) GetOrder(c *fiber.Ctx) error {
	orderID := c.Params("id")
	if orderID == "" {
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Message: "Order ID is required",
			RayID:   rayID(c),
		})
	}

	order, err := h.service.Get(c.Context(), orderID)
	if err != nil {
		if errors.Is(err, service.ErrOrderNotFound) {
			return c.Status(http.StatusNotFound).JSON(ErrorResponse{
				Message: "Order not found",
				RayID:   rayID(c),
			})
		}
		logger.Get().Error("Failed to fetch order",
			zap.String("order_id", orderID),
			zap.String("ray_id", rayID(c)),
			zap.Error(err),
		)
		return c.Status(http.StatusInternalServerError).JSON(ErrorResponse{
			Message: "Internal Server Error",
			RayID:   rayID(c),
		})
	}

	return c.Status(http.StatusOK).JSON(order)
}

// UpdateStatus handles PUT /orders/:id.
// @Summary Update an order's status
// @Description Moves an order along the lifecycle. Only forward steps and cancellation of non-terminal orders are allowed.
// @Tags Orders
// @Accept json
// @Produce json
// @Param id path string true "Order ID"
// @Param request body UpdateStatusRequest true "Target status"
// @Success 200 {object} domain.Order
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /orders/{id} [put]
func (h *OrderHandler) UpdateStatus(c *fiber.Ctx) error {
	orderID := c.Params("id")

	var req UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Message: "Invalid request body",
			RayID:   rayID(c),
		})
	}

	if !req.OrderStatus.Valid() {
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Message: "Unknown order status",
			RayID:   rayID(c),
		})
	}

	order, err := h.service.UpdateStatus(c.Context(), orderID, req.OrderStatus, req.TrackingURL)
	if err != nil {
		status := http.StatusInternalServerError
		msg := "Internal Server Error"

		switch {
		case errors.Is(err, service.ErrOrderNotFound):
			status = http.StatusNotFound
			msg = "Order not found"
		case errors.Is(err, service.ErrInvalidTransition):
			status = http.StatusConflict
			msg = err.Error()
		case errors.Is(err, service.ErrTrackingURLRequired):
			status = http.StatusConflict
			msg = "Tracking URL is required when marking an order shipped"
		default:
			logger.Get().Error("Failed to update order status",
				zap.String("order_id", orderID),
				zap.String("ray_id", rayID(c)),
				zap.Error(err),
			)
		}

		return c.Status(status).JSON(ErrorResponse{
			Message: msg,
			RayID:   rayID(c),
		})
	}

	return c.Status(http.StatusOK).JSON(order)
}
