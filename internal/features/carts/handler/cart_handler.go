package handler

import (
	"errors"
	"net/http"

	"settlement-engine/internal/core/logger"
	"settlement-engine/internal/features/carts/ports"
	"settlement-engine/internal/features/carts/service"
	pricing "settlement-engine/internal/features/pricing/domain"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// userIDHeader carries the authenticated user id, set by the upstream
// auth layer. Session mechanics are out of scope here.
const userIDHeader = "X-User-ID"

// CartHandler handles HTTP requests for cart snapshots.
type CartHandler struct {
	service ports.CartService
}

// NewCartHandler creates a new CartHandler.
func NewCartHandler(service ports.CartService) *CartHandler {
	return &CartHandler{
		service: service,
	}
}

// SetCartRequest represents the request body for replacing a cart.
type SetCartRequest struct {
	Items []pricing.LineItem `json:"items"`
}

// SetCart handles PUT /cart.
// @Summary Replace the cart snapshot
// @Description Stores the user's current cart server-side.
// @Tags Cart
// @Accept json
// @Produce json
// @Param cart body SetCartRequest true "Cart items"
// @Success 200 {object} domain.Cart
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /cart [put]
func (h *CartHandler) SetCart(c *fiber.Ctx) error {
	userID := c.Get(userIDHeader)
	if userID == "" {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{
			"error": "User id header is required",
		})
	}

	var req SetCartRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	cart, err := h.service.SetCart(c.Context(), userID, req.Items)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCartItem) {
			return c.Status(http.StatusBadRequest).JSON(fiber.Map{
				"error": "Cart items need a product id and a positive quantity",
			})
		}
		logger.Get().Error("Failed to set cart", zap.String("user_id", userID), zap.Error(err))
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{
			"error": "Internal server error",
		})
	}

	return c.Status(http.StatusOK).JSON(cart)
}

// GetCart handles GET /cart.
// @Summary Get the cart snapshot
// @Tags Cart
// @Produce json
// @Success 200 {object} domain.Cart
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /cart [get]
func (h *CartHandler) GetCart(c *fiber.Ctx) error {
	userID := c.Get(userIDHeader)
	if userID == "" {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{
			"error": "User id header is required",
		})
	}

	cart, err := h.service.GetCart(c.Context(), userID)
	if err != nil {
		logger.Get().Error("Failed to get cart", zap.String("user_id", userID), zap.Error(err))
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{
			"error": "Internal server error",
		})
	}

	if cart == nil {
		return c.Status(http.StatusNotFound).JSON(fiber.Map{
			"error": "No cart found",
		})
	}

	return c.Status(http.StatusOK).JSON(cart)
}

// ClearCart handles DELETE /cart.
// @Summary Clear the cart snapshot
// @Tags Cart
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /cart [delete]
func (h *CartHandler) ClearCart(c *fiber.Ctx) error {
	userID := c.Get(userIDHeader)
	if userID == "" {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{
			"error": "User id header is required",
		})
	}

	if err := h.service.ClearCart(c.Context(), userID); err != nil {
		logger.Get().Error("Failed to clear cart", zap.String("user_id", userID), zap.Error(err))
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{
			"error": "Internal server error",
		})
	}

	return c.Status(http.StatusOK).JSON(fiber.Map{
		"message": "Cart cleared",
	})
}
