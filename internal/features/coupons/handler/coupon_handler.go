package handler

import (
	"errors"
	"net/http"

	"settlement-engine/internal/core/logger"
	"settlement-engine/internal/features/coupons/domain"
	"settlement-engine/internal/features/coupons/ports"
	"settlement-engine/internal/features/coupons/service"
	pricing "settlement-engine/internal/features/pricing/domain"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// CouponHandler handles HTTP requests for coupon checks.
type CouponHandler struct {
	validator ports.CouponValidator
}

// NewCouponHandler creates a new CouponHandler.
func NewCouponHandler(validator ports.CouponValidator) *CouponHandler {
	return &CouponHandler{
		validator: validator,
	}
}

// ErrorResponse represents the structure of an error response.
type ErrorResponse struct {
	// Message is the error description.
	Message string `json:"message"`
	// RayID is the unique request identifier for debugging.
	RayID string `json:"ray_id"`
}

// CheckCouponRequest represents the request body for a coupon check.
type CheckCouponRequest struct {
	// Code is the coupon code to validate.
	Code string `json:"code"`
	// PurchaseAmount is the cart subtotal in minor units.
	PurchaseAmount pricing.Money `json:"purchase_amount"`
	// ProductIDs are the cart's product ids, used for scope checks.
	ProductIDs []string `json:"product_ids"`
}

// CheckCouponResponse carries the validated coupon and the discount it
// yields on the submitted purchase amount.
type CheckCouponResponse struct {
	Coupon   *domain.Coupon `json:"coupon"`
	Discount pricing.Money  `json:"discount"`
}

// CheckCoupon handles POST /coupons/check.
// @Summary Validate a coupon
// @Description Re-derives coupon eligibility for a purchase amount and product set.
// @Tags Coupons
// @Accept json
// @Produce json
// @Param request body CheckCouponRequest true "Coupon check request"
// @Success 200 {object} CheckCouponResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Router /coupons/check [post]
func (h *CouponHandler) CheckCoupon(c *fiber.Ctx) error {
	rayID, ok := c.Locals("requestid").(string)
	if !ok {
		rayID = "unknown"
	}

	var req CheckCouponRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Message: "Invalid request body",
			RayID:   rayID,
		})
	}

	if req.Code == "" {
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Message: "Coupon code is required",
			RayID:   rayID,
		})
	}

	coupon, err := h.validator.Validate(c.Context(), req.Code, req.PurchaseAmount, req.ProductIDs)
	if err != nil {
		status := http.StatusInternalServerError
		msg := "Internal Server Error"

		switch {
		case errors.Is(err, service.ErrCouponNotFound):
			status = http.StatusNotFound
			msg = "Coupon not found"
		case errors.Is(err, service.ErrCouponInactive):
			status = http.StatusUnprocessableEntity
			msg = "Coupon is inactive"
		case errors.Is(err, service.ErrCouponExpired):
			status = http.StatusUnprocessableEntity
			msg = "Coupon has expired"
		case errors.Is(err, service.ErrBelowMinimum):
			status = http.StatusUnprocessableEntity
			msg = "Purchase amount is below the coupon minimum"
		case errors.Is(err, service.ErrCouponNotApplicable):
			status = http.StatusUnprocessableEntity
			msg = "Coupon does not apply to these products"
		default:
			logger.Get().Error("Coupon check failed",
				zap.String("code", req.Code),
				zap.String("ray_id", rayID),
				zap.Error(err),
			)
		}

		return c.Status(status).JSON(ErrorResponse{
			Message: msg,
			RayID:   rayID,
		})
	}

	return c.Status(http.StatusOK).JSON(CheckCouponResponse{
		Coupon:   coupon,
		Discount: coupon.DiscountOn(req.PurchaseAmount),
	})
}
