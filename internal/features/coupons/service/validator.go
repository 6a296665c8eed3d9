package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	catalogports "settlement-engine/internal/features/catalog/ports"
	"settlement-engine/internal/features/coupons/domain"
	"settlement-engine/internal/features/coupons/ports"
	pricing "settlement-engine/internal/features/pricing/domain"
)

var (
	// ErrCouponNotFound is returned when no coupon matches the code.
	ErrCouponNotFound = errors.New("coupon not found")
	// ErrCouponInactive is returned when the coupon is disabled.
	ErrCouponInactive = errors.New("coupon is inactive")
	// ErrCouponExpired is returned when the coupon's end date has passed.
	ErrCouponExpired = errors.New("coupon has expired")
	// ErrBelowMinimum is returned when the purchase amount is below the coupon's minimum.
	ErrBelowMinimum = errors.New("purchase amount below coupon minimum")
	// ErrCouponNotApplicable is returned when no cart product falls inside the coupon's scope.
	ErrCouponNotApplicable = errors.New("coupon not applicable to cart products")
)

// Validator re-derives coupon eligibility server-side. Checks run in a
// fixed order and the first failure wins.
type Validator struct {
	repo    ports.CouponRepository
	catalog catalogports.ProductCatalog
	// now is injectable for expiry tests.
	now func() time.Time
}

// NewValidator creates a new Validator.
func NewValidator(repo ports.CouponRepository, catalog catalogports.ProductCatalog) *Validator {
	return &Validator{
		repo:    repo,
		catalog: catalog,
		now:     time.Now,
	}
}

// Validate returns the coupon for code if it can be applied to a purchase
// of the given amount over the given products.
func (v *Validator) Validate(ctx context.Context, code string, purchase pricing.Money, productIDs []string) (*domain.Coupon, error) {
	coupon, err := v.repo.FindByCode(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to look up coupon: %w", err)
	}
	if coupon == nil {
		return nil, ErrCouponNotFound
	}

	if coupon.Status != domain.CouponStatusActive {
		return nil, ErrCouponInactive
	}

	if !coupon.EndDate.After(v.now()) {
		return nil, ErrCouponExpired
	}

	if purchase < coupon.MinimumPurchase {
		return nil, ErrBelowMinimum
	}

	if !coupon.Scope.Unrestricted() {
		products, err := v.catalog.FindByIDs(ctx, productIDs)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve coupon scope: %w", err)
		}

		matched := false
		for _, p := range products {
			if coupon.Scope.Matches(p) {
				matched = true
				break
			}
		}
		if !matched {
			return nil, ErrCouponNotApplicable
		}
	}

	return coupon, nil
}
