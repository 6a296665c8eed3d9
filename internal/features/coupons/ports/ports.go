package ports

import (
	"context"

	"settlement-engine/internal/features/coupons/domain"
	pricing "settlement-engine/internal/features/pricing/domain"
)

// CouponValidator is the primary port for coupon checks. The server always
// re-runs validation at settlement time; client-side state is advisory only.
type CouponValidator interface {
	// Validate returns the coupon matching code if every eligibility check
	// passes, or one of the validator's rejection sentinels.
	Validate(ctx context.Context, code string, purchase pricing.Money, productIDs []string) (*domain.Coupon, error)
}

// CouponRepository is the secondary port for coupon storage.
type CouponRepository interface {
	// FindByCode returns the coupon with the given code, or (nil, nil)
	// when no coupon matches.
	FindByCode(ctx context.Context, code string) (*domain.Coupon, error)
}
