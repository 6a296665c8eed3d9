package domain

import (
	"time"

	catalog "settlement-engine/internal/features/catalog/domain"
	pricing "settlement-engine/internal/features/pricing/domain"
)

// CouponStatus represents whether a coupon can currently be redeemed.
type CouponStatus string

const (
	CouponStatusActive   CouponStatus = "active"
	CouponStatusInactive CouponStatus = "inactive"
)

// ScopeKind names the catalog subset a coupon is restricted to.
type ScopeKind string

const (
	// ScopeNone means the coupon applies to the whole catalog.
	ScopeNone ScopeKind = "none"
	// ScopeCategory restricts the coupon to one category.
	ScopeCategory ScopeKind = "category"
	// ScopeSubCategory restricts the coupon to one subcategory.
	ScopeSubCategory ScopeKind = "subcategory"
	// ScopeProduct restricts the coupon to one product.
	ScopeProduct ScopeKind = "product"
)

// CouponScope is a tagged reference to the catalog subset a coupon covers.
// It is resolved once at validation time, never inspected by shape.
type CouponScope struct {
	// Kind selects which catalog dimension the restriction targets.
	Kind ScopeKind `json:"kind" bson:"kind"`
	// ID is the category, subcategory or product id. Empty for ScopeNone.
	ID string `json:"id,omitempty" bson:"id,omitempty"`
}

// Unrestricted reports whether the scope covers the whole catalog.
func (s CouponScope) Unrestricted() bool {
	return s.Kind == "" || s.Kind == ScopeNone
}

// Matches reports whether a product falls inside the scope.
func (s CouponScope) Matches(p catalog.Product) bool {
	switch s.Kind {
	case ScopeCategory:
		return p.CategoryID == s.ID
	case ScopeSubCategory:
		return p.SubCategoryID == s.ID
	case ScopeProduct:
		return p.ID == s.ID
	default:
		return true
	}
}

// Coupon is a discount voucher. Read-only from the settlement flow's
// perspective; it is created and edited by the admin console.
type Coupon struct {
	// Code is the unique redemption code customers type in.
	Code string `json:"code" bson:"_id"`
	// DiscountType selects fixed or percentage application.
	DiscountType pricing.DiscountKind `json:"discount_type" bson:"discount_type"`
	// DiscountValue is an absolute minor-unit amount for fixed coupons
	// or a 0-100 percentage for percentage coupons.
	DiscountValue float64 `json:"discount_value" bson:"discount_value"`
	// MinimumPurchase is the smallest subtotal the coupon applies to.
	MinimumPurchase pricing.Money `json:"minimum_purchase" bson:"minimum_purchase"`
	// EndDate is the instant the coupon expires.
	EndDate time.Time `json:"end_date" bson:"end_date"`
	// Status gates redemption independently of the end date.
	Status CouponStatus `json:"status" bson:"status"`
	// Scope restricts the coupon to a catalog subset, if set.
	Scope CouponScope `json:"scope" bson:"scope"`
}

// DiscountOn computes the discount this coupon yields on a subtotal.
func (c *Coupon) DiscountOn(subtotal pricing.Money) pricing.Money {
	return pricing.Discount(subtotal, c.DiscountType, c.DiscountValue)
}
