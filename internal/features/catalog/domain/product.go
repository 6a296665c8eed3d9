package domain

import (
	pricing "settlement-engine/internal/features/pricing/domain"
)

// Product is the slice of a catalog entry the settlement flow needs:
// the authoritative price plus the scoping hierarchy for coupons.
type Product struct {
	// ID is the catalog identifier.
	ID string `json:"id" bson:"_id"`
	// Name is the product display name.
	Name string `json:"name" bson:"name"`
	// UnitPrice is the current per-unit price in minor units.
	UnitPrice pricing.Money `json:"unit_price" bson:"unit_price"`
	// CategoryID is the product's category, used for coupon scoping.
	CategoryID string `json:"category_id" bson:"category_id"`
	// SubCategoryID is the product's subcategory, used for coupon scoping.
	SubCategoryID string `json:"sub_category_id" bson:"sub_category_id"`
}
