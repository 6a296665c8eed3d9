package domain

import "math"

// Money is an amount in the currency's minor unit (e.g., paise).
// Keeping money integral end-to-end avoids rounding drift between the
// client, the gateway and the persisted order.
type Money int64

// DiscountKind distinguishes how a coupon's value is applied.
type DiscountKind string

const (
	// DiscountFixed subtracts an absolute amount, capped at the subtotal.
	DiscountFixed DiscountKind = "fixed"
	// DiscountPercentage subtracts a percentage (0-100) of the subtotal.
	DiscountPercentage DiscountKind = "percentage"
)

// LineItem is a single priced cart line.
type LineItem struct {
	// ProductID is the catalog identifier of the product.
	ProductID string `json:"product_id" bson:"product_id"`
	// Name is the product display name at purchase time.
	Name string `json:"name" bson:"name"`
	// UnitPrice is the authoritative per-unit price in minor units.
	UnitPrice Money `json:"unit_price" bson:"unit_price"`
	// Quantity is the number of units purchased. Always positive.
	Quantity int `json:"quantity" bson:"quantity"`
	// VariantLabel names the chosen variant (size, color), if any.
	VariantLabel string `json:"variant_label,omitempty" bson:"variant_label,omitempty"`
}

// OrderTotal is the reconciled money breakdown of an order.
// Invariants: Total = Subtotal - Discount and 0 <= Discount <= Subtotal.
type OrderTotal struct {
	Subtotal Money `json:"subtotal" bson:"subtotal"`
	Discount Money `json:"discount" bson:"discount"`
	Total    Money `json:"total" bson:"total"`
}

// Subtotal sums unit price times quantity over all line items.
func Subtotal(items []LineItem) Money {
	var sum Money
	for _, item := range items {
		sum += item.UnitPrice * Money(item.Quantity)
	}
	return sum
}

// Discount computes the discount a coupon value yields on a subtotal.
// Fixed discounts are capped at the subtotal so totals never go negative.
// Percentage discounts round half-up to the minor unit.
func Discount(subtotal Money, kind DiscountKind, value float64) Money {
	if value <= 0 || subtotal <= 0 {
		return 0
	}

	var discount Money
	switch kind {
	case DiscountFixed:
		discount = Money(value)
	case DiscountPercentage:
		discount = Money(math.Floor(float64(subtotal)*value/100 + 0.5))
	default:
		return 0
	}

	if discount > subtotal {
		return subtotal
	}
	return discount
}

// Total computes the payable amount from a subtotal and discount.
func Total(subtotal, discount Money) Money {
	return subtotal - discount
}

// Compute builds the full OrderTotal for a set of line items and an
// optional coupon value. Pass a zero value and any kind for no coupon.
func Compute(items []LineItem, kind DiscountKind, value float64) OrderTotal {
	subtotal := Subtotal(items)
	discount := Discount(subtotal, kind, value)
	return OrderTotal{
		Subtotal: subtotal,
		Discount: discount,
		Total:    Total(subtotal, discount),
	}
}

// Reconciles reports whether the breakdown satisfies the money invariants.
func (t OrderTotal) Reconciles() bool {
	return t.Discount >= 0 && t.Discount <= t.Subtotal && t.Total == t.Subtotal-t.Discount
}
