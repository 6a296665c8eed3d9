package domain

import (
	"time"

	pricing "settlement-engine/internal/features/pricing/domain"
)

// Cart is the server-held snapshot of a user's in-progress cart.
// Prices inside it are advisory display hints; checkout reprices every
// line from the catalog before any money is recorded.
type Cart struct {
	// UserID owns the cart. One cart per user.
	UserID string `json:"user_id"`
	// Items are the cart lines.
	Items []pricing.LineItem `json:"items"`
	// UpdatedAt is when the snapshot was last written.
	UpdatedAt time.Time `json:"updated_at"`
}
