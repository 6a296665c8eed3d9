package ports

import (
	"context"

	"settlement-engine/internal/features/catalog/domain"
)

// ProductCatalog is the read-only secondary port for product lookups.
// The settlement flow never writes to the catalog.
type ProductCatalog interface {
	// FindByIDs returns the products matching the given ids.
	// Ids with no matching product are simply absent from the result.
	FindByIDs(ctx context.Context, ids []string) ([]domain.Product, error)
}
