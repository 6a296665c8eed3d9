package adapters

import (
	"context"
	"fmt"

	"settlement-engine/internal/features/catalog/domain"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

const productsCollection = "products"

// MongoCatalog implements ports.ProductCatalog against the products collection.
type MongoCatalog struct {
	collection *mongo.Collection
}

// NewMongoCatalog creates a new MongoCatalog.
func NewMongoCatalog(db *mongo.Database) *MongoCatalog {
	return &MongoCatalog{
		collection: db.Collection(productsCollection),
	}
}

// FindByIDs returns the products matching the given ids.
func (c *MongoCatalog) FindByIDs(ctx context.Context, ids []string) ([]domain.Product, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	cursor, err := c.collection.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer cursor.Close(ctx)

	var products []domain.Product
	if err := cursor.All(ctx, &products); err != nil {
		return nil, fmt.Errorf("failed to decode products: %w", err)
	}

	return products, nil
}
