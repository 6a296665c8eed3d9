package adapters

import (
	"context"
	"errors"
	"fmt"

	"settlement-engine/internal/features/coupons/domain"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

const couponsCollection = "coupons"

// MongoCouponRepository implements ports.CouponRepository against the
// coupons collection. The settlement flow only ever reads coupons.
type MongoCouponRepository struct {
	collection *mongo.Collection
}

// NewMongoCouponRepository creates a new MongoCouponRepository.
func NewMongoCouponRepository(db *mongo.Database) *MongoCouponRepository {
	return &MongoCouponRepository{
		collection: db.Collection(couponsCollection),
	}
}

// FindByCode returns the coupon with the given code, or (nil, nil) when absent.
func (r *MongoCouponRepository) FindByCode(ctx context.Context, code string) (*domain.Coupon, error) {
	var coupon domain.Coupon
	err := r.collection.FindOne(ctx, bson.M{"_id": code}).Decode(&coupon)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find coupon %s: %w", code, err)
	}
	return &coupon, nil
}
