package database

import (
	"context"
	"fmt"
	"time"

	"settlement-engine/internal/core/config"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Mongo wraps the mongo client and the application database handle.
type Mongo struct {
	client *mongo.Client
	// DB is the database holding the orders, coupons and products collections.
	DB *mongo.Database
}

// Connect establishes a mongo connection and verifies it with a ping.
func Connect(ctx context.Context, cfg config.MongoConfig) (*Mongo, error) {
	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongo: %w", err)
	}

	if err := client.Ping(connectCtx, nil); err != nil {
		return nil, fmt.Errorf("mongo ping failed: %w", err)
	}

	return &Mongo{
		client: client,
		DB:     client.Database(cfg.Database),
	}, nil
}

// Close disconnects the underlying client.
func (m *Mongo) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}
