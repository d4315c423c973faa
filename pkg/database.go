package pkg

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/openelearn/platform-service/internal/config"
)

// InitDatabase builds the MongoDB client for the configured deployment.
// An unset DATABASE_URL is not an error: the caller receives a nil
// client and the service runs in degraded mode.
func InitDatabase(cfg *config.Config) (*mongo.Client, error) {
	if cfg.DatabaseURL == "" {
		return nil, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	clientOptions := options.Client().
		ApplyURI(cfg.DatabaseURL).
		SetServerSelectionTimeout(5 * time.Second)

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	return client, nil
}
