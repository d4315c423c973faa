package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/openelearn/platform-service/internal/repositories"
)

type SystemMongoDB struct {
	db *mongo.Database
}

func NewSystemMongoDB(db *mongo.Database) repositories.SystemRepository {
	return &SystemMongoDB{db: db}
}

// ListCollections returns the collection names of the connected database
func (s *SystemMongoDB) ListCollections(ctx context.Context) ([]string, error) {
	if s.db == nil {
		return nil, repositories.ErrUnavailable
	}

	names, err := s.db.ListCollectionNames(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to list collections: %w", err)
	}

	return names, nil
}

// DatabaseName returns the connected database name, empty when degraded
func (s *SystemMongoDB) DatabaseName() string {
	if s.db == nil {
		return ""
	}
	return s.db.Name()
}
