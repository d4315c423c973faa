package mongodb

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/openelearn/platform-service/internal/cache"
	"github.com/openelearn/platform-service/internal/repositories"
)

// MongoRepository bundles the MongoDB-backed sub-repositories behind
// the aggregate Repository interface.
type MongoRepository struct {
	client       *mongo.Client
	database     *mongo.Database
	redisClient  *redis.Client
	cacheManager *cache.CacheManager

	user   repositories.UserRepository
	course repositories.CourseRepository
	system repositories.SystemRepository
}

// RepositoryConfig holds configuration for repository initialization.
// A nil Client yields a degraded repository whose operations return
// repositories.ErrUnavailable instead of touching the store.
type RepositoryConfig struct {
	Client       *mongo.Client
	DatabaseName string
	RedisClient  *redis.Client
}

// NewMongoRepository builds the aggregate with every sub-repository
// wired, including the cache layer when Redis is configured.
func NewMongoRepository(config RepositoryConfig) repositories.Repository {
	cacheManager := cache.NewCacheManager(config.RedisClient)

	repo := &MongoRepository{
		client:       config.Client,
		redisClient:  config.RedisClient,
		cacheManager: cacheManager,
	}

	if config.Client != nil {
		repo.database = config.Client.Database(config.DatabaseName)
	}

	repo.user = NewUserMongoDB(repo.database)
	repo.course = NewCourseMongoDB(repo.database, config.RedisClient)
	repo.system = NewSystemMongoDB(repo.database)

	return repo
}

func (r *MongoRepository) User() repositories.UserRepository {
	return r.user
}

func (r *MongoRepository) Course() repositories.CourseRepository {
	return r.course
}

func (r *MongoRepository) System() repositories.SystemRepository {
	return r.system
}

// Available reports whether a store client is connected
func (r *MongoRepository) Available() bool {
	return r.client != nil
}

// Ping verifies the store connection, and the cache connection when
// one is wired.
func (r *MongoRepository) Ping(ctx context.Context) error {
	if r.client == nil {
		return repositories.ErrUnavailable
	}

	if err := r.client.Ping(ctx, readpref.Primary()); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}

	if r.redisClient != nil {
		if err := r.cacheManager.HealthCheck(ctx); err != nil {
			return fmt.Errorf("cache ping failed: %w", err)
		}
	}

	return nil
}

// Close disconnects the store and the cache. Safe on a degraded
// repository.
func (r *MongoRepository) Close() error {
	if r.client != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := r.client.Disconnect(ctx); err != nil {
			return fmt.Errorf("failed to close database: %w", err)
		}
	}

	if r.redisClient != nil {
		if err := r.redisClient.Close(); err != nil {
			return fmt.Errorf("failed to close Redis: %w", err)
		}
	}

	return nil
}

// RepositoryManager owns the repository lifecycle for main.
type RepositoryManager struct {
	config RepositoryConfig
	repo   repositories.Repository
}

func NewRepositoryManager(config RepositoryConfig) repositories.RepositoryManager {
	return &RepositoryManager{
		config: config,
	}
}

// Initialize builds the repository and verifies connectivity. The
// repository is constructed before the connectivity checks, so a
// failed ping still leaves a repository behind; callers decide whether
// the returned error is fatal.
func (rm *RepositoryManager) Initialize() error {
	if rm.config.Client != nil && rm.config.DatabaseName == "" {
		return fmt.Errorf("database name is required")
	}

	rm.repo = NewMongoRepository(rm.config)

	if rm.config.Client == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rm.config.Client.Ping(ctx, readpref.Primary()); err != nil {
		return fmt.Errorf("database connection failed: %w", err)
	}

	if rm.config.RedisClient != nil {
		if _, err := rm.config.RedisClient.Ping(ctx).Result(); err != nil {
			return fmt.Errorf("redis connection failed: %w", err)
		}
	}

	return nil
}

// GetRepository returns the repository built by Initialize, nil before
// that.
func (rm *RepositoryManager) GetRepository() repositories.Repository {
	return rm.repo
}

func (rm *RepositoryManager) HealthCheck(ctx context.Context) error {
	if rm.repo == nil {
		return fmt.Errorf("repository not initialized")
	}

	return rm.repo.Ping(ctx)
}

func (rm *RepositoryManager) Shutdown(ctx context.Context) error {
	if rm.repo == nil {
		return nil
	}

	return rm.repo.Close()
}
