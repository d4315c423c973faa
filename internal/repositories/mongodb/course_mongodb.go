package mongodb

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/openelearn/platform-service/internal/cache"
	"github.com/openelearn/platform-service/internal/models"
	"github.com/openelearn/platform-service/internal/repositories"
)

type CourseMongoDB struct {
	collection   *mongo.Collection
	cacheManager *cache.CacheManager
}

func NewCourseMongoDB(db *mongo.Database, redisClient *redis.Client) repositories.CourseRepository {
	repo := &CourseMongoDB{
		cacheManager: cache.NewCacheManager(redisClient),
	}
	if db != nil {
		repo.collection = db.Collection(models.Course{}.CollectionName())
	}
	return repo
}

// List returns the whole course catalog with caching
func (c *CourseMongoDB) List(ctx context.Context) ([]*models.Course, error) {
	if c.collection == nil {
		return nil, repositories.ErrUnavailable
	}

	var courses []*models.Course

	err := c.cacheManager.Course.CacheOrExecute(ctx, "list:all", &courses, cache.CourseCacheConfig.TTL, func() (interface{}, error) {
		cursor, err := c.collection.Find(ctx, bson.M{})
		if err != nil {
			return nil, fmt.Errorf("failed to list courses: %w", err)
		}
		defer cursor.Close(ctx)

		var dbCourses []*models.Course
		if err := cursor.All(ctx, &dbCourses); err != nil {
			return nil, fmt.Errorf("failed to decode courses: %w", err)
		}
		return dbCourses, nil
	})
	if err != nil {
		return nil, err
	}

	return courses, nil
}

// CreateMany inserts a batch of courses and invalidates cached listings
func (c *CourseMongoDB) CreateMany(ctx context.Context, courses []*models.Course) error {
	if c.collection == nil {
		return repositories.ErrUnavailable
	}

	if len(courses) == 0 {
		return nil
	}

	docs := make([]interface{}, len(courses))
	for i, course := range courses {
		docs[i] = course
	}

	if _, err := c.collection.InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("failed to insert courses: %w", err)
	}

	cache.InvalidateCourseCache(ctx, c.cacheManager)
	return nil
}

// Count returns the number of courses in the catalog
func (c *CourseMongoDB) Count(ctx context.Context) (int64, error) {
	if c.collection == nil {
		return 0, repositories.ErrUnavailable
	}

	count, err := c.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count courses: %w", err)
	}

	return count, nil
}
