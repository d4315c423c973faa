package repositories

import (
	"context"

	"github.com/openelearn/platform-service/internal/models"
)

// CourseRepository interface for course catalog operations
type CourseRepository interface {
	// List returns every course in the catalog.
	List(ctx context.Context) ([]*models.Course, error)

	// CreateMany inserts a batch of courses (used by seeding).
	CreateMany(ctx context.Context, courses []*models.Course) error

	// Count returns the number of courses in the catalog.
	Count(ctx context.Context) (int64, error)
}
