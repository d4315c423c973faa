package repositories

import (
	"context"

	"github.com/openelearn/platform-service/internal/models"
)

// UserRepository interface for user account operations
type UserRepository interface {
	// Create inserts a new user. Returns ErrDuplicateKey when the
	// email is already taken.
	Create(ctx context.Context, user *models.User) error

	// GetByEmail returns the user with the given email, or ErrNotFound.
	GetByEmail(ctx context.Context, email string) (*models.User, error)

	// ExistsByEmail reports whether a user with the email exists.
	ExistsByEmail(ctx context.Context, email string) (bool, error)

	// EnsureIndexes creates the unique email index that backs the
	// duplicate registration check.
	EnsureIndexes(ctx context.Context) error
}
