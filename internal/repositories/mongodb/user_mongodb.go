package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/openelearn/platform-service/internal/models"
	"github.com/openelearn/platform-service/internal/repositories"
)

// UserMongoDB is deliberately cache-free: user documents carry
// credential fingerprints, and those never leave the store.
type UserMongoDB struct {
	collection *mongo.Collection
}

func NewUserMongoDB(db *mongo.Database) repositories.UserRepository {
	repo := &UserMongoDB{}
	if db != nil {
		repo.collection = db.Collection(models.User{}.CollectionName())
	}
	return repo
}

// Create inserts a new user. A unique-index violation on the email
// comes back as ErrDuplicateKey.
func (u *UserMongoDB) Create(ctx context.Context, user *models.User) error {
	if u.collection == nil {
		return repositories.ErrUnavailable
	}

	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}

	result, err := u.collection.InsertOne(ctx, user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return repositories.ErrDuplicateKey
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	if id, ok := result.InsertedID.(primitive.ObjectID); ok {
		user.ID = id
	}

	return nil
}

// GetByEmail retrieves a user by email, ErrNotFound when no account
// exists for it.
func (u *UserMongoDB) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if u.collection == nil {
		return nil, repositories.ErrUnavailable
	}

	var user models.User
	err := u.collection.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repositories.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}

	return &user, nil
}

// ExistsByEmail reports whether a user with the email exists
func (u *UserMongoDB) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	if u.collection == nil {
		return false, repositories.ErrUnavailable
	}

	count, err := u.collection.CountDocuments(ctx, bson.M{"email": email})
	if err != nil {
		return false, fmt.Errorf("failed to check user existence: %w", err)
	}

	return count > 0, nil
}

// EnsureIndexes creates the unique email index so concurrent
// registrations of the same address cannot both succeed
func (u *UserMongoDB) EnsureIndexes(ctx context.Context) error {
	if u.collection == nil {
		return repositories.ErrUnavailable
	}

	_, err := u.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("failed to create email index: %w", err)
	}

	return nil
}
