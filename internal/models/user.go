package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type UserRole string
type Role = UserRole // Alias for compatibility

const (
	RoleStudent UserRole = "student"
	RoleFaculty UserRole = "faculty"
	RoleAdmin   UserRole = "admin"
)

// ValidRole reports whether role is one of the roles the platform knows.
func ValidRole(role UserRole) bool {
	switch role {
	case RoleStudent, RoleFaculty, RoleAdmin:
		return true
	}
	return false
}

type User struct {
	ID       primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Name     string             `json:"name" bson:"name"`
	Email    string             `json:"email" bson:"email"`
	Role     UserRole           `json:"role" bson:"role"`
	IsActive bool               `json:"is_active" bson:"is_active"`

	// Credential fingerprint, never serialized back to clients.
	PasswordHash string `json:"-" bson:"password_hash"`

	CreatedAt time.Time `json:"created_at,omitempty" bson:"created_at,omitempty"`
}

func (User) CollectionName() string {
	return "user"
}
