package services

import (
	"context"

	"github.com/openelearn/platform-service/internal/models"
)

// ===== REQUEST/RESPONSE DTOs =====

// Use model DTO types
type RegisterRequest = models.RegisterRequest
type LoginRequest = models.LoginRequest
type AuthResponse = models.AuthResponse
type CourseItem = models.CourseItem
type DiagnosticsResponse = models.DiagnosticsResponse

// ===== SERVICE INTERFACES =====

type AuthService interface {
	// Register creates a student account and returns the auth payload
	// with the derived token. The email must not be registered yet.
	Register(ctx context.Context, req *RegisterRequest) (*AuthResponse, error)

	// Login verifies a credential pair against the stored fingerprint
	// and returns the auth payload with the derived token.
	Login(ctx context.Context, req *LoginRequest) (*AuthResponse, error)
}

type CourseService interface {
	// List returns the whole course catalog prepared for transport.
	List(ctx context.Context) ([]CourseItem, error)

	// ExportCatalog renders the catalog as an xlsx workbook.
	ExportCatalog(ctx context.Context) ([]byte, error)
}

type SeedService interface {
	// Run performs the full idempotent seeding pass: default accounts,
	// sample courses, supporting indexes. It reports what went wrong
	// but is safe to call on every startup.
	Run(ctx context.Context) error

	// EnsureDefaultUsers inserts the default accounts that are missing
	// and returns how many were created.
	EnsureDefaultUsers(ctx context.Context) (int, error)

	// SeedSampleCourses fills an empty catalog with the sample courses
	// and returns how many were created.
	SeedSampleCourses(ctx context.Context) (int, error)
}

type SystemService interface {
	// Diagnostics reports backend and store health. It never fails;
	// problems are folded into the response fields.
	Diagnostics(ctx context.Context) *DiagnosticsResponse
}

// ===== SERVICE MANAGER =====

type ServiceManager interface {
	// Core service getters
	Auth() AuthService
	Course() CourseService
	Seed() SeedService
	System() SystemService

	// Health and lifecycle
	Initialize(ctx context.Context) error
	HealthCheck(ctx context.Context) error
	Shutdown(ctx context.Context) error
}
