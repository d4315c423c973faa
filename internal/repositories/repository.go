package repositories

import "context"

// Repository aggregates the store-backed repositories of the platform.
type Repository interface {
	// User domain
	User() UserRepository

	// Course domain
	Course() CourseRepository

	// Store introspection (used by diagnostics)
	System() SystemRepository

	// Available reports whether the underlying store is connected.
	// When false the sub-repositories return ErrUnavailable and the
	// service runs in degraded mode.
	Available() bool

	// Ping verifies connectivity to the store and its cache.
	Ping(ctx context.Context) error

	// Close releases the underlying connections.
	Close() error
}

// RepositoryManager owns building, checking and tearing down the
// repository over the application lifecycle.
type RepositoryManager interface {
	Initialize() error
	GetRepository() Repository
	HealthCheck(ctx context.Context) error
	Shutdown(ctx context.Context) error
}
