package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/openelearn/platform-service/internal/events"
	"github.com/openelearn/platform-service/internal/repositories"
	"github.com/openelearn/platform-service/internal/validator"
)

// ServiceManagerConfig controls which services the manager builds and
// the knobs they share.
type ServiceManagerConfig struct {
	Auth   ServiceConfig
	Course ServiceConfig
	Seed   ServiceConfig

	// DefaultTimeout bounds manager-driven operations such as the
	// health check ping.
	DefaultTimeout time.Duration
}

// ServiceConfig is the per-service slice of the manager configuration.
type ServiceConfig struct {
	Enabled  bool
	CacheTTL time.Duration
}

type serviceManager struct {
	repo      repositories.Repository
	hasher    *CredentialHasher
	publisher events.EventPublisher
	logger    *slog.Logger
	validator *validator.Validator
	config    ServiceManagerConfig

	authService   AuthService
	courseService CourseService
	seedService   SeedService
	systemService SystemService

	// Guarded by mu together with the service fields.
	initialized bool
	shutdown    bool
	mu          sync.RWMutex
}

// NewServiceManager wires a manager from explicit dependencies. Nothing
// is constructed until Initialize runs.
func NewServiceManager(repo repositories.Repository, hasher *CredentialHasher, publisher events.EventPublisher, logger *slog.Logger, validator *validator.Validator, config ServiceManagerConfig) ServiceManager {
	return &serviceManager{
		repo:      repo,
		hasher:    hasher,
		publisher: publisher,
		logger:    logger,
		validator: validator,
		config:    config,
	}
}

// NewDefaultServiceManager wires a manager with every service enabled
// and the stock timeouts.
func NewDefaultServiceManager(repo repositories.Repository, hasher *CredentialHasher, publisher events.EventPublisher, logger *slog.Logger, validator *validator.Validator) ServiceManager {
	config := ServiceManagerConfig{
		Auth: ServiceConfig{
			Enabled:  true,
			CacheTTL: 2 * time.Minute,
		},
		Course: ServiceConfig{
			Enabled:  true,
			CacheTTL: 5 * time.Minute,
		},
		Seed: ServiceConfig{
			Enabled:  true,
			CacheTTL: 0,
		},

		DefaultTimeout: 30 * time.Second,
	}

	return NewServiceManager(repo, hasher, publisher, logger, validator, config)
}

// Initialize validates the configuration and constructs the enabled
// services. Calling it again is a no-op.
func (sm *serviceManager) Initialize(ctx context.Context) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}

	sm.logger.Info("Initializing service manager")

	if err := sm.config.Validate(); err != nil {
		return fmt.Errorf("invalid service manager config: %w", err)
	}
	if err := sm.initializeServices(ctx); err != nil {
		return fmt.Errorf("failed to initialize services: %w", err)
	}

	sm.initialized = true
	sm.logger.Info("Service manager initialized successfully")

	return nil
}

func (sm *serviceManager) initializeServices(ctx context.Context) error {
	if sm.config.Auth.Enabled {
		sm.authService = NewAuthService(sm.repo, sm.hasher, sm.publisher, sm.logger, sm.validator)
		sm.logger.Info("Auth service initialized")
	}

	if sm.config.Course.Enabled {
		sm.courseService = NewCourseService(sm.repo, sm.logger)
		sm.logger.Info("Course service initialized")
	}

	if sm.config.Seed.Enabled {
		sm.seedService = NewSeedService(sm.repo, sm.hasher, sm.publisher, sm.logger)
		sm.logger.Info("Seed service initialized")
	}

	// Diagnostics stay available in every configuration.
	sm.systemService = NewSystemService(sm.repo, sm.logger)
	sm.logger.Info("System service initialized")

	return nil
}

// ===== SERVICE GETTERS =====

// The getters panic on misuse: asking for a service before Initialize
// or for one that is disabled is a programming error.

func (sm *serviceManager) Auth() AuthService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.initialized {
		panic("service manager not initialized")
	}

	if sm.config.Auth.Enabled && sm.authService != nil {
		return sm.authService
	}

	panic("auth service not enabled or not initialized")
}

func (sm *serviceManager) Course() CourseService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.initialized {
		panic("service manager not initialized")
	}

	if sm.config.Course.Enabled && sm.courseService != nil {
		return sm.courseService
	}

	panic("course service not enabled or not initialized")
}

func (sm *serviceManager) Seed() SeedService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.initialized {
		panic("service manager not initialized")
	}

	if sm.config.Seed.Enabled && sm.seedService != nil {
		return sm.seedService
	}

	panic("seed service not enabled or not initialized")
}

func (sm *serviceManager) System() SystemService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.initialized {
		panic("service manager not initialized")
	}

	if sm.systemService != nil {
		return sm.systemService
	}

	panic("system service not initialized")
}

// ===== LIFECYCLE =====

func (sm *serviceManager) HealthCheck(ctx context.Context) error {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.initialized {
		return fmt.Errorf("service manager not initialized")
	}

	if sm.shutdown {
		return fmt.Errorf("service manager is shut down")
	}

	// A degraded repository is still a healthy service; only a
	// configured store that stops answering counts as unhealthy.
	if sm.repo.Available() {
		pingCtx, cancel := context.WithTimeout(ctx, sm.config.DefaultTimeout)
		defer cancel()

		if err := sm.repo.Ping(pingCtx); err != nil {
			return fmt.Errorf("repository health check failed: %w", err)
		}
	}

	return nil
}

// Shutdown releases what the manager owns, currently the event
// publisher. Repositories are shut down by their own manager.
func (sm *serviceManager) Shutdown(ctx context.Context) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.shutdown {
		return nil
	}

	sm.logger.Info("Shutting down service manager")

	if sm.publisher != nil {
		if err := sm.publisher.Close(); err != nil {
			sm.logger.Error("Failed to close event publisher", "error", err)
		}
	}

	sm.shutdown = true
	sm.logger.Info("Service manager shut down completed")

	return nil
}

// ===== CONFIGURATION VALIDATION =====

func (config *ServiceManagerConfig) Validate() error {
	if config.DefaultTimeout <= 0 {
		return fmt.Errorf("default timeout must be positive")
	}

	if config.Auth.CacheTTL < 0 {
		return fmt.Errorf("auth: cache TTL cannot be negative")
	}

	if config.Course.CacheTTL < 0 {
		return fmt.Errorf("course: cache TTL cannot be negative")
	}

	return nil
}
