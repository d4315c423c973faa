package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/openelearn/platform-service/internal/events"
	"github.com/openelearn/platform-service/internal/models"
	"github.com/openelearn/platform-service/internal/repositories"
	"github.com/openelearn/platform-service/internal/validator"
)

type authService struct {
	repo      repositories.Repository
	hasher    *CredentialHasher
	events    events.EventPublisher
	logger    *slog.Logger
	validator *validator.Validator
}

func NewAuthService(repo repositories.Repository, hasher *CredentialHasher, publisher events.EventPublisher, logger *slog.Logger, validator *validator.Validator) AuthService {
	return &authService{
		repo:      repo,
		hasher:    hasher,
		events:    publisher,
		logger:    logger,
		validator: validator,
	}
}

// ===== REGISTRATION =====

func (s *authService) Register(ctx context.Context, req *RegisterRequest) (*AuthResponse, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	s.logger.Info("Registering user", "email", req.Email)

	// Pre-check keeps the common duplicate case cheap; the unique email
	// index closes the race window below.
	_, err := s.repo.User().GetByEmail(ctx, req.Email)
	if err == nil {
		return nil, ErrEmailAlreadyRegistered
	}
	if errors.Is(err, repositories.ErrUnavailable) {
		return nil, ErrStoreUnavailable
	}
	if !errors.Is(err, repositories.ErrNotFound) {
		return nil, fmt.Errorf("failed to check existing registration: %w", err)
	}

	// Role and active status are never caller controlled.
	user := &models.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: s.hasher.HashPassword(req.Password),
		Role:         models.RoleStudent,
		IsActive:     true,
	}

	if err := s.repo.User().Create(ctx, user); err != nil {
		switch {
		case errors.Is(err, repositories.ErrDuplicateKey):
			// Lost the race against a concurrent registration.
			return nil, ErrEmailAlreadyRegistered
		case errors.Is(err, repositories.ErrUnavailable):
			return nil, ErrStoreUnavailable
		default:
			return nil, fmt.Errorf("failed to create user: %w", err)
		}
	}

	s.publishEvent(ctx, events.NewEvent(events.EventTypeUserRegistered, &events.UserRegisteredEvent{
		Email: user.Email,
		Name:  user.Name,
		Role:  string(user.Role),
	}))

	s.logger.Info("User registered", "email", user.Email)

	return &AuthResponse{
		Name:  user.Name,
		Email: user.Email,
		Role:  string(user.Role),
		Token: s.hasher.DeriveToken(req.Email, req.Password),
	}, nil
}

// ===== LOGIN =====

func (s *authService) Login(ctx context.Context, req *LoginRequest) (*AuthResponse, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	user, err := s.repo.User().GetByEmail(ctx, req.Email)
	if err != nil {
		switch {
		case errors.Is(err, repositories.ErrNotFound):
			// Unknown email reads the same as a wrong password.
			return nil, ErrInvalidCredentials
		case errors.Is(err, repositories.ErrUnavailable):
			return nil, ErrStoreUnavailable
		default:
			return nil, fmt.Errorf("failed to look up user: %w", err)
		}
	}

	if !s.hasher.VerifyPassword(req.Password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	role := user.Role
	if role == "" {
		// Documents written before roles existed default to student.
		role = models.RoleStudent
	}

	s.publishEvent(ctx, events.NewEvent(events.EventTypeUserLoggedIn, &events.UserLoggedInEvent{
		Email: user.Email,
		Role:  string(role),
	}))

	s.logger.Info("User logged in", "email", user.Email)

	return &AuthResponse{
		Name:  user.Name,
		Email: user.Email,
		Role:  string(role),
		Token: s.hasher.DeriveToken(req.Email, req.Password),
	}, nil
}

// publishEvent sends an event without letting transport failures leak
// into the auth flow.
func (s *authService) publishEvent(ctx context.Context, event *events.Event) {
	if s.events == nil {
		return
	}
	if err := s.events.Publish(ctx, event); err != nil {
		s.logger.Warn("Failed to publish event",
			"event_type", event.Type,
			"error", err)
	}
}
