package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/openelearn/platform-service/internal/events"
	"github.com/openelearn/platform-service/internal/models"
	"github.com/openelearn/platform-service/internal/repositories"
)

// defaultAccount describes one seeded login.
type defaultAccount struct {
	Name     string
	Email    string
	Password string
	Role     models.UserRole
}

// Accounts every deployment starts with. Insert-if-absent, so existing
// data always wins.
var defaultAccounts = []defaultAccount{
	{Name: "Admin", Email: "admin@elearning.com", Password: "admin123", Role: models.RoleAdmin},
	{Name: "Faculty", Email: "faculty@elearning.com", Password: "faculty123", Role: models.RoleFaculty},
}

// sampleCourses returns the starter catalog used when the course
// collection is completely empty.
func sampleCourses() []*models.Course {
	level := func(s string) *string { return &s }
	return []*models.Course{
		{Title: "Web Development", Category: "Courses", Level: level("Beginner")},
		{Title: "Cyber Security", Category: "Courses", Level: level("Intermediate")},
		{Title: "Python", Category: "Programming Languages", Level: level("Beginner")},
		{Title: "C++", Category: "Programming Languages", Level: level("Intermediate")},
	}
}

type seedService struct {
	repo   repositories.Repository
	hasher *CredentialHasher
	events events.EventPublisher
	logger *slog.Logger
}

func NewSeedService(repo repositories.Repository, hasher *CredentialHasher, publisher events.EventPublisher, logger *slog.Logger) SeedService {
	return &seedService{
		repo:   repo,
		hasher: hasher,
		events: publisher,
		logger: logger,
	}
}

// Run performs the full seeding pass. Every step is idempotent and
// failures are joined into the returned error for the caller to log;
// seeding must never stop the service from starting.
func (s *seedService) Run(ctx context.Context) error {
	if !s.repo.Available() {
		s.logger.Warn("Skipping seeding, database not available")
		return nil
	}

	if err := s.repo.User().EnsureIndexes(ctx); err != nil {
		s.logger.Warn("Failed to ensure user indexes", "error", err)
	}

	usersCreated, usersErr := s.EnsureDefaultUsers(ctx)
	coursesCreated, coursesErr := s.SeedSampleCourses(ctx)

	if usersCreated > 0 || coursesCreated > 0 {
		s.publishEvent(ctx, events.NewEvent(events.EventTypePlatformSeeded, &events.PlatformSeededEvent{
			UsersCreated:   usersCreated,
			CoursesCreated: coursesCreated,
		}))
		s.logger.Info("Seeding completed",
			"users_created", usersCreated,
			"courses_created", coursesCreated)
	}

	return errors.Join(usersErr, coursesErr)
}

// EnsureDefaultUsers inserts each default account that does not exist
// yet. Existing accounts are left untouched.
func (s *seedService) EnsureDefaultUsers(ctx context.Context) (int, error) {
	created := 0
	var errs []error

	for _, account := range defaultAccounts {
		exists, err := s.repo.User().ExistsByEmail(ctx, account.Email)
		if err != nil {
			errs = append(errs, fmt.Errorf("check default user %s: %w", account.Email, err))
			continue
		}
		if exists {
			continue
		}

		user := &models.User{
			Name:         account.Name,
			Email:        account.Email,
			PasswordHash: s.hasher.HashPassword(account.Password),
			Role:         account.Role,
			IsActive:     true,
		}

		if err := s.repo.User().Create(ctx, user); err != nil {
			if errors.Is(err, repositories.ErrDuplicateKey) {
				// Another instance seeded this account first.
				continue
			}
			errs = append(errs, fmt.Errorf("create default user %s: %w", account.Email, err))
			continue
		}

		created++
	}

	return created, errors.Join(errs...)
}

// SeedSampleCourses fills the catalog with sample courses, but only
// when it is completely empty.
func (s *seedService) SeedSampleCourses(ctx context.Context) (int, error) {
	count, err := s.repo.Course().Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("count courses: %w", err)
	}
	if count > 0 {
		return 0, nil
	}

	samples := sampleCourses()
	if err := s.repo.Course().CreateMany(ctx, samples); err != nil {
		return 0, fmt.Errorf("seed courses: %w", err)
	}

	return len(samples), nil
}

func (s *seedService) publishEvent(ctx context.Context, event *events.Event) {
	if s.events == nil {
		return
	}
	if err := s.events.Publish(ctx, event); err != nil {
		s.logger.Warn("Failed to publish event",
			"event_type", event.Type,
			"error", err)
	}
}
