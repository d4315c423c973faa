package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"testing"

	"github.com/openelearn/platform-service/internal/events"
	"github.com/openelearn/platform-service/internal/models"
	"github.com/openelearn/platform-service/internal/repositories"
	"github.com/openelearn/platform-service/internal/repositories/mongodb"
	"github.com/openelearn/platform-service/internal/validator"
)

func newTestAuthService(t *testing.T) (AuthService, *memoryUserRepository, *events.MockEventPublisher) {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	repo, users, _ := newMockRepository()
	publisher := events.NewMockEventPublisher(logger)
	service := NewAuthService(repo, newTestHasher(), publisher, logger, validator.New())
	return service, users, publisher
}

func TestAuthService_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		service, users, publisher := newTestAuthService(t)

		resp, err := service.Register(ctx, &RegisterRequest{
			Name:     "Alice",
			Email:    "alice@x.com",
			Password: "pw1",
		})
		if err != nil {
			t.Fatalf("Failed to register: %v", err)
		}

		if resp.Name != "Alice" || resp.Email != "alice@x.com" {
			t.Errorf("Unexpected identity in response: %+v", resp)
		}
		if resp.Role != string(models.RoleStudent) {
			t.Errorf("Expected role 'student', got %q", resp.Role)
		}
		if resp.Token != newTestHasher().DeriveToken("alice@x.com", "pw1") {
			t.Error("Token does not match the deterministic derivation")
		}

		stored, err := users.GetByEmail(ctx, "alice@x.com")
		if err != nil {
			t.Fatalf("Registered user not persisted: %v", err)
		}
		if stored.PasswordHash == "pw1" || stored.PasswordHash == "" {
			t.Error("Plaintext password must not be stored")
		}
		if !stored.IsActive {
			t.Error("New accounts must be active")
		}

		published := publisher.GetPublishedEvents()
		if len(published) != 1 {
			t.Fatalf("Expected 1 event, got %d", len(published))
		}
		if published[0].Type != events.EventTypeUserRegistered {
			t.Errorf("Expected event type %q, got %q", events.EventTypeUserRegistered, published[0].Type)
		}
	})

	t.Run("Role_Never_Caller_Controlled", func(t *testing.T) {
		service, users, _ := newTestAuthService(t)

		// The request shape has no role field; whatever an account
		// should become, registration always writes a student.
		if _, err := service.Register(ctx, &RegisterRequest{
			Name:     "Eve",
			Email:    "eve@x.com",
			Password: "pw",
		}); err != nil {
			t.Fatalf("Failed to register: %v", err)
		}

		stored, _ := users.GetByEmail(ctx, "eve@x.com")
		if stored.Role != models.RoleStudent {
			t.Errorf("Expected stored role 'student', got %q", stored.Role)
		}
	})

	t.Run("Duplicate_Email", func(t *testing.T) {
		service, _, publisher := newTestAuthService(t)

		first := &RegisterRequest{Name: "Alice", Email: "alice@x.com", Password: "pw1"}
		if _, err := service.Register(ctx, first); err != nil {
			t.Fatalf("First registration failed: %v", err)
		}
		publisher.ClearEvents()

		second := &RegisterRequest{Name: "Mallory", Email: "alice@x.com", Password: "other"}
		_, err := service.Register(ctx, second)
		if !errors.Is(err, ErrEmailAlreadyRegistered) {
			t.Fatalf("Expected ErrEmailAlreadyRegistered, got %v", err)
		}
		if len(publisher.GetPublishedEvents()) != 0 {
			t.Error("No event must be published for a rejected registration")
		}
	})

	t.Run("Lost_Creation_Race", func(t *testing.T) {
		service, users, _ := newTestAuthService(t)

		// Pre-check passes but the insert hits the unique index.
		users.failCreate = repositories.ErrDuplicateKey

		_, err := service.Register(ctx, &RegisterRequest{
			Name:     "Alice",
			Email:    "alice@x.com",
			Password: "pw1",
		})
		if !errors.Is(err, ErrEmailAlreadyRegistered) {
			t.Fatalf("Expected ErrEmailAlreadyRegistered, got %v", err)
		}
	})

	t.Run("Store_Unavailable", func(t *testing.T) {
		logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
		degraded := mongodb.NewMongoRepository(mongodb.RepositoryConfig{})
		service := NewAuthService(degraded, newTestHasher(), events.NewMockEventPublisher(logger), logger, validator.New())

		_, err := service.Register(ctx, &RegisterRequest{
			Name:     "Alice",
			Email:    "alice@x.com",
			Password: "pw1",
		})
		if !errors.Is(err, ErrStoreUnavailable) {
			t.Fatalf("Expected ErrStoreUnavailable, got %v", err)
		}
	})

	t.Run("Invalid_Email", func(t *testing.T) {
		service, _, _ := newTestAuthService(t)

		_, err := service.Register(ctx, &RegisterRequest{
			Name:     "Alice",
			Email:    "not-an-email",
			Password: "pw1",
		})

		var validationErrs ValidationErrors
		if !errors.As(err, &validationErrs) {
			t.Fatalf("Expected validation errors, got %v", err)
		}
	})

	t.Run("Missing_Fields", func(t *testing.T) {
		service, _, _ := newTestAuthService(t)

		_, err := service.Register(ctx, &RegisterRequest{})

		var validationErrs ValidationErrors
		if !errors.As(err, &validationErrs) {
			t.Fatalf("Expected validation errors, got %v", err)
		}
		if len(validationErrs) != 3 {
			t.Errorf("Expected 3 field errors, got %d", len(validationErrs))
		}
	})
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()

	t.Run("Register_Then_Login_Same_Token", func(t *testing.T) {
		service, _, publisher := newTestAuthService(t)

		registered, err := service.Register(ctx, &RegisterRequest{
			Name:     "Alice",
			Email:    "alice@x.com",
			Password: "pw1",
		})
		if err != nil {
			t.Fatalf("Failed to register: %v", err)
		}
		publisher.ClearEvents()

		loggedIn, err := service.Login(ctx, &LoginRequest{
			Email:    "alice@x.com",
			Password: "pw1",
		})
		if err != nil {
			t.Fatalf("Failed to log in: %v", err)
		}

		if loggedIn.Token != registered.Token {
			t.Error("Login token differs from registration token")
		}
		if loggedIn.Name != "Alice" || loggedIn.Role != string(models.RoleStudent) {
			t.Errorf("Unexpected login response: %+v", loggedIn)
		}

		published := publisher.GetPublishedEvents()
		if len(published) != 1 || published[0].Type != events.EventTypeUserLoggedIn {
			t.Errorf("Expected a single %q event, got %+v", events.EventTypeUserLoggedIn, published)
		}
	})

	t.Run("Wrong_Password", func(t *testing.T) {
		service, _, _ := newTestAuthService(t)

		if _, err := service.Register(ctx, &RegisterRequest{
			Name:     "Alice",
			Email:    "alice@x.com",
			Password: "pw1",
		}); err != nil {
			t.Fatalf("Failed to register: %v", err)
		}

		_, err := service.Login(ctx, &LoginRequest{Email: "alice@x.com", Password: "wrong"})
		if !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("Expected ErrInvalidCredentials, got %v", err)
		}
	})

	t.Run("Unknown_Email", func(t *testing.T) {
		service, _, _ := newTestAuthService(t)

		_, err := service.Login(ctx, &LoginRequest{Email: "ghost@x.com", Password: "pw"})
		if !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("Expected ErrInvalidCredentials, got %v", err)
		}
	})

	t.Run("Store_Error_Not_Misread_As_Bad_Credentials", func(t *testing.T) {
		service, users, _ := newTestAuthService(t)

		users.failGet = errors.New("socket closed")

		_, err := service.Login(ctx, &LoginRequest{Email: "alice@x.com", Password: "pw1"})
		if err == nil {
			t.Fatal("Expected the lookup failure to be reported")
		}
		if errors.Is(err, ErrInvalidCredentials) {
			t.Error("A store failure must not be reported as invalid credentials")
		}
	})

	t.Run("Blank_Role_Defaults_To_Student", func(t *testing.T) {
		logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
		repo, users, _ := newMockRepository()
		hasher := newTestHasher()
		service := NewAuthService(repo, hasher, events.NewMockEventPublisher(logger), logger, validator.New())

		// Documents written before roles existed carry no role.
		legacy := &models.User{
			Name:         "Old Timer",
			Email:        "old@x.com",
			PasswordHash: hasher.HashPassword("pw"),
			IsActive:     true,
		}
		if err := users.Create(ctx, legacy); err != nil {
			t.Fatalf("Failed to store legacy user: %v", err)
		}

		resp, err := service.Login(ctx, &LoginRequest{Email: "old@x.com", Password: "pw"})
		if err != nil {
			t.Fatalf("Failed to log in: %v", err)
		}
		if resp.Role != string(models.RoleStudent) {
			t.Errorf("Expected fallback role 'student', got %q", resp.Role)
		}
	})

	t.Run("Store_Unavailable", func(t *testing.T) {
		logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
		degraded := mongodb.NewMongoRepository(mongodb.RepositoryConfig{})
		service := NewAuthService(degraded, newTestHasher(), events.NewMockEventPublisher(logger), logger, validator.New())

		_, err := service.Login(ctx, &LoginRequest{Email: "alice@x.com", Password: "pw1"})
		if !errors.Is(err, ErrStoreUnavailable) {
			t.Fatalf("Expected ErrStoreUnavailable, got %v", err)
		}
	})
}

// Benchmark test
func BenchmarkAuthService_Register(b *testing.B) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	repo, _, _ := newMockRepository()
	publisher := events.NewMockEventPublisher(logger)
	service := NewAuthService(repo, newTestHasher(), publisher, logger, validator.New())

	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, err := service.Register(ctx, &RegisterRequest{
			Name:     "Alice",
			Email:    fmt.Sprintf("alice%d@x.com", i),
			Password: "pw1",
		})
		if err != nil {
			b.Fatalf("Failed to register: %v", err)
		}
	}
}
