package services

import (
	"context"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/openelearn/platform-service/internal/models"
	"github.com/openelearn/platform-service/internal/repositories"
)

// In-memory repository fakes shared by the service tests.

type memoryUserRepository struct {
	mu    sync.Mutex
	users map[string]*models.User

	// Forced failures, returned verbatim when set
	failCreate error
	failGet    error
	failExists error
}

func newMemoryUserRepository() *memoryUserRepository {
	return &memoryUserRepository{users: make(map[string]*models.User)}
}

func (m *memoryUserRepository) Create(ctx context.Context, user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failCreate != nil {
		return m.failCreate
	}
	if _, ok := m.users[user.Email]; ok {
		return repositories.ErrDuplicateKey
	}
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	stored := *user
	m.users[user.Email] = &stored
	return nil
}

func (m *memoryUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failGet != nil {
		return nil, m.failGet
	}
	user, ok := m.users[email]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	found := *user
	return &found, nil
}

func (m *memoryUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failExists != nil {
		return false, m.failExists
	}
	_, ok := m.users[email]
	return ok, nil
}

func (m *memoryUserRepository) EnsureIndexes(ctx context.Context) error {
	return nil
}

func (m *memoryUserRepository) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.users)
}

type memoryCourseRepository struct {
	mu      sync.Mutex
	courses []*models.Course

	failList   error
	failCreate error
	failCount  error
}

func newMemoryCourseRepository() *memoryCourseRepository {
	return &memoryCourseRepository{}
}

func (m *memoryCourseRepository) List(ctx context.Context) ([]*models.Course, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failList != nil {
		return nil, m.failList
	}
	out := make([]*models.Course, len(m.courses))
	copy(out, m.courses)
	return out, nil
}

func (m *memoryCourseRepository) CreateMany(ctx context.Context, courses []*models.Course) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failCreate != nil {
		return m.failCreate
	}
	for _, course := range courses {
		if course.ID.IsZero() {
			course.ID = primitive.NewObjectID()
		}
		stored := *course
		m.courses = append(m.courses, &stored)
	}
	return nil
}

func (m *memoryCourseRepository) Count(ctx context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failCount != nil {
		return 0, m.failCount
	}
	return int64(len(m.courses)), nil
}

type stubSystemRepository struct {
	collections []string
	err         error
	name        string
}

func (s *stubSystemRepository) ListCollections(ctx context.Context) ([]string, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.collections, nil
}

func (s *stubSystemRepository) DatabaseName() string {
	return s.name
}

// mockRepository aggregates the fakes behind the Repository interface.
type mockRepository struct {
	user      repositories.UserRepository
	course    repositories.CourseRepository
	system    repositories.SystemRepository
	available bool
}

func (m *mockRepository) User() repositories.UserRepository     { return m.user }
func (m *mockRepository) Course() repositories.CourseRepository { return m.course }
func (m *mockRepository) System() repositories.SystemRepository { return m.system }
func (m *mockRepository) Available() bool                       { return m.available }

func (m *mockRepository) Ping(ctx context.Context) error {
	if !m.available {
		return repositories.ErrUnavailable
	}
	return nil
}

func (m *mockRepository) Close() error { return nil }

// newMockRepository builds a connected repository over fresh in-memory
// fakes and returns the fakes for direct inspection.
func newMockRepository() (*mockRepository, *memoryUserRepository, *memoryCourseRepository) {
	users := newMemoryUserRepository()
	courses := newMemoryCourseRepository()
	repo := &mockRepository{
		user:      users,
		course:    courses,
		system:    &stubSystemRepository{name: "elearning"},
		available: true,
	}
	return repo, users, courses
}

func newTestHasher() *CredentialHasher {
	return NewCredentialHasher("test-password-key", "test-token-key")
}
