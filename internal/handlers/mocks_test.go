package handlers

import (
	"context"
	"io"
	"log/slog"
	"net/http/httptest"
	"os"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/openelearn/platform-service/internal/services"
	"github.com/openelearn/platform-service/internal/utils"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testLogger() utils.Logger {
	return utils.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stdout, nil)))
}

func performRequest(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// Service mocks with canned responses.

type mockAuthService struct {
	registerResp *services.AuthResponse
	registerErr  error
	loginResp    *services.AuthResponse
	loginErr     error

	lastRegister *services.RegisterRequest
	lastLogin    *services.LoginRequest
}

func (m *mockAuthService) Register(ctx context.Context, req *services.RegisterRequest) (*services.AuthResponse, error) {
	m.lastRegister = req
	return m.registerResp, m.registerErr
}

func (m *mockAuthService) Login(ctx context.Context, req *services.LoginRequest) (*services.AuthResponse, error) {
	m.lastLogin = req
	return m.loginResp, m.loginErr
}

type mockCourseService struct {
	items     []services.CourseItem
	listErr   error
	workbook  []byte
	exportErr error
}

func (m *mockCourseService) List(ctx context.Context) ([]services.CourseItem, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.items, nil
}

func (m *mockCourseService) ExportCatalog(ctx context.Context) ([]byte, error) {
	if m.exportErr != nil {
		return nil, m.exportErr
	}
	return m.workbook, nil
}

type mockSystemService struct {
	resp *services.DiagnosticsResponse
}

func (m *mockSystemService) Diagnostics(ctx context.Context) *services.DiagnosticsResponse {
	return m.resp
}

type mockSeedService struct{}

func (m *mockSeedService) Run(ctx context.Context) error                       { return nil }
func (m *mockSeedService) EnsureDefaultUsers(ctx context.Context) (int, error) { return 0, nil }
func (m *mockSeedService) SeedSampleCourses(ctx context.Context) (int, error)  { return 0, nil }

// mockServiceManager hands out the mocks above.
type mockServiceManager struct {
	auth   services.AuthService
	course services.CourseService
	seed   services.SeedService
	system services.SystemService
}

func (m *mockServiceManager) Auth() services.AuthService     { return m.auth }
func (m *mockServiceManager) Course() services.CourseService { return m.course }
func (m *mockServiceManager) Seed() services.SeedService     { return m.seed }
func (m *mockServiceManager) System() services.SystemService { return m.system }

func (m *mockServiceManager) Initialize(ctx context.Context) error  { return nil }
func (m *mockServiceManager) HealthCheck(ctx context.Context) error { return nil }
func (m *mockServiceManager) Shutdown(ctx context.Context) error    { return nil }

func newMockServiceManager() *mockServiceManager {
	return &mockServiceManager{
		auth:   &mockAuthService{},
		course: &mockCourseService{},
		seed:   &mockSeedService{},
		system: &mockSystemService{resp: &services.DiagnosticsResponse{Backend: "✅ Running"}},
	}
}
