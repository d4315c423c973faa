package services

import (
	"context"
	"log/slog"
	"os"

	"github.com/openelearn/platform-service/internal/repositories"
)

type systemService struct {
	repo   repositories.Repository
	logger *slog.Logger
}

func NewSystemService(repo repositories.Repository, logger *slog.Logger) SystemService {
	return &systemService{
		repo:   repo,
		logger: logger,
	}
}

// Diagnostics probes the store and reports every finding as a display
// string. The endpoint behind it must answer even when everything else
// is broken, so errors are folded into the payload instead of returned.
func (s *systemService) Diagnostics(ctx context.Context) *DiagnosticsResponse {
	response := &DiagnosticsResponse{
		Backend:          "✅ Running",
		Database:         "❌ Not Available",
		ConnectionStatus: "Not Connected",
		Collections:      []string{},
	}

	if s.repo.Available() {
		response.Database = "✅ Available"
		response.ConnectionStatus = "Connected"

		collections, err := s.repo.System().ListCollections(ctx)
		if err != nil {
			s.logger.Warn("Diagnostics collection listing failed", "error", err)
			response.Database = "⚠️  Connected but Error: " + truncateMessage(err.Error(), 50)
		} else {
			if len(collections) > 10 {
				collections = collections[:10]
			}
			response.Collections = collections
			response.Database = "✅ Connected & Working"
		}
	} else {
		response.Database = "⚠️  Available but not initialized"
	}

	// Reports raw variable presence, not the resolved config, so a
	// deployment relying on defaults is visible as such.
	response.DatabaseURL = envPresence("DATABASE_URL")
	response.DatabaseName = envPresence("DATABASE_NAME")

	return response
}

func envPresence(key string) string {
	if os.Getenv(key) != "" {
		return "✅ Set"
	}
	return "❌ Not Set"
}

func truncateMessage(msg string, limit int) string {
	runes := []rune(msg)
	if len(runes) <= limit {
		return msg
	}
	return string(runes[:limit])
}
