package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/xuri/excelize/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/openelearn/platform-service/internal/repositories"
)

type courseService struct {
	repo   repositories.Repository
	logger *slog.Logger
}

func NewCourseService(repo repositories.Repository, logger *slog.Logger) CourseService {
	return &courseService{
		repo:   repo,
		logger: logger,
	}
}

// ===== LISTING =====

func (s *courseService) List(ctx context.Context) ([]CourseItem, error) {
	courses, err := s.repo.Course().List(ctx)
	if err != nil {
		if errors.Is(err, repositories.ErrUnavailable) {
			return nil, ErrStoreUnavailable
		}
		return nil, fmt.Errorf("failed to list courses: %w", err)
	}

	items := make([]CourseItem, 0, len(courses))
	for _, course := range courses {
		items = append(items, CourseItem{
			ID:          renderObjectID(course.ID),
			Title:       course.Title,
			Category:    course.Category,
			Level:       course.Level,
			Description: course.Description,
		})
	}

	return items, nil
}

// renderObjectID yields the hex form of a stored id, empty for
// documents that never had one.
func renderObjectID(id primitive.ObjectID) string {
	if id.IsZero() {
		return ""
	}
	return id.Hex()
}

// ===== EXPORT =====

const catalogSheet = "Courses"

func (s *courseService) ExportCatalog(ctx context.Context) ([]byte, error) {
	items, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Exporting course catalog", "courses", len(items))

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", catalogSheet); err != nil {
		return nil, fmt.Errorf("failed to name catalog sheet: %w", err)
	}

	headers := []string{"ID", "Title", "Category", "Level", "Description"}
	for col, header := range headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, fmt.Errorf("failed to build header cell: %w", err)
		}
		if err := f.SetCellValue(catalogSheet, cell, header); err != nil {
			return nil, fmt.Errorf("failed to write header: %w", err)
		}
	}

	for row, item := range items {
		values := []interface{}{
			item.ID,
			item.Title,
			item.Category,
			stringValue(item.Level),
			stringValue(item.Description),
		}
		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row+2)
			if err != nil {
				return nil, fmt.Errorf("failed to build cell: %w", err)
			}
			if err := f.SetCellValue(catalogSheet, cell, value); err != nil {
				return nil, fmt.Errorf("failed to write course row: %w", err)
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to encode workbook: %w", err)
	}

	return buf.Bytes(), nil
}

func stringValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
