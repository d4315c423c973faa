package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/openelearn/platform-service/internal/models"
	"github.com/openelearn/platform-service/internal/services"
	"github.com/openelearn/platform-service/internal/utils"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type CourseHandler struct {
	BaseHandler
	service services.CourseService
}

func NewCourseHandler(service services.CourseService, logger utils.Logger) *CourseHandler {
	return &CourseHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// ===== COURSE ENDPOINTS =====

// List returns the whole course catalog
// @Summary List courses
// @Description Get every course in the catalog. Store failures degrade to an empty list with an error description instead of a hard failure.
// @Tags courses
// @Accept json
// @Produce json
// @Success 200 {object} models.CourseListResponse
// @Router /courses [get]
func (h *CourseHandler) List(c *gin.Context) {
	h.LogRequest(c, "Listing courses")

	items, err := h.service.List(c.Request.Context())
	if err != nil {
		// Listing is best effort: catalog pages should render an empty
		// list rather than break when the store is unreachable.
		h.LogError(c, err, "Course listing failed")

		detail := err.Error()
		if errors.Is(err, services.ErrStoreUnavailable) {
			detail = "Database not available"
		}
		c.JSON(http.StatusOK, models.CourseListResponse{
			Items: []models.CourseItem{},
			Error: detail,
		})
		return
	}

	c.JSON(http.StatusOK, models.CourseListResponse{Items: items})
}

// ExportCatalog downloads the catalog as a spreadsheet
// @Summary Export the course catalog
// @Description Download the whole catalog as an xlsx workbook
// @Tags courses
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success 200 {file} file
// @Failure 500 {object} ErrorResponse "Database not available or export failed"
// @Router /courses/export [get]
func (h *CourseHandler) ExportCatalog(c *gin.Context) {
	h.LogRequest(c, "Exporting course catalog")

	workbook, err := h.service.ExportCatalog(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="courses.xlsx"`)
	c.Data(http.StatusOK, xlsxContentType, workbook)
}

// ===== ERROR HANDLING =====

func (h *CourseHandler) handleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrStoreUnavailable):
		c.JSON(http.StatusInternalServerError, ErrorResponse{Detail: "Database not available"})
	default:
		h.LogError(c, err, "Unexpected service error")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Detail: "Internal server error"})
	}
}
