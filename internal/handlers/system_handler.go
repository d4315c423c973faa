package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/openelearn/platform-service/internal/models"
	"github.com/openelearn/platform-service/internal/services"
	"github.com/openelearn/platform-service/internal/utils"
)

type SystemHandler struct {
	BaseHandler
	service services.SystemService
}

func NewSystemHandler(service services.SystemService, logger utils.Logger) *SystemHandler {
	return &SystemHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// ===== SYSTEM ENDPOINTS =====

// Root confirms the backend is up
// @Summary Service banner
// @Description Landing message confirming the backend is running
// @Tags system
// @Produce json
// @Success 200 {object} models.RootResponse
// @Router / [get]
func (h *SystemHandler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, models.RootResponse{Message: "eLearning backend running"})
}

// Diagnostics reports backend and store connectivity
// @Summary Connectivity diagnostics
// @Description Report backend status, store reachability, configured env vars and visible collections. Never fails; problems are folded into the response fields.
// @Tags system
// @Produce json
// @Success 200 {object} models.DiagnosticsResponse
// @Router /test [get]
func (h *SystemHandler) Diagnostics(c *gin.Context) {
	h.LogRequest(c, "Running connectivity diagnostics")

	c.JSON(http.StatusOK, h.service.Diagnostics(c.Request.Context()))
}
