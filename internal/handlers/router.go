package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/openelearn/platform-service/internal/services"
	"github.com/openelearn/platform-service/internal/utils"
)

type HandlerManager struct {
	authHandler   *AuthHandler
	courseHandler *CourseHandler
	systemHandler *SystemHandler
}

func NewHandlerManager(
	serviceManager services.ServiceManager,
	logger utils.Logger,
) *HandlerManager {
	return &HandlerManager{
		authHandler:   NewAuthHandler(serviceManager.Auth(), logger),
		courseHandler: NewCourseHandler(serviceManager.Course(), logger),
		systemHandler: NewSystemHandler(serviceManager.System(), logger),
	}
}

// SetupRoutes sets up all API routes
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	// Landing and diagnostics
	router.GET("/", hm.systemHandler.Root)
	router.GET("/test", hm.systemHandler.Diagnostics)

	// Auth routes
	auth := router.Group("/auth")
	{
		auth.POST("/register", hm.authHandler.Register)
		auth.POST("/login", hm.authHandler.Login)
	}

	// Course routes
	courses := router.Group("/courses")
	{
		courses.GET("", hm.courseHandler.List)
		courses.GET("/export", hm.courseHandler.ExportCatalog)
	}

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"service": "platform-service",
		})
	})
}
