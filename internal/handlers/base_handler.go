package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/openelearn/platform-service/internal/utils"
)

// BaseHandler provides the shared logging helpers embedded by every
// concrete handler.
type BaseHandler struct {
	logger utils.Logger
}

func NewBaseHandler(logger utils.Logger) BaseHandler {
	return BaseHandler{logger: logger}
}

// requestLogger returns the request-scoped logger when the context
// middleware stored one, otherwise the handler's own logger.
func (h *BaseHandler) requestLogger(c *gin.Context) utils.Logger {
	if value, exists := c.Get(utils.LoggerKey); exists {
		if logger, ok := value.(utils.Logger); ok {
			return logger
		}
	}
	return h.logger
}

// LogRequest logs the start of handler work.
func (h *BaseHandler) LogRequest(c *gin.Context, msg string, args ...any) {
	h.requestLogger(c).Info(msg, args...)
}

// LogError logs a handler-level failure with the error attached.
func (h *BaseHandler) LogError(c *gin.Context, err error, msg string, args ...any) {
	args = append(args, "error", err)
	h.requestLogger(c).Error(msg, args...)
}
