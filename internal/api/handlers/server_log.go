package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "fittrack.io/notifier/internal/pkg/errors"
	"fittrack.io/notifier/internal/pkg/logger"
)

// GetLogLevel handles GET /admin/log/level.
func (s *Server) GetLogLevel(c *gin.Context) {
	c.JSON(http.StatusOK, LogLevel{Level: logger.GetLevel().String()})
}

// SetLogLevel handles PUT /admin/log/level.
func (s *Server) SetLogLevel(c *gin.Context) {
	var req LogLevel
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(apperrors.Wrap(err, apperrors.CodeValidationFailed, "level is required", http.StatusBadRequest))
		return
	}
	if err := logger.SetLevel(req.Level); err != nil {
		_ = c.Error(apperrors.Wrap(err, apperrors.CodeValidationFailed, "unknown log level", http.StatusBadRequest))
		return
	}
	c.JSON(http.StatusOK, LogLevel{Level: logger.GetLevel().String()})
}
