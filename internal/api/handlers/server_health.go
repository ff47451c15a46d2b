package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"fittrack.io/notifier/internal/pkg/logger"
)

// GetLiveness handles GET /health/live.
func (s *Server) GetLiveness(c *gin.Context) {
	c.JSON(http.StatusOK, Health{Status: HealthStatusOk})
}

// GetReadiness handles GET /health/ready.
func (s *Server) GetReadiness(c *gin.Context) {
	checks := make(map[string]string)
	allHealthy := true

	err := errors.New("database not configured")
	if s.db != nil {
		err = s.db.Ping(c.Request.Context())
	}
	if err != nil {
		logger.Warn("readiness check failed", zap.String("check", "database"), zap.Error(err))
		checks["database"] = "error"
		allHealthy = false
	} else {
		checks["database"] = "ok"
	}

	resp := Health{Status: HealthStatusOk, Checks: checks}
	if s.poolMetrics != nil {
		resp.Workers = s.poolMetrics()
	}

	httpStatus := http.StatusOK
	if !allHealthy {
		resp.Status = HealthStatusDegraded
		httpStatus = http.StatusServiceUnavailable
	}
	c.JSON(httpStatus, resp)
}
