package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"fittrack.io/notifier/internal/domain"
	apperrors "fittrack.io/notifier/internal/pkg/errors"
	"fittrack.io/notifier/internal/pkg/logger"
	"fittrack.io/notifier/internal/sweep"
)

// TriggerSweep handles POST /admin/sweeps/:kind. The sweep runs on the
// detached worker pool; the response does not wait for it.
func (s *Server) TriggerSweep(c *gin.Context) {
	raw := c.Param("kind")
	kind, err := domain.ParseSweepKind(raw)
	if err != nil || s.sweeps == nil || !s.sweeps.Has(kind) {
		_ = c.Error(apperrors.ErrSweepUnknownf(raw))
		return
	}
	if s.sweeps.Running(kind) {
		_ = c.Error(apperrors.ErrSweepAlreadyRunningf(raw))
		return
	}

	now := s.now()
	err = s.tasks.SubmitDetached(func(ctx context.Context) {
		if _, err := s.sweeps.Run(ctx, kind, now); err != nil {
			if errors.Is(err, sweep.ErrSweepRunning) {
				logger.Warn("manual sweep skipped: already running", zap.String("kind", raw))
				return
			}
			logger.Error("manual sweep failed", zap.String("kind", raw), zap.Error(err))
		}
	})
	if err != nil {
		_ = c.Error(apperrors.ServiceUnavailable(apperrors.CodePoolUnavailable, "worker pool unavailable"))
		return
	}

	logger.Info("manual sweep accepted", zap.String("kind", raw))
	c.JSON(http.StatusAccepted, SweepAccepted{Kind: raw, Status: "accepted"})
}
