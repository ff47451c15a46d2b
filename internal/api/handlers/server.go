// Package handlers implements the notifier's ops HTTP API.
//
// Route registration lives in internal/app; handlers do NOT register their
// own routes.
//
// Import Path: fittrack.io/notifier/internal/api/handlers
package handlers

import (
	"context"
	"time"

	"fittrack.io/notifier/internal/domain"
	"fittrack.io/notifier/internal/notification"
	"fittrack.io/notifier/internal/pkg/worker"
	"fittrack.io/notifier/internal/sweep"
)

// Pinger checks database connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Announcer sends bulk system announcements.
type Announcer interface {
	Announce(ctx context.Context, ann notification.Announcement) (int, error)
}

// SweepRunner runs sweeps on demand. *sweep.Runner satisfies it.
type SweepRunner interface {
	Has(kind domain.SweepKind) bool
	Running(kind domain.SweepKind) bool
	Run(ctx context.Context, kind domain.SweepKind, now time.Time) (sweep.Result, error)
}

// TaskSubmitter runs work detached from the request. *worker.Pools satisfies it.
type TaskSubmitter interface {
	SubmitDetached(task worker.Task) error
}

// InboxReader lists a user's notifications.
type InboxReader interface {
	ListNotifications(ctx context.Context, userID string, limit int) ([]domain.Notification, error)
}

// Server implements all ops API handlers.
type Server struct {
	db          Pinger
	announcer   Announcer
	sweeps      SweepRunner
	tasks       TaskSubmitter
	inbox       InboxReader
	poolMetrics func() map[string]interface{}
	now         func() time.Time
}

// ServerDeps holds all dependencies for creating a Server.
type ServerDeps struct {
	DB          Pinger
	Announcer   Announcer
	Sweeps      SweepRunner
	Tasks       TaskSubmitter
	Inbox       InboxReader
	PoolMetrics func() map[string]interface{} // Optional
}

// NewServer creates a new Server with all dependencies.
func NewServer(deps ServerDeps) *Server {
	return &Server{
		db:          deps.DB,
		announcer:   deps.Announcer,
		sweeps:      deps.Sweeps,
		tasks:       deps.Tasks,
		inbox:       deps.Inbox,
		poolMetrics: deps.PoolMetrics,
		now:         time.Now,
	}
}
