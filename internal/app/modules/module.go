// Package modules contains the dependency modules of the composition root.
//
// Import Path: fittrack.io/notifier/internal/app/modules
package modules

import (
	"context"

	"github.com/riverqueue/river"

	"fittrack.io/notifier/internal/api/handlers"
)

// Module represents a domain-specific dependency unit in the composition root.
type Module interface {
	// Name returns a stable module identifier for logging/debugging.
	Name() string

	// ContributeServerDeps injects module-owned dependencies into the HTTP server deps.
	ContributeServerDeps(*handlers.ServerDeps)

	// RegisterWorkers registers module workers into a shared River worker registry.
	RegisterWorkers(*river.Workers)

	// PeriodicJobs returns the module's scheduled jobs.
	PeriodicJobs() ([]*river.PeriodicJob, error)

	// Shutdown performs module-local graceful cleanup.
	Shutdown(context.Context) error
}
