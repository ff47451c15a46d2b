package modules

import (
	"fittrack.io/notifier/internal/api/handlers"
)

// NewServerDeps builds base server deps then lets each module contribute explicit wiring.
func NewServerDeps(infra *Infrastructure, mods []Module) handlers.ServerDeps {
	var deps handlers.ServerDeps
	if infra != nil {
		if infra.DB != nil && infra.DB.Pool != nil {
			deps.DB = infra.DB.Pool
		}
		if infra.Pools != nil {
			deps.PoolMetrics = infra.Pools.Metrics
		}
	}
	for _, mod := range mods {
		if mod == nil {
			continue
		}
		mod.ContributeServerDeps(&deps)
	}
	return deps
}
