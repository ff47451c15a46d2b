// Package app is the composition root: it builds modules, registers River
// workers and periodic jobs, and assembles the ops HTTP router.
package app

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/riverqueue/river"

	"fittrack.io/notifier/internal/api/handlers"
	"fittrack.io/notifier/internal/app/modules"
	"fittrack.io/notifier/internal/config"
	"fittrack.io/notifier/internal/infrastructure"
	"fittrack.io/notifier/internal/pkg/worker"
)

// Application holds composed application dependencies.
type Application struct {
	Config  *config.Config
	Router  *gin.Engine
	DB      *infrastructure.DatabaseClients
	Pools   *worker.Pools
	Modules []modules.Module
}

// Bootstrap initializes all dependencies using module-oriented manual DI.
func Bootstrap(ctx context.Context, cfg *config.Config) (*Application, error) {
	infra, err := modules.NewInfrastructure(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("init infrastructure: %w", err)
	}

	notificationModule := modules.NewNotificationModule(infra)
	schedulerModule := modules.NewSchedulerModule(infra, notificationModule.Sender())
	allModules := []modules.Module{notificationModule, schedulerModule}

	workers := river.NewWorkers()
	var periodic []*river.PeriodicJob
	for _, mod := range allModules {
		mod.RegisterWorkers(workers)
		jobs, err := mod.PeriodicJobs()
		if err != nil {
			infra.Close()
			return nil, fmt.Errorf("%s periodic jobs: %w", mod.Name(), err)
		}
		periodic = append(periodic, jobs...)
	}
	if err := infra.InitRiver(workers, periodic); err != nil {
		infra.Close()
		return nil, fmt.Errorf("init river workers: %w", err)
	}

	server := handlers.NewServer(modules.NewServerDeps(infra, allModules))

	return &Application{
		Config:  cfg,
		Router:  newRouter(server),
		DB:      infra.DB,
		Pools:   infra.Pools,
		Modules: allModules,
	}, nil
}
