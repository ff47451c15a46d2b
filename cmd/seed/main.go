// Package main loads the workout catalog (and optional demo users) into the
// notifier database. Re-running it updates rows in place.
//
// Import Path: fittrack.io/notifier/cmd/seed
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"fittrack.io/notifier/internal/config"
	"fittrack.io/notifier/internal/infrastructure"
	"fittrack.io/notifier/internal/pkg/logger"
	"fittrack.io/notifier/internal/repository/postgres"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "seed error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	catalogPath := flag.String("catalog", "config/workouts.yaml", "path to the workout catalog YAML file")
	migrate := flag.Bool("migrate", false, "apply the schema before seeding")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if err := logger.Init(cfg.Log.Level, cfg.Log.Format); err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Sync()

	f, err := os.Open(*catalogPath)
	if err != nil {
		return fmt.Errorf("open catalog: %w", err)
	}
	defer f.Close()

	catalog, err := parseCatalog(f, time.Now().UTC())
	if err != nil {
		return err
	}

	ctx := context.Background()
	db, err := infrastructure.NewDatabaseClients(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("init database: %w", err)
	}
	defer db.Close()

	if *migrate {
		if err := db.AutoMigrate(ctx); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}

	logger.Info("Starting data seeding...", zap.String("catalog", *catalogPath))
	if err := seed(ctx, db.Store, catalog); err != nil {
		return err
	}
	logger.Info("Data seeding completed successfully",
		zap.Int("workouts", len(catalog.Workouts)),
		zap.Int("users", len(catalog.Users)),
	)
	return nil
}

func seed(ctx context.Context, store *postgres.Store, catalog catalogFile) error {
	if _, err := store.UpsertWorkouts(ctx, catalog.Workouts); err != nil {
		return fmt.Errorf("seed workouts: %w", err)
	}
	for _, u := range catalog.Users {
		if err := store.UpsertUser(ctx, u.toDomain()); err != nil {
			return fmt.Errorf("seed users: %w", err)
		}
		for _, g := range u.Goals {
			if err := store.UpsertGoal(ctx, g.toDomain(u.ID)); err != nil {
				return fmt.Errorf("seed goals: %w", err)
			}
		}
	}
	return nil
}
