package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"
	"github.com/watchcall/watchcall/internal/repositories"
	"github.com/watchcall/watchcall/internal/server"
	"github.com/watchcall/watchcall/internal/shared"
	"github.com/watchcall/watchcall/internal/tasks"
)

// Serve runs the WatchCall HTTP backend with the availability sweep until
// interrupted.
func (r *Runner) Serve(ctx context.Context, cmd *cli.Command) error {
	config := r.loadConfig(cmd)

	if config.Server.JWTSecret == "" {
		return fmt.Errorf("%w: server.jwt_secret is required", shared.ErrMissingConfig)
	}
	if config.Catalog.APIKey == "" {
		r.logger.Warn("catalog.api_key is empty; catalog lookups will fail")
	}

	db, err := shared.NewDatabase(config.Database.Path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	shared.ConfigureDatabase(db, config.Database.MaxOpenConns, config.Database.MaxIdleConns)
	if err := shared.RunMigrations(db); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sweeper := tasks.NewSweeper(
		repositories.NewAvailabilityRepository(db),
		repositories.NewListRepository(db),
		r.logger,
		config.Server.SweepEvery(),
	)
	sweeper.Start(ctx)

	srv := server.New(config, db, r.logger)
	return srv.Start(ctx)
}
