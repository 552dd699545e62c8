// Command dbhealth opens the configured store, bootstraps the schema, and
// reports connectivity.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/zalahu/EnergyZ/internal/common"
	"github.com/zalahu/EnergyZ/internal/repository"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg := common.LoadConfig()
	ctx := context.Background()

	db, err := repository.Open(ctx, repository.Config{
		DSN:         cfg.Database.DSN,
		DialTimeout: cfg.Database.DialTimeout,
		TxTimeout:   cfg.Database.TxTimeout,
	}, logger)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close(logger)

	if err := repository.Migrate(ctx, db, logger); err != nil {
		logger.Error("failed to migrate schema", "error", err)
		os.Exit(1)
	}

	if err := db.HealthCheck(ctx, 5*time.Second); err != nil {
		logger.Error("database ping failed", "error", err)
		os.Exit(1)
	}

	projects := repository.NewProjectRepository(db, logger)
	records, err := projects.ListRecords(ctx)
	if err != nil {
		logger.Error("failed to count projects", "error", err)
		os.Exit(1)
	}

	fmt.Printf("ok: %s store healthy, %d project(s)\n", db.Dialect(), len(records))
}
