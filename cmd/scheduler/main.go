package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/robfig/cron/v3"
	"github.com/segyhp/loan-backoffice/internal/cache"
	"github.com/segyhp/loan-backoffice/internal/config"
	"github.com/segyhp/loan-backoffice/internal/repository"
	"github.com/segyhp/loan-backoffice/internal/scheduler"
	"github.com/segyhp/loan-backoffice/internal/service"
	"github.com/segyhp/loan-backoffice/internal/storage"
	"github.com/segyhp/loan-backoffice/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger.New(cfg.Logging.Level, cfg.Logging.Format)
	slog.Info("starting snapshot scheduler")

	db, err := sqlx.Connect("postgres", cfg.Database.DSN())
	if err != nil {
		slog.Error("failed to initialize database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	store, err := storage.NewFromConfig(cfg.Storage)
	if err != nil {
		slog.Error("failed to initialize storage", "driver", cfg.Storage.Driver, "error", err)
		os.Exit(1)
	}

	// Snapshots always read fresh figures.
	reports := service.NewReportService(
		repository.NewReportRepository(db),
		repository.NewLoanRepository(db),
		cache.Noop{},
		cfg,
	)
	snapshot := scheduler.NewSnapshot(service.NewExportService(reports), store, cfg.Storage.Retention)

	// Initialize cron scheduler
	cronLogger := cron.VerbosePrintfLogger(log.New(os.Stdout, "cron: ", log.LstdFlags))
	c := cron.New(
		cron.WithSeconds(),
		cron.WithLocation(cfg.SchedulerLocation()),
		cron.WithChain(cron.Recover(cronLogger), cron.SkipIfStillRunning(cronLogger)),
	)

	// Schedule tasks
	if err := setupCronJobs(c, cfg, snapshot); err != nil {
		slog.Error("failed to schedule jobs", "error", err)
		os.Exit(1)
	}

	// Start the scheduler
	c.Start()
	slog.Info("scheduler started", "cron", cfg.Scheduler.SnapshotCron, "timezone", cfg.Scheduler.Timezone)

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down scheduler")
	<-c.Stop().Done()
	slog.Info("scheduler stopped")
}

func setupCronJobs(c *cron.Cron, cfg *config.Config, snapshot *scheduler.Snapshot) error {
	// Daily account-status snapshot
	_, err := c.AddFunc(cfg.Scheduler.SnapshotCron, func() {
		slog.Info("running account-status snapshot job")
		if _, err := snapshot.Run(context.Background()); err != nil {
			slog.Error("snapshot job failed", "error", err)
		}
	})
	return err
}
