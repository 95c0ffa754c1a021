package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/lysyi3m/podcast-press/app/cfg"
	"github.com/lysyi3m/podcast-press/app/database"
	"github.com/lysyi3m/podcast-press/app/feed"
	"github.com/lysyi3m/podcast-press/app/logging"
	"github.com/lysyi3m/podcast-press/app/tasks"
	"github.com/lysyi3m/podcast-press/app/wordpress"
)

func main() {
	if err := run(); err != nil {
		slog.Error("Sync failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	appCfg, err := cfg.Load()
	if err != nil {
		return err
	}
	if appCfg == nil {
		// Help was shown
		return nil
	}

	closeLog, err := logging.Setup(logging.Options{
		Debug:   appCfg.Debug,
		LogFile: appCfg.LogFile,
		RunID:   uuid.NewString(),
	})
	if err != nil {
		return fmt.Errorf("failed to set up logging: %w", err)
	}
	defer closeLog()

	slog.Info("Starting podcast sync",
		"version", appCfg.Version,
		"max_age_days", appCfg.MaxAgeDays,
		"dry_run", appCfg.DryRun)

	feedConfigs, err := feed.LoadConfigs(appCfg.FeedsFile)
	if err != nil {
		return fmt.Errorf("failed to load feed configurations: %w", err)
	}
	slog.Info("Feed configurations loaded", "count", len(feedConfigs))

	var ledger tasks.Ledger
	if appCfg.LedgerPath != "" {
		db, err := database.NewConnection(appCfg.LedgerPath)
		if err != nil {
			return fmt.Errorf("failed to open publish ledger: %w", err)
		}
		defer db.Close()

		version, _, err := database.RunMigrations(db)
		if err != nil {
			return fmt.Errorf("failed to migrate publish ledger: %w", err)
		}
		slog.Info("Publish ledger ready", "path", db.Path(), "schema_version", version)
		ledger = database.NewEpisodeRepository(db)
	}

	httpClient := &http.Client{Timeout: appCfg.Timeout}

	deps := tasks.Dependencies{
		HTTPClient:  httpClient,
		Parser:      feed.NewParser(),
		Filterer:    feed.NewFilterer(appCfg.MaxAgeDays),
		Transformer: feed.NewTransformer(nil),
		Publisher: wordpress.NewClient(appCfg.APIURL, appCfg.Username, appCfg.Password,
			wordpress.WithHTTPClient(httpClient),
			wordpress.WithUserAgent(appCfg.UserAgent)),
		Ledger:    ledger,
		UserAgent: appCfg.UserAgent,
		DryRun:    appCfg.DryRun,
	}

	syncTasks := make([]tasks.TaskInterface, 0, len(feedConfigs))
	for _, feedConfig := range feedConfigs {
		syncTasks = append(syncTasks, tasks.NewSyncFeedTask(feedConfig, deps))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	summary := tasks.NewRunner().Run(ctx, syncTasks)

	slog.Info("Podcast sync finished",
		"feeds", len(syncTasks),
		"succeeded", summary.Succeeded,
		"failed", summary.Failed,
		"cancelled", summary.Cancelled)

	return nil
}
