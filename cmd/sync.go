package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	"github.com/gitelweb/ossync/internal/classify"
	"github.com/gitelweb/ossync/internal/repositories"
	"github.com/gitelweb/ossync/internal/services"
	"github.com/gitelweb/ossync/internal/shared"
	"github.com/gitelweb/ossync/internal/tasks"
	"github.com/urfave/cli/v3"
)

// strategyFunc is one of the [tasks.SyncEngine] strategy methods.
type strategyFunc func(*tasks.SyncEngine, context.Context, chan<- tasks.ProgressUpdate) (*tasks.SyncSummary, error)

// Setup initializes the database and runs migrations.
func (r *Runner) Setup(ctx context.Context, cmd *cli.Command) error {
	configPath := cmd.String("config")

	var config *shared.Config
	if _, err := os.Stat(configPath); err == nil {
		if config, err = shared.LoadConfig(configPath); err != nil {
			r.logger.Warn("failed to load config, using defaults", "error", err)
			config = shared.DefaultConfig()
		}
	} else {
		r.logger.Info("config file not found, creating from template", "path", configPath)
		if err := shared.CreateConfigFile(configPath); err != nil {
			r.logger.Warn("failed to create config file, using defaults", "error", err)
			config = shared.DefaultConfig()
		} else {
			r.logger.Info("config file created", "path", configPath)
			if config, err = shared.LoadConfig(configPath); err != nil {
				r.logger.Warn("failed to load created config, using defaults", "error", err)
				config = shared.DefaultConfig()
			}
		}
	}

	r.logger.Info("initializing database", "path", config.Database.Path)

	db, err := openDatabase(config)
	if err != nil {
		return err
	}
	defer db.Close()

	r.logger.Infof("setup complete for database: %v", config.Database.Path)
	return nil
}

// SyncFull probes the entire folio sequence.
func (r *Runner) SyncFull(ctx context.Context, cmd *cli.Command) error {
	return r.runStrategy(ctx, cmd, true, (*tasks.SyncEngine).FullScan)
}

// SyncPages walks the paginated listing.
func (r *Runner) SyncPages(ctx context.Context, cmd *cli.Command) error {
	return r.runStrategy(ctx, cmd, true, (*tasks.SyncEngine).PaginatedSync)
}

// SyncActive refreshes open and in-review orders.
func (r *Runner) SyncActive(ctx context.Context, cmd *cli.Command) error {
	return r.runStrategy(ctx, cmd, true, (*tasks.SyncEngine).RefreshActive)
}

// SyncGaps fetches folios missing from the local sequence.
func (r *Runner) SyncGaps(ctx context.Context, cmd *cli.Command) error {
	return r.runStrategy(ctx, cmd, true, (*tasks.SyncEngine).BackfillGaps)
}

// SyncDates fills missing review and maintenance dates.
func (r *Runner) SyncDates(ctx context.Context, cmd *cli.Command) error {
	return r.runStrategy(ctx, cmd, true, (*tasks.SyncEngine).BackfillDates)
}

// SyncNotes fills missing observations.
func (r *Runner) SyncNotes(ctx context.Context, cmd *cli.Command) error {
	return r.runStrategy(ctx, cmd, true, (*tasks.SyncEngine).BackfillObservations)
}

// Reclassify recomputes derived groups offline.
func (r *Runner) Reclassify(ctx context.Context, cmd *cli.Command) error {
	return r.runStrategy(ctx, cmd, false, (*tasks.SyncEngine).Reclassify)
}

// runStrategy wires config, database and API client together, runs one
// strategy and prints its summary. Offline strategies skip credential
// validation so reclassification works without API access.
func (r *Runner) runStrategy(ctx context.Context, cmd *cli.Command, online bool, run strategyFunc) error {
	config := r.loadConfig(cmd)

	opts, err := r.engineOptions(config, cmd)
	if err != nil {
		return err
	}

	db, err := openDatabase(config)
	if err != nil {
		return err
	}
	defer db.Close()

	var client *services.Client
	if online {
		creds, err := services.NewCredentialManager(config.Credentials)
		if err != nil {
			return err
		}
		client = services.NewClient(
			config.Credentials.BaseURL,
			creds,
			config.Sync.RequestTimeoutDuration(),
			r.httpClient,
			r.logger,
		)
	}

	engine := tasks.NewSyncEngine(
		client,
		repositories.NewWorkOrderRepository(db),
		repositories.NewTaskRepository(db),
		classify.New(classify.Options{SimilarityFloor: config.Classify.SimilarityFloor}),
		r.logger,
		opts,
	)

	prog := make(chan tasks.ProgressUpdate, 1)
	drained := make(chan struct{})
	go func() {
		defer close(drained)
		for update := range prog {
			r.logger.Debug(update.Message, "phase", update.Phase, "step", update.Step, "total", update.Total)
		}
	}()

	summary, err := run(engine, ctx, prog)
	close(prog)
	<-drained
	if err != nil {
		return err
	}

	return r.writeSummary(cmd, summary)
}

// loadConfig reads the flag-selected config file, falling back to the
// runner's config when the file is absent or malformed.
func (r *Runner) loadConfig(cmd *cli.Command) *shared.Config {
	configPath := cmd.String("config")
	if _, err := os.Stat(configPath); err != nil {
		return r.config
	}

	config, err := shared.LoadConfig(configPath)
	if err != nil {
		r.logger.Warn("failed to load config, using defaults", "error", err)
		return r.config
	}
	return config
}

// engineOptions merges config defaults with per-invocation flag overrides.
// Zero means "not set"; negative values are rejected.
func (r *Runner) engineOptions(config *shared.Config, cmd *cli.Command) (tasks.Options, error) {
	opts := tasks.Options{
		Workers:      config.Sync.Workers,
		PageSize:     config.Sync.PageSize,
		SafetyMargin: config.Sync.SafetyMargin,
		PageRate:     config.Sync.PageRateLimit,
	}

	overrides := []struct {
		name string
		dst  *int
	}{
		{"workers", &opts.Workers},
		{"page-size", &opts.PageSize},
		{"margin", &opts.SafetyMargin},
	}
	for _, o := range overrides {
		n := cmd.Int(o.name)
		if n < 0 {
			return opts, fmt.Errorf("%w: --%s must be positive, got %d", shared.ErrInvalidFlag, o.name, n)
		}
		if n > 0 {
			*o.dst = int(n)
		}
	}
	return opts, nil
}

func openDatabase(config *shared.Config) (*sql.DB, error) {
	db, err := shared.NewDatabase(config.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	shared.ConfigureDatabase(db, config.Database.MaxOpenConns, config.Database.MaxIdleConns)

	if err := shared.RunMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return db, nil
}

func (r *Runner) writeSummary(cmd *cli.Command, summary *tasks.SyncSummary) error {
	if cmd.Bool("json") {
		return r.writeJSON(summary, true)
	}

	r.writePlain("run %s (%s)\n", summary.RunID, summary.Strategy)
	r.writePlain("  targets:             %d\n", summary.Targets)
	r.writePlain("  work orders created: %d\n", summary.WorkOrdersCreated)
	r.writePlain("  work orders updated: %d\n", summary.WorkOrdersUpdated)
	r.writePlain("  tasks created:       %d\n", summary.TasksCreated)
	r.writePlain("  tasks updated:       %d\n", summary.TasksUpdated)
	r.writePlain("  not found:           %d\n", summary.NotFound)
	return r.writePlain("  errored:             %d\n", summary.Errored)
}
