// Package todos wires configuration, the journal backend, the event bus, and
// the store into the App that commands and the TUI consume.
package todos

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/colonyops/todos/internal/core/config"
	"github.com/colonyops/todos/internal/core/doctor"
	"github.com/colonyops/todos/internal/core/eventbus"
	"github.com/colonyops/todos/internal/core/journal"
	"github.com/colonyops/todos/internal/core/store"
	"github.com/colonyops/todos/internal/data/db"
	"github.com/colonyops/todos/internal/data/stores"
	"github.com/colonyops/todos/internal/store/jsonfile"
	"github.com/rs/zerolog"
)

const busBufferSize = 64

// App is the central entry point for todo operations.
// Commands and TUI consume App instead of cherry-picking raw dependencies.
type App struct {
	Config  *config.Config
	Store   *store.Store
	Journal journal.Journal
	Bus     *eventbus.EventBus

	db     *db.DB
	log    zerolog.Logger
	cancel context.CancelFunc
}

// Open builds the journal selected by cfg, starts the event bus, and replays
// the journal into a new store.
func Open(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*App, error) {
	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	app := &App{
		Config: cfg,
		log:    log.With().Str("component", "app").Logger(),
	}

	switch cfg.Journal.Backend {
	case journal.BackendJSONFile:
		app.Journal = jsonfile.NewJournalStore(cfg.JournalFile())
	case journal.BackendSQLite:
		database, err := openDB(cfg, app.log)
		if err != nil {
			return nil, err
		}
		app.db = database
		app.Journal = stores.NewActionStore(database)
	default:
		return nil, fmt.Errorf("unknown journal backend %q", cfg.Journal.Backend)
	}

	busCtx, cancel := context.WithCancel(context.Background())
	app.cancel = cancel
	app.Bus = eventbus.New(busBufferSize)
	eventbus.RegisterDebugLogger(app.Bus, log)
	go app.Bus.Start(busCtx)

	app.Store = store.New(store.Options{
		Journal: app.Journal,
		Bus:     app.Bus,
		Logger:  log,
		Filter:  cfg.DefaultFilter,
	})

	if err := app.Store.Load(ctx); err != nil {
		_ = app.Close()
		return nil, err
	}

	app.log.Debug().
		Str("backend", string(cfg.Journal.Backend)).
		Int64("seq", app.Store.LastSeq()).
		Msg("app ready")

	return app, nil
}

func openDB(cfg *config.Config, log zerolog.Logger) (*db.DB, error) {
	opts := db.OpenOptions{
		MaxOpenConns: cfg.Database.MaxOpenConns,
		MaxIdleConns: cfg.Database.MaxIdleConns,
		BusyTimeout:  cfg.Database.BusyTimeout,
	}

	database, err := db.Open(cfg.DataDir, opts)
	if err == nil {
		return database, nil
	}
	if !stores.IsCorruptionError(err) {
		return nil, fmt.Errorf("open database: %w", err)
	}

	backup, recoverErr := stores.RecoverFromCorruption(cfg.DataDir)
	if recoverErr != nil {
		return nil, fmt.Errorf("recover database: %w", recoverErr)
	}
	log.Warn().Err(err).Str("backup", backup).Msg("database was corrupt, starting a new journal")

	database, err = db.Open(cfg.DataDir, opts)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return database, nil
}

// WatchPath is the file whose writes indicate that another process
// appended to the journal.
func (a *App) WatchPath() string {
	if a.Config.Journal.Backend == journal.BackendSQLite {
		return filepath.Join(a.Config.DataDir, db.Filename) + "-wal"
	}
	return a.Config.JournalFile()
}

// NewWatcher starts a watcher on WatchPath. The caller owns the watcher.
func (a *App) NewWatcher() (*jsonfile.JournalWatcher, error) {
	return jsonfile.NewJournalWatcher(a.WatchPath(), a.log)
}

// RunChecks runs the doctor checks that apply to the configured backend.
func (a *App) RunChecks(ctx context.Context, configPath string) []doctor.Result {
	checks := []doctor.Check{
		doctor.NewConfigCheck(a.Config, configPath),
		doctor.NewJournalCheck(a.Journal, a.Config.Journal.Backend),
	}
	if a.db != nil {
		checks = append(checks, doctor.NewDatabaseCheck(a.db.Conn()))
	}
	return doctor.RunAll(ctx, checks)
}

// Close stops the event bus and releases the database.
func (a *App) Close() error {
	if a.cancel != nil {
		a.cancel()
	}
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			return fmt.Errorf("close database: %w", err)
		}
	}
	return nil
}
