// Package bootstrap initializes logging and opens the configured task storage.
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"

	coreconfig "github.com/m3rciful/taskbot/core/config"
	coredatabase "github.com/m3rciful/taskbot/core/database"
	"github.com/m3rciful/taskbot/core/logger"
	"github.com/m3rciful/taskbot/core/tasks"
)

const defaultConnectWait = 30 * time.Second

// Options control the bootstrap pipeline. Nil funcs use the real implementations.
type Options struct {
	Config *coreconfig.Config

	LoggerInit func(*coreconfig.Config) error
	Connect    func(context.Context, coreconfig.DatabaseConfig, time.Duration) (*sqlx.DB, error)
	Migrate    func(coreconfig.DatabaseConfig) error
	// ConnectWait bounds how long Connect retries an unreachable database.
	ConnectWait time.Duration
}

// Result exposes infrastructure initialized by the bootstrap pipeline.
type Result struct {
	Store     *tasks.Store
	Persister tasks.Persister
	// DB is set only for the postgres backend.
	DB *sqlx.DB
}

// Close releases the database pool, if any.
func (r *Result) Close() error {
	if r == nil || r.DB == nil {
		return nil
	}
	return r.DB.Close()
}

// Run initializes the logger and then opens storage.
func Run(ctx context.Context, opts Options) (*Result, error) {
	if opts.Config == nil {
		return nil, errors.New("bootstrap: nil config provided")
	}
	loggerInit := opts.LoggerInit
	if loggerInit == nil {
		loggerInit = logger.InitLogger
	}
	if err := loggerInit(opts.Config); err != nil {
		return nil, fmt.Errorf("bootstrap: logger init failed: %w", err)
	}
	return OpenStorage(ctx, opts)
}

// OpenStorage builds the persister for the configured backend and loads the task list once.
func OpenStorage(ctx context.Context, opts Options) (*Result, error) {
	cfg := opts.Config
	if cfg == nil {
		return nil, errors.New("bootstrap: nil config provided")
	}

	res := &Result{}
	switch cfg.Storage.Backend {
	case coreconfig.BackendPostgres:
		db, err := openDatabase(ctx, opts)
		if err != nil {
			return nil, err
		}
		res.DB = db
		res.Persister = tasks.NewPostgres(db)
	default:
		res.Persister = tasks.NewJSONFile(cfg.Storage.Path)
	}

	store, err := tasks.Open(ctx, res.Persister)
	if err != nil {
		_ = res.Close()
		return nil, fmt.Errorf("bootstrap: %w", err)
	}
	res.Store = store

	logger.L.LogAttrs(ctx, slog.LevelInfo, "storage ready",
		slog.String("component", "app"),
		slog.String("event", "storage.open"),
		slog.String("backend", res.Persister.Name()),
		slog.Int("tasks", store.Len()),
	)
	return res, nil
}

func openDatabase(ctx context.Context, opts Options) (*sqlx.DB, error) {
	connect := opts.Connect
	if connect == nil {
		connect = coredatabase.Connect
	}
	migrate := opts.Migrate
	if migrate == nil {
		migrate = coredatabase.RunMigrations
	}
	wait := opts.ConnectWait
	if wait <= 0 {
		wait = defaultConnectWait
	}

	db, err := connect(ctx, opts.Config.Database, wait)
	if err != nil {
		return nil, fmt.Errorf("bootstrap: database initialization failed: %w", err)
	}
	if err := migrate(opts.Config.Database); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("bootstrap: migrations failed: %w", err)
	}
	return db, nil
}
