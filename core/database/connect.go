package database

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	coreconfig "github.com/m3rciful/taskbot/core/config"
	"github.com/m3rciful/taskbot/core/logger"
)

// DSN builds a postgres:// URL usable by both lib/pq and golang-migrate.
func DSN(cfg coreconfig.DatabaseConfig) string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(cfg.User, cfg.Password),
		Host:     cfg.Host + ":" + cfg.Port,
		Path:     "/" + cfg.Name,
		RawQuery: url.Values{"sslmode": []string{cfg.SSLMode}}.Encode(),
	}
	return u.String()
}

// Connect opens the database connection, configures the pool, and verifies connectivity.
// It retries until wait elapses so the bot can start alongside its database container.
func Connect(ctx context.Context, cfg coreconfig.DatabaseConfig, wait time.Duration) (*sqlx.DB, error) {
	start := time.Now()
	deadline := start.Add(wait)
	var lastErr error
	for attempt := 1; ; attempt++ {
		db, err := connectOnce(ctx, cfg)
		if err == nil {
			db.SetMaxOpenConns(cfg.MaxConnections)
			db.SetMaxIdleConns(cfg.MaxConnections)
			logger.DB.Info("db connected",
				slog.String("event", "db.connect"),
				slog.String("host", cfg.Host),
				slog.String("port", cfg.Port),
				slog.String("db", cfg.Name),
				slog.Int("pool_open", cfg.MaxConnections),
				slog.Int("attempts", attempt),
				slog.Duration("duration", logger.Took(start)),
			)
			return db, nil
		}
		lastErr = err
		if time.Now().After(deadline) {
			break
		}
		logger.DB.Debug("db not ready",
			slog.String("event", "db.connect"),
			slog.String("status", "retry"),
			slog.Int("attempts", attempt),
			slog.String("err", err.Error()),
		)
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(2 * time.Second):
		}
	}

	logger.DB.Error("db connect failed",
		slog.String("event", "db.connect"),
		slog.String("status", "fail"),
		slog.String("host", cfg.Host),
		slog.String("port", cfg.Port),
		slog.String("db", cfg.Name),
		slog.Duration("duration", logger.Took(start)),
		slog.String("err", lastErr.Error()),
	)
	return nil, fmt.Errorf("db connect: %w", lastErr)
}

func connectOnce(ctx context.Context, cfg coreconfig.DatabaseConfig) (*sqlx.DB, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	db, err := sqlx.ConnectContext(ctx, "postgres", DSN(cfg))
	if err != nil {
		return nil, err
	}
	return db, nil
}
