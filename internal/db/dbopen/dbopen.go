// Package dbopen picks a db.Repository implementation from a database URL.
package dbopen

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jusunglee/hangulfun/internal/db"
	"github.com/jusunglee/hangulfun/internal/db/postgres"
	"github.com/jusunglee/hangulfun/internal/db/sqlite"
)

// Open returns the PostgreSQL repository for postgres:// URLs and the
// SQLite one for anything else, treating it as a file path.
func Open(ctx context.Context, databaseURL string, log *slog.Logger) (db.Repository, error) {
	if db.IsPostgresURL(databaseURL) {
		repo, err := postgres.New(ctx, databaseURL)
		if err != nil {
			return nil, fmt.Errorf("creating PostgreSQL connection: %w", err)
		}
		log.InfoContext(ctx, "connected to PostgreSQL database")
		return repo, nil
	}

	repo, err := sqlite.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("opening SQLite database: %w", err)
	}
	log.InfoContext(ctx, "opened SQLite database", "path", databaseURL)
	return repo, nil
}

// PoolStats returns the connection pool counters of a pooled repository.
func PoolStats(repo db.Repository) (func() *pgxpool.Stat, bool) {
	pooled, ok := repo.(interface{ PoolStats() *pgxpool.Stat })
	if !ok {
		return nil, false
	}
	return pooled.PoolStats, true
}
