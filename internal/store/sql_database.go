package store

import (
	"context"
	"fmt"
	"strings"

	"database/sql"

	"github.com/MKhiriev/go-api-template/internal/config"
	"github.com/MKhiriev/go-api-template/internal/logger"
)

// DB wraps the shared *sql.DB handle used by all repositories.
type DB struct {
	*sql.DB
	logger *logger.Logger
}

// NewConnect opens the database named by cfg.DSN and verifies the
// connection with a ping.
//
// The backend is selected from the DSN scheme: "postgres://" (or
// "postgresql://") connects through the pgx driver, "sqlite://" through
// the sqlite3 driver. SQLite is the development default, matching the
// template's out-of-the-box configuration; PostgreSQL is the production
// backend.
func NewConnect(ctx context.Context, cfg config.DB, log *logger.Logger) (*DB, error) {
	switch {
	case strings.HasPrefix(cfg.DSN, "postgres://"), strings.HasPrefix(cfg.DSN, "postgresql://"):
		return NewConnectPostgres(ctx, cfg, log)
	case strings.HasPrefix(cfg.DSN, "sqlite://"):
		return NewConnectSQLite(ctx, cfg, log)
	default:
		return nil, fmt.Errorf("unsupported database DSN: %q", cfg.DSN)
	}
}

// HealthCheck runs the cheapest possible query to confirm the database is
// reachable. It backs the /health/db and /health/detailed endpoints.
func (db *DB) HealthCheck(ctx context.Context) error {
	var one int
	if err := db.QueryRowContext(ctx, `SELECT 1`).Scan(&one); err != nil {
		return fmt.Errorf("database health check failed: %w", err)
	}
	return nil
}
