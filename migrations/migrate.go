package migrations

import (
	"database/sql"
	"embed"
	"fmt"
	"strings"

	"github.com/pressly/goose/v3"
)

//go:embed postgres/*.sql sqlite/*.sql
var embedMigrations embed.FS

// Migrate applies all pending migrations. The dialect and migration set
// are chosen from the DSN scheme: postgres DSNs run through pgx, anything
// else through sqlite3.
func Migrate(db *sql.DB, dsn string) error {
	goose.SetBaseFS(embedMigrations)

	dialect, dir := "sqlite3", "sqlite"
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		dialect, dir = "pgx", "postgres"
	}

	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("migration error setting dialect for db: %w", err)
	}

	if err := goose.Up(db, dir); err != nil {
		return fmt.Errorf("migration error: %w", err)
	}

	return nil
}
