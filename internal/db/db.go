// Package db persists completed scans to SQLite, the way eargollo/ditto's
// internal/db opens its database and runs goose migrations: an embedded
// migrations/ directory applied with pressly/goose/v3 on every Open, instead
// of dug's inline CREATE TABLE IF NOT EXISTS strings. The schema itself is
// much narrower than dug's — mdu records one row per finished root scan
// (internal/traversal's output already accumulated), not a full per-entry
// crawl, so there is nothing here resembling dug's entries/rollups/dirs
// tables or its directory cache.
package db

import (
	"database/sql"
	"embed"
	"fmt"

	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Open opens (creating if necessary) the sqlite database at path and brings
// its schema up to date via goose. An empty path opens an in-memory
// database, useful for tests.
func Open(path string) (*sql.DB, error) {
	if path == "" {
		path = ":memory:"
	}

	database, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database %q: %w", path, err)
	}

	if err := applyPragmas(database); err != nil {
		database.Close()
		return nil, err
	}

	goose.SetBaseFS(migrationsFS)
	if err := goose.SetDialect("sqlite3"); err != nil {
		database.Close()
		return nil, fmt.Errorf("set goose dialect: %w", err)
	}
	if err := goose.Up(database, "migrations"); err != nil {
		database.Close()
		return nil, fmt.Errorf("apply migrations: %w", err)
	}

	return database, nil
}

func applyPragmas(database *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA foreign_keys = ON",
	}
	for _, pragma := range pragmas {
		if _, err := database.Exec(pragma); err != nil {
			return fmt.Errorf("apply pragma %q: %w", pragma, err)
		}
	}
	return nil
}
