// ABOUTME: Relational snapshot reader over database/sql.
// ABOUTME: SQLite via modernc.org/sqlite (pure Go, read-only) or Postgres via lib/pq.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// DB reads the four snapshot tables from a SQL database.
type DB struct {
	db     *sql.DB
	driver string
}

// OpenSQLite opens an existing SQLite snapshot read-only. Unlike the
// upstream writer it never creates the file.
func OpenSQLite(dbPath string) (*DB, error) {
	if _, err := os.Stat(dbPath); err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db, err := sql.Open("sqlite", "file:"+dbPath+"?mode=ro")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// pragmas are per connection
	db.SetMaxOpenConns(1)

	d := &DB{db: db, driver: "sqlite"}
	if err := d.configurePragmas(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("configure pragmas: %w", err)
	}
	return d, nil
}

// OpenPostgres connects to a Postgres snapshot using a lib/pq DSN.
func OpenPostgres(ctx context.Context, dsn string) (*DB, error) {
	if dsn == "" {
		return nil, fmt.Errorf("open database: postgres backend requires a dsn")
	}

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return &DB{db: db, driver: "postgres"}, nil
}

// Driver returns the database/sql driver name in use.
func (d *DB) Driver() string {
	return d.driver
}

// Close closes the database connection. It is safe on a nil DB.
func (d *DB) Close() error {
	if d != nil && d.db != nil {
		return d.db.Close()
	}
	return nil
}

// configurePragmas keeps the SQLite connection strictly read-only.
func (d *DB) configurePragmas() error {
	pragmas := []string{
		"PRAGMA query_only = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, err := d.db.Exec(pragma); err != nil {
			return fmt.Errorf("execute %s: %w", pragma, err)
		}
	}
	return nil
}
