// Package sqlite provides SQLite-based storage for catalog records.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/fwojciec/worldart"
	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
)

// DB represents a SQLite database connection.
type DB struct {
	db   *sql.DB
	path string

	// Host is the catalog host whose stored source links are repaired on Open.
	Host string
}

// NewDB creates a new DB instance with the given path.
// Use ":memory:" for an in-memory database.
func NewDB(path string) *DB {
	return &DB{path: path, Host: worldart.DefaultHost}
}

// Open opens the database connection, creates the schema if needed and
// repairs malformed source links left by older releases.
func (db *DB) Open() error {
	conn, err := sql.Open("sqlite3", db.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports one writer at a time, so limit to one connection.
	conn.SetMaxOpenConns(1)

	if err := conn.Ping(); err != nil {
		conn.Close()
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	// Wait 5 seconds before failing on lock contention.
	if _, err := conn.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		conn.Close()
		return fmt.Errorf("failed to set busy timeout: %w", err)
	}

	// WAL mode is not supported for in-memory databases.
	if db.path != ":memory:" {
		if _, err := conn.Exec("PRAGMA journal_mode = WAL"); err != nil {
			conn.Close()
			return fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if _, err := conn.Exec("PRAGMA foreign_keys = ON"); err != nil {
		conn.Close()
		return fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	db.db = conn

	if err := db.createSchema(); err != nil {
		conn.Close()
		return fmt.Errorf("failed to create schema: %w", err)
	}

	if _, err := db.RepairSources(context.Background()); err != nil {
		conn.Close()
		return fmt.Errorf("failed to repair sources: %w", err)
	}

	return nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	if db.db != nil {
		return db.db.Close()
	}
	return nil
}

// QueryRowContext executes a query that returns a single row.
func (db *DB) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	return db.db.QueryRowContext(ctx, query, args...)
}

// QueryContext executes a query that returns rows.
func (db *DB) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return db.db.QueryContext(ctx, query, args...)
}

// ExecContext executes a statement that doesn't return rows.
func (db *DB) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return db.db.ExecContext(ctx, query, args...)
}

// BeginTx starts a transaction.
func (db *DB) BeginTx(ctx context.Context) (*sql.Tx, error) {
	return db.db.BeginTx(ctx, nil)
}

// createSchema creates the database tables if they don't exist.
func (db *DB) createSchema() error {
	schema := `
		CREATE TABLE IF NOT EXISTS records (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL DEFAULT '',
			names TEXT NOT NULL DEFAULT '[]',
			type TEXT NOT NULL DEFAULT '',
			duration INTEGER NOT NULL DEFAULT 0,
			episodes INTEGER NOT NULL DEFAULT 0,
			episodes_unbounded INTEGER NOT NULL DEFAULT 0,
			date_premiere TEXT NOT NULL DEFAULT '',
			date_end TEXT NOT NULL DEFAULT '',
			country TEXT NOT NULL DEFAULT '',
			studio TEXT NOT NULL DEFAULT '',
			genres TEXT NOT NULL DEFAULT '[]',
			summary TEXT NOT NULL DEFAULT '',
			episode_list TEXT NOT NULL DEFAULT '',
			file_info TEXT NOT NULL DEFAULT '',
			cover TEXT NOT NULL DEFAULT '',
			frames TEXT NOT NULL DEFAULT '[]',
			created_at TEXT NOT NULL,
			updated_at TEXT NOT NULL
		);

		CREATE TABLE IF NOT EXISTS record_sources (
			record_id TEXT NOT NULL REFERENCES records(id) ON DELETE CASCADE,
			position INTEGER NOT NULL,
			url TEXT NOT NULL,
			PRIMARY KEY (record_id, position)
		);

		CREATE INDEX IF NOT EXISTS idx_records_name ON records(name);
		CREATE INDEX IF NOT EXISTS idx_record_sources_url ON record_sources(url);
	`

	_, err := db.db.Exec(schema)
	return err
}

// RepairSources rewrites stored source links that lost the slash between
// the catalog host and the dialect directory. It returns the number of
// links rewritten and is safe to run repeatedly.
func (db *DB) RepairSources(ctx context.Context) (int, error) {
	host := strings.TrimRight(db.Host, "/")
	rows, err := db.db.QueryContext(ctx, `SELECT DISTINCT url FROM record_sources WHERE url LIKE ? OR url LIKE ?`,
		host+string(worldart.DialectAnimation)+"/%",
		host+string(worldart.DialectCinema)+"/%")
	if err != nil {
		return 0, err
	}
	var broken []string
	for rows.Next() {
		var u string
		if err := rows.Scan(&u); err != nil {
			rows.Close()
			return 0, err
		}
		broken = append(broken, u)
	}
	if err := rows.Close(); err != nil {
		return 0, err
	}
	if err := rows.Err(); err != nil {
		return 0, err
	}

	var repaired int
	for _, u := range broken {
		fixed := worldart.RepairSourceURL(db.Host, u)
		if fixed == u {
			continue
		}
		res, err := db.db.ExecContext(ctx, `UPDATE record_sources SET url = ? WHERE url = ?`, fixed, u)
		if err != nil {
			return repaired, err
		}
		n, err := res.RowsAffected()
		if err != nil {
			return repaired, err
		}
		repaired += int(n)
	}
	return repaired, nil
}
