// Package database persists workspaces, goals, habits, relations, and
// completion logs in SQLite.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

const defaultDBTimeout = 5 * time.Second

// Database wraps the SQLite handle and owns all persistence operations.
type Database struct {
	DB *sql.DB
}

// Open opens (or creates) the database at path and applies the schema.
func Open(ctx context.Context, path string) (*Database, error) {
	db, err := sql.Open("sqlite3", path+"?_foreign_keys=on&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	d := &Database{DB: db}

	ctx, cancel := d.withTimeout(ctx, defaultDBTimeout)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	if err := d.createTables(ctx); err != nil {
		db.Close()
		return nil, err
	}
	d.migrate(ctx)
	return d, nil
}

// Close releases the underlying handle.
func (d *Database) Close() error {
	return d.DB.Close()
}

func (d *Database) withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithTimeout(ctx, timeout)
}

// WithTx runs fn inside a transaction, rolling back on error.
func (d *Database) WithTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	ctx, cancel := d.withTimeout(ctx, defaultDBTimeout)
	defer cancel()
	tx, err := d.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit()
}

// withDBContextResult applies the default timeout around a query returning a value.
func withDBContextResult[T any](d *Database, ctx context.Context, fn func(ctx context.Context) (T, error)) (T, error) {
	ctx, cancel := d.withTimeout(ctx, defaultDBTimeout)
	defer cancel()
	return fn(ctx)
}

func (d *Database) createTables(ctx context.Context) error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS workspaces (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			slug TEXT UNIQUE,
			theme TEXT DEFAULT 'default'
		);`,
		`CREATE TABLE IF NOT EXISTS goals (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			parent_id INTEGER,
			workspace_id INTEGER,
			name TEXT NOT NULL,
			notes TEXT,
			status TEXT DEFAULT 'active',
			rank INTEGER DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			completed_at DATETIME,
			archived_at DATETIME,
			FOREIGN KEY(parent_id) REFERENCES goals(id),
			FOREIGN KEY(workspace_id) REFERENCES workspaces(id)
		);`,
		`CREATE TABLE IF NOT EXISTS habits (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			goal_id INTEGER NOT NULL,
			name TEXT NOT NULL,
			status TEXT DEFAULT 'active',
			tags TEXT,
			completion_count INTEGER DEFAULT 0,
			completion_target INTEGER DEFAULT 0,
			rank INTEGER DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY(goal_id) REFERENCES goals(id)
		);`,
		`CREATE TABLE IF NOT EXISTS habit_relations (
			habit_id INTEGER NOT NULL,
			related_habit_id INTEGER NOT NULL,
			relation TEXT NOT NULL,
			PRIMARY KEY (habit_id, related_habit_id, relation),
			FOREIGN KEY(habit_id) REFERENCES habits(id),
			FOREIGN KEY(related_habit_id) REFERENCES habits(id)
		);`,
		`CREATE TABLE IF NOT EXISTS completion_logs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			habit_id INTEGER NOT NULL,
			date TEXT NOT NULL,
			note TEXT,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY(habit_id) REFERENCES habits(id)
		);`,
		`CREATE TABLE IF NOT EXISTS settings (
			key TEXT PRIMARY KEY,
			value TEXT
		);`,
	}

	for _, query := range queries {
		if _, err := d.DB.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("create table: %w: %s", err, query)
		}
	}
	return nil
}

// migrate applies additive column migrations for databases created by older
// builds. ALTER failures on already-present columns are expected.
func (d *Database) migrate(ctx context.Context) {
	_, _ = d.DB.ExecContext(ctx, "ALTER TABLE workspaces ADD COLUMN theme TEXT DEFAULT 'default'")
	_, _ = d.DB.ExecContext(ctx, "ALTER TABLE goals ADD COLUMN notes TEXT")
	_, _ = d.DB.ExecContext(ctx, "ALTER TABLE goals ADD COLUMN archived_at DATETIME")
	_, _ = d.DB.ExecContext(ctx, "ALTER TABLE habits ADD COLUMN tags TEXT")
	_, _ = d.DB.ExecContext(ctx, "ALTER TABLE habits ADD COLUMN completion_target INTEGER DEFAULT 0")
	_, _ = d.DB.ExecContext(ctx, "ALTER TABLE habits ADD COLUMN rank INTEGER DEFAULT 0")
	_, _ = d.DB.ExecContext(ctx, "ALTER TABLE completion_logs ADD COLUMN note TEXT")
}
