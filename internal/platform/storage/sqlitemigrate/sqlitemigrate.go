// Package sqlitemigrate applies embedded, forward-only SQL migrations to a
// SQLite database.
package sqlitemigrate

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
	"time"
)

const (
	migrationTable = "schema_migrations"
	upMarker       = "-- +migrate Up"
	downMarker     = "-- +migrate Down"
)

// ApplyMigrations runs every *.sql file under root in name order, recording
// each in schema_migrations so it runs at most once. It returns the names
// applied by this call.
func ApplyMigrations(ctx context.Context, db *sql.DB, migrationFS fs.FS, root string) ([]string, error) {
	if db == nil {
		return nil, errors.New("sql db is required")
	}
	root = strings.TrimSpace(root)
	if root == "" {
		root = "."
	}

	names, err := migrationFiles(migrationFS, root)
	if err != nil {
		return nil, err
	}
	if _, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS `+migrationTable+` (
    name TEXT PRIMARY KEY,
    applied_at INTEGER NOT NULL
)`); err != nil {
		return nil, fmt.Errorf("ensure migration table: %w", err)
	}

	var applied []string
	for _, name := range names {
		key := path.Join(root, name)
		done, err := isApplied(ctx, db, key)
		if err != nil {
			return applied, fmt.Errorf("check migration %s: %w", key, err)
		}
		if done {
			continue
		}
		content, err := fs.ReadFile(migrationFS, key)
		if err != nil {
			return applied, fmt.Errorf("read migration %s: %w", key, err)
		}
		if err := applyOne(ctx, db, key, ExtractUpMigration(string(content))); err != nil {
			return applied, err
		}
		applied = append(applied, key)
	}
	return applied, nil
}

func migrationFiles(migrationFS fs.FS, root string) ([]string, error) {
	entries, err := fs.ReadDir(migrationFS, root)
	if err != nil {
		return nil, fmt.Errorf("read migrations dir: %w", err)
	}
	var names []string
	for _, entry := range entries {
		if entry.IsDir() || path.Ext(entry.Name()) != ".sql" {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)
	return names, nil
}

func applyOne(ctx context.Context, db *sql.DB, key, upSQL string) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin migration %s: %w", key, err)
	}
	defer func() { _ = tx.Rollback() }()

	if strings.TrimSpace(upSQL) != "" {
		if _, err := tx.ExecContext(ctx, upSQL); err != nil && !IsAlreadyExistsError(err) {
			return fmt.Errorf("exec migration %s: %w", key, err)
		}
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT OR IGNORE INTO `+migrationTable+` (name, applied_at) VALUES (?, ?)`,
		key, time.Now().UTC().UnixMilli(),
	); err != nil {
		return fmt.Errorf("record migration %s: %w", key, err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit migration %s: %w", key, err)
	}
	return nil
}

// ExtractUpMigration returns the statements between the Up and Down markers.
// Content without an Up marker is returned whole.
func ExtractUpMigration(content string) string {
	_, after, found := strings.Cut(content, upMarker)
	if !found {
		return content
	}
	up, _, _ := strings.Cut(after, downMarker)
	return up
}

// IsAlreadyExistsError reports whether err is DDL that already took effect.
func IsAlreadyExistsError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "already exists") || strings.Contains(msg, "duplicate column name")
}

func isApplied(ctx context.Context, db *sql.DB, key string) (bool, error) {
	var one int
	err := db.QueryRowContext(ctx, `SELECT 1 FROM `+migrationTable+` WHERE name = ?`, key).Scan(&one)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return false, nil
	case err != nil:
		return false, err
	}
	return true, nil
}
