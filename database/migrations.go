package database

import (
	"embed"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

// Migration represents a database migration
type Migration struct {
	Version int64
	Name    string
	SQL     string
}

// getMigrations returns all available migrations sorted by version
func getMigrations() ([]Migration, error) {
	entries, err := migrationFiles.ReadDir("migrations")
	if err != nil {
		return nil, fmt.Errorf("failed to read migrations directory: %w", err)
	}

	var migrations []Migration
	for _, entry := range entries {
		if !strings.HasSuffix(entry.Name(), ".sql") {
			return nil, fmt.Errorf("non-migration file found in migrations path: %s", entry.Name())
		}

		// Extract version from filename (e.g. "1_init.sql" -> 1)
		name := strings.TrimSuffix(entry.Name(), ".sql")
		parts := strings.SplitN(name, "_", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("malformed migration filename: %s", entry.Name())
		}
		version, err := strconv.ParseInt(parts[0], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid migration version in %s: %w", entry.Name(), err)
		}

		content, err := migrationFiles.ReadFile("migrations/" + entry.Name())
		if err != nil {
			return nil, fmt.Errorf("failed to read migration %s: %w", entry.Name(), err)
		}

		migrations = append(migrations, Migration{
			Version: version,
			Name:    parts[1],
			SQL:     string(content),
		})
	}

	sort.Slice(migrations, func(i, j int) bool {
		return migrations[i].Version < migrations[j].Version
	})

	seen := make(map[int64]string, len(migrations))
	for _, m := range migrations {
		if prev, ok := seen[m.Version]; ok {
			return nil, fmt.Errorf("duplicate migration version %d (%s, %s)", m.Version, prev, m.Name)
		}
		seen[m.Version] = m.Name
	}

	return migrations, nil
}

// runMigrations applies pending migrations in version order.
func (d *Database) runMigrations() error {
	if _, err := d.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			name TEXT NOT NULL,
			applied_at TEXT NOT NULL DEFAULT (datetime('now'))
		)`); err != nil {
		return fmt.Errorf("failed to create schema_migrations table: %w", err)
	}

	migrations, err := getMigrations()
	if err != nil {
		return err
	}

	for _, m := range migrations {
		var count int
		if err := d.db.QueryRow(
			`SELECT COUNT(*) FROM schema_migrations WHERE version = ?`, m.Version,
		).Scan(&count); err != nil {
			return fmt.Errorf("failed to check migration %d: %w", m.Version, err)
		}
		if count > 0 {
			continue
		}

		d.logger.Database("Applying migration", "version", m.Version, "name", m.Name)

		tx, err := d.db.Begin()
		if err != nil {
			return fmt.Errorf("failed to begin migration %d: %w", m.Version, err)
		}
		if _, err := tx.Exec(m.SQL); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to apply migration %d (%s): %w", m.Version, m.Name, err)
		}
		if _, err := tx.Exec(
			`INSERT INTO schema_migrations (version, name) VALUES (?, ?)`, m.Version, m.Name,
		); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to record migration %d: %w", m.Version, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("failed to commit migration %d: %w", m.Version, err)
		}
	}

	return nil
}
