package storage

import (
	"database/sql"
	"fmt"
	"time"
)

// Migration represents a database migration.
type Migration struct {
	Version int
	Name    string
	Up      string
}

// migrations holds all database migrations in order. The schema is
// fixed at version 1; further migrations are out of scope.
var migrations = []Migration{
	{
		Version: 1,
		Name:    "initial_schema",
		Up: `
			-- Work experience projects table
			CREATE TABLE IF NOT EXISTS work_projects (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				project_name TEXT NOT NULL,
				description TEXT NOT NULL,
				industry TEXT,
				start_date TEXT,
				end_date TEXT,
				tools_used TEXT,
				role TEXT,
				client_organization TEXT,
				client_description TEXT,
				created_at TEXT NOT NULL DEFAULT (strftime('%Y-%m-%d %H:%M:%f', 'now')),
				updated_at TEXT NOT NULL DEFAULT (strftime('%Y-%m-%d %H:%M:%f', 'now'))
			);

			-- Indexes for the filterable and sortable columns
			CREATE INDEX IF NOT EXISTS idx_work_projects_industry ON work_projects(industry);
			CREATE INDEX IF NOT EXISTS idx_work_projects_client ON work_projects(client_organization);
			CREATE INDEX IF NOT EXISTS idx_work_projects_start_date ON work_projects(start_date);
			CREATE INDEX IF NOT EXISTS idx_work_projects_end_date ON work_projects(end_date);
			CREATE INDEX IF NOT EXISTS idx_work_projects_created_at ON work_projects(created_at);

			-- Stamp updated_at on every row modification
			CREATE TRIGGER IF NOT EXISTS trg_work_projects_updated_at
			AFTER UPDATE ON work_projects
			FOR EACH ROW
			BEGIN
				UPDATE work_projects
				SET updated_at = strftime('%Y-%m-%d %H:%M:%f', 'now')
				WHERE id = NEW.id;
			END;
		`,
	},
}

// runMigrations applies all pending migrations.
func runMigrations(db *sql.DB) error {
	// Create migrations table if not exists
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			name TEXT NOT NULL,
			applied_at DATETIME NOT NULL
		)
	`)
	if err != nil {
		return fmt.Errorf("create migrations table: %w", err)
	}

	// Get current version
	var currentVersion int
	err = db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations").Scan(&currentVersion)
	if err != nil {
		return fmt.Errorf("get current version: %w", err)
	}

	// Apply pending migrations
	for _, m := range migrations {
		if m.Version <= currentVersion {
			continue
		}

		// Run migration in transaction
		tx, err := db.Begin()
		if err != nil {
			return fmt.Errorf("begin transaction for migration %d: %w", m.Version, err)
		}

		_, err = tx.Exec(m.Up)
		if err != nil {
			tx.Rollback()
			return fmt.Errorf("execute migration %d (%s): %w", m.Version, m.Name, err)
		}

		_, err = tx.Exec(
			"INSERT INTO schema_migrations (version, name, applied_at) VALUES (?, ?, ?)",
			m.Version, m.Name, time.Now(),
		)
		if err != nil {
			tx.Rollback()
			return fmt.Errorf("record migration %d: %w", m.Version, err)
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit migration %d: %w", m.Version, err)
		}
	}

	return nil
}
