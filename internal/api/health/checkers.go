package health

import (
	"context"
	"database/sql"
	"fmt"
)

// SQLiteChecker checks SQLite database connectivity.
type SQLiteChecker struct {
	db *sql.DB
}

// NewSQLiteChecker creates a new SQLite health checker.
func NewSQLiteChecker(db *sql.DB) *SQLiteChecker {
	return &SQLiteChecker{db: db}
}

// Name returns the checker name.
func (c *SQLiteChecker) Name() string {
	return "sqlite"
}

// Check verifies the SQLite database is accessible and the projects
// table exists.
func (c *SQLiteChecker) Check(ctx context.Context) error {
	if c.db == nil {
		return fmt.Errorf("database not initialized")
	}
	if err := c.db.PingContext(ctx); err != nil {
		return err
	}

	var name string
	err := c.db.QueryRowContext(ctx,
		"SELECT name FROM sqlite_master WHERE type='table' AND name='work_projects'",
	).Scan(&name)
	if err == sql.ErrNoRows {
		return fmt.Errorf("work_projects table not found")
	}
	return err
}
