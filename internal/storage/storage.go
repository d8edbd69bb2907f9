// Package storage provides database storage interfaces and the SQLite
// implementation.
package storage

import (
	"context"
	"database/sql"

	"github.com/good-yellow-bee/workfolio/internal/models"
	"github.com/good-yellow-bee/workfolio/internal/query"
)

// Storage is the main interface for database operations.
type Storage interface {
	// Open initializes the database connection.
	Open() error
	// Close closes the database connection.
	Close() error
	// Migrate runs database migrations.
	Migrate() error
	// DB returns the underlying database handle for health checks.
	DB() *sql.DB

	// Projects returns the project repository.
	Projects() ProjectRepository
}

// FieldUpdate is one column assignment in a partial update. Column is
// always one of the fixed project column names; Value is bound as a
// parameter and may be nil to clear a nullable column.
type FieldUpdate struct {
	Column string
	Value  any
}

// ProjectRepository defines operations on work experience projects.
type ProjectRepository interface {
	// Create inserts a project and returns its assigned id.
	Create(ctx context.Context, p *models.Project) (int64, error)
	// GetByID returns the project or nil when no row exists.
	GetByID(ctx context.Context, id int64) (*models.Project, error)
	// List returns projects matching the query, possibly empty.
	List(ctx context.Context, q *query.ProjectQuery) ([]*models.Project, error)
	// Update applies the given column assignments to one row. The
	// updated_at trigger stamps the row; callers re-read afterwards.
	Update(ctx context.Context, id int64, fields []FieldUpdate) error
	// Delete removes the row. ErrNotFound when no row matched.
	Delete(ctx context.Context, id int64) error
	// FilterOptions derives the distinct filter vocabulary from the
	// current table contents.
	FilterOptions(ctx context.Context) (*models.FilterOptions, error)
}
