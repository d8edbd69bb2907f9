package storage

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/good-yellow-bee/workfolio/internal/metrics"
	"github.com/good-yellow-bee/workfolio/internal/models"
	"github.com/good-yellow-bee/workfolio/internal/query"
)

const projectColumns = `id, project_name, description, industry, start_date, end_date,
		tools_used, role, client_organization, client_description, created_at, updated_at`

type sqliteProjectRepo struct {
	db *sql.DB
}

// observe records query latency and errors for one repository operation.
func observe(op string, start time.Time, err error) {
	metrics.StorageQueryDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.StorageErrors.WithLabelValues(op).Inc()
	}
}

func (r *sqliteProjectRepo) Create(ctx context.Context, p *models.Project) (id int64, err error) {
	start := time.Now()
	defer func() { observe("create", start, err) }()

	// One Go-side timestamp for both columns so created_at == updated_at
	// at creation time.
	now := time.Now().UTC().Format(models.TimestampLayout)

	res, err := r.db.ExecContext(ctx, `
		INSERT INTO work_projects (
			project_name, description, industry, start_date, end_date,
			tools_used, role, client_organization, client_description,
			created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		p.ProjectName, p.Description, p.Industry, p.StartDate, p.EndDate,
		p.ToolsUsed, p.Role, p.ClientOrganization, p.ClientDescription,
		now, now,
	)
	if err != nil {
		return 0, fmt.Errorf("insert project: %w", err)
	}
	id, err = res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("insert project id: %w", err)
	}
	return id, nil
}

func (r *sqliteProjectRepo) GetByID(ctx context.Context, id int64) (p *models.Project, err error) {
	start := time.Now()
	defer func() { observe("get", start, err) }()

	row := r.db.QueryRowContext(ctx,
		"SELECT "+projectColumns+" FROM work_projects WHERE id = ?", id)

	p, err = scanProject(row)
	if err == sql.ErrNoRows {
		//nolint:nilnil
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get project by id: %w", err)
	}
	return p, nil
}

func (r *sqliteProjectRepo) List(ctx context.Context, q *query.ProjectQuery) (projects []*models.Project, err error) {
	start := time.Now()
	defer func() { observe("list", start, err) }()

	clause, args, err := q.Build()
	if err != nil {
		return nil, fmt.Errorf("build list query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx,
		"SELECT "+projectColumns+" FROM work_projects"+clause, args...)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()

	projects = make([]*models.Project, 0)
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("scan project: %w", err)
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

func (r *sqliteProjectRepo) Update(ctx context.Context, id int64, fields []FieldUpdate) (err error) {
	start := time.Now()
	defer func() { observe("update", start, err) }()

	if len(fields) == 0 {
		return nil
	}

	// Deterministic statements: assignments in sorted column order.
	sorted := make([]FieldUpdate, len(fields))
	copy(sorted, fields)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Column < sorted[j].Column })

	assigns := make([]string, 0, len(sorted))
	args := make([]any, 0, len(sorted)+1)
	for _, f := range sorted {
		assigns = append(assigns, f.Column+" = ?")
		args = append(args, f.Value)
	}
	args = append(args, id)

	result, err := r.db.ExecContext(ctx,
		"UPDATE work_projects SET "+strings.Join(assigns, ", ")+" WHERE id = ?", args...)
	if err != nil {
		return fmt.Errorf("update project: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("update project %d: %w", id, ErrNotFound)
	}
	return nil
}

func (r *sqliteProjectRepo) Delete(ctx context.Context, id int64) (err error) {
	start := time.Now()
	defer func() { observe("delete", start, err) }()

	result, err := r.db.ExecContext(ctx, "DELETE FROM work_projects WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete project: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("delete project %d: %w", id, ErrNotFound)
	}
	return nil
}

func (r *sqliteProjectRepo) FilterOptions(ctx context.Context) (opts *models.FilterOptions, err error) {
	start := time.Now()
	defer func() { observe("filter_options", start, err) }()

	industries, err := r.distinctValues(ctx, "industry")
	if err != nil {
		return nil, err
	}
	clients, err := r.distinctValues(ctx, "client_organization")
	if err != nil {
		return nil, err
	}
	tools, err := r.distinctTools(ctx)
	if err != nil {
		return nil, err
	}

	return &models.FilterOptions{
		Industries: industries,
		Clients:    clients,
		Tools:      tools,
	}, nil
}

// distinctValues returns the sorted distinct non-empty values of one
// column. The column name comes from our own call sites, never from
// request input.
func (r *sqliteProjectRepo) distinctValues(ctx context.Context, column string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, fmt.Sprintf(`
		SELECT DISTINCT %s FROM work_projects
		WHERE %s IS NOT NULL AND %s != ''
		ORDER BY %s
	`, column, column, column, column))
	if err != nil {
		return nil, fmt.Errorf("distinct %s: %w", column, err)
	}
	defer rows.Close()

	values := make([]string, 0)
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("scan %s: %w", column, err)
		}
		values = append(values, v)
	}
	return values, rows.Err()
}

// distinctTools splits every tools_used value on commas, trims
// whitespace, drops empties, and returns the sorted deduplicated set.
func (r *sqliteProjectRepo) distinctTools(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT DISTINCT tools_used FROM work_projects
		WHERE tools_used IS NOT NULL AND tools_used != ''
	`)
	if err != nil {
		return nil, fmt.Errorf("distinct tools_used: %w", err)
	}
	defer rows.Close()

	seen := make(map[string]bool)
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("scan tools_used: %w", err)
		}
		for _, tool := range strings.Split(v, ",") {
			tool = strings.TrimSpace(tool)
			if tool != "" {
				seen[tool] = true
			}
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	tools := make([]string, 0, len(seen))
	for tool := range seen {
		tools = append(tools, tool)
	}
	sort.Strings(tools)
	return tools, nil
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanProject(s scanner) (*models.Project, error) {
	p := &models.Project{}
	var industry, startDate, endDate, toolsUsed, role, clientOrg, clientDesc sql.NullString

	err := s.Scan(
		&p.ID, &p.ProjectName, &p.Description, &industry, &startDate, &endDate,
		&toolsUsed, &role, &clientOrg, &clientDesc, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	p.Industry = nullablePtr(industry)
	p.StartDate = nullablePtr(startDate)
	p.EndDate = nullablePtr(endDate)
	p.ToolsUsed = nullablePtr(toolsUsed)
	p.Role = nullablePtr(role)
	p.ClientOrganization = nullablePtr(clientOrg)
	p.ClientDescription = nullablePtr(clientDesc)
	return p, nil
}

func nullablePtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	v := ns.String
	return &v
}
