package query

import (
	"fmt"
	"sort"
	"strings"
)

// ProjectQuery describes one listing request. Empty filter fields
// impose no constraint. Date bounds are YYYY-MM-DD strings validated by
// the caller.
type ProjectQuery struct {
	Industry   string
	Client     string
	Tools      string
	StartAfter string
	EndBefore  string
	SortBy     string
	Order      string
}

// Normalize fills defaults and checks SortBy and Order against their
// allow-lists. It must succeed before Build is called.
func (q *ProjectQuery) Normalize() error {
	if q.SortBy == "" {
		q.SortBy = DefaultSortBy
	}
	if q.Order == "" {
		q.Order = DefaultOrder
	}
	q.Order = strings.ToLower(q.Order)

	if !SortableColumns[q.SortBy] {
		return fmt.Errorf("invalid sort_by %q: must be one of %s", q.SortBy, sortableList())
	}
	if q.Order != "asc" && q.Order != "desc" {
		return fmt.Errorf("invalid order %q: must be asc or desc", q.Order)
	}
	return nil
}

// Build returns the WHERE/ORDER BY tail of the listing SELECT and its
// bound arguments. Filters are AND-combined in a fixed order so the
// generated SQL is deterministic.
func (q *ProjectQuery) Build() (string, []any, error) {
	if err := q.Normalize(); err != nil {
		return "", nil, err
	}

	var sb strings.Builder
	var args []any

	sb.WriteString(" WHERE 1=1")
	if q.Industry != "" {
		sb.WriteString(" AND industry = ?")
		args = append(args, q.Industry)
	}
	if q.Client != "" {
		sb.WriteString(" AND client_organization = ?")
		args = append(args, q.Client)
	}
	if q.Tools != "" {
		// instr keeps the substring match case-sensitive; LIKE folds
		// ASCII case.
		sb.WriteString(" AND instr(tools_used, ?) > 0")
		args = append(args, q.Tools)
	}
	if q.StartAfter != "" {
		sb.WriteString(" AND start_date >= ?")
		args = append(args, q.StartAfter)
	}
	if q.EndBefore != "" {
		sb.WriteString(" AND end_date <= ?")
		args = append(args, q.EndBefore)
	}

	sb.WriteString(" ORDER BY ")
	sb.WriteString(q.SortBy)
	if q.Order == "asc" {
		sb.WriteString(" ASC")
	} else {
		sb.WriteString(" DESC")
	}

	return sb.String(), args, nil
}

func sortableList() string {
	cols := make([]string, 0, len(SortableColumns))
	for c := range SortableColumns {
		cols = append(cols, c)
	}
	sort.Strings(cols)
	return strings.Join(cols, ", ")
}
