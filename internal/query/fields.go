// Package query builds the filtered and sorted SELECT clause for
// project listings. Filter values are always bound parameters; the only
// text interpolated into SQL is a column name that passed the
// allow-list below.
package query

// SortableColumns is the fixed allow-list of columns a listing may be
// ordered by. Column names cannot be bound as parameters, so anything
// outside this map is rejected before SQL is built. Deliberately a
// literal map; do not generate it from the schema.
var SortableColumns = map[string]bool{
	"id":                  true,
	"project_name":        true,
	"industry":            true,
	"start_date":          true,
	"end_date":            true,
	"client_organization": true,
	"created_at":          true,
	"updated_at":          true,
}

// Defaults for the listing endpoint.
const (
	DefaultSortBy = "created_at"
	DefaultOrder  = "desc"
)
