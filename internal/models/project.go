// Package models defines the data types shared between the API and
// storage layers.
package models

// TimestampLayout is the storage and wire format for created_at and
// updated_at. Millisecond precision keeps values sortable as text.
const TimestampLayout = "2006-01-02 15:04:05.000"

// DateLayout is the wire format for start_date and end_date.
const DateLayout = "2006-01-02"

// Project represents one work experience project record.
// Optional columns are pointers so that NULL round-trips as JSON null.
type Project struct {
	ID                 int64   `json:"id"`
	ProjectName        string  `json:"project_name"`
	Description        string  `json:"description"`
	Industry           *string `json:"industry"`
	StartDate          *string `json:"start_date"`
	EndDate            *string `json:"end_date"`
	ToolsUsed          *string `json:"tools_used"`
	Role               *string `json:"role"`
	ClientOrganization *string `json:"client_organization"`
	ClientDescription  *string `json:"client_description"`
	CreatedAt          string  `json:"created_at"`
	UpdatedAt          string  `json:"updated_at"`
}

// FilterOptions holds the distinct filterable values currently present
// in the projects table.
type FilterOptions struct {
	Industries []string `json:"industries"`
	Clients    []string `json:"clients"`
	Tools      []string `json:"tools"`
}
