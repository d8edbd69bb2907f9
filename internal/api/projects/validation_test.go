package projects

import (
	"strings"
	"testing"

	"github.com/good-yellow-bee/workfolio/internal/api/envelope"
	"github.com/good-yellow-bee/workfolio/internal/models"
)

func strPtr(s string) *string { return &s }

// checkFieldErrors asserts that exactly the fields in want are flagged.
func checkFieldErrors(t *testing.T, errs []api.FieldError, want []string) {
	t.Helper()

	got := make(map[string]bool, len(errs))
	for _, e := range errs {
		got[e.Field] = true
	}
	for _, f := range want {
		if !got[f] {
			t.Errorf("missing error for field %q (got %v)", f, errs)
		}
		delete(got, f)
	}
	for f := range got {
		t.Errorf("unexpected error for field %q", f)
	}
}

func setVal(v string) models.Optional[string] {
	return models.Optional[string]{Set: true, Valid: true, Value: v}
}

func setNull() models.Optional[string] {
	return models.Optional[string]{Set: true}
}

func TestValidateCreate(t *testing.T) {
	tests := []struct {
		name       string
		req        CreateRequest
		wantFields []string
	}{
		{
			name: "valid minimal",
			req: CreateRequest{
				ProjectName: "API Gateway",
				Description: "Edge routing layer",
			},
		},
		{
			name: "valid full",
			req: CreateRequest{
				ProjectName:        "API Gateway",
				Description:        "Edge routing layer",
				Industry:           strPtr("Fintech"),
				StartDate:          strPtr("2023-01-01"),
				EndDate:            strPtr("2023-06-30"),
				ToolsUsed:          strPtr("Go, Envoy"),
				Role:               strPtr("Architect"),
				ClientOrganization: strPtr("Acme Corp"),
				ClientDescription:  strPtr("Payments company"),
			},
		},
		{
			name:       "missing required fields",
			req:        CreateRequest{},
			wantFields: []string{"project_name", "description"},
		},
		{
			name: "project_name too long",
			req: CreateRequest{
				ProjectName: strings.Repeat("x", 201),
				Description: "fine",
			},
			wantFields: []string{"project_name"},
		},
		{
			name: "description too long",
			req: CreateRequest{
				ProjectName: "fine",
				Description: strings.Repeat("x", 2001),
			},
			wantFields: []string{"description"},
		},
		{
			name: "optional bounds",
			req: CreateRequest{
				ProjectName:        "fine",
				Description:        "fine",
				Industry:           strPtr(strings.Repeat("x", 101)),
				ToolsUsed:          strPtr(strings.Repeat("x", 501)),
				Role:               strPtr(strings.Repeat("x", 101)),
				ClientOrganization: strPtr(strings.Repeat("x", 201)),
				ClientDescription:  strPtr(strings.Repeat("x", 1001)),
			},
			wantFields: []string{"industry", "tools_used", "role", "client_organization", "client_description"},
		},
		{
			name: "multibyte characters count as one",
			req: CreateRequest{
				ProjectName: strings.Repeat("å", 200),
				Description: "fine",
			},
		},
		{
			name: "bad date format",
			req: CreateRequest{
				ProjectName: "fine",
				Description: "fine",
				StartDate:   strPtr("01/15/2023"),
			},
			wantFields: []string{"start_date"},
		},
		{
			name: "end before start",
			req: CreateRequest{
				ProjectName: "fine",
				Description: "fine",
				StartDate:   strPtr("2023-06-01"),
				EndDate:     strPtr("2023-01-01"),
			},
			wantFields: []string{"end_date"},
		},
		{
			name: "equal dates are allowed",
			req: CreateRequest{
				ProjectName: "fine",
				Description: "fine",
				StartDate:   strPtr("2023-06-01"),
				EndDate:     strPtr("2023-06-01"),
			},
		},
		{
			name: "start date alone is allowed",
			req: CreateRequest{
				ProjectName: "fine",
				Description: "fine",
				StartDate:   strPtr("2023-06-01"),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := validateCreate(&tt.req)
			checkFieldErrors(t, errs, tt.wantFields)
		})
	}
}

func TestValidateUpdate(t *testing.T) {
	tests := []struct {
		name       string
		req        UpdateRequest
		wantFields []string
	}{
		{
			name: "empty payload is valid",
			req:  UpdateRequest{},
		},
		{
			name: "clearing an optional field is valid",
			req:  UpdateRequest{Industry: setNull()},
		},
		{
			name:       "project_name null rejected",
			req:        UpdateRequest{ProjectName: setNull()},
			wantFields: []string{"project_name"},
		},
		{
			name:       "project_name empty rejected",
			req:        UpdateRequest{ProjectName: setVal("")},
			wantFields: []string{"project_name"},
		},
		{
			name:       "description null rejected",
			req:        UpdateRequest{Description: setNull()},
			wantFields: []string{"description"},
		},
		{
			name:       "bounds apply on update",
			req:        UpdateRequest{Role: setVal(strings.Repeat("x", 101))},
			wantFields: []string{"role"},
		},
		{
			name:       "bad date format",
			req:        UpdateRequest{EndDate: setVal("June 2023")},
			wantFields: []string{"end_date"},
		},
		{
			name:       "both dates supplied out of order",
			req:        UpdateRequest{StartDate: setVal("2023-06-01"), EndDate: setVal("2023-01-01")},
			wantFields: []string{"end_date"},
		},
		{
			// Only dates supplied together are cross-checked; a lone
			// end_date is not compared against the stored start_date.
			name: "end date alone is not cross-checked",
			req:  UpdateRequest{EndDate: setVal("1990-01-01")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := validateUpdate(&tt.req)
			checkFieldErrors(t, errs, tt.wantFields)
		})
	}
}

func TestUpdateRequest_FieldUpdates(t *testing.T) {
	req := UpdateRequest{
		ProjectName: setVal("Renamed"),
		Industry:    setNull(),
		Role:        setVal("Engineer"),
	}

	fields := req.fieldUpdates()
	if len(fields) != 3 {
		t.Fatalf("len = %d, want 3", len(fields))
	}

	// Emitted in sorted column order.
	wantCols := []string{"industry", "project_name", "role"}
	for i, f := range fields {
		if f.Column != wantCols[i] {
			t.Errorf("fields[%d].Column = %q, want %q", i, f.Column, wantCols[i])
		}
	}

	if fields[0].Value != nil {
		t.Errorf("industry value = %v, want nil", fields[0].Value)
	}
	if fields[1].Value != "Renamed" {
		t.Errorf("project_name value = %v", fields[1].Value)
	}
}

func TestUpdateRequest_FieldUpdates_Empty(t *testing.T) {
	req := UpdateRequest{}
	if fields := req.fieldUpdates(); len(fields) != 0 {
		t.Errorf("fields = %v, want none", fields)
	}
}
