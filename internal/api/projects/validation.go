package projects

import (
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/good-yellow-bee/workfolio/internal/api/envelope"
	"github.com/good-yellow-bee/workfolio/internal/models"
)

// Field length bounds, counted in Unicode characters.
const (
	maxProjectNameLen = 200
	maxDescriptionLen = 2000
	maxIndustryLen    = 100
	maxToolsUsedLen   = 500
	maxRoleLen        = 100
	maxClientOrgLen   = 200
	maxClientDescLen  = 1000
)

// optionalLimits maps each optional text field to its bound, in the
// order the fields are validated.
var optionalLimits = []struct {
	field string
	limit int
}{
	{"industry", maxIndustryLen},
	{"tools_used", maxToolsUsedLen},
	{"role", maxRoleLen},
	{"client_organization", maxClientOrgLen},
	{"client_description", maxClientDescLen},
}

func validateCreate(req *CreateRequest) []api.FieldError {
	var errs []api.FieldError

	errs = appendRequired(errs, "project_name", req.ProjectName, maxProjectNameLen)
	errs = appendRequired(errs, "description", req.Description, maxDescriptionLen)

	optional := []*string{req.Industry, req.ToolsUsed, req.Role, req.ClientOrganization, req.ClientDescription}
	for i, v := range optional {
		errs = appendBounded(errs, optionalLimits[i].field, v, optionalLimits[i].limit)
	}

	errs = appendDate(errs, "start_date", req.StartDate)
	errs = appendDate(errs, "end_date", req.EndDate)
	errs = appendDateOrder(errs, req.StartDate, req.EndDate)

	return errs
}

func validateUpdate(req *UpdateRequest) []api.FieldError {
	var errs []api.FieldError

	// Required columns may be omitted but not cleared.
	if req.ProjectName.Set {
		if !req.ProjectName.Valid {
			errs = append(errs, api.FieldError{Field: "project_name", Reason: "must not be null"})
		} else {
			errs = appendRequired(errs, "project_name", req.ProjectName.Value, maxProjectNameLen)
		}
	}
	if req.Description.Set {
		if !req.Description.Valid {
			errs = append(errs, api.FieldError{Field: "description", Reason: "must not be null"})
		} else {
			errs = appendRequired(errs, "description", req.Description.Value, maxDescriptionLen)
		}
	}

	optional := []models.Optional[string]{req.Industry, req.ToolsUsed, req.Role, req.ClientOrganization, req.ClientDescription}
	for i, v := range optional {
		errs = appendBounded(errs, optionalLimits[i].field, v.Ptr(), optionalLimits[i].limit)
	}

	errs = appendDate(errs, "start_date", req.StartDate.Ptr())
	errs = appendDate(errs, "end_date", req.EndDate.Ptr())

	// The cross-field check only sees dates supplied together in this
	// payload; a lone end_date is not compared against the stored
	// start_date.
	errs = appendDateOrder(errs, req.StartDate.Ptr(), req.EndDate.Ptr())

	return errs
}

func appendRequired(errs []api.FieldError, field, value string, limit int) []api.FieldError {
	if value == "" {
		return append(errs, api.FieldError{Field: field, Reason: "is required"})
	}
	if utf8.RuneCountInString(value) > limit {
		return append(errs, api.FieldError{Field: field, Reason: lengthReason(limit)})
	}
	return errs
}

func appendBounded(errs []api.FieldError, field string, value *string, limit int) []api.FieldError {
	if value == nil {
		return errs
	}
	if utf8.RuneCountInString(*value) > limit {
		return append(errs, api.FieldError{Field: field, Reason: lengthReason(limit)})
	}
	return errs
}

func appendDate(errs []api.FieldError, field string, value *string) []api.FieldError {
	if value == nil {
		return errs
	}
	if _, err := time.Parse(models.DateLayout, *value); err != nil {
		return append(errs, api.FieldError{Field: field, Reason: "must be a YYYY-MM-DD date"})
	}
	return errs
}

func appendDateOrder(errs []api.FieldError, start, end *string) []api.FieldError {
	if start == nil || end == nil {
		return errs
	}
	startDate, err1 := time.Parse(models.DateLayout, *start)
	endDate, err2 := time.Parse(models.DateLayout, *end)
	if err1 != nil || err2 != nil {
		// Format errors are already reported per field.
		return errs
	}
	if endDate.Before(startDate) {
		return append(errs, api.FieldError{Field: "end_date", Reason: "cannot be before start_date"})
	}
	return errs
}

func lengthReason(limit int) string {
	return fmt.Sprintf("must be %d characters or less", limit)
}
