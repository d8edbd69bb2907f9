// Package projects provides the HTTP handlers for work experience
// project CRUD and filter discovery.
package projects

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/good-yellow-bee/workfolio/internal/api/envelope"
	"github.com/good-yellow-bee/workfolio/internal/models"
	"github.com/good-yellow-bee/workfolio/internal/query"
	"github.com/good-yellow-bee/workfolio/internal/storage"
)

// Handler serves the /api/projects routes.
type Handler struct {
	storage storage.Storage
}

// NewHandler creates a new projects handler.
func NewHandler(store storage.Storage) *Handler {
	return &Handler{storage: store}
}

// Routes mounts the project routes on the given router.
func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Get("/filters/options", h.FilterOptions)
	r.Route("/{id}", func(r chi.Router) {
		r.Get("/", h.GetByID)
		r.Put("/", h.Update)
		r.Delete("/", h.Delete)
	})
}

// CreateRequest is the creation payload. Optional fields are pointers
// so omitted and null both insert NULL.
type CreateRequest struct {
	ProjectName        string  `json:"project_name"`
	Description        string  `json:"description"`
	Industry           *string `json:"industry"`
	StartDate          *string `json:"start_date"`
	EndDate            *string `json:"end_date"`
	ToolsUsed          *string `json:"tools_used"`
	Role               *string `json:"role"`
	ClientOrganization *string `json:"client_organization"`
	ClientDescription  *string `json:"client_description"`
}

// UpdateRequest is the partial update payload. Every field is
// tri-state: absent fields are untouched, null clears a nullable
// column, values replace.
type UpdateRequest struct {
	ProjectName        models.Optional[string] `json:"project_name"`
	Description        models.Optional[string] `json:"description"`
	Industry           models.Optional[string] `json:"industry"`
	StartDate          models.Optional[string] `json:"start_date"`
	EndDate            models.Optional[string] `json:"end_date"`
	ToolsUsed          models.Optional[string] `json:"tools_used"`
	Role               models.Optional[string] `json:"role"`
	ClientOrganization models.Optional[string] `json:"client_organization"`
	ClientDescription  models.Optional[string] `json:"client_description"`
}

// fieldUpdates maps supplied fields to column assignments. The listing
// is in sorted column order so generated statements are deterministic.
func (req *UpdateRequest) fieldUpdates() []storage.FieldUpdate {
	ordered := []struct {
		column string
		value  models.Optional[string]
	}{
		{"client_description", req.ClientDescription},
		{"client_organization", req.ClientOrganization},
		{"description", req.Description},
		{"end_date", req.EndDate},
		{"industry", req.Industry},
		{"project_name", req.ProjectName},
		{"role", req.Role},
		{"start_date", req.StartDate},
		{"tools_used", req.ToolsUsed},
	}

	var fields []storage.FieldUpdate
	for _, f := range ordered {
		if !f.value.Set {
			continue
		}
		var v any
		if f.value.Valid {
			v = f.value.Value
		}
		fields = append(fields, storage.FieldUpdate{Column: f.column, Value: v})
	}
	return fields
}

// Create creates a new project.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.JSONError(w, api.ErrInvalidBody)
		return
	}

	if errs := validateCreate(&req); len(errs) > 0 {
		api.JSONError(w, api.NewValidationError(errs))
		return
	}

	ctx := r.Context()
	project := &models.Project{
		ProjectName:        req.ProjectName,
		Description:        req.Description,
		Industry:           req.Industry,
		StartDate:          req.StartDate,
		EndDate:            req.EndDate,
		ToolsUsed:          req.ToolsUsed,
		Role:               req.Role,
		ClientOrganization: req.ClientOrganization,
		ClientDescription:  req.ClientDescription,
	}

	id, err := h.storage.Projects().Create(ctx, project)
	if err != nil {
		log.Printf("create project error: %v", err)
		api.JSONError(w, api.ErrDatabase)
		return
	}

	// Re-read so the response carries the stored timestamps. A miss
	// here is a consistency bug, not a user error.
	created, err := h.storage.Projects().GetByID(ctx, id)
	if err != nil {
		log.Printf("create project error: read back %d: %v", id, err)
		api.JSONError(w, api.ErrDatabase)
		return
	}
	if created == nil {
		log.Printf("create project error: row %d missing after insert", id)
		api.JSONError(w, api.ErrDatabase)
		return
	}

	log.Printf("project created: %s (%d)", created.ProjectName, created.ID)
	api.Created(w, created)
}

// List returns projects matching the optional filters, sorted.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()

	for _, p := range []string{"start_after", "end_before"} {
		if v := params.Get(p); v != "" {
			if _, err := time.Parse(models.DateLayout, v); err != nil {
				api.JSONError(w, api.NewBadRequest(fmt.Sprintf("invalid %s: must be a YYYY-MM-DD date", p)))
				return
			}
		}
	}

	q := &query.ProjectQuery{
		Industry:   params.Get("industry"),
		Client:     params.Get("client"),
		Tools:      params.Get("tools"),
		StartAfter: params.Get("start_after"),
		EndBefore:  params.Get("end_before"),
		SortBy:     params.Get("sort_by"),
		Order:      params.Get("order"),
	}
	if err := q.Normalize(); err != nil {
		api.JSONError(w, api.NewBadRequest(err.Error()))
		return
	}

	projects, err := h.storage.Projects().List(r.Context(), q)
	if err != nil {
		log.Printf("list projects error: %v", err)
		api.JSONError(w, api.ErrDatabase)
		return
	}

	api.OK(w, projects)
}

// GetByID returns a single project.
func (h *Handler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := h.projectID(w, r)
	if !ok {
		return
	}

	project, err := h.storage.Projects().GetByID(r.Context(), id)
	if err != nil {
		log.Printf("get project %d error: %v", id, err)
		api.JSONError(w, api.ErrDatabase)
		return
	}
	if project == nil {
		api.JSONError(w, api.NewNotFound(fmt.Sprintf("project %d not found", id)))
		return
	}

	api.OK(w, project)
}

// Update applies a partial update to a project.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := h.projectID(w, r)
	if !ok {
		return
	}

	ctx := r.Context()
	existing, err := h.storage.Projects().GetByID(ctx, id)
	if err != nil {
		log.Printf("update project %d error: get: %v", id, err)
		api.JSONError(w, api.ErrDatabase)
		return
	}
	if existing == nil {
		api.JSONError(w, api.NewNotFound(fmt.Sprintf("project %d not found", id)))
		return
	}

	var req UpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.JSONError(w, api.ErrInvalidBody)
		return
	}

	if errs := validateUpdate(&req); len(errs) > 0 {
		api.JSONError(w, api.NewValidationError(errs))
		return
	}

	fields := req.fieldUpdates()
	if len(fields) == 0 {
		// Nothing supplied: no-op, return the record unchanged.
		api.OK(w, existing)
		return
	}

	if err := h.storage.Projects().Update(ctx, id, fields); err != nil {
		// The row can vanish between the existence check and the write.
		if errors.Is(err, storage.ErrNotFound) {
			api.JSONError(w, api.NewNotFound(fmt.Sprintf("project %d not found", id)))
			return
		}
		log.Printf("update project %d error: %v", id, err)
		api.JSONError(w, api.ErrDatabase)
		return
	}

	updated, err := h.storage.Projects().GetByID(ctx, id)
	if err != nil || updated == nil {
		log.Printf("update project %d error: read back: %v", id, err)
		api.JSONError(w, api.ErrDatabase)
		return
	}

	log.Printf("project updated: %s (%d)", updated.ProjectName, updated.ID)
	api.OK(w, updated)
}

// Delete removes a project.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.projectID(w, r)
	if !ok {
		return
	}

	ctx := r.Context()
	existing, err := h.storage.Projects().GetByID(ctx, id)
	if err != nil {
		log.Printf("delete project %d error: get: %v", id, err)
		api.JSONError(w, api.ErrDatabase)
		return
	}
	if existing == nil {
		api.JSONError(w, api.NewNotFound(fmt.Sprintf("project %d not found", id)))
		return
	}

	if err := h.storage.Projects().Delete(ctx, id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			api.JSONError(w, api.NewNotFound(fmt.Sprintf("project %d not found", id)))
			return
		}
		log.Printf("delete project %d error: %v", id, err)
		api.JSONError(w, api.ErrDatabase)
		return
	}

	log.Printf("project deleted: %s (%d)", existing.ProjectName, id)
	api.OK(w, api.MessageResponse{Message: fmt.Sprintf("project %d deleted", id)})
}

// FilterOptions returns the distinct filter values currently in use.
func (h *Handler) FilterOptions(w http.ResponseWriter, r *http.Request) {
	opts, err := h.storage.Projects().FilterOptions(r.Context())
	if err != nil {
		log.Printf("filter options error: %v", err)
		api.JSONError(w, api.ErrDatabase)
		return
	}

	api.OK(w, opts)
}

// projectID parses the {id} path segment. Writes a 400 and returns
// ok=false for non-numeric ids.
func (h *Handler) projectID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		api.JSONError(w, api.NewBadRequest(fmt.Sprintf("invalid project id %q", raw)))
		return 0, false
	}
	return id, true
}
