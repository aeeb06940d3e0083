package v1

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/gitschema/gitschema/application/service"
	"github.com/gitschema/gitschema/infrastructure/api/jsonapi"
	"github.com/gitschema/gitschema/infrastructure/api/middleware"
)

// IssuesRouter handles issue and activity read endpoints. Issues are
// created exclusively by the webhook flow; this surface is observation only.
type IssuesRouter struct {
	issues *service.Issues
	logger *slog.Logger
}

// NewIssuesRouter creates a new IssuesRouter.
func NewIssuesRouter(issues *service.Issues, logger *slog.Logger) *IssuesRouter {
	if logger == nil {
		logger = slog.Default()
	}
	return &IssuesRouter{issues: issues, logger: logger}
}

// Routes returns the chi router for issue endpoints.
func (h *IssuesRouter) Routes() chi.Router {
	router := chi.NewRouter()
	router.Get("/", h.List)
	router.Get("/{id}", h.Get)
	return router
}

// ActivityRoutes returns the chi router for activity endpoints.
func (h *IssuesRouter) ActivityRoutes() chi.Router {
	router := chi.NewRouter()
	router.Get("/", h.ListActivities)
	return router
}

// List handles GET /api/v1/issues?project_id=N.
func (h *IssuesRouter) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	projectID, err := queryInt64(r, "project_id")
	if err != nil {
		middleware.WriteError(w, r,
			middleware.NewAPIError(http.StatusBadRequest, "invalid project_id", err), h.logger)
		return
	}

	pagination := ParsePagination(r)
	issues, total, err := h.issues.List(ctx, projectID, pagination.Limit(), pagination.Offset())
	if err != nil {
		middleware.WriteError(w, r, err, h.logger)
		return
	}

	doc := jsonapi.NewListResponse(jsonapi.IssuesToResources(issues))
	doc.Meta = PaginationMeta(pagination, total)
	doc.Links = PaginationLinks(r, pagination, total)
	middleware.WriteJSON(w, http.StatusOK, doc)
}

// Get handles GET /api/v1/issues/{id}.
func (h *IssuesRouter) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		middleware.WriteError(w, r,
			middleware.NewAPIError(http.StatusBadRequest, "invalid issue id", err), h.logger)
		return
	}

	detail, err := h.issues.Get(ctx, id)
	if err != nil {
		middleware.WriteError(w, r, err, h.logger)
		return
	}

	doc := jsonapi.NewSingleResponse(jsonapi.IssueWithPipelineToResource(detail.Issue, detail.Pipeline))
	middleware.WriteJSON(w, http.StatusOK, doc)
}

// ListActivities handles GET /api/v1/activities?project_id=N.
func (h *IssuesRouter) ListActivities(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	projectID, err := queryInt64(r, "project_id")
	if err != nil {
		middleware.WriteError(w, r,
			middleware.NewAPIError(http.StatusBadRequest, "invalid project_id", err), h.logger)
		return
	}

	pagination := ParsePagination(r)
	activities, total, err := h.issues.Activities(ctx, projectID, pagination.Limit(), pagination.Offset())
	if err != nil {
		middleware.WriteError(w, r, err, h.logger)
		return
	}

	doc := jsonapi.NewListResponse(jsonapi.ActivitiesToResources(activities))
	doc.Meta = PaginationMeta(pagination, total)
	doc.Links = PaginationLinks(r, pagination, total)
	middleware.WriteJSON(w, http.StatusOK, doc)
}

func queryInt64(r *http.Request, name string) (int64, error) {
	return strconv.ParseInt(r.URL.Query().Get(name), 10, 64)
}
