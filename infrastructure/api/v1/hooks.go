// Package v1 provides the v1 API routes.
package v1

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/gitschema/gitschema/application/service"
	"github.com/gitschema/gitschema/domain/vcs"
	"github.com/gitschema/gitschema/infrastructure/api/middleware"
)

// SecretTokenHeader is the header GitLab delivers the shared secret in.
const SecretTokenHeader = "X-Gitlab-Token"

// HooksRouter handles provider webhook deliveries.
type HooksRouter struct {
	webhook *service.Webhook
	logger  *slog.Logger
}

// NewHooksRouter creates a new HooksRouter.
func NewHooksRouter(webhook *service.Webhook, logger *slog.Logger) *HooksRouter {
	if logger == nil {
		logger = slog.Default()
	}
	return &HooksRouter{webhook: webhook, logger: logger}
}

// Routes returns the chi router for webhook endpoints.
func (h *HooksRouter) Routes() chi.Router {
	router := chi.NewRouter()
	router.Post("/{provider}/{webhookEndpointID}", h.Receive)
	return router
}

// Receive handles POST /hook/{provider}/{webhookEndpointID}.
//
// The response body is the newline-joined list of "Created issue ..." lines,
// empty when no file produced an issue. Validation failures return 400, an
// unknown endpoint 404, and server-side failures 500.
func (h *HooksRouter) Receive(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	provider := chi.URLParam(r, "provider")
	if !strings.EqualFold(provider, "gitlab") {
		middleware.WriteError(w, r,
			middleware.NewAPIError(http.StatusNotFound, "unsupported provider", nil), h.logger)
		return
	}

	var event vcs.PushEvent
	if err := json.NewDecoder(r.Body).Decode(&event); err != nil {
		middleware.WriteError(w, r,
			middleware.NewAPIError(http.StatusBadRequest, "malformed webhook payload", err), h.logger)
		return
	}

	endpointID := chi.URLParam(r, "webhookEndpointID")
	secret := r.Header.Get(SecretTokenHeader)

	messages, err := h.webhook.ProcessPush(ctx, endpointID, secret, event)
	if err != nil {
		middleware.WriteError(w, r, err, h.logger)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(strings.Join(messages, "\n")))
}
