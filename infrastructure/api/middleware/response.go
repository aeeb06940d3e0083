package middleware

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/gitschema/gitschema/application/service"
	"github.com/gitschema/gitschema/infrastructure/api/jsonapi"
	"github.com/gitschema/gitschema/internal/database"
)

// WriteJSON writes a JSON response with the given status code.
func WriteJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// WriteError maps an error to an HTTP status and writes a JSON:API error
// document. Unmapped errors become 500 and are logged; client errors are not.
func WriteError(w http.ResponseWriter, r *http.Request, err error, logger *slog.Logger) {
	status, title := statusFor(err)

	if status >= http.StatusInternalServerError && logger != nil {
		logger.Error("request failed",
			slog.String("request_id", middleware.GetReqID(r.Context())),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.String("error", err.Error()),
		)
	}

	doc := jsonapi.NewErrorResponse(jsonapi.NewError(strconv.Itoa(status), title, err.Error()))
	WriteJSON(w, status, doc)
}

func statusFor(err error) (int, string) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Code(), apiErr.Message()
	}

	var serverErr *ServerError
	if errors.As(err, &serverErr) {
		return serverErr.StatusCode(), serverErr.Message()
	}

	switch {
	case errors.Is(err, ErrAuthentication):
		return http.StatusUnauthorized, "unauthorized"
	case errors.Is(err, database.ErrNotFound):
		return http.StatusNotFound, "not found"
	case service.IsValidation(err):
		return http.StatusBadRequest, "bad request"
	default:
		return http.StatusInternalServerError, "internal server error"
	}
}
