package middleware

import (
	"net/http"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/gitschema/gitschema/internal/log"
)

// CorrelationIDHeader carries a caller-supplied correlation ID. Provider
// deliveries typically do not send one, in which case the chi request ID is
// used instead.
const CorrelationIDHeader = "X-Correlation-ID"

// CorrelationID propagates a correlation ID through the request context so
// log lines emitted while handling the request can be tied together.
func CorrelationID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(CorrelationIDHeader)
		if id == "" {
			id = middleware.GetReqID(r.Context())
		}
		if id != "" {
			r = r.WithContext(log.WithCorrelationID(r.Context(), id))
			w.Header().Set(CorrelationIDHeader, id)
		}
		next.ServeHTTP(w, r)
	})
}
