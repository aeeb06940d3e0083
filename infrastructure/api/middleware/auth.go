package middleware

import (
	"crypto/subtle"
	"net/http"
)

// APIKeyHeader is the header mutating requests authenticate with.
const APIKeyHeader = "X-API-KEY"

// AuthConfig holds the API keys accepted by WriteProtect. An empty key set
// disables write protection entirely.
type AuthConfig struct {
	keys []string
}

// NewAuthConfigWithKeys creates an AuthConfig accepting the given keys.
func NewAuthConfigWithKeys(keys []string) AuthConfig {
	return AuthConfig{keys: keys}
}

// Enabled reports whether any keys are configured.
func (c AuthConfig) Enabled() bool {
	return len(c.keys) > 0
}

// Accepts reports whether key matches any configured key. Comparison is
// constant time per candidate.
func (c AuthConfig) Accepts(key string) bool {
	if key == "" {
		return false
	}
	for _, candidate := range c.keys {
		if subtle.ConstantTimeCompare([]byte(candidate), []byte(key)) == 1 {
			return true
		}
	}
	return false
}

// WriteProtect returns a middleware that requires a valid API key on
// mutating methods (POST, PUT, PATCH, DELETE). Safe methods pass through
// untouched, as does everything when no keys are configured.
func WriteProtect(config AuthConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !config.Enabled() || !isMutating(r.Method) {
				next.ServeHTTP(w, r)
				return
			}

			if !config.Accepts(r.Header.Get(APIKeyHeader)) {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// WriteProtectAuth is shorthand for WriteProtect(NewAuthConfigWithKeys(keys)).
func WriteProtectAuth(keys []string) func(http.Handler) http.Handler {
	return WriteProtect(NewAuthConfigWithKeys(keys))
}

func isMutating(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		return true
	}
	return false
}
