package gitschema

import (
	"log/slog"
	"time"

	"github.com/gitschema/gitschema/domain/vcs"
	"github.com/gitschema/gitschema/internal/config"
)

// clientConfig holds configuration for Client construction.
// Use newClientConfig() to create with defaults from internal/config.
type clientConfig struct {
	dbURL         string
	fetcher       vcs.ContentFetcher
	logger        *slog.Logger
	apiKeys       []string
	vcsTimeout    time.Duration
	vcsMaxRetries int
}

// newClientConfig creates a clientConfig with defaults from internal/config.
func newClientConfig() *clientConfig {
	return &clientConfig{
		vcsTimeout:    config.DefaultVCSTimeout,
		vcsMaxRetries: config.DefaultVCSMaxRetries,
	}
}

// Option configures the Client.
type Option func(*clientConfig)

// WithSQLite configures SQLite as the database.
func WithSQLite(path string) Option {
	return func(c *clientConfig) {
		c.dbURL = "sqlite:///" + path
	}
}

// WithPostgres configures PostgreSQL as the database.
func WithPostgres(dsn string) Option {
	return func(c *clientConfig) {
		c.dbURL = dsn
	}
}

// WithDatabaseURL configures the database from a URL
// (sqlite:///path or postgres://...).
func WithDatabaseURL(url string) Option {
	return func(c *clientConfig) {
		c.dbURL = url
	}
}

// WithContentFetcher sets a custom provider content fetcher. Defaults to
// the GitLab HTTP client.
func WithContentFetcher(f vcs.ContentFetcher) Option {
	return func(c *clientConfig) {
		c.fetcher = f
	}
}

// WithLogger sets a custom logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *clientConfig) {
		c.logger = l
	}
}

// WithAPIKeys sets the API keys for HTTP API write protection.
func WithAPIKeys(keys ...string) Option {
	return func(c *clientConfig) {
		c.apiKeys = keys
	}
}

// WithVCSTimeout sets the per-request timeout for provider file fetches.
func WithVCSTimeout(d time.Duration) Option {
	return func(c *clientConfig) {
		if d > 0 {
			c.vcsTimeout = d
		}
	}
}

// WithVCSMaxRetries sets the retry budget for provider file fetches.
// Values < 0 are ignored.
func WithVCSMaxRetries(n int) Option {
	return func(c *clientConfig) {
		if n >= 0 {
			c.vcsMaxRetries = n
		}
	}
}
