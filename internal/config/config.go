// Package config provides application configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Default configuration values.
const (
	DefaultHost          = "0.0.0.0"
	DefaultPort          = 8080
	DefaultLogLevel      = "INFO"
	DefaultDataSubdir    = ".gitschema"
	DefaultVCSTimeout    = 30 * time.Second
	DefaultVCSMaxRetries = 3
)

// LogFormat represents the log output format.
type LogFormat string

// LogFormat values.
const (
	LogFormatPretty LogFormat = "pretty"
	LogFormatJSON   LogFormat = "json"
)

// AppConfig is the resolved application configuration.
type AppConfig struct {
	host          string
	port          int
	dataDir       string
	dbURL         string
	logLevel      string
	logFormat     LogFormat
	vcsTimeout    time.Duration
	vcsMaxRetries int
	apiKeys       []string
}

// NewAppConfig creates an AppConfig with defaults applied.
func NewAppConfig() AppConfig {
	return AppConfig{
		host:          DefaultHost,
		port:          DefaultPort,
		logLevel:      DefaultLogLevel,
		logFormat:     LogFormatPretty,
		vcsTimeout:    DefaultVCSTimeout,
		vcsMaxRetries: DefaultVCSMaxRetries,
	}
}

// Host returns the server host to bind to.
func (c AppConfig) Host() string { return c.host }

// Port returns the server port.
func (c AppConfig) Port() int { return c.port }

// Addr returns the host:port address to listen on.
func (c AppConfig) Addr() string { return fmt.Sprintf("%s:%d", c.host, c.port) }

// DataDir returns the data directory, defaulting to ~/.gitschema.
func (c AppConfig) DataDir() string {
	if c.dataDir != "" {
		return c.dataDir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return DefaultDataSubdir
	}
	return filepath.Join(home, DefaultDataSubdir)
}

// DBURL returns the database URL, defaulting to a SQLite file under the
// data directory.
func (c AppConfig) DBURL() string {
	if c.dbURL != "" {
		return c.dbURL
	}
	return "sqlite:///" + filepath.Join(c.DataDir(), "gitschema.db")
}

// LogLevel returns the configured log level.
func (c AppConfig) LogLevel() string { return c.logLevel }

// LogFormat returns the configured log format.
func (c AppConfig) LogFormat() LogFormat { return c.logFormat }

// VCSTimeout returns the per-request timeout for provider file fetches.
func (c AppConfig) VCSTimeout() time.Duration { return c.vcsTimeout }

// VCSMaxRetries returns the retry budget for provider file fetches.
func (c AppConfig) VCSMaxRetries() int { return c.vcsMaxRetries }

// APIKeys returns the keys accepted by the write-protected HTTP API.
func (c AppConfig) APIKeys() []string { return c.apiKeys }

// WithHost returns a copy with the host overridden (empty is a no-op).
func (c AppConfig) WithHost(host string) AppConfig {
	if host != "" {
		c.host = host
	}
	return c
}

// WithPort returns a copy with the port overridden (0 is a no-op).
func (c AppConfig) WithPort(port int) AppConfig {
	if port != 0 {
		c.port = port
	}
	return c
}

// WithDBURL returns a copy with the database URL overridden (empty is a no-op).
func (c AppConfig) WithDBURL(url string) AppConfig {
	if url != "" {
		c.dbURL = url
	}
	return c
}

// EnsureDataDir creates the data directory if it does not exist.
func (c AppConfig) EnsureDataDir() error {
	return os.MkdirAll(c.DataDir(), 0o755)
}
