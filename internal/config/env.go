// Package config provides application configuration.
package config

import (
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// EnvConfig holds all environment-based configuration.
type EnvConfig struct {
	// Host is the server host to bind to.
	// Env: HOST (default: 0.0.0.0)
	Host string `envconfig:"HOST" default:"0.0.0.0"`

	// Port is the server port to listen on.
	// Env: PORT (default: 8080)
	Port int `envconfig:"PORT" default:"8080"`

	// DataDir is the data directory path.
	// Env: DATA_DIR
	// Default: ~/.gitschema
	DataDir string `envconfig:"DATA_DIR"`

	// DBURL is the database connection URL.
	// Env: DB_URL
	// Default: sqlite:///{data_dir}/gitschema.db
	DBURL string `envconfig:"DB_URL"`

	// LogLevel is the log verbosity level.
	// Env: LOG_LEVEL (default: INFO)
	LogLevel string `envconfig:"LOG_LEVEL" default:"INFO"`

	// LogFormat is the log output format (pretty or json).
	// Env: LOG_FORMAT (default: pretty)
	LogFormat string `envconfig:"LOG_FORMAT" default:"pretty"`

	// VCSTimeoutSeconds is the per-request timeout for provider file fetches.
	// Env: VCS_TIMEOUT_SECONDS (default: 30)
	VCSTimeoutSeconds int `envconfig:"VCS_TIMEOUT_SECONDS" default:"30"`

	// VCSMaxRetries is the retry budget for provider file fetches.
	// Env: VCS_MAX_RETRIES (default: 3)
	VCSMaxRetries int `envconfig:"VCS_MAX_RETRIES" default:"3"`

	// APIKeys is a comma-separated list of keys accepted by the write-protected
	// HTTP API. Empty disables write protection.
	// Env: API_KEYS
	APIKeys string `envconfig:"API_KEYS"`
}

// LoadFromEnv reads configuration from environment variables.
func LoadFromEnv() (EnvConfig, error) {
	var cfg EnvConfig
	if err := envconfig.Process("", &cfg); err != nil {
		return EnvConfig{}, err
	}
	return cfg, nil
}

// Normalize canonicalizes string fields (trims whitespace, uppercases the
// log level, lowercases the log format).
func (e EnvConfig) Normalize() EnvConfig {
	e.Host = strings.TrimSpace(e.Host)
	e.DBURL = strings.TrimSpace(e.DBURL)
	e.DataDir = strings.TrimSpace(e.DataDir)
	e.LogLevel = strings.ToUpper(strings.TrimSpace(e.LogLevel))
	e.LogFormat = strings.ToLower(strings.TrimSpace(e.LogFormat))
	return e
}

// ToAppConfig converts the environment configuration into an AppConfig.
func (e EnvConfig) ToAppConfig() AppConfig {
	cfg := NewAppConfig()
	cfg = cfg.WithHost(e.Host).WithPort(e.Port).WithDBURL(e.DBURL)
	cfg.dataDir = e.DataDir
	if e.LogLevel != "" {
		cfg.logLevel = e.LogLevel
	}
	if e.LogFormat == string(LogFormatJSON) {
		cfg.logFormat = LogFormatJSON
	}
	if e.VCSTimeoutSeconds > 0 {
		cfg.vcsTimeout = time.Duration(e.VCSTimeoutSeconds) * time.Second
	}
	if e.VCSMaxRetries > 0 {
		cfg.vcsMaxRetries = e.VCSMaxRetries
	}
	for _, key := range strings.Split(e.APIKeys, ",") {
		if key = strings.TrimSpace(key); key != "" {
			cfg.apiKeys = append(cfg.apiKeys, key)
		}
	}
	return cfg
}
