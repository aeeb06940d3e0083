package config

import (
	"testing"
	"time"
)

func TestLoadFromEnv_Defaults(t *testing.T) {
	cfg, err := LoadFromEnv()
	if err != nil {
		t.Fatalf("LoadFromEnv: %v", err)
	}
	if cfg.Host != "0.0.0.0" {
		t.Errorf("Host = %q, want 0.0.0.0", cfg.Host)
	}
	if cfg.Port != 8080 {
		t.Errorf("Port = %d, want 8080", cfg.Port)
	}
	if cfg.LogLevel != "INFO" {
		t.Errorf("LogLevel = %q, want INFO", cfg.LogLevel)
	}
	if cfg.LogFormat != "pretty" {
		t.Errorf("LogFormat = %q, want pretty", cfg.LogFormat)
	}
}

func TestLoadFromEnv_Overrides(t *testing.T) {
	t.Setenv("HOST", "127.0.0.1")
	t.Setenv("PORT", "9090")
	t.Setenv("DB_URL", "postgres://u:p@localhost:5432/gitschema")
	t.Setenv("LOG_FORMAT", "json")
	t.Setenv("VCS_TIMEOUT_SECONDS", "5")
	t.Setenv("API_KEYS", "key-one, key-two,")

	cfg, err := LoadFromEnv()
	if err != nil {
		t.Fatalf("LoadFromEnv: %v", err)
	}

	app := cfg.Normalize().ToAppConfig()
	if app.Host() != "127.0.0.1" {
		t.Errorf("Host = %q", app.Host())
	}
	if app.Port() != 9090 {
		t.Errorf("Port = %d", app.Port())
	}
	if app.DBURL() != "postgres://u:p@localhost:5432/gitschema" {
		t.Errorf("DBURL = %q", app.DBURL())
	}
	if app.LogFormat() != LogFormatJSON {
		t.Errorf("LogFormat = %q", app.LogFormat())
	}
	if app.VCSTimeout() != 5*time.Second {
		t.Errorf("VCSTimeout = %v", app.VCSTimeout())
	}
	if keys := app.APIKeys(); len(keys) != 2 || keys[0] != "key-one" || keys[1] != "key-two" {
		t.Errorf("APIKeys = %v", app.APIKeys())
	}
}

func TestNormalize(t *testing.T) {
	e := EnvConfig{Host: " 1.2.3.4 ", LogLevel: "debug", LogFormat: " JSON "}
	n := e.Normalize()
	if n.Host != "1.2.3.4" {
		t.Errorf("Host = %q", n.Host)
	}
	if n.LogLevel != "DEBUG" {
		t.Errorf("LogLevel = %q", n.LogLevel)
	}
	if n.LogFormat != "json" {
		t.Errorf("LogFormat = %q", n.LogFormat)
	}
}
