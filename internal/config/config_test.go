package config

import (
	"strings"
	"testing"
)

func TestAppConfig_Defaults(t *testing.T) {
	cfg := NewAppConfig()

	if cfg.Addr() != "0.0.0.0:8080" {
		t.Errorf("Addr = %q, want 0.0.0.0:8080", cfg.Addr())
	}
	if cfg.LogLevel() != "INFO" {
		t.Errorf("LogLevel = %q, want INFO", cfg.LogLevel())
	}
	if cfg.LogFormat() != LogFormatPretty {
		t.Errorf("LogFormat = %q, want pretty", cfg.LogFormat())
	}
	if !strings.HasSuffix(cfg.DataDir(), DefaultDataSubdir) {
		t.Errorf("DataDir = %q, want ~/%s", cfg.DataDir(), DefaultDataSubdir)
	}
	if !strings.HasPrefix(cfg.DBURL(), "sqlite:///") {
		t.Errorf("DBURL = %q, want sqlite default", cfg.DBURL())
	}
	if !strings.HasSuffix(cfg.DBURL(), "gitschema.db") {
		t.Errorf("DBURL = %q, want gitschema.db default", cfg.DBURL())
	}
}

func TestAppConfig_Overrides(t *testing.T) {
	cfg := NewAppConfig().
		WithHost("localhost").
		WithPort(9999).
		WithDBURL("sqlite:///custom.db")

	if cfg.Addr() != "localhost:9999" {
		t.Errorf("Addr = %q", cfg.Addr())
	}
	if cfg.DBURL() != "sqlite:///custom.db" {
		t.Errorf("DBURL = %q", cfg.DBURL())
	}
}

func TestAppConfig_EmptyOverridesAreNoOps(t *testing.T) {
	cfg := NewAppConfig().WithHost("").WithPort(0).WithDBURL("")

	if cfg.Addr() != "0.0.0.0:8080" {
		t.Errorf("Addr = %q, want defaults preserved", cfg.Addr())
	}
}
