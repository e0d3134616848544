package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad_FromYAML(t *testing.T) {
	path := writeFile(t, "config.yml", `
dispatch:
  redispatch_limit: 7
  include_trace: true
logging:
  level: debug
  format: json
`)

	var cfg Pipeline
	if err := Load("gateway", &cfg, WithConfigFile(path)); err != nil {
		t.Fatal(err)
	}
	if cfg.Dispatch.RedispatchLimit != 7 {
		t.Errorf("expected redispatch_limit=7, got %d", cfg.Dispatch.RedispatchLimit)
	}
	if !cfg.Dispatch.IncludeTrace {
		t.Error("expected include_trace=true")
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("expected logging.level=debug, got %q", cfg.Logging.Level)
	}
}

func TestLoad_EnvOverridesYAML(t *testing.T) {
	path := writeFile(t, "config.yml", `
dispatch:
  redispatch_limit: 2
`)
	t.Setenv("GATEWAY_DISPATCH_REDISPATCH_LIMIT", "9")

	var cfg Pipeline
	if err := Load("gateway", &cfg, WithConfigFile(path)); err != nil {
		t.Fatal(err)
	}
	if cfg.Dispatch.RedispatchLimit != 9 {
		t.Errorf("expected env override 9, got %d", cfg.Dispatch.RedispatchLimit)
	}
}

func TestLoad_EnvOnly(t *testing.T) {
	t.Setenv("GATEWAY_DISPATCH_REDISPATCH_LIMIT", "9")
	t.Setenv("GATEWAY_LOGGING_LEVEL", "warn")

	var cfg Pipeline
	if err := Load("gateway", &cfg); err != nil {
		t.Fatal(err)
	}
	if cfg.Dispatch.RedispatchLimit != 9 {
		t.Errorf("expected redispatch_limit=9 from the environment, got %d", cfg.Dispatch.RedispatchLimit)
	}
	if cfg.Logging.Level != "warn" {
		t.Errorf("expected logging.level=warn from the environment, got %q", cfg.Logging.Level)
	}
}

func TestLoad_EnvFile(t *testing.T) {
	yml := writeFile(t, "config.yml", `
dispatch:
  redispatch_limit: 2
`)
	env := writeFile(t, ".env", "GATEWAY_DISPATCH_REDISPATCH_LIMIT=5\n")
	t.Cleanup(func() { os.Unsetenv("GATEWAY_DISPATCH_REDISPATCH_LIMIT") })

	var cfg Pipeline
	if err := Load("gateway", &cfg, WithConfigFile(yml), WithEnvFile(env)); err != nil {
		t.Fatal(err)
	}
	if cfg.Dispatch.RedispatchLimit != 5 {
		t.Errorf("expected .env value 5, got %d", cfg.Dispatch.RedispatchLimit)
	}
}

func TestLoad_MissingConfigFile(t *testing.T) {
	var cfg Pipeline
	if err := Load("gateway", &cfg, WithConfigFile("/nonexistent/config.yml")); err == nil {
		t.Error("expected an error for a missing explicit config file")
	}
}

func TestPipeline_ApplyDefaults(t *testing.T) {
	var cfg Pipeline
	cfg.ApplyDefaults()
	if cfg.Dispatch.RedispatchLimit != 4 {
		t.Errorf("expected default redispatch limit 4, got %d", cfg.Dispatch.RedispatchLimit)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("expected default logging level info, got %q", cfg.Logging.Level)
	}
}

func TestPipeline_Validate(t *testing.T) {
	cfg := Pipeline{Dispatch: Dispatch{RedispatchLimit: 4}}
	cfg.Logging.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	bad := Pipeline{Dispatch: Dispatch{RedispatchLimit: -1}}
	bad.Logging.ApplyDefaults()
	if err := bad.Validate(); err == nil {
		t.Error("expected negative redispatch limit to be rejected")
	}
}
