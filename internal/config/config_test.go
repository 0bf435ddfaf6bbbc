package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	envVars := []string{
		"SITERANK_PORT", "SITERANK_METRICS_PORT", "SITERANK_ADMIN_TOKEN",
		"SITERANK_DATABASE_URL", "SITERANK_EVENTS_URL",
		"SITERANK_GEODATA_SOURCE", "SITERANK_GEODATA_URL", "SITERANK_GEODATA_TOKEN",
		"SITERANK_CR_LIMIT", "SITERANK_REPORTER_INTERVAL_MS", "SITERANK_LOG_LEVEL",
	}
	for _, k := range envVars {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.Port != 8700 {
		t.Errorf("expected port 8700, got %d", cfg.Server.Port)
	}
	if cfg.Server.MetricsPort != 8701 {
		t.Errorf("expected metrics port 8701, got %d", cfg.Server.MetricsPort)
	}
	if cfg.Events.URL != "nats://localhost:4222" {
		t.Errorf("expected nats URL, got %s", cfg.Events.URL)
	}
	if cfg.Geodata.Source != "synthetic" {
		t.Errorf("expected synthetic geodata source, got %s", cfg.Geodata.Source)
	}
	if cfg.Scoring.CRLimit != 0.10 {
		t.Errorf("expected CR limit 0.10, got %f", cfg.Scoring.CRLimit)
	}
	th := cfg.Scoring.Thresholds
	if th.Highly != 0.75 || th.Moderately != 0.50 || th.Marginally != 0.25 {
		t.Errorf("unexpected default thresholds: %+v", th)
	}
	if cfg.ReporterInterval() != time.Minute {
		t.Errorf("expected 1m reporter interval, got %s", cfg.ReporterInterval())
	}
	if cfg.Logging.Level != "info" || cfg.Logging.Format != "json" {
		t.Errorf("unexpected logging defaults: %+v", cfg.Logging)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("SITERANK_PORT", "9900")
	t.Setenv("SITERANK_DATABASE_URL", "postgres://test/siterank")
	t.Setenv("SITERANK_CR_LIMIT", "0.2")
	t.Setenv("SITERANK_GEODATA_SOURCE", "http")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Server.Port != 9900 {
		t.Errorf("expected port 9900, got %d", cfg.Server.Port)
	}
	if cfg.Database.URL != "postgres://test/siterank" {
		t.Errorf("expected database URL override, got %s", cfg.Database.URL)
	}
	if cfg.Scoring.CRLimit != 0.2 {
		t.Errorf("expected CR limit 0.2, got %f", cfg.Scoring.CRLimit)
	}
	if cfg.Geodata.Source != "http" {
		t.Errorf("expected http geodata source, got %s", cfg.Geodata.Source)
	}
}

func TestLoadYAMLFile(t *testing.T) {
	t.Setenv("SITERANK_PORT", "")
	os.Unsetenv("SITERANK_PORT")

	content := `
server:
  port: 8800
scoring:
  thresholds:
    highly: 0.8
    moderately: 0.6
    marginally: 0.4
  cr_limit: 0.15
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Server.Port != 8800 {
		t.Errorf("expected port 8800 from file, got %d", cfg.Server.Port)
	}
	if cfg.Scoring.Thresholds.Highly != 0.8 {
		t.Errorf("expected highly 0.8 from file, got %f", cfg.Scoring.Thresholds.Highly)
	}
	if cfg.Scoring.CRLimit != 0.15 {
		t.Errorf("expected CR limit 0.15 from file, got %f", cfg.Scoring.CRLimit)
	}
	// Unset fields keep defaults.
	if cfg.Server.MetricsPort != 8701 {
		t.Errorf("expected default metrics port, got %d", cfg.Server.MetricsPort)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load("/nonexistent/config.yaml"); err == nil {
		t.Error("expected error for missing config file")
	}
}
