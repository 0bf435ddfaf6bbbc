package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Events   EventsConfig   `yaml:"events"`
	Geodata  GeodataConfig  `yaml:"geodata"`
	Scoring  ScoringConfig  `yaml:"scoring"`
	Reporter ReporterConfig `yaml:"reporter"`
	Logging  LoggingConfig  `yaml:"logging"`
}

type ServerConfig struct {
	Port        int    `yaml:"port"`
	MetricsPort int    `yaml:"metrics_port"`
	AdminToken  string `yaml:"admin_token"`
}

type DatabaseConfig struct {
	URL string `yaml:"url"`
}

type EventsConfig struct {
	URL string `yaml:"url"`
}

// GeodataConfig selects the site value source: "synthetic" for the built-in
// coordinate model, "http" for an external geodata service.
type GeodataConfig struct {
	Source string `yaml:"source"`
	URL    string `yaml:"url"`
	Token  string `yaml:"token"`
}

type ScoringConfig struct {
	Thresholds ScoringThresholds `yaml:"thresholds"`
	CRLimit    float64           `yaml:"cr_limit"`
}

// ScoringThresholds are the lower bounds of the recommendation bins.
type ScoringThresholds struct {
	Highly     float64 `yaml:"highly"`
	Moderately float64 `yaml:"moderately"`
	Marginally float64 `yaml:"marginally"`
}

type ReporterConfig struct {
	IntervalMs int `yaml:"interval_ms"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

func (c *Config) ReporterInterval() time.Duration {
	return time.Duration(c.Reporter.IntervalMs) * time.Millisecond
}

func Load(path string) (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:        8700,
			MetricsPort: 8701,
		},
		Events: EventsConfig{
			URL: "nats://localhost:4222",
		},
		Geodata: GeodataConfig{
			Source: "synthetic",
		},
		Scoring: ScoringConfig{
			Thresholds: ScoringThresholds{
				Highly:     0.75,
				Moderately: 0.50,
				Marginally: 0.25,
			},
			CRLimit: 0.10,
		},
		Reporter: ReporterConfig{
			IntervalMs: 60000,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	applyEnv(cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("SITERANK_PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = n
		}
	}
	if v := os.Getenv("SITERANK_METRICS_PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Server.MetricsPort = n
		}
	}
	if v := os.Getenv("SITERANK_ADMIN_TOKEN"); v != "" {
		cfg.Server.AdminToken = v
	}
	if v := os.Getenv("SITERANK_DATABASE_URL"); v != "" {
		cfg.Database.URL = v
	}
	if v := os.Getenv("SITERANK_EVENTS_URL"); v != "" {
		cfg.Events.URL = v
	}
	if v := os.Getenv("SITERANK_GEODATA_SOURCE"); v != "" {
		cfg.Geodata.Source = v
	}
	if v := os.Getenv("SITERANK_GEODATA_URL"); v != "" {
		cfg.Geodata.URL = v
	}
	if v := os.Getenv("SITERANK_GEODATA_TOKEN"); v != "" {
		cfg.Geodata.Token = v
	}
	if v := os.Getenv("SITERANK_CR_LIMIT"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Scoring.CRLimit = f
		}
	}
	if v := os.Getenv("SITERANK_REPORTER_INTERVAL_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Reporter.IntervalMs = n
		}
	}
	if v := os.Getenv("SITERANK_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
}
