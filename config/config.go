package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// ============================================================================
// CONFIG — YAML file with environment overrides
// ============================================================================
// Precedence: defaults ← YAML file ← CORPATLAS_* environment variables.
// A missing config file is fine (defaults apply); a malformed one is not.
// ============================================================================

type Config struct {
	App struct {
		Name    string `yaml:"name"`
		Version string `yaml:"version"`
	} `yaml:"app"`

	Server struct {
		Port int `yaml:"port"`
	} `yaml:"server"`

	Data struct {
		CSVPath      string `yaml:"csv_path"`
		SnapshotPath string `yaml:"snapshot_path"`
	} `yaml:"data"`

	Defaults struct {
		Continent string `yaml:"continent"`
		Metric    string `yaml:"metric"`
		TopN      int    `yaml:"top_n"`
	} `yaml:"defaults"`

	Logging Logging `yaml:"logging"`
}

// Logging configures the logger package.
type Logging struct {
	Level  string `yaml:"level"`  // trace..panic, default info
	Format string `yaml:"format"` // "json" or "text"
	File   string `yaml:"file"`   // empty = stderr only

	// Rotation settings, used only when File is set.
	MaxSizeMB  int `yaml:"max_size_mb"`
	MaxBackups int `yaml:"max_backups"`
	MaxAgeDays int `yaml:"max_age_days"`
}

// Default returns the built-in configuration.
func Default() Config {
	var cfg Config
	cfg.App.Name = "corpatlas"
	cfg.App.Version = "0.1.0"
	cfg.Server.Port = 8080
	cfg.Data.CSVPath = "Top2000_Companies_Globally_Fixed.csv"
	cfg.Defaults.Metric = "sales"
	cfg.Defaults.TopN = 10
	cfg.Logging.Level = "info"
	cfg.Logging.Format = "text"
	cfg.Logging.MaxSizeMB = 50
	cfg.Logging.MaxBackups = 3
	cfg.Logging.MaxAgeDays = 28
	return cfg
}

// Load reads a YAML config file over the defaults, then applies environment
// overrides. An empty path skips the file entirely.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	applyEnvOverrides(&cfg)

	if err := cfg.validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// applyEnvOverrides maps CORPATLAS_* variables onto config fields.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("CORPATLAS_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("CORPATLAS_CSV_PATH"); v != "" {
		cfg.Data.CSVPath = v
	}
	if v := os.Getenv("CORPATLAS_SNAPSHOT_PATH"); v != "" {
		cfg.Data.SnapshotPath = v
	}
	if v := os.Getenv("CORPATLAS_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("CORPATLAS_LOG_FORMAT"); v != "" {
		cfg.Logging.Format = v
	}
	if v := os.Getenv("CORPATLAS_LOG_FILE"); v != "" {
		cfg.Logging.File = v
	}
}

func (c Config) validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port %d", c.Server.Port)
	}
	if c.Data.CSVPath == "" && c.Data.SnapshotPath == "" {
		return fmt.Errorf("either data.csv_path or data.snapshot_path must be set")
	}
	return nil
}
