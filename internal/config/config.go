// Package config loads haushalt settings from a TOML file, a .env file and
// HAUSHALT_* environment variables, in that order.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"github.com/ukaji3/haushalt-go/internal/logging"
	"github.com/ukaji3/haushalt-go/pkg/haushalt/parser"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "HAUSHALT_"

// Config holds all haushalt configuration.
type Config struct {
	Input   string         `toml:"input"`
	Output  string         `toml:"output"`
	Sheet   string         `toml:"sheet"`
	Columns parser.Columns `toml:"columns"`
	Logging logging.Config `toml:"logging"`
	Archive ArchiveConfig  `toml:"archive"`
	Static  StaticConfig   `toml:"static"`
}

// ArchiveConfig enables the SQLite run history.
type ArchiveConfig struct {
	Path string `toml:"path,omitempty"`
}

// StaticConfig controls the per-year view files.
type StaticConfig struct {
	Dir  string `toml:"dir"`
	City string `toml:"city"`
}

// Default returns the configuration for the Leipzig export.
func Default() Config {
	return Config{
		Input:   filepath.Join("daten", "leipzig-ergebnishaushalt-2025_2026.xlsx"),
		Output:  filepath.Join("src", "data", "leipzig-budget-data.json"),
		Sheet:   "Grunddaten",
		Columns: parser.DefaultColumns(),
		Logging: logging.DefaultConfig(),
		Static: StaticConfig{
			Dir:  filepath.Join("public", "data"),
			City: "Leipzig",
		},
	}
}

// Load starts from Default, applies the TOML file at path (if path is not
// empty), then the .env file at envFile (if it exists) and finally the
// HAUSHALT_* environment.
func Load(path, envFile string) (Config, error) {
	cfg := Default()

	if path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return cfg, fmt.Errorf("parsing config %s: %w", path, err)
		}
	}

	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return cfg, fmt.Errorf("loading %s: %w", envFile, err)
		}
	}

	cfg.applyEnv()
	return cfg, nil
}

func (c *Config) applyEnv() {
	c.Input = getEnv("INPUT", c.Input)
	c.Output = getEnv("OUTPUT", c.Output)
	c.Sheet = getEnv("SHEET", c.Sheet)
	c.Archive.Path = getEnv("ARCHIVE", c.Archive.Path)
	c.Static.Dir = getEnv("STATIC_DIR", c.Static.Dir)
	c.Static.City = getEnv("CITY", c.Static.City)
	c.Logging.Level = getEnv("LOG_LEVEL", c.Logging.Level)
	c.Logging.Format = getEnv("LOG_FORMAT", c.Logging.Format)
	c.Logging.Output = getEnv("LOG_OUTPUT", c.Logging.Output)
}

// Validate validates the configuration and returns every problem found.
func (c *Config) Validate() error {
	var problems []string

	if strings.TrimSpace(c.Input) == "" {
		problems = append(problems, "input path cannot be empty")
	}
	if strings.TrimSpace(c.Output) == "" {
		problems = append(problems, "output path cannot be empty")
	}
	if strings.TrimSpace(c.Sheet) == "" {
		problems = append(problems, "sheet name cannot be empty")
	}

	for _, col := range c.Columns.Required() {
		if strings.TrimSpace(col) == "" {
			problems = append(problems, "required column names cannot be empty")
			break
		}
	}

	if err := c.Logging.Validate(); err != nil {
		problems = append(problems, err.Error())
	}

	if len(problems) > 0 {
		return fmt.Errorf("configuration validation failed:\n  - %s", strings.Join(problems, "\n  - "))
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(EnvPrefix + key); value != "" {
		return value
	}
	return defaultValue
}
