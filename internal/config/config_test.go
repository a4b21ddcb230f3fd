package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "Grunddaten", cfg.Sheet)
	assert.Equal(t, "Plan 2025", cfg.Columns.Plan2025)
	assert.Equal(t, "Leipzig", cfg.Static.City)
	assert.Empty(t, cfg.Archive.Path)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_TOML(t *testing.T) {
	path := writeFile(t, "haushalt.toml", `
input = "in.xlsx"
output = "out/budget.json"

[columns]
plan_2025 = "Ansatz 2025"

[logging]
level = "debug"
format = "json"

[archive]
path = "runs.db"
`)

	cfg, err := Load(path, "")
	require.NoError(t, err)

	assert.Equal(t, "in.xlsx", cfg.Input)
	assert.Equal(t, "out/budget.json", cfg.Output)
	assert.Equal(t, "Ansatz 2025", cfg.Columns.Plan2025)
	// untouched keys keep their defaults
	assert.Equal(t, "Plan 2026", cfg.Columns.Plan2026)
	assert.Equal(t, "Grunddaten", cfg.Sheet)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, "runs.db", cfg.Archive.Path)
}

func TestLoad_BadTOML(t *testing.T) {
	path := writeFile(t, "haushalt.toml", "input = [")

	_, err := Load(path, "")
	assert.Error(t, err)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "none.toml"), "")
	assert.Error(t, err)
}

func TestLoad_EnvOverrides(t *testing.T) {
	path := writeFile(t, "haushalt.toml", `input = "from-file.xlsx"`)
	t.Setenv("HAUSHALT_INPUT", "from-env.xlsx")
	t.Setenv("HAUSHALT_SHEET", "Daten")
	t.Setenv("HAUSHALT_LOG_LEVEL", "warn")

	cfg, err := Load(path, "")
	require.NoError(t, err)

	assert.Equal(t, "from-env.xlsx", cfg.Input)
	assert.Equal(t, "Daten", cfg.Sheet)
	assert.Equal(t, "warn", cfg.Logging.Level)
}

func TestLoad_DotEnv(t *testing.T) {
	envFile := writeFile(t, ".env", "HAUSHALT_ARCHIVE=history.db\nHAUSHALT_CITY=Dresden\n")
	t.Cleanup(func() {
		_ = os.Unsetenv("HAUSHALT_ARCHIVE")
		_ = os.Unsetenv("HAUSHALT_CITY")
	})

	cfg, err := Load("", envFile)
	require.NoError(t, err)

	assert.Equal(t, "history.db", cfg.Archive.Path)
	assert.Equal(t, "Dresden", cfg.Static.City)
}

func TestLoad_MissingDotEnvIgnored(t *testing.T) {
	_, err := Load("", filepath.Join(t.TempDir(), ".env"))
	assert.NoError(t, err)
}

func TestValidate_CollectsProblems(t *testing.T) {
	cfg := Default()
	cfg.Input = ""
	cfg.Sheet = " "
	cfg.Columns.ProductCode = ""
	cfg.Logging.Format = "xml"

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "input path cannot be empty")
	assert.Contains(t, err.Error(), "sheet name cannot be empty")
	assert.Contains(t, err.Error(), "required column names cannot be empty")
	assert.Contains(t, err.Error(), "invalid log format")
}
