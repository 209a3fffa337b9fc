package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v2"
)

// ============================================================================
// CONFIG — dashboard configuration
// ============================================================================
// Binds each extract source to a file (and optionally a sheet) under the
// data directory. Missing config falls back to the stock filenames the
// operation exports.
// ============================================================================

// SourceFile binds one extract source to a workbook or CSV file.
type SourceFile struct {
	File  string `yaml:"file"`
	Sheet string `yaml:"sheet,omitempty"` // empty = first sheet
}

// Config is the dashboard configuration.
type Config struct {
	DataDir string                `yaml:"data_dir"`
	Sources map[string]SourceFile `yaml:"sources"`
}

// Source names used throughout the dashboard.
const (
	SourceActuals        = "actuals"
	SourceForecastRoster = "forecast_roster"
	SourceWeekOutSeason  = "week_out_season"
	SourceWages          = "wages"
)

// Default returns the stock configuration: the extract filenames the
// operation's exports use, under ./data.
func Default() *Config {
	return &Config{
		DataDir: "data",
		Sources: map[string]SourceFile{
			SourceActuals:        {File: "Actuals.xlsx"},
			SourceForecastRoster: {File: "Roster_Data.xlsx"},
			SourceWeekOutSeason:  {File: "4-week-out packed forecast with Fiscal_Week_and_Season.xlsx"},
			SourceWages:          {File: "Wages.xlsx"},
		},
	}
}

// Load reads a YAML config file. Unset fields fall back to defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if cfg.DataDir == "" {
		cfg.DataDir = Default().DataDir
	}
	return cfg, nil
}

// Path resolves a source's file path under the data directory.
func (c *Config) Path(source string) (string, error) {
	sf, ok := c.Sources[source]
	if !ok || sf.File == "" {
		return "", fmt.Errorf("source %q not configured", source)
	}
	return filepath.Join(c.DataDir, sf.File), nil
}

// Sheet returns the configured sheet for a source (empty = first sheet).
func (c *Config) Sheet(source string) string {
	return c.Sources[source].Sheet
}
