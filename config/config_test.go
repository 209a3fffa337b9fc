package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "data", cfg.DataDir)

	for _, source := range []string{SourceActuals, SourceForecastRoster, SourceWeekOutSeason, SourceWages} {
		path, err := cfg.Path(source)
		require.NoError(t, err)
		assert.NotEmpty(t, path)
	}

	path, err := cfg.Path(SourceActuals)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("data", "Actuals.xlsx"), path)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cropsight.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
data_dir: /srv/extracts
sources:
  actuals:
    file: actuals_fy24.xlsx
    sheet: Export
  wages:
    file: wages.csv
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/srv/extracts", cfg.DataDir)

	got, err := cfg.Path(SourceActuals)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/srv/extracts", "actuals_fy24.xlsx"), got)
	assert.Equal(t, "Export", cfg.Sheet(SourceActuals))
	assert.Equal(t, "", cfg.Sheet(SourceWages))
}

func TestLoadFallsBackToDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cropsight.yaml")
	require.NoError(t, os.WriteFile(path, []byte("sources:\n  wages:\n    file: wages.csv\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "data", cfg.DataDir, "unset data_dir falls back to the default")
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("data_dir: [unterminated"), 0o644))
	_, err = Load(bad)
	assert.Error(t, err)
}

func TestPathUnknownSource(t *testing.T) {
	cfg := Default()
	_, err := cfg.Path("shipping_manifests")
	assert.Error(t, err)
}
