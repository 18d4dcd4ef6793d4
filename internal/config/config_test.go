package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func chdirTemp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(origDir) })
	return dir
}

func TestLoadDefaults(t *testing.T) {
	chdirTemp(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "ilce_geojson.json", cfg.Data.Districts)
	assert.Equal(t, "mahalle_geojson.json", cfg.Data.Neighborhoods)
	assert.Equal(t, "schools.geojson", cfg.Data.Markers)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.InDelta(t, 1.0, cfg.View.Zoom, 0.001)
	assert.Equal(t, "geomap.geojson", cfg.Export.Output)
}

func TestLoadFromYAML(t *testing.T) {
	dir := chdirTemp(t)

	yaml := `
data:
  districts: districts.json
  markers: schools.csv
log:
  level: debug
  format: json
view:
  zoom: 2.5
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0644))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "districts.json", cfg.Data.Districts)
	assert.Equal(t, "schools.csv", cfg.Data.Markers)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.InDelta(t, 2.5, cfg.View.Zoom, 0.001)
	// Defaults still apply for unset values
	assert.Equal(t, "mahalle_geojson.json", cfg.Data.Neighborhoods)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	dir := chdirTemp(t)

	yaml := `
log:
  level: debug
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0644))

	t.Setenv("GEOMAP_LOG_LEVEL", "warn")
	t.Setenv("GEOMAP_EXPORT_OUTPUT", "out.geojson")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, "out.geojson", cfg.Export.Output)
}

func TestLoadBadYAML(t *testing.T) {
	dir := chdirTemp(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("log: [unclosed"), 0644))

	_, err := Load()
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := Config{
		Data:   DataConfig{Districts: "d.json"},
		View:   ViewConfig{Zoom: 1},
		Export: ExportConfig{Output: "out.geojson"},
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		command string
		wantErr string
	}{
		{name: "view ok", command: "view"},
		{name: "export ok", command: "export"},
		{name: "stats ok", command: "stats"},
		{name: "no districts", command: "stats", mutate: func(c *Config) { c.Data.Districts = "" }, wantErr: "data.districts is required"},
		{name: "zero zoom", command: "view", mutate: func(c *Config) { c.View.Zoom = 0 }, wantErr: "view.zoom must be positive"},
		{name: "no output", command: "export", mutate: func(c *Config) { c.Export.Output = "" }, wantErr: "export.output is required"},
		{name: "unknown", command: "serve", wantErr: "unknown command"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			if tt.mutate != nil {
				tt.mutate(&cfg)
			}
			err := cfg.Validate(tt.command)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestInitLoggerConsole(t *testing.T) {
	err := InitLogger(LogConfig{Level: "debug", Format: "console"})
	require.NoError(t, err)
	assert.NotNil(t, zap.L())
}

func TestInitLoggerJSON(t *testing.T) {
	err := InitLogger(LogConfig{Level: "info", Format: "json"})
	require.NoError(t, err)
	assert.NotNil(t, zap.L())
}

func TestInitLoggerInvalidLevel(t *testing.T) {
	err := InitLogger(LogConfig{Level: "invalid", Format: "json"})
	assert.Error(t, err)
}
