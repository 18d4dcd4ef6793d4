package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Data   DataConfig   `yaml:"data" mapstructure:"data"`
	Log    LogConfig    `yaml:"log" mapstructure:"log"`
	View   ViewConfig   `yaml:"view" mapstructure:"view"`
	Export ExportConfig `yaml:"export" mapstructure:"export"`
}

// DataConfig points at the input collections.
type DataConfig struct {
	Districts     string `yaml:"districts" mapstructure:"districts"`
	Neighborhoods string `yaml:"neighborhoods" mapstructure:"neighborhoods"`
	// Markers may be GeoJSON, CSV or WKT; the extension decides.
	Markers string `yaml:"markers" mapstructure:"markers"`
}

// LogConfig configures zap.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// ViewConfig configures the terminal preview.
type ViewConfig struct {
	Zoom float64 `yaml:"zoom" mapstructure:"zoom"`
}

// ExportConfig configures the GeoJSON export.
type ExportConfig struct {
	Output string `yaml:"output" mapstructure:"output"`
}

// Load reads config.yaml from the working directory, if present, and
// overlays GEOMAP_* environment variables on top of the defaults.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	v.SetEnvPrefix("GEOMAP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("data.districts", "ilce_geojson.json")
	v.SetDefault("data.neighborhoods", "mahalle_geojson.json")
	v.SetDefault("data.markers", "schools.geojson")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("view.zoom", 1.0)
	v.SetDefault("export.output", "geomap.geojson")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// Validate checks the settings a command depends on.
func (c *Config) Validate(command string) error {
	var problems []string
	if c.Data.Districts == "" {
		problems = append(problems, "data.districts is required")
	}
	switch command {
	case "view":
		if c.View.Zoom <= 0 {
			problems = append(problems, "view.zoom must be positive")
		}
	case "export":
		if c.Export.Output == "" {
			problems = append(problems, "export.output is required")
		}
	case "stats":
	default:
		return eris.Errorf("config: unknown command %q", command)
	}
	if len(problems) > 0 {
		return eris.Errorf("config: %s", strings.Join(problems, "; "))
	}
	return nil
}

// InitLogger builds the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
