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
	Catalog CatalogConfig `yaml:"catalog" mapstructure:"catalog"`
	Dataset DatasetConfig `yaml:"dataset" mapstructure:"dataset"`
	Server  ServerConfig  `yaml:"server" mapstructure:"server"`
	Log     LogConfig     `yaml:"log" mapstructure:"log"`
}

// CatalogConfig configures the area catalog source and its geometry
// filter.
type CatalogConfig struct {
	// Source is the path to the boundary file or gazetteer database.
	Source string `yaml:"source" mapstructure:"source"`
	// Format is one of geojson, shapefile, sqlite.
	Format string `yaml:"format" mapstructure:"format"`
	// IDField and NameField name the feature properties carrying the
	// stable id and display name.
	IDField   string `yaml:"id_field" mapstructure:"id_field"`
	NameField string `yaml:"name_field" mapstructure:"name_field"`
	// MaxAreaSqDeg drops oversized shapes before registration. Zero
	// disables the upper bound; zero-area shapes are always dropped.
	MaxAreaSqDeg float64 `yaml:"max_area_sq_deg" mapstructure:"max_area_sq_deg"`
}

// DatasetConfig configures synthetic metric generation.
type DatasetConfig struct {
	Seed        int64 `yaml:"seed" mapstructure:"seed"`
	Random      bool  `yaml:"random" mapstructure:"random"`
	Concurrency int   `yaml:"concurrency" mapstructure:"concurrency"`
}

// ServerConfig configures the view API server.
type ServerConfig struct {
	Port int `yaml:"port" mapstructure:"port"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("CENSUS_ATLAS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("catalog.format", "geojson")
	v.SetDefault("catalog.id_field", "id")
	v.SetDefault("catalog.name_field", "name")
	v.SetDefault("catalog.max_area_sq_deg", 0)
	v.SetDefault("dataset.seed", 1)
	v.SetDefault("dataset.random", false)
	v.SetDefault("dataset.concurrency", 8)
	v.SetDefault("server.port", 8080)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Read config file (optional)
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

// InitLogger initializes the global zap logger.
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
