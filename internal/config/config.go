package config

import (
	"fmt"
	"strings"

	"github.com/Veraticus/bureau-dispute-flow/internal/common"
	"github.com/Veraticus/bureau-dispute-flow/internal/fieldpath"
	"github.com/spf13/viper"
)

// DefaultDatabasePath is where selections and letter items live unless overridden.
const DefaultDatabasePath = "$HOME/.local/share/bureau/bureau.db"

// Output formats accepted by output.format.
const (
	OutputTable = "table"
	OutputJSON  = "json"
)

// Config is the resolved runtime configuration.
type Config struct {
	Limits   fieldpath.Options `mapstructure:"limits"`
	Database DatabaseConfig    `mapstructure:"database"`
	Logging  LoggingConfig     `mapstructure:"logging"`
	Output   OutputConfig      `mapstructure:"output"`
}

// DatabaseConfig locates the SQLite store.
type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

// LoggingConfig controls the slog handler.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// OutputConfig controls how commands print results.
type OutputConfig struct {
	Format string `mapstructure:"format"`
}

// SetDefaults registers default values on v.
func SetDefaults(v *viper.Viper) {
	limits := fieldpath.DefaultOptions()
	v.SetDefault("limits.max_depth", limits.MaxDepth)
	v.SetDefault("limits.array_sample_size", limits.ArraySampleSize)
	v.SetDefault("limits.max_keys", limits.MaxKeys)
	v.SetDefault("database.path", DefaultDatabasePath)
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("output.format", OutputTable)
}

// Load resolves configuration from the global viper instance.
func Load() (*Config, error) {
	return LoadFrom(viper.GetViper())
}

// LoadFrom resolves and validates configuration held by v.
func LoadFrom(v *viper.Viper) (*Config, error) {
	SetDefaults(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrInvalidConfig, err)
	}

	cfg.Database.Path = ExpandPath(cfg.Database.Path)
	cfg.Output.Format = strings.ToLower(cfg.Output.Format)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects limits and formats the pipeline cannot honor.
func (c *Config) Validate() error {
	if c.Limits.MaxDepth <= 0 {
		return fmt.Errorf("%w: limits.max_depth must be positive, got %d", common.ErrInvalidConfig, c.Limits.MaxDepth)
	}
	if c.Limits.ArraySampleSize <= 0 {
		return fmt.Errorf("%w: limits.array_sample_size must be positive, got %d", common.ErrInvalidConfig, c.Limits.ArraySampleSize)
	}
	if c.Limits.MaxKeys <= 0 {
		return fmt.Errorf("%w: limits.max_keys must be positive, got %d", common.ErrInvalidConfig, c.Limits.MaxKeys)
	}
	if c.Database.Path == "" {
		return fmt.Errorf("%w: database.path", common.ErrMissingConfig)
	}
	switch c.Output.Format {
	case OutputTable, OutputJSON:
	default:
		return fmt.Errorf("%w: output.format must be %q or %q, got %q", common.ErrInvalidConfig, OutputTable, OutputJSON, c.Output.Format)
	}
	if _, err := common.ParseLevel(c.Logging.Level); err != nil {
		return err
	}
	return nil
}
