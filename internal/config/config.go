package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/newthinker/stagger/internal/core"
	"github.com/newthinker/stagger/internal/strategy"
	"github.com/spf13/viper"
)

// Export backends.
const (
	ExportNone    = "none"
	ExportLocalFS = "localfs"
	ExportS3      = "s3"
)

type Config struct {
	Server           ServerConfig               `mapstructure:"server"`
	Metrics          MetricsConfig              `mapstructure:"metrics"`
	RateLimit        RateLimitConfig            `mapstructure:"rate_limit"`
	Export           ExportConfig               `mapstructure:"export"`
	DefaultCommodity string                     `mapstructure:"default_commodity"`
	Commodities      map[string]CommodityConfig `mapstructure:"commodities"`
}

type ServerConfig struct {
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port"`
	Mode         string        `mapstructure:"mode"`
	APIKey       string        `mapstructure:"api_key"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	TemplatesDir string        `mapstructure:"templates_dir"` // empty uses embedded templates
}

// MetricsConfig holds metrics configuration.
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

// RateLimitConfig holds the token bucket applied to API requests.
type RateLimitConfig struct {
	Enabled           bool    `mapstructure:"enabled"`
	RequestsPerSecond float64 `mapstructure:"requests_per_second"`
	Burst             int     `mapstructure:"burst"`
}

// ExportConfig selects where exported reports are written.
type ExportConfig struct {
	Type   string   `mapstructure:"type"`   // "none", "localfs" or "s3"
	Path   string   `mapstructure:"path"`   // For localfs
	Format string   `mapstructure:"format"` // Default format: "json" or "csv"
	S3     S3Config `mapstructure:"s3"`     // For S3
}

type S3Config struct {
	Bucket    string `mapstructure:"bucket"`
	Endpoint  string `mapstructure:"endpoint"`
	Region    string `mapstructure:"region"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
	Prefix    string `mapstructure:"prefix"`
}

// CommodityConfig adds a commodity preset or overrides a built-in one.
// Omitted params keep the built-in values.
type CommodityConfig struct {
	Name   string          `mapstructure:"name"`
	Unit   string          `mapstructure:"unit"`
	Params strategy.Params `mapstructure:"params"`
}

// Load reads configuration from file
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)

	// Support environment variable overrides
	v.SetEnvPrefix("STAGGER")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	// Expand environment variables in string values
	for _, key := range v.AllKeys() {
		val := v.GetString(key)
		if strings.HasPrefix(val, "${") && strings.HasSuffix(val, "}") {
			envKey := strings.TrimSuffix(strings.TrimPrefix(val, "${"), "}")
			v.Set(key, os.Getenv(envKey))
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	return &cfg, nil
}

// setDefaults mirrors Defaults so a partial file only overrides what it names.
func setDefaults(v *viper.Viper) {
	d := Defaults()
	v.SetDefault("server.host", d.Server.Host)
	v.SetDefault("server.port", d.Server.Port)
	v.SetDefault("server.mode", d.Server.Mode)
	v.SetDefault("server.read_timeout", d.Server.ReadTimeout)
	v.SetDefault("server.write_timeout", d.Server.WriteTimeout)
	v.SetDefault("metrics.enabled", d.Metrics.Enabled)
	v.SetDefault("metrics.path", d.Metrics.Path)
	v.SetDefault("rate_limit.enabled", d.RateLimit.Enabled)
	v.SetDefault("rate_limit.requests_per_second", d.RateLimit.RequestsPerSecond)
	v.SetDefault("rate_limit.burst", d.RateLimit.Burst)
	v.SetDefault("export.type", d.Export.Type)
	v.SetDefault("export.path", d.Export.Path)
	v.SetDefault("export.format", d.Export.Format)
	v.SetDefault("default_commodity", d.DefaultCommodity)
}

// Defaults returns a config with sensible defaults
func Defaults() *Config {
	return &Config{
		Server: ServerConfig{
			Host:         "0.0.0.0",
			Port:         8080,
			Mode:         "release",
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
		},
		Metrics: MetricsConfig{
			Enabled: true,
			Path:    "/metrics",
		},
		RateLimit: RateLimitConfig{
			Enabled:           true,
			RequestsPerSecond: 20,
			Burst:             40,
		},
		Export: ExportConfig{
			Type:   ExportNone,
			Path:   "reports",
			Format: "json",
		},
		DefaultCommodity: "silver",
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	// Server validation
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("port must be between 1 and 65535, got %d", c.Server.Port))
	}
	if c.Server.ReadTimeout < 0 || c.Server.WriteTimeout < 0 {
		return core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("server timeouts cannot be negative"))
	}

	if c.Metrics.Enabled && !strings.HasPrefix(c.Metrics.Path, "/") {
		return core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("metrics path must start with /, got %q", c.Metrics.Path))
	}

	if c.RateLimit.Enabled {
		if c.RateLimit.RequestsPerSecond <= 0 {
			return core.WrapError(core.ErrConfigInvalid,
				fmt.Errorf("requests_per_second must be positive, got %f", c.RateLimit.RequestsPerSecond))
		}
		if c.RateLimit.Burst < 1 {
			return core.WrapError(core.ErrConfigInvalid,
				fmt.Errorf("burst must be at least 1, got %d", c.RateLimit.Burst))
		}
	}

	// Export validation - backend-specific settings must be present
	switch c.Export.Type {
	case "", ExportNone:
	case ExportLocalFS:
		if c.Export.Path == "" {
			return core.WrapError(core.ErrConfigMissing,
				fmt.Errorf("export path required when type is localfs"))
		}
	case ExportS3:
		if c.Export.S3.Bucket == "" {
			return core.WrapError(core.ErrConfigMissing,
				fmt.Errorf("export s3 bucket required when type is s3"))
		}
	default:
		return core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("unknown export type %q", c.Export.Type))
	}
	switch c.Export.Format {
	case "", "json", "csv":
	default:
		return core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("export format must be json or csv, got %q", c.Export.Format))
	}

	return nil
}

// ExportEnabled reports whether a report export backend is configured.
func (c *Config) ExportEnabled() bool {
	return c.Export.Type != "" && c.Export.Type != ExportNone
}
