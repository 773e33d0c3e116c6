// Package config loads the settings of the unsplash-proxy binary.
//
// Values are layered: built-in defaults, then an optional YAML file, then
// environment variables. Environment variables use the UNSPLASH_ prefix with
// dots replaced by underscores (rate_limiting.threshold is read from
// UNSPLASH_RATE_LIMITING_THRESHOLD). The keys of the unsplash section are read
// from UNSPLASH_ACCESS_KEY, UNSPLASH_BASE_URI and UNSPLASH_TIMEOUT.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/jassus213/go-unsplash/ratelimiter"
)

// EnvPrefix is the prefix of every environment variable read by Load.
const EnvPrefix = "UNSPLASH"

// Config is the full configuration of the proxy.
type Config struct {
	Unsplash     Unsplash     `mapstructure:"unsplash"`
	RateLimiting RateLimiting `mapstructure:"rate_limiting"`
	Redis        Redis        `mapstructure:"redis"`
	Server       Server       `mapstructure:"server"`
	Logging      Logging      `mapstructure:"logging"`
}

// Unsplash holds the API connection settings.
type Unsplash struct {
	BaseURI   string        `mapstructure:"base_uri"`
	AccessKey string        `mapstructure:"access_key"`
	Timeout   time.Duration `mapstructure:"timeout"`
}

// RateLimiting configures the gate.
type RateLimiting struct {
	Enabled   bool          `mapstructure:"enabled"`
	Threshold int64         `mapstructure:"threshold"`
	TTL       time.Duration `mapstructure:"ttl"`
}

// Redis selects the shared telemetry store. An empty URL keeps telemetry in memory.
type Redis struct {
	URL    string `mapstructure:"url"`
	Prefix string `mapstructure:"prefix"`
}

type Server struct {
	Addr            string        `mapstructure:"addr"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type Logging struct {
	Level       string `mapstructure:"level"`
	Development bool   `mapstructure:"development"`
}

// SetDefaults registers the default value of every key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("unsplash.base_uri", "https://api.unsplash.com/")
	v.SetDefault("unsplash.access_key", "")
	v.SetDefault("unsplash.timeout", 10*time.Second)

	v.SetDefault("rate_limiting.enabled", true)
	v.SetDefault("rate_limiting.threshold", ratelimiter.DefaultThreshold)
	v.SetDefault("rate_limiting.ttl", ratelimiter.DefaultTTL)

	v.SetDefault("redis.url", "")
	v.SetDefault("redis.prefix", "")

	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.shutdown_timeout", 10*time.Second)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.development", false)
}

// BindEnv makes v read environment variables as described in the package doc.
func BindEnv(v *viper.Viper) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	_ = v.BindEnv("unsplash.access_key", EnvPrefix+"_ACCESS_KEY")
	_ = v.BindEnv("unsplash.base_uri", EnvPrefix+"_BASE_URI")
	_ = v.BindEnv("unsplash.timeout", EnvPrefix+"_TIMEOUT")
}

// Load reads the configuration. path may be empty, in which case only
// defaults and the environment are used.
func Load(path string) (*Config, error) {
	v := viper.New()
	SetDefaults(v)
	BindEnv(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	return FromViper(v)
}

// FromViper decodes and validates the configuration held by v.
func FromViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate reports every invalid setting.
func (c *Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.Unsplash.AccessKey) == "" {
		errs = append(errs, errors.New("unsplash.access_key is required"))
	}
	if c.Unsplash.BaseURI == "" {
		errs = append(errs, errors.New("unsplash.base_uri must not be empty"))
	}
	if c.RateLimiting.Threshold < 0 {
		errs = append(errs, fmt.Errorf("rate_limiting.threshold must be >= 0, got %d", c.RateLimiting.Threshold))
	}
	if c.RateLimiting.TTL <= 0 {
		errs = append(errs, fmt.Errorf("rate_limiting.ttl must be positive, got %s", c.RateLimiting.TTL))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}

// GateOptions converts the rate limiting settings into gate options.
func (r RateLimiting) GateOptions() []ratelimiter.Option {
	return []ratelimiter.Option{
		ratelimiter.WithEnabled(r.Enabled),
		ratelimiter.WithThreshold(r.Threshold),
		ratelimiter.WithTTL(r.TTL),
	}
}
