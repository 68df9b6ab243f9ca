// Package config loads workboard settings from defaults, an optional config
// file, .env files and WORKBOARD_* environment variables.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix namespaces environment overrides, e.g. WORKBOARD_SERVER_ADDR.
const EnvPrefix = "WORKBOARD"

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Cache    CacheConfig    `mapstructure:"cache"`
	Dedupe   DedupeConfig   `mapstructure:"dedupe"`
	Hosted   HostedConfig   `mapstructure:"hosted"`
	Log      LogConfig      `mapstructure:"log"`
	Manifest ManifestConfig `mapstructure:"manifest"`
}

type ServerConfig struct {
	Addr     string `mapstructure:"addr"`
	BasePath string `mapstructure:"base_path"`
}

type DatabaseConfig struct {
	Path         string `mapstructure:"path"`
	MaxOpenConns int    `mapstructure:"max_open_conns"`
}

type CacheConfig struct {
	TTL time.Duration `mapstructure:"ttl"`
}

type DedupeConfig struct {
	BatchSize int `mapstructure:"batch_size"`
	// RateLimit is delete batches per second; 0 disables pacing.
	RateLimit float64 `mapstructure:"rate_limit"`
}

// HostedConfig selects the hosted REST backend when URL is set.
type HostedConfig struct {
	URL    string `mapstructure:"url"`
	APIKey string `mapstructure:"api_key"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type ManifestConfig struct {
	Path string `mapstructure:"path"`
}

// Options controls where Load looks.
type Options struct {
	// File is an explicit config file. Empty searches for workboard.{yaml,toml,json}
	// in the working directory.
	File string
	// EnvFiles are loaded into the process environment before reading.
	// Missing files are ignored.
	EnvFiles []string
}

var defaultEnvFiles = []string{".env", ".env.local"}

// SetDefaults registers every key with its default value.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.base_path", "/admin")
	v.SetDefault("database.path", "workboard.db")
	v.SetDefault("database.max_open_conns", 4)
	v.SetDefault("cache.ttl", 5*time.Minute)
	v.SetDefault("dedupe.batch_size", 100)
	v.SetDefault("dedupe.rate_limit", 0)
	v.SetDefault("hosted.url", "")
	v.SetDefault("hosted.api_key", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("manifest.path", "")
}

// Load resolves configuration in order of precedence: environment, .env
// files, config file, defaults.
func Load(opts Options) (Config, error) {
	envFiles := opts.EnvFiles
	if envFiles == nil {
		envFiles = defaultEnvFiles
	}
	for _, file := range envFiles {
		_ = godotenv.Load(file)
	}

	v := viper.New()
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if opts.File != "" {
		v.SetConfigFile(opts.File)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("config: read %s: %w", opts.File, err)
		}
	} else {
		v.SetConfigName("workboard")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return Config{}, fmt.Errorf("config: read config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: decode: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects values no component can run with.
func (c Config) Validate() error {
	var errs []error
	if c.Server.Addr == "" {
		errs = append(errs, errors.New("config: server.addr is required"))
	}
	if c.Dedupe.BatchSize < 0 {
		errs = append(errs, fmt.Errorf("config: dedupe.batch_size must be >= 0, got %d", c.Dedupe.BatchSize))
	}
	if c.Dedupe.RateLimit < 0 {
		errs = append(errs, fmt.Errorf("config: dedupe.rate_limit must be >= 0, got %v", c.Dedupe.RateLimit))
	}
	if c.Cache.TTL < 0 {
		errs = append(errs, fmt.Errorf("config: cache.ttl must be >= 0, got %s", c.Cache.TTL))
	}
	return errors.Join(errs...)
}

// UseHosted reports whether the hosted REST backend is configured.
func (c Config) UseHosted() bool {
	return c.Hosted.URL != ""
}
