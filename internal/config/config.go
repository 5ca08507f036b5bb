package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/lepinkainen/embed-forge/configs"
	"github.com/lepinkainen/embed-forge/pkg/filesystem"
	httputil "github.com/lepinkainen/embed-forge/pkg/http"
	"github.com/lepinkainen/embed-forge/pkg/oembed"
	"github.com/lepinkainen/embed-forge/pkg/site"
	"github.com/lepinkainen/embed-forge/pkg/transient"
)

// EnvPrefix is prepended to environment variable overrides, e.g. EMBED_FORGE_CACHE_BACKEND
const EnvPrefix = "EMBED_FORGE"

// Config holds the central application configuration
type Config struct {
	Site site.Options `mapstructure:"site"`

	// Cache selects the transient store for rendered embeds
	Cache struct {
		Backend         string        `mapstructure:"backend"` // memory, sqlite or redis
		SQLitePath      string        `mapstructure:"sqlite_path"`
		DefaultTTL      time.Duration `mapstructure:"default_ttl"`
		CleanupInterval time.Duration `mapstructure:"cleanup_interval"`
		Redis           struct {
			Address  string `mapstructure:"address"`
			Password string `mapstructure:"password"`
			DB       int    `mapstructure:"db"`
			Prefix   string `mapstructure:"prefix"`
		} `mapstructure:"redis"`
	} `mapstructure:"cache"`

	HTTP struct {
		Timeout           time.Duration `mapstructure:"timeout"`
		UserAgent         string        `mapstructure:"user_agent"`
		MaxRetries        int           `mapstructure:"max_retries"`
		RequestsPerSecond float64       `mapstructure:"requests_per_second"`
		Burst             int           `mapstructure:"burst"`
	} `mapstructure:"http"`

	OEmbed struct {
		TwitterEndpoint string `mapstructure:"twitter_endpoint"`
		VineEndpoint    string `mapstructure:"vine_endpoint"`
		MaxConcurrent   int    `mapstructure:"max_concurrent"`
	} `mapstructure:"oembed"`

	Server struct {
		Address        string   `mapstructure:"address"`
		AllowedOrigins []string `mapstructure:"allowed_origins"`
	} `mapstructure:"server"`
}

// LoadConfig loads the configuration from a file. When no file is found the embedded
// defaults are used. Environment variables prefixed with EnvPrefix override both.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		path = "config.yaml"
	}
	path = filesystem.ExpandHome(path)

	// If path is relative, try current directory first, then executable directory
	if !filepath.IsAbs(path) {
		if _, err := os.Stat(path); err != nil {
			if execPath, err := filesystem.GetDefaultPath(path); err == nil {
				if _, err := os.Stat(execPath); err == nil {
					path = execPath
				}
			}
		}
	}

	v := viper.New()
	v.SetConfigType("yaml")
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if _, err := os.Stat(path); err == nil {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("error reading config file: %w", err)
	} else {
		data, err := configs.EmbeddedConfigs.ReadFile(configs.DefaultConfigName)
		if err != nil {
			return nil, fmt.Errorf("error reading embedded config: %w", err)
		}
		if err := v.ReadConfig(bytes.NewReader(data)); err != nil {
			return nil, fmt.Errorf("error parsing embedded config: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	return &config, nil
}

// SaveDefault writes the embedded default configuration to path
func SaveDefault(path string) error {
	if path == "" {
		path = "config.yaml"
	}
	path = filesystem.ExpandHome(path)

	data, err := configs.EmbeddedConfigs.ReadFile(configs.DefaultConfigName)
	if err != nil {
		return fmt.Errorf("error reading embedded config: %w", err)
	}
	if err := filesystem.EnsureDirectoryExists(path); err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("error writing config file: %w", err)
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("site.username", "")
	v.SetDefault("site.user_id", "")
	v.SetDefault("site.theme", "")
	v.SetDefault("site.link_color", "")
	v.SetDefault("site.border_color", "")
	v.SetDefault("site.lang", "")
	v.SetDefault("site.dnt", false)
	v.SetDefault("site.prefer_oembed", true)
	v.SetDefault("site.share_button", false)

	v.SetDefault("cache.backend", "memory")
	v.SetDefault("cache.sqlite_path", "embed-cache.db")
	v.SetDefault("cache.default_ttl", oembed.DefaultTTL)
	v.SetDefault("cache.cleanup_interval", 10*time.Minute)
	v.SetDefault("cache.redis.address", "localhost:6379")
	v.SetDefault("cache.redis.password", "")
	v.SetDefault("cache.redis.db", 0)
	v.SetDefault("cache.redis.prefix", "embed-forge:")

	httpDefaults := httputil.DefaultConfig()
	v.SetDefault("http.timeout", httpDefaults.Timeout)
	v.SetDefault("http.user_agent", httpDefaults.UserAgent)
	v.SetDefault("http.max_retries", httpDefaults.MaxRetries)
	v.SetDefault("http.requests_per_second", httpDefaults.RequestsPerSecond)
	v.SetDefault("http.burst", httpDefaults.Burst)

	v.SetDefault("oembed.twitter_endpoint", oembed.TwitterEndpoint)
	v.SetDefault("oembed.vine_endpoint", oembed.VineEndpoint)
	v.SetDefault("oembed.max_concurrent", oembed.DefaultConfig().MaxConcurrent)

	v.SetDefault("server.address", ":8080")
	v.SetDefault("server.allowed_origins", []string{"*"})
}

// TransientConfig returns the cache store settings
func (c *Config) TransientConfig() transient.Config {
	return transient.Config{
		Backend:         c.Cache.Backend,
		SQLitePath:      filesystem.ExpandHome(c.Cache.SQLitePath),
		RedisAddress:    c.Cache.Redis.Address,
		RedisPassword:   c.Cache.Redis.Password,
		RedisDB:         c.Cache.Redis.DB,
		RedisPrefix:     c.Cache.Redis.Prefix,
		CleanupInterval: c.Cache.CleanupInterval,
	}
}

// HTTPConfig returns the provider HTTP client settings
func (c *Config) HTTPConfig() *httputil.ClientConfig {
	config := httputil.DefaultConfig()
	if c.HTTP.Timeout > 0 {
		config.Timeout = c.HTTP.Timeout
	}
	if c.HTTP.UserAgent != "" {
		config.UserAgent = c.HTTP.UserAgent
	}
	config.MaxRetries = c.HTTP.MaxRetries
	config.RequestsPerSecond = c.HTTP.RequestsPerSecond
	config.Burst = c.HTTP.Burst
	return config
}

// OEmbedConfig returns the fetcher settings. DNT follows the site option.
func (c *Config) OEmbedConfig() oembed.Config {
	config := oembed.DefaultConfig()
	if c.OEmbed.TwitterEndpoint != "" {
		config.TwitterEndpoint = c.OEmbed.TwitterEndpoint
	}
	if c.OEmbed.VineEndpoint != "" {
		config.VineEndpoint = c.OEmbed.VineEndpoint
	}
	if c.OEmbed.MaxConcurrent > 0 {
		config.MaxConcurrent = c.OEmbed.MaxConcurrent
	}
	if c.Cache.DefaultTTL > 0 {
		config.DefaultTTL = c.Cache.DefaultTTL
	}
	config.DNT = c.Site.DNT
	return config
}
