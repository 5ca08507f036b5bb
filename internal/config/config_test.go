package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/lepinkainen/embed-forge/pkg/oembed"
)

func TestLoadConfigEmbeddedDefaults(t *testing.T) {
	config, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("LoadConfig error = %v", err)
	}

	if !config.Site.PreferOEmbed {
		t.Error("site.prefer_oembed should default to true")
	}
	if config.Cache.Backend != "memory" {
		t.Errorf("cache.backend = %q, expected memory", config.Cache.Backend)
	}
	if config.Cache.DefaultTTL != 24*time.Hour {
		t.Errorf("cache.default_ttl = %v, expected 24h", config.Cache.DefaultTTL)
	}
	if config.OEmbed.TwitterEndpoint != oembed.TwitterEndpoint {
		t.Errorf("oembed.twitter_endpoint = %q", config.OEmbed.TwitterEndpoint)
	}
	if config.Server.Address != ":8080" {
		t.Errorf("server.address = %q, expected :8080", config.Server.Address)
	}
	if len(config.Server.AllowedOrigins) != 1 || config.Server.AllowedOrigins[0] != "*" {
		t.Errorf("server.allowed_origins = %v", config.Server.AllowedOrigins)
	}
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `site:
  username: TwitterDev
  theme: dark
  dnt: true
  prefer_oembed: false
cache:
  backend: sqlite
  sqlite_path: /tmp/embeds.db
  default_ttl: 2h
oembed:
  max_concurrent: 2
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	config, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig error = %v", err)
	}

	if config.Site.Username != "TwitterDev" || config.Site.Theme != "dark" {
		t.Errorf("site = %+v", config.Site)
	}
	if config.Site.PreferOEmbed {
		t.Error("site.prefer_oembed should be false")
	}

	store := config.TransientConfig()
	if store.Backend != "sqlite" || store.SQLitePath != "/tmp/embeds.db" {
		t.Errorf("TransientConfig() = %+v", store)
	}
	if store.RedisPrefix != "embed-forge:" {
		t.Errorf("redis prefix default = %q", store.RedisPrefix)
	}

	fetcher := config.OEmbedConfig()
	if !fetcher.DNT {
		t.Error("OEmbedConfig().DNT should follow site.dnt")
	}
	if fetcher.DefaultTTL != 2*time.Hour {
		t.Errorf("OEmbedConfig().DefaultTTL = %v, expected 2h", fetcher.DefaultTTL)
	}
	if fetcher.MaxConcurrent != 2 {
		t.Errorf("OEmbedConfig().MaxConcurrent = %d, expected 2", fetcher.MaxConcurrent)
	}
	if fetcher.VineEndpoint != oembed.VineEndpoint {
		t.Errorf("OEmbedConfig().VineEndpoint = %q", fetcher.VineEndpoint)
	}
}

func TestLoadConfigEnvOverride(t *testing.T) {
	t.Setenv("EMBED_FORGE_CACHE_BACKEND", "redis")
	t.Setenv("EMBED_FORGE_HTTP_TIMEOUT", "3s")

	config, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("LoadConfig error = %v", err)
	}

	if config.Cache.Backend != "redis" {
		t.Errorf("cache.backend = %q, expected redis", config.Cache.Backend)
	}
	if got := config.HTTPConfig().Timeout; got != 3*time.Second {
		t.Errorf("HTTPConfig().Timeout = %v, expected 3s", got)
	}
}

func TestLoadConfigInvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("site: [unterminated"), 0o644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	if _, err := LoadConfig(path); err == nil {
		t.Error("LoadConfig should fail for malformed YAML")
	}
}

func TestSaveDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	if err := SaveDefault(path); err != nil {
		t.Fatalf("SaveDefault error = %v", err)
	}

	config, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig of saved default error = %v", err)
	}
	if config.Cache.Backend != "memory" {
		t.Errorf("cache.backend = %q, expected memory", config.Cache.Backend)
	}
}
