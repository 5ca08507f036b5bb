// Package config loads post and widget documents from local files or URLs, in JSON or YAML.
package config

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	httputil "github.com/lepinkainen/embed-forge/pkg/http"
)

// Document formats
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// LoaderConfig represents document loading options
type LoaderConfig struct {
	Timeout    time.Duration
	MaxRetries int
}

// DefaultLoaderConfig returns default loader configuration
func DefaultLoaderConfig() *LoaderConfig {
	return &LoaderConfig{
		Timeout:    10 * time.Second,
		MaxRetries: 3,
	}
}

// LoadOrFetch decodes the document at source into target with the default configuration.
// Sources starting with http:// or https:// are fetched, anything else is read from disk.
func LoadOrFetch(ctx context.Context, source string, target any) error {
	return DefaultLoaderConfig().Load(ctx, source, target)
}

// Load decodes the document at source into target
func (c *LoaderConfig) Load(ctx context.Context, source string, target any) error {
	if isRemote(source) {
		return loadFromURL(ctx, source, c, target)
	}
	return loadFromFile(source, target)
}

// Decode parses data as JSON or YAML, detected from name and content
func Decode(name string, data []byte, target any) error {
	switch detectFormat(name, data) {
	case FormatJSON:
		if err := json.Unmarshal(data, target); err != nil {
			return fmt.Errorf("failed to parse JSON: %w", err)
		}
	default:
		if err := yaml.Unmarshal(data, target); err != nil {
			return fmt.Errorf("failed to parse YAML: %w", err)
		}
	}
	return nil
}

// LoadReader decodes a document read from r. name is only used for format detection.
func LoadReader(r io.Reader, name string, target any) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("failed to read document: %w", err)
	}
	return Decode(name, data, target)
}

func isRemote(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}

// loadFromURL fetches a document using the shared HTTP client
func loadFromURL(ctx context.Context, rawURL string, config *LoaderConfig, target any) error {
	httpConfig := httputil.DefaultConfig()
	httpConfig.Timeout = config.Timeout
	httpConfig.MaxRetries = config.MaxRetries
	httpConfig.Headers = map[string]string{"Accept": "application/json, application/yaml;q=0.9, */*;q=0.8"}

	client := httputil.NewClient(httpConfig)
	resp, err := client.GetWithContext(ctx, rawURL)
	if err != nil {
		return fmt.Errorf("failed to fetch document from URL: %w", err)
	}

	if err := httputil.EnsureStatusOK(resp); err != nil {
		_, _ = httputil.ReadResponseBody(resp)
		return fmt.Errorf("HTTP error fetching document: %w", err)
	}

	data, err := httputil.ReadResponseBody(resp)
	if err != nil {
		return fmt.Errorf("failed to read document body: %w", err)
	}

	name := rawURL
	if u, err := url.Parse(rawURL); err == nil {
		name = path.Base(u.Path)
	}
	if strings.Contains(resp.Header.Get("Content-Type"), "json") && filepath.Ext(name) == "" {
		name += ".json"
	}

	slog.Debug("Fetched document", "url", rawURL, "bytes", len(data))
	if err := Decode(name, data, target); err != nil {
		return fmt.Errorf("failed to decode document: %w", err)
	}
	return nil
}

// loadFromFile loads a document from a local file
func loadFromFile(filePath string, target any) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return fmt.Errorf("failed to read file %s: %w", filePath, err)
	}
	return Decode(filePath, data, target)
}

// detectFormat picks the format from the file extension, then from the first non-space byte
func detectFormat(name string, data []byte) string {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".json":
		return FormatJSON
	case ".yaml", ".yml":
		return FormatYAML
	}

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && (trimmed[0] == '{' || trimmed[0] == '[') {
		return FormatJSON
	}
	return FormatYAML
}
