// Package configs provides the embedded default configuration for embed-forge.
package configs

import "embed"

// DefaultConfigName is the embedded file used when no configuration file exists
const DefaultConfigName = "config.yaml"

// EmbeddedConfigs exposes embedded configuration files for read-only access.
//
//go:embed *.yaml
var EmbeddedConfigs embed.FS
