package config

import (
	"github.com/nibzard/tracker-go/internal/trackerdir"
)

// Source represents where a configuration value came from.
type Source string

const (
	SourceDefault  Source = "default"
	SourceUserFile Source = "user file"
	SourceProjFile Source = "project file"
	SourceEnv      Source = "environment"
	SourceFlag     Source = "flag"
)

// Default values.
const (
	DefaultLogLevel  = "warn"
	DefaultLogFormat = "text"
)

// DefaultDataFile is the data file path relative to the project root.
var DefaultDataFile = trackerdir.DataPath("")

// Config holds the full configuration for tracker.
type Config struct {
	// Paths
	DataFile string `toml:"data_file"`

	// Logging configuration
	LogLevel      string `toml:"log_level"`
	LogFormat     string `toml:"log_format"`
	LogTimestamps bool   `toml:"log_timestamps"`

	// Project root (computed)
	ProjectRoot string `toml:"-"`

	// Sources records where each key's value came from.
	Sources map[string]Source `toml:"-"`

	// Files lists the config files that were applied, in order.
	Files []string `toml:"-"`
}

// Keys lists the configurable keys in display order.
func Keys() []string {
	return []string{"data_file", "log_level", "log_format", "log_timestamps"}
}

// Value returns the display value of a config key.
func (c *Config) Value(key string) string {
	switch key {
	case "data_file":
		return c.DataFile
	case "log_level":
		return c.LogLevel
	case "log_format":
		return c.LogFormat
	case "log_timestamps":
		if c.LogTimestamps {
			return "true"
		}
		return "false"
	}
	return ""
}

func setDefaults(cfg *Config) {
	cfg.DataFile = DefaultDataFile
	cfg.LogLevel = DefaultLogLevel
	cfg.LogFormat = DefaultLogFormat
	cfg.LogTimestamps = false
	cfg.Sources = make(map[string]Source)
	for _, key := range Keys() {
		cfg.Sources[key] = SourceDefault
	}
}
