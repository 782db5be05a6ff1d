package config

import "os"

// loadFromEnv overrides config from environment variables.
func loadFromEnv(cfg *Config) {
	if v := os.Getenv("TRACKER_DATA"); v != "" {
		cfg.DataFile = v
		cfg.Sources["data_file"] = SourceEnv
	}
	if v := os.Getenv("TRACKER_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
		cfg.Sources["log_level"] = SourceEnv
	}
	if v := os.Getenv("TRACKER_LOG_FORMAT"); v != "" {
		cfg.LogFormat = v
		cfg.Sources["log_format"] = SourceEnv
	}
	if v := os.Getenv("TRACKER_LOG_TIMESTAMPS"); v != "" {
		cfg.LogTimestamps = boolFromString(v)
		cfg.Sources["log_timestamps"] = SourceEnv
	}
}

func boolFromString(s string) bool {
	switch s {
	case "1", "true", "TRUE", "True", "yes", "YES", "Yes", "on", "ON":
		return true
	}
	return false
}
