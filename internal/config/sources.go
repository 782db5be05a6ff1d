package config

import (
	"os"
	"path/filepath"

	"github.com/nibzard/tracker-go/internal/trackerdir"
)

// findProjectConfigFile looks for a config file in the current directory.
func findProjectConfigFile() string {
	names := []string{"tracker.toml", ".tracker.toml", trackerdir.ConfigPath("")}
	for _, name := range names {
		if _, err := os.Stat(name); err == nil {
			return name
		}
	}
	return ""
}

// findUserConfigFile looks for a user-level config file.
// Checks ~/.tracker/tracker.toml first, then falls back to the OS-specific
// config directory.
func findUserConfigFile() string {
	if home, err := os.UserHomeDir(); err == nil {
		userConfigPath := trackerdir.ConfigPath(home)
		if _, err := os.Stat(userConfigPath); err == nil {
			return userConfigPath
		}
	}

	if cfgDir, err := os.UserConfigDir(); err == nil && cfgDir != "" {
		userConfigPath := filepath.Join(cfgDir, "tracker", trackerdir.DefaultConfigFile)
		if _, err := os.Stat(userConfigPath); err == nil {
			return userConfigPath
		}
	}

	return ""
}
