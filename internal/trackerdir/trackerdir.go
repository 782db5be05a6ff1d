// Package trackerdir provides constants and utilities for the .tracker directory structure.
package trackerdir

import "path/filepath"

const (
	// Dir is the name of the tracker state directory.
	Dir = ".tracker"

	// DefaultDataFile is the default data file name (inside .tracker).
	DefaultDataFile = "data.json"

	// DefaultConfigFile is the default config file name (inside .tracker).
	DefaultConfigFile = "tracker.toml"
)

// DataPath returns the full path to the data file within a work directory.
func DataPath(workDir string) string {
	return joinPath(workDir, DefaultDataFile)
}

// ConfigPath returns the full path to the config file within a work directory.
func ConfigPath(workDir string) string {
	return joinPath(workDir, DefaultConfigFile)
}

// DirPath returns the full path to the .tracker directory within a work directory.
func DirPath(workDir string) string {
	if workDir == "." || workDir == "" {
		return Dir
	}
	return filepath.Join(workDir, Dir)
}

func joinPath(workDir, file string) string {
	return filepath.Join(DirPath(workDir), file)
}
