package config

// ExampleConfig returns an example configuration showing all available options.
func ExampleConfig() string {
	return `# tracker configuration file
# Values can be overridden by TRACKER_* environment variables or CLI flags

# Data file (relative to project root; supports ~ and $VAR expansion)
data_file = ".tracker/data.json"

# Log level: debug, info, warn, error
log_level = "warn"

# Log format: text, json, logfmt
log_format = "text"

# Include timestamps in log output
log_timestamps = false
`
}
