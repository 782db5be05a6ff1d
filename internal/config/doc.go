// Package config handles configuration loading and defaults.
//
// Configuration is loaded from multiple sources in priority order:
// 1. Built-in defaults
// 2. User config file (~/.tracker/tracker.toml or OS-specific config directory)
// 3. Project config file (tracker.toml, .tracker.toml, or .tracker/tracker.toml in the project root)
// 4. Environment variables (TRACKER_*)
// 5. CLI flags
//
// Each level overrides the previous one, so CLI flags take precedence.
//
// User-level config locations:
// - ~/.tracker/tracker.toml (preferred)
// - Windows: %APPDATA%\tracker\tracker.toml
// - macOS: ~/Library/Application Support/tracker/tracker.toml
// - Linux/BSD: $XDG_CONFIG_HOME/tracker/tracker.toml or ~/.config/tracker/tracker.toml
package config
