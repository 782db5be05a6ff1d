// Package config tests configuration loading.
package config

import (
	"flag"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

// isolate points HOME and the config dirs at temp dirs, clears TRACKER_*
// variables, and changes into a fresh project directory.
func isolate(t *testing.T) (home, project string) {
	t.Helper()
	home = t.TempDir()
	project = t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
	t.Setenv("APPDATA", filepath.Join(home, "AppData"))
	for _, key := range []string{"TRACKER_DATA", "TRACKER_LOG_LEVEL", "TRACKER_LOG_FORMAT", "TRACKER_LOG_TIMESTAMPS"} {
		t.Setenv(key, "")
	}
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd failed: %v", err)
	}
	if err := os.Chdir(project); err != nil {
		t.Fatalf("Chdir failed: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })
	return home, project
}

func writeConfig(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("MkdirAll failed: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
}

func TestDefaults(t *testing.T) {
	isolate(t)
	wd, _ := os.Getwd()

	cfg, err := Load(flag.NewFlagSet("test", flag.ContinueOnError), nil)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if want := filepath.Join(wd, ".tracker", "data.json"); cfg.DataFile != want {
		t.Errorf("DataFile: got %q, want %q", cfg.DataFile, want)
	}
	if cfg.LogLevel != DefaultLogLevel {
		t.Errorf("LogLevel: got %q, want %q", cfg.LogLevel, DefaultLogLevel)
	}
	if cfg.LogFormat != DefaultLogFormat {
		t.Errorf("LogFormat: got %q, want %q", cfg.LogFormat, DefaultLogFormat)
	}
	if cfg.ProjectRoot != wd {
		t.Errorf("ProjectRoot: got %q, want %q", cfg.ProjectRoot, wd)
	}
	for _, key := range Keys() {
		if cfg.Sources[key] != SourceDefault {
			t.Errorf("source of %s: got %q, want default", key, cfg.Sources[key])
		}
	}
	if len(cfg.Files) != 0 {
		t.Errorf("Files: got %v, want none", cfg.Files)
	}
}

func TestLayering(t *testing.T) {
	home, _ := isolate(t)
	wd, _ := os.Getwd()

	writeConfig(t, filepath.Join(home, ".tracker", "tracker.toml"), `
data_file = "user.json"
log_level = "info"
log_timestamps = true
`)
	writeConfig(t, "tracker.toml", `data_file = "project.json"`)
	t.Setenv("TRACKER_LOG_FORMAT", "json")

	cfg, err := Load(flag.NewFlagSet("test", flag.ContinueOnError), []string{"--log-level", "debug"})
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if want := filepath.Join(wd, "project.json"); cfg.DataFile != want {
		t.Errorf("DataFile: got %q, want %q", cfg.DataFile, want)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel: got %q, want debug", cfg.LogLevel)
	}
	if cfg.LogFormat != "json" {
		t.Errorf("LogFormat: got %q, want json", cfg.LogFormat)
	}
	if !cfg.LogTimestamps {
		t.Error("LogTimestamps: got false, want true")
	}

	wantSources := map[string]Source{
		"data_file":      SourceProjFile,
		"log_level":      SourceFlag,
		"log_format":     SourceEnv,
		"log_timestamps": SourceUserFile,
	}
	if !reflect.DeepEqual(cfg.Sources, wantSources) {
		t.Errorf("Sources: got %v, want %v", cfg.Sources, wantSources)
	}
	if len(cfg.Files) != 2 {
		t.Errorf("Files: got %v, want two entries", cfg.Files)
	}
}

func TestProjectConfigInTrackerDir(t *testing.T) {
	isolate(t)
	writeConfig(t, filepath.Join(".tracker", "tracker.toml"), `log_format = "logfmt"`)

	cfg, err := Load(flag.NewFlagSet("test", flag.ContinueOnError), nil)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.LogFormat != "logfmt" {
		t.Errorf("LogFormat: got %q, want logfmt", cfg.LogFormat)
	}
}

func TestRemainingArgs(t *testing.T) {
	isolate(t)
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	cfg, err := Load(fs, []string{"--data", "/tmp/x.json", "add-user", "--name", "Alice"})
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.DataFile != "/tmp/x.json" {
		t.Errorf("DataFile: got %q, want /tmp/x.json", cfg.DataFile)
	}
	if got, want := fs.Args(), []string{"add-user", "--name", "Alice"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Args: got %v, want %v", got, want)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		env     string
		wantErr string
	}{
		{name: "unknown key", file: `colour = "red"`, wantErr: "unknown config key"},
		{name: "bad toml", file: `data_file = `, wantErr: "loading project config file"},
		{name: "bad level", env: "chatty", wantErr: "invalid log level"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			if tt.file != "" {
				writeConfig(t, "tracker.toml", tt.file)
			}
			if tt.env != "" {
				t.Setenv("TRACKER_LOG_LEVEL", tt.env)
			}
			_, err := Load(flag.NewFlagSet("test", flag.ContinueOnError), nil)
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestExpandPath(t *testing.T) {
	home, _ := isolate(t)
	t.Setenv("TRACKER_TEST_DIR", "/srv/data")

	tests := map[string]string{
		"":                         "",
		"~":                        home,
		"~/tracker/data.json":      filepath.Join(home, "tracker", "data.json"),
		"$TRACKER_TEST_DIR/d.json": "/srv/data/d.json",
		"relative/d.json":          "relative/d.json",
	}
	for in, want := range tests {
		if got := expandPath(in); got != want {
			t.Errorf("expandPath(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestResolveDataPath(t *testing.T) {
	home, _ := isolate(t)
	root := filepath.Join(string(filepath.Separator), "work")

	tests := []struct {
		in   string
		want string
	}{
		{"", filepath.Join(root, DefaultDataFile)},
		{"data.json", filepath.Join(root, "data.json")},
		{"~/data.json", filepath.Join(home, "data.json")},
		{"/abs/../abs/data.json", "/abs/data.json"},
	}
	for _, tt := range tests {
		if got := resolveDataPath(root, tt.in); got != tt.want {
			t.Errorf("resolveDataPath(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestExampleConfigDecodes(t *testing.T) {
	isolate(t)
	writeConfig(t, "tracker.toml", ExampleConfig())
	cfg, err := Load(flag.NewFlagSet("test", flag.ContinueOnError), nil)
	if err != nil {
		t.Fatalf("example config should load: %v", err)
	}
	if cfg.Sources["log_level"] != SourceProjFile {
		t.Errorf("source of log_level: got %q, want project file", cfg.Sources["log_level"])
	}
}

func TestValue(t *testing.T) {
	cfg := &Config{DataFile: "d.json", LogLevel: "info", LogFormat: "text", LogTimestamps: true}
	want := []string{"d.json", "info", "text", "true"}
	for i, key := range Keys() {
		if got := cfg.Value(key); got != want[i] {
			t.Errorf("Value(%s) = %q, want %q", key, got, want[i])
		}
	}
}
