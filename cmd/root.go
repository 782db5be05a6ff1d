// Package cmd implements the CLI command structure for tracker.
package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/nibzard/tracker-go/internal/config"
	"github.com/nibzard/tracker-go/internal/logging"
	"github.com/nibzard/tracker-go/internal/store"
	"github.com/nibzard/tracker-go/internal/tracker"
)

// Version is set via ldflags at build time.
var Version = "dev"

// env carries what every subcommand needs.
type env struct {
	cfg    *config.Config
	svc    *tracker.Service
	logger *log.Logger
	stdout io.Writer
	stderr io.Writer
}

type command struct {
	name  string
	usage string
	run   func(ctx context.Context, e *env, args []string) error
}

var commands = []command{
	{"add-user", "add-user --name <str> [--email <str>]", addUserCommand},
	{"list-users", "list-users", listUsersCommand},
	{"add-project", "add-project --user <str> --title <str> [--description <str>] [--due-date <YYYY-MM-DD>]", addProjectCommand},
	{"list-projects", "list-projects", listProjectsCommand},
	{"add-task", "add-task --project <str> --title <str> [--assigned-to <str>]", addTaskCommand},
	{"list-tasks", "list-tasks [--status <open|in_progress|done|cancelled>]", listTasksCommand},
	{"complete-task", "complete-task --task-id <id-or-title>", completeTaskCommand},
	{"start-task", "start-task --task-id <id-or-title>", startTaskCommand},
	{"cancel-task", "cancel-task --task-id <id-or-title>", cancelTaskCommand},
	{"export", "export [--format json|yaml|toml]", exportCommand},
	{"validate", "validate", validateCommand},
	{"init", "init [--force]", initCommand},
	{"config", "config", configCommand},
	{"tui", "tui [--refresh <seconds>]", tuiCommand},
	{"version", "version", func(_ context.Context, e *env, _ []string) error {
		return versionCommand(e.stdout)
	}},
}

// Run executes the tracker CLI.
func Run(ctx context.Context, args []string) error {
	return run(ctx, args, os.Stdout, os.Stderr)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	// Create a flag set for global options
	fs := flag.NewFlagSet("tracker", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		printUsage(fs, stderr)
	}
	help := fs.Bool("help", false, "Show help")
	fs.BoolVar(help, "h", false, "Show help")
	showVersion := fs.Bool("version", false, "Show version")
	fs.BoolVar(showVersion, "v", false, "Show version")

	// Global flags
	cfg, err := config.Load(fs, args)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if *help {
		printUsage(fs, stdout)
		return nil
	}
	if *showVersion {
		return versionCommand(stdout)
	}

	remainingArgs := fs.Args()
	if len(remainingArgs) == 0 {
		printUsage(fs, stdout)
		return nil
	}
	subcommand := remainingArgs[0]
	remainingArgs = remainingArgs[1:]

	if subcommand == "help" {
		printUsage(fs, stdout)
		return nil
	}

	for _, c := range commands {
		if c.name != subcommand {
			continue
		}
		logger := logging.FromConfig(stderr, cfg.LogLevel, cfg.LogFormat, cfg.LogTimestamps)
		st := store.New(cfg.DataFile, store.WithLogger(logger))
		e := &env{
			cfg:    cfg,
			svc:    tracker.New(st, tracker.WithLogger(logger)),
			logger: logger,
			stdout: stdout,
			stderr: stderr,
		}
		if err := c.run(ctx, e, remainingArgs); err != nil && !errors.Is(err, flag.ErrHelp) {
			return err
		}
		return nil
	}

	fmt.Fprintf(stderr, "Unknown command: %s\n", subcommand)
	printUsage(fs, stderr)
	return fmt.Errorf("unknown command: %s", subcommand)
}

func printUsage(fs *flag.FlagSet, w io.Writer) {
	fmt.Fprintf(w, "tracker - track users, projects, and tasks\n\n")
	fmt.Fprintf(w, "Usage:\n  tracker [global flags] <command> [flags]\n\n")
	fmt.Fprintf(w, "Commands:\n")
	for _, c := range commands {
		fmt.Fprintf(w, "  %s\n", c.usage)
	}
	fmt.Fprintf(w, "  help\n\nGlobal flags:\n")
	fs.SetOutput(w)
	fs.PrintDefaults()
}

func versionCommand(w io.Writer) error {
	_, err := fmt.Fprintf(w, "tracker %s\n", Version)
	return err
}

// report prints expected outcomes (not found, duplicate) as a message and
// swallows them; anything else is returned.
func report(w io.Writer, err error) error {
	if tracker.IsUserError(err) {
		fmt.Fprintln(w, err)
		return nil
	}
	return err
}

// newFlagSet returns a flag set for a subcommand that reports parse errors
// to e.stderr.
func newFlagSet(e *env, name string) *flag.FlagSet {
	fs := flag.NewFlagSet("tracker "+name, flag.ContinueOnError)
	fs.SetOutput(e.stderr)
	return fs
}

// parseArgs parses args and rejects positional leftovers and missing
// required flags.
func parseArgs(fs *flag.FlagSet, args []string, required ...string) error {
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("%s: unexpected arguments: %v", fs.Name(), fs.Args())
	}
	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) {
		set[f.Name] = true
	})
	var missing []string
	for _, name := range required {
		if !set[name] {
			missing = append(missing, "--"+name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%s: missing required flag(s): %s", fs.Name(), strings.Join(missing, ", "))
	}
	return nil
}
