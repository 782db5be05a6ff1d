package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/nibzard/tracker-go/internal/config"
	"github.com/nibzard/tracker-go/internal/logging"
	"github.com/nibzard/tracker-go/internal/model"
	"github.com/nibzard/tracker-go/internal/render"
	"github.com/nibzard/tracker-go/internal/store"
	"github.com/nibzard/tracker-go/internal/tracker"
	"github.com/nibzard/tracker-go/internal/trackerdir"
	"github.com/nibzard/tracker-go/internal/ui"
)

func addUserCommand(_ context.Context, e *env, args []string) error {
	fs := newFlagSet(e, "add-user")
	name := fs.String("name", "", "User name")
	email := fs.String("email", "", "Email address")
	if err := parseArgs(fs, args, "name"); err != nil {
		return err
	}

	u, err := e.svc.AddUser(*name, *email)
	if err != nil {
		return report(e.stdout, err)
	}
	fmt.Fprintf(e.stdout, "Added user: %s\n", u)
	return nil
}

func listUsersCommand(_ context.Context, e *env, args []string) error {
	fs := newFlagSet(e, "list-users")
	if err := parseArgs(fs, args); err != nil {
		return err
	}
	return render.Users(e.stdout, e.svc.Users())
}

func addProjectCommand(_ context.Context, e *env, args []string) error {
	fs := newFlagSet(e, "add-project")
	user := fs.String("user", "", "Owner user name")
	title := fs.String("title", "", "Project title")
	description := fs.String("description", "", "Project description")
	dueDate := fs.String("due-date", "", "Due date (YYYY-MM-DD)")
	if err := parseArgs(fs, args, "user", "title"); err != nil {
		return err
	}

	p, err := e.svc.AddProject(*user, *title, *description, *dueDate)
	if err != nil {
		return report(e.stdout, err)
	}
	fmt.Fprintf(e.stdout, "Added project: %s\n", p)
	return nil
}

func listProjectsCommand(_ context.Context, e *env, args []string) error {
	fs := newFlagSet(e, "list-projects")
	if err := parseArgs(fs, args); err != nil {
		return err
	}
	return render.Projects(e.stdout, e.svc.Projects())
}

func addTaskCommand(_ context.Context, e *env, args []string) error {
	fs := newFlagSet(e, "add-task")
	project := fs.String("project", "", "Project title")
	title := fs.String("title", "", "Task title")
	assignedTo := fs.String("assigned-to", "", "Assignee user name")
	if err := parseArgs(fs, args, "project", "title"); err != nil {
		return err
	}

	t, err := e.svc.AddTask(*project, *title, *assignedTo)
	if err != nil {
		return report(e.stdout, err)
	}
	fmt.Fprintf(e.stdout, "Added task: %s\n", t)
	return nil
}

func listTasksCommand(_ context.Context, e *env, args []string) error {
	fs := newFlagSet(e, "list-tasks")
	status := fs.String("status", "", "Only show tasks with this status")
	if err := parseArgs(fs, args); err != nil {
		return err
	}

	var filter tracker.TaskFilter
	if *status != "" {
		s, ok := model.ParseStatus(*status)
		if !ok {
			return fmt.Errorf("list-tasks: invalid status %q (open|in_progress|done|cancelled)", *status)
		}
		filter.Status = s
	}
	return render.Tasks(e.stdout, e.svc.Tasks(filter))
}

func completeTaskCommand(_ context.Context, e *env, args []string) error {
	return taskStatusCommand(e, "complete-task", "Marked task complete", e.svc.CompleteTask, args)
}

func startTaskCommand(_ context.Context, e *env, args []string) error {
	return taskStatusCommand(e, "start-task", "Marked task in progress", e.svc.StartTask, args)
}

func cancelTaskCommand(_ context.Context, e *env, args []string) error {
	return taskStatusCommand(e, "cancel-task", "Marked task cancelled", e.svc.CancelTask, args)
}

func taskStatusCommand(e *env, name, verb string, update func(string) (*model.Task, error), args []string) error {
	fs := newFlagSet(e, name)
	ref := fs.String("task-id", "", "Task id or title")
	if err := parseArgs(fs, args, "task-id"); err != nil {
		return err
	}

	t, err := update(*ref)
	if err != nil {
		return report(e.stdout, err)
	}
	fmt.Fprintf(e.stdout, "%s: %s\n", verb, t)
	return nil
}

func exportCommand(_ context.Context, e *env, args []string) error {
	fs := newFlagSet(e, "export")
	format := fs.String("format", render.FormatJSON, "Output format (json|yaml|toml)")
	if err := parseArgs(fs, args); err != nil {
		return err
	}
	return render.Export(e.stdout, e.svc.Dataset(), *format)
}

func validateCommand(_ context.Context, e *env, args []string) error {
	fs := newFlagSet(e, "validate")
	if err := parseArgs(fs, args); err != nil {
		return err
	}

	r := e.svc.Store().Validate()
	switch {
	case r.Missing:
		fmt.Fprintf(e.stdout, "%s does not exist (reads as empty)\n", r.Path)
		return nil
	case r.Err != nil:
		return fmt.Errorf("%s is invalid: %w", r.Path, r.Err)
	case !r.Valid():
		for _, p := range r.Problems {
			fmt.Fprintf(e.stdout, "error: %s\n", p)
		}
		return fmt.Errorf("%s is invalid (%d error(s))", r.Path, len(r.Problems))
	}
	fmt.Fprintf(e.stdout, "%s is valid: %d users, %d projects, %d tasks\n", r.Path, r.Users, r.Projects, r.Tasks)
	return nil
}

// initCommand creates the .tracker directory with an empty data file and an
// example config.
func initCommand(_ context.Context, e *env, args []string) error {
	fs := newFlagSet(e, "init")
	force := fs.Bool("force", false, "Overwrite existing files")
	if err := parseArgs(fs, args); err != nil {
		return err
	}

	dir := trackerdir.DirPath(e.cfg.ProjectRoot)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}

	st := e.svc.Store()
	if _, err := os.Stat(st.Path()); err == nil && !*force {
		fmt.Fprintf(e.stdout, "Data file exists: %s\n", st.Path())
	} else {
		if err := st.Save(store.NewDataset()); err != nil {
			return err
		}
		fmt.Fprintf(e.stdout, "Created data file: %s\n", st.Path())
	}

	configPath := trackerdir.ConfigPath(e.cfg.ProjectRoot)
	if _, err := os.Stat(configPath); err == nil && !*force {
		fmt.Fprintf(e.stdout, "Config file exists: %s\n", configPath)
		return nil
	} else if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("stat %s: %w", configPath, err)
	}
	if err := os.WriteFile(configPath, []byte(config.ExampleConfig()), 0644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	fmt.Fprintf(e.stdout, "Created config file: %s\n", configPath)
	return nil
}

func configCommand(_ context.Context, e *env, args []string) error {
	fs := newFlagSet(e, "config")
	if err := parseArgs(fs, args); err != nil {
		return err
	}

	for _, key := range config.Keys() {
		fmt.Fprintf(e.stdout, "%-15s = %-40s (%s)\n", key, e.cfg.Value(key), e.cfg.Sources[key])
	}
	if len(e.cfg.Files) == 0 {
		fmt.Fprintln(e.stdout, "\nNo config files found.")
		return nil
	}
	fmt.Fprintln(e.stdout, "\nConfig files:")
	for _, f := range e.cfg.Files {
		fmt.Fprintf(e.stdout, "  %s\n", f)
	}
	return nil
}

func tuiCommand(ctx context.Context, e *env, args []string) error {
	fs := newFlagSet(e, "tui")
	refresh := fs.Int("refresh", 2, "Reload interval in seconds")
	if err := parseArgs(fs, args); err != nil {
		return err
	}
	return ui.RunTUI(ctx, tuiService(e), ui.WithRefresh(time.Duration(*refresh)*time.Second))
}

// tuiService reads the same data file without logging: stderr writes would
// corrupt the alt-screen on every reload.
func tuiService(e *env) *tracker.Service {
	return tracker.New(store.New(e.svc.Store().Path(), store.WithLogger(logging.Discard())))
}
