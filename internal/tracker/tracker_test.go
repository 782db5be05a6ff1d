package tracker

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/nibzard/tracker-go/internal/model"
	"github.com/nibzard/tracker-go/internal/store"
)

func newService(t *testing.T) (*Service, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), ".tracker", "data.json")
	clock := func() time.Time { return time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC) }
	return New(store.New(path), WithClock(clock)), path
}

func TestEndToEnd(t *testing.T) {
	svc, path := newService(t)

	alice, err := svc.AddUser("Alice", "alice@example.com")
	if err != nil {
		t.Fatalf("AddUser failed: %v", err)
	}
	if _, err := svc.AddProject("Alice", "Launch", "", "2030-01-01"); err != nil {
		t.Fatalf("AddProject failed: %v", err)
	}
	task, err := svc.AddTask("Launch", "Design", "Alice")
	if err != nil {
		t.Fatalf("AddTask failed: %v", err)
	}
	if task.AssignedTo != alice.ID {
		t.Errorf("AssignedTo: got %d, want %d", task.AssignedTo, alice.ID)
	}
	done, err := svc.CompleteTask("Design")
	if err != nil {
		t.Fatalf("CompleteTask failed: %v", err)
	}
	if !done.IsCompleted() {
		t.Errorf("Status: got %s, want done", done.Status)
	}

	d := store.New(path).Load()
	reloaded := d.FindTask("Design")
	if reloaded == nil || reloaded.Status != model.StatusDone {
		t.Fatalf("reloaded task: got %+v, want done", reloaded)
	}
	if got := d.FindProject("Launch").TaskIDs; !reflect.DeepEqual(got, []int{reloaded.ID}) {
		t.Errorf("Launch.TaskIDs: got %v, want [%d]", got, reloaded.ID)
	}
	if got := d.FindUser("Alice").ProjectIDs; !reflect.DeepEqual(got, []int{1}) {
		t.Errorf("Alice.ProjectIDs: got %v, want [1]", got)
	}
}

func TestAddUserDuplicate(t *testing.T) {
	svc, path := newService(t)
	if _, err := svc.AddUser("Alice", ""); err != nil {
		t.Fatalf("AddUser failed: %v", err)
	}
	before, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}

	_, err = svc.AddUser("Alice", "other@example.com")
	if !errors.Is(err, ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}
	if got, want := err.Error(), "User 'Alice' already exists"; got != want {
		t.Errorf("message: got %q, want %q", got, want)
	}
	if !IsUserError(err) {
		t.Error("duplicate should be a user error")
	}

	after, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if string(before) != string(after) {
		t.Error("data file changed after rejected duplicate")
	}
	if got := len(svc.Users()); got != 1 {
		t.Errorf("users: got %d, want 1", got)
	}
}

func TestNamesAreCaseSensitive(t *testing.T) {
	svc, _ := newService(t)
	if _, err := svc.AddUser("alice", ""); err != nil {
		t.Fatalf("AddUser failed: %v", err)
	}
	if _, err := svc.AddUser("Alice", ""); err != nil {
		t.Errorf("AddUser with different case should succeed, got %v", err)
	}
}

func TestNotFound(t *testing.T) {
	svc, path := newService(t)

	tests := []struct {
		name string
		run  func() error
		want string
	}{
		{
			name: "project for missing user",
			run: func() error {
				_, err := svc.AddProject("Nobody", "P", "", "")
				return err
			},
			want: "User 'Nobody' not found",
		},
		{
			name: "task for missing project",
			run: func() error {
				_, err := svc.AddTask("Nothing", "T", "")
				return err
			},
			want: "Project 'Nothing' not found",
		},
		{
			name: "complete missing task",
			run: func() error {
				_, err := svc.CompleteTask("42")
				return err
			},
			want: "Task '42' not found",
		},
		{
			name: "start missing task",
			run: func() error {
				_, err := svc.StartTask("Ghost")
				return err
			},
			want: "Task 'Ghost' not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.run()
			if !errors.Is(err, ErrNotFound) {
				t.Fatalf("expected ErrNotFound, got %v", err)
			}
			var nf *NotFoundError
			if !errors.As(err, &nf) {
				t.Fatalf("expected *NotFoundError, got %T", err)
			}
			if err.Error() != tt.want {
				t.Errorf("message: got %q, want %q", err.Error(), tt.want)
			}
		})
	}

	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("failed commands should not create the data file, stat err = %v", err)
	}
}

func TestAddProjectDuplicateTitle(t *testing.T) {
	svc, _ := newService(t)
	svc.AddUser("Alice", "")
	svc.AddUser("Bob", "")
	if _, err := svc.AddProject("Alice", "Launch", "", ""); err != nil {
		t.Fatalf("AddProject failed: %v", err)
	}
	_, err := svc.AddProject("Bob", "Launch", "", "")
	if !errors.Is(err, ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}
	if got := len(svc.Projects()); got != 1 {
		t.Errorf("projects: got %d, want 1", got)
	}
}

func TestAddTaskUnknownAssignee(t *testing.T) {
	svc, _ := newService(t)
	svc.AddUser("Alice", "")
	svc.AddProject("Alice", "Launch", "", "")

	task, err := svc.AddTask("Launch", "Design", "Mallory")
	if err != nil {
		t.Fatalf("AddTask failed: %v", err)
	}
	if task.IsAssigned() {
		t.Errorf("task should be unassigned, got AssignedTo=%d", task.AssignedTo)
	}
}

func TestTaskStatusCommands(t *testing.T) {
	svc, _ := newService(t)
	svc.AddUser("Alice", "")
	svc.AddProject("Alice", "Launch", "", "")
	svc.AddTask("Launch", "Design", "")

	steps := []struct {
		run  func(string) (*model.Task, error)
		ref  string
		want model.Status
	}{
		{svc.StartTask, "1", model.StatusInProgress},
		{svc.CancelTask, "Design", model.StatusCancelled},
		{svc.CompleteTask, "1", model.StatusDone},
		{svc.StartTask, "Design", model.StatusInProgress},
	}
	for _, step := range steps {
		if _, err := step.run(step.ref); err != nil {
			t.Fatalf("command on %q failed: %v", step.ref, err)
		}
		rows := svc.Tasks(TaskFilter{})
		if rows[0].Status != step.want {
			t.Errorf("after command on %q: got %s, want %s", step.ref, rows[0].Status, step.want)
		}
	}
}

func TestListings(t *testing.T) {
	svc, path := newService(t)
	svc.AddUser("Alice", "alice@example.com")
	svc.AddUser("Bob", "")
	svc.AddProject("Alice", "Old", "", "2020-01-01")
	svc.AddProject("Bob", "New", "", "2030-01-01")
	svc.AddTask("Old", "a", "Bob")
	svc.AddTask("Old", "b", "")
	svc.AddTask("New", "c", "Alice")
	svc.CompleteTask("b")

	users := svc.Users()
	wantUsers := []UserRow{
		{ID: 1, Name: "Alice", Email: "alice@example.com", Projects: 1},
		{ID: 2, Name: "Bob", Projects: 1},
	}
	if !reflect.DeepEqual(users, wantUsers) {
		t.Errorf("Users: got %+v, want %+v", users, wantUsers)
	}

	projects := svc.Projects()
	wantProjects := []ProjectRow{
		{ID: 1, Title: "Old", Owner: "Alice", DueDate: "2020-01-01", Tasks: 2, Overdue: true},
		{ID: 2, Title: "New", Owner: "Bob", DueDate: "2030-01-01", Tasks: 1},
	}
	if !reflect.DeepEqual(projects, wantProjects) {
		t.Errorf("Projects: got %+v, want %+v", projects, wantProjects)
	}

	done := svc.Tasks(TaskFilter{Status: model.StatusDone})
	if len(done) != 1 || done[0].Title != "b" || done[0].Project != "Old" || done[0].Assignee != "" {
		t.Errorf("done tasks: got %+v", done)
	}
	if got := len(svc.Tasks(TaskFilter{})); got != 3 {
		t.Errorf("all tasks: got %d, want 3", got)
	}

	// Dangling references render as unknown.
	os.WriteFile(path, []byte(`{
  "users": [],
  "projects": [{"id": 1, "title": "Orphan", "owner_id": 9}],
  "tasks": [{"id": 1, "title": "lost", "project_id": 5, "assigned_to": 9}]
}`), 0644)
	if got := svc.Projects()[0].Owner; got != UnknownRef {
		t.Errorf("dangling owner: got %q, want %q", got, UnknownRef)
	}
	row := svc.Tasks(TaskFilter{})[0]
	if row.Project != UnknownRef || row.Assignee != UnknownRef {
		t.Errorf("dangling task refs: got %+v", row)
	}
}
