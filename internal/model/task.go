package model

import "fmt"

// Status represents a task status.
type Status string

const (
	StatusOpen       Status = "open"
	StatusInProgress Status = "in_progress"
	StatusDone       Status = "done"
	StatusCancelled  Status = "cancelled"
)

// Statuses lists every valid status in display order.
var Statuses = []Status{StatusOpen, StatusInProgress, StatusDone, StatusCancelled}

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusOpen, StatusInProgress, StatusDone, StatusCancelled:
		return true
	}
	return false
}

// ParseStatus returns the status named by s. Unknown values yield
// StatusOpen and ok == false.
func ParseStatus(s string) (status Status, ok bool) {
	if Status(s).Valid() {
		return Status(s), true
	}
	return StatusOpen, false
}

// Task is a unit of work inside a project.
type Task struct {
	ID         int
	Title      string
	Status     Status
	AssignedTo int
	ProjectID  int
}

// NewTask creates an open task with the next id from seq.
func NewTask(seq *Sequence, title string, projectID, assignedTo int) *Task {
	return &Task{
		ID:         seq.Next(),
		Title:      title,
		Status:     StatusOpen,
		AssignedTo: assignedTo,
		ProjectID:  projectID,
	}
}

// TaskFromMap builds a task from its mapping form. An unknown status falls
// back to open; use InvalidStatus to detect that case.
func TaskFromMap(m map[string]any, seq *Sequence) *Task {
	status, _ := ParseStatus(stringValue(m["status"]))
	return &Task{
		ID:         assignID(m, seq),
		Title:      stringValue(m["title"]),
		Status:     status,
		AssignedTo: refValue(m["assigned_to"]),
		ProjectID:  refValue(m["project_id"]),
	}
}

// InvalidStatus reports the raw status of a task mapping when it is present
// but not a known status.
func InvalidStatus(m map[string]any) (raw any, invalid bool) {
	raw, ok := m["status"]
	if !ok || raw == nil {
		return nil, false
	}
	s, isString := raw.(string)
	if isString && Status(s).Valid() {
		return nil, false
	}
	return raw, true
}

// ToMap returns the mapping form of the task.
func (t *Task) ToMap() map[string]any {
	return map[string]any{
		"id":          t.ID,
		"title":       t.Title,
		"status":      string(t.Status),
		"assigned_to": optionalRef(t.AssignedTo),
		"project_id":  optionalRef(t.ProjectID),
	}
}

// MarkInProgress sets the status to in_progress.
func (t *Task) MarkInProgress() {
	t.Status = StatusInProgress
}

// MarkDone sets the status to done.
func (t *Task) MarkDone() {
	t.Status = StatusDone
}

// MarkCancelled sets the status to cancelled.
func (t *Task) MarkCancelled() {
	t.Status = StatusCancelled
}

// IsCompleted reports whether the task is done.
func (t *Task) IsCompleted() bool {
	return t.Status == StatusDone
}

// IsAssigned reports whether the task has an assignee.
func (t *Task) IsAssigned() bool {
	return t.AssignedTo != 0
}

func (t *Task) String() string {
	return fmt.Sprintf("Task(id=%d, title=%q, status=%s)", t.ID, t.Title, t.Status)
}
