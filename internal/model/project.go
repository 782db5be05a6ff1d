package model

import (
	"fmt"
	"time"
)

// DateLayout is the accepted due date format (YYYY-MM-DD).
const DateLayout = "2006-01-02"

// Project groups tasks under an owning user.
type Project struct {
	ID          int
	Title       string
	Description string
	DueDate     string
	OwnerID     int
	TaskIDs     []int
}

// NewProject creates a project with the next id from seq.
func NewProject(seq *Sequence, title, description, dueDate string, ownerID int) *Project {
	return &Project{
		ID:          seq.Next(),
		Title:       title,
		Description: description,
		DueDate:     dueDate,
		OwnerID:     ownerID,
		TaskIDs:     []int{},
	}
}

// ProjectFromMap builds a project from its mapping form.
func ProjectFromMap(m map[string]any, seq *Sequence) *Project {
	return &Project{
		ID:          assignID(m, seq),
		Title:       stringValue(m["title"]),
		Description: stringValue(m["description"]),
		DueDate:     stringValue(m["due_date"]),
		OwnerID:     refValue(m["owner_id"]),
		TaskIDs:     intList(m["task_ids"]),
	}
}

// ToMap returns the mapping form of the project.
func (p *Project) ToMap() map[string]any {
	return map[string]any{
		"id":          p.ID,
		"title":       p.Title,
		"description": p.Description,
		"due_date":    optionalString(p.DueDate),
		"owner_id":    optionalRef(p.OwnerID),
		"task_ids":    cloneIDs(p.TaskIDs),
	}
}

// AddTask records a task id. Adding an id twice is a no-op.
func (p *Project) AddTask(taskID int) {
	if !containsID(p.TaskIDs, taskID) {
		p.TaskIDs = append(p.TaskIDs, taskID)
	}
}

// RemoveTask drops a task id and reports whether it was present.
func (p *Project) RemoveTask(taskID int) bool {
	var removed bool
	p.TaskIDs, removed = removeID(p.TaskIDs, taskID)
	return removed
}

// TaskCount returns the number of tasks in the project.
func (p *Project) TaskCount() int {
	return len(p.TaskIDs)
}

// Due parses the due date. ok is false when it is absent or malformed.
func (p *Project) Due(loc *time.Location) (due time.Time, ok bool) {
	if p.DueDate == "" {
		return time.Time{}, false
	}
	if loc == nil {
		loc = time.Local
	}
	due, err := time.ParseInLocation(DateLayout, p.DueDate, loc)
	if err != nil {
		return time.Time{}, false
	}
	return due, true
}

// IsOverdue reports whether the due date lies strictly before now.
// Projects without a parseable due date are never overdue.
func (p *Project) IsOverdue(now time.Time) bool {
	due, ok := p.Due(now.Location())
	if !ok {
		return false
	}
	return due.Before(now)
}

// Overdue is IsOverdue evaluated against the wall clock.
func (p *Project) Overdue() bool {
	return p.IsOverdue(time.Now())
}

func (p *Project) String() string {
	return fmt.Sprintf("Project(id=%d, title=%q)", p.ID, p.Title)
}
