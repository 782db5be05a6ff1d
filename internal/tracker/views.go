package tracker

import (
	"time"

	"github.com/nibzard/tracker-go/internal/model"
	"github.com/nibzard/tracker-go/internal/store"
)

// UnknownRef is shown in place of a dangling project or owner reference.
const UnknownRef = "(unknown)"

// UserRow is one line of the user listing.
type UserRow struct {
	ID       int
	Name     string
	Email    string
	Projects int
}

// ProjectRow is one line of the project listing.
type ProjectRow struct {
	ID      int
	Title   string
	Owner   string
	DueDate string
	Tasks   int
	Overdue bool
}

// TaskRow is one line of the task listing.
type TaskRow struct {
	ID       int
	Title    string
	Project  string
	Status   model.Status
	Assignee string
}

// TaskFilter narrows the task listing. The zero value matches every task.
type TaskFilter struct {
	Status model.Status
}

func (f TaskFilter) match(t *model.Task) bool {
	return f.Status == "" || t.Status == f.Status
}

// Users lists users in stored order.
func (s *Service) Users() []UserRow {
	return UserRows(s.store.Load())
}

// Projects lists projects in stored order.
func (s *Service) Projects() []ProjectRow {
	return ProjectRows(s.store.Load(), s.now())
}

// Tasks lists tasks in stored order, narrowed by filter.
func (s *Service) Tasks(filter TaskFilter) []TaskRow {
	return TaskRows(s.store.Load(), filter)
}

// UserRows builds the user listing for d.
func UserRows(d *store.Dataset) []UserRow {
	rows := make([]UserRow, 0, len(d.Users))
	for _, u := range d.Users {
		rows = append(rows, UserRow{
			ID:       u.ID,
			Name:     u.Name,
			Email:    u.Email,
			Projects: u.ProjectCount(),
		})
	}
	return rows
}

// ProjectRows builds the project listing for d, judging overdue against now.
func ProjectRows(d *store.Dataset, now time.Time) []ProjectRow {
	rows := make([]ProjectRow, 0, len(d.Projects))
	for _, p := range d.Projects {
		owner := UnknownRef
		if u := d.UserByID(p.OwnerID); u != nil {
			owner = u.Name
		}
		rows = append(rows, ProjectRow{
			ID:      p.ID,
			Title:   p.Title,
			Owner:   owner,
			DueDate: p.DueDate,
			Tasks:   p.TaskCount(),
			Overdue: p.IsOverdue(now),
		})
	}
	return rows
}

// TaskRows builds the task listing for d.
func TaskRows(d *store.Dataset, filter TaskFilter) []TaskRow {
	rows := make([]TaskRow, 0, len(d.Tasks))
	for _, t := range d.Tasks {
		if !filter.match(t) {
			continue
		}
		project := UnknownRef
		if p := d.ProjectByID(t.ProjectID); p != nil {
			project = p.Title
		}
		var assignee string
		if t.IsAssigned() {
			assignee = UnknownRef
			if u := d.UserByID(t.AssignedTo); u != nil {
				assignee = u.Name
			}
		}
		rows = append(rows, TaskRow{
			ID:       t.ID,
			Title:    t.Title,
			Project:  project,
			Status:   t.Status,
			Assignee: assignee,
		})
	}
	return rows
}

// Dataset loads the current dataset for export or browsing.
func (s *Service) Dataset() *store.Dataset {
	return s.store.Load()
}
