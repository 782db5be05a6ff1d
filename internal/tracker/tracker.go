// Package tracker implements the tracker commands on top of the store.
//
// Every mutating method runs one full cycle: load the dataset, check that
// referenced records exist, mutate, and save. A method that returns a
// NotFoundError or DuplicateError has not saved anything.
package tracker

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/nibzard/tracker-go/internal/model"
	"github.com/nibzard/tracker-go/internal/store"
)

// Service runs tracker commands against a store.
type Service struct {
	store  *store.Store
	logger *log.Logger
	now    func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the logger for warnings about lenient inputs.
func WithLogger(logger *log.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithClock sets the clock used for overdue checks.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// New returns a service backed by st.
func New(st *store.Store, opts ...Option) *Service {
	s := &Service{
		store:  st,
		logger: log.New(io.Discard),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Store returns the underlying store.
func (s *Service) Store() *store.Store {
	return s.store
}

// AddUser creates a user. Names must be unique.
func (s *Service) AddUser(name, email string) (*model.User, error) {
	d := s.store.Load()
	if d.FindUser(name) != nil {
		return nil, &DuplicateError{Entity: "User", Key: name}
	}
	u := d.NewUser(name, email)
	if err := s.store.Save(d); err != nil {
		return nil, err
	}
	s.logger.Info("added user", "id", u.ID, "name", u.Name)
	return u, nil
}

// AddProject creates a project owned by the named user. Titles must be
// unique. A due date that is not YYYY-MM-DD is stored as given.
func (s *Service) AddProject(userName, title, description, dueDate string) (*model.Project, error) {
	d := s.store.Load()
	owner := d.FindUser(userName)
	if owner == nil {
		return nil, &NotFoundError{Entity: "User", Key: userName}
	}
	if d.FindProject(title) != nil {
		return nil, &DuplicateError{Entity: "Project", Key: title}
	}
	if dueDate != "" {
		if _, err := time.Parse(model.DateLayout, dueDate); err != nil {
			s.logger.Warn("due date is not YYYY-MM-DD, it will never be overdue", "due_date", dueDate)
		}
	}
	p := d.NewProject(title, description, dueDate, owner.ID)
	if err := s.store.Save(d); err != nil {
		return nil, err
	}
	s.logger.Info("added project", "id", p.ID, "title", p.Title, "owner", owner.Name)
	return p, nil
}

// AddTask creates an open task in the named project. An unknown assignee
// leaves the task unassigned.
func (s *Service) AddTask(projectTitle, title, assignee string) (*model.Task, error) {
	d := s.store.Load()
	p := d.FindProject(projectTitle)
	if p == nil {
		return nil, &NotFoundError{Entity: "Project", Key: projectTitle}
	}
	var assignedTo int
	if assignee != "" {
		if u := d.FindUser(assignee); u != nil {
			assignedTo = u.ID
		} else {
			s.logger.Warn("assignee not found, task left unassigned", "user", assignee)
		}
	}
	t := d.NewTask(title, p.ID, assignedTo)
	if err := s.store.Save(d); err != nil {
		return nil, err
	}
	s.logger.Info("added task", "id", t.ID, "title", t.Title, "project", p.Title)
	return t, nil
}

// CompleteTask marks the task with the given id or title as done.
func (s *Service) CompleteTask(ref string) (*model.Task, error) {
	return s.updateTask(ref, (*model.Task).MarkDone)
}

// StartTask marks the task with the given id or title as in progress.
func (s *Service) StartTask(ref string) (*model.Task, error) {
	return s.updateTask(ref, (*model.Task).MarkInProgress)
}

// CancelTask marks the task with the given id or title as cancelled.
func (s *Service) CancelTask(ref string) (*model.Task, error) {
	return s.updateTask(ref, (*model.Task).MarkCancelled)
}

func (s *Service) updateTask(ref string, update func(*model.Task)) (*model.Task, error) {
	d := s.store.Load()
	t := d.FindTask(ref)
	if t == nil {
		return nil, &NotFoundError{Entity: "Task", Key: ref}
	}
	prev := t.Status
	update(t)
	if err := s.store.Save(d); err != nil {
		return nil, err
	}
	s.logger.Info("updated task", "id", t.ID, "from", prev, "to", t.Status)
	return t, nil
}
