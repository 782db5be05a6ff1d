package store

import (
	"sort"
	"strconv"

	"github.com/nibzard/tracker-go/internal/model"
)

// Dataset is the in-memory copy of the persisted document.
type Dataset struct {
	Users    []*model.User
	Projects []*model.Project
	Tasks    []*model.Task

	ids *model.Counters
}

// NewDataset returns an empty dataset with its own id counters.
func NewDataset() *Dataset {
	return newDataset(&model.Counters{})
}

func newDataset(ids *model.Counters) *Dataset {
	return &Dataset{
		Users:    []*model.User{},
		Projects: []*model.Project{},
		Tasks:    []*model.Task{},
		ids:      ids,
	}
}

// Empty reports whether the dataset holds no records.
func (d *Dataset) Empty() bool {
	return len(d.Users) == 0 && len(d.Projects) == 0 && len(d.Tasks) == 0
}

// NewUser creates a user with the next user id and appends it.
func (d *Dataset) NewUser(name, email string) *model.User {
	u := model.NewUser(&d.ids.Users, name, email)
	d.Users = append(d.Users, u)
	return u
}

// NewProject creates a project owned by ownerID and appends it.
func (d *Dataset) NewProject(title, description, dueDate string, ownerID int) *model.Project {
	p := model.NewProject(&d.ids.Projects, title, description, dueDate, ownerID)
	d.Projects = append(d.Projects, p)
	if owner := d.UserByID(ownerID); owner != nil {
		owner.AddProject(p.ID)
	}
	return p
}

// NewTask creates an open task in projectID and appends it.
func (d *Dataset) NewTask(title string, projectID, assignedTo int) *model.Task {
	t := model.NewTask(&d.ids.Tasks, title, projectID, assignedTo)
	d.Tasks = append(d.Tasks, t)
	if p := d.ProjectByID(projectID); p != nil {
		p.AddTask(t.ID)
	}
	return t
}

// FindUser returns the first user whose name equals name, or nil.
func (d *Dataset) FindUser(name string) *model.User {
	for _, u := range d.Users {
		if u.Name == name {
			return u
		}
	}
	return nil
}

// FindProject returns the first project whose title equals title, or nil.
func (d *Dataset) FindProject(title string) *model.Project {
	for _, p := range d.Projects {
		if p.Title == title {
			return p
		}
	}
	return nil
}

// FindTask returns the first task whose id (in decimal) or title equals
// ref, or nil.
func (d *Dataset) FindTask(ref string) *model.Task {
	for _, t := range d.Tasks {
		if strconv.Itoa(t.ID) == ref || t.Title == ref {
			return t
		}
	}
	return nil
}

// UserByID returns the user with the given id, or nil.
func (d *Dataset) UserByID(id int) *model.User {
	if id == 0 {
		return nil
	}
	for _, u := range d.Users {
		if u.ID == id {
			return u
		}
	}
	return nil
}

// ProjectByID returns the project with the given id, or nil.
func (d *Dataset) ProjectByID(id int) *model.Project {
	if id == 0 {
		return nil
	}
	for _, p := range d.Projects {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// TasksForProject returns the tasks whose ProjectID is id, in dataset order.
func (d *Dataset) TasksForProject(id int) []*model.Task {
	var tasks []*model.Task
	for _, t := range d.Tasks {
		if t.ProjectID == id {
			tasks = append(tasks, t)
		}
	}
	return tasks
}

// Link recomputes Project.TaskIDs and User.ProjectIDs from Task.ProjectID
// and Project.OwnerID. Ids are kept in ascending order. References to
// missing records are left alone and contribute nothing.
func (d *Dataset) Link() {
	projects := make(map[int]*model.Project, len(d.Projects))
	for _, p := range d.Projects {
		p.TaskIDs = []int{}
		if _, dup := projects[p.ID]; !dup {
			projects[p.ID] = p
		}
	}
	users := make(map[int]*model.User, len(d.Users))
	for _, u := range d.Users {
		u.ProjectIDs = []int{}
		if _, dup := users[u.ID]; !dup {
			users[u.ID] = u
		}
	}

	for _, t := range d.Tasks {
		if p, ok := projects[t.ProjectID]; ok {
			p.AddTask(t.ID)
		}
	}
	for _, p := range d.Projects {
		if u, ok := users[p.OwnerID]; ok {
			u.AddProject(p.ID)
		}
	}

	for _, p := range d.Projects {
		sort.Ints(p.TaskIDs)
	}
	for _, u := range d.Users {
		sort.Ints(u.ProjectIDs)
	}
}

// Document returns the mapping form of the whole dataset.
func (d *Dataset) Document() map[string]any {
	users := make([]map[string]any, 0, len(d.Users))
	for _, u := range d.Users {
		users = append(users, u.ToMap())
	}
	projects := make([]map[string]any, 0, len(d.Projects))
	for _, p := range d.Projects {
		projects = append(projects, p.ToMap())
	}
	tasks := make([]map[string]any, 0, len(d.Tasks))
	for _, t := range d.Tasks {
		tasks = append(tasks, t.ToMap())
	}
	return map[string]any{
		"users":    users,
		"projects": projects,
		"tasks":    tasks,
	}
}
