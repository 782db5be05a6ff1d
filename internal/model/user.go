package model

import "fmt"

// User is a person who can own projects and be assigned tasks.
type User struct {
	ID         int
	Name       string
	Email      string
	ProjectIDs []int
}

// NewUser creates a user with the next id from seq.
func NewUser(seq *Sequence, name, email string) *User {
	return &User{
		ID:         seq.Next(),
		Name:       name,
		Email:      email,
		ProjectIDs: []int{},
	}
}

// UserFromMap builds a user from its mapping form.
func UserFromMap(m map[string]any, seq *Sequence) *User {
	return &User{
		ID:         assignID(m, seq),
		Name:       stringValue(m["name"]),
		Email:      stringValue(m["email"]),
		ProjectIDs: intList(m["project_ids"]),
	}
}

// ToMap returns the mapping form of the user.
func (u *User) ToMap() map[string]any {
	return map[string]any{
		"id":          u.ID,
		"name":        u.Name,
		"email":       optionalString(u.Email),
		"project_ids": cloneIDs(u.ProjectIDs),
	}
}

// AddProject records ownership of a project. Adding an id twice is a no-op.
func (u *User) AddProject(projectID int) {
	if !containsID(u.ProjectIDs, projectID) {
		u.ProjectIDs = append(u.ProjectIDs, projectID)
	}
}

// RemoveProject drops a project id and reports whether it was present.
func (u *User) RemoveProject(projectID int) bool {
	var removed bool
	u.ProjectIDs, removed = removeID(u.ProjectIDs, projectID)
	return removed
}

// ProjectCount returns the number of projects the user owns.
func (u *User) ProjectCount() int {
	return len(u.ProjectIDs)
}

func (u *User) String() string {
	return fmt.Sprintf("User(id=%d, name=%q, email=%q)", u.ID, u.Name, u.Email)
}
