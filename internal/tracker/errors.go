package tracker

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound matches errors for missing users, projects, or tasks.
	ErrNotFound = errors.New("not found")
	// ErrDuplicate matches errors for names or titles already in use.
	ErrDuplicate = errors.New("already exists")
)

// NotFoundError reports a reference to a record that does not exist.
type NotFoundError struct {
	Entity string // "User", "Project", or "Task"
	Key    string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s '%s' not found", e.Entity, e.Key)
}

// Is matches ErrNotFound.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// DuplicateError reports a name or title that is already taken.
type DuplicateError struct {
	Entity string
	Key    string
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("%s '%s' already exists", e.Entity, e.Key)
}

// Is matches ErrDuplicate.
func (e *DuplicateError) Is(target error) bool {
	return target == ErrDuplicate
}

// IsUserError reports whether err is an expected outcome that should be
// shown to the user as a message rather than treated as a failure.
func IsUserError(err error) bool {
	return errors.Is(err, ErrNotFound) || errors.Is(err, ErrDuplicate)
}
