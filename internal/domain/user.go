package domain

import (
	"fmt"
)

// User validation errors. All wrap ErrValidation so callers can classify
// them with a single errors.Is check.
var (
	ErrEmptyUserName = fmt.Errorf("%w: user name cannot be empty", ErrValidation)
	ErrEmptyEmail    = fmt.Errorf("%w: email cannot be empty", ErrValidation)
)

// User represents a registered user of the taskboard.
//
// PendingTasks is a denormalized set of Task IDs: every task currently
// assigned to this user and not yet completed. The ReferenceSynchronizer
// keeps it converged with the tasks' own assignedUser fields; it is a set,
// never a list with duplicates, and element order carries no meaning.
type User struct {
	ID           string   `json:"_id" bson:"_id,omitempty"`
	Name         string   `json:"name" bson:"name"`
	Email        string   `json:"email" bson:"email"`
	PendingTasks []string `json:"pendingTasks" bson:"pendingTasks"`
}

// NewUser creates a new User with the given fields. The ID is left empty;
// the store assigns it on insert. Returns an error if validation fails.
func NewUser(name, email string, pendingTasks []string) (*User, error) {
	if pendingTasks == nil {
		pendingTasks = []string{}
	}

	user := &User{
		Name:         name,
		Email:        email,
		PendingTasks: pendingTasks,
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}

	return user, nil
}

// Validate checks if the User has valid data.
// Returns an error wrapping ErrValidation if any field fails.
func (u *User) Validate() error {
	if u.Name == "" {
		return ErrEmptyUserName
	}

	if u.Email == "" {
		return ErrEmptyEmail
	}

	return nil
}

// HasPendingTask reports whether the given task ID is in the user's
// pendingTasks set.
func (u *User) HasPendingTask(taskID string) bool {
	for _, id := range u.PendingTasks {
		if id == taskID {
			return true
		}
	}
	return false
}
