package domain

import (
	"fmt"
	"time"
)

// UnassignedUserName is the denormalized assignedUserName value carried by
// every task that has no assigned user.
const UnassignedUserName = "unassigned"

// Task validation errors.
var (
	ErrEmptyTaskName   = fmt.Errorf("%w: task name cannot be empty", ErrValidation)
	ErrMissingDeadline = fmt.Errorf("%w: deadline is required", ErrValidation)
)

// Task represents a single unit of work on the taskboard.
//
// AssignedUser holds the ID of the user the task is assigned to, or the
// empty string when unassigned. AssignedUserName is a denormalized copy of
// that user's name ("unassigned" when no user is assigned); it is kept
// current by the ReferenceSynchronizer on user-side writes, not validated
// on task writes.
type Task struct {
	ID               string    `json:"_id" bson:"_id,omitempty"`
	Name             string    `json:"name" bson:"name"`
	Description      string    `json:"description" bson:"description"`
	Deadline         time.Time `json:"deadline" bson:"deadline"`
	Completed        bool      `json:"completed" bson:"completed"`
	AssignedUser     string    `json:"assignedUser" bson:"assignedUser"`
	AssignedUserName string    `json:"assignedUserName" bson:"assignedUserName"`
}

// NewTask creates a new Task with the given fields, applying the documented
// defaults for the optional ones. The ID is left empty; the store assigns it
// on insert. Returns an error if validation fails.
func NewTask(
	name, description string,
	deadline time.Time,
	completed bool,
	assignedUser, assignedUserName string,
) (*Task, error) {
	if assignedUserName == "" {
		assignedUserName = UnassignedUserName
	}

	task := &Task{
		Name:             name,
		Description:      description,
		Deadline:         deadline,
		Completed:        completed,
		AssignedUser:     assignedUser,
		AssignedUserName: assignedUserName,
	}

	if err := task.Validate(); err != nil {
		return nil, err
	}

	return task, nil
}

// Validate checks if the Task has valid data.
// Returns an error wrapping ErrValidation if any field fails.
func (t *Task) Validate() error {
	if t.Name == "" {
		return ErrEmptyTaskName
	}

	if t.Deadline.IsZero() {
		return ErrMissingDeadline
	}

	return nil
}

// Assigned reports whether the task currently references a user.
func (t *Task) Assigned() bool {
	return t.AssignedUser != ""
}

// Pending reports whether the task should appear in its assigned user's
// pendingTasks set: assigned and not completed.
func (t *Task) Pending() bool {
	return t.Assigned() && !t.Completed
}
