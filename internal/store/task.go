package store

import (
	"context"

	"github.com/tjcastle/taskboard-api/internal/domain"
)

// TaskStore defines the interface for task persistence.
type TaskStore interface {
	// List retrieves tasks matching the query's filter, ordered, paged, and
	// projected as requested. A zero Limit means no cap.
	List(ctx context.Context, q Query) ([]domain.Task, error)

	// Count returns the number of tasks matching the filter. Sort,
	// projection, and paging do not apply to counts.
	Count(ctx context.Context, filter map[string]any) (int64, error)

	// GetByID retrieves a task by its ID.
	// Returns ErrTaskNotFound if the task does not exist.
	GetByID(ctx context.Context, id string) (*domain.Task, error)

	// Create inserts a new task and assigns its ID.
	Create(ctx context.Context, task *domain.Task) error

	// Replace overwrites every field of an existing task. The caller must
	// provide a complete task; this is a full replace, not a merge.
	// Returns ErrTaskNotFound if the task does not exist.
	Replace(ctx context.Context, task *domain.Task) error

	// Delete removes a task by ID in a single fetch-and-remove step and
	// returns the removed record.
	// Returns ErrTaskNotFound if the task does not exist.
	Delete(ctx context.Context, id string) (*domain.Task, error)

	// UpdateAssignment points every task in ids at the given user in one
	// bulk write, setting both assignedUser and assignedUserName. An empty
	// userID with name "unassigned" clears the reference. IDs that match no
	// task are silently skipped.
	UpdateAssignment(ctx context.Context, ids []string, userID, userName string) error
}
