package store

import (
	"context"

	"github.com/tjcastle/taskboard-api/internal/domain"
)

// UserStore defines the interface for user persistence.
type UserStore interface {
	// List retrieves users matching the query's filter, ordered, paged, and
	// projected as requested. A zero Limit means no cap.
	List(ctx context.Context, q Query) ([]domain.User, error)

	// Count returns the number of users matching the filter.
	Count(ctx context.Context, filter map[string]any) (int64, error)

	// GetByID retrieves a user by their ID.
	// Returns ErrUserNotFound if the user does not exist.
	GetByID(ctx context.Context, id string) (*domain.User, error)

	// Create inserts a new user and assigns their ID.
	// Returns ErrEmailExists if the email is already taken.
	Create(ctx context.Context, user *domain.User) error

	// Replace overwrites every field of an existing user (full replace).
	// Returns ErrUserNotFound if the user does not exist.
	// Returns ErrEmailExists if replacing with an email that is already taken.
	Replace(ctx context.Context, user *domain.User) error

	// Delete removes a user by ID in a single fetch-and-remove step and
	// returns the removed record.
	// Returns ErrUserNotFound if the user does not exist.
	Delete(ctx context.Context, id string) (*domain.User, error)

	// AddPendingTask adds the task ID to the user's pendingTasks set. The
	// add is idempotent: an already-present ID is left alone, never
	// duplicated. A userID that matches no user is a silent no-op.
	AddPendingTask(ctx context.Context, userID, taskID string) error

	// RemovePendingTask removes the task ID from the user's pendingTasks
	// set. An absent ID or a userID that matches no user is a silent no-op.
	RemovePendingTask(ctx context.Context, userID, taskID string) error
}
