package service

import (
	"context"
	"log/slog"

	"github.com/tjcastle/taskboard-api/internal/domain"
	"github.com/tjcastle/taskboard-api/internal/refsync"
	"github.com/tjcastle/taskboard-api/internal/store"
)

// UserService provides user-related operations.
type UserService interface {
	// List retrieves users matching the query. Unlike tasks, user lists are
	// uncapped when the caller supplies no limit; user collections are
	// expected to stay small.
	List(ctx context.Context, q store.Query) ([]domain.User, error)

	// Count returns the number of users matching the filter.
	Count(ctx context.Context, filter map[string]any) (int64, error)

	// Create validates and persists a new user, then reports the write to
	// the synchronizer (an initial pendingTasks set assigns those tasks).
	// Returns store.ErrEmailExists if the email is already taken.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)

	// Get retrieves a user by ID.
	Get(ctx context.Context, id string) (*domain.User, error)

	// Replace overwrites every field of the user with the given ID, then
	// reports the before/after pair to the synchronizer.
	Replace(ctx context.Context, id string, user *domain.User) (*domain.User, error)

	// Delete removes the user with the given ID, then reports the deletion
	// to the synchronizer, which unassigns every task the user had pending.
	Delete(ctx context.Context, id string) (*domain.User, error)
}

type userServiceImpl struct {
	userStore    store.UserStore
	synchronizer refsync.Synchronizer
	logger       *slog.Logger
}

// NewUserService creates a new UserService.
// It returns an error if any of the required dependencies are nil.
func NewUserService(
	userStore store.UserStore,
	synchronizer refsync.Synchronizer,
	logger *slog.Logger,
) (UserService, error) {
	if userStore == nil {
		return nil, &ServiceError{Operation: "create_service", Message: "userStore cannot be nil"}
	}
	if synchronizer == nil {
		return nil, &ServiceError{Operation: "create_service", Message: "synchronizer cannot be nil"}
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &userServiceImpl{
		userStore:    userStore,
		synchronizer: synchronizer,
		logger:       logger.With("component", "user_service"),
	}, nil
}

func (s *userServiceImpl) List(ctx context.Context, q store.Query) ([]domain.User, error) {
	if err := q.Validate(store.UserFields); err != nil {
		return nil, err
	}

	users, err := s.userStore.List(ctx, q)
	if err != nil {
		s.logger.Error("failed to list users", "error", err)
		return nil, wrapServiceError("list_users", "failed to list users", err)
	}
	return users, nil
}

func (s *userServiceImpl) Count(ctx context.Context, filter map[string]any) (int64, error) {
	if err := store.ValidateFilter(filter, store.UserFields); err != nil {
		return 0, err
	}

	n, err := s.userStore.Count(ctx, filter)
	if err != nil {
		s.logger.Error("failed to count users", "error", err)
		return 0, wrapServiceError("count_users", "failed to count users", err)
	}
	return n, nil
}

func (s *userServiceImpl) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	if err := user.Validate(); err != nil {
		return nil, err
	}

	if err := s.userStore.Create(ctx, user); err != nil {
		if !store.IsDuplicateError(err) {
			s.logger.Error("failed to create user", "error", err)
		}
		return nil, wrapServiceError("create_user", "failed to save user", err)
	}

	s.logger.Info("user created",
		"user_id", user.ID,
		"pending_tasks", len(user.PendingTasks))

	s.synchronizer.OnUserWritten(nil, user)

	return user, nil
}

func (s *userServiceImpl) Get(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.userStore.GetByID(ctx, id)
	if err != nil {
		if !store.IsNotFoundError(err) {
			s.logger.Error("failed to retrieve user", "error", err, "user_id", id)
		}
		return nil, wrapServiceError("get_user", "failed to retrieve user", err)
	}
	return user, nil
}

func (s *userServiceImpl) Replace(ctx context.Context, id string, user *domain.User) (*domain.User, error) {
	if err := user.Validate(); err != nil {
		return nil, err
	}

	// Capture the prior pendingTasks set before overwriting; the
	// synchronizer diffs it against the saved record.
	prior, err := s.userStore.GetByID(ctx, id)
	if err != nil {
		if !store.IsNotFoundError(err) {
			s.logger.Error("failed to fetch user for replace", "error", err, "user_id", id)
		}
		return nil, wrapServiceError("replace_user", "failed to fetch existing user", err)
	}

	user.ID = prior.ID
	if err := s.userStore.Replace(ctx, user); err != nil {
		if !store.IsDuplicateError(err) {
			s.logger.Error("failed to replace user", "error", err, "user_id", id)
		}
		return nil, wrapServiceError("replace_user", "failed to save user", err)
	}

	s.logger.Info("user replaced",
		"user_id", user.ID,
		"pending_before", len(prior.PendingTasks),
		"pending_after", len(user.PendingTasks))

	s.synchronizer.OnUserWritten(prior, user)

	return user, nil
}

func (s *userServiceImpl) Delete(ctx context.Context, id string) (*domain.User, error) {
	removed, err := s.userStore.Delete(ctx, id)
	if err != nil {
		if !store.IsNotFoundError(err) {
			s.logger.Error("failed to delete user", "error", err, "user_id", id)
		}
		return nil, wrapServiceError("delete_user", "failed to delete user", err)
	}

	s.logger.Info("user deleted",
		"user_id", removed.ID,
		"pending_tasks", len(removed.PendingTasks))

	s.synchronizer.OnUserWritten(removed, nil)

	return removed, nil
}
