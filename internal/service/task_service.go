package service

import (
	"context"
	"log/slog"

	"github.com/tjcastle/taskboard-api/internal/domain"
	"github.com/tjcastle/taskboard-api/internal/refsync"
	"github.com/tjcastle/taskboard-api/internal/store"
)

// DefaultTaskListLimit caps task list results when the caller does not
// supply a limit. Task collections are expected to grow large.
const DefaultTaskListLimit = 100

// TaskService provides task-related operations.
type TaskService interface {
	// List retrieves tasks matching the query. When the query carries no
	// limit, DefaultTaskListLimit applies.
	List(ctx context.Context, q store.Query) ([]domain.Task, error)

	// Count returns the number of tasks matching the filter.
	Count(ctx context.Context, filter map[string]any) (int64, error)

	// Create validates and persists a new task, then reports the write to
	// the synchronizer. Returns the saved task.
	Create(ctx context.Context, task *domain.Task) (*domain.Task, error)

	// Get retrieves a task by ID.
	Get(ctx context.Context, id string) (*domain.Task, error)

	// Replace overwrites every field of the task with the given ID, then
	// reports the before/after pair to the synchronizer. Returns the saved
	// task.
	Replace(ctx context.Context, id string, task *domain.Task) (*domain.Task, error)

	// Delete removes the task with the given ID, then reports the deletion
	// to the synchronizer. Returns the removed task.
	Delete(ctx context.Context, id string) (*domain.Task, error)
}

type taskServiceImpl struct {
	taskStore    store.TaskStore
	synchronizer refsync.Synchronizer
	logger       *slog.Logger
}

// NewTaskService creates a new TaskService.
// It returns an error if any of the required dependencies are nil.
func NewTaskService(
	taskStore store.TaskStore,
	synchronizer refsync.Synchronizer,
	logger *slog.Logger,
) (TaskService, error) {
	if taskStore == nil {
		return nil, &ServiceError{Operation: "create_service", Message: "taskStore cannot be nil"}
	}
	if synchronizer == nil {
		return nil, &ServiceError{Operation: "create_service", Message: "synchronizer cannot be nil"}
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &taskServiceImpl{
		taskStore:    taskStore,
		synchronizer: synchronizer,
		logger:       logger.With("component", "task_service"),
	}, nil
}

func (s *taskServiceImpl) List(ctx context.Context, q store.Query) ([]domain.Task, error) {
	if err := q.Validate(store.TaskFields); err != nil {
		return nil, err
	}

	if q.Limit == 0 {
		q.Limit = DefaultTaskListLimit
	}

	tasks, err := s.taskStore.List(ctx, q)
	if err != nil {
		s.logger.Error("failed to list tasks", "error", err)
		return nil, wrapServiceError("list_tasks", "failed to list tasks", err)
	}
	return tasks, nil
}

func (s *taskServiceImpl) Count(ctx context.Context, filter map[string]any) (int64, error) {
	if err := store.ValidateFilter(filter, store.TaskFields); err != nil {
		return 0, err
	}

	n, err := s.taskStore.Count(ctx, filter)
	if err != nil {
		s.logger.Error("failed to count tasks", "error", err)
		return 0, wrapServiceError("count_tasks", "failed to count tasks", err)
	}
	return n, nil
}

func (s *taskServiceImpl) Create(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	if err := task.Validate(); err != nil {
		return nil, err
	}

	if err := s.taskStore.Create(ctx, task); err != nil {
		s.logger.Error("failed to create task", "error", err)
		return nil, wrapServiceError("create_task", "failed to save task", err)
	}

	s.logger.Info("task created",
		"task_id", task.ID,
		"assigned_user", task.AssignedUser,
		"completed", task.Completed)

	// Secondary patches are fire-and-forget: the saved task is returned
	// whatever the synchronizer later does with them.
	s.synchronizer.OnTaskWritten(nil, task)

	return task, nil
}

func (s *taskServiceImpl) Get(ctx context.Context, id string) (*domain.Task, error) {
	task, err := s.taskStore.GetByID(ctx, id)
	if err != nil {
		if !store.IsNotFoundError(err) {
			s.logger.Error("failed to retrieve task", "error", err, "task_id", id)
		}
		return nil, wrapServiceError("get_task", "failed to retrieve task", err)
	}
	return task, nil
}

func (s *taskServiceImpl) Replace(ctx context.Context, id string, task *domain.Task) (*domain.Task, error) {
	if err := task.Validate(); err != nil {
		return nil, err
	}

	// Capture the prior assignment state before overwriting; the
	// synchronizer diffs it against the saved record.
	prior, err := s.taskStore.GetByID(ctx, id)
	if err != nil {
		if !store.IsNotFoundError(err) {
			s.logger.Error("failed to fetch task for replace", "error", err, "task_id", id)
		}
		return nil, wrapServiceError("replace_task", "failed to fetch existing task", err)
	}

	task.ID = prior.ID
	if err := s.taskStore.Replace(ctx, task); err != nil {
		s.logger.Error("failed to replace task", "error", err, "task_id", id)
		return nil, wrapServiceError("replace_task", "failed to save task", err)
	}

	s.logger.Info("task replaced",
		"task_id", task.ID,
		"assigned_user_before", prior.AssignedUser,
		"assigned_user_after", task.AssignedUser,
		"completed_before", prior.Completed,
		"completed_after", task.Completed)

	s.synchronizer.OnTaskWritten(prior, task)

	return task, nil
}

func (s *taskServiceImpl) Delete(ctx context.Context, id string) (*domain.Task, error) {
	removed, err := s.taskStore.Delete(ctx, id)
	if err != nil {
		if !store.IsNotFoundError(err) {
			s.logger.Error("failed to delete task", "error", err, "task_id", id)
		}
		return nil, wrapServiceError("delete_task", "failed to delete task", err)
	}

	s.logger.Info("task deleted", "task_id", removed.ID, "assigned_user", removed.AssignedUser)

	s.synchronizer.OnTaskWritten(removed, nil)

	return removed, nil
}
