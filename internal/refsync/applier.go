package refsync

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/tjcastle/taskboard-api/internal/store"
)

// Applier executes a plan's patches. Implemented by storeApplier for
// production and faked in dispatcher tests.
type Applier interface {
	Apply(ctx context.Context, plan Plan)
}

// storeApplier executes patches against the user and task stores.
//
// Patches run strictly in plan order, but each one is independent: a failed
// patch is logged and the rest still run. A patch whose target record no
// longer exists is a silent no-op at the store level, not an error.
type storeApplier struct {
	userStore store.UserStore
	taskStore store.TaskStore
	logger    *slog.Logger
}

// NewApplier creates an Applier backed by the given stores.
func NewApplier(userStore store.UserStore, taskStore store.TaskStore, logger *slog.Logger) Applier {
	if logger == nil {
		logger = slog.Default()
	}
	return &storeApplier{
		userStore: userStore,
		taskStore: taskStore,
		logger:    logger.With("component", "refsync_applier"),
	}
}

// Apply runs every patch in the plan, in order.
func (a *storeApplier) Apply(ctx context.Context, plan Plan) {
	for i, patch := range plan.Patches {
		if err := a.apply(ctx, patch); err != nil {
			a.logger.Error("secondary patch failed",
				"trigger", plan.Trigger,
				"patch_index", i,
				"op", patch.Op.String(),
				"user_id", patch.UserID,
				"task_id", patch.TaskID,
				"task_ids", patch.TaskIDs,
				"error", err)
		}
	}
}

func (a *storeApplier) apply(ctx context.Context, patch Patch) error {
	switch patch.Op {
	case OpRemovePending:
		return a.userStore.RemovePendingTask(ctx, patch.UserID, patch.TaskID)
	case OpAddPending:
		return a.userStore.AddPendingTask(ctx, patch.UserID, patch.TaskID)
	case OpUnassignTasks:
		return a.taskStore.UpdateAssignment(ctx, patch.TaskIDs, "", patch.UserName)
	case OpAssignTasks:
		return a.taskStore.UpdateAssignment(ctx, patch.TaskIDs, patch.UserID, patch.UserName)
	default:
		return fmt.Errorf("unknown patch op %d", int(patch.Op))
	}
}
