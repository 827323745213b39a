package refsync

import (
	"fmt"

	"github.com/tjcastle/taskboard-api/internal/domain"
)

// PatchOp identifies the kind of secondary write a patch performs.
type PatchOp int

// Patch operation kinds.
const (
	// OpRemovePending pulls a task ID out of a user's pendingTasks set.
	OpRemovePending PatchOp = iota

	// OpAddPending adds a task ID to a user's pendingTasks set.
	OpAddPending

	// OpUnassignTasks clears assignedUser/assignedUserName on a set of tasks.
	OpUnassignTasks

	// OpAssignTasks points a set of tasks at a user, setting both
	// assignedUser and the denormalized assignedUserName.
	OpAssignTasks
)

// String returns the operation name for logs.
func (op PatchOp) String() string {
	switch op {
	case OpRemovePending:
		return "remove_pending"
	case OpAddPending:
		return "add_pending"
	case OpUnassignTasks:
		return "unassign_tasks"
	case OpAssignTasks:
		return "assign_tasks"
	default:
		return fmt.Sprintf("patch_op(%d)", int(op))
	}
}

// Patch is one secondary write against the opposite collection.
//
// For the pending-set ops, UserID is the user whose set is patched and
// TaskID the entry added or removed. For the assignment ops, TaskIDs are the
// tasks rewritten in bulk, and UserID/UserName the reference written into
// them (both empty-ish for OpUnassignTasks, which writes ""/"unassigned").
type Patch struct {
	Op       PatchOp
	UserID   string
	TaskID   string
	TaskIDs  []string
	UserName string
}

// Plan is the ordered set of patches computed for one primary write.
// Patches execute strictly in slice order; the planner places removals
// before additions so a task never transiently lives in two pending sets.
type Plan struct {
	// Trigger describes the primary write for logs.
	Trigger string

	Patches []Patch
}

// Empty reports whether the plan carries no patches.
func (p Plan) Empty() bool {
	return len(p.Patches) == 0
}

// PlanTaskWrite computes the user-side patches required after a task write.
// A nil before means the task was just created; a nil after means the task
// identified by before was just deleted.
func PlanTaskWrite(before, after *domain.Task) Plan {
	if before == nil && after == nil {
		return Plan{}
	}

	// Deletion: the only registered reference a task can have is in its
	// assigned user's pending set.
	if after == nil {
		plan := Plan{Trigger: fmt.Sprintf("task %s deleted", before.ID)}
		if before.Assigned() {
			plan.Patches = append(plan.Patches, Patch{
				Op:     OpRemovePending,
				UserID: before.AssignedUser,
				TaskID: before.ID,
			})
		}
		return plan
	}

	taskID := after.ID
	verb := "replaced"
	if before == nil {
		verb = "created"
	}
	plan := Plan{Trigger: fmt.Sprintf("task %s %s", taskID, verb)}

	// A freshly created task has nothing registered anywhere, so only a
	// replace can require removals.
	justCompleted := before != nil && !before.Completed && after.Completed

	// Removal from the old user when the assignment moved away or the task
	// completed while registered. Removals always precede the addition so
	// the task never transiently lives in two pending sets.
	if before != nil && before.Assigned() {
		if before.AssignedUser != after.AssignedUser || justCompleted {
			plan.add(Patch{Op: OpRemovePending, UserID: before.AssignedUser, TaskID: taskID})
		}
	}

	// Completion clears the pending entry under the task's current user even
	// when the assignment did not change in the same write. When it did not,
	// this collapses into the removal above.
	if justCompleted && after.Assigned() {
		plan.add(Patch{Op: OpRemovePending, UserID: after.AssignedUser, TaskID: taskID})
	}

	// Addition to the new user, only while the task is actually pending.
	if after.Pending() && (before == nil || before.AssignedUser != after.AssignedUser) {
		plan.add(Patch{Op: OpAddPending, UserID: after.AssignedUser, TaskID: taskID})
	}

	return plan
}

// PlanUserWrite computes the task-side patches required after a user write.
// A nil before means the user was just created; a nil after means the user
// identified by before was just deleted. Both directions reduce to a set
// difference over the pendingTasks field, with unassignment ordered first.
func PlanUserWrite(before, after *domain.User) Plan {
	if before == nil && after == nil {
		return Plan{}
	}

	var beforeSet, afterSet []string
	var plan Plan
	switch {
	case after == nil:
		beforeSet = before.PendingTasks
		plan.Trigger = fmt.Sprintf("user %s deleted", before.ID)
	case before == nil:
		afterSet = after.PendingTasks
		plan.Trigger = fmt.Sprintf("user %s created", after.ID)
	default:
		beforeSet = before.PendingTasks
		afterSet = after.PendingTasks
		plan.Trigger = fmt.Sprintf("user %s replaced", after.ID)
	}

	if removed := difference(beforeSet, afterSet); len(removed) > 0 {
		plan.add(Patch{
			Op:       OpUnassignTasks,
			TaskIDs:  removed,
			UserName: domain.UnassignedUserName,
		})
	}

	if added := difference(afterSet, beforeSet); len(added) > 0 {
		plan.add(Patch{
			Op:       OpAssignTasks,
			TaskIDs:  added,
			UserID:   after.ID,
			UserName: after.Name,
		})
	}

	return plan
}

// add appends the patch unless an equivalent one is already planned. The
// completion and reassignment rules can both target the same pending entry;
// issuing it twice would be harmless but noisy.
func (p *Plan) add(patch Patch) {
	for _, existing := range p.Patches {
		if existing.Op == patch.Op &&
			existing.UserID == patch.UserID &&
			existing.TaskID == patch.TaskID {
			return
		}
	}
	p.Patches = append(p.Patches, patch)
}

// difference returns the elements of a that are not in b, preserving order
// and dropping duplicates.
func difference(a, b []string) []string {
	if len(a) == 0 {
		return nil
	}

	exclude := make(map[string]struct{}, len(b))
	for _, id := range b {
		exclude[id] = struct{}{}
	}

	var out []string
	seen := make(map[string]struct{}, len(a))
	for _, id := range a {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		if _, ok := exclude[id]; !ok {
			out = append(out, id)
		}
	}
	return out
}
