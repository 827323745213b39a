// Package refsync maintains the denormalized two-way reference between
// Task.assignedUser and User.pendingTasks. Every create, replace, or delete
// of either entity is reported to the Synchronizer as a before/after pair;
// it diffs the pair, computes the minimal ordered set of opposite-side
// patches, and executes them on a background worker pool.
//
// Patches are fire-and-forget with respect to the triggering request: the
// request's outcome never depends on them, and a failed patch is logged and
// dropped — never retried, queued, or surfaced to the client. This is a
// known consistency gap carried over deliberately; the reference converges
// after every successful write but is not transactionally guaranteed.
//
// Within a single plan, removals are ordered before additions so a task can
// never transiently appear in two users' pendingTasks. Plans from different
// requests run concurrently with no ordering between them.
package refsync
