package refsync

import (
	"log/slog"

	"github.com/tjcastle/taskboard-api/internal/domain"
)

// Synchronizer receives the before/after pair of every primary write and
// schedules the opposite-side patches that keep the two-way reference
// converged. Both methods return immediately; patch execution happens in
// the background and its outcome never reaches the caller.
type Synchronizer interface {
	// OnTaskWritten reports a task create (before nil), replace, or delete
	// (after nil).
	OnTaskWritten(before, after *domain.Task)

	// OnUserWritten reports a user create (before nil), replace, or delete
	// (after nil).
	OnUserWritten(before, after *domain.User)
}

// Submitter accepts plans for background execution. *Dispatcher implements
// it; tests substitute a synchronous fake.
type Submitter interface {
	Submit(plan Plan)
}

type synchronizer struct {
	submitter Submitter
	logger    *slog.Logger
}

// NewSynchronizer creates a Synchronizer that hands computed plans to the
// given submitter.
func NewSynchronizer(submitter Submitter, logger *slog.Logger) Synchronizer {
	if logger == nil {
		logger = slog.Default()
	}
	return &synchronizer{
		submitter: submitter,
		logger:    logger.With("component", "refsync"),
	}
}

func (s *synchronizer) OnTaskWritten(before, after *domain.Task) {
	s.submit(PlanTaskWrite(before, after))
}

func (s *synchronizer) OnUserWritten(before, after *domain.User) {
	s.submit(PlanUserWrite(before, after))
}

func (s *synchronizer) submit(plan Plan) {
	if plan.Empty() {
		return
	}

	s.logger.Debug("scheduling patch plan",
		"trigger", plan.Trigger,
		"patch_count", len(plan.Patches))

	s.submitter.Submit(plan)
}
