package mocks

import (
	"sync"

	"github.com/tjcastle/taskboard-api/internal/domain"
	"github.com/tjcastle/taskboard-api/internal/refsync"
)

// MockSynchronizer implements refsync.Synchronizer for testing, recording
// every before/after pair handed to it.
type MockSynchronizer struct {
	// Function fields for customizable behavior
	OnTaskWrittenFn func(before, after *domain.Task)
	OnUserWrittenFn func(before, after *domain.User)

	mu         sync.Mutex
	TaskWrites []TaskWrite
	UserWrites []UserWrite
}

// TaskWrite is one recorded OnTaskWritten invocation.
type TaskWrite struct {
	Before *domain.Task
	After  *domain.Task
}

// UserWrite is one recorded OnUserWritten invocation.
type UserWrite struct {
	Before *domain.User
	After  *domain.User
}

// NewMockSynchronizer creates a new recording synchronizer.
func NewMockSynchronizer() *MockSynchronizer {
	return &MockSynchronizer{}
}

// OnTaskWritten implements the Synchronizer interface
func (m *MockSynchronizer) OnTaskWritten(before, after *domain.Task) {
	if m.OnTaskWrittenFn != nil {
		m.OnTaskWrittenFn(before, after)
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.TaskWrites = append(m.TaskWrites, TaskWrite{Before: before, After: after})
}

// OnUserWritten implements the Synchronizer interface
func (m *MockSynchronizer) OnUserWritten(before, after *domain.User) {
	if m.OnUserWrittenFn != nil {
		m.OnUserWrittenFn(before, after)
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.UserWrites = append(m.UserWrites, UserWrite{Before: before, After: after})
}

// MockSubmitter implements refsync.Submitter for testing, recording every
// submitted plan.
type MockSubmitter struct {
	// SubmitFn overrides the recording behavior when set.
	SubmitFn func(plan refsync.Plan)

	mu    sync.Mutex
	Plans []refsync.Plan
}

// NewMockSubmitter creates a new recording submitter.
func NewMockSubmitter() *MockSubmitter {
	return &MockSubmitter{}
}

// Submit implements the Submitter interface
func (m *MockSubmitter) Submit(plan refsync.Plan) {
	if m.SubmitFn != nil {
		m.SubmitFn(plan)
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.Plans = append(m.Plans, plan)
}

// Verify interface compliance at compile time
var (
	_ refsync.Synchronizer = (*MockSynchronizer)(nil)
	_ refsync.Submitter    = (*MockSubmitter)(nil)
)
