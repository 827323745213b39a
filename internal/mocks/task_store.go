package mocks

import (
	"context"
	"fmt"
	"sync"

	"github.com/tjcastle/taskboard-api/internal/domain"
	"github.com/tjcastle/taskboard-api/internal/store"
)

// MockTaskStore implements store.TaskStore for testing
type MockTaskStore struct {
	// Function fields for customizable behavior
	ListFn             func(ctx context.Context, q store.Query) ([]domain.Task, error)
	CountFn            func(ctx context.Context, filter map[string]any) (int64, error)
	GetByIDFn          func(ctx context.Context, id string) (*domain.Task, error)
	CreateFn           func(ctx context.Context, task *domain.Task) error
	ReplaceFn          func(ctx context.Context, task *domain.Task) error
	DeleteFn           func(ctx context.Context, id string) (*domain.Task, error)
	UpdateAssignmentFn func(ctx context.Context, ids []string, userID, userName string) error

	// Data for default implementation
	mu     sync.Mutex
	Tasks  map[string]*domain.Task
	nextID int

	// AssignmentCalls records every UpdateAssignment invocation handled by
	// the default implementation, in order.
	AssignmentCalls []AssignmentCall
}

// AssignmentCall is one recorded UpdateAssignment invocation.
type AssignmentCall struct {
	IDs      []string
	UserID   string
	UserName string
}

// NewMockTaskStore creates a new mock store with initialized defaults
func NewMockTaskStore() *MockTaskStore {
	return &MockTaskStore{
		Tasks: make(map[string]*domain.Task),
	}
}

// List implements the TaskStore interface
func (m *MockTaskStore) List(ctx context.Context, q store.Query) ([]domain.Task, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, q)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]domain.Task, 0, len(m.Tasks))
	for _, task := range m.Tasks {
		out = append(out, *task)
	}
	return out, nil
}

// Count implements the TaskStore interface
func (m *MockTaskStore) Count(ctx context.Context, filter map[string]any) (int64, error) {
	if m.CountFn != nil {
		return m.CountFn(ctx, filter)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.Tasks)), nil
}

// GetByID implements the TaskStore interface
func (m *MockTaskStore) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	task, ok := m.Tasks[id]
	if !ok {
		return nil, store.ErrTaskNotFound
	}
	cp := *task
	return &cp, nil
}

// Create implements the TaskStore interface
func (m *MockTaskStore) Create(ctx context.Context, task *domain.Task) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, task)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if task.ID == "" {
		m.nextID++
		task.ID = fmt.Sprintf("task-%d", m.nextID)
	}
	cp := *task
	m.Tasks[task.ID] = &cp
	return nil
}

// Replace implements the TaskStore interface
func (m *MockTaskStore) Replace(ctx context.Context, task *domain.Task) error {
	if m.ReplaceFn != nil {
		return m.ReplaceFn(ctx, task)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.Tasks[task.ID]; !ok {
		return store.ErrTaskNotFound
	}
	cp := *task
	m.Tasks[task.ID] = &cp
	return nil
}

// Delete implements the TaskStore interface
func (m *MockTaskStore) Delete(ctx context.Context, id string) (*domain.Task, error) {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	task, ok := m.Tasks[id]
	if !ok {
		return nil, store.ErrTaskNotFound
	}
	delete(m.Tasks, id)
	return task, nil
}

// UpdateAssignment implements the TaskStore interface
func (m *MockTaskStore) UpdateAssignment(
	ctx context.Context,
	ids []string,
	userID, userName string,
) error {
	if m.UpdateAssignmentFn != nil {
		return m.UpdateAssignmentFn(ctx, ids, userID, userName)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.AssignmentCalls = append(m.AssignmentCalls, AssignmentCall{
		IDs:      append([]string(nil), ids...),
		UserID:   userID,
		UserName: userName,
	})
	for _, id := range ids {
		if task, ok := m.Tasks[id]; ok {
			task.AssignedUser = userID
			task.AssignedUserName = userName
		}
	}
	return nil
}

// Verify interface compliance at compile time
var _ store.TaskStore = (*MockTaskStore)(nil)
