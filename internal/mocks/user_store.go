package mocks

import (
	"context"
	"fmt"
	"sync"

	"github.com/tjcastle/taskboard-api/internal/domain"
	"github.com/tjcastle/taskboard-api/internal/store"
)

// MockUserStore implements store.UserStore for testing
type MockUserStore struct {
	// Function fields for customizable behavior
	ListFn              func(ctx context.Context, q store.Query) ([]domain.User, error)
	CountFn             func(ctx context.Context, filter map[string]any) (int64, error)
	GetByIDFn           func(ctx context.Context, id string) (*domain.User, error)
	CreateFn            func(ctx context.Context, user *domain.User) error
	ReplaceFn           func(ctx context.Context, user *domain.User) error
	DeleteFn            func(ctx context.Context, id string) (*domain.User, error)
	AddPendingTaskFn    func(ctx context.Context, userID, taskID string) error
	RemovePendingTaskFn func(ctx context.Context, userID, taskID string) error

	// Data for default implementation
	mu     sync.Mutex
	Users  map[string]*domain.User
	nextID int

	// PendingCalls records every AddPendingTask/RemovePendingTask invocation
	// handled by the default implementation, in order.
	PendingCalls []PendingCall
}

// PendingCall is one recorded pending-set invocation.
type PendingCall struct {
	Op     string // "add" or "remove"
	UserID string
	TaskID string
}

// NewMockUserStore creates a new mock store with initialized defaults
func NewMockUserStore() *MockUserStore {
	return &MockUserStore{
		Users: make(map[string]*domain.User),
	}
}

// List implements the UserStore interface
func (m *MockUserStore) List(ctx context.Context, q store.Query) ([]domain.User, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, q)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]domain.User, 0, len(m.Users))
	for _, user := range m.Users {
		out = append(out, *user)
	}
	return out, nil
}

// Count implements the UserStore interface
func (m *MockUserStore) Count(ctx context.Context, filter map[string]any) (int64, error) {
	if m.CountFn != nil {
		return m.CountFn(ctx, filter)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.Users)), nil
}

// GetByID implements the UserStore interface
func (m *MockUserStore) GetByID(ctx context.Context, id string) (*domain.User, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	user, ok := m.Users[id]
	if !ok {
		return nil, store.ErrUserNotFound
	}
	cp := *user
	return &cp, nil
}

// Create implements the UserStore interface
func (m *MockUserStore) Create(ctx context.Context, user *domain.User) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, user)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for _, existing := range m.Users {
		if existing.Email == user.Email {
			return store.ErrEmailExists
		}
	}
	if user.ID == "" {
		m.nextID++
		user.ID = fmt.Sprintf("user-%d", m.nextID)
	}
	cp := *user
	m.Users[user.ID] = &cp
	return nil
}

// Replace implements the UserStore interface
func (m *MockUserStore) Replace(ctx context.Context, user *domain.User) error {
	if m.ReplaceFn != nil {
		return m.ReplaceFn(ctx, user)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.Users[user.ID]; !ok {
		return store.ErrUserNotFound
	}
	for id, existing := range m.Users {
		if id != user.ID && existing.Email == user.Email {
			return store.ErrEmailExists
		}
	}
	cp := *user
	m.Users[user.ID] = &cp
	return nil
}

// Delete implements the UserStore interface
func (m *MockUserStore) Delete(ctx context.Context, id string) (*domain.User, error) {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	user, ok := m.Users[id]
	if !ok {
		return nil, store.ErrUserNotFound
	}
	delete(m.Users, id)
	return user, nil
}

// AddPendingTask implements the UserStore interface
func (m *MockUserStore) AddPendingTask(ctx context.Context, userID, taskID string) error {
	if m.AddPendingTaskFn != nil {
		return m.AddPendingTaskFn(ctx, userID, taskID)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.PendingCalls = append(m.PendingCalls, PendingCall{Op: "add", UserID: userID, TaskID: taskID})
	user, ok := m.Users[userID]
	if !ok {
		return nil
	}
	if !user.HasPendingTask(taskID) {
		user.PendingTasks = append(user.PendingTasks, taskID)
	}
	return nil
}

// RemovePendingTask implements the UserStore interface
func (m *MockUserStore) RemovePendingTask(ctx context.Context, userID, taskID string) error {
	if m.RemovePendingTaskFn != nil {
		return m.RemovePendingTaskFn(ctx, userID, taskID)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.PendingCalls = append(m.PendingCalls, PendingCall{Op: "remove", UserID: userID, TaskID: taskID})
	user, ok := m.Users[userID]
	if !ok {
		return nil
	}
	kept := user.PendingTasks[:0]
	for _, id := range user.PendingTasks {
		if id != taskID {
			kept = append(kept, id)
		}
	}
	user.PendingTasks = kept
	return nil
}

// Verify interface compliance at compile time
var _ store.UserStore = (*MockUserStore)(nil)
