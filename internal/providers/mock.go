package providers

import (
	"context"
	"sync"

	"employee-directory/internal/domain"
)

// MockService is an in-memory EmployeeService for tests. Nil funcs succeed
// with an empty result. Calls are recorded.
type MockService struct {
	ListFunc   func(ctx context.Context, token string) ([]domain.Employee, error)
	UpdateFunc func(ctx context.Context, token string, req domain.UpdateRequest) error

	mu      sync.Mutex
	lists   []string
	updates []domain.UpdateRequest
}

func (m *MockService) ListEmployees(ctx context.Context, token string) ([]domain.Employee, error) {
	m.mu.Lock()
	m.lists = append(m.lists, token)
	m.mu.Unlock()

	if m.ListFunc == nil {
		return []domain.Employee{}, nil
	}
	return m.ListFunc(ctx, token)
}

func (m *MockService) UpdateEmployee(ctx context.Context, token string, req domain.UpdateRequest) error {
	m.mu.Lock()
	m.updates = append(m.updates, req)
	m.mu.Unlock()

	if m.UpdateFunc == nil {
		return nil
	}
	return m.UpdateFunc(ctx, token, req)
}

// ListCalls returns the tokens ListEmployees was called with.
func (m *MockService) ListCalls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.lists...)
}

// UpdateCalls returns the payloads UpdateEmployee was called with.
func (m *MockService) UpdateCalls() []domain.UpdateRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.UpdateRequest(nil), m.updates...)
}
