package providers

import (
	"context"

	"employee-directory/internal/domain"
)

// EmployeeService is the remote side of the directory: one list call and one
// update call, both authorized by a bearer token.
type EmployeeService interface {
	ListEmployees(ctx context.Context, token string) ([]domain.Employee, error)
	UpdateEmployee(ctx context.Context, token string, req domain.UpdateRequest) error
}
