package employee

import (
	"context"
	"io"
)

// EmployeeService defines business logic for the employee directory
type EmployeeService interface {
	List(ctx context.Context) ([]Employee, error)

	// GetByID returns ErrEmployeeNotFound when absent
	GetByID(ctx context.Context, id int64) (Employee, error)

	// Create assigns id, code, Active status and join date
	Create(ctx context.Context, req CreateEmployeeRequest) (Employee, error)

	// Update merges only the provided fields
	Update(ctx context.Context, id int64, req UpdateEmployeeRequest) (Employee, error)

	Delete(ctx context.Context, id int64) error

	Search(ctx context.Context, query string, filter SearchFilter) ([]Employee, error)
	GetStats(ctx context.Context) (EmployeeStats, error)
	GetDepartments(ctx context.Context) ([]string, error)
	GetRoles(ctx context.Context) ([]string, error)

	UploadAvatar(ctx context.Context, id int64, file io.Reader, filename string) (Employee, error)
}
