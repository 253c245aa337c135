package employee

import "context"

type EmployeeRepository interface {
	List(ctx context.Context, filter Filter) ([]Employee, error)
	GetByID(ctx context.Context, id int64) (Employee, error)
	// Create assigns ID and EmployeeCode.
	Create(ctx context.Context, newEmployee Employee) (Employee, error)
	Update(ctx context.Context, e Employee) (Employee, error)
	Delete(ctx context.Context, id int64) error
}

// Lookup resolves employees by id for display joins in the other modules.
type Lookup interface {
	GetByIDs(ctx context.Context, ids []int64) (map[int64]Employee, error)
}

// Directory is a roster store that also serves display lookups.
type Directory interface {
	EmployeeRepository
	Lookup
}

// DependentRecordsRemover is implemented by stores holding per-employee
// records; it is used when employee deletion cascades.
type DependentRecordsRemover interface {
	DeleteByEmployeeID(ctx context.Context, employeeID int64) error
}

// Transactor runs fn so that every repository write made with the ctx it
// receives is committed together or not at all.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
