package payroll

import "context"

type Filter struct {
	EmployeeID *int64
	Month      *Month
	Year       *int
}

func (f Filter) Matches(r PayrollRecord) bool {
	if f.EmployeeID != nil && r.EmployeeID != *f.EmployeeID {
		return false
	}
	if f.Month != nil && r.Month != *f.Month {
		return false
	}
	if f.Year != nil && r.Month.Year() != *f.Year {
		return false
	}
	return true
}

type PayrollRepository interface {
	List(ctx context.Context, filter Filter) ([]PayrollRecord, error)
	GetByID(ctx context.Context, id int64) (PayrollRecord, error)
	// GetByEmployeeAndMonth returns ErrPayrollRecordNotFound when absent
	GetByEmployeeAndMonth(ctx context.Context, employeeID int64, month Month) (PayrollRecord, error)
	// Create fails with a "month" validation error when (employee, month) exists
	Create(ctx context.Context, record PayrollRecord) (PayrollRecord, error)
	Update(ctx context.Context, record PayrollRecord) (PayrollRecord, error)
	Delete(ctx context.Context, id int64) error
	DeleteByEmployeeID(ctx context.Context, employeeID int64) error
}
