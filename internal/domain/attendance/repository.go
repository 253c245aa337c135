package attendance

import (
	"context"
	"time"
)

// Filter selects records; nil bounds are open and dates are inclusive day keys.
type Filter struct {
	EmployeeID *int64
	Date       *time.Time
	From       *time.Time
	To         *time.Time
}

func (f Filter) Matches(a Attendance) bool {
	if f.EmployeeID != nil && a.EmployeeID != *f.EmployeeID {
		return false
	}
	if f.Date != nil && !a.Date.Equal(*f.Date) {
		return false
	}
	if f.From != nil && a.Date.Before(*f.From) {
		return false
	}
	if f.To != nil && a.Date.After(*f.To) {
		return false
	}
	return true
}

type AttendanceRepository interface {
	List(ctx context.Context, filter Filter) ([]Attendance, error)
	GetByID(ctx context.Context, id int64) (Attendance, error)

	// GetByEmployeeAndDate returns nil when the employee has no record that day
	GetByEmployeeAndDate(ctx context.Context, employeeID int64, date time.Time) (*Attendance, error)

	// Create fails with a "date" validation error when (employee, date) exists
	Create(ctx context.Context, a Attendance) (Attendance, error)
	Update(ctx context.Context, a Attendance) (Attendance, error)
	Delete(ctx context.Context, id int64) error
	DeleteByEmployeeID(ctx context.Context, employeeID int64) error
}
