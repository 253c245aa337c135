package leave

import "context"

type Filter struct {
	EmployeeID *int64
	Status     *Status
	Type       *Type
}

func (f Filter) Matches(r LeaveRequest) bool {
	if f.EmployeeID != nil && r.EmployeeID != *f.EmployeeID {
		return false
	}
	if f.Status != nil && r.Status != *f.Status {
		return false
	}
	if f.Type != nil && r.Type != *f.Type {
		return false
	}
	return true
}

type LeaveRequestRepository interface {
	List(ctx context.Context, filter Filter) ([]LeaveRequest, error)
	GetByID(ctx context.Context, id int64) (LeaveRequest, error)
	Create(ctx context.Context, req LeaveRequest) (LeaveRequest, error)
	Update(ctx context.Context, req LeaveRequest) (LeaveRequest, error)
	Delete(ctx context.Context, id int64) error
	DeleteByEmployeeID(ctx context.Context, employeeID int64) error
}
