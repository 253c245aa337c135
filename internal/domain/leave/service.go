package leave

import "context"

// LeaveService defines business logic for the leave request workflow
type LeaveService interface {
	Create(ctx context.Context, req CreateLeaveRequest) (LeaveRequest, error)
	Approve(ctx context.Context, id int64, approverID int64) (LeaveRequest, error)
	Reject(ctx context.Context, id int64, approverID int64) (LeaveRequest, error)

	GetPendingRequests(ctx context.Context) ([]LeaveRequestWithEmployee, error)
	GetLeaveBalance(ctx context.Context, employeeID int64) (Balance, error)
	GetLeaveStats(ctx context.Context) (Stats, error)

	List(ctx context.Context) ([]LeaveRequestWithEmployee, error)
	GetByID(ctx context.Context, id int64) (LeaveRequestWithEmployee, error)
	GetByEmployeeID(ctx context.Context, employeeID int64) ([]LeaveRequestWithEmployee, error)

	// Update edits a pending request and recomputes its day count
	Update(ctx context.Context, id int64, req UpdateLeaveRequest) (LeaveRequest, error)
	Delete(ctx context.Context, id int64) error
}
