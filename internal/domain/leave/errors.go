package leave

import "errors"

var (
	ErrLeaveRequestNotFound         = errors.New("leave request not found")
	ErrLeaveRequestAlreadyProcessed = errors.New("leave request already processed")
	ErrInvalidLeaveType             = errors.New("leave type must be Annual Leave, Sick Leave, Personal Leave or Maternity Leave")
	ErrInvalidLeaveStatus           = errors.New("invalid leave status")
)
