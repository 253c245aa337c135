package leave

import (
	"fmt"
	"time"
)

type LeaveRequest struct {
	ID           int64
	EmployeeID   int64
	ApproverID   *int64
	Type         Type
	StartDate    time.Time // day key
	EndDate      time.Time // day key
	Reason       string
	Status       Status
	RequestDate  time.Time
	ApprovalDate *time.Time
	Days         int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type Type string

const (
	TypeAnnual    Type = "Annual Leave"
	TypeSick      Type = "Sick Leave"
	TypePersonal  Type = "Personal Leave"
	TypeMaternity Type = "Maternity Leave"
)

// Types lists every leave type in display order.
var Types = []Type{TypeAnnual, TypeSick, TypePersonal, TypeMaternity}

func ParseType(s string) (Type, error) {
	switch Type(s) {
	case TypeAnnual, TypeSick, TypePersonal, TypeMaternity:
		return Type(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidLeaveType, s)
	}
}

// Allotment is the annual number of days granted for the type.
func (t Type) Allotment() int {
	switch t {
	case TypeAnnual:
		return 25
	case TypeSick:
		return 10
	case TypePersonal:
		return 5
	case TypeMaternity:
		return 90
	default:
		return 0
	}
}

type Status string

const (
	StatusPending  Status = "Pending"
	StatusApproved Status = "Approved"
	StatusRejected Status = "Rejected"
)

func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusPending, StatusApproved, StatusRejected:
		return Status(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidLeaveStatus, s)
	}
}

// Processed reports whether a decision has been recorded.
func (s Status) Processed() bool {
	switch s {
	case StatusApproved, StatusRejected:
		return true
	case StatusPending:
		return false
	default:
		return false
	}
}
