package attendance

import (
	"fmt"
	"time"
)

type Attendance struct {
	ID           int64
	EmployeeID   int64
	Date         time.Time // day key, midnight UTC
	ClockIn      *time.Time
	ClockOut     *time.Time
	Status       Status
	TotalHours   float64
	BreakMinutes float64
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsOpen reports whether the record is an open clock session.
func (a Attendance) IsOpen() bool {
	return a.ClockIn != nil && a.ClockOut == nil
}

type Status string

const (
	StatusNotClockedIn Status = "Not Clocked In"
	StatusClockedIn    Status = "Clocked In"
	StatusPresent      Status = "Present"
	StatusAbsent       Status = "Absent"
	StatusOnLeave      Status = "On Leave"
)

func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusNotClockedIn, StatusClockedIn, StatusPresent, StatusAbsent, StatusOnLeave:
		return Status(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, s)
	}
}
