package attendance

import "errors"

var (
	ErrAlreadyClockedIn   = errors.New("already clocked in today")
	ErrNoActiveClockIn    = errors.New("no active clock-in found for today")
	ErrAttendanceNotFound = errors.New("attendance record not found")
	ErrInvalidStatus      = errors.New("invalid attendance status")
)
