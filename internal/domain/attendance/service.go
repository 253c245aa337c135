package attendance

import (
	"context"
	"io"
	"time"
)

// AttendanceService defines business logic for daily clock sessions
type AttendanceService interface {
	// ClockIn fails with ErrAlreadyClockedIn while a session is open today
	ClockIn(ctx context.Context, employeeID int64) (Attendance, error)

	// ClockOut fails with ErrNoActiveClockIn when no session is open today
	ClockOut(ctx context.Context, req ClockOutRequest) (Attendance, error)

	RecordBreak(ctx context.Context, req BreakRequest) (Attendance, error)
	GetCurrentStatus(ctx context.Context, employeeID int64) (CurrentStatus, error)
	GetStats(ctx context.Context, from, to *time.Time) (Stats, error)
	GetTodayAttendance(ctx context.Context) ([]AttendanceWithEmployee, error)

	List(ctx context.Context) ([]AttendanceWithEmployee, error)
	GetByID(ctx context.Context, id int64) (AttendanceWithEmployee, error)
	GetByEmployeeID(ctx context.Context, employeeID int64, from, to *time.Time) ([]Attendance, error)

	// MarkAbsences assigns Absent or On Leave to employees without a record on date
	MarkAbsences(ctx context.Context, date time.Time) (AbsenceReport, error)

	ExportXLSX(ctx context.Context, from, to *time.Time, w io.Writer) error
}
