package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/hris-dashboard-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-dashboard-go/internal/pkg/clock"
)

const MarkAbsentEmployeesJob = "mark_absent_employees"

type AttendanceJobs struct {
	attendanceService attendance.AttendanceService
	clock             clock.Clock
}

func NewAttendanceJobs(attendanceService attendance.AttendanceService, c clock.Clock) *AttendanceJobs {
	return &AttendanceJobs{
		attendanceService: attendanceService,
		clock:             c,
	}
}

func (j *AttendanceJobs) RegisterJobs(scheduler *Scheduler, interval time.Duration) {
	scheduler.AddJob(MarkAbsentEmployeesJob, interval, j.MarkAbsentEmployees)
}

// MarkAbsentEmployees closes out yesterday: employees with no record get
// Absent or On Leave. Repeated runs for the same day change nothing.
func (j *AttendanceJobs) MarkAbsentEmployees(ctx context.Context) error {
	yesterday := j.clock.Now().AddDate(0, 0, -1)

	report, err := j.attendanceService.MarkAbsences(ctx, yesterday)
	if err != nil {
		return fmt.Errorf("failed to mark absences: %w", err)
	}

	if report.Absent+report.OnLeave > 0 {
		slog.Info("Cron: Marked absent employees", "date", report.Date, "absent", report.Absent, "on_leave", report.OnLeave)
	}
	return nil
}
