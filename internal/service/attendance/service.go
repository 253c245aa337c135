package attendance

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/hris-dashboard-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-dashboard-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-dashboard-go/internal/pkg/clock"
	"github.com/cmlabs-hris/hris-dashboard-go/internal/pkg/report"
	"github.com/cmlabs-hris/hris-dashboard-go/internal/pkg/validator"
	"github.com/cmlabs-hris/hris-dashboard-go/internal/service/file"
)

type AttendanceServiceImpl struct {
	attendanceRepo attendance.AttendanceRepository
	employeeRepo   employee.EmployeeRepository
	employees      employee.Lookup
	fileService    file.FileService
	clock          clock.Clock
	location       *time.Location
}

func NewAttendanceService(
	attendanceRepo attendance.AttendanceRepository,
	employeeRepo employee.EmployeeRepository,
	employees employee.Lookup,
	fileService file.FileService,
	c clock.Clock,
	location *time.Location,
) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		attendanceRepo: attendanceRepo,
		employeeRepo:   employeeRepo,
		employees:      employees,
		fileService:    fileService,
		clock:          c,
		location:       location,
	}
}

func (s *AttendanceServiceImpl) today() time.Time {
	return clock.DayKey(s.clock.Now(), s.location)
}

// ClockIn implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ClockIn(ctx context.Context, employeeID int64) (attendance.Attendance, error) {
	if _, err := s.employeeRepo.GetByID(ctx, employeeID); err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return attendance.Attendance{}, employee.ErrEmployeeNotFound
		}
		return attendance.Attendance{}, fmt.Errorf("failed to get employee: %w", err)
	}

	now := s.clock.Now().UTC()
	today := s.today()

	existing, err := s.attendanceRepo.GetByEmployeeAndDate(ctx, employeeID, today)
	if err != nil {
		return attendance.Attendance{}, fmt.Errorf("failed to get today's attendance: %w", err)
	}
	if existing != nil && existing.IsOpen() {
		return attendance.Attendance{}, attendance.ErrAlreadyClockedIn
	}

	record := attendance.Attendance{
		EmployeeID: employeeID,
		Date:       today,
	}
	if existing != nil {
		record = *existing
	}
	record.ClockIn = &now
	record.ClockOut = nil
	record.Status = attendance.StatusClockedIn
	record.TotalHours = 0
	record.BreakMinutes = 0

	var saved attendance.Attendance
	if existing != nil {
		saved, err = s.attendanceRepo.Update(ctx, record)
	} else {
		saved, err = s.attendanceRepo.Create(ctx, record)
	}
	if err != nil {
		return attendance.Attendance{}, fmt.Errorf("failed to clock in: %w", err)
	}

	slog.Info("Employee clocked in", "employee_id", employeeID, "attendance_id", saved.ID)
	return saved, nil
}

// ClockOut implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ClockOut(ctx context.Context, req attendance.ClockOutRequest) (attendance.Attendance, error) {
	if err := req.Validate(); err != nil {
		return attendance.Attendance{}, err
	}

	record, err := s.openSession(ctx, req.EmployeeID)
	if err != nil {
		return attendance.Attendance{}, err
	}

	now := s.clock.Now().UTC()
	if req.BreakMinutes != nil {
		record.BreakMinutes = *req.BreakMinutes
	}
	record.ClockOut = &now
	record.Status = attendance.StatusPresent
	record.TotalHours = attendance.WorkedHours(*record.ClockIn, now, record.BreakMinutes)

	saved, err := s.attendanceRepo.Update(ctx, record)
	if err != nil {
		return attendance.Attendance{}, fmt.Errorf("failed to clock out: %w", err)
	}

	slog.Info("Employee clocked out", "employee_id", req.EmployeeID, "total_hours", saved.TotalHours)
	return saved, nil
}

// RecordBreak implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) RecordBreak(ctx context.Context, req attendance.BreakRequest) (attendance.Attendance, error) {
	if err := req.Validate(); err != nil {
		return attendance.Attendance{}, err
	}

	record, err := s.openSession(ctx, req.EmployeeID)
	if err != nil {
		return attendance.Attendance{}, err
	}
	record.BreakMinutes += req.Minutes

	saved, err := s.attendanceRepo.Update(ctx, record)
	if err != nil {
		return attendance.Attendance{}, fmt.Errorf("failed to record break: %w", err)
	}
	return saved, nil
}

func (s *AttendanceServiceImpl) openSession(ctx context.Context, employeeID int64) (attendance.Attendance, error) {
	record, err := s.attendanceRepo.GetByEmployeeAndDate(ctx, employeeID, s.today())
	if err != nil {
		return attendance.Attendance{}, fmt.Errorf("failed to get today's attendance: %w", err)
	}
	if record == nil || !record.IsOpen() {
		return attendance.Attendance{}, attendance.ErrNoActiveClockIn
	}
	return *record, nil
}

// GetCurrentStatus implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) GetCurrentStatus(ctx context.Context, employeeID int64) (attendance.CurrentStatus, error) {
	today := s.today()
	status := attendance.CurrentStatus{
		EmployeeID: employeeID,
		Date:       today.Format(validator.DateLayout),
		Status:     attendance.StatusNotClockedIn,
	}

	record, err := s.attendanceRepo.GetByEmployeeAndDate(ctx, employeeID, today)
	if err != nil {
		slog.Warn("Failed to get current attendance status", "employee_id", employeeID, "error", err)
		return status, nil
	}
	if record == nil {
		return status, nil
	}

	status.Status = record.Status
	status.ClockIn = record.ClockIn
	status.ClockOut = record.ClockOut
	status.TotalHours = record.TotalHours
	status.BreakMinutes = record.BreakMinutes
	return status, nil
}

// GetStats implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) GetStats(ctx context.Context, from, to *time.Time) (attendance.Stats, error) {
	records, err := s.attendanceRepo.List(ctx, attendance.Filter{From: from, To: to})
	if err != nil {
		slog.Warn("Failed to load attendance stats", "error", err)
		return attendance.ComputeStats(nil), nil
	}
	return attendance.ComputeStats(records), nil
}

// GetTodayAttendance implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) GetTodayAttendance(ctx context.Context) ([]attendance.AttendanceWithEmployee, error) {
	today := s.today()
	records, err := s.attendanceRepo.List(ctx, attendance.Filter{Date: &today})
	if err != nil {
		slog.Warn("Failed to list today's attendance", "error", err)
		return []attendance.AttendanceWithEmployee{}, nil
	}
	return s.withEmployees(ctx, records), nil
}

// List implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) List(ctx context.Context) ([]attendance.AttendanceWithEmployee, error) {
	records, err := s.attendanceRepo.List(ctx, attendance.Filter{})
	if err != nil {
		slog.Warn("Failed to list attendance", "error", err)
		return []attendance.AttendanceWithEmployee{}, nil
	}
	return s.withEmployees(ctx, records), nil
}

// GetByID implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) GetByID(ctx context.Context, id int64) (attendance.AttendanceWithEmployee, error) {
	record, err := s.attendanceRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, attendance.ErrAttendanceNotFound) {
			return attendance.AttendanceWithEmployee{}, attendance.ErrAttendanceNotFound
		}
		return attendance.AttendanceWithEmployee{}, fmt.Errorf("failed to get attendance: %w", err)
	}
	return s.withEmployees(ctx, []attendance.Attendance{record})[0], nil
}

// GetByEmployeeID implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) GetByEmployeeID(ctx context.Context, employeeID int64, from, to *time.Time) ([]attendance.Attendance, error) {
	records, err := s.attendanceRepo.List(ctx, attendance.Filter{EmployeeID: &employeeID, From: from, To: to})
	if err != nil {
		slog.Warn("Failed to list employee attendance", "employee_id", employeeID, "error", err)
		return []attendance.Attendance{}, nil
	}
	return records, nil
}

// MarkAbsences implements attendance.AttendanceService. date may be any
// instant inside the target day in the configured location.
func (s *AttendanceServiceImpl) MarkAbsences(ctx context.Context, date time.Time) (attendance.AbsenceReport, error) {
	day := clock.DayKey(date, s.location)
	result := attendance.AbsenceReport{Date: day.Format(validator.DateLayout)}

	employees, err := s.employeeRepo.List(ctx, employee.Filter{})
	if err != nil {
		return result, fmt.Errorf("failed to list employees: %w", err)
	}
	records, err := s.attendanceRepo.List(ctx, attendance.Filter{Date: &day})
	if err != nil {
		return result, fmt.Errorf("failed to list attendance: %w", err)
	}

	recorded := make(map[int64]struct{}, len(records))
	for _, r := range records {
		recorded[r.EmployeeID] = struct{}{}
	}

	for _, e := range employees {
		if _, ok := recorded[e.ID]; ok {
			continue
		}

		var status attendance.Status
		switch e.Status {
		case employee.StatusActive:
			status = attendance.StatusAbsent
		case employee.StatusOnLeave:
			status = attendance.StatusOnLeave
		default:
			result.Skipped++
			continue
		}

		if _, err := s.attendanceRepo.Create(ctx, attendance.Attendance{
			EmployeeID: e.ID,
			Date:       day,
			Status:     status,
		}); err != nil {
			// a clock-in may have landed since the listing
			if _, ok := validator.AsValidationErrors(err); ok {
				continue
			}
			return result, fmt.Errorf("failed to mark employee %d: %w", e.ID, err)
		}

		if status == attendance.StatusAbsent {
			result.Absent++
		} else {
			result.OnLeave++
		}
	}

	slog.Info("Marked absences", "date", result.Date, "absent", result.Absent, "on_leave", result.OnLeave, "skipped", result.Skipped)
	return result, nil
}

// ExportXLSX implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ExportXLSX(ctx context.Context, from, to *time.Time, w io.Writer) error {
	records, err := s.attendanceRepo.List(ctx, attendance.Filter{From: from, To: to})
	if err != nil {
		return fmt.Errorf("failed to list attendance: %w", err)
	}

	table := report.Table{
		Sheet:   "Attendance",
		Headers: []string{"Date", "Employee Code", "Employee", "Department", "Status", "Clock In", "Clock Out", "Break (min)", "Total Hours"},
	}
	for _, r := range s.withEmployees(ctx, records) {
		code, name, dept := "", "", ""
		if r.Employee != nil {
			code, name, dept = r.Employee.EmployeeCode, r.Employee.FullName(), r.Employee.Department
		}
		table.Rows = append(table.Rows, []interface{}{
			r.Date.Format(validator.DateLayout),
			code,
			name,
			dept,
			string(r.Status),
			s.formatTime(r.ClockIn),
			s.formatTime(r.ClockOut),
			r.BreakMinutes,
			r.TotalHours,
		})
	}

	buf, err := report.WriteXLSX(table)
	if err != nil {
		return fmt.Errorf("failed to render attendance export: %w", err)
	}
	if _, err := s.fileService.SaveExport(ctx, "attendance", buf.Bytes()); err != nil {
		return fmt.Errorf("failed to archive attendance export: %w", err)
	}
	if _, err := w.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("failed to write attendance export: %w", err)
	}
	return nil
}

func (s *AttendanceServiceImpl) formatTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	loc := s.location
	if loc == nil {
		loc = time.UTC
	}
	return t.In(loc).Format("15:04")
}

// withEmployees joins records with the directory; records of unknown
// employees are kept with a nil Employee.
func (s *AttendanceServiceImpl) withEmployees(ctx context.Context, records []attendance.Attendance) []attendance.AttendanceWithEmployee {
	ids := make([]int64, 0, len(records))
	for _, r := range records {
		ids = append(ids, r.EmployeeID)
	}

	byID, err := s.employees.GetByIDs(ctx, ids)
	if err != nil {
		slog.Warn("Failed to resolve employees for attendance", "error", err)
		byID = nil
	}

	out := make([]attendance.AttendanceWithEmployee, 0, len(records))
	for _, r := range records {
		joined := attendance.AttendanceWithEmployee{Attendance: r}
		if e, ok := byID[r.EmployeeID]; ok {
			e := e
			joined.Employee = &e
		}
		out = append(out, joined)
	}
	return out
}
