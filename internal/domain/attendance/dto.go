package attendance

import (
	"time"

	"github.com/cmlabs-hris/hris-dashboard-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-dashboard-go/internal/pkg/validator"
)

type ClockOutRequest struct {
	EmployeeID   int64    `json:"employee_id"`
	BreakMinutes *float64 `json:"break_minutes,omitempty"`
}

func (r *ClockOutRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.EmployeeID <= 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}
	if r.BreakMinutes != nil && *r.BreakMinutes < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "break_minutes",
			Message: "break_minutes must not be negative",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type BreakRequest struct {
	EmployeeID int64   `json:"employee_id"`
	Minutes    float64 `json:"minutes"`
}

func (r *BreakRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.EmployeeID <= 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}
	if r.Minutes <= 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "minutes",
			Message: "minutes must be greater than zero",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// DateRangeRequest carries optional inclusive YYYY-MM-DD bounds from a query string.
type DateRangeRequest struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

func (r DateRangeRequest) Parse() (from, to *time.Time, err error) {
	var errs validator.ValidationErrors

	if r.StartDate != "" {
		d, ok := validator.IsValidDate(r.StartDate)
		if !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "start_date",
				Message: "start_date must be in YYYY-MM-DD format",
			})
		} else {
			from = &d
		}
	}
	if r.EndDate != "" {
		d, ok := validator.IsValidDate(r.EndDate)
		if !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "end_date",
				Message: "end_date must be in YYYY-MM-DD format",
			})
		} else {
			to = &d
		}
	}

	if len(errs) > 0 {
		return nil, nil, errs
	}
	return from, to, nil
}

// CurrentStatus is today's session for one employee.
type CurrentStatus struct {
	EmployeeID   int64      `json:"employee_id"`
	Date         string     `json:"date"`
	Status       Status     `json:"status"`
	ClockIn      *time.Time `json:"clock_in"`
	ClockOut     *time.Time `json:"clock_out"`
	TotalHours   float64    `json:"total_hours"`
	BreakMinutes float64    `json:"break_minutes"`
}

type AttendanceResponse struct {
	ID           int64                      `json:"id"`
	EmployeeID   int64                      `json:"employee_id"`
	Date         string                     `json:"date"`
	ClockIn      *time.Time                 `json:"clock_in"`
	ClockOut     *time.Time                 `json:"clock_out"`
	Status       Status                     `json:"status"`
	TotalHours   float64                    `json:"total_hours"`
	BreakMinutes float64                    `json:"break_minutes"`
	Employee     *employee.EmployeeResponse `json:"employee,omitempty"`
}

// AttendanceWithEmployee is a record joined for display; Employee is nil
// when the directory no longer knows the employee.
type AttendanceWithEmployee struct {
	Attendance
	Employee *employee.Employee
}

func ToResponse(a Attendance, e *employee.Employee) AttendanceResponse {
	return AttendanceResponse{
		ID:           a.ID,
		EmployeeID:   a.EmployeeID,
		Date:         a.Date.Format(validator.DateLayout),
		ClockIn:      a.ClockIn,
		ClockOut:     a.ClockOut,
		Status:       a.Status,
		TotalHours:   a.TotalHours,
		BreakMinutes: a.BreakMinutes,
		Employee:     employee.ToResponsePtr(e),
	}
}

func ToResponses(records []AttendanceWithEmployee) []AttendanceResponse {
	out := make([]AttendanceResponse, 0, len(records))
	for _, r := range records {
		out = append(out, ToResponse(r.Attendance, r.Employee))
	}
	return out
}

// AbsenceReport summarises one MarkAbsences run.
type AbsenceReport struct {
	Date    string `json:"date"`
	Absent  int    `json:"absent"`
	OnLeave int    `json:"on_leave"`
	Skipped int    `json:"skipped"`
}
