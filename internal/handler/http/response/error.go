package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/hris-dashboard-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-dashboard-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-dashboard-go/internal/domain/leave"
	"github.com/cmlabs-hris/hris-dashboard-go/internal/domain/payroll"
	"github.com/cmlabs-hris/hris-dashboard-go/internal/pkg/database"
	"github.com/cmlabs-hris/hris-dashboard-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound), errors.Is(err, payroll.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrManagerNotFound):
		BadRequest(w, "Manager not found", map[string]string{"manager_id": err.Error()})
	case errors.Is(err, employee.ErrSelfManager):
		BadRequest(w, "Employee cannot manage themselves", map[string]string{"manager_id": err.Error()})

	// Attendance domain errors
	case errors.Is(err, attendance.ErrAttendanceNotFound):
		NotFound(w, "Attendance record not found")
	case errors.Is(err, attendance.ErrAlreadyClockedIn):
		Conflict(w, "Already clocked in today")
	case errors.Is(err, attendance.ErrNoActiveClockIn):
		Conflict(w, "No active clock-in found for today")

	// Leave domain errors
	case errors.Is(err, leave.ErrLeaveRequestNotFound):
		NotFound(w, "Leave request not found")
	case errors.Is(err, leave.ErrLeaveRequestAlreadyProcessed):
		Conflict(w, "Leave request already processed")

	// Payroll domain errors
	case errors.Is(err, payroll.ErrPayrollRecordNotFound):
		NotFound(w, "Payroll record not found")
	case errors.Is(err, payroll.ErrInvalidMonth):
		BadRequest(w, "Invalid month", map[string]string{"month": err.Error()})

	case errors.Is(err, database.ErrStorageUnavailable):
		slog.Error("Storage unavailable", "error", err)
		ServiceUnavailable(w, "Storage is temporarily unavailable")

	// Default
	default:
		slog.Error("Unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
