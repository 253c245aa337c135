package leave

import (
	"time"

	"github.com/cmlabs-hris/hris-dashboard-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-dashboard-go/internal/pkg/validator"
)

type CreateLeaveRequest struct {
	EmployeeID int64  `json:"employee_id"`
	Type       string `json:"type"`
	StartDate  string `json:"start_date"`
	EndDate    string `json:"end_date"`
	Reason     string `json:"reason"`
}

func (r *CreateLeaveRequest) Validate() error {
	var errs validator.ValidationErrors

	// Employee ID
	if r.EmployeeID <= 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	// Type
	if validator.IsEmpty(r.Type) {
		errs = append(errs, validator.ValidationError{
			Field:   "type",
			Message: "type is required",
		})
	} else if _, err := ParseType(r.Type); err != nil {
		errs = append(errs, validator.ValidationError{
			Field:   "type",
			Message: "type must be one of Annual Leave, Sick Leave, Personal Leave, Maternity Leave",
		})
	}

	// Dates
	errs = append(errs, validateDateRange(r.StartDate, r.EndDate)...)

	// Reason
	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "reason is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

func validateDateRange(startStr, endStr string) validator.ValidationErrors {
	var errs validator.ValidationErrors

	start, startOK := validator.IsValidDate(startStr)
	if validator.IsEmpty(startStr) {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date is required",
		})
	} else if !startOK {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date must be in YYYY-MM-DD format",
		})
	}

	end, endOK := validator.IsValidDate(endStr)
	if validator.IsEmpty(endStr) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date is required",
		})
	} else if !endOK {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must be in YYYY-MM-DD format",
		})
	}

	if startOK && endOK && end.Before(start) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must not be before start_date",
		})
	}
	return errs
}

// UpdateLeaveRequest edits a pending request; nil fields are left unchanged.
type UpdateLeaveRequest struct {
	Type      *string `json:"type,omitempty"`
	StartDate *string `json:"start_date,omitempty"`
	EndDate   *string `json:"end_date,omitempty"`
	Reason    *string `json:"reason,omitempty"`
}

// Apply validates the update against the current request and merges it.
func (r *UpdateLeaveRequest) Apply(current *LeaveRequest) error {
	var errs validator.ValidationErrors

	merged := *current
	if r.Type != nil {
		t, err := ParseType(*r.Type)
		if err != nil {
			errs = append(errs, validator.ValidationError{
				Field:   "type",
				Message: "type must be one of Annual Leave, Sick Leave, Personal Leave, Maternity Leave",
			})
		}
		merged.Type = t
	}
	if r.Reason != nil {
		if validator.IsEmpty(*r.Reason) {
			errs = append(errs, validator.ValidationError{
				Field:   "reason",
				Message: "reason must not be empty",
			})
		}
		merged.Reason = *r.Reason
	}

	startStr := current.StartDate.Format(validator.DateLayout)
	if r.StartDate != nil {
		startStr = *r.StartDate
	}
	endStr := current.EndDate.Format(validator.DateLayout)
	if r.EndDate != nil {
		endStr = *r.EndDate
	}
	if dateErrs := validateDateRange(startStr, endStr); len(dateErrs) > 0 {
		errs = append(errs, dateErrs...)
	} else {
		merged.StartDate, _ = validator.IsValidDate(startStr)
		merged.EndDate, _ = validator.IsValidDate(endStr)
		merged.Days = CountDays(merged.StartDate, merged.EndDate)
	}

	if len(errs) > 0 {
		return errs
	}

	*current = merged
	return nil
}

type DecisionRequest struct {
	ApproverID int64 `json:"approver_id"`
}

func (r *DecisionRequest) Validate() error {
	if r.ApproverID <= 0 {
		return validator.FieldError("approver_id", "approver_id is required")
	}
	return nil
}

// LeaveRequestWithEmployee is a request joined with its employee and approver
// for display; either may be nil when unknown.
type LeaveRequestWithEmployee struct {
	LeaveRequest
	Employee *employee.Employee
	Approver *employee.Employee
}

type LeaveRequestResponse struct {
	ID           int64                      `json:"id"`
	EmployeeID   int64                      `json:"employee_id"`
	ApproverID   *int64                     `json:"approver_id"`
	Type         Type                       `json:"type"`
	StartDate    string                     `json:"start_date"`
	EndDate      string                     `json:"end_date"`
	Reason       string                     `json:"reason"`
	Status       Status                     `json:"status"`
	RequestDate  time.Time                  `json:"request_date"`
	ApprovalDate *time.Time                 `json:"approval_date"`
	Days         int                        `json:"days"`
	Employee     *employee.EmployeeResponse `json:"employee,omitempty"`
	Approver     *employee.EmployeeResponse `json:"approver,omitempty"`
}

func ToResponse(r LeaveRequestWithEmployee) LeaveRequestResponse {
	return LeaveRequestResponse{
		ID:           r.ID,
		EmployeeID:   r.EmployeeID,
		ApproverID:   r.ApproverID,
		Type:         r.Type,
		StartDate:    r.StartDate.Format(validator.DateLayout),
		EndDate:      r.EndDate.Format(validator.DateLayout),
		Reason:       r.Reason,
		Status:       r.Status,
		RequestDate:  r.RequestDate,
		ApprovalDate: r.ApprovalDate,
		Days:         r.Days,
		Employee:     employee.ToResponsePtr(r.Employee),
		Approver:     employee.ToResponsePtr(r.Approver),
	}
}

func ToResponses(requests []LeaveRequestWithEmployee) []LeaveRequestResponse {
	out := make([]LeaveRequestResponse, 0, len(requests))
	for _, r := range requests {
		out = append(out, ToResponse(r))
	}
	return out
}
