package postgresql

import (
	"errors"
	"fmt"

	"github.com/cmlabs-hris/hris-dashboard-go/internal/pkg/database"
	"github.com/cmlabs-hris/hris-dashboard-go/internal/pkg/validator"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	uniqueViolation     = "23505"
	foreignKeyViolation = "23503"
	checkViolation      = "23514"
)

// constraintFields maps schema constraints to the request field they guard.
var constraintFields = map[string]validator.ValidationError{
	"employees_employee_code_key":        {Field: "employee_code", Message: "employee code already exists"},
	"employees_status_check":             {Field: "status", Message: "status must be Active, On Leave or Inactive"},
	"employees_salary_check":             {Field: "salary", Message: "salary must not be negative"},
	"employees_manager_id_fkey":          {Field: "manager_id", Message: "manager not found"},
	"attendances_employee_date_key":      {Field: "date", Message: "attendance record already exists for this employee and date"},
	"attendances_status_check":           {Field: "status", Message: "invalid attendance status"},
	"attendances_break_minutes_check":    {Field: "break_minutes", Message: "break_minutes must not be negative"},
	"leave_requests_type_check":          {Field: "type", Message: "type must be one of Annual Leave, Sick Leave, Personal Leave, Maternity Leave"},
	"leave_requests_status_check":        {Field: "status", Message: "invalid leave status"},
	"leave_requests_end_date_check":      {Field: "end_date", Message: "end_date must not be before start_date"},
	"payroll_records_employee_month_key": {Field: "month", Message: "payroll record already exists for this employee and month"},
	"payroll_records_month_check":        {Field: "month", Message: "month must be in YYYY-MM format"},
	"payroll_records_basic_salary_check": {Field: "basic_salary", Message: "basic_salary must not be negative"},
}

// mapError turns constraint violations into field errors and connection
// failures into database.ErrStorageUnavailable. Other errors pass through.
func mapError(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case uniqueViolation, foreignKeyViolation, checkViolation:
			if fe, ok := constraintFields[pgErr.ConstraintName]; ok {
				return validator.ValidationErrors{fe}
			}
			field := pgErr.ColumnName
			if field == "" {
				field = pgErr.ConstraintName
			}
			return validator.FieldError(field, pgErr.Message)
		}
		return err
	}

	if database.IsTransportError(err) {
		return fmt.Errorf("%w: %v", database.ErrStorageUnavailable, err)
	}
	return err
}
