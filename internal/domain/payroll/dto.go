package payroll

import (
	"fmt"
	"time"

	"github.com/cmlabs-hris/hris-dashboard-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-dashboard-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type CreatePayrollRecordRequest struct {
	EmployeeID         int64            `json:"employee_id"`
	Month              string           `json:"month"`
	BasicSalary        *decimal.Decimal `json:"basic_salary"`
	Allowances         *decimal.Decimal `json:"allowances,omitempty"`
	Deductions         *decimal.Decimal `json:"deductions,omitempty"`
	OvertimeHours      *decimal.Decimal `json:"overtime_hours,omitempty"`
	OvertimePay        *decimal.Decimal `json:"overtime_pay,omitempty"`
	TaxDeduction       *decimal.Decimal `json:"tax_deduction,omitempty"`
	InsuranceDeduction *decimal.Decimal `json:"insurance_deduction,omitempty"`
	ProvidentFund      *decimal.Decimal `json:"provident_fund,omitempty"`
}

func (r *CreatePayrollRecordRequest) Validate() error {
	var errs validator.ValidationErrors

	// Employee ID
	if r.EmployeeID <= 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	// Month
	if validator.IsEmpty(r.Month) {
		errs = append(errs, validator.ValidationError{
			Field:   "month",
			Message: "month is required",
		})
	} else if _, err := ParseMonth(r.Month); err != nil {
		errs = append(errs, validator.ValidationError{
			Field:   "month",
			Message: "month must be in YYYY-MM format",
		})
	}

	// Basic salary
	if r.BasicSalary == nil {
		errs = append(errs, validator.ValidationError{
			Field:   "basic_salary",
			Message: "basic_salary is required",
		})
	}

	errs = append(errs, validateAmounts(map[string]*decimal.Decimal{
		"basic_salary":        r.BasicSalary,
		"allowances":          r.Allowances,
		"deductions":          r.Deductions,
		"overtime_hours":      r.OvertimeHours,
		"overtime_pay":        r.OvertimePay,
		"tax_deduction":       r.TaxDeduction,
		"insurance_deduction": r.InsuranceDeduction,
		"provident_fund":      r.ProvidentFund,
	})...)

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// amountFields fixes the order in which amount errors are reported.
var amountFields = []string{
	"basic_salary", "allowances", "deductions", "overtime_hours",
	"overtime_pay", "tax_deduction", "insurance_deduction", "provident_fund",
}

func validateAmounts(amounts map[string]*decimal.Decimal) validator.ValidationErrors {
	var errs validator.ValidationErrors
	for _, field := range amountFields {
		if v := amounts[field]; v != nil && v.IsNegative() {
			errs = append(errs, validator.ValidationError{
				Field:   field,
				Message: fmt.Sprintf("%s must not be negative", field),
			})
		}
	}
	return errs
}

func valueOrZero(v *decimal.Decimal) decimal.Decimal {
	if v == nil {
		return decimal.Zero
	}
	return *v
}

// ToRecord builds a record with NetSalary computed; absent amounts are zero.
func (r *CreatePayrollRecordRequest) ToRecord() PayrollRecord {
	month, _ := ParseMonth(r.Month)
	record := PayrollRecord{
		EmployeeID:         r.EmployeeID,
		Month:              month,
		BasicSalary:        valueOrZero(r.BasicSalary),
		Allowances:         valueOrZero(r.Allowances),
		Deductions:         valueOrZero(r.Deductions),
		OvertimeHours:      valueOrZero(r.OvertimeHours),
		OvertimePay:        valueOrZero(r.OvertimePay),
		TaxDeduction:       valueOrZero(r.TaxDeduction),
		InsuranceDeduction: valueOrZero(r.InsuranceDeduction),
		ProvidentFund:      valueOrZero(r.ProvidentFund),
	}
	record.Recalculate()
	return record
}

// UpdatePayrollRecordRequest is a correction; nil fields are left unchanged
// and an explicit zero is honoured.
type UpdatePayrollRecordRequest struct {
	Month              *string          `json:"month,omitempty"`
	BasicSalary        *decimal.Decimal `json:"basic_salary,omitempty"`
	Allowances         *decimal.Decimal `json:"allowances,omitempty"`
	Deductions         *decimal.Decimal `json:"deductions,omitempty"`
	OvertimeHours      *decimal.Decimal `json:"overtime_hours,omitempty"`
	OvertimePay        *decimal.Decimal `json:"overtime_pay,omitempty"`
	TaxDeduction       *decimal.Decimal `json:"tax_deduction,omitempty"`
	InsuranceDeduction *decimal.Decimal `json:"insurance_deduction,omitempty"`
	ProvidentFund      *decimal.Decimal `json:"provident_fund,omitempty"`
}

func (r *UpdatePayrollRecordRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Month != nil {
		if _, err := ParseMonth(*r.Month); err != nil {
			errs = append(errs, validator.ValidationError{
				Field:   "month",
				Message: "month must be in YYYY-MM format",
			})
		}
	}

	errs = append(errs, validateAmounts(map[string]*decimal.Decimal{
		"basic_salary":        r.BasicSalary,
		"allowances":          r.Allowances,
		"deductions":          r.Deductions,
		"overtime_hours":      r.OvertimeHours,
		"overtime_pay":        r.OvertimePay,
		"tax_deduction":       r.TaxDeduction,
		"insurance_deduction": r.InsuranceDeduction,
		"provident_fund":      r.ProvidentFund,
	})...)

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// Apply merges the provided fields into record, recomputing NetSalary when
// basic salary, allowances or deductions are among them.
func (r *UpdatePayrollRecordRequest) Apply(record *PayrollRecord) {
	if r.Month != nil {
		record.Month, _ = ParseMonth(*r.Month)
	}
	if r.OvertimeHours != nil {
		record.OvertimeHours = *r.OvertimeHours
	}
	if r.OvertimePay != nil {
		record.OvertimePay = *r.OvertimePay
	}
	if r.TaxDeduction != nil {
		record.TaxDeduction = *r.TaxDeduction
	}
	if r.InsuranceDeduction != nil {
		record.InsuranceDeduction = *r.InsuranceDeduction
	}
	if r.ProvidentFund != nil {
		record.ProvidentFund = *r.ProvidentFund
	}

	if r.BasicSalary == nil && r.Allowances == nil && r.Deductions == nil {
		return
	}
	if r.BasicSalary != nil {
		record.BasicSalary = *r.BasicSalary
	}
	if r.Allowances != nil {
		record.Allowances = *r.Allowances
	}
	if r.Deductions != nil {
		record.Deductions = *r.Deductions
	}
	record.Recalculate()
}

// PayrollRecordWithEmployee is a record joined for display; Employee is nil when unknown.
type PayrollRecordWithEmployee struct {
	PayrollRecord
	Employee *employee.Employee
}

// Payslip is a composed read-only view; it is never stored.
type Payslip struct {
	PayslipID   string
	Month       Month
	Employee    employee.Employee
	Record      PayrollRecord
	GeneratedAt time.Time
}

// PayslipID derives the synthetic identifier, e.g. PS-12-202403.
func PayslipID(recordID int64, month Month) string {
	return fmt.Sprintf("PS-%d-%s", recordID, month.Compact())
}

type PayrollRecordResponse struct {
	ID                 int64                      `json:"id"`
	EmployeeID         int64                      `json:"employee_id"`
	Month              Month                      `json:"month"`
	BasicSalary        decimal.Decimal            `json:"basic_salary"`
	Allowances         decimal.Decimal            `json:"allowances"`
	Deductions         decimal.Decimal            `json:"deductions"`
	OvertimeHours      decimal.Decimal            `json:"overtime_hours"`
	OvertimePay        decimal.Decimal            `json:"overtime_pay"`
	TaxDeduction       decimal.Decimal            `json:"tax_deduction"`
	InsuranceDeduction decimal.Decimal            `json:"insurance_deduction"`
	ProvidentFund      decimal.Decimal            `json:"provident_fund"`
	NetSalary          decimal.Decimal            `json:"net_salary"`
	Employee           *employee.EmployeeResponse `json:"employee,omitempty"`
}

func ToResponse(r PayrollRecord, e *employee.Employee) PayrollRecordResponse {
	return PayrollRecordResponse{
		ID:                 r.ID,
		EmployeeID:         r.EmployeeID,
		Month:              r.Month,
		BasicSalary:        r.BasicSalary,
		Allowances:         r.Allowances,
		Deductions:         r.Deductions,
		OvertimeHours:      r.OvertimeHours,
		OvertimePay:        r.OvertimePay,
		TaxDeduction:       r.TaxDeduction,
		InsuranceDeduction: r.InsuranceDeduction,
		ProvidentFund:      r.ProvidentFund,
		NetSalary:          r.NetSalary,
		Employee:           employee.ToResponsePtr(e),
	}
}

func ToResponses(records []PayrollRecordWithEmployee) []PayrollRecordResponse {
	out := make([]PayrollRecordResponse, 0, len(records))
	for _, r := range records {
		out = append(out, ToResponse(r.PayrollRecord, r.Employee))
	}
	return out
}

type PayslipResponse struct {
	PayslipID     string                    `json:"payslip_id"`
	Month         Month                     `json:"month"`
	Employee      employee.EmployeeResponse `json:"employee"`
	Record        PayrollRecordResponse     `json:"record"`
	GeneratedDate time.Time                 `json:"generated_date"`
}

func ToPayslipResponse(p Payslip) PayslipResponse {
	return PayslipResponse{
		PayslipID:     p.PayslipID,
		Month:         p.Month,
		Employee:      employee.ToResponse(p.Employee),
		Record:        ToResponse(p.Record, nil),
		GeneratedDate: p.GeneratedAt,
	}
}

// PayslipFilename is the download name for an employee's payslip PDF.
func PayslipFilename(employeeID int64, month Month) string {
	return fmt.Sprintf("payslip-%d-%s.pdf", employeeID, month)
}
