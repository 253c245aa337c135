package payroll

import (
	"context"
	"io"
)

// PayrollService defines business logic for monthly payroll records and payslips
type PayrollService interface {
	Create(ctx context.Context, req CreatePayrollRecordRequest) (PayrollRecord, error)

	// Update merges provided fields and keeps NetSalary consistent
	Update(ctx context.Context, id int64, req UpdatePayrollRecordRequest) (PayrollRecord, error)
	Delete(ctx context.Context, id int64) error

	GetByID(ctx context.Context, id int64) (PayrollRecordWithEmployee, error)
	List(ctx context.Context) ([]PayrollRecordWithEmployee, error)
	GetByEmployeeID(ctx context.Context, employeeID int64, year *int) ([]PayrollRecordWithEmployee, error)
	GetSalaryHistory(ctx context.Context, employeeID int64) ([]PayrollRecordWithEmployee, error)

	GetCurrentMonthPayroll(ctx context.Context) ([]PayrollRecordWithEmployee, error)
	GetPayrollStats(ctx context.Context, month *Month) (Stats, error)
	GetAvailableMonths(ctx context.Context) ([]Month, error)

	// GeneratePayslip returns ErrPayrollRecordNotFound or ErrEmployeeNotFound
	GeneratePayslip(ctx context.Context, employeeID int64, month Month) (Payslip, error)

	// RenderPayslipPDF writes the payslip as PDF and returns its archived path
	RenderPayslipPDF(ctx context.Context, employeeID int64, month Month, w io.Writer) (string, error)

	ExportXLSX(ctx context.Context, month *Month, w io.Writer) error
}
