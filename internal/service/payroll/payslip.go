package payroll

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/cmlabs-hris/hris-dashboard-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-dashboard-go/internal/domain/payroll"
	"github.com/cmlabs-hris/hris-dashboard-go/internal/pkg/report"
)

// GeneratePayslip implements payroll.PayrollService.
func (s *PayrollServiceImpl) GeneratePayslip(ctx context.Context, employeeID int64, month payroll.Month) (payroll.Payslip, error) {
	emp, err := s.employeeRepo.GetByID(ctx, employeeID)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return payroll.Payslip{}, payroll.ErrEmployeeNotFound
		}
		return payroll.Payslip{}, fmt.Errorf("failed to get employee: %w", err)
	}

	record, err := s.payrollRepo.GetByEmployeeAndMonth(ctx, employeeID, month)
	if err != nil {
		if errors.Is(err, payroll.ErrPayrollRecordNotFound) {
			return payroll.Payslip{}, payroll.ErrPayrollRecordNotFound
		}
		return payroll.Payslip{}, fmt.Errorf("failed to get payroll record: %w", err)
	}

	return payroll.Payslip{
		PayslipID:   payroll.PayslipID(record.ID, month),
		Month:       month,
		Employee:    emp,
		Record:      record,
		GeneratedAt: s.clock.Now().UTC(),
	}, nil
}

// RenderPayslipPDF implements payroll.PayrollService.
func (s *PayrollServiceImpl) RenderPayslipPDF(ctx context.Context, employeeID int64, month payroll.Month, w io.Writer) (string, error) {
	slip, err := s.GeneratePayslip(ctx, employeeID, month)
	if err != nil {
		return "", err
	}

	buf := new(bytes.Buffer)
	if err := report.WritePayslipPDF(slip, buf); err != nil {
		return "", fmt.Errorf("failed to render payslip: %w", err)
	}

	path, err := s.fileService.SavePayslip(ctx, employeeID, slip.PayslipID, buf.Bytes())
	if err != nil {
		return "", fmt.Errorf("failed to archive payslip: %w", err)
	}

	if _, err := w.Write(buf.Bytes()); err != nil {
		return "", fmt.Errorf("failed to write payslip: %w", err)
	}

	slog.Info("Rendered payslip", "payslip_id", slip.PayslipID, "path", path)
	return path, nil
}

// ExportXLSX implements payroll.PayrollService.
func (s *PayrollServiceImpl) ExportXLSX(ctx context.Context, month *payroll.Month, w io.Writer) error {
	records, err := s.payrollRepo.List(ctx, payroll.Filter{Month: month})
	if err != nil {
		return fmt.Errorf("failed to list payroll records: %w", err)
	}

	table := report.Table{
		Sheet: "Payroll",
		Headers: []string{
			"Month", "Employee Code", "Employee", "Department",
			"Basic Salary", "Allowances", "Overtime Pay", "Deductions",
			"Tax", "Insurance", "Provident Fund", "Net Salary",
		},
	}
	for _, r := range s.withEmployees(ctx, records) {
		code, name, dept := "", "", ""
		if r.Employee != nil {
			code, name, dept = r.Employee.EmployeeCode, r.Employee.FullName(), r.Employee.Department
		}
		table.Rows = append(table.Rows, []interface{}{
			r.Month.String(),
			code,
			name,
			dept,
			r.BasicSalary.InexactFloat64(),
			r.Allowances.InexactFloat64(),
			r.OvertimePay.InexactFloat64(),
			r.Deductions.InexactFloat64(),
			r.TaxDeduction.InexactFloat64(),
			r.InsuranceDeduction.InexactFloat64(),
			r.ProvidentFund.InexactFloat64(),
			r.NetSalary.InexactFloat64(),
		})
	}

	buf, err := report.WriteXLSX(table)
	if err != nil {
		return fmt.Errorf("failed to render payroll export: %w", err)
	}
	if _, err := s.fileService.SaveExport(ctx, "payroll", buf.Bytes()); err != nil {
		return fmt.Errorf("failed to archive payroll export: %w", err)
	}
	if _, err := w.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("failed to write payroll export: %w", err)
	}
	return nil
}
