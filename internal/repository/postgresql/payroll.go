package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/hris-dashboard-go/internal/domain/payroll"
	"github.com/cmlabs-hris/hris-dashboard-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

const payrollColumns = `id, employee_id, month, basic_salary, allowances, deductions, overtime_hours,
	overtime_pay, tax_deduction, insurance_deduction, provident_fund, net_salary, created_at, updated_at`

type payrollRepositoryImpl struct {
	db *database.DB
}

func NewPayrollRepository(db *database.DB) payroll.PayrollRepository {
	return &payrollRepositoryImpl{db: db}
}

func scanPayrollRecord(row pgx.Row) (payroll.PayrollRecord, error) {
	var r payroll.PayrollRecord
	var month string
	err := row.Scan(
		&r.ID, &r.EmployeeID, &month, &r.BasicSalary, &r.Allowances, &r.Deductions, &r.OvertimeHours,
		&r.OvertimePay, &r.TaxDeduction, &r.InsuranceDeduction, &r.ProvidentFund, &r.NetSalary,
		&r.CreatedAt, &r.UpdatedAt,
	)
	r.Month = payroll.Month(month)
	return r, err
}

// List implements payroll.PayrollRepository.
func (p *payrollRepositoryImpl) List(ctx context.Context, filter payroll.Filter) ([]payroll.PayrollRecord, error) {
	q := GetQuerier(ctx, p.db)

	baseWhere := "TRUE"
	args := []interface{}{}
	argIdx := 1

	if filter.EmployeeID != nil {
		baseWhere += fmt.Sprintf(" AND employee_id = $%d", argIdx)
		args = append(args, *filter.EmployeeID)
		argIdx++
	}
	if filter.Month != nil {
		baseWhere += fmt.Sprintf(" AND month = $%d", argIdx)
		args = append(args, filter.Month.String())
		argIdx++
	}
	if filter.Year != nil {
		baseWhere += fmt.Sprintf(" AND month LIKE $%d", argIdx)
		args = append(args, fmt.Sprintf("%04d-%%", *filter.Year))
	}

	rows, err := q.Query(ctx, "SELECT "+payrollColumns+" FROM payroll_records WHERE "+baseWhere+" ORDER BY id", args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list payroll records: %w", mapError(err))
	}
	defer rows.Close()

	records := make([]payroll.PayrollRecord, 0)
	for rows.Next() {
		r, err := scanPayrollRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payroll record: %w", err)
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list payroll records: %w", mapError(err))
	}
	return records, nil
}

// GetByID implements payroll.PayrollRepository.
func (p *payrollRepositoryImpl) GetByID(ctx context.Context, id int64) (payroll.PayrollRecord, error) {
	q := GetQuerier(ctx, p.db)

	r, err := scanPayrollRecord(q.QueryRow(ctx, "SELECT "+payrollColumns+" FROM payroll_records WHERE id = $1", id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.PayrollRecord{}, payroll.ErrPayrollRecordNotFound
		}
		return payroll.PayrollRecord{}, fmt.Errorf("failed to get payroll record %d: %w", id, mapError(err))
	}
	return r, nil
}

// GetByEmployeeAndMonth implements payroll.PayrollRepository.
func (p *payrollRepositoryImpl) GetByEmployeeAndMonth(ctx context.Context, employeeID int64, month payroll.Month) (payroll.PayrollRecord, error) {
	q := GetQuerier(ctx, p.db)

	query := "SELECT " + payrollColumns + " FROM payroll_records WHERE employee_id = $1 AND month = $2"
	r, err := scanPayrollRecord(q.QueryRow(ctx, query, employeeID, month.String()))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.PayrollRecord{}, payroll.ErrPayrollRecordNotFound
		}
		return payroll.PayrollRecord{}, fmt.Errorf("failed to get payroll record: %w", mapError(err))
	}
	return r, nil
}

// Create implements payroll.PayrollRepository.
func (p *payrollRepositoryImpl) Create(ctx context.Context, record payroll.PayrollRecord) (payroll.PayrollRecord, error) {
	q := GetQuerier(ctx, p.db)

	query := `
		INSERT INTO payroll_records (
			employee_id, month, basic_salary, allowances, deductions, overtime_hours,
			overtime_pay, tax_deduction, insurance_deduction, provident_fund, net_salary
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING ` + payrollColumns

	created, err := scanPayrollRecord(q.QueryRow(ctx, query,
		record.EmployeeID, record.Month.String(), record.BasicSalary, record.Allowances, record.Deductions,
		record.OvertimeHours, record.OvertimePay, record.TaxDeduction, record.InsuranceDeduction,
		record.ProvidentFund, record.NetSalary,
	))
	if err != nil {
		return payroll.PayrollRecord{}, fmt.Errorf("failed to create payroll record: %w", mapError(err))
	}
	return created, nil
}

// Update implements payroll.PayrollRepository.
func (p *payrollRepositoryImpl) Update(ctx context.Context, record payroll.PayrollRecord) (payroll.PayrollRecord, error) {
	q := GetQuerier(ctx, p.db)

	query := `
		UPDATE payroll_records
		SET employee_id = $2, month = $3, basic_salary = $4, allowances = $5, deductions = $6,
			overtime_hours = $7, overtime_pay = $8, tax_deduction = $9, insurance_deduction = $10,
			provident_fund = $11, net_salary = $12, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + payrollColumns

	updated, err := scanPayrollRecord(q.QueryRow(ctx, query,
		record.ID, record.EmployeeID, record.Month.String(), record.BasicSalary, record.Allowances,
		record.Deductions, record.OvertimeHours, record.OvertimePay, record.TaxDeduction,
		record.InsuranceDeduction, record.ProvidentFund, record.NetSalary,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.PayrollRecord{}, payroll.ErrPayrollRecordNotFound
		}
		return payroll.PayrollRecord{}, fmt.Errorf("failed to update payroll record %d: %w", record.ID, mapError(err))
	}
	return updated, nil
}

// Delete implements payroll.PayrollRepository.
func (p *payrollRepositoryImpl) Delete(ctx context.Context, id int64) error {
	q := GetQuerier(ctx, p.db)

	tag, err := q.Exec(ctx, "DELETE FROM payroll_records WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete payroll record %d: %w", id, mapError(err))
	}
	if tag.RowsAffected() == 0 {
		return payroll.ErrPayrollRecordNotFound
	}
	return nil
}

// DeleteByEmployeeID implements payroll.PayrollRepository.
func (p *payrollRepositoryImpl) DeleteByEmployeeID(ctx context.Context, employeeID int64) error {
	q := GetQuerier(ctx, p.db)

	if _, err := q.Exec(ctx, "DELETE FROM payroll_records WHERE employee_id = $1", employeeID); err != nil {
		return fmt.Errorf("failed to delete payroll records of employee %d: %w", employeeID, mapError(err))
	}
	return nil
}
