package payroll

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/cmlabs-hris/hris-dashboard-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-dashboard-go/internal/domain/payroll"
	"github.com/cmlabs-hris/hris-dashboard-go/internal/pkg/clock"
	"github.com/cmlabs-hris/hris-dashboard-go/internal/pkg/validator"
	"github.com/cmlabs-hris/hris-dashboard-go/internal/service/file"
)

type PayrollServiceImpl struct {
	payrollRepo  payroll.PayrollRepository
	employeeRepo employee.EmployeeRepository
	employees    employee.Lookup
	fileService  file.FileService
	clock        clock.Clock
	location     *time.Location
}

func NewPayrollService(
	payrollRepo payroll.PayrollRepository,
	employeeRepo employee.EmployeeRepository,
	employees employee.Lookup,
	fileService file.FileService,
	c clock.Clock,
	location *time.Location,
) payroll.PayrollService {
	return &PayrollServiceImpl{
		payrollRepo:  payrollRepo,
		employeeRepo: employeeRepo,
		employees:    employees,
		fileService:  fileService,
		clock:        c,
		location:     location,
	}
}

func (s *PayrollServiceImpl) currentMonth() payroll.Month {
	loc := s.location
	if loc == nil {
		loc = time.UTC
	}
	return payroll.MonthOf(s.clock.Now().In(loc))
}

// Create implements payroll.PayrollService.
func (s *PayrollServiceImpl) Create(ctx context.Context, req payroll.CreatePayrollRecordRequest) (payroll.PayrollRecord, error) {
	if err := req.Validate(); err != nil {
		return payroll.PayrollRecord{}, err
	}

	if _, err := s.employeeRepo.GetByID(ctx, req.EmployeeID); err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return payroll.PayrollRecord{}, validator.FieldError("employee_id", "employee not found")
		}
		return payroll.PayrollRecord{}, fmt.Errorf("failed to get employee: %w", err)
	}

	created, err := s.payrollRepo.Create(ctx, req.ToRecord())
	if err != nil {
		return payroll.PayrollRecord{}, fmt.Errorf("failed to create payroll record: %w", err)
	}

	slog.Info("Created payroll record", "payroll_id", created.ID, "employee_id", created.EmployeeID, "month", created.Month)
	return created, nil
}

// Update implements payroll.PayrollService.
func (s *PayrollServiceImpl) Update(ctx context.Context, id int64, req payroll.UpdatePayrollRecordRequest) (payroll.PayrollRecord, error) {
	if err := req.Validate(); err != nil {
		return payroll.PayrollRecord{}, err
	}

	record, err := s.getRecord(ctx, id)
	if err != nil {
		return payroll.PayrollRecord{}, err
	}

	req.Apply(&record)

	updated, err := s.payrollRepo.Update(ctx, record)
	if err != nil {
		if errors.Is(err, payroll.ErrPayrollRecordNotFound) {
			return payroll.PayrollRecord{}, payroll.ErrPayrollRecordNotFound
		}
		return payroll.PayrollRecord{}, fmt.Errorf("failed to update payroll record: %w", err)
	}
	return updated, nil
}

// Delete implements payroll.PayrollService.
func (s *PayrollServiceImpl) Delete(ctx context.Context, id int64) error {
	if err := s.payrollRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, payroll.ErrPayrollRecordNotFound) {
			return payroll.ErrPayrollRecordNotFound
		}
		return fmt.Errorf("failed to delete payroll record: %w", err)
	}
	return nil
}

// GetByID implements payroll.PayrollService.
func (s *PayrollServiceImpl) GetByID(ctx context.Context, id int64) (payroll.PayrollRecordWithEmployee, error) {
	record, err := s.getRecord(ctx, id)
	if err != nil {
		return payroll.PayrollRecordWithEmployee{}, err
	}
	return s.withEmployees(ctx, []payroll.PayrollRecord{record})[0], nil
}

// List implements payroll.PayrollService.
func (s *PayrollServiceImpl) List(ctx context.Context) ([]payroll.PayrollRecordWithEmployee, error) {
	return s.list(ctx, payroll.Filter{})
}

// GetByEmployeeID implements payroll.PayrollService.
func (s *PayrollServiceImpl) GetByEmployeeID(ctx context.Context, employeeID int64, year *int) ([]payroll.PayrollRecordWithEmployee, error) {
	return s.list(ctx, payroll.Filter{EmployeeID: &employeeID, Year: year})
}

// GetSalaryHistory implements payroll.PayrollService.
func (s *PayrollServiceImpl) GetSalaryHistory(ctx context.Context, employeeID int64) ([]payroll.PayrollRecordWithEmployee, error) {
	records, err := s.list(ctx, payroll.Filter{EmployeeID: &employeeID})
	if err != nil {
		return nil, err
	}
	sort.SliceStable(records, func(i, j int) bool { return records[i].Month > records[j].Month })
	return records, nil
}

// GetCurrentMonthPayroll implements payroll.PayrollService.
func (s *PayrollServiceImpl) GetCurrentMonthPayroll(ctx context.Context) ([]payroll.PayrollRecordWithEmployee, error) {
	month := s.currentMonth()
	return s.list(ctx, payroll.Filter{Month: &month})
}

// GetPayrollStats implements payroll.PayrollService. A nil month covers
// every record.
func (s *PayrollServiceImpl) GetPayrollStats(ctx context.Context, month *payroll.Month) (payroll.Stats, error) {
	records, err := s.payrollRepo.List(ctx, payroll.Filter{Month: month})
	if err != nil {
		slog.Warn("Failed to load payroll stats", "error", err)
		return payroll.ComputeStats(nil), nil
	}
	return payroll.ComputeStats(records), nil
}

// GetAvailableMonths implements payroll.PayrollService.
func (s *PayrollServiceImpl) GetAvailableMonths(ctx context.Context) ([]payroll.Month, error) {
	records, err := s.payrollRepo.List(ctx, payroll.Filter{})
	if err != nil {
		slog.Warn("Failed to list payroll months", "error", err)
		return []payroll.Month{}, nil
	}
	return payroll.DistinctMonths(records), nil
}

func (s *PayrollServiceImpl) list(ctx context.Context, filter payroll.Filter) ([]payroll.PayrollRecordWithEmployee, error) {
	records, err := s.payrollRepo.List(ctx, filter)
	if err != nil {
		slog.Warn("Failed to list payroll records", "error", err)
		return []payroll.PayrollRecordWithEmployee{}, nil
	}
	return s.withEmployees(ctx, records), nil
}

func (s *PayrollServiceImpl) getRecord(ctx context.Context, id int64) (payroll.PayrollRecord, error) {
	record, err := s.payrollRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, payroll.ErrPayrollRecordNotFound) {
			return payroll.PayrollRecord{}, payroll.ErrPayrollRecordNotFound
		}
		return payroll.PayrollRecord{}, fmt.Errorf("failed to get payroll record: %w", err)
	}
	return record, nil
}

func (s *PayrollServiceImpl) withEmployees(ctx context.Context, records []payroll.PayrollRecord) []payroll.PayrollRecordWithEmployee {
	ids := make([]int64, 0, len(records))
	for _, r := range records {
		ids = append(ids, r.EmployeeID)
	}

	byID, err := s.employees.GetByIDs(ctx, ids)
	if err != nil {
		slog.Warn("Failed to resolve employees for payroll", "error", err)
		byID = nil
	}

	out := make([]payroll.PayrollRecordWithEmployee, 0, len(records))
	for _, r := range records {
		joined := payroll.PayrollRecordWithEmployee{PayrollRecord: r}
		if e, ok := byID[r.EmployeeID]; ok {
			e := e
			joined.Employee = &e
		}
		out = append(out, joined)
	}
	return out
}
