package employee

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/cmlabs-hris/hris-dashboard-go/internal/config"
	"github.com/cmlabs-hris/hris-dashboard-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-dashboard-go/internal/pkg/clock"
	"github.com/cmlabs-hris/hris-dashboard-go/internal/pkg/validator"
	"github.com/cmlabs-hris/hris-dashboard-go/internal/service/file"
	"github.com/shopspring/decimal"
)

type EmployeeServiceImpl struct {
	employeeRepo employee.EmployeeRepository
	transactor   employee.Transactor
	fileService  file.FileService
	clock        clock.Clock
	location     *time.Location
	deletePolicy config.DeletePolicy
	dependents   []employee.DependentRecordsRemover
}

func NewEmployeeService(
	employeeRepo employee.EmployeeRepository,
	transactor employee.Transactor,
	fileService file.FileService,
	c clock.Clock,
	location *time.Location,
	deletePolicy config.DeletePolicy,
	dependents ...employee.DependentRecordsRemover,
) employee.EmployeeService {
	return &EmployeeServiceImpl{
		employeeRepo: employeeRepo,
		transactor:   transactor,
		fileService:  fileService,
		clock:        c,
		location:     location,
		deletePolicy: deletePolicy,
		dependents:   dependents,
	}
}

// List implements employee.EmployeeService.
func (s *EmployeeServiceImpl) List(ctx context.Context) ([]employee.Employee, error) {
	employees, err := s.employeeRepo.List(ctx, employee.Filter{})
	if err != nil {
		slog.Warn("Failed to list employees", "error", err)
		return []employee.Employee{}, nil
	}
	return employees, nil
}

// GetByID implements employee.EmployeeService.
func (s *EmployeeServiceImpl) GetByID(ctx context.Context, id int64) (employee.Employee, error) {
	e, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee: %w", err)
	}
	return e, nil
}

// Create implements employee.EmployeeService.
func (s *EmployeeServiceImpl) Create(ctx context.Context, req employee.CreateEmployeeRequest) (employee.Employee, error) {
	if err := req.Validate(); err != nil {
		return employee.Employee{}, err
	}

	if req.ManagerID != nil {
		if err := s.checkManager(ctx, 0, *req.ManagerID); err != nil {
			return employee.Employee{}, err
		}
	}

	salary := decimal.Zero
	if req.Salary != nil {
		salary = *req.Salary
	}

	newEmployee := employee.Employee{
		FirstName:        strings.TrimSpace(req.FirstName),
		LastName:         strings.TrimSpace(req.LastName),
		Email:            strings.TrimSpace(req.Email),
		Phone:            req.Phone,
		Department:       req.Department,
		Role:             req.Role,
		JoinDate:         clock.DayKey(s.clock.Now(), s.location),
		Status:           employee.StatusActive,
		Salary:           salary,
		Address:          req.Address,
		EmergencyContact: req.EmergencyContact,
		ManagerID:        req.ManagerID,
	}

	created, err := s.employeeRepo.Create(ctx, newEmployee)
	if err != nil {
		return employee.Employee{}, fmt.Errorf("failed to create employee: %w", err)
	}

	slog.Info("Created employee", "employee_id", created.ID, "employee_code", created.EmployeeCode)
	return created, nil
}

// Update implements employee.EmployeeService.
func (s *EmployeeServiceImpl) Update(ctx context.Context, id int64, req employee.UpdateEmployeeRequest) (employee.Employee, error) {
	if err := req.Validate(); err != nil {
		return employee.Employee{}, err
	}

	current, err := s.GetByID(ctx, id)
	if err != nil {
		return employee.Employee{}, err
	}

	if req.ManagerID != nil {
		if err := s.checkManager(ctx, id, *req.ManagerID); err != nil {
			return employee.Employee{}, err
		}
	}

	req.Apply(&current)

	updated, err := s.employeeRepo.Update(ctx, current)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to update employee: %w", err)
	}
	return updated, nil
}

// Delete implements employee.EmployeeService.
func (s *EmployeeServiceImpl) Delete(ctx context.Context, id int64) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}

	err := s.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		if s.deletePolicy == config.DeletePolicyCascade {
			for _, dep := range s.dependents {
				if err := dep.DeleteByEmployeeID(ctx, id); err != nil {
					return fmt.Errorf("failed to delete records of employee %d: %w", id, err)
				}
			}
		}

		if err := s.employeeRepo.Delete(ctx, id); err != nil {
			if errors.Is(err, employee.ErrEmployeeNotFound) {
				return employee.ErrEmployeeNotFound
			}
			return fmt.Errorf("failed to delete employee: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	slog.Info("Deleted employee", "employee_id", id, "policy", s.deletePolicy)
	return nil
}

// Search implements employee.EmployeeService.
func (s *EmployeeServiceImpl) Search(ctx context.Context, query string, filter employee.SearchFilter) ([]employee.Employee, error) {
	f, err := filter.ToFilter(query)
	if err != nil {
		return nil, err
	}

	employees, err := s.employeeRepo.List(ctx, f)
	if err != nil {
		slog.Warn("Failed to search employees", "query", query, "error", err)
		return []employee.Employee{}, nil
	}
	return employees, nil
}

// GetStats implements employee.EmployeeService.
func (s *EmployeeServiceImpl) GetStats(ctx context.Context) (employee.EmployeeStats, error) {
	employees, err := s.employeeRepo.List(ctx, employee.Filter{})
	if err != nil {
		slog.Warn("Failed to load employee stats", "error", err)
		return employee.ComputeStats(nil), nil
	}
	return employee.ComputeStats(employees), nil
}

// GetDepartments implements employee.EmployeeService.
func (s *EmployeeServiceImpl) GetDepartments(ctx context.Context) ([]string, error) {
	return s.distinct(ctx, func(e employee.Employee) string { return e.Department })
}

// GetRoles implements employee.EmployeeService.
func (s *EmployeeServiceImpl) GetRoles(ctx context.Context) ([]string, error) {
	return s.distinct(ctx, func(e employee.Employee) string { return e.Role })
}

func (s *EmployeeServiceImpl) distinct(ctx context.Context, field func(employee.Employee) string) ([]string, error) {
	employees, err := s.employeeRepo.List(ctx, employee.Filter{})
	if err != nil {
		slog.Warn("Failed to list employees", "error", err)
		return []string{}, nil
	}

	seen := make(map[string]struct{})
	values := make([]string, 0)
	for _, e := range employees {
		v := field(e)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		values = append(values, v)
	}
	sort.Strings(values)
	return values, nil
}

// UploadAvatar implements employee.EmployeeService.
func (s *EmployeeServiceImpl) UploadAvatar(ctx context.Context, id int64, file io.Reader, filename string) (employee.Employee, error) {
	current, err := s.GetByID(ctx, id)
	if err != nil {
		return employee.Employee{}, err
	}

	avatarURL, err := s.fileService.UploadAvatar(ctx, id, file, filename)
	if err != nil {
		return employee.Employee{}, fmt.Errorf("failed to upload avatar: %w", err)
	}

	current.AvatarURL = &avatarURL
	updated, err := s.employeeRepo.Update(ctx, current)
	if err != nil {
		return employee.Employee{}, fmt.Errorf("failed to update avatar URL: %w", err)
	}
	return updated, nil
}

func (s *EmployeeServiceImpl) checkManager(ctx context.Context, id, managerID int64) error {
	if id != 0 && id == managerID {
		return validator.FieldError("manager_id", employee.ErrSelfManager.Error())
	}
	if _, err := s.employeeRepo.GetByID(ctx, managerID); err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return validator.FieldError("manager_id", employee.ErrManagerNotFound.Error())
		}
		return fmt.Errorf("failed to get manager: %w", err)
	}
	return nil
}
