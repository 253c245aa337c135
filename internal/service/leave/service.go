package leave

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/hris-dashboard-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-dashboard-go/internal/domain/leave"
	"github.com/cmlabs-hris/hris-dashboard-go/internal/pkg/clock"
)

type LeaveServiceImpl struct {
	leaveRequestRepo leave.LeaveRequestRepository
	employeeRepo     employee.EmployeeRepository
	employees        employee.Lookup
	clock            clock.Clock
	location         *time.Location
	allowRedecision  bool
}

func NewLeaveService(
	leaveRequestRepo leave.LeaveRequestRepository,
	employeeRepo employee.EmployeeRepository,
	employees employee.Lookup,
	c clock.Clock,
	location *time.Location,
	allowRedecision bool,
) leave.LeaveService {
	return &LeaveServiceImpl{
		leaveRequestRepo: leaveRequestRepo,
		employeeRepo:     employeeRepo,
		employees:        employees,
		clock:            c,
		location:         location,
		allowRedecision:  allowRedecision,
	}
}

// GetPendingRequests implements leave.LeaveService.
func (s *LeaveServiceImpl) GetPendingRequests(ctx context.Context) ([]leave.LeaveRequestWithEmployee, error) {
	pending := leave.StatusPending
	requests, err := s.leaveRequestRepo.List(ctx, leave.Filter{Status: &pending})
	if err != nil {
		slog.Warn("Failed to list pending leave requests", "error", err)
		return []leave.LeaveRequestWithEmployee{}, nil
	}
	return s.withEmployees(ctx, requests), nil
}

// GetLeaveBalance implements leave.LeaveService.
func (s *LeaveServiceImpl) GetLeaveBalance(ctx context.Context, employeeID int64) (leave.Balance, error) {
	year := s.clock.Now().In(s.loc()).Year()

	requests, err := s.leaveRequestRepo.List(ctx, leave.Filter{EmployeeID: &employeeID})
	if err != nil {
		slog.Warn("Failed to load leave balance", "employee_id", employeeID, "error", err)
		return leave.ComputeBalance(employeeID, year, nil), nil
	}
	return leave.ComputeBalance(employeeID, year, requests), nil
}

// GetLeaveStats implements leave.LeaveService.
func (s *LeaveServiceImpl) GetLeaveStats(ctx context.Context) (leave.Stats, error) {
	requests, err := s.leaveRequestRepo.List(ctx, leave.Filter{})
	if err != nil {
		slog.Warn("Failed to load leave stats", "error", err)
		return leave.ComputeStats(nil), nil
	}
	return leave.ComputeStats(requests), nil
}

// List implements leave.LeaveService.
func (s *LeaveServiceImpl) List(ctx context.Context) ([]leave.LeaveRequestWithEmployee, error) {
	requests, err := s.leaveRequestRepo.List(ctx, leave.Filter{})
	if err != nil {
		slog.Warn("Failed to list leave requests", "error", err)
		return []leave.LeaveRequestWithEmployee{}, nil
	}
	return s.withEmployees(ctx, requests), nil
}

// GetByID implements leave.LeaveService.
func (s *LeaveServiceImpl) GetByID(ctx context.Context, id int64) (leave.LeaveRequestWithEmployee, error) {
	request, err := s.getRequest(ctx, id)
	if err != nil {
		return leave.LeaveRequestWithEmployee{}, err
	}
	return s.withEmployees(ctx, []leave.LeaveRequest{request})[0], nil
}

// GetByEmployeeID implements leave.LeaveService.
func (s *LeaveServiceImpl) GetByEmployeeID(ctx context.Context, employeeID int64) ([]leave.LeaveRequestWithEmployee, error) {
	requests, err := s.leaveRequestRepo.List(ctx, leave.Filter{EmployeeID: &employeeID})
	if err != nil {
		slog.Warn("Failed to list employee leave requests", "employee_id", employeeID, "error", err)
		return []leave.LeaveRequestWithEmployee{}, nil
	}
	return s.withEmployees(ctx, requests), nil
}

func (s *LeaveServiceImpl) getRequest(ctx context.Context, id int64) (leave.LeaveRequest, error) {
	request, err := s.leaveRequestRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, leave.ErrLeaveRequestNotFound) {
			return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
		}
		return leave.LeaveRequest{}, fmt.Errorf("failed to get leave request: %w", err)
	}
	return request, nil
}

func (s *LeaveServiceImpl) loc() *time.Location {
	if s.location == nil {
		return time.UTC
	}
	return s.location
}

// withEmployees resolves requesters and approvers in one lookup.
func (s *LeaveServiceImpl) withEmployees(ctx context.Context, requests []leave.LeaveRequest) []leave.LeaveRequestWithEmployee {
	ids := make([]int64, 0, len(requests))
	for _, r := range requests {
		ids = append(ids, r.EmployeeID)
		if r.ApproverID != nil {
			ids = append(ids, *r.ApproverID)
		}
	}

	byID, err := s.employees.GetByIDs(ctx, ids)
	if err != nil {
		slog.Warn("Failed to resolve employees for leave requests", "error", err)
		byID = nil
	}

	out := make([]leave.LeaveRequestWithEmployee, 0, len(requests))
	for _, r := range requests {
		joined := leave.LeaveRequestWithEmployee{LeaveRequest: r}
		if e, ok := byID[r.EmployeeID]; ok {
			e := e
			joined.Employee = &e
		}
		if r.ApproverID != nil {
			if a, ok := byID[*r.ApproverID]; ok {
				a := a
				joined.Approver = &a
			}
		}
		out = append(out, joined)
	}
	return out
}
