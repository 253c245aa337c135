package leave

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/cmlabs-hris/hris-dashboard-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-dashboard-go/internal/domain/leave"
	"github.com/cmlabs-hris/hris-dashboard-go/internal/pkg/validator"
)

// Create implements leave.LeaveService.
func (s *LeaveServiceImpl) Create(ctx context.Context, req leave.CreateLeaveRequest) (leave.LeaveRequest, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveRequest{}, err
	}

	if _, err := s.employeeRepo.GetByID(ctx, req.EmployeeID); err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return leave.LeaveRequest{}, validator.FieldError("employee_id", "employee not found")
		}
		return leave.LeaveRequest{}, fmt.Errorf("failed to get employee: %w", err)
	}

	leaveType, _ := leave.ParseType(req.Type)
	start, _ := validator.IsValidDate(req.StartDate)
	end, _ := validator.IsValidDate(req.EndDate)

	newRequest := leave.LeaveRequest{
		EmployeeID:  req.EmployeeID,
		Type:        leaveType,
		StartDate:   start,
		EndDate:     end,
		Reason:      strings.TrimSpace(req.Reason),
		Status:      leave.StatusPending,
		RequestDate: s.clock.Now().UTC(),
		Days:        leave.CountDays(start, end),
	}

	created, err := s.leaveRequestRepo.Create(ctx, newRequest)
	if err != nil {
		return leave.LeaveRequest{}, fmt.Errorf("failed to create leave request: %w", err)
	}

	slog.Info("Created leave request", "leave_request_id", created.ID, "employee_id", created.EmployeeID, "days", created.Days)
	return created, nil
}

// Approve implements leave.LeaveService.
func (s *LeaveServiceImpl) Approve(ctx context.Context, id int64, approverID int64) (leave.LeaveRequest, error) {
	return s.decide(ctx, id, approverID, leave.StatusApproved)
}

// Reject implements leave.LeaveService.
func (s *LeaveServiceImpl) Reject(ctx context.Context, id int64, approverID int64) (leave.LeaveRequest, error) {
	return s.decide(ctx, id, approverID, leave.StatusRejected)
}

func (s *LeaveServiceImpl) decide(ctx context.Context, id, approverID int64, status leave.Status) (leave.LeaveRequest, error) {
	decision := leave.DecisionRequest{ApproverID: approverID}
	if err := decision.Validate(); err != nil {
		return leave.LeaveRequest{}, err
	}

	request, err := s.getRequest(ctx, id)
	if err != nil {
		return leave.LeaveRequest{}, err
	}

	if request.Status.Processed() && !s.allowRedecision {
		return leave.LeaveRequest{}, leave.ErrLeaveRequestAlreadyProcessed
	}

	if _, err := s.employeeRepo.GetByID(ctx, approverID); err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return leave.LeaveRequest{}, validator.FieldError("approver_id", "employee not found")
		}
		return leave.LeaveRequest{}, fmt.Errorf("failed to get approver: %w", err)
	}

	now := s.clock.Now().UTC()
	request.Status = status
	request.ApproverID = &approverID
	request.ApprovalDate = &now

	updated, err := s.leaveRequestRepo.Update(ctx, request)
	if err != nil {
		if errors.Is(err, leave.ErrLeaveRequestNotFound) {
			return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
		}
		return leave.LeaveRequest{}, fmt.Errorf("failed to update leave request status: %w", err)
	}

	slog.Info("Leave request decided", "leave_request_id", id, "status", status, "approver_id", approverID)
	return updated, nil
}

// Update implements leave.LeaveService.
func (s *LeaveServiceImpl) Update(ctx context.Context, id int64, req leave.UpdateLeaveRequest) (leave.LeaveRequest, error) {
	request, err := s.getRequest(ctx, id)
	if err != nil {
		return leave.LeaveRequest{}, err
	}
	if request.Status.Processed() {
		return leave.LeaveRequest{}, leave.ErrLeaveRequestAlreadyProcessed
	}

	if err := req.Apply(&request); err != nil {
		return leave.LeaveRequest{}, err
	}

	updated, err := s.leaveRequestRepo.Update(ctx, request)
	if err != nil {
		if errors.Is(err, leave.ErrLeaveRequestNotFound) {
			return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
		}
		return leave.LeaveRequest{}, fmt.Errorf("failed to update leave request: %w", err)
	}
	return updated, nil
}

// Delete implements leave.LeaveService.
func (s *LeaveServiceImpl) Delete(ctx context.Context, id int64) error {
	if err := s.leaveRequestRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, leave.ErrLeaveRequestNotFound) {
			return leave.ErrLeaveRequestNotFound
		}
		return fmt.Errorf("failed to delete leave request: %w", err)
	}
	return nil
}
