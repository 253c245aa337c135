package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/hris-dashboard-go/internal/domain/leave"
	"github.com/cmlabs-hris/hris-dashboard-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

const leaveRequestColumns = `id, employee_id, approver_id, type, start_date, end_date, reason, status,
	request_date, approval_date, days, created_at, updated_at`

type leaveRequestRepositoryImpl struct {
	db *database.DB
}

func NewLeaveRequestRepository(db *database.DB) leave.LeaveRequestRepository {
	return &leaveRequestRepositoryImpl{db: db}
}

func scanLeaveRequest(row pgx.Row) (leave.LeaveRequest, error) {
	var r leave.LeaveRequest
	var leaveType, status string
	err := row.Scan(
		&r.ID, &r.EmployeeID, &r.ApproverID, &leaveType, &r.StartDate, &r.EndDate, &r.Reason, &status,
		&r.RequestDate, &r.ApprovalDate, &r.Days, &r.CreatedAt, &r.UpdatedAt,
	)
	r.Type = leave.Type(leaveType)
	r.Status = leave.Status(status)
	return r, err
}

// List implements leave.LeaveRequestRepository.
func (l *leaveRequestRepositoryImpl) List(ctx context.Context, filter leave.Filter) ([]leave.LeaveRequest, error) {
	q := GetQuerier(ctx, l.db)

	baseWhere := "TRUE"
	args := []interface{}{}
	argIdx := 1

	if filter.EmployeeID != nil {
		baseWhere += fmt.Sprintf(" AND employee_id = $%d", argIdx)
		args = append(args, *filter.EmployeeID)
		argIdx++
	}
	if filter.Status != nil {
		baseWhere += fmt.Sprintf(" AND status = $%d", argIdx)
		args = append(args, string(*filter.Status))
		argIdx++
	}
	if filter.Type != nil {
		baseWhere += fmt.Sprintf(" AND type = $%d", argIdx)
		args = append(args, string(*filter.Type))
	}

	rows, err := q.Query(ctx, "SELECT "+leaveRequestColumns+" FROM leave_requests WHERE "+baseWhere+" ORDER BY id", args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave requests: %w", mapError(err))
	}
	defer rows.Close()

	requests := make([]leave.LeaveRequest, 0)
	for rows.Next() {
		r, err := scanLeaveRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan leave request: %w", err)
		}
		requests = append(requests, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list leave requests: %w", mapError(err))
	}
	return requests, nil
}

// GetByID implements leave.LeaveRequestRepository.
func (l *leaveRequestRepositoryImpl) GetByID(ctx context.Context, id int64) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, l.db)

	r, err := scanLeaveRequest(q.QueryRow(ctx, "SELECT "+leaveRequestColumns+" FROM leave_requests WHERE id = $1", id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
		}
		return leave.LeaveRequest{}, fmt.Errorf("failed to get leave request %d: %w", id, mapError(err))
	}
	return r, nil
}

// Create implements leave.LeaveRequestRepository.
func (l *leaveRequestRepositoryImpl) Create(ctx context.Context, req leave.LeaveRequest) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, l.db)

	query := `
		INSERT INTO leave_requests (
			employee_id, approver_id, type, start_date, end_date, reason, status,
			request_date, approval_date, days
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING ` + leaveRequestColumns

	created, err := scanLeaveRequest(q.QueryRow(ctx, query,
		req.EmployeeID, req.ApproverID, string(req.Type), req.StartDate, req.EndDate, req.Reason,
		string(req.Status), req.RequestDate, req.ApprovalDate, req.Days,
	))
	if err != nil {
		return leave.LeaveRequest{}, fmt.Errorf("failed to create leave request: %w", mapError(err))
	}
	return created, nil
}

// Update implements leave.LeaveRequestRepository.
func (l *leaveRequestRepositoryImpl) Update(ctx context.Context, req leave.LeaveRequest) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, l.db)

	query := `
		UPDATE leave_requests
		SET approver_id = $2, type = $3, start_date = $4, end_date = $5, reason = $6, status = $7,
			approval_date = $8, days = $9, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + leaveRequestColumns

	updated, err := scanLeaveRequest(q.QueryRow(ctx, query,
		req.ID, req.ApproverID, string(req.Type), req.StartDate, req.EndDate, req.Reason,
		string(req.Status), req.ApprovalDate, req.Days,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
		}
		return leave.LeaveRequest{}, fmt.Errorf("failed to update leave request %d: %w", req.ID, mapError(err))
	}
	return updated, nil
}

// Delete implements leave.LeaveRequestRepository.
func (l *leaveRequestRepositoryImpl) Delete(ctx context.Context, id int64) error {
	q := GetQuerier(ctx, l.db)

	tag, err := q.Exec(ctx, "DELETE FROM leave_requests WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete leave request %d: %w", id, mapError(err))
	}
	if tag.RowsAffected() == 0 {
		return leave.ErrLeaveRequestNotFound
	}
	return nil
}

// DeleteByEmployeeID implements leave.LeaveRequestRepository.
func (l *leaveRequestRepositoryImpl) DeleteByEmployeeID(ctx context.Context, employeeID int64) error {
	q := GetQuerier(ctx, l.db)

	if _, err := q.Exec(ctx, "DELETE FROM leave_requests WHERE employee_id = $1", employeeID); err != nil {
		return fmt.Errorf("failed to delete leave requests of employee %d: %w", employeeID, mapError(err))
	}
	return nil
}
