package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/hris-dashboard-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-dashboard-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

const attendanceColumns = `id, employee_id, date, clock_in, clock_out, status, total_hours, break_minutes, created_at, updated_at`

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}

func scanAttendance(row pgx.Row) (attendance.Attendance, error) {
	var a attendance.Attendance
	var status string
	err := row.Scan(
		&a.ID, &a.EmployeeID, &a.Date, &a.ClockIn, &a.ClockOut, &status,
		&a.TotalHours, &a.BreakMinutes, &a.CreatedAt, &a.UpdatedAt,
	)
	a.Status = attendance.Status(status)
	return a, err
}

// List implements attendance.AttendanceRepository.
func (a *attendanceRepository) List(ctx context.Context, filter attendance.Filter) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	baseWhere := "TRUE"
	args := []interface{}{}
	argIdx := 1

	if filter.EmployeeID != nil {
		baseWhere += fmt.Sprintf(" AND employee_id = $%d", argIdx)
		args = append(args, *filter.EmployeeID)
		argIdx++
	}
	if filter.Date != nil {
		baseWhere += fmt.Sprintf(" AND date = $%d", argIdx)
		args = append(args, *filter.Date)
		argIdx++
	}
	if filter.From != nil {
		baseWhere += fmt.Sprintf(" AND date >= $%d", argIdx)
		args = append(args, *filter.From)
		argIdx++
	}
	if filter.To != nil {
		baseWhere += fmt.Sprintf(" AND date <= $%d", argIdx)
		args = append(args, *filter.To)
	}

	rows, err := q.Query(ctx, "SELECT "+attendanceColumns+" FROM attendances WHERE "+baseWhere+" ORDER BY date DESC, id", args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendances: %w", mapError(err))
	}
	defer rows.Close()

	records := make([]attendance.Attendance, 0)
	for rows.Next() {
		rec, err := scanAttendance(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list attendances: %w", mapError(err))
	}
	return records, nil
}

// GetByID implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetByID(ctx context.Context, id int64) (attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	rec, err := scanAttendance(q.QueryRow(ctx, "SELECT "+attendanceColumns+" FROM attendances WHERE id = $1", id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Attendance{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Attendance{}, fmt.Errorf("failed to get attendance %d: %w", id, mapError(err))
	}
	return rec, nil
}

// GetByEmployeeAndDate implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetByEmployeeAndDate(ctx context.Context, employeeID int64, date time.Time) (*attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := "SELECT " + attendanceColumns + " FROM attendances WHERE employee_id = $1 AND date = $2 LIMIT 1"
	rec, err := scanAttendance(q.QueryRow(ctx, query, employeeID, date))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // No existing attendance found
		}
		return nil, fmt.Errorf("failed to get attendance by employee and date: %w", mapError(err))
	}
	return &rec, nil
}

// Create implements attendance.AttendanceRepository.
func (a *attendanceRepository) Create(ctx context.Context, newAttendance attendance.Attendance) (attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		INSERT INTO attendances (employee_id, date, clock_in, clock_out, status, total_hours, break_minutes)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + attendanceColumns

	created, err := scanAttendance(q.QueryRow(ctx, query,
		newAttendance.EmployeeID, newAttendance.Date, newAttendance.ClockIn, newAttendance.ClockOut,
		string(newAttendance.Status), newAttendance.TotalHours, newAttendance.BreakMinutes,
	))
	if err != nil {
		return attendance.Attendance{}, fmt.Errorf("failed to create attendance: %w", mapError(err))
	}
	return created, nil
}

// Update implements attendance.AttendanceRepository.
func (a *attendanceRepository) Update(ctx context.Context, rec attendance.Attendance) (attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		UPDATE attendances
		SET employee_id = $2, date = $3, clock_in = $4, clock_out = $5, status = $6,
			total_hours = $7, break_minutes = $8, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + attendanceColumns

	updated, err := scanAttendance(q.QueryRow(ctx, query,
		rec.ID, rec.EmployeeID, rec.Date, rec.ClockIn, rec.ClockOut, string(rec.Status),
		rec.TotalHours, rec.BreakMinutes,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Attendance{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Attendance{}, fmt.Errorf("failed to update attendance %d: %w", rec.ID, mapError(err))
	}
	return updated, nil
}

// Delete implements attendance.AttendanceRepository.
func (a *attendanceRepository) Delete(ctx context.Context, id int64) error {
	q := GetQuerier(ctx, a.db)

	tag, err := q.Exec(ctx, "DELETE FROM attendances WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete attendance %d: %w", id, mapError(err))
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrAttendanceNotFound
	}
	return nil
}

// DeleteByEmployeeID implements attendance.AttendanceRepository.
func (a *attendanceRepository) DeleteByEmployeeID(ctx context.Context, employeeID int64) error {
	q := GetQuerier(ctx, a.db)

	if _, err := q.Exec(ctx, "DELETE FROM attendances WHERE employee_id = $1", employeeID); err != nil {
		return fmt.Errorf("failed to delete attendances of employee %d: %w", employeeID, mapError(err))
	}
	return nil
}
