package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/cmlabs-hris/hris-dashboard-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-dashboard-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

const employeeColumns = `id, employee_code, first_name, last_name, email, phone, department, role,
	join_date, status, salary, address, emergency_contact, manager_id, avatar_url, created_at, updated_at`

type employeeRepositoryImpl struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.Directory {
	return &employeeRepositoryImpl{db: db}
}

func scanEmployee(row pgx.Row) (employee.Employee, error) {
	var e employee.Employee
	var status string
	err := row.Scan(
		&e.ID, &e.EmployeeCode, &e.FirstName, &e.LastName, &e.Email, &e.Phone, &e.Department, &e.Role,
		&e.JoinDate, &status, &e.Salary, &e.Address, &e.EmergencyContact, &e.ManagerID, &e.AvatarURL,
		&e.CreatedAt, &e.UpdatedAt,
	)
	e.Status = employee.Status(status)
	return e, err
}

// List implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) List(ctx context.Context, filter employee.Filter) ([]employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	baseWhere := "TRUE"
	args := []interface{}{}
	argIdx := 1

	if filter.Department != "" {
		baseWhere += fmt.Sprintf(" AND department = $%d", argIdx)
		args = append(args, filter.Department)
		argIdx++
	}
	if filter.Role != "" {
		baseWhere += fmt.Sprintf(" AND role = $%d", argIdx)
		args = append(args, filter.Role)
		argIdx++
	}
	if filter.Status != nil {
		baseWhere += fmt.Sprintf(" AND status = $%d", argIdx)
		args = append(args, string(*filter.Status))
		argIdx++
	}
	if len(filter.IDs) > 0 {
		baseWhere += fmt.Sprintf(" AND id = ANY($%d)", argIdx)
		args = append(args, filter.IDs)
		argIdx++
	}
	if query := strings.TrimSpace(filter.Query); query != "" {
		baseWhere += fmt.Sprintf(
			" AND (first_name ILIKE $%[1]d OR last_name ILIKE $%[1]d OR email ILIKE $%[1]d OR employee_code ILIKE $%[1]d)",
			argIdx,
		)
		args = append(args, "%"+escapeLike(query)+"%")
	}

	rows, err := q.Query(ctx, "SELECT "+employeeColumns+" FROM employees WHERE "+baseWhere+" ORDER BY id", args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", mapError(err))
	}
	defer rows.Close()

	employees := make([]employee.Employee, 0)
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", mapError(err))
	}
	return employees, nil
}

// GetByID implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) GetByID(ctx context.Context, id int64) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	e, err := scanEmployee(q.QueryRow(ctx, "SELECT "+employeeColumns+" FROM employees WHERE id = $1", id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee %d: %w", id, mapError(err))
	}
	return e, nil
}

// GetByIDs implements employee.Lookup.
func (r *employeeRepositoryImpl) GetByIDs(ctx context.Context, ids []int64) (map[int64]employee.Employee, error) {
	out := make(map[int64]employee.Employee, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	employees, err := r.List(ctx, employee.Filter{IDs: ids})
	if err != nil {
		return nil, err
	}
	for _, e := range employees {
		out[e.ID] = e
	}
	return out, nil
}

// Create implements employee.EmployeeRepository. The id is drawn first so the
// employee code can be derived from it in the same insert.
func (r *employeeRepositoryImpl) Create(ctx context.Context, newEmployee employee.Employee) (employee.Employee, error) {
	var created employee.Employee
	err := WithTransaction(ctx, r.db, func(ctx context.Context) error {
		q := GetQuerier(ctx, r.db)

		var id int64
		if err := q.QueryRow(ctx, "SELECT nextval(pg_get_serial_sequence('employees', 'id'))").Scan(&id); err != nil {
			return mapError(err)
		}

		query := `
			INSERT INTO employees (
				id, employee_code, first_name, last_name, email, phone, department, role,
				join_date, status, salary, address, emergency_contact, manager_id, avatar_url
			) VALUES (
				$1, $2, $3, $4, $5, $6, $7, $8,
				$9, $10, $11, $12, $13, $14, $15
			)
			RETURNING ` + employeeColumns

		var err error
		created, err = scanEmployee(q.QueryRow(ctx, query,
			id, employee.FormatCode(id), newEmployee.FirstName, newEmployee.LastName, newEmployee.Email,
			newEmployee.Phone, newEmployee.Department, newEmployee.Role, newEmployee.JoinDate,
			string(newEmployee.Status), newEmployee.Salary, newEmployee.Address, newEmployee.EmergencyContact,
			newEmployee.ManagerID, newEmployee.AvatarURL,
		))
		return mapError(err)
	})
	if err != nil {
		return employee.Employee{}, fmt.Errorf("failed to insert employee: %w", err)
	}
	return created, nil
}

// Update implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) Update(ctx context.Context, e employee.Employee) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE employees
		SET first_name = $2, last_name = $3, email = $4, phone = $5, department = $6, role = $7,
			join_date = $8, status = $9, salary = $10, address = $11, emergency_contact = $12,
			manager_id = $13, avatar_url = $14, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + employeeColumns

	updated, err := scanEmployee(q.QueryRow(ctx, query,
		e.ID, e.FirstName, e.LastName, e.Email, e.Phone, e.Department, e.Role,
		e.JoinDate, string(e.Status), e.Salary, e.Address, e.EmergencyContact,
		e.ManagerID, e.AvatarURL,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to update employee %d: %w", e.ID, mapError(err))
	}
	return updated, nil
}

// Delete implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) Delete(ctx context.Context, id int64) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, "DELETE FROM employees WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete employee %d: %w", id, mapError(err))
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}
	return nil
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
