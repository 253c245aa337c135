package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/cmlabs-hris/hris-dashboard-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-dashboard-go/internal/pkg/clock"
)

type employeeRepository struct {
	mu     sync.RWMutex
	nextID int64
	rows   map[int64]employee.Employee
	clock  clock.Clock
}

func NewEmployeeRepository(c clock.Clock) employee.Directory {
	return &employeeRepository{
		nextID: 1,
		rows:   make(map[int64]employee.Employee),
		clock:  c,
	}
}

func (r *employeeRepository) List(ctx context.Context, filter employee.Filter) ([]employee.Employee, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]employee.Employee, 0, len(r.rows))
	for _, e := range r.rows {
		if filter.Matches(e) {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *employeeRepository) GetByID(ctx context.Context, id int64) (employee.Employee, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.rows[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return e, nil
}

func (r *employeeRepository) GetByIDs(ctx context.Context, ids []int64) (map[int64]employee.Employee, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[int64]employee.Employee, len(ids))
	for _, id := range ids {
		if e, ok := r.rows[id]; ok {
			out[id] = e
		}
	}
	return out, nil
}

func (r *employeeRepository) Create(ctx context.Context, newEmployee employee.Employee) (employee.Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.clock.Now().UTC()
	newEmployee.ID = r.nextID
	newEmployee.EmployeeCode = employee.FormatCode(newEmployee.ID)
	newEmployee.CreatedAt = now
	newEmployee.UpdatedAt = now
	r.nextID++

	r.rows[newEmployee.ID] = newEmployee
	return newEmployee, nil
}

func (r *employeeRepository) Update(ctx context.Context, e employee.Employee) (employee.Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.rows[e.ID]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	e.EmployeeCode = current.EmployeeCode
	e.CreatedAt = current.CreatedAt
	e.UpdatedAt = r.clock.Now().UTC()

	r.rows[e.ID] = e
	return e, nil
}

func (r *employeeRepository) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	removed, ok := r.rows[id]
	if !ok {
		return employee.ErrEmployeeNotFound
	}
	delete(r.rows, id)

	// Subordinates lose their manager, matching ON DELETE SET NULL in postgres.
	var orphaned []int64
	for subID, e := range r.rows {
		if e.ManagerID != nil && *e.ManagerID == id {
			e.ManagerID = nil
			r.rows[subID] = e
			orphaned = append(orphaned, subID)
		}
	}

	recordUndo(ctx, func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		r.rows[id] = removed
		for _, subID := range orphaned {
			if e, ok := r.rows[subID]; ok {
				managerID := id
				e.ManagerID = &managerID
				r.rows[subID] = e
			}
		}
	})
	return nil
}
