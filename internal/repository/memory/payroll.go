package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/cmlabs-hris/hris-dashboard-go/internal/domain/payroll"
	"github.com/cmlabs-hris/hris-dashboard-go/internal/pkg/clock"
	"github.com/cmlabs-hris/hris-dashboard-go/internal/pkg/validator"
)

type payrollKey struct {
	employeeID int64
	month      payroll.Month
}

type payrollRepository struct {
	mu      sync.RWMutex
	nextID  int64
	rows    map[int64]payroll.PayrollRecord
	byMonth map[payrollKey]int64
	clock   clock.Clock
}

func NewPayrollRepository(c clock.Clock) payroll.PayrollRepository {
	return &payrollRepository{
		nextID:  1,
		rows:    make(map[int64]payroll.PayrollRecord),
		byMonth: make(map[payrollKey]int64),
		clock:   c,
	}
}

func (r *payrollRepository) List(ctx context.Context, filter payroll.Filter) ([]payroll.PayrollRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]payroll.PayrollRecord, 0)
	for _, rec := range r.rows {
		if filter.Matches(rec) {
			out = append(out, rec)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *payrollRepository) GetByID(ctx context.Context, id int64) (payroll.PayrollRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.rows[id]
	if !ok {
		return payroll.PayrollRecord{}, payroll.ErrPayrollRecordNotFound
	}
	return rec, nil
}

func (r *payrollRepository) GetByEmployeeAndMonth(ctx context.Context, employeeID int64, month payroll.Month) (payroll.PayrollRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byMonth[payrollKey{employeeID, month}]
	if !ok {
		return payroll.PayrollRecord{}, payroll.ErrPayrollRecordNotFound
	}
	return r.rows[id], nil
}

func (r *payrollRepository) Create(ctx context.Context, rec payroll.PayrollRecord) (payroll.PayrollRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := payrollKey{rec.EmployeeID, rec.Month}
	if _, exists := r.byMonth[key]; exists {
		return payroll.PayrollRecord{}, validator.FieldError("month", "payroll record already exists for this employee and month")
	}

	now := r.clock.Now().UTC()
	rec.ID = r.nextID
	rec.CreatedAt = now
	rec.UpdatedAt = now
	r.nextID++

	r.rows[rec.ID] = rec
	r.byMonth[key] = rec.ID
	return rec, nil
}

func (r *payrollRepository) Update(ctx context.Context, rec payroll.PayrollRecord) (payroll.PayrollRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.rows[rec.ID]
	if !ok {
		return payroll.PayrollRecord{}, payroll.ErrPayrollRecordNotFound
	}

	oldKey := payrollKey{current.EmployeeID, current.Month}
	newKey := payrollKey{rec.EmployeeID, rec.Month}
	if oldKey != newKey {
		if _, exists := r.byMonth[newKey]; exists {
			return payroll.PayrollRecord{}, validator.FieldError("month", "payroll record already exists for this employee and month")
		}
		delete(r.byMonth, oldKey)
		r.byMonth[newKey] = rec.ID
	}

	rec.CreatedAt = current.CreatedAt
	rec.UpdatedAt = r.clock.Now().UTC()
	r.rows[rec.ID] = rec
	return rec, nil
}

func (r *payrollRepository) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.rows[id]
	if !ok {
		return payroll.ErrPayrollRecordNotFound
	}
	delete(r.byMonth, payrollKey{rec.EmployeeID, rec.Month})
	delete(r.rows, id)
	return nil
}

func (r *payrollRepository) DeleteByEmployeeID(ctx context.Context, employeeID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var removed []payroll.PayrollRecord
	for id, rec := range r.rows {
		if rec.EmployeeID == employeeID {
			delete(r.byMonth, payrollKey{rec.EmployeeID, rec.Month})
			delete(r.rows, id)
			removed = append(removed, rec)
		}
	}

	recordUndo(ctx, func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		for _, rec := range removed {
			r.rows[rec.ID] = rec
			r.byMonth[payrollKey{rec.EmployeeID, rec.Month}] = rec.ID
		}
	})
	return nil
}
