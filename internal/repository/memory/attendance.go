package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/cmlabs-hris/hris-dashboard-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-dashboard-go/internal/pkg/clock"
	"github.com/cmlabs-hris/hris-dashboard-go/internal/pkg/validator"
)

type attendanceKey struct {
	employeeID int64
	date       time.Time
}

type attendanceRepository struct {
	mu     sync.RWMutex
	nextID int64
	rows   map[int64]attendance.Attendance
	byDay  map[attendanceKey]int64
	clock  clock.Clock
}

func NewAttendanceRepository(c clock.Clock) attendance.AttendanceRepository {
	return &attendanceRepository{
		nextID: 1,
		rows:   make(map[int64]attendance.Attendance),
		byDay:  make(map[attendanceKey]int64),
		clock:  c,
	}
}

func (r *attendanceRepository) List(ctx context.Context, filter attendance.Filter) ([]attendance.Attendance, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]attendance.Attendance, 0)
	for _, a := range r.rows {
		if filter.Matches(a) {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.After(out[j].Date)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *attendanceRepository) GetByID(ctx context.Context, id int64) (attendance.Attendance, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.rows[id]
	if !ok {
		return attendance.Attendance{}, attendance.ErrAttendanceNotFound
	}
	return a, nil
}

func (r *attendanceRepository) GetByEmployeeAndDate(ctx context.Context, employeeID int64, date time.Time) (*attendance.Attendance, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byDay[attendanceKey{employeeID, date}]
	if !ok {
		return nil, nil
	}
	a := r.rows[id]
	return &a, nil
}

func (r *attendanceRepository) Create(ctx context.Context, a attendance.Attendance) (attendance.Attendance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := attendanceKey{a.EmployeeID, a.Date}
	if _, exists := r.byDay[key]; exists {
		return attendance.Attendance{}, validator.FieldError("date", "attendance already recorded for this employee on this date")
	}

	now := r.clock.Now().UTC()
	a.ID = r.nextID
	a.CreatedAt = now
	a.UpdatedAt = now
	r.nextID++

	r.rows[a.ID] = a
	r.byDay[key] = a.ID
	return a, nil
}

func (r *attendanceRepository) Update(ctx context.Context, a attendance.Attendance) (attendance.Attendance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.rows[a.ID]
	if !ok {
		return attendance.Attendance{}, attendance.ErrAttendanceNotFound
	}

	oldKey := attendanceKey{current.EmployeeID, current.Date}
	newKey := attendanceKey{a.EmployeeID, a.Date}
	if oldKey != newKey {
		if _, exists := r.byDay[newKey]; exists {
			return attendance.Attendance{}, validator.FieldError("date", "attendance already recorded for this employee on this date")
		}
		delete(r.byDay, oldKey)
		r.byDay[newKey] = a.ID
	}

	a.CreatedAt = current.CreatedAt
	a.UpdatedAt = r.clock.Now().UTC()
	r.rows[a.ID] = a
	return a, nil
}

func (r *attendanceRepository) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.rows[id]
	if !ok {
		return attendance.ErrAttendanceNotFound
	}
	delete(r.byDay, attendanceKey{a.EmployeeID, a.Date})
	delete(r.rows, id)
	return nil
}

func (r *attendanceRepository) DeleteByEmployeeID(ctx context.Context, employeeID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var removed []attendance.Attendance
	for id, a := range r.rows {
		if a.EmployeeID == employeeID {
			delete(r.byDay, attendanceKey{a.EmployeeID, a.Date})
			delete(r.rows, id)
			removed = append(removed, a)
		}
	}

	recordUndo(ctx, func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		for _, a := range removed {
			r.rows[a.ID] = a
			r.byDay[attendanceKey{a.EmployeeID, a.Date}] = a.ID
		}
	})
	return nil
}
