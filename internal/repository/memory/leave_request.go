package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/cmlabs-hris/hris-dashboard-go/internal/domain/leave"
	"github.com/cmlabs-hris/hris-dashboard-go/internal/pkg/clock"
)

type leaveRequestRepository struct {
	mu     sync.RWMutex
	nextID int64
	rows   map[int64]leave.LeaveRequest
	clock  clock.Clock
}

func NewLeaveRequestRepository(c clock.Clock) leave.LeaveRequestRepository {
	return &leaveRequestRepository{
		nextID: 1,
		rows:   make(map[int64]leave.LeaveRequest),
		clock:  c,
	}
}

func (r *leaveRequestRepository) List(ctx context.Context, filter leave.Filter) ([]leave.LeaveRequest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]leave.LeaveRequest, 0)
	for _, req := range r.rows {
		if filter.Matches(req) {
			out = append(out, req)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *leaveRequestRepository) GetByID(ctx context.Context, id int64) (leave.LeaveRequest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	req, ok := r.rows[id]
	if !ok {
		return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
	}
	return req, nil
}

func (r *leaveRequestRepository) Create(ctx context.Context, req leave.LeaveRequest) (leave.LeaveRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.clock.Now().UTC()
	req.ID = r.nextID
	req.CreatedAt = now
	req.UpdatedAt = now
	r.nextID++

	r.rows[req.ID] = req
	return req, nil
}

func (r *leaveRequestRepository) Update(ctx context.Context, req leave.LeaveRequest) (leave.LeaveRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.rows[req.ID]
	if !ok {
		return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
	}
	req.CreatedAt = current.CreatedAt
	req.UpdatedAt = r.clock.Now().UTC()

	r.rows[req.ID] = req
	return req, nil
}

func (r *leaveRequestRepository) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.rows[id]; !ok {
		return leave.ErrLeaveRequestNotFound
	}
	delete(r.rows, id)
	return nil
}

func (r *leaveRequestRepository) DeleteByEmployeeID(ctx context.Context, employeeID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var removed []leave.LeaveRequest
	for id, req := range r.rows {
		if req.EmployeeID == employeeID {
			delete(r.rows, id)
			removed = append(removed, req)
		}
	}

	recordUndo(ctx, func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		for _, req := range removed {
			r.rows[req.ID] = req
		}
	})
	return nil
}
