package leave

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/hris-dashboard-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-dashboard-go/internal/domain/leave"
	"github.com/cmlabs-hris/hris-dashboard-go/internal/pkg/clock"
	"github.com/cmlabs-hris/hris-dashboard-go/internal/pkg/database"
	"github.com/cmlabs-hris/hris-dashboard-go/internal/pkg/validator"
	"github.com/cmlabs-hris/hris-dashboard-go/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

type fixture struct {
	svc       leave.LeaveService
	clock     *clock.Fixed
	employees employee.Directory
}

func newFixture(t *testing.T, allowRedecision bool) fixture {
	t.Helper()
	c := clock.NewFixed(testNow)
	employees := memory.NewEmployeeRepository(c)
	svc := NewLeaveService(memory.NewLeaveRequestRepository(c), employees, employees, c, time.UTC, allowRedecision)
	return fixture{svc: svc, clock: c, employees: employees}
}

func (f fixture) addEmployee(t *testing.T, first string) employee.Employee {
	t.Helper()
	e, err := f.employees.Create(context.Background(), employee.Employee{FirstName: first, LastName: "Lee", Status: employee.StatusActive})
	require.NoError(t, err)
	return e
}

func sickLeave(employeeID int64) leave.CreateLeaveRequest {
	return leave.CreateLeaveRequest{
		EmployeeID: employeeID,
		Type:       string(leave.TypeSick),
		StartDate:  "2024-03-01",
		EndDate:    "2024-03-03",
		Reason:     "Flu",
	}
}

func TestLeaveService_Create(t *testing.T) {
	f := newFixture(t, false)
	ana := f.addEmployee(t, "Ana")

	req, err := f.svc.Create(context.Background(), sickLeave(ana.ID))
	require.NoError(t, err)

	assert.Equal(t, 3, req.Days)
	assert.Equal(t, leave.StatusPending, req.Status)
	assert.Equal(t, testNow, req.RequestDate)
	assert.Nil(t, req.ApprovalDate)
	assert.Nil(t, req.ApproverID)
}

func TestLeaveService_Create_ReportsEachField(t *testing.T) {
	f := newFixture(t, false)

	_, err := f.svc.Create(context.Background(), leave.CreateLeaveRequest{
		Type:      "Holiday",
		StartDate: "2024-03-05",
		EndDate:   "2024-03-01",
	})
	ve, ok := validator.AsValidationErrors(err)
	require.True(t, ok)

	fields := ve.ToMap()
	assert.Contains(t, fields, "employee_id")
	assert.Contains(t, fields, "type")
	assert.Contains(t, fields, "end_date")
	assert.Contains(t, fields, "reason")
}

func TestLeaveService_Create_UnknownEmployee(t *testing.T) {
	f := newFixture(t, false)
	_, err := f.svc.Create(context.Background(), sickLeave(42))
	ve, ok := validator.AsValidationErrors(err)
	require.True(t, ok)
	assert.Equal(t, "employee_id", ve[0].Field)
}

func TestLeaveService_ApproveUpdatesBalance(t *testing.T) {
	f := newFixture(t, false)
	ctx := context.Background()
	ana := f.addEmployee(t, "Ana")
	manager := f.addEmployee(t, "Maya")

	req, err := f.svc.Create(ctx, sickLeave(ana.ID))
	require.NoError(t, err)

	f.clock.Advance(time.Hour)
	approved, err := f.svc.Approve(ctx, req.ID, manager.ID)
	require.NoError(t, err)
	assert.Equal(t, leave.StatusApproved, approved.Status)
	require.NotNil(t, approved.ApprovalDate)
	assert.Equal(t, testNow.Add(time.Hour), *approved.ApprovalDate)
	assert.Equal(t, manager.ID, *approved.ApproverID)

	balance, err := f.svc.GetLeaveBalance(ctx, ana.ID)
	require.NoError(t, err)
	assert.Len(t, balance.Balances, 4)
	assert.Equal(t, 2024, balance.Year)
	assert.Equal(t, 7, balance.For(leave.TypeSick).Remaining)
	assert.Equal(t, 25, balance.For(leave.TypeAnnual).Remaining)
}

func TestLeaveService_AlreadyProcessed(t *testing.T) {
	f := newFixture(t, false)
	ctx := context.Background()
	ana := f.addEmployee(t, "Ana")

	req, err := f.svc.Create(ctx, sickLeave(ana.ID))
	require.NoError(t, err)
	_, err = f.svc.Reject(ctx, req.ID, ana.ID)
	require.NoError(t, err)

	_, err = f.svc.Approve(ctx, req.ID, ana.ID)
	assert.ErrorIs(t, err, leave.ErrLeaveRequestAlreadyProcessed)

	reason := "changed"
	_, err = f.svc.Update(ctx, req.ID, leave.UpdateLeaveRequest{Reason: &reason})
	assert.ErrorIs(t, err, leave.ErrLeaveRequestAlreadyProcessed)
}

func TestLeaveService_RedecisionAllowed(t *testing.T) {
	f := newFixture(t, true)
	ctx := context.Background()
	ana := f.addEmployee(t, "Ana")

	req, err := f.svc.Create(ctx, sickLeave(ana.ID))
	require.NoError(t, err)
	_, err = f.svc.Reject(ctx, req.ID, ana.ID)
	require.NoError(t, err)

	f.clock.Advance(24 * time.Hour)
	approved, err := f.svc.Approve(ctx, req.ID, ana.ID)
	require.NoError(t, err)
	assert.Equal(t, leave.StatusApproved, approved.Status)
	assert.Equal(t, testNow.Add(24*time.Hour), *approved.ApprovalDate)
}

func TestLeaveService_DecisionErrors(t *testing.T) {
	f := newFixture(t, false)

	_, err := f.svc.Approve(context.Background(), 99, 1)
	assert.ErrorIs(t, err, leave.ErrLeaveRequestNotFound)

	_, err = f.svc.Reject(context.Background(), 99, 0)
	ve, ok := validator.AsValidationErrors(err)
	require.True(t, ok)
	assert.Equal(t, "approver_id", ve[0].Field)

	ana := f.addEmployee(t, "Ana")
	req, err := f.svc.Create(context.Background(), sickLeave(ana.ID))
	require.NoError(t, err)

	_, err = f.svc.Approve(context.Background(), req.ID, 404)
	ve, ok = validator.AsValidationErrors(err)
	require.True(t, ok)
	assert.Equal(t, "approver_id", ve[0].Field)

	stored, err := f.svc.GetByID(context.Background(), req.ID)
	require.NoError(t, err)
	assert.Equal(t, leave.StatusPending, stored.Status)
	assert.Nil(t, stored.ApproverID)
}

func TestLeaveService_PendingJoinsEmployee(t *testing.T) {
	f := newFixture(t, false)
	ctx := context.Background()
	ana := f.addEmployee(t, "Ana")
	budi := f.addEmployee(t, "Budi")

	first, err := f.svc.Create(ctx, sickLeave(ana.ID))
	require.NoError(t, err)
	_, err = f.svc.Create(ctx, sickLeave(budi.ID))
	require.NoError(t, err)
	_, err = f.svc.Approve(ctx, first.ID, budi.ID)
	require.NoError(t, err)

	pending, err := f.svc.GetPendingRequests(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "Budi", pending[0].Employee.FirstName)

	all, err := f.svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	require.NotNil(t, all[0].Approver)
	assert.Equal(t, budi.ID, all[0].Approver.ID)
}

func TestLeaveService_GetLeaveStats(t *testing.T) {
	f := newFixture(t, false)
	ctx := context.Background()
	ana := f.addEmployee(t, "Ana")

	first, err := f.svc.Create(ctx, sickLeave(ana.ID))
	require.NoError(t, err)
	annual := sickLeave(ana.ID)
	annual.Type = string(leave.TypeAnnual)
	_, err = f.svc.Create(ctx, annual)
	require.NoError(t, err)
	_, err = f.svc.Approve(ctx, first.ID, ana.ID)
	require.NoError(t, err)

	stats, err := f.svc.GetLeaveStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.TotalRequests)
	assert.Equal(t, 1, stats.Pending)
	assert.Equal(t, 1, stats.Approved)
	assert.Equal(t, 1, stats.TypeStats[leave.TypeAnnual])
}

func TestLeaveService_UpdateRecomputesDays(t *testing.T) {
	f := newFixture(t, false)
	ctx := context.Background()
	ana := f.addEmployee(t, "Ana")

	req, err := f.svc.Create(ctx, sickLeave(ana.ID))
	require.NoError(t, err)

	end := "2024-03-07"
	updated, err := f.svc.Update(ctx, req.ID, leave.UpdateLeaveRequest{EndDate: &end})
	require.NoError(t, err)
	assert.Equal(t, 7, updated.Days)

	bad := "2024-02-01"
	_, err = f.svc.Update(ctx, req.ID, leave.UpdateLeaveRequest{EndDate: &bad})
	_, ok := validator.AsValidationErrors(err)
	assert.True(t, ok)
}

func TestLeaveService_Delete(t *testing.T) {
	f := newFixture(t, false)
	ctx := context.Background()
	ana := f.addEmployee(t, "Ana")

	req, err := f.svc.Create(ctx, sickLeave(ana.ID))
	require.NoError(t, err)
	require.NoError(t, f.svc.Delete(ctx, req.ID))

	_, err = f.svc.GetByID(ctx, req.ID)
	assert.ErrorIs(t, err, leave.ErrLeaveRequestNotFound)
	assert.ErrorIs(t, f.svc.Delete(ctx, req.ID), leave.ErrLeaveRequestNotFound)
}

type failingLeaveRepo struct {
	leave.LeaveRequestRepository
}

func (failingLeaveRepo) List(ctx context.Context, filter leave.Filter) ([]leave.LeaveRequest, error) {
	return nil, database.ErrStorageUnavailable
}

func TestLeaveService_ReadsDegrade(t *testing.T) {
	c := clock.NewFixed(testNow)
	employees := memory.NewEmployeeRepository(c)
	svc := NewLeaveService(failingLeaveRepo{}, employees, employees, c, time.UTC, false)
	ctx := context.Background()

	pending, err := svc.GetPendingRequests(ctx)
	require.NoError(t, err)
	assert.Empty(t, pending)

	stats, err := svc.GetLeaveStats(ctx)
	require.NoError(t, err)
	assert.Zero(t, stats.TotalRequests)

	balance, err := svc.GetLeaveBalance(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 25, balance.For(leave.TypeAnnual).Remaining)
}
