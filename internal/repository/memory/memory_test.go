package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cmlabs-hris/hris-dashboard-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-dashboard-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-dashboard-go/internal/domain/leave"
	"github.com/cmlabs-hris/hris-dashboard-go/internal/domain/payroll"
	"github.com/cmlabs-hris/hris-dashboard-go/internal/pkg/clock"
	"github.com/cmlabs-hris/hris-dashboard-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

func TestEmployeeRepository_CreateAssignsIDAndCode(t *testing.T) {
	ctx := context.Background()
	repo := NewEmployeeRepository(clock.NewFixed(testNow))

	first, err := repo.Create(ctx, employee.Employee{FirstName: "Ana"})
	require.NoError(t, err)
	second, err := repo.Create(ctx, employee.Employee{FirstName: "Budi"})
	require.NoError(t, err)

	assert.Equal(t, int64(1), first.ID)
	assert.Equal(t, "EMP001", first.EmployeeCode)
	assert.Equal(t, int64(2), second.ID)
	assert.Equal(t, "EMP002", second.EmployeeCode)
	assert.Equal(t, testNow, first.CreatedAt)
}

func TestEmployeeRepository_UpdateKeepsCode(t *testing.T) {
	ctx := context.Background()
	repo := NewEmployeeRepository(clock.NewFixed(testNow))
	created, err := repo.Create(ctx, employee.Employee{FirstName: "Ana"})
	require.NoError(t, err)

	created.EmployeeCode = "HACKED"
	created.FirstName = "Anna"
	updated, err := repo.Update(ctx, created)
	require.NoError(t, err)
	assert.Equal(t, "EMP001", updated.EmployeeCode)
	assert.Equal(t, "Anna", updated.FirstName)

	_, err = repo.Update(ctx, employee.Employee{ID: 99})
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestEmployeeRepository_GetByIDsSkipsUnknown(t *testing.T) {
	ctx := context.Background()
	repo := NewEmployeeRepository(clock.NewFixed(testNow))
	_, err := repo.Create(ctx, employee.Employee{FirstName: "Ana"})
	require.NoError(t, err)

	found, err := repo.GetByIDs(ctx, []int64{1, 42})
	require.NoError(t, err)
	assert.Len(t, found, 1)
	assert.Equal(t, "Ana", found[1].FirstName)
}

func TestEmployeeRepository_Delete(t *testing.T) {
	ctx := context.Background()
	repo := NewEmployeeRepository(clock.NewFixed(testNow))
	_, err := repo.Create(ctx, employee.Employee{FirstName: "Ana"})
	require.NoError(t, err)

	require.NoError(t, repo.Delete(ctx, 1))
	assert.ErrorIs(t, repo.Delete(ctx, 1), employee.ErrEmployeeNotFound)
	_, err = repo.GetByID(ctx, 1)
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestEmployeeRepository_DeleteClearsSubordinateManager(t *testing.T) {
	ctx := context.Background()
	repo := NewEmployeeRepository(clock.NewFixed(testNow))
	manager, err := repo.Create(ctx, employee.Employee{FirstName: "Ana"})
	require.NoError(t, err)
	managerID := manager.ID
	report, err := repo.Create(ctx, employee.Employee{FirstName: "Budi", ManagerID: &managerID})
	require.NoError(t, err)

	require.NoError(t, repo.Delete(ctx, manager.ID))

	got, err := repo.GetByID(ctx, report.ID)
	require.NoError(t, err)
	assert.Nil(t, got.ManagerID)
}

func TestAttendanceRepository_UniquePerEmployeeAndDate(t *testing.T) {
	ctx := context.Background()
	repo := NewAttendanceRepository(clock.NewFixed(testNow))
	day := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	_, err := repo.Create(ctx, attendance.Attendance{EmployeeID: 1, Date: day, Status: attendance.StatusAbsent})
	require.NoError(t, err)

	_, err = repo.Create(ctx, attendance.Attendance{EmployeeID: 1, Date: day})
	ve, ok := validator.AsValidationErrors(err)
	require.True(t, ok)
	assert.Equal(t, "date", ve[0].Field)

	_, err = repo.Create(ctx, attendance.Attendance{EmployeeID: 2, Date: day})
	assert.NoError(t, err)

	found, err := repo.GetByEmployeeAndDate(ctx, 1, day)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, attendance.StatusAbsent, found.Status)

	missing, err := repo.GetByEmployeeAndDate(ctx, 3, day)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestAttendanceRepository_DeleteByEmployeeIDFreesDay(t *testing.T) {
	ctx := context.Background()
	repo := NewAttendanceRepository(clock.NewFixed(testNow))
	day := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	_, err := repo.Create(ctx, attendance.Attendance{EmployeeID: 1, Date: day})
	require.NoError(t, err)
	require.NoError(t, repo.DeleteByEmployeeID(ctx, 1))

	list, err := repo.List(ctx, attendance.Filter{})
	require.NoError(t, err)
	assert.Empty(t, list)

	_, err = repo.Create(ctx, attendance.Attendance{EmployeeID: 1, Date: day})
	assert.NoError(t, err)
}

func TestLeaveRequestRepository_ListFilters(t *testing.T) {
	ctx := context.Background()
	repo := NewLeaveRequestRepository(clock.NewFixed(testNow))

	for _, req := range []leave.LeaveRequest{
		{EmployeeID: 1, Type: leave.TypeSick, Status: leave.StatusPending},
		{EmployeeID: 1, Type: leave.TypeAnnual, Status: leave.StatusApproved},
		{EmployeeID: 2, Type: leave.TypeSick, Status: leave.StatusPending},
	} {
		_, err := repo.Create(ctx, req)
		require.NoError(t, err)
	}

	pending := leave.StatusPending
	list, err := repo.List(ctx, leave.Filter{Status: &pending})
	require.NoError(t, err)
	assert.Len(t, list, 2)

	emp := int64(1)
	list, err = repo.List(ctx, leave.Filter{EmployeeID: &emp})
	require.NoError(t, err)
	assert.Len(t, list, 2)
	assert.Equal(t, int64(1), list[0].ID)

	_, err = repo.GetByID(ctx, 99)
	assert.ErrorIs(t, err, leave.ErrLeaveRequestNotFound)
}

func TestPayrollRepository_UniquePerEmployeeAndMonth(t *testing.T) {
	ctx := context.Background()
	repo := NewPayrollRepository(clock.NewFixed(testNow))

	rec := payroll.PayrollRecord{EmployeeID: 1, Month: "2024-03", BasicSalary: decimal.NewFromInt(3000)}
	created, err := repo.Create(ctx, rec)
	require.NoError(t, err)

	_, err = repo.Create(ctx, rec)
	ve, ok := validator.AsValidationErrors(err)
	require.True(t, ok)
	assert.Equal(t, "month", ve[0].Field)

	other, err := repo.Create(ctx, payroll.PayrollRecord{EmployeeID: 1, Month: "2024-02"})
	require.NoError(t, err)

	other.Month = "2024-03"
	_, err = repo.Update(ctx, other)
	_, ok = validator.AsValidationErrors(err)
	assert.True(t, ok)

	found, err := repo.GetByEmployeeAndMonth(ctx, 1, "2024-03")
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)

	_, err = repo.GetByEmployeeAndMonth(ctx, 2, "2024-03")
	assert.ErrorIs(t, err, payroll.ErrPayrollRecordNotFound)
}

func TestTransactor_RollbackRestoresDeletedRows(t *testing.T) {
	ctx := context.Background()
	c := clock.NewFixed(testNow)
	employees := NewEmployeeRepository(c)
	leaves := NewLeaveRequestRepository(c)
	payrolls := NewPayrollRepository(c)

	manager, err := employees.Create(ctx, employee.Employee{FirstName: "Ana"})
	require.NoError(t, err)
	managerID := manager.ID
	report, err := employees.Create(ctx, employee.Employee{FirstName: "Budi", ManagerID: &managerID})
	require.NoError(t, err)
	_, err = leaves.Create(ctx, leave.LeaveRequest{EmployeeID: manager.ID, Type: leave.TypeSick, Status: leave.StatusPending})
	require.NoError(t, err)
	_, err = payrolls.Create(ctx, payroll.PayrollRecord{EmployeeID: manager.ID, Month: "2024-03"})
	require.NoError(t, err)

	boom := errors.New("boom")
	err = NewTransactor().WithinTransaction(ctx, func(ctx context.Context) error {
		require.NoError(t, leaves.DeleteByEmployeeID(ctx, manager.ID))
		require.NoError(t, payrolls.DeleteByEmployeeID(ctx, manager.ID))
		require.NoError(t, employees.Delete(ctx, manager.ID))
		return boom
	})
	assert.ErrorIs(t, err, boom)

	_, err = employees.GetByID(ctx, manager.ID)
	require.NoError(t, err)
	got, err := employees.GetByID(ctx, report.ID)
	require.NoError(t, err)
	require.NotNil(t, got.ManagerID)
	assert.Equal(t, manager.ID, *got.ManagerID)

	list, err := leaves.List(ctx, leave.Filter{})
	require.NoError(t, err)
	assert.Len(t, list, 1)

	_, err = payrolls.GetByEmployeeAndMonth(ctx, manager.ID, "2024-03")
	assert.NoError(t, err)
}

func TestTransactor_CommitKeepsDeletes(t *testing.T) {
	ctx := context.Background()
	c := clock.NewFixed(testNow)
	employees := NewEmployeeRepository(c)
	created, err := employees.Create(ctx, employee.Employee{FirstName: "Ana"})
	require.NoError(t, err)

	tx := NewTransactor()
	err = tx.WithinTransaction(ctx, func(ctx context.Context) error {
		return tx.WithinTransaction(ctx, func(ctx context.Context) error {
			return employees.Delete(ctx, created.ID)
		})
	})
	require.NoError(t, err)

	_, err = employees.GetByID(ctx, created.ID)
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}
