package attendance

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/hris-dashboard-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-dashboard-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-dashboard-go/internal/pkg/clock"
	"github.com/cmlabs-hris/hris-dashboard-go/internal/pkg/storage"
	"github.com/cmlabs-hris/hris-dashboard-go/internal/pkg/validator"
	"github.com/cmlabs-hris/hris-dashboard-go/internal/repository/memory"
	"github.com/cmlabs-hris/hris-dashboard-go/internal/service/file"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

var morning = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

type fixture struct {
	svc       attendance.AttendanceService
	clock     *clock.Fixed
	employees employee.Directory
	records   attendance.AttendanceRepository
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	c := clock.NewFixed(morning)
	local, err := storage.NewLocalStorage(t.TempDir(), "http://localhost:8080/uploads")
	require.NoError(t, err)

	employees := memory.NewEmployeeRepository(c)
	records := memory.NewAttendanceRepository(c)
	svc := NewAttendanceService(records, employees, employees, file.NewFileService(local), c, time.UTC)
	return fixture{svc: svc, clock: c, employees: employees, records: records}
}

func (f fixture) addEmployee(t *testing.T, first string, status employee.Status) employee.Employee {
	t.Helper()
	e, err := f.employees.Create(context.Background(), employee.Employee{
		FirstName:  first,
		LastName:   "Test",
		Email:      first + "@example.com",
		Department: "Engineering",
		Status:     status,
	})
	require.NoError(t, err)
	return e
}

func TestAttendanceService_ClockInClockOut(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	ana := f.addEmployee(t, "Ana", employee.StatusActive)

	in, err := f.svc.ClockIn(ctx, ana.ID)
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusClockedIn, in.Status)
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), in.Date)

	f.clock.Set(time.Date(2024, 3, 1, 17, 30, 0, 0, time.UTC))
	breakMins := 30.0
	out, err := f.svc.ClockOut(ctx, attendance.ClockOutRequest{EmployeeID: ana.ID, BreakMinutes: &breakMins})
	require.NoError(t, err)

	assert.Equal(t, in.ID, out.ID)
	assert.Equal(t, attendance.StatusPresent, out.Status)
	assert.Equal(t, 8.0, out.TotalHours)
	assert.Equal(t, 30.0, out.BreakMinutes)
}

func TestAttendanceService_ClockInTwice(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	ana := f.addEmployee(t, "Ana", employee.StatusActive)

	_, err := f.svc.ClockIn(ctx, ana.ID)
	require.NoError(t, err)
	_, err = f.svc.ClockIn(ctx, ana.ID)
	assert.ErrorIs(t, err, attendance.ErrAlreadyClockedIn)
}

func TestAttendanceService_ClockOutWithoutClockIn(t *testing.T) {
	f := newFixture(t)
	ana := f.addEmployee(t, "Ana", employee.StatusActive)

	_, err := f.svc.ClockOut(context.Background(), attendance.ClockOutRequest{EmployeeID: ana.ID})
	assert.ErrorIs(t, err, attendance.ErrNoActiveClockIn)
}

func TestAttendanceService_ClockOut_NegativeBreak(t *testing.T) {
	f := newFixture(t)
	negative := -5.0
	_, err := f.svc.ClockOut(context.Background(), attendance.ClockOutRequest{EmployeeID: 1, BreakMinutes: &negative})
	ve, ok := validator.AsValidationErrors(err)
	require.True(t, ok)
	assert.Equal(t, "break_minutes", ve[0].Field)
}

func TestAttendanceService_ClockIn_UnknownEmployee(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.ClockIn(context.Background(), 7)
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestAttendanceService_ClockInAgainOverwritesCompletedRecord(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	ana := f.addEmployee(t, "Ana", employee.StatusActive)

	first, err := f.svc.ClockIn(ctx, ana.ID)
	require.NoError(t, err)
	f.clock.Advance(2 * time.Hour)
	_, err = f.svc.ClockOut(ctx, attendance.ClockOutRequest{EmployeeID: ana.ID})
	require.NoError(t, err)

	f.clock.Advance(time.Hour)
	again, err := f.svc.ClockIn(ctx, ana.ID)
	require.NoError(t, err)

	assert.Equal(t, first.ID, again.ID)
	assert.Equal(t, attendance.StatusClockedIn, again.Status)
	assert.Nil(t, again.ClockOut)
	assert.Zero(t, again.TotalHours)
}

func TestAttendanceService_RecordBreak(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	ana := f.addEmployee(t, "Ana", employee.StatusActive)

	_, err := f.svc.RecordBreak(ctx, attendance.BreakRequest{EmployeeID: ana.ID, Minutes: 15})
	assert.ErrorIs(t, err, attendance.ErrNoActiveClockIn)

	_, err = f.svc.ClockIn(ctx, ana.ID)
	require.NoError(t, err)
	_, err = f.svc.RecordBreak(ctx, attendance.BreakRequest{EmployeeID: ana.ID, Minutes: 15})
	require.NoError(t, err)
	_, err = f.svc.RecordBreak(ctx, attendance.BreakRequest{EmployeeID: ana.ID, Minutes: 45})
	require.NoError(t, err)

	f.clock.Advance(5 * time.Hour)
	out, err := f.svc.ClockOut(ctx, attendance.ClockOutRequest{EmployeeID: ana.ID})
	require.NoError(t, err)
	assert.Equal(t, 60.0, out.BreakMinutes)
	assert.Equal(t, 4.0, out.TotalHours)
}

func TestAttendanceService_GetCurrentStatus(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	ana := f.addEmployee(t, "Ana", employee.StatusActive)

	status, err := f.svc.GetCurrentStatus(ctx, ana.ID)
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusNotClockedIn, status.Status)
	assert.Nil(t, status.ClockIn)
	assert.Equal(t, "2024-03-01", status.Date)

	_, err = f.svc.ClockIn(ctx, ana.ID)
	require.NoError(t, err)
	status, err = f.svc.GetCurrentStatus(ctx, ana.ID)
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusClockedIn, status.Status)
	require.NotNil(t, status.ClockIn)
	assert.Equal(t, morning, *status.ClockIn)
}

func TestAttendanceService_TodayUsesConfiguredLocation(t *testing.T) {
	loc := time.FixedZone("UTC+7", 7*3600)
	c := clock.NewFixed(time.Date(2024, 3, 1, 20, 0, 0, 0, time.UTC))
	employees := memory.NewEmployeeRepository(c)
	records := memory.NewAttendanceRepository(c)
	local, err := storage.NewLocalStorage(t.TempDir(), "http://localhost:8080/uploads")
	require.NoError(t, err)
	svc := NewAttendanceService(records, employees, employees, file.NewFileService(local), c, loc)

	e, err := employees.Create(context.Background(), employee.Employee{FirstName: "Ana", Status: employee.StatusActive})
	require.NoError(t, err)

	a, err := svc.ClockIn(context.Background(), e.ID)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC), a.Date)
}

func TestAttendanceService_GetTodayAttendance_KeepsUnknownEmployees(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	ana := f.addEmployee(t, "Ana", employee.StatusActive)

	_, err := f.svc.ClockIn(ctx, ana.ID)
	require.NoError(t, err)
	_, err = f.records.Create(ctx, attendance.Attendance{
		EmployeeID: 99,
		Date:       time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		Status:     attendance.StatusAbsent,
	})
	require.NoError(t, err)

	today, err := f.svc.GetTodayAttendance(ctx)
	require.NoError(t, err)
	require.Len(t, today, 2)
	assert.NotNil(t, today[0].Employee)
	assert.Equal(t, "Ana", today[0].Employee.FirstName)
	assert.Nil(t, today[1].Employee)
}

func TestAttendanceService_GetStats(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	ana := f.addEmployee(t, "Ana", employee.StatusActive)
	budi := f.addEmployee(t, "Budi", employee.StatusActive)

	_, err := f.svc.ClockIn(ctx, ana.ID)
	require.NoError(t, err)
	f.clock.Advance(8 * time.Hour)
	_, err = f.svc.ClockOut(ctx, attendance.ClockOutRequest{EmployeeID: ana.ID})
	require.NoError(t, err)
	_, err = f.svc.ClockIn(ctx, budi.ID)
	require.NoError(t, err)

	day := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	stats, err := f.svc.GetStats(ctx, &day, &day)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.TotalRecords)
	assert.Equal(t, 1, stats.PresentRecords)
	assert.Equal(t, 1, stats.ClockedInRecords)
	assert.Equal(t, 50, stats.AttendanceRate)
	assert.Equal(t, 8.0, stats.AverageHours)

	next := day.AddDate(0, 0, 1)
	empty, err := f.svc.GetStats(ctx, &next, nil)
	require.NoError(t, err)
	assert.Zero(t, empty.TotalRecords)
	assert.Zero(t, empty.AttendanceRate)
}

func TestAttendanceService_GetByID(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	ana := f.addEmployee(t, "Ana", employee.StatusActive)

	in, err := f.svc.ClockIn(ctx, ana.ID)
	require.NoError(t, err)

	got, err := f.svc.GetByID(ctx, in.ID)
	require.NoError(t, err)
	assert.Equal(t, ana.ID, got.Employee.ID)

	_, err = f.svc.GetByID(ctx, 404)
	assert.ErrorIs(t, err, attendance.ErrAttendanceNotFound)
}

func TestAttendanceService_GetByEmployeeID_Range(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	ana := f.addEmployee(t, "Ana", employee.StatusActive)

	for day := 1; day <= 3; day++ {
		f.clock.Set(time.Date(2024, 3, day, 9, 0, 0, 0, time.UTC))
		_, err := f.svc.ClockIn(ctx, ana.ID)
		require.NoError(t, err)
	}

	from := time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC)
	records, err := f.svc.GetByEmployeeID(ctx, ana.ID, &from, nil)
	require.NoError(t, err)
	assert.Len(t, records, 2)
}

func TestAttendanceService_MarkAbsences(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	present := f.addEmployee(t, "Ana", employee.StatusActive)
	absent := f.addEmployee(t, "Budi", employee.StatusActive)
	onLeave := f.addEmployee(t, "Citra", employee.StatusOnLeave)
	f.addEmployee(t, "Dewi", employee.StatusInactive)

	_, err := f.svc.ClockIn(ctx, present.ID)
	require.NoError(t, err)

	result, err := f.svc.MarkAbsences(ctx, morning)
	require.NoError(t, err)
	assert.Equal(t, attendance.AbsenceReport{Date: "2024-03-01", Absent: 1, OnLeave: 1, Skipped: 1}, result)

	status, err := f.svc.GetCurrentStatus(ctx, absent.ID)
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusAbsent, status.Status)
	status, err = f.svc.GetCurrentStatus(ctx, onLeave.ID)
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusOnLeave, status.Status)

	again, err := f.svc.MarkAbsences(ctx, morning)
	require.NoError(t, err)
	assert.Zero(t, again.Absent)
	assert.Zero(t, again.OnLeave)
}

func TestAttendanceService_ExportXLSX(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	ana := f.addEmployee(t, "Ana", employee.StatusActive)
	_, err := f.svc.ClockIn(ctx, ana.ID)
	require.NoError(t, err)

	buf := new(bytes.Buffer)
	require.NoError(t, f.svc.ExportXLSX(ctx, nil, nil, buf))

	wb, err := excelize.OpenReader(buf)
	require.NoError(t, err)
	defer wb.Close()
	rows, err := wb.GetRows("Attendance")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "EMP001", rows[1][1])
	assert.Equal(t, "Clocked In", rows[1][4])
}
