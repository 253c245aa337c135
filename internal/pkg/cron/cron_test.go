package cron

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/cmlabs-hris/hris-dashboard-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-dashboard-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-dashboard-go/internal/pkg/clock"
	"github.com/cmlabs-hris/hris-dashboard-go/internal/pkg/storage"
	"github.com/cmlabs-hris/hris-dashboard-go/internal/repository/memory"
	attendanceService "github.com/cmlabs-hris/hris-dashboard-go/internal/service/attendance"
	"github.com/cmlabs-hris/hris-dashboard-go/internal/service/file"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScheduler_RunOnceJoinsErrors(t *testing.T) {
	s := NewScheduler()
	var calls int32
	s.AddJob("ok", time.Hour, func(ctx context.Context) error {
		atomic.AddInt32(&calls, 1)
		return nil
	})
	s.AddJob("broken", time.Hour, func(ctx context.Context) error {
		atomic.AddInt32(&calls, 1)
		return errors.New("boom")
	})

	err := s.RunOnce(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken: boom")
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestScheduler_StartRunsImmediatelyAndStops(t *testing.T) {
	s := NewScheduler()
	ran := make(chan struct{}, 1)
	s.AddJob("tick", time.Hour, func(ctx context.Context) error {
		select {
		case ran <- struct{}{}:
		default:
		}
		return nil
	})

	s.Start(context.Background())
	select {
	case <-ran:
	case <-time.After(time.Second):
		t.Fatal("job did not run on start")
	}
	s.Stop()
}

func TestScheduler_StopWithoutStart(t *testing.T) {
	assert.NotPanics(t, func() { NewScheduler().Stop() })
}

func TestAttendanceJobs_MarkAbsentEmployees(t *testing.T) {
	c := clock.NewFixed(time.Date(2024, 3, 2, 0, 30, 0, 0, time.UTC))
	local, err := storage.NewLocalStorage(t.TempDir(), "http://localhost:8080/uploads")
	require.NoError(t, err)

	employees := memory.NewEmployeeRepository(c)
	records := memory.NewAttendanceRepository(c)
	svc := attendanceService.NewAttendanceService(records, employees, employees, file.NewFileService(local), c, time.UTC)

	ctx := context.Background()
	active, err := employees.Create(ctx, employee.Employee{FirstName: "Ana", Status: employee.StatusActive})
	require.NoError(t, err)
	_, err = employees.Create(ctx, employee.Employee{FirstName: "Budi", Status: employee.StatusInactive})
	require.NoError(t, err)

	s := NewScheduler()
	NewAttendanceJobs(svc, c).RegisterJobs(s, time.Hour)
	require.NoError(t, s.RunOnce(ctx))
	require.NoError(t, s.RunOnce(ctx))

	yesterday := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	list, err := records.List(ctx, attendance.Filter{Date: &yesterday})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, active.ID, list[0].EmployeeID)
	assert.Equal(t, attendance.StatusAbsent, list[0].Status)
}
