package dashboard

import (
	"context"
	"time"

	"github.com/cmlabs-hris/hris-dashboard-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-dashboard-go/internal/domain/dashboard"
	"github.com/cmlabs-hris/hris-dashboard-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-dashboard-go/internal/domain/leave"
	"github.com/cmlabs-hris/hris-dashboard-go/internal/domain/payroll"
	"github.com/cmlabs-hris/hris-dashboard-go/internal/pkg/clock"
	"golang.org/x/sync/errgroup"
)

type DashboardServiceImpl struct {
	employeeService   employee.EmployeeService
	attendanceService attendance.AttendanceService
	leaveService      leave.LeaveService
	payrollService    payroll.PayrollService
	clock             clock.Clock
	location          *time.Location
}

func NewDashboardService(
	employeeService employee.EmployeeService,
	attendanceService attendance.AttendanceService,
	leaveService leave.LeaveService,
	payrollService payroll.PayrollService,
	c clock.Clock,
	location *time.Location,
) dashboard.DashboardService {
	return &DashboardServiceImpl{
		employeeService:   employeeService,
		attendanceService: attendanceService,
		leaveService:      leaveService,
		payrollService:    payrollService,
		clock:             c,
		location:          location,
	}
}

// GetDashboard returns combined dashboard data using parallel goroutines.
// The module reads degrade on storage failure, so an error here means the
// context was cancelled.
func (s *DashboardServiceImpl) GetDashboard(ctx context.Context) (*dashboard.DashboardResponse, error) {
	loc := s.location
	if loc == nil {
		loc = time.UTC
	}
	now := s.clock.Now()
	today := clock.DayKey(now, loc)
	month := payroll.MonthOf(now.In(loc))

	var (
		employeeStats   employee.EmployeeStats
		todayAttendance []attendance.AttendanceWithEmployee
		attendanceStats attendance.Stats
		pendingLeave    []leave.LeaveRequestWithEmployee
		leaveStats      leave.Stats
		payrollStats    payroll.Stats
	)

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		employeeStats, err = s.employeeService.GetStats(gCtx)
		return err
	})

	g.Go(func() error {
		var err error
		todayAttendance, err = s.attendanceService.GetTodayAttendance(gCtx)
		return err
	})

	g.Go(func() error {
		var err error
		attendanceStats, err = s.attendanceService.GetStats(gCtx, &today, &today)
		return err
	})

	g.Go(func() error {
		var err error
		pendingLeave, err = s.leaveService.GetPendingRequests(gCtx)
		return err
	})

	g.Go(func() error {
		var err error
		leaveStats, err = s.leaveService.GetLeaveStats(gCtx)
		return err
	})

	g.Go(func() error {
		var err error
		payrollStats, err = s.payrollService.GetPayrollStats(gCtx, &month)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return &dashboard.DashboardResponse{
		EmployeeStats:        employeeStats,
		TodayAttendance:      attendance.ToResponses(todayAttendance),
		TodayAttendanceStats: attendanceStats,
		PendingLeave:         leave.ToResponses(pendingLeave),
		LeaveStats:           leaveStats,
		PayrollStats:         payrollStats,
		PayrollMonth:         month,
		GeneratedAt:          now.UTC().Format(time.RFC3339),
	}, nil
}
