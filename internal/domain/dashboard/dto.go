package dashboard

import (
	"github.com/cmlabs-hris/hris-dashboard-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-dashboard-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-dashboard-go/internal/domain/leave"
	"github.com/cmlabs-hris/hris-dashboard-go/internal/domain/payroll"
)

// DashboardResponse is the combined response for the main dashboard endpoint
type DashboardResponse struct {
	EmployeeStats        employee.EmployeeStats          `json:"employee_stats"`
	TodayAttendance      []attendance.AttendanceResponse `json:"today_attendance"`
	TodayAttendanceStats attendance.Stats                `json:"today_attendance_stats"`
	PendingLeave         []leave.LeaveRequestResponse    `json:"pending_leave"`
	LeaveStats           leave.Stats                     `json:"leave_stats"`
	PayrollStats         payroll.Stats                   `json:"payroll_stats"`
	PayrollMonth         payroll.Month                   `json:"payroll_month"`
	GeneratedAt          string                          `json:"generated_at"`
}
