package attendance

import (
	"math"
	"time"
)

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// WorkedHours is the session length minus breaks, rounded to two decimals
// and never negative.
func WorkedHours(clockIn, clockOut time.Time, breakMinutes float64) float64 {
	hours := clockOut.Sub(clockIn).Hours() - breakMinutes/60
	if hours < 0 {
		return 0
	}
	return round2(hours)
}

type Stats struct {
	TotalRecords     int     `json:"total_records"`
	PresentRecords   int     `json:"present_records"`
	AbsentRecords    int     `json:"absent_records"`
	OnLeaveRecords   int     `json:"on_leave_records"`
	ClockedInRecords int     `json:"clocked_in_records"`
	AverageHours     float64 `json:"average_hours"`
	AttendanceRate   int     `json:"attendance_rate"`
}

func ComputeStats(records []Attendance) Stats {
	var stats Stats
	var hoursSum float64
	var hoursCount int

	for _, r := range records {
		stats.TotalRecords++
		switch r.Status {
		case StatusPresent:
			stats.PresentRecords++
		case StatusAbsent:
			stats.AbsentRecords++
		case StatusOnLeave:
			stats.OnLeaveRecords++
		case StatusClockedIn:
			stats.ClockedInRecords++
		case StatusNotClockedIn:
		}
		if r.TotalHours > 0 {
			hoursSum += r.TotalHours
			hoursCount++
		}
	}

	if hoursCount > 0 {
		stats.AverageHours = round2(hoursSum / float64(hoursCount))
	}
	if stats.TotalRecords > 0 {
		stats.AttendanceRate = int(math.Round(float64(stats.PresentRecords) / float64(stats.TotalRecords) * 100))
	}
	return stats
}
