package attendance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestWorkedHours(t *testing.T) {
	day := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	cases := []struct {
		name      string
		in, out   time.Time
		breakMins float64
		want      float64
	}{
		{"full day with lunch", day.Add(9 * time.Hour), day.Add(17*time.Hour + 30*time.Minute), 30, 8},
		{"no break", day.Add(9 * time.Hour), day.Add(10*time.Hour + 20*time.Minute), 0, 1.33},
		{"rounds to two decimals", day.Add(9 * time.Hour), day.Add(9*time.Hour + 10*time.Minute), 0, 0.17},
		{"break longer than session", day.Add(9 * time.Hour), day.Add(9*time.Hour + 10*time.Minute), 60, 0},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, WorkedHours(c.in, c.out, c.breakMins))
		})
	}
}

func TestComputeStats_Empty(t *testing.T) {
	stats := ComputeStats(nil)
	assert.Equal(t, 0, stats.AttendanceRate)
	assert.Equal(t, 0.0, stats.AverageHours)
	assert.Equal(t, 0, stats.TotalRecords)
}

func TestComputeStats(t *testing.T) {
	records := []Attendance{
		{Status: StatusPresent, TotalHours: 8},
		{Status: StatusPresent, TotalHours: 7.5},
		{Status: StatusAbsent},
		{Status: StatusOnLeave},
		{Status: StatusClockedIn},
		{Status: StatusPresent, TotalHours: 6.25},
	}
	stats := ComputeStats(records)

	assert.Equal(t, 6, stats.TotalRecords)
	assert.Equal(t, 3, stats.PresentRecords)
	assert.Equal(t, 1, stats.AbsentRecords)
	assert.Equal(t, 1, stats.OnLeaveRecords)
	assert.Equal(t, 1, stats.ClockedInRecords)
	assert.Equal(t, 50, stats.AttendanceRate)
	assert.Equal(t, 7.25, stats.AverageHours)
}

func TestComputeStats_RateRounds(t *testing.T) {
	records := []Attendance{{Status: StatusPresent}, {Status: StatusPresent}, {Status: StatusAbsent}}
	assert.Equal(t, 67, ComputeStats(records).AttendanceRate)
}

func TestFilter_Matches(t *testing.T) {
	d := func(day int) time.Time { return time.Date(2024, 3, day, 0, 0, 0, 0, time.UTC) }
	emp := int64(4)
	from, to := d(2), d(4)
	f := Filter{EmployeeID: &emp, From: &from, To: &to}

	assert.True(t, f.Matches(Attendance{EmployeeID: 4, Date: d(2)}))
	assert.True(t, f.Matches(Attendance{EmployeeID: 4, Date: d(4)}))
	assert.False(t, f.Matches(Attendance{EmployeeID: 4, Date: d(5)}))
	assert.False(t, f.Matches(Attendance{EmployeeID: 5, Date: d(3)}))
}

func TestParseStatus(t *testing.T) {
	s, err := ParseStatus("Clocked In")
	assert.NoError(t, err)
	assert.Equal(t, StatusClockedIn, s)

	_, err = ParseStatus("clocked in")
	assert.ErrorIs(t, err, ErrInvalidStatus)
}
