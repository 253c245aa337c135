package leave

import (
	"testing"

	"github.com/cmlabs-hris/hris-dashboard-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateLeaveRequest_Validate_ReportsEachField(t *testing.T) {
	req := CreateLeaveRequest{}
	ve, ok := validator.AsValidationErrors(req.Validate())
	require.True(t, ok)

	fields := ve.ToMap()
	for _, f := range []string{"employee_id", "type", "start_date", "end_date", "reason"} {
		assert.Contains(t, fields, f)
	}
}

func TestCreateLeaveRequest_Validate_EndBeforeStart(t *testing.T) {
	req := CreateLeaveRequest{EmployeeID: 1, Type: "Sick Leave", StartDate: "2024-03-03", EndDate: "2024-03-01", Reason: "flu"}
	ve, ok := validator.AsValidationErrors(req.Validate())
	require.True(t, ok)
	assert.Equal(t, "end_date", ve[0].Field)
}

func TestCreateLeaveRequest_Validate_UnknownType(t *testing.T) {
	req := CreateLeaveRequest{EmployeeID: 1, Type: "Vacation", StartDate: "2024-03-01", EndDate: "2024-03-01", Reason: "beach"}
	ve, ok := validator.AsValidationErrors(req.Validate())
	require.True(t, ok)
	assert.Equal(t, "type", ve[0].Field)
}

func TestUpdateLeaveRequest_ApplyRecomputesDays(t *testing.T) {
	current := LeaveRequest{ID: 1, Type: TypeAnnual, StartDate: date(2024, 3, 1), EndDate: date(2024, 3, 1), Reason: "trip", Days: 1}
	end := "2024-03-05"

	require.NoError(t, (&UpdateLeaveRequest{EndDate: &end}).Apply(&current))
	assert.Equal(t, 5, current.Days)
	assert.Equal(t, date(2024, 3, 5), current.EndDate)
	assert.Equal(t, "trip", current.Reason)
}

func TestUpdateLeaveRequest_ApplyLeavesCurrentOnError(t *testing.T) {
	current := LeaveRequest{ID: 1, Type: TypeAnnual, StartDate: date(2024, 3, 10), EndDate: date(2024, 3, 12), Reason: "trip", Days: 3}
	end := "2024-03-01"

	err := (&UpdateLeaveRequest{EndDate: &end}).Apply(&current)
	require.Error(t, err)
	assert.Equal(t, 3, current.Days)
	assert.Equal(t, date(2024, 3, 12), current.EndDate)
}
