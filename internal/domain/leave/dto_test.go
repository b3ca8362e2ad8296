package leave

import (
	"testing"

	"github.com/attendly/attendance-backend-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubmitLeaveRequestValidate(t *testing.T) {
	req := SubmitLeaveRequest{
		LeaveType: "sick",
		StartDate: "2024-06-10",
		EndDate:   "2024-06-12",
		Reason:    "flu",
	}
	assert.NoError(t, req.Validate())
}

func TestSubmitLeaveRequestValidate_BadType(t *testing.T) {
	req := SubmitLeaveRequest{
		LeaveType: "sabbatical",
		StartDate: "2024-06-10",
		EndDate:   "2024-06-12",
		Reason:    "time off",
	}
	err := req.Validate()
	require.Error(t, err)

	var errs validator.ValidationErrors
	require.ErrorAs(t, err, &errs)
	assert.Contains(t, errs.ToMap(), "leave_type")
}

func TestSubmitLeaveRequestValidate_MissingFields(t *testing.T) {
	req := SubmitLeaveRequest{LeaveType: "casual"}
	err := req.Validate()
	require.Error(t, err)

	var errs validator.ValidationErrors
	require.ErrorAs(t, err, &errs)
	m := errs.ToMap()
	assert.Contains(t, m, "start_date")
	assert.Contains(t, m, "end_date")
	assert.Contains(t, m, "reason")
}

func TestDecideLeaveRequestValidate(t *testing.T) {
	req := DecideLeaveRequest{Decision: "approve"}
	assert.NoError(t, req.Validate())

	req = DecideLeaveRequest{Decision: "reject"}
	assert.NoError(t, req.Validate())

	req = DecideLeaveRequest{Decision: "maybe"}
	assert.Error(t, req.Validate())
}
