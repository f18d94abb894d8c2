package leave

import (
	"testing"

	"github.com/cmlabs-hris/leave-management-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateLeaveRequestRequest_Validate(t *testing.T) {
	valid := CreateLeaveRequestRequest{
		Type:      "sick",
		StartDate: "2024-05-01",
		EndDate:   "2024-05-03",
		Reason:    "Flu",
	}
	assert.NoError(t, valid.Validate())

	t.Run("unknown leave type", func(t *testing.T) {
		req := valid
		req.Type = "sabbatical"
		err := req.Validate()
		require.Error(t, err)

		var errs validator.ValidationErrors
		require.ErrorAs(t, err, &errs)
		assert.Contains(t, errs.ToMap(), "leave_type")
	})

	t.Run("missing leave type", func(t *testing.T) {
		req := valid
		req.Type = ""
		err := req.Validate()
		require.Error(t, err)
	})

	t.Run("malformed dates", func(t *testing.T) {
		req := valid
		req.StartDate = "01-05-2024"
		req.EndDate = "not-a-date"
		err := req.Validate()
		require.Error(t, err)

		var errs validator.ValidationErrors
		require.ErrorAs(t, err, &errs)
		assert.Contains(t, errs.ToMap(), "start_date")
		assert.Contains(t, errs.ToMap(), "end_date")
	})

	t.Run("missing reason", func(t *testing.T) {
		req := valid
		req.Reason = "   "
		err := req.Validate()
		require.Error(t, err)

		var errs validator.ValidationErrors
		require.ErrorAs(t, err, &errs)
		assert.Contains(t, errs.ToMap(), "reason")
	})
}

func TestReviewLeaveRequestRequest_Validate(t *testing.T) {
	comments := "Looks fine"

	approved := ReviewLeaveRequestRequest{Status: "approved", Comments: &comments}
	assert.NoError(t, approved.Validate())

	rejected := ReviewLeaveRequestRequest{Status: "rejected"}
	assert.NoError(t, rejected.Validate())

	t.Run("pending is not a review decision", func(t *testing.T) {
		req := ReviewLeaveRequestRequest{Status: "pending"}
		assert.Error(t, req.Validate())
	})

	t.Run("missing status", func(t *testing.T) {
		req := ReviewLeaveRequestRequest{}
		assert.Error(t, req.Validate())
	})
}
