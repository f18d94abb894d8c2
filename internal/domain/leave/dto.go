package leave

import (
	"time"

	"github.com/cmlabs-hris/leave-management-go/internal/pkg/validator"
)

type CreateLeaveRequestRequest struct {
	Type      string `json:"leave_type"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Reason    string `json:"reason"`
}

func (r *CreateLeaveRequestRequest) Validate() error {
	var errs validator.ValidationErrors

	// Leave type
	if validator.IsEmpty(r.Type) {
		errs = append(errs, validator.ValidationError{
			Field:   "leave_type",
			Message: "leave_type is required",
		})
	} else if !Type(r.Type).Valid() {
		errs = append(errs, validator.ValidationError{
			Field:   "leave_type",
			Message: "leave_type must be one of sick, casual, annual",
		})
	}

	// Dates
	if _, ok := validator.IsValidDate(r.StartDate); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date must be a valid date in YYYY-MM-DD format",
		})
	}
	if _, ok := validator.IsValidDate(r.EndDate); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must be a valid date in YYYY-MM-DD format",
		})
	}

	// Reason
	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "reason is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ReviewLeaveRequestRequest struct {
	Status   string  `json:"status"`
	Comments *string `json:"comments,omitempty"`
}

func (r *ReviewLeaveRequestRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Status) {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status is required",
		})
	} else if r.Status != string(StatusApproved) && r.Status != string(StatusRejected) {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be either approved or rejected",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type LeaveRequestResponse struct {
	ID           string     `json:"id"`
	RequesterID  string     `json:"requester_id"`
	Type         string     `json:"leave_type"`
	StartDate    time.Time  `json:"start_date"`
	EndDate      time.Time  `json:"end_date"`
	NumberOfDays int        `json:"number_of_days"`
	Reason       string     `json:"reason"`
	Status       string     `json:"status"`
	Comments     *string    `json:"comments,omitempty"`
	ReviewerID   *string    `json:"reviewer_id,omitempty"`
	AppliedAt    time.Time  `json:"applied_at"`
	ReviewedAt   *time.Time `json:"reviewed_at,omitempty"`

	RequesterName       *string `json:"requester_name,omitempty"`
	RequesterEmail      *string `json:"requester_email,omitempty"`
	RequesterDepartment *string `json:"requester_department,omitempty"`
}

// ToResponse maps a LeaveRequest entity to its API shape.
func ToResponse(request LeaveRequest) LeaveRequestResponse {
	return LeaveRequestResponse{
		ID:                  request.ID,
		RequesterID:         request.RequesterID,
		Type:                string(request.Type),
		StartDate:           request.StartDate,
		EndDate:             request.EndDate,
		NumberOfDays:        request.NumberOfDays,
		Reason:              request.Reason,
		Status:              string(request.Status),
		Comments:            request.Comments,
		ReviewerID:          request.ReviewerID,
		AppliedAt:           request.AppliedAt,
		ReviewedAt:          request.ReviewedAt,
		RequesterName:       request.RequesterName,
		RequesterEmail:      request.RequesterEmail,
		RequesterDepartment: request.RequesterDepartment,
	}
}
