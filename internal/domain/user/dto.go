package user

import "github.com/cmlabs-hris/leave-management-go/internal/pkg/validator"

type UpdateBalanceRequest struct {
	Sick   *int `json:"sick,omitempty"`
	Casual *int `json:"casual,omitempty"`
	Annual *int `json:"annual,omitempty"`
}

func (r *UpdateBalanceRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Sick == nil && r.Casual == nil && r.Annual == nil {
		errs = append(errs, validator.ValidationError{
			Field:   "balance",
			Message: "at least one of sick, casual, annual must be provided",
		})
	}

	if r.Sick != nil && *r.Sick < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "sick",
			Message: "sick must not be negative",
		})
	}
	if r.Casual != nil && *r.Casual < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "casual",
			Message: "casual must not be negative",
		})
	}
	if r.Annual != nil && *r.Annual < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "annual",
			Message: "annual must not be negative",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type UserResponse struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Email      string  `json:"email"`
	Role       string  `json:"role"`
	Department string  `json:"department"`
	Balance    Balance `json:"leave_balance"`
}

// ToResponse maps a User entity to its API shape. The password hash never leaves
// the domain layer.
func ToResponse(u User) UserResponse {
	return UserResponse{
		ID:         u.ID,
		Name:       u.Name,
		Email:      u.Email,
		Role:       string(u.Role),
		Department: u.Department,
		Balance:    u.Balance,
	}
}
