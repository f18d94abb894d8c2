package leave

import "errors"

var (
	ErrLeaveRequestNotFound = errors.New("Leave request not found")
	ErrOverlappingLeave     = errors.New("Overlapping leave request exists")
	ErrInsufficientBalance  = errors.New("Insufficient leave balance")
	ErrAlreadyProcessed     = errors.New("Leave request already processed")
	ErrNotRequestOwner      = errors.New("Not authorized to access this leave request")
	ErrInvalidDayCount      = errors.New("Leave request has an invalid number of days")
	ErrUnavailable          = errors.New("Storage temporarily unavailable")
)
