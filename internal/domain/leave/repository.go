package leave

import (
	"context"
	"time"
)

// LeaveRequestRepository - interface for the leave_requests table
type LeaveRequestRepository interface {
	Create(ctx context.Context, request LeaveRequest) (LeaveRequest, error)
	GetByID(ctx context.Context, id string) (LeaveRequest, error)
	// ListByRequester returns the requester's own requests, newest application first.
	ListByRequester(ctx context.Context, requesterID string) ([]LeaveRequest, error)
	// ListAll returns every request annotated with requester name/email/department,
	// newest application first.
	ListAll(ctx context.Context) ([]LeaveRequest, error)
	// HasOverlapping reports whether the requester already has a pending or approved
	// request whose date range intersects [start, end] with inclusive bounds.
	HasOverlapping(ctx context.Context, requesterID string, start, end time.Time) (bool, error)
	// UpdateReview persists the status, comments, reviewer and review timestamp.
	UpdateReview(ctx context.Context, request LeaveRequest) error
	Delete(ctx context.Context, id string) error
}
