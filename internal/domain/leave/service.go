package leave

import (
	"context"

	"github.com/cmlabs-hris/leave-management-go/internal/domain/user"
)

type LeaveService interface {
	// Submit validates and creates a new leave request for the acting user.
	// The balance is checked here but only debited on approval.
	Submit(ctx context.Context, actor user.Actor, req CreateLeaveRequestRequest) (LeaveRequestResponse, error)
	// List returns all requests for admins (annotated with requester details)
	// or only the actor's own requests otherwise, newest application first.
	List(ctx context.Context, actor user.Actor) ([]LeaveRequestResponse, error)
	Get(ctx context.Context, actor user.Actor, requestID string) (LeaveRequestResponse, error)
	// Review moves a pending request to approved or rejected. Approval debits the
	// requester's balance and writes the new status in a single transaction.
	Review(ctx context.Context, actor user.Actor, requestID string, req ReviewLeaveRequestRequest) (LeaveRequestResponse, error)
	// Remove deletes a pending request owned by the actor (or any pending request
	// for admins). Processed requests are immutable.
	Remove(ctx context.Context, actor user.Actor, requestID string) error
}
