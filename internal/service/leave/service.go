package leave

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/leave-management-go/internal/domain/leave"
	"github.com/cmlabs-hris/leave-management-go/internal/domain/user"
	"github.com/cmlabs-hris/leave-management-go/internal/pkg/database"
)

type LeaveServiceImpl struct {
	tx database.TxManager
	leave.LeaveRequestRepository
	balances user.BalanceRepository
}

func NewLeaveService(tx database.TxManager, leaveRequestRepository leave.LeaveRequestRepository, balanceRepository user.BalanceRepository) leave.LeaveService {
	return &LeaveServiceImpl{
		tx:                     tx,
		LeaveRequestRepository: leaveRequestRepository,
		balances:               balanceRepository,
	}
}

// Submit implements leave.LeaveService.
//
// The balance is checked here so obviously hopeless requests fail fast, but the
// debit happens at approval time only; the approval path re-checks under a lock.
func (s *LeaveServiceImpl) Submit(ctx context.Context, actor user.Actor, req leave.CreateLeaveRequestRequest) (leave.LeaveRequestResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	startDate, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		return leave.LeaveRequestResponse{}, fmt.Errorf("failed to parse start date: %w", err)
	}
	endDate, err := time.Parse("2006-01-02", req.EndDate)
	if err != nil {
		return leave.LeaveRequestResponse{}, fmt.Errorf("failed to parse end date: %w", err)
	}

	hasOverlap, err := s.LeaveRequestRepository.HasOverlapping(ctx, actor.ID, startDate, endDate)
	if err != nil {
		return leave.LeaveRequestResponse{}, fmt.Errorf("failed to check overlapping leave requests: %w", err)
	}
	if hasOverlap {
		return leave.LeaveRequestResponse{}, leave.ErrOverlappingLeave
	}

	numberOfDays := leave.DaysInclusive(startDate, endDate)

	balance, err := s.balances.GetBalance(ctx, actor.ID)
	if err != nil {
		return leave.LeaveRequestResponse{}, fmt.Errorf("failed to get leave balance: %w", err)
	}
	if balance.Days(req.Type) < numberOfDays {
		return leave.LeaveRequestResponse{}, leave.ErrInsufficientBalance
	}

	request := leave.LeaveRequest{
		RequesterID:  actor.ID,
		Type:         leave.Type(req.Type),
		StartDate:    startDate,
		EndDate:      endDate,
		NumberOfDays: numberOfDays,
		Reason:       req.Reason,
		Status:       leave.StatusPending,
	}

	created, err := s.LeaveRequestRepository.Create(ctx, request)
	if err != nil {
		return leave.LeaveRequestResponse{}, fmt.Errorf("failed to create leave request: %w", err)
	}

	return leave.ToResponse(created), nil
}

// List implements leave.LeaveService.
func (s *LeaveServiceImpl) List(ctx context.Context, actor user.Actor) ([]leave.LeaveRequestResponse, error) {
	var requests []leave.LeaveRequest
	var err error

	if actor.IsAdmin() {
		requests, err = s.LeaveRequestRepository.ListAll(ctx)
	} else {
		requests, err = s.LeaveRequestRepository.ListByRequester(ctx, actor.ID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list leave requests: %w", err)
	}

	responses := make([]leave.LeaveRequestResponse, 0, len(requests))
	for _, request := range requests {
		responses = append(responses, leave.ToResponse(request))
	}
	return responses, nil
}

// Get implements leave.LeaveService.
func (s *LeaveServiceImpl) Get(ctx context.Context, actor user.Actor, requestID string) (leave.LeaveRequestResponse, error) {
	request, err := s.LeaveRequestRepository.GetByID(ctx, requestID)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	if !actor.CanAccess(request.RequesterID) {
		return leave.LeaveRequestResponse{}, leave.ErrNotRequestOwner
	}

	return leave.ToResponse(request), nil
}

// Review implements leave.LeaveService.
//
// The whole transition runs inside one transaction: the requester's balance row
// is locked before the check, the debit is guarded, and the status write commits
// together with it. A failed review leaves the request pending and the balance
// untouched.
func (s *LeaveServiceImpl) Review(ctx context.Context, actor user.Actor, requestID string, req leave.ReviewLeaveRequestRequest) (leave.LeaveRequestResponse, error) {
	if !actor.IsAdmin() {
		return leave.LeaveRequestResponse{}, user.ErrAdminPrivilegeRequired
	}
	if err := req.Validate(); err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	var reviewed leave.LeaveRequest
	err := s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		request, err := s.LeaveRequestRepository.GetByID(txCtx, requestID)
		if err != nil {
			return err
		}

		if request.Status != leave.StatusPending {
			return leave.ErrAlreadyProcessed
		}

		if req.Status == string(leave.StatusApproved) {
			if request.NumberOfDays <= 0 {
				return leave.ErrInvalidDayCount
			}

			// Lock the requester's row so a concurrent approval for the same
			// user waits here instead of racing the check below.
			balance, err := s.balances.GetBalanceForUpdate(txCtx, request.RequesterID)
			if err != nil {
				return fmt.Errorf("failed to get leave balance: %w", err)
			}
			if balance.Days(string(request.Type)) < request.NumberOfDays {
				return leave.ErrInsufficientBalance
			}

			if err := s.balances.Debit(txCtx, request.RequesterID, string(request.Type), request.NumberOfDays); err != nil {
				return err
			}
		}

		reviewedAt := time.Now()
		comments := ""
		if req.Comments != nil {
			comments = *req.Comments
		}

		request.Status = leave.Status(req.Status)
		request.Comments = &comments
		request.ReviewerID = &actor.ID
		request.ReviewedAt = &reviewedAt

		if err := s.LeaveRequestRepository.UpdateReview(txCtx, request); err != nil {
			return fmt.Errorf("failed to update leave request: %w", err)
		}

		reviewed = request
		return nil
	})
	if err != nil {
		return leave.LeaveRequestResponse{}, reviewError(err)
	}

	return leave.ToResponse(reviewed), nil
}

// Remove implements leave.LeaveService.
func (s *LeaveServiceImpl) Remove(ctx context.Context, actor user.Actor, requestID string) error {
	request, err := s.LeaveRequestRepository.GetByID(ctx, requestID)
	if err != nil {
		return err
	}

	if !actor.CanAccess(request.RequesterID) {
		return leave.ErrNotRequestOwner
	}

	// No balance side effect: pending requests were never debited.
	if request.Status != leave.StatusPending {
		return leave.ErrAlreadyProcessed
	}

	if err := s.LeaveRequestRepository.Delete(ctx, requestID); err != nil {
		return fmt.Errorf("failed to delete leave request: %w", err)
	}

	return nil
}

// reviewError passes domain sentinels through and folds everything else
// (begin/commit failures, timeouts) into ErrUnavailable, since the transaction
// has rolled back and no partial state remains.
func reviewError(err error) error {
	for _, sentinel := range []error{
		leave.ErrLeaveRequestNotFound,
		leave.ErrAlreadyProcessed,
		leave.ErrInsufficientBalance,
		leave.ErrInvalidDayCount,
		user.ErrUserNotFound,
	} {
		if errors.Is(err, sentinel) {
			return err
		}
	}
	return fmt.Errorf("%w: %v", leave.ErrUnavailable, err)
}
