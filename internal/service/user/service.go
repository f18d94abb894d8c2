package user

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/leave-management-go/internal/domain/user"
)

type UserServiceImpl struct {
	user.UserRepository
	balances user.BalanceRepository
}

func NewUserService(userRepository user.UserRepository, balanceRepository user.BalanceRepository) user.UserService {
	return &UserServiceImpl{
		UserRepository: userRepository,
		balances:       balanceRepository,
	}
}

// ListUsers implements user.UserService.
func (s *UserServiceImpl) ListUsers(ctx context.Context, actor user.Actor) ([]user.UserResponse, error) {
	if !actor.IsAdmin() {
		return nil, user.ErrAdminPrivilegeRequired
	}

	users, err := s.UserRepository.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	responses := make([]user.UserResponse, 0, len(users))
	for _, u := range users {
		responses = append(responses, user.ToResponse(u))
	}
	return responses, nil
}

// SetBalance implements user.UserService.
func (s *UserServiceImpl) SetBalance(ctx context.Context, actor user.Actor, targetUserID string, req user.UpdateBalanceRequest) (user.UserResponse, error) {
	if !actor.IsAdmin() {
		return user.UserResponse{}, user.ErrAdminPrivilegeRequired
	}
	if err := req.Validate(); err != nil {
		return user.UserResponse{}, err
	}

	target, err := s.UserRepository.GetByID(ctx, targetUserID)
	if err != nil {
		return user.UserResponse{}, err
	}

	balance, err := s.balances.SetBalance(ctx, targetUserID, req)
	if err != nil {
		return user.UserResponse{}, fmt.Errorf("failed to set leave balance: %w", err)
	}

	target.Balance = balance
	return user.ToResponse(target), nil
}
