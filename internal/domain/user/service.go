package user

import (
	"context"
)

type UserService interface {
	// ListUsers returns every user with their balances. Admin only.
	ListUsers(ctx context.Context, actor Actor) ([]UserResponse, error)
	// SetBalance overwrites the provided balance categories for the target user,
	// leaving omitted categories untouched. Admin only.
	SetBalance(ctx context.Context, actor Actor, targetUserID string, req UpdateBalanceRequest) (UserResponse, error)
}
