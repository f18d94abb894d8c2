package user

import (
	"context"
)

// UserRepository - interface for the users table
type UserRepository interface {
	Create(ctx context.Context, newUser User) (User, error)
	GetByID(ctx context.Context, id string) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	List(ctx context.Context) ([]User, error)
	LinkGoogleAccount(ctx context.Context, googleID string, email string) (User, error)
}

// BalanceRepository - per-user leave balance access.
//
// GetBalanceForUpdate and Debit are meant to run inside a transaction: the former
// locks the user's row so concurrent approvals for the same user serialize, and the
// latter is a guarded decrement that refuses to take a balance below zero.
type BalanceRepository interface {
	GetBalance(ctx context.Context, userID string) (Balance, error)
	GetBalanceForUpdate(ctx context.Context, userID string) (Balance, error)
	// SetBalance overwrites only the provided categories and returns the result.
	SetBalance(ctx context.Context, userID string, req UpdateBalanceRequest) (Balance, error)
	// Debit subtracts days from one category. It fails without mutation when the
	// remaining balance is smaller than days.
	Debit(ctx context.Context, userID string, category string, days int) error
}
