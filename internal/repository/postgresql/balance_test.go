package postgresql_test

import (
	"context"
	"sync"
	"testing"

	"github.com/cmlabs-hris/leave-management-go/internal/domain/leave"
	"github.com/cmlabs-hris/leave-management-go/internal/domain/user"
	"github.com/cmlabs-hris/leave-management-go/internal/repository/postgresql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ===== BALANCE REPOSITORY TESTS =====

func TestBalanceRepository_Debit_GuardedDecrement(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	created := createTestUser(t, ctx, "debit@example.com", user.Balance{Sick: 3, Casual: 15, Annual: 20})
	balanceRepo := postgresql.NewBalanceRepository(db)

	// Asking for more than remains fails without mutation.
	err := balanceRepo.Debit(ctx, created.ID, "sick", 5)
	assert.ErrorIs(t, err, leave.ErrInsufficientBalance)

	balance, err := balanceRepo.GetBalance(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, balance.Sick)

	// Debiting exactly the remainder takes it to zero.
	require.NoError(t, balanceRepo.Debit(ctx, created.ID, "sick", 3))

	balance, err = balanceRepo.GetBalance(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, balance.Sick)

	// Zero never goes negative.
	err = balanceRepo.Debit(ctx, created.ID, "sick", 1)
	assert.ErrorIs(t, err, leave.ErrInsufficientBalance)

	// The other categories are untouched throughout.
	balance, err = balanceRepo.GetBalance(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, 15, balance.Casual)
	assert.Equal(t, 20, balance.Annual)
}

func TestBalanceRepository_SetBalance_PartialOverwrite(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	created := createTestUser(t, ctx, "partial@example.com", user.DefaultBalance())
	balanceRepo := postgresql.NewBalanceRepository(db)

	// Only the provided category changes; COALESCE keeps the rest.
	casual := 7
	balance, err := balanceRepo.SetBalance(ctx, created.ID, user.UpdateBalanceRequest{Casual: &casual})
	require.NoError(t, err)
	assert.Equal(t, user.Balance{Sick: 10, Casual: 7, Annual: 20}, balance)

	sick, annual := 1, 2
	balance, err = balanceRepo.SetBalance(ctx, created.ID, user.UpdateBalanceRequest{Sick: &sick, Annual: &annual})
	require.NoError(t, err)
	assert.Equal(t, user.Balance{Sick: 1, Casual: 7, Annual: 2}, balance)
}

func TestBalanceRepository_SetBalance_UnknownUser(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	balanceRepo := postgresql.NewBalanceRepository(db)

	sick := 3
	_, err := balanceRepo.SetBalance(ctx, "00000000-0000-7000-8000-000000000000", user.UpdateBalanceRequest{Sick: &sick})
	assert.ErrorIs(t, err, user.ErrUserNotFound)
}

// Two transactions race to approve against the same balance. The row lock
// serializes them: the second sees the debited balance, so exactly one debit
// lands and the balance never goes below what the guard allows.
func TestBalanceRepository_GetBalanceForUpdate_SerializesConcurrentApprovals(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	created := createTestUser(t, ctx, "concurrent@example.com", user.Balance{Sick: 10, Casual: 15, Annual: 5})
	balanceRepo := postgresql.NewBalanceRepository(db)

	const days = 3

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = db.WithinTransaction(ctx, func(txCtx context.Context) error {
				balance, err := balanceRepo.GetBalanceForUpdate(txCtx, created.ID)
				if err != nil {
					return err
				}
				if balance.Annual < days {
					return leave.ErrInsufficientBalance
				}
				return balanceRepo.Debit(txCtx, created.ID, "annual", days)
			})
		}(i)
	}
	wg.Wait()

	succeeded, refused := 0, 0
	for _, err := range errs {
		switch {
		case err == nil:
			succeeded++
		case assert.ErrorIs(t, err, leave.ErrInsufficientBalance):
			refused++
		}
	}
	assert.Equal(t, 1, succeeded)
	assert.Equal(t, 1, refused)

	balance, err := balanceRepo.GetBalance(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, balance.Annual) // 5 - 3, exactly once
}
