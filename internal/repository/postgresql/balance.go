package postgresql

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/leave-management-go/internal/domain/leave"
	"github.com/cmlabs-hris/leave-management-go/internal/domain/user"
	"github.com/cmlabs-hris/leave-management-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type balanceRepositoryImpl struct {
	db *database.DB
}

func NewBalanceRepository(db *database.DB) user.BalanceRepository {
	return &balanceRepositoryImpl{db: db}
}

// balanceColumn maps a leave category to its column. Categories never come from
// user input unchecked, but the switch keeps identifiers out of reach anyway.
func balanceColumn(category string) (string, error) {
	switch category {
	case "sick":
		return "sick_balance", nil
	case "casual":
		return "casual_balance", nil
	case "annual":
		return "annual_balance", nil
	}
	return "", fmt.Errorf("unknown leave category %q", category)
}

func (r *balanceRepositoryImpl) GetBalance(ctx context.Context, userID string) (user.Balance, error) {
	return r.getBalance(ctx, userID, false)
}

// GetBalanceForUpdate locks the user's row for the rest of the transaction so
// concurrent approvals for the same user serialize.
func (r *balanceRepositoryImpl) GetBalanceForUpdate(ctx context.Context, userID string) (user.Balance, error) {
	return r.getBalance(ctx, userID, true)
}

func (r *balanceRepositoryImpl) getBalance(ctx context.Context, userID string, forUpdate bool) (user.Balance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT sick_balance, casual_balance, annual_balance
		FROM users
		WHERE id = $1
	`
	if forUpdate {
		query += ` FOR UPDATE`
	}

	var balance user.Balance
	err := q.QueryRow(ctx, query, userID).Scan(&balance.Sick, &balance.Casual, &balance.Annual)
	if err != nil {
		if err == pgx.ErrNoRows {
			return user.Balance{}, user.ErrUserNotFound
		}
		return user.Balance{}, err
	}
	return balance, nil
}

func (r *balanceRepositoryImpl) SetBalance(ctx context.Context, userID string, req user.UpdateBalanceRequest) (user.Balance, error) {
	q := GetQuerier(ctx, r.db)

	// COALESCE keeps omitted categories at their prior value.
	query := `
		UPDATE users
		SET sick_balance   = COALESCE($1, sick_balance),
			casual_balance = COALESCE($2, casual_balance),
			annual_balance = COALESCE($3, annual_balance),
			updated_at     = NOW()
		WHERE id = $4
		RETURNING sick_balance, casual_balance, annual_balance
	`

	var balance user.Balance
	err := q.QueryRow(ctx, query, req.Sick, req.Casual, req.Annual, userID).
		Scan(&balance.Sick, &balance.Casual, &balance.Annual)
	if err != nil {
		if err == pgx.ErrNoRows {
			return user.Balance{}, user.ErrUserNotFound
		}
		return user.Balance{}, err
	}
	return balance, nil
}

// Debit is a guarded decrement: the WHERE clause refuses to take the balance
// below zero, so a concurrent approval can never over-debit.
func (r *balanceRepositoryImpl) Debit(ctx context.Context, userID string, category string, days int) error {
	q := GetQuerier(ctx, r.db)

	column, err := balanceColumn(category)
	if err != nil {
		return err
	}

	query := fmt.Sprintf(`
		UPDATE users
		SET %[1]s = %[1]s - $1, updated_at = NOW()
		WHERE id = $2 AND %[1]s >= $1
	`, column)

	commandTag, err := q.Exec(ctx, query, days, userID)
	if err != nil {
		return err
	}
	if commandTag.RowsAffected() != 1 {
		return leave.ErrInsufficientBalance
	}
	return nil
}
