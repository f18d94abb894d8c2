package postgresql

import (
	"context"

	"github.com/cmlabs-hris/leave-management-go/internal/pkg/database"
)

// GetQuerier returns the transaction carried by ctx, or the pool.
// Repositories stay oblivious to whether they run inside a transaction.
func GetQuerier(ctx context.Context, db *database.DB) database.Querier {
	if tx, ok := database.TxFromContext(ctx); ok {
		return tx
	}
	return db.Pool
}
