package postgresql_test

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/cmlabs-hris/leave-management-go/internal/domain/user"
	"github.com/cmlabs-hris/leave-management-go/internal/pkg/database"
	"github.com/cmlabs-hris/leave-management-go/internal/repository/postgresql"
	"github.com/stretchr/testify/require"
)

var testDB *database.DB

// setupTestDB connects to the test database once and hands every test a clean
// slate. Tests in this package need a real PostgreSQL and skip when
// TEST_DATABASE_URL is not set.
func setupTestDB(t *testing.T) *database.DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set; skipping database tests")
	}

	if testDB == nil {
		var err error
		testDB, err = database.NewPostgreSQLDB(dsn)
		require.NoError(t, err, "failed to connect to test database")
	}

	truncateAllTables(t, context.Background())
	return testDB
}

func truncateAllTables(t *testing.T, ctx context.Context) {
	t.Helper()

	tables := []string{
		"refresh_tokens",
		"leave_requests",
		"users",
	}

	for _, table := range tables {
		_, err := testDB.Exec(ctx, fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table))
		require.NoError(t, err, "failed to truncate table %s", table)
	}
}

// createTestUser inserts a user through the repository under test.
func createTestUser(t *testing.T, ctx context.Context, email string, balance user.Balance) user.User {
	t.Helper()

	userRepo := postgresql.NewUserRepository(testDB)
	created, err := userRepo.Create(ctx, user.User{
		Name:       "Test User",
		Email:      email,
		Role:       user.RoleEmployee,
		Department: "Engineering",
		Balance:    balance,
	})
	require.NoError(t, err)
	return created
}

// insertLeaveRequest writes a row directly so tests control status and applied_at.
func insertLeaveRequest(t *testing.T, ctx context.Context, requesterID string, status string, start, end time.Time, days int, appliedAt time.Time) string {
	t.Helper()

	var id string
	err := testDB.QueryRow(ctx, `
		INSERT INTO leave_requests (
			id, requester_id, leave_type,
			start_date, end_date, number_of_days,
			reason, status, applied_at,
			created_at, updated_at
		) VALUES (
			uuidv7(), $1, 'annual',
			$2, $3, $4,
			'test leave', $5, $6,
			NOW(), NOW()
		) RETURNING id
	`, requesterID, start, end, days, status, appliedAt).Scan(&id)
	require.NoError(t, err)
	return id
}

func date(s string) time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return d
}
