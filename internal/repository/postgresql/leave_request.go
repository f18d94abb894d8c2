package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/leave-management-go/internal/domain/leave"
	"github.com/cmlabs-hris/leave-management-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type leaveRequestRepositoryImpl struct {
	db *database.DB
}

func NewLeaveRequestRepository(db *database.DB) leave.LeaveRequestRepository {
	return &leaveRequestRepositoryImpl{db: db}
}

func (r *leaveRequestRepositoryImpl) Create(ctx context.Context, request leave.LeaveRequest) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO leave_requests (
			id, requester_id, leave_type,
			start_date, end_date, number_of_days,
			reason, status, applied_at,
			created_at, updated_at
		) VALUES (
			uuidv7(), $1, $2,
			$3, $4, $5,
			$6, $7, NOW(),
			NOW(), NOW()
		) RETURNING id, applied_at, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		request.RequesterID, request.Type,
		request.StartDate, request.EndDate, request.NumberOfDays,
		request.Reason, request.Status,
	).Scan(&request.ID, &request.AppliedAt, &request.CreatedAt, &request.UpdatedAt)

	if err != nil {
		return leave.LeaveRequest{}, err
	}

	return request, nil
}

func (r *leaveRequestRepositoryImpl) GetByID(ctx context.Context, id string) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT lr.id, lr.requester_id, lr.leave_type,
			   lr.start_date, lr.end_date, lr.number_of_days,
			   lr.reason, lr.status, lr.comments,
			   lr.reviewer_id, lr.applied_at, lr.reviewed_at,
			   lr.created_at, lr.updated_at,
			   u.name as requester_name,
			   u.email as requester_email,
			   u.department as requester_department
		FROM leave_requests lr
		JOIN users u ON lr.requester_id = u.id
		WHERE lr.id = $1
	`

	var req leave.LeaveRequest
	err := q.QueryRow(ctx, query, id).Scan(
		&req.ID, &req.RequesterID, &req.Type,
		&req.StartDate, &req.EndDate, &req.NumberOfDays,
		&req.Reason, &req.Status, &req.Comments,
		&req.ReviewerID, &req.AppliedAt, &req.ReviewedAt,
		&req.CreatedAt, &req.UpdatedAt,
		&req.RequesterName, &req.RequesterEmail, &req.RequesterDepartment,
	)

	if err != nil {
		if err == pgx.ErrNoRows {
			return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
		}
		return leave.LeaveRequest{}, err
	}

	return req, nil
}

func (r *leaveRequestRepositoryImpl) ListByRequester(ctx context.Context, requesterID string) ([]leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT lr.id, lr.requester_id, lr.leave_type,
			   lr.start_date, lr.end_date, lr.number_of_days,
			   lr.reason, lr.status, lr.comments,
			   lr.reviewer_id, lr.applied_at, lr.reviewed_at,
			   lr.created_at, lr.updated_at
		FROM leave_requests lr
		WHERE lr.requester_id = $1
		ORDER BY lr.applied_at DESC
	`

	rows, err := q.Query(ctx, query, requesterID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var requests []leave.LeaveRequest
	for rows.Next() {
		var lr leave.LeaveRequest
		err := rows.Scan(
			&lr.ID, &lr.RequesterID, &lr.Type,
			&lr.StartDate, &lr.EndDate, &lr.NumberOfDays,
			&lr.Reason, &lr.Status, &lr.Comments,
			&lr.ReviewerID, &lr.AppliedAt, &lr.ReviewedAt,
			&lr.CreatedAt, &lr.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		requests = append(requests, lr)
	}

	return requests, rows.Err()
}

func (r *leaveRequestRepositoryImpl) ListAll(ctx context.Context) ([]leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT lr.id, lr.requester_id, lr.leave_type,
			   lr.start_date, lr.end_date, lr.number_of_days,
			   lr.reason, lr.status, lr.comments,
			   lr.reviewer_id, lr.applied_at, lr.reviewed_at,
			   lr.created_at, lr.updated_at,
			   u.name as requester_name,
			   u.email as requester_email,
			   u.department as requester_department
		FROM leave_requests lr
		JOIN users u ON lr.requester_id = u.id
		ORDER BY lr.applied_at DESC
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var requests []leave.LeaveRequest
	for rows.Next() {
		var lr leave.LeaveRequest
		err := rows.Scan(
			&lr.ID, &lr.RequesterID, &lr.Type,
			&lr.StartDate, &lr.EndDate, &lr.NumberOfDays,
			&lr.Reason, &lr.Status, &lr.Comments,
			&lr.ReviewerID, &lr.AppliedAt, &lr.ReviewedAt,
			&lr.CreatedAt, &lr.UpdatedAt,
			&lr.RequesterName, &lr.RequesterEmail, &lr.RequesterDepartment,
		)
		if err != nil {
			return nil, err
		}
		requests = append(requests, lr)
	}

	return requests, rows.Err()
}

func (r *leaveRequestRepositoryImpl) HasOverlapping(ctx context.Context, requesterID string, start, end time.Time) (bool, error) {
	q := GetQuerier(ctx, r.db)

	// Inclusive bounds: ranges that merely touch count as overlapping.
	query := `
		SELECT EXISTS(
			SELECT 1 FROM leave_requests
			WHERE requester_id = $1
			  AND status IN ('pending', 'approved')
			  AND start_date <= $3
			  AND end_date >= $2
		)
	`

	var exists bool
	if err := q.QueryRow(ctx, query, requesterID, start, end).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *leaveRequestRepositoryImpl) UpdateReview(ctx context.Context, request leave.LeaveRequest) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leave_requests
		SET status = $1, comments = $2, reviewer_id = $3, reviewed_at = $4, updated_at = NOW()
		WHERE id = $5
	`

	commandTag, err := q.Exec(ctx, query,
		request.Status, request.Comments, request.ReviewerID, request.ReviewedAt, request.ID,
	)
	if err != nil {
		return err
	}
	if commandTag.RowsAffected() != 1 {
		return leave.ErrLeaveRequestNotFound
	}
	return nil
}

func (r *leaveRequestRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	// Status guard in the statement itself: a request reviewed between the
	// service's check and this delete stays put.
	query := `
		DELETE FROM leave_requests
		WHERE id = $1 AND status = 'pending'
	`
	commandTag, err := q.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if commandTag.RowsAffected() != 1 {
		return fmt.Errorf("leave request with id %s not found: %w", id, leave.ErrLeaveRequestNotFound)
	}
	return nil
}
