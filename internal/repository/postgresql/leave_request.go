package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/attendly/attendance-backend-go/internal/domain/leave"
	"github.com/attendly/attendance-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type leaveRequestRepositoryImpl struct {
	db *database.DB
}

func NewLeaveRequestRepository(db *database.DB) leave.LeaveRequestRepository {
	return &leaveRequestRepositoryImpl{db: db}
}

const leaveRequestColumns = `
	l.id, l.employee_id, l.leave_type, l.start_date, l.end_date, l.reason,
	l.status, l.approved_by, l.decided_at, l.created_at, l.updated_at,
	u.full_name, e.employee_code
`

const leaveRequestJoins = `
	FROM leave_requests l
	JOIN employees e ON e.id = l.employee_id
	JOIN users u ON u.id = e.user_id
`

func scanLeaveRequest(row pgx.Row) (leave.LeaveRequest, error) {
	var request leave.LeaveRequest
	err := row.Scan(
		&request.ID, &request.EmployeeID, &request.LeaveType, &request.StartDate,
		&request.EndDate, &request.Reason, &request.Status, &request.ApprovedBy,
		&request.DecidedAt, &request.CreatedAt, &request.UpdatedAt,
		&request.EmployeeName, &request.EmployeeCode,
	)
	return request, err
}

// Create implements leave.LeaveRequestRepository.
func (l *leaveRequestRepositoryImpl) Create(ctx context.Context, request leave.LeaveRequest) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, l.db)

	query := `
		INSERT INTO leave_requests (employee_id, leave_type, start_date, end_date, reason, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, employee_id, leave_type, start_date, end_date, reason,
			status, approved_by, decided_at, created_at, updated_at
	`

	var created leave.LeaveRequest
	err := q.QueryRow(ctx, query,
		request.EmployeeID, request.LeaveType, request.StartDate,
		request.EndDate, request.Reason, request.Status,
	).Scan(
		&created.ID, &created.EmployeeID, &created.LeaveType, &created.StartDate,
		&created.EndDate, &created.Reason, &created.Status, &created.ApprovedBy,
		&created.DecidedAt, &created.CreatedAt, &created.UpdatedAt,
	)
	if err != nil {
		return leave.LeaveRequest{}, fmt.Errorf("failed to create leave request: %w", err)
	}

	return created, nil
}

// GetByID implements leave.LeaveRequestRepository.
func (l *leaveRequestRepositoryImpl) GetByID(ctx context.Context, id string) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, l.db)

	query := `SELECT` + leaveRequestColumns + leaveRequestJoins + `WHERE l.id = $1`

	request, err := scanLeaveRequest(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
		}
		return leave.LeaveRequest{}, fmt.Errorf("failed to get leave request: %w", err)
	}

	return request, nil
}

// List implements leave.LeaveRequestRepository.
func (l *leaveRequestRepositoryImpl) List(ctx context.Context, filter leave.LeaveRequestFilter) ([]leave.LeaveRequest, int64, error) {
	q := GetQuerier(ctx, l.db)

	conditions := []string{"1=1"}
	args := []interface{}{}
	argIdx := 1

	addCondition := func(expr string, value interface{}) {
		conditions = append(conditions, fmt.Sprintf(expr, argIdx))
		args = append(args, value)
		argIdx++
	}

	if filter.Status != nil {
		addCondition("l.status = $%d", *filter.Status)
	}
	if filter.LeaveType != nil {
		addCondition("l.leave_type = $%d", *filter.LeaveType)
	}
	if filter.EmployeeID != nil {
		addCondition("l.employee_id = $%d", *filter.EmployeeID)
	}
	if filter.StartDate != nil {
		addCondition("l.end_date >= $%d", *filter.StartDate)
	}
	if filter.EndDate != nil {
		addCondition("l.start_date <= $%d", *filter.EndDate)
	}

	where := "WHERE " + strings.Join(conditions, " AND ")

	countQuery := `SELECT COUNT(*)` + leaveRequestJoins + where

	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count leave requests: %w", err)
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}
	page := filter.Page
	if page <= 0 {
		page = 1
	}
	offset := (page - 1) * limit

	// Pending first so approvers see actionable requests at the top
	listQuery := `SELECT` + leaveRequestColumns + leaveRequestJoins + where +
		fmt.Sprintf(" ORDER BY (l.status = 'pending') DESC, l.created_at DESC LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, limit, offset)

	return l.queryList(ctx, q, listQuery, args, total)
}

// GetByEmployeeID implements leave.LeaveRequestRepository.
func (l *leaveRequestRepositoryImpl) GetByEmployeeID(ctx context.Context, employeeID string, filter leave.MyLeaveRequestFilter) ([]leave.LeaveRequest, int64, error) {
	q := GetQuerier(ctx, l.db)

	conditions := []string{"l.employee_id = $1"}
	args := []interface{}{employeeID}
	argIdx := 2

	if filter.Status != nil {
		conditions = append(conditions, fmt.Sprintf("l.status = $%d", argIdx))
		args = append(args, *filter.Status)
		argIdx++
	}

	where := "WHERE " + strings.Join(conditions, " AND ")

	countQuery := `SELECT COUNT(*)` + leaveRequestJoins + where

	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count my leave requests: %w", err)
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}
	page := filter.Page
	if page <= 0 {
		page = 1
	}
	offset := (page - 1) * limit

	listQuery := `SELECT` + leaveRequestColumns + leaveRequestJoins + where +
		fmt.Sprintf(" ORDER BY l.created_at DESC LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, limit, offset)

	return l.queryList(ctx, q, listQuery, args, total)
}

func (l *leaveRequestRepositoryImpl) queryList(ctx context.Context, q database.Querier, query string, args []interface{}, total int64) ([]leave.LeaveRequest, int64, error) {
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list leave requests: %w", err)
	}
	defer rows.Close()

	var requests []leave.LeaveRequest
	for rows.Next() {
		request, err := scanLeaveRequest(rows)
		if err != nil {
			return nil, 0, err
		}
		requests = append(requests, request)
	}

	if err = rows.Err(); err != nil {
		return nil, 0, err
	}

	return requests, total, nil
}

// Decide implements leave.LeaveRequestRepository. The status guard makes the
// pending -> decided transition one-way even under concurrent approvals.
func (l *leaveRequestRepositoryImpl) Decide(ctx context.Context, id string, status leave.LeaveRequestStatus, approvedBy string) (bool, error) {
	q := GetQuerier(ctx, l.db)

	query := `
		UPDATE leave_requests
		SET status = $1, approved_by = $2, decided_at = NOW(), updated_at = NOW()
		WHERE id = $3 AND status = 'pending'
	`

	tag, err := q.Exec(ctx, query, status, approvedBy, id)
	if err != nil {
		return false, fmt.Errorf("failed to decide leave request: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}
