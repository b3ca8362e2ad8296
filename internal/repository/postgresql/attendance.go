package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/attendly/attendance-backend-go/internal/domain/attendance"
	"github.com/attendly/attendance-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type attendanceRepositoryImpl struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepositoryImpl{db: db}
}

const attendanceColumns = `
	a.id, a.employee_id, a.date, a.check_in, a.check_out, a.verification_method,
	a.status, a.working_hours, a.notes, a.created_at, a.updated_at,
	u.full_name, e.employee_code, d.name
`

const attendanceJoins = `
	FROM attendances a
	JOIN employees e ON e.id = a.employee_id
	JOIN users u ON u.id = e.user_id
	LEFT JOIN departments d ON d.id = e.department_id
`

func scanAttendance(row pgx.Row) (attendance.Attendance, error) {
	var att attendance.Attendance
	err := row.Scan(
		&att.ID, &att.EmployeeID, &att.Date, &att.CheckIn, &att.CheckOut,
		&att.VerificationMethod, &att.Status, &att.WorkingHours, &att.Notes,
		&att.CreatedAt, &att.UpdatedAt,
		&att.EmployeeName, &att.EmployeeCode, &att.DepartmentName,
	)
	return att, err
}

// CreateOrGetForDate implements attendance.AttendanceRepository. The unique
// (employee_id, date) constraint plus ON CONFLICT DO NOTHING makes concurrent
// check-ins converge on one row; the loser fetches the winner's row.
func (a *attendanceRepositoryImpl) CreateOrGetForDate(ctx context.Context, att attendance.Attendance) (attendance.Attendance, bool, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		INSERT INTO attendances (employee_id, date, check_in, verification_method, status)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (employee_id, date) DO NOTHING
		RETURNING id, employee_id, date, check_in, check_out, verification_method,
			status, working_hours, notes, created_at, updated_at
	`

	var created attendance.Attendance
	err := q.QueryRow(ctx, query,
		att.EmployeeID, att.Date, att.CheckIn, att.VerificationMethod, att.Status,
	).Scan(
		&created.ID, &created.EmployeeID, &created.Date, &created.CheckIn,
		&created.CheckOut, &created.VerificationMethod, &created.Status,
		&created.WorkingHours, &created.Notes, &created.CreatedAt, &created.UpdatedAt,
	)
	if err == nil {
		return created, true, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return attendance.Attendance{}, false, fmt.Errorf("failed to create attendance: %w", err)
	}

	existing, err := a.GetByEmployeeAndDate(ctx, att.EmployeeID, att.Date)
	if err != nil {
		return attendance.Attendance{}, false, err
	}
	if existing == nil {
		return attendance.Attendance{}, false, attendance.ErrAttendanceNotFound
	}

	return *existing, false, nil
}

// GetByID implements attendance.AttendanceRepository.
func (a *attendanceRepositoryImpl) GetByID(ctx context.Context, id string) (attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `SELECT` + attendanceColumns + attendanceJoins + `WHERE a.id = $1`

	att, err := scanAttendance(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Attendance{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Attendance{}, fmt.Errorf("failed to get attendance by id: %w", err)
	}

	return att, nil
}

// GetByEmployeeAndDate implements attendance.AttendanceRepository.
func (a *attendanceRepositoryImpl) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `SELECT` + attendanceColumns + attendanceJoins + `WHERE a.employee_id = $1 AND a.date = $2`

	att, err := scanAttendance(q.QueryRow(ctx, query, employeeID, date))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get attendance by employee and date: %w", err)
	}

	return &att, nil
}

// SetCheckIn implements attendance.AttendanceRepository.
func (a *attendanceRepositoryImpl) SetCheckIn(ctx context.Context, id string, checkIn time.Time, method attendance.VerificationMethod, status attendance.Status) error {
	q := GetQuerier(ctx, a.db)

	query := `
		UPDATE attendances
		SET check_in = $1, verification_method = $2, status = $3, updated_at = NOW()
		WHERE id = $4 AND check_in IS NULL
	`

	tag, err := q.Exec(ctx, query, checkIn, method, status, id)
	if err != nil {
		return fmt.Errorf("failed to set check-in: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrAlreadyCheckedIn
	}

	return nil
}

// SetCheckOut implements attendance.AttendanceRepository.
func (a *attendanceRepositoryImpl) SetCheckOut(ctx context.Context, att attendance.Attendance) (bool, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		UPDATE attendances
		SET check_out = $1, working_hours = $2, updated_at = NOW()
		WHERE id = $3 AND check_out IS NULL
	`

	tag, err := q.Exec(ctx, query, att.CheckOut, att.WorkingHours, att.ID)
	if err != nil {
		return false, fmt.Errorf("failed to set check-out: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}

// Update implements attendance.AttendanceRepository.
func (a *attendanceRepositoryImpl) Update(ctx context.Context, att attendance.Attendance) error {
	q := GetQuerier(ctx, a.db)

	query := `
		UPDATE attendances
		SET check_in = $1, check_out = $2, status = $3, working_hours = $4,
			notes = $5, updated_at = NOW()
		WHERE id = $6
	`

	tag, err := q.Exec(ctx, query,
		att.CheckIn, att.CheckOut, att.Status, att.WorkingHours, att.Notes, att.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update attendance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrAttendanceNotFound
	}

	return nil
}

// List implements attendance.AttendanceRepository.
func (a *attendanceRepositoryImpl) List(ctx context.Context, filter attendance.AttendanceFilter) ([]attendance.Attendance, int64, error) {
	q := GetQuerier(ctx, a.db)

	conditions := []string{"1=1"}
	args := []interface{}{}
	argIdx := 1

	addCondition := func(expr string, value interface{}) {
		conditions = append(conditions, fmt.Sprintf(expr, argIdx))
		args = append(args, value)
		argIdx++
	}

	if filter.Date != nil {
		addCondition("a.date = $%d", *filter.Date)
	}
	if filter.StartDate != nil {
		addCondition("a.date >= $%d", *filter.StartDate)
	}
	if filter.EndDate != nil {
		addCondition("a.date <= $%d", *filter.EndDate)
	}
	if filter.Status != nil {
		addCondition("a.status = $%d", *filter.Status)
	}
	if filter.DepartmentID != nil {
		addCondition("e.department_id = $%d", *filter.DepartmentID)
	}
	if filter.EmployeeID != nil {
		addCondition("a.employee_id = $%d", *filter.EmployeeID)
	}

	where := "WHERE " + strings.Join(conditions, " AND ")

	countQuery := `SELECT COUNT(*)` + attendanceJoins + where

	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count attendances: %w", err)
	}

	sortColumns := map[string]string{
		"date":          "a.date",
		"check_in":      "a.check_in",
		"employee_code": "e.employee_code",
		"status":        "a.status",
	}
	orderBy := "a.date DESC, a.check_in DESC"
	if col, ok := sortColumns[filter.SortBy]; ok {
		direction := "ASC"
		if strings.EqualFold(filter.SortOrder, "desc") {
			direction = "DESC"
		}
		orderBy = col + " " + direction
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

	listQuery := `SELECT` + attendanceColumns + attendanceJoins + where +
		fmt.Sprintf(" ORDER BY %s LIMIT $%d OFFSET $%d", orderBy, argIdx, argIdx+1)
	args = append(args, limit, offset)

	return a.queryList(ctx, q, listQuery, args, total)
}

// GetMyAttendance implements attendance.AttendanceRepository.
func (a *attendanceRepositoryImpl) GetMyAttendance(ctx context.Context, employeeID string, filter attendance.MyAttendanceFilter) ([]attendance.Attendance, int64, error) {
	q := GetQuerier(ctx, a.db)

	conditions := []string{"a.employee_id = $1"}
	args := []interface{}{employeeID}
	argIdx := 2

	if filter.StartDate != nil {
		conditions = append(conditions, fmt.Sprintf("a.date >= $%d", argIdx))
		args = append(args, *filter.StartDate)
		argIdx++
	}
	if filter.EndDate != nil {
		conditions = append(conditions, fmt.Sprintf("a.date <= $%d", argIdx))
		args = append(args, *filter.EndDate)
		argIdx++
	}
	if filter.Status != nil {
		conditions = append(conditions, fmt.Sprintf("a.status = $%d", argIdx))
		args = append(args, *filter.Status)
		argIdx++
	}

	where := "WHERE " + strings.Join(conditions, " AND ")

	countQuery := `SELECT COUNT(*)` + attendanceJoins + where

	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count my attendances: %w", err)
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

	listQuery := `SELECT` + attendanceColumns + attendanceJoins + where +
		fmt.Sprintf(" ORDER BY a.date DESC LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, limit, offset)

	return a.queryList(ctx, q, listQuery, args, total)
}

func (a *attendanceRepositoryImpl) queryList(ctx context.Context, q database.Querier, query string, args []interface{}, total int64) ([]attendance.Attendance, int64, error) {
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list attendances: %w", err)
	}
	defer rows.Close()

	var attendances []attendance.Attendance
	for rows.Next() {
		att, err := scanAttendance(rows)
		if err != nil {
			return nil, 0, err
		}
		attendances = append(attendances, att)
	}

	if err = rows.Err(); err != nil {
		return nil, 0, err
	}

	return attendances, total, nil
}

// CreateAbsentPlaceholders implements attendance.AttendanceRepository.
func (a *attendanceRepositoryImpl) CreateAbsentPlaceholders(ctx context.Context, date time.Time, employeeIDs []string) (int64, error) {
	if len(employeeIDs) == 0 {
		return 0, nil
	}

	q := GetQuerier(ctx, a.db)

	query := `
		INSERT INTO attendances (employee_id, date, status)
		SELECT unnest($1::uuid[]), $2, $3
		ON CONFLICT (employee_id, date) DO NOTHING
	`

	tag, err := q.Exec(ctx, query, employeeIDs, date, attendance.StatusAbsent)
	if err != nil {
		return 0, fmt.Errorf("failed to create absent placeholders: %w", err)
	}

	return tag.RowsAffected(), nil
}
