package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/attendly/attendance-backend-go/internal/domain/employee"
	"github.com/attendly/attendance-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type employeeRepositoryImpl struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepositoryImpl{db: db}
}

// NewEmployeeDirectory exposes the same table through the identity lookup
// used by check-in and check-out.
func NewEmployeeDirectory(db *database.DB) employee.Directory {
	return &employeeRepositoryImpl{db: db}
}

const employeeColumns = `
	e.id, e.user_id, e.department_id, e.employee_code, e.position, e.qr_token,
	e.fingerprint_template, e.fingerprint_enrolled, e.is_active, e.joined_date,
	e.created_at, e.updated_at,
	u.full_name, u.email, d.name
`

const employeeJoins = `
	FROM employees e
	JOIN users u ON u.id = e.user_id
	LEFT JOIN departments d ON d.id = e.department_id
`

func scanEmployee(row pgx.Row) (employee.Employee, error) {
	var emp employee.Employee
	err := row.Scan(
		&emp.ID, &emp.UserID, &emp.DepartmentID, &emp.EmployeeCode, &emp.Position,
		&emp.QRToken, &emp.FingerprintTemplate, &emp.FingerprintEnrolled,
		&emp.IsActive, &emp.JoinedDate, &emp.CreatedAt, &emp.UpdatedAt,
		&emp.FullName, &emp.Email, &emp.DepartmentName,
	)
	return emp, err
}

// Create implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) Create(ctx context.Context, newEmployee employee.Employee) (employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := `
		INSERT INTO employees (user_id, department_id, employee_code, position, qr_token, joined_date)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, user_id, department_id, employee_code, position, qr_token,
			fingerprint_template, fingerprint_enrolled, is_active, joined_date,
			created_at, updated_at
	`

	var created employee.Employee
	err := q.QueryRow(ctx, query,
		newEmployee.UserID, newEmployee.DepartmentID, newEmployee.EmployeeCode,
		newEmployee.Position, newEmployee.QRToken, newEmployee.JoinedDate,
	).Scan(
		&created.ID, &created.UserID, &created.DepartmentID, &created.EmployeeCode,
		&created.Position, &created.QRToken, &created.FingerprintTemplate,
		&created.FingerprintEnrolled, &created.IsActive, &created.JoinedDate,
		&created.CreatedAt, &created.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" && pgErr.ConstraintName == "employees_user_id_key" {
			return employee.Employee{}, employee.ErrUserAlreadyHasEmployee
		}
		return employee.Employee{}, fmt.Errorf("failed to create employee: %w", err)
	}

	return created, nil
}

func (e *employeeRepositoryImpl) getByColumn(ctx context.Context, column, value string) (employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := `SELECT` + employeeColumns + employeeJoins + `WHERE e.` + column + ` = $1`

	emp, err := scanEmployee(q.QueryRow(ctx, query, value))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee by %s: %w", column, err)
	}

	return emp, nil
}

// GetByID implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	return e.getByColumn(ctx, "id", id)
}

// GetByUserID implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) GetByUserID(ctx context.Context, userID string) (employee.Employee, error) {
	return e.getByColumn(ctx, "user_id", userID)
}

// GetByEmployeeCode implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) GetByEmployeeCode(ctx context.Context, employeeCode string) (employee.Employee, error) {
	return e.getByColumn(ctx, "employee_code", employeeCode)
}

// GetByQRToken implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) GetByQRToken(ctx context.Context, qrToken string) (employee.Employee, error) {
	return e.getByColumn(ctx, "qr_token", qrToken)
}

// Resolve implements employee.Directory. All identity kinds funnel through
// the same lookups; inactive employees resolve to ErrEmployeeInactive so the
// caller can tell a revoked badge from an unknown one.
func (e *employeeRepositoryImpl) Resolve(ctx context.Context, identity employee.Identity) (employee.Employee, error) {
	var (
		emp employee.Employee
		err error
	)

	switch identity.Kind {
	case employee.IdentityQR:
		emp, err = e.GetByQRToken(ctx, identity.Value)
	case employee.IdentityDeclared:
		emp, err = e.GetByEmployeeCode(ctx, identity.Value)
	case employee.IdentitySession:
		emp, err = e.GetByUserID(ctx, identity.Value)
	default:
		return employee.Employee{}, employee.ErrUnknownIdentityKind
	}

	if err != nil {
		return employee.Employee{}, err
	}
	if !emp.IsActive {
		return employee.Employee{}, employee.ErrEmployeeInactive
	}

	return emp, nil
}

// List implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) List(ctx context.Context, filter employee.EmployeeFilter) ([]employee.Employee, int64, error) {
	q := GetQuerier(ctx, e.db)

	conditions := []string{"1=1"}
	args := []interface{}{}
	argIdx := 1

	if filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf("(u.full_name ILIKE $%d OR e.employee_code ILIKE $%d)", argIdx, argIdx))
		args = append(args, "%"+filter.Search+"%")
		argIdx++
	}

	if filter.DepartmentID != nil {
		conditions = append(conditions, fmt.Sprintf("e.department_id = $%d", argIdx))
		args = append(args, *filter.DepartmentID)
		argIdx++
	}

	if filter.ActiveOnly {
		conditions = append(conditions, "e.is_active = TRUE")
	}

	where := "WHERE " + strings.Join(conditions, " AND ")

	countQuery := `SELECT COUNT(*)` + employeeJoins + where

	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count employees: %w", err)
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

	listQuery := `SELECT` + employeeColumns + employeeJoins + where +
		fmt.Sprintf(" ORDER BY e.employee_code ASC LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, limit, offset)

	rows, err := q.Query(ctx, listQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list employees: %w", err)
	}
	defer rows.Close()

	var employees []employee.Employee
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, 0, err
		}
		employees = append(employees, emp)
	}

	if err = rows.Err(); err != nil {
		return nil, 0, err
	}

	return employees, total, nil
}

// GetActiveIDsWithoutAttendance implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) GetActiveIDsWithoutAttendance(ctx context.Context, date string) ([]string, error) {
	q := GetQuerier(ctx, e.db)

	query := `
		SELECT e.id
		FROM employees e
		WHERE e.is_active = TRUE
		AND NOT EXISTS (
			SELECT 1 FROM attendances a
			WHERE a.employee_id = e.id AND a.date = $1
		)
	`

	rows, err := q.Query(ctx, query, date)
	if err != nil {
		return nil, fmt.Errorf("failed to get employees without attendance: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return ids, nil
}

// EnrollFingerprint implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) EnrollFingerprint(ctx context.Context, id string, template string) error {
	q := GetQuerier(ctx, e.db)

	query := `
		UPDATE employees
		SET fingerprint_template = $1, fingerprint_enrolled = TRUE, updated_at = NOW()
		WHERE id = $2
	`

	tag, err := q.Exec(ctx, query, template, id)
	if err != nil {
		return fmt.Errorf("failed to enroll fingerprint: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}

	return nil
}

// Deactivate implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) Deactivate(ctx context.Context, id string) error {
	q := GetQuerier(ctx, e.db)

	query := `
		UPDATE employees
		SET is_active = FALSE, updated_at = NOW()
		WHERE id = $1 AND is_active = TRUE
	`

	tag, err := q.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to deactivate employee: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrEmployeeAlreadyInactive
	}

	return nil
}
