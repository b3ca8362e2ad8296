package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/attendly/attendance-backend-go/internal/domain/report"
	"github.com/attendly/attendance-backend-go/internal/pkg/database"
)

type reportRepositoryImpl struct {
	db *database.DB
}

func NewReportRepository(db *database.DB) report.ReportRepository {
	return &reportRepositoryImpl{db: db}
}

// GetStatusCounts implements report.ReportRepository.
func (r *reportRepositoryImpl) GetStatusCounts(ctx context.Context, start, end time.Time) (report.StatusCounts, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE status = 'present'),
			COUNT(*) FILTER (WHERE status = 'late'),
			COUNT(*) FILTER (WHERE status = 'absent')
		FROM attendances
		WHERE date BETWEEN $1 AND $2
	`

	var counts report.StatusCounts
	err := q.QueryRow(ctx, query, start, end).Scan(
		&counts.Total, &counts.Present, &counts.Late, &counts.Absent,
	)
	if err != nil {
		return report.StatusCounts{}, fmt.Errorf("failed to get status counts: %w", err)
	}

	return counts, nil
}

// GetDepartmentStats implements report.ReportRepository.
func (r *reportRepositoryImpl) GetDepartmentStats(ctx context.Context, start, end time.Time) ([]report.DepartmentStats, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT
			COALESCE(d.name, 'Unassigned'),
			COUNT(a.id),
			COUNT(a.id) FILTER (WHERE a.status = 'present'),
			COUNT(a.id) FILTER (WHERE a.status = 'late'),
			COUNT(a.id) FILTER (WHERE a.status = 'absent')
		FROM attendances a
		JOIN employees e ON e.id = a.employee_id
		LEFT JOIN departments d ON d.id = e.department_id
		WHERE a.date BETWEEN $1 AND $2
		GROUP BY COALESCE(d.name, 'Unassigned')
		ORDER BY COALESCE(d.name, 'Unassigned')
	`

	rows, err := q.Query(ctx, query, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to get department stats: %w", err)
	}
	defer rows.Close()

	var stats []report.DepartmentStats
	for rows.Next() {
		var s report.DepartmentStats
		if err := rows.Scan(&s.DepartmentName, &s.Total, &s.Present, &s.Late, &s.Absent); err != nil {
			return nil, err
		}
		stats = append(stats, s)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return stats, nil
}

// GetRecords implements report.ReportRepository.
func (r *reportRepositoryImpl) GetRecords(ctx context.Context, start, end time.Time) ([]report.RecordRow, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT a.date, e.employee_code, u.full_name, d.name,
			a.check_in, a.check_out, a.status, a.working_hours
		FROM attendances a
		JOIN employees e ON e.id = a.employee_id
		JOIN users u ON u.id = e.user_id
		LEFT JOIN departments d ON d.id = e.department_id
		WHERE a.date BETWEEN $1 AND $2
		ORDER BY a.date ASC, e.employee_code ASC
	`

	rows, err := q.Query(ctx, query, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to get report records: %w", err)
	}
	defer rows.Close()

	var records []report.RecordRow
	for rows.Next() {
		var rec report.RecordRow
		err := rows.Scan(
			&rec.Date, &rec.EmployeeCode, &rec.EmployeeName, &rec.DepartmentName,
			&rec.CheckIn, &rec.CheckOut, &rec.Status, &rec.WorkingHours,
		)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return records, nil
}
