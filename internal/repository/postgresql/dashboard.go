package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/attendly/attendance-backend-go/internal/domain/dashboard"
	"github.com/attendly/attendance-backend-go/internal/pkg/database"
)

type dashboardRepositoryImpl struct {
	db *database.DB
}

func NewDashboardRepository(db *database.DB) dashboard.DashboardRepository {
	return &dashboardRepositoryImpl{db: db}
}

// GetTodayStats implements dashboard.DashboardRepository.
func (d *dashboardRepositoryImpl) GetTodayStats(ctx context.Context, date time.Time) (dashboard.TodayStats, error) {
	q := GetQuerier(ctx, d.db)

	query := `
		SELECT
			(SELECT COUNT(*) FROM employees WHERE is_active = TRUE),
			COUNT(a.id) FILTER (WHERE a.status IN ('present', 'late')),
			COUNT(a.id) FILTER (WHERE a.status = 'late'),
			COALESCE(AVG(a.working_hours), 0)
		FROM attendances a
		WHERE a.date = $1
	`

	var stats dashboard.TodayStats
	err := q.QueryRow(ctx, query, date).Scan(
		&stats.TotalEmployees, &stats.PresentCount, &stats.LateCount, &stats.AvgWorkingHours,
	)
	if err != nil {
		return dashboard.TodayStats{}, fmt.Errorf("failed to get today stats: %w", err)
	}

	return stats, nil
}

// GetRecentRecords implements dashboard.DashboardRepository.
func (d *dashboardRepositoryImpl) GetRecentRecords(ctx context.Context, date time.Time, limit int) ([]dashboard.RecentRecord, error) {
	q := GetQuerier(ctx, d.db)

	query := `
		SELECT e.employee_code, u.full_name, a.check_in, a.status
		FROM attendances a
		JOIN employees e ON e.id = a.employee_id
		JOIN users u ON u.id = e.user_id
		WHERE a.date = $1 AND a.check_in IS NOT NULL
		ORDER BY a.check_in DESC
		LIMIT $2
	`

	rows, err := q.Query(ctx, query, date, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get recent records: %w", err)
	}
	defer rows.Close()

	var records []dashboard.RecentRecord
	for rows.Next() {
		var rec dashboard.RecentRecord
		if err := rows.Scan(&rec.EmployeeCode, &rec.EmployeeName, &rec.CheckIn, &rec.Status); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return records, nil
}

// GetAbsentEmployees implements dashboard.DashboardRepository.
func (d *dashboardRepositoryImpl) GetAbsentEmployees(ctx context.Context, date time.Time) ([]dashboard.AbsentEmployee, error) {
	q := GetQuerier(ctx, d.db)

	query := `
		SELECT e.employee_code, u.full_name, d.name
		FROM employees e
		JOIN users u ON u.id = e.user_id
		LEFT JOIN departments d ON d.id = e.department_id
		WHERE e.is_active = TRUE
		AND NOT EXISTS (
			SELECT 1 FROM attendances a
			WHERE a.employee_id = e.id AND a.date = $1 AND a.check_in IS NOT NULL
		)
		ORDER BY e.employee_code ASC
	`

	rows, err := q.Query(ctx, query, date)
	if err != nil {
		return nil, fmt.Errorf("failed to get absent employees: %w", err)
	}
	defer rows.Close()

	var absentees []dashboard.AbsentEmployee
	for rows.Next() {
		var emp dashboard.AbsentEmployee
		if err := rows.Scan(&emp.EmployeeCode, &emp.FullName, &emp.DepartmentName); err != nil {
			return nil, err
		}
		absentees = append(absentees, emp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return absentees, nil
}
