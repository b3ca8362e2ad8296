package dashboard

import (
	"context"
	"time"
)

// TodayStats combines the day's headline counts in a single query
type TodayStats struct {
	TotalEmployees  int64
	PresentCount    int64 // present + late
	LateCount       int64
	AvgWorkingHours float64
}

// RecentRecord is one row of the day's latest check-ins
type RecentRecord struct {
	EmployeeCode string
	EmployeeName string
	CheckIn      *time.Time
	Status       string
}

// AbsentEmployee is an active employee with no record today
type AbsentEmployee struct {
	EmployeeCode   string
	FullName       string
	DepartmentName *string
}

type DashboardRepository interface {
	GetTodayStats(ctx context.Context, date time.Time) (TodayStats, error)
	GetRecentRecords(ctx context.Context, date time.Time, limit int) ([]RecentRecord, error)
	GetAbsentEmployees(ctx context.Context, date time.Time) ([]AbsentEmployee, error)
}
