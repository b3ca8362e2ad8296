package report

import (
	"context"
	"time"
)

// StatusCounts combines present/late/absent totals for a range in one query
type StatusCounts struct {
	Total   int64
	Present int64
	Late    int64
	Absent  int64
}

// DepartmentStats aggregates a single department over the range
type DepartmentStats struct {
	DepartmentName string
	Total          int64
	Present        int64
	Late           int64
	Absent         int64
}

// RecordRow is one line of the report listing/export
type RecordRow struct {
	Date           time.Time
	EmployeeCode   string
	EmployeeName   string
	DepartmentName *string
	CheckIn        *time.Time
	CheckOut       *time.Time
	Status         string
	WorkingHours   *float64
}

type ReportRepository interface {
	GetStatusCounts(ctx context.Context, start, end time.Time) (StatusCounts, error)
	GetDepartmentStats(ctx context.Context, start, end time.Time) ([]DepartmentStats, error)
	GetRecords(ctx context.Context, start, end time.Time) ([]RecordRow, error)
}
