package dashboard

import (
	"context"
	"time"

	"github.com/attendly/attendance-backend-go/internal/domain/dashboard"
	"github.com/shopspring/decimal"
)

const recentRecordLimit = 10

type DashboardServiceImpl struct {
	dashboard.DashboardRepository
}

func NewDashboardService(dashboardRepo dashboard.DashboardRepository) dashboard.DashboardService {
	return &DashboardServiceImpl{DashboardRepository: dashboardRepo}
}

// GetDashboard implements dashboard.DashboardService.
func (d *DashboardServiceImpl) GetDashboard(ctx context.Context) (dashboard.DashboardResponse, error) {
	today := time.Now().UTC().Truncate(24 * time.Hour)

	stats, err := d.DashboardRepository.GetTodayStats(ctx, today)
	if err != nil {
		return dashboard.DashboardResponse{}, err
	}

	recent, err := d.DashboardRepository.GetRecentRecords(ctx, today, recentRecordLimit)
	if err != nil {
		return dashboard.DashboardResponse{}, err
	}

	absentees, err := d.DashboardRepository.GetAbsentEmployees(ctx, today)
	if err != nil {
		return dashboard.DashboardResponse{}, err
	}

	resp := dashboard.DashboardResponse{
		Date:            today.Format("2006-01-02"),
		TotalEmployees:  stats.TotalEmployees,
		PresentCount:    stats.PresentCount,
		AbsentCount:     stats.TotalEmployees - stats.PresentCount,
		LateCount:       stats.LateCount,
		AvgWorkingHours: decimal.NewFromFloat(stats.AvgWorkingHours).StringFixed(2),
		RecentRecords:   make([]dashboard.RecentRecordResponse, 0, len(recent)),
		AbsentEmployees: make([]dashboard.AbsentEmployeeResponse, 0, len(absentees)),
	}

	for _, rec := range recent {
		row := dashboard.RecentRecordResponse{
			EmployeeCode: rec.EmployeeCode,
			EmployeeName: rec.EmployeeName,
			Status:       rec.Status,
		}
		if rec.CheckIn != nil {
			v := rec.CheckIn.Format("15:04:05")
			row.CheckInTime = &v
		}
		resp.RecentRecords = append(resp.RecentRecords, row)
	}

	for _, emp := range absentees {
		resp.AbsentEmployees = append(resp.AbsentEmployees, dashboard.AbsentEmployeeResponse{
			EmployeeCode:   emp.EmployeeCode,
			FullName:       emp.FullName,
			DepartmentName: emp.DepartmentName,
		})
	}

	return resp, nil
}
