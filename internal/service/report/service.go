package report

import (
	"context"
	"fmt"
	"time"

	"github.com/attendly/attendance-backend-go/internal/domain/report"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

type ReportServiceImpl struct {
	report.ReportRepository
}

func NewReportService(reportRepo report.ReportRepository) report.ReportService {
	return &ReportServiceImpl{ReportRepository: reportRepo}
}

// GetReport implements report.ReportService.
func (r *ReportServiceImpl) GetReport(ctx context.Context, filter report.ReportFilter) (report.ReportResponse, error) {
	start, end, err := parseRange(filter)
	if err != nil {
		return report.ReportResponse{}, err
	}

	counts, err := r.ReportRepository.GetStatusCounts(ctx, start, end)
	if err != nil {
		return report.ReportResponse{}, err
	}

	stats, err := r.ReportRepository.GetDepartmentStats(ctx, start, end)
	if err != nil {
		return report.ReportResponse{}, err
	}

	records, err := r.ReportRepository.GetRecords(ctx, start, end)
	if err != nil {
		return report.ReportResponse{}, err
	}

	resp := report.ReportResponse{
		StartDate:       filter.StartDate,
		EndDate:         filter.EndDate,
		TotalRecords:    counts.Total,
		PresentCount:    counts.Present,
		LateCount:       counts.Late,
		AbsentCount:     counts.Absent,
		DepartmentStats: make([]report.DepartmentStatsResponse, 0, len(stats)),
		Records:         make([]report.RecordRowResponse, 0, len(records)),
	}

	for _, s := range stats {
		resp.DepartmentStats = append(resp.DepartmentStats, report.DepartmentStatsResponse{
			DepartmentName: s.DepartmentName,
			Total:          s.Total,
			Present:        s.Present,
			Late:           s.Late,
			Absent:         s.Absent,
		})
	}

	for _, rec := range records {
		resp.Records = append(resp.Records, mapRecordToResponse(rec))
	}

	return resp, nil
}

// ExportReport implements report.ReportService.
func (r *ReportServiceImpl) ExportReport(ctx context.Context, filter report.ReportFilter) (string, []byte, error) {
	resp, err := r.GetReport(ctx, filter)
	if err != nil {
		return "", nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Attendance Report"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"Date", "Employee Code", "Employee Name", "Department", "Check In", "Check Out", "Status", "Working Hours"}
	for i, header := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return "", nil, err
		}
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return "", nil, err
		}
	}

	for rowIdx, rec := range resp.Records {
		values := []interface{}{
			rec.Date,
			rec.EmployeeCode,
			rec.EmployeeName,
			stringOrDash(rec.DepartmentName),
			stringOrDash(rec.CheckInTime),
			stringOrDash(rec.CheckOutTime),
			rec.Status,
			stringOrDash(rec.WorkingHours),
		}
		for colIdx, value := range values {
			cell, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			if err != nil {
				return "", nil, err
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return "", nil, err
			}
		}
	}

	// Summary sheet with the headline counts and per-department breakdown
	const summarySheet = "Summary"
	if _, err := f.NewSheet(summarySheet); err != nil {
		return "", nil, err
	}
	summaryRows := [][]interface{}{
		{"Period", resp.StartDate + " to " + resp.EndDate},
		{"Total Records", resp.TotalRecords},
		{"Present", resp.PresentCount},
		{"Late", resp.LateCount},
		{"Absent", resp.AbsentCount},
		{},
		{"Department", "Total", "Present", "Late", "Absent"},
	}
	for _, s := range resp.DepartmentStats {
		summaryRows = append(summaryRows, []interface{}{
			s.DepartmentName, s.Total, s.Present, s.Late, s.Absent,
		})
	}
	for rowIdx, row := range summaryRows {
		for colIdx, value := range row {
			cell, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+1)
			if err != nil {
				return "", nil, err
			}
			if err := f.SetCellValue(summarySheet, cell, value); err != nil {
				return "", nil, err
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return "", nil, fmt.Errorf("failed to render workbook: %w", err)
	}

	filename := fmt.Sprintf("attendance_report_%s_%s.xlsx", filter.StartDate, filter.EndDate)
	return filename, buf.Bytes(), nil
}

func parseRange(filter report.ReportFilter) (time.Time, time.Time, error) {
	if err := filter.Validate(); err != nil {
		return time.Time{}, time.Time{}, err
	}

	start, err := time.Parse("2006-01-02", filter.StartDate)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end, err := time.Parse("2006-01-02", filter.EndDate)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}

	return start, end, nil
}

func mapRecordToResponse(rec report.RecordRow) report.RecordRowResponse {
	resp := report.RecordRowResponse{
		Date:           rec.Date.Format("2006-01-02"),
		EmployeeCode:   rec.EmployeeCode,
		EmployeeName:   rec.EmployeeName,
		DepartmentName: rec.DepartmentName,
		Status:         rec.Status,
	}
	if rec.CheckIn != nil {
		v := rec.CheckIn.Format("15:04:05")
		resp.CheckInTime = &v
	}
	if rec.CheckOut != nil {
		v := rec.CheckOut.Format("15:04:05")
		resp.CheckOutTime = &v
	}
	if rec.WorkingHours != nil {
		v := decimal.NewFromFloat(*rec.WorkingHours).StringFixed(2)
		resp.WorkingHours = &v
	}
	return resp
}

func stringOrDash(value *string) string {
	if value == nil {
		return "-"
	}
	return *value
}
