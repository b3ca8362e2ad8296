package report

import "github.com/attendly/attendance-backend-go/internal/pkg/validator"

type ReportFilter struct {
	StartDate string
	EndDate   string
}

func (f *ReportFilter) Validate() error {
	var errs validator.ValidationErrors

	start, okStart := validator.IsValidDate(f.StartDate)
	if !okStart {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date must be YYYY-MM-DD",
		})
	}

	end, okEnd := validator.IsValidDate(f.EndDate)
	if !okEnd {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must be YYYY-MM-DD",
		})
	}

	if okStart && okEnd && end.Before(start) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must not be before start_date",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type DepartmentStatsResponse struct {
	DepartmentName string `json:"department_name"`
	Total          int64  `json:"total"`
	Present        int64  `json:"present"`
	Late           int64  `json:"late"`
	Absent         int64  `json:"absent"`
}

type RecordRowResponse struct {
	Date           string  `json:"date"`
	EmployeeCode   string  `json:"employee_code"`
	EmployeeName   string  `json:"employee_name"`
	DepartmentName *string `json:"department_name,omitempty"`
	CheckInTime    *string `json:"check_in_time,omitempty"`
	CheckOutTime   *string `json:"check_out_time,omitempty"`
	Status         string  `json:"status"`
	WorkingHours   *string `json:"working_hours,omitempty"`
}

type ReportResponse struct {
	StartDate       string                    `json:"start_date"`
	EndDate         string                    `json:"end_date"`
	TotalRecords    int64                     `json:"total_records"`
	PresentCount    int64                     `json:"present_count"`
	LateCount       int64                     `json:"late_count"`
	AbsentCount     int64                     `json:"absent_count"`
	DepartmentStats []DepartmentStatsResponse `json:"department_stats"`
	Records         []RecordRowResponse       `json:"records"`
}
