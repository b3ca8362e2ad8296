package dashboard

type RecentRecordResponse struct {
	EmployeeCode string  `json:"employee_code"`
	EmployeeName string  `json:"employee_name"`
	CheckInTime  *string `json:"check_in_time,omitempty"`
	Status       string  `json:"status"`
}

type AbsentEmployeeResponse struct {
	EmployeeCode   string  `json:"employee_code"`
	FullName       string  `json:"full_name"`
	DepartmentName *string `json:"department_name,omitempty"`
}

// DashboardResponse is the combined response for the main dashboard endpoint
type DashboardResponse struct {
	Date            string                   `json:"date"`
	TotalEmployees  int64                    `json:"total_employees"`
	PresentCount    int64                    `json:"present_count"`
	AbsentCount     int64                    `json:"absent_count"`
	LateCount       int64                    `json:"late_count"`
	AvgWorkingHours string                   `json:"avg_working_hours"`
	RecentRecords   []RecentRecordResponse   `json:"recent_records"`
	AbsentEmployees []AbsentEmployeeResponse `json:"absent_employees"`
}
