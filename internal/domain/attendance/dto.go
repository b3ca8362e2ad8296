package attendance

import (
	"github.com/attendly/attendance-backend-go/internal/pkg/validator"
)

// ========================================
// ATTENDANCE DTOs
// ========================================

// CheckInRequest carries the identity shape for the chosen method: qr sends
// the scanned token, fingerprint and manual declare an employee code.
type CheckInRequest struct {
	Method       string `json:"method"`
	QRData       string `json:"qr_data,omitempty"`
	EmployeeCode string `json:"employee_code,omitempty"`
	Proof        string `json:"proof,omitempty"`
}

func (r *CheckInRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsInSlice(r.Method, []string{string(MethodQR), string(MethodFingerprint), string(MethodManual)}) {
		errs = append(errs, validator.ValidationError{
			Field:   "method",
			Message: "method must be one of qr, fingerprint, manual",
		})
	}

	switch VerificationMethod(r.Method) {
	case MethodQR:
		if validator.IsEmpty(r.QRData) {
			errs = append(errs, validator.ValidationError{
				Field:   "qr_data",
				Message: "qr_data is required for qr check-in",
			})
		}
	case MethodFingerprint, MethodManual:
		if validator.IsEmpty(r.EmployeeCode) {
			errs = append(errs, validator.ValidationError{
				Field:   "employee_code",
				Message: "employee_code is required",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// CheckOutRequest declares the employee checking out. When EmployeeCode is
// empty the handler substitutes the session identity.
type CheckOutRequest struct {
	EmployeeCode string `json:"employee_code,omitempty"`
	UserID       string `json:"-"`
}

func (r *CheckOutRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeCode) && validator.IsEmpty(r.UserID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_code",
			Message: "employee_code is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// UpdateAttendanceRequest is the administrative correction path; records are
// otherwise immutable after check-out.
type UpdateAttendanceRequest struct {
	ID           string  `json:"-"`
	CheckInTime  *string `json:"check_in_time,omitempty"`
	CheckOutTime *string `json:"check_out_time,omitempty"`
	Status       *string `json:"status,omitempty"`
	Notes        *string `json:"notes,omitempty"`
}

func (r *UpdateAttendanceRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Status != nil && !validator.IsInSlice(*r.Status, []string{string(StatusPresent), string(StatusLate), string(StatusAbsent)}) {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be one of present, late, absent",
		})
	}

	if r.CheckInTime != nil {
		if _, ok := validator.IsValidDateTime(*r.CheckInTime); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "check_in_time",
				Message: "must be an ISO8601 timestamp",
			})
		}
	}

	if r.CheckOutTime != nil {
		if _, ok := validator.IsValidDateTime(*r.CheckOutTime); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "check_out_time",
				Message: "must be an ISO8601 timestamp",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type AttendanceFilter struct {
	Date         *string
	StartDate    *string
	EndDate      *string
	Status       *string
	DepartmentID *string
	EmployeeID   *string
	SortBy       string
	SortOrder    string
	Page         int
	Limit        int
}

type MyAttendanceFilter struct {
	StartDate *string
	EndDate   *string
	Status    *string
	Page      int
	Limit     int
}

type AttendanceResponse struct {
	ID                 string  `json:"id"`
	EmployeeID         string  `json:"employee_id"`
	EmployeeCode       *string `json:"employee_code,omitempty"`
	EmployeeName       *string `json:"employee_name,omitempty"`
	DepartmentName     *string `json:"department_name,omitempty"`
	Date               string  `json:"date"`
	CheckInTime        *string `json:"check_in_time,omitempty"`
	CheckOutTime       *string `json:"check_out_time,omitempty"`
	VerificationMethod *string `json:"verification_method,omitempty"`
	Status             string  `json:"status"`
	WorkingHours       *string `json:"working_hours,omitempty"`
	Notes              *string `json:"notes,omitempty"`
	CreatedAt          string  `json:"created_at,omitempty"`
	UpdatedAt          string  `json:"updated_at,omitempty"`
}

type ListAttendanceResponse struct {
	TotalCount  int64                `json:"total_count"`
	Page        int                  `json:"page"`
	Limit       int                  `json:"limit"`
	TotalPages  int                  `json:"total_pages"`
	Showing     string               `json:"showing"`
	Attendances []AttendanceResponse `json:"attendances"`
}
