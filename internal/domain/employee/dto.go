package employee

import (
	"github.com/attendly/attendance-backend-go/internal/pkg/validator"
)

type RegisterEmployeeRequest struct {
	Email        string  `json:"email"`
	Password     string  `json:"password"`
	FullName     string  `json:"full_name"`
	Phone        *string `json:"phone,omitempty"`
	Position     string  `json:"position"`
	DepartmentID *string `json:"department_id,omitempty"`
}

func (r *RegisterEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidEmail(r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "a valid email is required",
		})
	}

	if len(r.Password) < 8 {
		errs = append(errs, validator.ValidationError{
			Field:   "password",
			Message: "password must be at least 8 characters",
		})
	}

	if validator.IsEmpty(r.FullName) {
		errs = append(errs, validator.ValidationError{
			Field:   "full_name",
			Message: "full_name is required",
		})
	}

	if validator.IsEmpty(r.Position) {
		errs = append(errs, validator.ValidationError{
			Field:   "position",
			Message: "position is required",
		})
	}

	if r.Phone != nil && !validator.IsValidPhoneNumber(*r.Phone) {
		errs = append(errs, validator.ValidationError{
			Field:   "phone",
			Message: "phone must be 8-15 digits",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// Credential kinds accepted by the enroll endpoint. TOTP covers kiosks
// without scanner hardware.
const (
	CredentialFingerprint = "fingerprint"
	CredentialTOTP        = "totp"
)

type EnrollFingerprintRequest struct {
	EmployeeID string `json:"-"`
	Kind       string `json:"kind,omitempty"`
	Template   string `json:"fingerprint_data"`
}

func (r *EnrollFingerprintRequest) Validate() error {
	switch r.Kind {
	case "", CredentialFingerprint:
		if validator.IsEmpty(r.Template) {
			return ErrFingerprintDataRequired
		}
	case CredentialTOTP:
		// Template optional; a secret is generated when absent.
	default:
		return validator.ValidationErrors{validator.ValidationError{
			Field:   "kind",
			Message: "kind must be fingerprint or totp",
		}}
	}
	return nil
}

// EnrollFingerprintResponse carries a generated TOTP secret back to the
// caller exactly once; it is never readable again afterwards.
type EnrollFingerprintResponse struct {
	FingerprintEnrolled bool   `json:"fingerprint_enrolled"`
	TOTPSecret          string `json:"totp_secret,omitempty"`
	OTPAuthURL          string `json:"otpauth_url,omitempty"`
}

type EmployeeFilter struct {
	Search       string
	DepartmentID *string
	ActiveOnly   bool
	Page         int
	Limit        int
}

type EmployeeResponse struct {
	ID                  string  `json:"id"`
	EmployeeCode        string  `json:"employee_code"`
	FullName            string  `json:"full_name"`
	Email               string  `json:"email"`
	Position            string  `json:"position"`
	DepartmentID        *string `json:"department_id,omitempty"`
	DepartmentName      *string `json:"department_name,omitempty"`
	QRToken             string  `json:"qr_token,omitempty"`
	FingerprintEnrolled bool    `json:"fingerprint_enrolled"`
	IsActive            bool    `json:"is_active"`
	JoinedDate          string  `json:"joined_date"`
}

type ListEmployeeResponse struct {
	TotalCount int64              `json:"total_count"`
	Page       int                `json:"page"`
	Limit      int                `json:"limit"`
	TotalPages int                `json:"total_pages"`
	Employees  []EmployeeResponse `json:"employees"`
}

// EmployeeDetailResponse adds the 30-day attendance history summary shown on
// the employee detail page.
type EmployeeDetailResponse struct {
	EmployeeResponse
	TotalDays   int `json:"total_days"`
	PresentDays int `json:"present_days"`
	LateDays    int `json:"late_days"`
}
