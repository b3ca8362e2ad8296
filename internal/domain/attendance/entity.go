package attendance

import (
	"time"

	"github.com/shopspring/decimal"
)

type VerificationMethod string

const (
	MethodQR          VerificationMethod = "qr"
	MethodFingerprint VerificationMethod = "fingerprint"
	MethodManual      VerificationMethod = "manual"
)

type Status string

const (
	StatusPresent Status = "present"
	StatusLate    Status = "late"
	StatusAbsent  Status = "absent"
)

// Attendance is one row per (employee, date); the pairing is unique at the
// storage layer. WorkingHours stays nil until check-out is recorded.
type Attendance struct {
	ID                 string
	EmployeeID         string
	Date               time.Time
	CheckIn            *time.Time
	CheckOut           *time.Time
	VerificationMethod *VerificationMethod
	Status             Status
	WorkingHours       *decimal.Decimal
	Notes              *string
	CreatedAt          time.Time
	UpdatedAt          time.Time

	// Joined fields for responses
	EmployeeName   *string
	EmployeeCode   *string
	DepartmentName *string
}
