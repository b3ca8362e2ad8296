package employee

import "time"

type Employee struct {
	ID                  string
	UserID              string
	DepartmentID        *string
	EmployeeCode        string
	Position            string
	QRToken             string
	FingerprintTemplate *string
	FingerprintEnrolled bool
	IsActive            bool
	JoinedDate          time.Time
	CreatedAt           time.Time
	UpdatedAt           time.Time

	// Joined fields for responses
	FullName       *string
	Email          *string
	DepartmentName *string
}
