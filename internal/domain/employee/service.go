package employee

import "context"

// EmployeeService defines business logic for employee operations
type EmployeeService interface {
	// Register creates the user account and employee profile in one
	// transaction, generating the employee code and QR token.
	Register(ctx context.Context, req RegisterEmployeeRequest) (EmployeeResponse, error)

	// GetEmployee retrieves a single employee with attendance summary
	GetEmployee(ctx context.Context, id string) (EmployeeDetailResponse, error)

	// ListEmployees lists employees with filters (admin only)
	ListEmployees(ctx context.Context, filter EmployeeFilter) (ListEmployeeResponse, error)

	// EnrollFingerprint stores a check-in credential and marks the employee
	// as enrolled. A totp enrollment without a template generates the
	// shared secret server-side and returns it with its otpauth URL.
	EnrollFingerprint(ctx context.Context, req EnrollFingerprintRequest) (EnrollFingerprintResponse, error)

	// Deactivate marks an employee inactive; records are never deleted
	Deactivate(ctx context.Context, id string) error
}
