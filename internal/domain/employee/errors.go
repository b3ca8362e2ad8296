package employee

import "errors"

var (
	ErrEmployeeNotFound        = errors.New("employee not found")
	ErrEmployeeInactive        = errors.New("employee is not active")
	ErrEmployeeAlreadyInactive = errors.New("employee is already inactive")
	ErrFingerprintNotEnrolled  = errors.New("fingerprint not enrolled for this employee")
	ErrFingerprintDataRequired = errors.New("fingerprint data is required")
	ErrUnknownIdentityKind     = errors.New("unknown identity kind")
	ErrDepartmentNotFound      = errors.New("department not found")
	ErrUserAlreadyHasEmployee  = errors.New("user already has an employee profile")
)
