package attendance

import "errors"

// Attendance domain errors
var (
	// Check-in errors
	ErrAlreadyCheckedIn   = errors.New("already checked in today")
	ErrVerificationFailed = errors.New("verification failed")
	ErrMethodNotAllowed   = errors.New("verification method not allowed")

	// Check-out errors
	ErrNotCheckedIn      = errors.New("no check-in record found for today")
	ErrAlreadyCheckedOut = errors.New("already checked out today")

	// General errors
	ErrAttendanceNotFound = errors.New("attendance record not found")
)
