package attendance

import "context"

// AttendanceService defines business logic for attendance operations.
//
// CheckIn and CheckOut return the stored record alongside
// ErrAlreadyCheckedIn / ErrAlreadyCheckedOut when the operation was an
// idempotent no-op; callers surface those as warnings, not failures.
type AttendanceService interface {
	// CheckIn resolves the identity, verifies the proof for the method
	// and opens (or completes) today's record
	CheckIn(ctx context.Context, req CheckInRequest) (AttendanceResponse, error)

	// CheckOut closes today's record and computes working hours
	CheckOut(ctx context.Context, req CheckOutRequest) (AttendanceResponse, error)

	// GetMyAttendance retrieves records for the authenticated employee
	GetMyAttendance(ctx context.Context, filter MyAttendanceFilter) (ListAttendanceResponse, error)

	// ListAttendance retrieves records with filters (admin)
	ListAttendance(ctx context.Context, filter AttendanceFilter) (ListAttendanceResponse, error)

	// GetAttendance retrieves a single record by ID
	GetAttendance(ctx context.Context, id string) (AttendanceResponse, error)

	// UpdateAttendance corrects a record (admin)
	UpdateAttendance(ctx context.Context, req UpdateAttendanceRequest) (AttendanceResponse, error)

	// MarkAbsentees inserts absent placeholders for active employees with
	// no record on date; used by the end-of-day sweep.
	MarkAbsentees(ctx context.Context, date string) (int64, error)
}
