package attendance

import (
	"context"
	"time"
)

// AttendanceRepository defines data access for attendance records. The
// (employee_id, date) pair is unique; CreateOrGetForDate must be atomic so
// concurrent check-ins converge on a single row.
type AttendanceRepository interface {
	// CreateOrGetForDate inserts the record, or returns the existing row
	// for (employee, date) when one already exists. created reports which
	// happened.
	CreateOrGetForDate(ctx context.Context, att Attendance) (result Attendance, created bool, err error)

	// GetByID retrieves a record by id
	GetByID(ctx context.Context, id string) (Attendance, error)

	// GetByEmployeeAndDate returns nil when no record exists
	GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*Attendance, error)

	// SetCheckIn fills check-in fields on an existing record (absent
	// placeholder picked up by a late check-in)
	SetCheckIn(ctx context.Context, id string, checkIn time.Time, method VerificationMethod, status Status) error

	// SetCheckOut records check-out and working hours, guarded on
	// check_out IS NULL; affected reports whether this call won the race.
	SetCheckOut(ctx context.Context, att Attendance) (affected bool, err error)

	// Update overwrites a record; used for administrative correction only
	Update(ctx context.Context, att Attendance) error

	// List retrieves records with filters and pagination (admin)
	List(ctx context.Context, filter AttendanceFilter) ([]Attendance, int64, error)

	// GetMyAttendance retrieves records for one employee
	GetMyAttendance(ctx context.Context, employeeID string, filter MyAttendanceFilter) ([]Attendance, int64, error)

	// CreateAbsentPlaceholders inserts absent rows for the given employees
	// on date, skipping any (employee, date) that already exists.
	CreateAbsentPlaceholders(ctx context.Context, date time.Time, employeeIDs []string) (int64, error)
}
