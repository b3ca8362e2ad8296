package employee

import "context"

type EmployeeRepository interface {
	Create(ctx context.Context, newEmployee Employee) (Employee, error)
	GetByID(ctx context.Context, id string) (Employee, error)
	GetByUserID(ctx context.Context, userID string) (Employee, error)
	GetByEmployeeCode(ctx context.Context, employeeCode string) (Employee, error)
	GetByQRToken(ctx context.Context, qrToken string) (Employee, error)
	List(ctx context.Context, filter EmployeeFilter) ([]Employee, int64, error)
	GetActiveIDsWithoutAttendance(ctx context.Context, date string) ([]string, error)
	EnrollFingerprint(ctx context.Context, id string, template string) error
	Deactivate(ctx context.Context, id string) error
}
