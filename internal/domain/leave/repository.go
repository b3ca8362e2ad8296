package leave

import "context"

// LeaveRequestRepository - interface for leave_requests table
type LeaveRequestRepository interface {
	Create(ctx context.Context, request LeaveRequest) (LeaveRequest, error)
	GetByID(ctx context.Context, id string) (LeaveRequest, error)
	List(ctx context.Context, filter LeaveRequestFilter) ([]LeaveRequest, int64, error)
	GetByEmployeeID(ctx context.Context, employeeID string, filter MyLeaveRequestFilter) ([]LeaveRequest, int64, error)

	// Decide applies the status transition with an optimistic guard on
	// status = 'pending'; affected is false when another decision won.
	Decide(ctx context.Context, id string, status LeaveRequestStatus, approvedBy string) (affected bool, err error)
}
