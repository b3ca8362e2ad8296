package leave

import "context"

type LeaveService interface {
	// Submit creates a pending request; end before start is rejected with
	// ErrInvalidDateRange and nothing is stored.
	Submit(ctx context.Context, req SubmitLeaveRequest) (LeaveRequestResponse, error)

	// Decide applies approve/reject. Non-admin actors are refused before
	// any mutation; an already-decided request returns
	// ErrLeaveAlreadyProcessed.
	Decide(ctx context.Context, req DecideLeaveRequest) (LeaveRequestResponse, error)

	// GetLeaveRequest retrieves one request
	GetLeaveRequest(ctx context.Context, id string) (LeaveRequestResponse, error)

	// ListLeaveRequests lists requests with filters (admin)
	ListLeaveRequests(ctx context.Context, filter LeaveRequestFilter) (ListLeaveRequestResponse, error)

	// ListMyLeaveRequests lists the session employee's requests
	ListMyLeaveRequests(ctx context.Context, filter MyLeaveRequestFilter) (ListLeaveRequestResponse, error)
}
