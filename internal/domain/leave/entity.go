package leave

import "time"

type LeaveType string

const (
	LeaveTypeSick      LeaveType = "sick"
	LeaveTypeCasual    LeaveType = "casual"
	LeaveTypeVacation  LeaveType = "vacation"
	LeaveTypeEmergency LeaveType = "emergency"
)

type LeaveRequestStatus string

const (
	LeaveRequestStatusPending  LeaveRequestStatus = "pending"
	LeaveRequestStatusApproved LeaveRequestStatus = "approved"
	LeaveRequestStatusRejected LeaveRequestStatus = "rejected"
)

// LeaveRequest entity. Immutable once created except the one-way
// pending -> approved/rejected transition.
type LeaveRequest struct {
	ID         string
	EmployeeID string
	LeaveType  LeaveType
	StartDate  time.Time
	EndDate    time.Time
	Reason     string
	Status     LeaveRequestStatus
	ApprovedBy *string
	DecidedAt  *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time

	// Joined fields for responses
	EmployeeName *string
	EmployeeCode *string
}
