package leave

import "errors"

var (
	ErrLeaveRequestNotFound  = errors.New("leave request not found")
	ErrInvalidDateRange      = errors.New("end date must not be before start date")
	ErrLeaveAlreadyProcessed = errors.New("leave request already processed")
	ErrInvalidDecision       = errors.New("decision must be approve or reject")
)
