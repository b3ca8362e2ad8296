package leave

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/attendly/attendance-backend-go/internal/domain/employee"
	"github.com/attendly/attendance-backend-go/internal/domain/leave"
	"github.com/attendly/attendance-backend-go/internal/domain/user"
	"github.com/go-chi/jwtauth/v5"
)

type LeaveServiceImpl struct {
	leave.LeaveRequestRepository
	employee.EmployeeRepository
}

func NewLeaveService(
	leaveRequestRepo leave.LeaveRequestRepository,
	employeeRepo employee.EmployeeRepository,
) leave.LeaveService {
	return &LeaveServiceImpl{
		LeaveRequestRepository: leaveRequestRepo,
		EmployeeRepository:     employeeRepo,
	}
}

// Submit implements leave.LeaveService.
func (l *LeaveServiceImpl) Submit(ctx context.Context, req leave.SubmitLeaveRequest) (leave.LeaveRequestResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	emp, err := l.EmployeeRepository.GetByUserID(ctx, req.EmployeeID)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			// Allow direct submission by employee id as well
			emp, err = l.EmployeeRepository.GetByID(ctx, req.EmployeeID)
		}
		if err != nil {
			return leave.LeaveRequestResponse{}, err
		}
	}

	startDate, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		return leave.LeaveRequestResponse{}, fmt.Errorf("failed to parse start date: %w", err)
	}

	endDate, err := time.Parse("2006-01-02", req.EndDate)
	if err != nil {
		return leave.LeaveRequestResponse{}, fmt.Errorf("failed to parse end date: %w", err)
	}

	if endDate.Before(startDate) {
		return leave.LeaveRequestResponse{}, leave.ErrInvalidDateRange
	}

	// Overlap with existing leave or attendance is deliberately not
	// validated; approvers see conflicts in the pending list.
	request := leave.LeaveRequest{
		EmployeeID: emp.ID,
		LeaveType:  leave.LeaveType(req.LeaveType),
		StartDate:  startDate,
		EndDate:    endDate,
		Reason:     req.Reason,
		Status:     leave.LeaveRequestStatusPending,
	}

	created, err := l.LeaveRequestRepository.Create(ctx, request)
	if err != nil {
		return leave.LeaveRequestResponse{}, fmt.Errorf("failed to create leave request: %w", err)
	}

	return mapLeaveRequestToResponse(created), nil
}

// Decide implements leave.LeaveService.
func (l *LeaveServiceImpl) Decide(ctx context.Context, req leave.DecideLeaveRequest) (leave.LeaveRequestResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	if !req.ActorIsAdmin {
		return leave.LeaveRequestResponse{}, user.ErrAdminPrivilegeRequired
	}

	request, err := l.LeaveRequestRepository.GetByID(ctx, req.RequestID)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	if request.Status != leave.LeaveRequestStatusPending {
		return leave.LeaveRequestResponse{}, leave.ErrLeaveAlreadyProcessed
	}

	status := leave.LeaveRequestStatusApproved
	if leave.Decision(req.Decision) == leave.DecisionReject {
		status = leave.LeaveRequestStatusRejected
	}

	affected, err := l.LeaveRequestRepository.Decide(ctx, req.RequestID, status, req.ActorUserID)
	if err != nil {
		return leave.LeaveRequestResponse{}, fmt.Errorf("failed to update leave request: %w", err)
	}
	if !affected {
		// Another decision won the race between our read and write.
		return leave.LeaveRequestResponse{}, leave.ErrLeaveAlreadyProcessed
	}

	decided, err := l.LeaveRequestRepository.GetByID(ctx, req.RequestID)
	if err != nil {
		return leave.LeaveRequestResponse{}, fmt.Errorf("failed to reload leave request: %w", err)
	}

	return mapLeaveRequestToResponse(decided), nil
}

// GetLeaveRequest implements leave.LeaveService.
func (l *LeaveServiceImpl) GetLeaveRequest(ctx context.Context, id string) (leave.LeaveRequestResponse, error) {
	request, err := l.LeaveRequestRepository.GetByID(ctx, id)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	return mapLeaveRequestToResponse(request), nil
}

// ListLeaveRequests implements leave.LeaveService.
func (l *LeaveServiceImpl) ListLeaveRequests(ctx context.Context, filter leave.LeaveRequestFilter) (leave.ListLeaveRequestResponse, error) {
	requests, total, err := l.LeaveRequestRepository.List(ctx, filter)
	if err != nil {
		return leave.ListLeaveRequestResponse{}, fmt.Errorf("failed to list leave requests: %w", err)
	}

	return buildListResponse(requests, total, filter.Page, filter.Limit), nil
}

// ListMyLeaveRequests implements leave.LeaveService.
func (l *LeaveServiceImpl) ListMyLeaveRequests(ctx context.Context, filter leave.MyLeaveRequestFilter) (leave.ListLeaveRequestResponse, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return leave.ListLeaveRequestResponse{}, fmt.Errorf("failed to extract claims from context: %w", err)
	}

	employeeID, ok := claims["employee_id"].(string)
	if !ok || employeeID == "" {
		return leave.ListLeaveRequestResponse{}, employee.ErrEmployeeNotFound
	}

	requests, total, err := l.LeaveRequestRepository.GetByEmployeeID(ctx, employeeID, filter)
	if err != nil {
		return leave.ListLeaveRequestResponse{}, fmt.Errorf("failed to list my leave requests: %w", err)
	}

	return buildListResponse(requests, total, filter.Page, filter.Limit), nil
}

func buildListResponse(requests []leave.LeaveRequest, total int64, page, limit int) leave.ListLeaveRequestResponse {
	responses := make([]leave.LeaveRequestResponse, 0, len(requests))
	for _, request := range requests {
		responses = append(responses, mapLeaveRequestToResponse(request))
	}

	if limit == 0 {
		limit = 20
	}
	if page == 0 {
		page = 1
	}

	return leave.ListLeaveRequestResponse{
		TotalCount: total,
		Page:       page,
		Limit:      limit,
		TotalPages: int(math.Ceil(float64(total) / float64(limit))),
		Requests:   responses,
	}
}

func mapLeaveRequestToResponse(request leave.LeaveRequest) leave.LeaveRequestResponse {
	var decidedAt *string
	if request.DecidedAt != nil {
		v := request.DecidedAt.Format("2006-01-02 15:04:05")
		decidedAt = &v
	}

	return leave.LeaveRequestResponse{
		ID:           request.ID,
		EmployeeID:   request.EmployeeID,
		EmployeeCode: request.EmployeeCode,
		EmployeeName: request.EmployeeName,
		LeaveType:    string(request.LeaveType),
		StartDate:    request.StartDate.Format("2006-01-02"),
		EndDate:      request.EndDate.Format("2006-01-02"),
		Reason:       request.Reason,
		Status:       string(request.Status),
		ApprovedBy:   request.ApprovedBy,
		DecidedAt:    decidedAt,
		CreatedAt:    request.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}
