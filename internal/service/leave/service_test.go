package leave

import (
	"context"
	"testing"
	"time"

	"github.com/attendly/attendance-backend-go/internal/domain/employee"
	"github.com/attendly/attendance-backend-go/internal/domain/leave"
	"github.com/attendly/attendance-backend-go/internal/domain/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLeaveRequestRepo struct {
	requests map[string]leave.LeaveRequest
	nextID   int
}

func newFakeLeaveRequestRepo() *fakeLeaveRequestRepo {
	return &fakeLeaveRequestRepo{requests: make(map[string]leave.LeaveRequest)}
}

func (f *fakeLeaveRequestRepo) Create(_ context.Context, request leave.LeaveRequest) (leave.LeaveRequest, error) {
	f.nextID++
	request.ID = "lr-" + string(rune('0'+f.nextID))
	request.CreatedAt = time.Now()
	f.requests[request.ID] = request
	return request, nil
}

func (f *fakeLeaveRequestRepo) GetByID(_ context.Context, id string) (leave.LeaveRequest, error) {
	request, ok := f.requests[id]
	if !ok {
		return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
	}
	return request, nil
}

func (f *fakeLeaveRequestRepo) List(_ context.Context, _ leave.LeaveRequestFilter) ([]leave.LeaveRequest, int64, error) {
	var out []leave.LeaveRequest
	for _, request := range f.requests {
		out = append(out, request)
	}
	return out, int64(len(out)), nil
}

func (f *fakeLeaveRequestRepo) GetByEmployeeID(_ context.Context, employeeID string, _ leave.MyLeaveRequestFilter) ([]leave.LeaveRequest, int64, error) {
	var out []leave.LeaveRequest
	for _, request := range f.requests {
		if request.EmployeeID == employeeID {
			out = append(out, request)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeLeaveRequestRepo) Decide(_ context.Context, id string, status leave.LeaveRequestStatus, approvedBy string) (bool, error) {
	request, ok := f.requests[id]
	if !ok || request.Status != leave.LeaveRequestStatusPending {
		return false, nil
	}
	now := time.Now()
	request.Status = status
	request.ApprovedBy = &approvedBy
	request.DecidedAt = &now
	f.requests[id] = request
	return true, nil
}

type fakeEmployeeRepo struct {
	byUserID map[string]employee.Employee
	byID     map[string]employee.Employee
}

func newFakeEmployeeRepo(employees ...employee.Employee) *fakeEmployeeRepo {
	f := &fakeEmployeeRepo{
		byUserID: make(map[string]employee.Employee),
		byID:     make(map[string]employee.Employee),
	}
	for _, emp := range employees {
		f.byUserID[emp.UserID] = emp
		f.byID[emp.ID] = emp
	}
	return f
}

func (f *fakeEmployeeRepo) Create(_ context.Context, newEmployee employee.Employee) (employee.Employee, error) {
	return newEmployee, nil
}

func (f *fakeEmployeeRepo) GetByID(_ context.Context, id string) (employee.Employee, error) {
	emp, ok := f.byID[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return emp, nil
}

func (f *fakeEmployeeRepo) GetByUserID(_ context.Context, userID string) (employee.Employee, error) {
	emp, ok := f.byUserID[userID]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return emp, nil
}

func (f *fakeEmployeeRepo) GetByEmployeeCode(_ context.Context, _ string) (employee.Employee, error) {
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (f *fakeEmployeeRepo) GetByQRToken(_ context.Context, _ string) (employee.Employee, error) {
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (f *fakeEmployeeRepo) List(_ context.Context, _ employee.EmployeeFilter) ([]employee.Employee, int64, error) {
	return nil, 0, nil
}

func (f *fakeEmployeeRepo) GetActiveIDsWithoutAttendance(_ context.Context, _ string) ([]string, error) {
	return nil, nil
}

func (f *fakeEmployeeRepo) EnrollFingerprint(_ context.Context, _ string, _ string) error {
	return nil
}

func (f *fakeEmployeeRepo) Deactivate(_ context.Context, _ string) error {
	return nil
}

func newTestService(requests *fakeLeaveRequestRepo) leave.LeaveService {
	employees := newFakeEmployeeRepo(employee.Employee{ID: "emp-1", UserID: "user-1"})
	return NewLeaveService(requests, employees)
}

func submitted(t *testing.T, svc leave.LeaveService) leave.LeaveRequestResponse {
	t.Helper()
	resp, err := svc.Submit(context.Background(), leave.SubmitLeaveRequest{
		EmployeeID: "emp-1",
		LeaveType:  "vacation",
		StartDate:  "2024-07-01",
		EndDate:    "2024-07-05",
		Reason:     "summer holiday",
	})
	require.NoError(t, err)
	return resp
}

func TestSubmit(t *testing.T) {
	svc := newTestService(newFakeLeaveRequestRepo())

	resp := submitted(t, svc)
	assert.Equal(t, "pending", resp.Status)
	assert.Equal(t, "emp-1", resp.EmployeeID)
	assert.Equal(t, "2024-07-01", resp.StartDate)
	assert.Nil(t, resp.ApprovedBy)
}

func TestSubmit_EndBeforeStart(t *testing.T) {
	svc := newTestService(newFakeLeaveRequestRepo())

	_, err := svc.Submit(context.Background(), leave.SubmitLeaveRequest{
		EmployeeID: "emp-1",
		LeaveType:  "sick",
		StartDate:  "2024-07-05",
		EndDate:    "2024-07-01",
		Reason:     "flu",
	})
	assert.ErrorIs(t, err, leave.ErrInvalidDateRange)
}

func TestDecide_Approve(t *testing.T) {
	repo := newFakeLeaveRequestRepo()
	svc := newTestService(repo)
	created := submitted(t, svc)

	resp, err := svc.Decide(context.Background(), leave.DecideLeaveRequest{
		RequestID:    created.ID,
		Decision:     "approve",
		ActorUserID:  "admin-1",
		ActorIsAdmin: true,
	})
	require.NoError(t, err)
	assert.Equal(t, "approved", resp.Status)
	require.NotNil(t, resp.ApprovedBy)
	assert.Equal(t, "admin-1", *resp.ApprovedBy)
	assert.NotNil(t, resp.DecidedAt)
}

func TestDecide_Reject(t *testing.T) {
	repo := newFakeLeaveRequestRepo()
	svc := newTestService(repo)
	created := submitted(t, svc)

	resp, err := svc.Decide(context.Background(), leave.DecideLeaveRequest{
		RequestID:    created.ID,
		Decision:     "reject",
		ActorUserID:  "admin-1",
		ActorIsAdmin: true,
	})
	require.NoError(t, err)
	assert.Equal(t, "rejected", resp.Status)
}

func TestDecide_RequiresAdmin(t *testing.T) {
	repo := newFakeLeaveRequestRepo()
	svc := newTestService(repo)
	created := submitted(t, svc)

	_, err := svc.Decide(context.Background(), leave.DecideLeaveRequest{
		RequestID:    created.ID,
		Decision:     "approve",
		ActorUserID:  "user-1",
		ActorIsAdmin: false,
	})
	assert.ErrorIs(t, err, user.ErrAdminPrivilegeRequired)
}

func TestDecide_AlreadyProcessed(t *testing.T) {
	repo := newFakeLeaveRequestRepo()
	svc := newTestService(repo)
	created := submitted(t, svc)

	decide := leave.DecideLeaveRequest{
		RequestID:    created.ID,
		Decision:     "approve",
		ActorUserID:  "admin-1",
		ActorIsAdmin: true,
	}

	_, err := svc.Decide(context.Background(), decide)
	require.NoError(t, err)

	// The pending -> decided transition is one-way
	decide.Decision = "reject"
	_, err = svc.Decide(context.Background(), decide)
	assert.ErrorIs(t, err, leave.ErrLeaveAlreadyProcessed)
}

func TestDecide_NotFound(t *testing.T) {
	svc := newTestService(newFakeLeaveRequestRepo())

	_, err := svc.Decide(context.Background(), leave.DecideLeaveRequest{
		RequestID:    "missing",
		Decision:     "approve",
		ActorUserID:  "admin-1",
		ActorIsAdmin: true,
	})
	assert.ErrorIs(t, err, leave.ErrLeaveRequestNotFound)
}
