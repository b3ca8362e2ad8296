package attendance

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/attendly/attendance-backend-go/internal/domain/attendance"
	"github.com/attendly/attendance-backend-go/internal/domain/employee"
	"github.com/attendly/attendance-backend-go/internal/domain/settings"
	"github.com/attendly/attendance-backend-go/internal/pkg/verification"
	"github.com/go-chi/jwtauth/v5"
)

type AttendanceServiceImpl struct {
	attendance.AttendanceRepository
	settings.SettingsRepository
	employeeRepo employee.EmployeeRepository
	directory    employee.Directory
	providers    *verification.Registry
}

func NewAttendanceService(
	attendanceRepo attendance.AttendanceRepository,
	settingsRepo settings.SettingsRepository,
	employeeRepo employee.EmployeeRepository,
	directory employee.Directory,
	providers *verification.Registry,
) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		AttendanceRepository: attendanceRepo,
		SettingsRepository:   settingsRepo,
		employeeRepo:         employeeRepo,
		directory:            directory,
		providers:            providers,
	}
}

// timePtrToString safely converts a *time.Time to a string.
func timePtrToString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	format := t.Format("2006-01-02 15:04:05")
	return &format
}

// CheckIn implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) CheckIn(ctx context.Context, req attendance.CheckInRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	method := attendance.VerificationMethod(req.Method)
	now := time.Now()

	emp, err := a.directory.Resolve(ctx, identityForCheckIn(req))
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	cfg, err := a.SettingsRepository.Get(ctx)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to load attendance settings: %w", err)
	}

	if err := a.verifyMethod(ctx, emp, method, req.Proof, cfg); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	status, err := ClassifyCheckIn(now, cfg)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	data := attendance.Attendance{
		EmployeeID:         emp.ID,
		Date:               today,
		CheckIn:            &now,
		VerificationMethod: &method,
		Status:             status,
	}

	record, created, err := a.AttendanceRepository.CreateOrGetForDate(ctx, data)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to create attendance record: %w", err)
	}

	if !created {
		if record.CheckIn != nil {
			// Idempotent no-op: hand back the stored record untouched.
			return mapAttendanceToResponse(record), attendance.ErrAlreadyCheckedIn
		}

		// Absent placeholder from the sweep; fill in the check-in.
		if err := a.AttendanceRepository.SetCheckIn(ctx, record.ID, now, method, status); err != nil {
			if errors.Is(err, attendance.ErrAlreadyCheckedIn) {
				// Lost a race filling the same placeholder; return what stuck.
				stored, gerr := a.AttendanceRepository.GetByID(ctx, record.ID)
				if gerr != nil {
					return attendance.AttendanceResponse{}, fmt.Errorf("failed to reload attendance: %w", gerr)
				}
				return mapAttendanceToResponse(stored), attendance.ErrAlreadyCheckedIn
			}
			return attendance.AttendanceResponse{}, fmt.Errorf("failed to set check-in: %w", err)
		}
		record.CheckIn = &now
		record.VerificationMethod = &method
		record.Status = status
	}

	return mapAttendanceToResponse(record), nil
}

func identityForCheckIn(req attendance.CheckInRequest) employee.Identity {
	if attendance.VerificationMethod(req.Method) == attendance.MethodQR {
		return employee.QRIdentity(req.QRData)
	}
	return employee.DeclaredIdentity(req.EmployeeCode)
}

func (a *AttendanceServiceImpl) verifyMethod(ctx context.Context, emp employee.Employee, method attendance.VerificationMethod, proof string, cfg settings.Settings) error {
	switch method {
	case attendance.MethodQR:
		// Token resolution through the directory is the verification.
		return nil
	case attendance.MethodFingerprint:
		if !emp.FingerprintEnrolled {
			return employee.ErrFingerprintNotEnrolled
		}
		provider, template, ok := a.providers.ForTemplate(emp.FingerprintTemplate, string(method))
		if !ok {
			return attendance.ErrVerificationFailed
		}
		if err := provider.Verify(ctx, template, proof); err != nil {
			if errors.Is(err, verification.ErrVerificationFailed) {
				return attendance.ErrVerificationFailed
			}
			return fmt.Errorf("fingerprint verification: %w", err)
		}
		return nil
	case attendance.MethodManual:
		if !cfg.AllowManualEntry {
			return attendance.ErrMethodNotAllowed
		}
		return nil
	default:
		return attendance.ErrMethodNotAllowed
	}
}

// CheckOut implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) CheckOut(ctx context.Context, req attendance.CheckOutRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	identity := employee.DeclaredIdentity(req.EmployeeCode)
	if req.EmployeeCode == "" {
		identity = employee.SessionIdentity(req.UserID)
	}

	emp, err := a.directory.Resolve(ctx, identity)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	record, err := a.AttendanceRepository.GetByEmployeeAndDate(ctx, emp.ID, today)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to get attendance for today: %w", err)
	}
	if record == nil || record.CheckIn == nil {
		return attendance.AttendanceResponse{}, attendance.ErrNotCheckedIn
	}
	if record.CheckOut != nil {
		return mapAttendanceToResponse(*record), attendance.ErrAlreadyCheckedOut
	}

	hours := ComputeWorkingHours(record.Date, *record.CheckIn, now)
	record.CheckOut = &now
	record.WorkingHours = &hours

	affected, err := a.AttendanceRepository.SetCheckOut(ctx, *record)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to set check-out: %w", err)
	}
	if !affected {
		// Lost a race against a concurrent check-out; return what stuck.
		stored, err := a.AttendanceRepository.GetByID(ctx, record.ID)
		if err != nil {
			return attendance.AttendanceResponse{}, fmt.Errorf("failed to reload attendance: %w", err)
		}
		return mapAttendanceToResponse(stored), attendance.ErrAlreadyCheckedOut
	}

	return mapAttendanceToResponse(*record), nil
}

// GetMyAttendance implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) GetMyAttendance(ctx context.Context, filter attendance.MyAttendanceFilter) (attendance.ListAttendanceResponse, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return attendance.ListAttendanceResponse{}, fmt.Errorf("failed to extract claims from context: %w", err)
	}

	employeeID, ok := claims["employee_id"].(string)
	if !ok || employeeID == "" {
		return attendance.ListAttendanceResponse{}, employee.ErrEmployeeNotFound
	}

	attendances, total, err := a.AttendanceRepository.GetMyAttendance(ctx, employeeID, filter)
	if err != nil {
		return attendance.ListAttendanceResponse{}, fmt.Errorf("failed to get my attendance: %w", err)
	}

	return buildListResponse(attendances, total, filter.Page, filter.Limit), nil
}

// ListAttendance implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ListAttendance(ctx context.Context, filter attendance.AttendanceFilter) (attendance.ListAttendanceResponse, error) {
	attendances, total, err := a.AttendanceRepository.List(ctx, filter)
	if err != nil {
		return attendance.ListAttendanceResponse{}, fmt.Errorf("failed to list attendances: %w", err)
	}

	return buildListResponse(attendances, total, filter.Page, filter.Limit), nil
}

func buildListResponse(attendances []attendance.Attendance, total int64, page, limit int) attendance.ListAttendanceResponse {
	responses := make([]attendance.AttendanceResponse, 0, len(attendances))
	for _, att := range attendances {
		responses = append(responses, mapAttendanceToResponse(att))
	}

	if limit == 0 {
		limit = 20
	}
	if page == 0 {
		page = 1
	}

	totalPages := int(math.Ceil(float64(total) / float64(limit)))
	showing := fmt.Sprintf("%d-%d of %d", (page-1)*limit+1, min(page*limit, int(total)), total)
	if total == 0 {
		showing = "0 of 0"
	}

	return attendance.ListAttendanceResponse{
		TotalCount:  total,
		Page:        page,
		Limit:       limit,
		TotalPages:  totalPages,
		Showing:     showing,
		Attendances: responses,
	}
}

// GetAttendance implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) GetAttendance(ctx context.Context, id string) (attendance.AttendanceResponse, error) {
	att, err := a.AttendanceRepository.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, attendance.ErrAttendanceNotFound) {
			return attendance.AttendanceResponse{}, attendance.ErrAttendanceNotFound
		}
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to get attendance: %w", err)
	}

	return mapAttendanceToResponse(att), nil
}

// UpdateAttendance implements attendance.AttendanceService.
// Administrative correction of wrong clock times or status.
func (a *AttendanceServiceImpl) UpdateAttendance(ctx context.Context, req attendance.UpdateAttendanceRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	att, err := a.AttendanceRepository.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, attendance.ErrAttendanceNotFound) {
			return attendance.AttendanceResponse{}, attendance.ErrAttendanceNotFound
		}
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to get attendance: %w", err)
	}

	if req.CheckInTime != nil {
		checkIn, err := time.Parse(time.RFC3339, *req.CheckInTime)
		if err == nil {
			att.CheckIn = &checkIn
		}
	}

	if req.CheckOutTime != nil {
		checkOut, err := time.Parse(time.RFC3339, *req.CheckOutTime)
		if err == nil {
			att.CheckOut = &checkOut
		}
	}

	if req.Status != nil {
		att.Status = attendance.Status(*req.Status)
	}

	if req.Notes != nil {
		att.Notes = req.Notes
	}

	// Recalculate work hours if both clock times are present
	if att.CheckIn != nil && att.CheckOut != nil {
		hours := ComputeWorkingHours(att.Date, *att.CheckIn, *att.CheckOut)
		att.WorkingHours = &hours
	}

	if err := a.AttendanceRepository.Update(ctx, att); err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to update attendance: %w", err)
	}

	updated, err := a.AttendanceRepository.GetByID(ctx, req.ID)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to get updated attendance: %w", err)
	}

	return mapAttendanceToResponse(updated), nil
}

// MarkAbsentees implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) MarkAbsentees(ctx context.Context, date string) (int64, error) {
	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		return 0, fmt.Errorf("invalid sweep date %q: %w", date, err)
	}

	ids, err := a.employeeRepo.GetActiveIDsWithoutAttendance(ctx, date)
	if err != nil {
		return 0, fmt.Errorf("failed to find employees without attendance: %w", err)
	}
	if len(ids) == 0 {
		return 0, nil
	}

	inserted, err := a.AttendanceRepository.CreateAbsentPlaceholders(ctx, day, ids)
	if err != nil {
		return 0, fmt.Errorf("failed to create absent placeholders: %w", err)
	}

	return inserted, nil
}

// mapAttendanceToResponse converts an Attendance entity to AttendanceResponse
func mapAttendanceToResponse(att attendance.Attendance) attendance.AttendanceResponse {
	var workingHours *string
	if att.WorkingHours != nil {
		v := att.WorkingHours.StringFixed(2)
		workingHours = &v
	}

	var method *string
	if att.VerificationMethod != nil {
		v := string(*att.VerificationMethod)
		method = &v
	}

	return attendance.AttendanceResponse{
		ID:                 att.ID,
		EmployeeID:         att.EmployeeID,
		EmployeeCode:       att.EmployeeCode,
		EmployeeName:       att.EmployeeName,
		DepartmentName:     att.DepartmentName,
		Date:               att.Date.Format("2006-01-02"),
		CheckInTime:        timePtrToString(att.CheckIn),
		CheckOutTime:       timePtrToString(att.CheckOut),
		VerificationMethod: method,
		Status:             string(att.Status),
		WorkingHours:       workingHours,
		Notes:              att.Notes,
		CreatedAt:          att.CreatedAt.Format("2006-01-02 15:04:05"),
		UpdatedAt:          att.UpdatedAt.Format("2006-01-02 15:04:05"),
	}
}
