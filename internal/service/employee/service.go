package employee

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/attendly/attendance-backend-go/internal/domain/attendance"
	"github.com/attendly/attendance-backend-go/internal/domain/department"
	"github.com/attendly/attendance-backend-go/internal/domain/employee"
	"github.com/attendly/attendance-backend-go/internal/domain/user"
	"github.com/attendly/attendance-backend-go/internal/pkg/database"
	"github.com/attendly/attendance-backend-go/internal/pkg/qrtoken"
	"github.com/attendly/attendance-backend-go/internal/pkg/verification"
	"github.com/attendly/attendance-backend-go/internal/repository/postgresql"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"golang.org/x/crypto/bcrypt"
)

type EmployeeServiceImpl struct {
	db *database.DB
	employee.EmployeeRepository
	userRepo       user.UserRepository
	departmentRepo department.DepartmentRepository
	attendanceRepo attendance.AttendanceRepository
}

func NewEmployeeService(
	db *database.DB,
	employeeRepo employee.EmployeeRepository,
	userRepo user.UserRepository,
	departmentRepo department.DepartmentRepository,
	attendanceRepo attendance.AttendanceRepository,
) employee.EmployeeService {
	return &EmployeeServiceImpl{
		db:                 db,
		EmployeeRepository: employeeRepo,
		userRepo:           userRepo,
		departmentRepo:     departmentRepo,
		attendanceRepo:     attendanceRepo,
	}
}

// Register implements employee.EmployeeService.
func (s *EmployeeServiceImpl) Register(ctx context.Context, req employee.RegisterEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	exists, err := s.userRepo.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	if exists {
		return employee.EmployeeResponse{}, user.ErrEmailExists
	}

	if req.DepartmentID != nil {
		if _, err := s.departmentRepo.GetByID(ctx, *req.DepartmentID); err != nil {
			if errors.Is(err, department.ErrDepartmentNotFound) {
				return employee.EmployeeResponse{}, employee.ErrDepartmentNotFound
			}
			return employee.EmployeeResponse{}, err
		}
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return employee.EmployeeResponse{}, fmt.Errorf("failed to hash password: %w", err)
	}

	employeeCode := generateEmployeeCode()

	var created employee.Employee
	var createdUser user.User
	err = postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := postgresql.ContextWithTx(ctx, tx)

		createdUser, err = s.userRepo.Create(txCtx, user.User{
			Email:        req.Email,
			PasswordHash: string(passwordHash),
			FullName:     req.FullName,
			Phone:        req.Phone,
			Role:         user.RoleEmployee,
		})
		if err != nil {
			return err
		}

		created, err = s.EmployeeRepository.Create(txCtx, employee.Employee{
			UserID:       createdUser.ID,
			DepartmentID: req.DepartmentID,
			EmployeeCode: employeeCode,
			Position:     req.Position,
			QRToken:      qrtoken.Generate(employeeCode, req.Email),
			JoinedDate:   time.Now().UTC(),
		})
		return err
	})
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	created.FullName = &createdUser.FullName
	created.Email = &createdUser.Email

	return mapEmployeeToResponse(created), nil
}

// GetEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) GetEmployee(ctx context.Context, id string) (employee.EmployeeDetailResponse, error) {
	emp, err := s.EmployeeRepository.GetByID(ctx, id)
	if err != nil {
		return employee.EmployeeDetailResponse{}, err
	}

	// 30-day attendance summary for the detail page
	end := time.Now().UTC().Format("2006-01-02")
	start := time.Now().UTC().AddDate(0, 0, -30).Format("2006-01-02")
	records, total, err := s.attendanceRepo.GetMyAttendance(ctx, emp.ID, attendance.MyAttendanceFilter{
		StartDate: &start,
		EndDate:   &end,
		Limit:     1000,
	})
	if err != nil {
		return employee.EmployeeDetailResponse{}, err
	}

	detail := employee.EmployeeDetailResponse{
		EmployeeResponse: mapEmployeeToResponse(emp),
		TotalDays:        int(total),
	}
	for _, record := range records {
		switch record.Status {
		case attendance.StatusPresent:
			detail.PresentDays++
		case attendance.StatusLate:
			detail.LateDays++
		}
	}

	return detail, nil
}

// ListEmployees implements employee.EmployeeService.
func (s *EmployeeServiceImpl) ListEmployees(ctx context.Context, filter employee.EmployeeFilter) (employee.ListEmployeeResponse, error) {
	employees, total, err := s.EmployeeRepository.List(ctx, filter)
	if err != nil {
		return employee.ListEmployeeResponse{}, fmt.Errorf("failed to list employees: %w", err)
	}

	responses := make([]employee.EmployeeResponse, 0, len(employees))
	for _, emp := range employees {
		responses = append(responses, mapEmployeeToResponse(emp))
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}
	page := filter.Page
	if page <= 0 {
		page = 1
	}

	return employee.ListEmployeeResponse{
		TotalCount: total,
		Page:       page,
		Limit:      limit,
		TotalPages: int(math.Ceil(float64(total) / float64(limit))),
		Employees:  responses,
	}, nil
}

// EnrollFingerprint implements employee.EmployeeService.
func (s *EmployeeServiceImpl) EnrollFingerprint(ctx context.Context, req employee.EnrollFingerprintRequest) (employee.EnrollFingerprintResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EnrollFingerprintResponse{}, err
	}

	emp, err := s.EmployeeRepository.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return employee.EnrollFingerprintResponse{}, err
	}

	template := req.Template
	resp := employee.EnrollFingerprintResponse{}
	if req.Kind == employee.CredentialTOTP {
		secret := req.Template
		if secret == "" {
			account := emp.EmployeeCode
			if emp.Email != nil {
				account = *emp.Email
			}
			var otpauthURL string
			secret, otpauthURL, err = verification.GenerateTOTPSecret(totpIssuer, account)
			if err != nil {
				return employee.EnrollFingerprintResponse{}, fmt.Errorf("failed to generate totp secret: %w", err)
			}
			resp.TOTPSecret = secret
			resp.OTPAuthURL = otpauthURL
		}
		// The scheme prefix routes check-in verification to the totp provider.
		template = employee.CredentialTOTP + ":" + secret
	}

	if err := s.EmployeeRepository.EnrollFingerprint(ctx, req.EmployeeID, template); err != nil {
		return employee.EnrollFingerprintResponse{}, err
	}
	resp.FingerprintEnrolled = true

	return resp, nil
}

// Deactivate implements employee.EmployeeService.
func (s *EmployeeServiceImpl) Deactivate(ctx context.Context, id string) error {
	emp, err := s.EmployeeRepository.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !emp.IsActive {
		return employee.ErrEmployeeAlreadyInactive
	}

	return s.EmployeeRepository.Deactivate(ctx, id)
}

// totpIssuer labels generated otpauth URLs in authenticator apps.
const totpIssuer = "attendly"

func generateEmployeeCode() string {
	raw := strings.ReplaceAll(uuid.NewString(), "-", "")
	return "EMP" + strings.ToUpper(raw[:8])
}

func mapEmployeeToResponse(emp employee.Employee) employee.EmployeeResponse {
	resp := employee.EmployeeResponse{
		ID:                  emp.ID,
		EmployeeCode:        emp.EmployeeCode,
		Position:            emp.Position,
		DepartmentID:        emp.DepartmentID,
		DepartmentName:      emp.DepartmentName,
		QRToken:             emp.QRToken,
		FingerprintEnrolled: emp.FingerprintEnrolled,
		IsActive:            emp.IsActive,
		JoinedDate:          emp.JoinedDate.Format("2006-01-02"),
	}
	if emp.FullName != nil {
		resp.FullName = *emp.FullName
	}
	if emp.Email != nil {
		resp.Email = *emp.Email
	}
	return resp
}
