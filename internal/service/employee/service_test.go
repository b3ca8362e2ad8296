package employee

import (
	"context"
	"testing"
	"time"

	"github.com/attendly/attendance-backend-go/internal/domain/employee"
	"github.com/attendly/attendance-backend-go/internal/pkg/verification"
	"github.com/pquerna/otp/totp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEmployeeRepo struct {
	employees map[string]employee.Employee
	templates map[string]string
}

func (f *fakeEmployeeRepo) Create(_ context.Context, emp employee.Employee) (employee.Employee, error) {
	return emp, nil
}

func (f *fakeEmployeeRepo) GetByID(_ context.Context, id string) (employee.Employee, error) {
	emp, ok := f.employees[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return emp, nil
}

func (f *fakeEmployeeRepo) GetByUserID(_ context.Context, _ string) (employee.Employee, error) {
	return employee.Employee{}, employee.ErrEmployeeNotFound
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

func (f *fakeEmployeeRepo) EnrollFingerprint(_ context.Context, id string, template string) error {
	emp, ok := f.employees[id]
	if !ok {
		return employee.ErrEmployeeNotFound
	}
	emp.FingerprintTemplate = &template
	emp.FingerprintEnrolled = true
	f.employees[id] = emp
	f.templates[id] = template
	return nil
}

func (f *fakeEmployeeRepo) Deactivate(_ context.Context, _ string) error {
	return nil
}

func newEnrollFixture() (*fakeEmployeeRepo, employee.EmployeeService) {
	email := "alice@example.com"
	repo := &fakeEmployeeRepo{
		employees: map[string]employee.Employee{
			"emp-1": {ID: "emp-1", EmployeeCode: "EMP0A1B2C3D", Email: &email, IsActive: true},
		},
		templates: make(map[string]string),
	}
	svc := NewEmployeeService(nil, repo, nil, nil, nil)
	return repo, svc
}

func TestEnrollFingerprint_StoresTemplate(t *testing.T) {
	repo, svc := newEnrollFixture()

	resp, err := svc.EnrollFingerprint(context.Background(), employee.EnrollFingerprintRequest{
		EmployeeID: "emp-1",
		Template:   "scan-template",
	})
	require.NoError(t, err)
	assert.True(t, resp.FingerprintEnrolled)
	assert.Empty(t, resp.TOTPSecret)
	assert.Equal(t, "scan-template", repo.templates["emp-1"])
}

func TestEnrollFingerprint_RequiresData(t *testing.T) {
	_, svc := newEnrollFixture()

	_, err := svc.EnrollFingerprint(context.Background(), employee.EnrollFingerprintRequest{
		EmployeeID: "emp-1",
	})
	assert.ErrorIs(t, err, employee.ErrFingerprintDataRequired)
}

func TestEnrollFingerprint_TOTPGeneratesSecret(t *testing.T) {
	repo, svc := newEnrollFixture()

	resp, err := svc.EnrollFingerprint(context.Background(), employee.EnrollFingerprintRequest{
		EmployeeID: "emp-1",
		Kind:       employee.CredentialTOTP,
	})
	require.NoError(t, err)
	assert.True(t, resp.FingerprintEnrolled)
	require.NotEmpty(t, resp.TOTPSecret)
	assert.Contains(t, resp.OTPAuthURL, "otpauth://totp/")
	assert.Equal(t, "totp:"+resp.TOTPSecret, repo.templates["emp-1"])

	// The stored secret accepts a current authenticator code
	code, err := totp.GenerateCode(resp.TOTPSecret, time.Now())
	require.NoError(t, err)
	provider := verification.NewTOTPProvider("totp")
	assert.NoError(t, provider.Verify(context.Background(), &resp.TOTPSecret, code))
}

func TestEnrollFingerprint_TOTPKeepsProvidedSecret(t *testing.T) {
	repo, svc := newEnrollFixture()

	resp, err := svc.EnrollFingerprint(context.Background(), employee.EnrollFingerprintRequest{
		EmployeeID: "emp-1",
		Kind:       employee.CredentialTOTP,
		Template:   "JBSWY3DPEHPK3PXP",
	})
	require.NoError(t, err)
	assert.Empty(t, resp.TOTPSecret)
	assert.Equal(t, "totp:JBSWY3DPEHPK3PXP", repo.templates["emp-1"])
}

func TestEnrollFingerprint_UnknownEmployee(t *testing.T) {
	_, svc := newEnrollFixture()

	_, err := svc.EnrollFingerprint(context.Background(), employee.EnrollFingerprintRequest{
		EmployeeID: "ghost",
		Template:   "scan-template",
	})
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}
