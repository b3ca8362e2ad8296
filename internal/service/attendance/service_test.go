package attendance

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/attendly/attendance-backend-go/internal/domain/attendance"
	"github.com/attendly/attendance-backend-go/internal/domain/employee"
	"github.com/attendly/attendance-backend-go/internal/domain/settings"
	"github.com/attendly/attendance-backend-go/internal/pkg/verification"
	"github.com/pquerna/otp/totp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDirectory struct {
	employees map[employee.Identity]employee.Employee
}

func (f *fakeDirectory) Resolve(_ context.Context, identity employee.Identity) (employee.Employee, error) {
	emp, ok := f.employees[identity]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return emp, nil
}

type fakeAttendanceStore struct {
	byKey  map[string]*attendance.Attendance
	byID   map[string]*attendance.Attendance
	nextID int
}

func newFakeAttendanceStore() *fakeAttendanceStore {
	return &fakeAttendanceStore{
		byKey: make(map[string]*attendance.Attendance),
		byID:  make(map[string]*attendance.Attendance),
	}
}

func storeKey(employeeID string, date time.Time) string {
	return employeeID + "|" + date.Format("2006-01-02")
}

func (f *fakeAttendanceStore) put(att attendance.Attendance) *attendance.Attendance {
	f.nextID++
	att.ID = fmt.Sprintf("att-%d", f.nextID)
	stored := att
	f.byKey[storeKey(att.EmployeeID, att.Date)] = &stored
	f.byID[att.ID] = &stored
	return &stored
}

func (f *fakeAttendanceStore) CreateOrGetForDate(_ context.Context, att attendance.Attendance) (attendance.Attendance, bool, error) {
	if existing, ok := f.byKey[storeKey(att.EmployeeID, att.Date)]; ok {
		return *existing, false, nil
	}
	return *f.put(att), true, nil
}

func (f *fakeAttendanceStore) GetByID(_ context.Context, id string) (attendance.Attendance, error) {
	att, ok := f.byID[id]
	if !ok {
		return attendance.Attendance{}, attendance.ErrAttendanceNotFound
	}
	return *att, nil
}

func (f *fakeAttendanceStore) GetByEmployeeAndDate(_ context.Context, employeeID string, date time.Time) (*attendance.Attendance, error) {
	att, ok := f.byKey[storeKey(employeeID, date)]
	if !ok {
		return nil, nil
	}
	copied := *att
	return &copied, nil
}

func (f *fakeAttendanceStore) SetCheckIn(_ context.Context, id string, checkIn time.Time, method attendance.VerificationMethod, status attendance.Status) error {
	att, ok := f.byID[id]
	if !ok {
		return attendance.ErrAttendanceNotFound
	}
	if att.CheckIn != nil {
		return attendance.ErrAlreadyCheckedIn
	}
	att.CheckIn = &checkIn
	att.VerificationMethod = &method
	att.Status = status
	return nil
}

func (f *fakeAttendanceStore) SetCheckOut(_ context.Context, update attendance.Attendance) (bool, error) {
	att, ok := f.byID[update.ID]
	if !ok || att.CheckOut != nil {
		return false, nil
	}
	att.CheckOut = update.CheckOut
	att.WorkingHours = update.WorkingHours
	return true, nil
}

func (f *fakeAttendanceStore) Update(_ context.Context, update attendance.Attendance) error {
	att, ok := f.byID[update.ID]
	if !ok {
		return attendance.ErrAttendanceNotFound
	}
	*att = update
	return nil
}

func (f *fakeAttendanceStore) List(_ context.Context, _ attendance.AttendanceFilter) ([]attendance.Attendance, int64, error) {
	return nil, 0, nil
}

func (f *fakeAttendanceStore) GetMyAttendance(_ context.Context, _ string, _ attendance.MyAttendanceFilter) ([]attendance.Attendance, int64, error) {
	return nil, 0, nil
}

func (f *fakeAttendanceStore) CreateAbsentPlaceholders(_ context.Context, date time.Time, employeeIDs []string) (int64, error) {
	var inserted int64
	for _, id := range employeeIDs {
		if _, ok := f.byKey[storeKey(id, date)]; ok {
			continue
		}
		f.put(attendance.Attendance{EmployeeID: id, Date: date, Status: attendance.StatusAbsent})
		inserted++
	}
	return inserted, nil
}

type fakeSettingsRepo struct {
	cfg settings.Settings
}

func (f *fakeSettingsRepo) Get(_ context.Context) (settings.Settings, error) {
	return f.cfg, nil
}

func (f *fakeSettingsRepo) Update(_ context.Context, cfg settings.Settings) error {
	f.cfg = cfg
	return nil
}

type stubEmployeeRepo struct {
	activeWithoutAttendance []string
}

func (s *stubEmployeeRepo) Create(_ context.Context, emp employee.Employee) (employee.Employee, error) {
	return emp, nil
}

func (s *stubEmployeeRepo) GetByID(_ context.Context, _ string) (employee.Employee, error) {
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (s *stubEmployeeRepo) GetByUserID(_ context.Context, _ string) (employee.Employee, error) {
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (s *stubEmployeeRepo) GetByEmployeeCode(_ context.Context, _ string) (employee.Employee, error) {
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (s *stubEmployeeRepo) GetByQRToken(_ context.Context, _ string) (employee.Employee, error) {
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (s *stubEmployeeRepo) List(_ context.Context, _ employee.EmployeeFilter) ([]employee.Employee, int64, error) {
	return nil, 0, nil
}

func (s *stubEmployeeRepo) GetActiveIDsWithoutAttendance(_ context.Context, _ string) ([]string, error) {
	return s.activeWithoutAttendance, nil
}

func (s *stubEmployeeRepo) EnrollFingerprint(_ context.Context, _ string, _ string) error {
	return nil
}

func (s *stubEmployeeRepo) Deactivate(_ context.Context, _ string) error {
	return nil
}

type serviceFixture struct {
	svc   attendance.AttendanceService
	store *fakeAttendanceStore
	emp   employee.Employee
}

// newServiceFixture wires one active employee reachable by qr token, employee
// code and session user id. Expected check-in midnight + 24h grace keeps the
// classification out of the way of wall-clock test runs.
func newServiceFixture(t *testing.T, emp employee.Employee, cfg settings.Settings) *serviceFixture {
	t.Helper()

	directory := &fakeDirectory{employees: make(map[employee.Identity]employee.Employee)}
	for _, identity := range []employee.Identity{
		employee.QRIdentity(emp.QRToken),
		employee.DeclaredIdentity(emp.EmployeeCode),
		employee.SessionIdentity(emp.UserID),
	} {
		directory.employees[identity] = emp
	}
	store := newFakeAttendanceStore()
	providers := verification.NewRegistry(
		verification.NewNonEmptyProvider("fingerprint"),
		verification.NewTOTPProvider("totp"),
	)

	svc := NewAttendanceService(store, &fakeSettingsRepo{cfg: cfg}, &stubEmployeeRepo{}, directory, providers)
	return &serviceFixture{svc: svc, store: store, emp: emp}
}

func testEmployee() employee.Employee {
	return employee.Employee{
		ID:           "emp-1",
		UserID:       "user-1",
		EmployeeCode: "EMP0A1B2C3D",
		QRToken:      "EMP0A1B2C3D:alice@example.com:uuid",
		IsActive:     true,
	}
}

func lenientSettings() settings.Settings {
	return settings.Settings{ExpectedCheckIn: "00:00", GracePeriodMinutes: 24 * 60}
}

func TestCheckIn_SecondAttemptIsIdempotent(t *testing.T) {
	emp := testEmployee()
	f := newServiceFixture(t, emp, lenientSettings())
	ctx := context.Background()
	req := attendance.CheckInRequest{Method: "qr", QRData: emp.QRToken}

	first, err := f.svc.CheckIn(ctx, req)
	require.NoError(t, err)
	require.NotNil(t, first.CheckInTime)
	assert.Equal(t, string(attendance.StatusPresent), first.Status)

	second, err := f.svc.CheckIn(ctx, req)
	assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedIn)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, first.CheckInTime, second.CheckInTime)
}

func TestCheckIn_UnknownBadge(t *testing.T) {
	f := newServiceFixture(t, testEmployee(), lenientSettings())

	_, err := f.svc.CheckIn(context.Background(), attendance.CheckInRequest{
		Method: "qr",
		QRData: "EMPZZZZ9999:ghost@example.com:uuid",
	})
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestCheckIn_FingerprintRequiresEnrollment(t *testing.T) {
	emp := testEmployee()
	f := newServiceFixture(t, emp, lenientSettings())
	ctx := context.Background()

	_, err := f.svc.CheckIn(ctx, attendance.CheckInRequest{
		Method:       "fingerprint",
		EmployeeCode: emp.EmployeeCode,
		Proof:        "scan-payload",
	})
	assert.ErrorIs(t, err, employee.ErrFingerprintNotEnrolled)
}

func TestCheckIn_FingerprintEnrolled(t *testing.T) {
	emp := testEmployee()
	template := "template-data"
	emp.FingerprintTemplate = &template
	emp.FingerprintEnrolled = true
	f := newServiceFixture(t, emp, lenientSettings())
	ctx := context.Background()

	resp, err := f.svc.CheckIn(ctx, attendance.CheckInRequest{
		Method:       "fingerprint",
		EmployeeCode: emp.EmployeeCode,
		Proof:        "scan-payload",
	})
	require.NoError(t, err)
	require.NotNil(t, resp.VerificationMethod)
	assert.Equal(t, "fingerprint", *resp.VerificationMethod)

	_, err = f.svc.CheckIn(ctx, attendance.CheckInRequest{
		Method:       "fingerprint",
		EmployeeCode: emp.EmployeeCode,
		Proof:        "   ",
	})
	assert.ErrorIs(t, err, attendance.ErrVerificationFailed)
}

func TestCheckIn_TOTPEnrolledKiosk(t *testing.T) {
	emp := testEmployee()
	secret, _, err := verification.GenerateTOTPSecret("attendly", "alice@example.com")
	require.NoError(t, err)
	template := "totp:" + secret
	emp.FingerprintTemplate = &template
	emp.FingerprintEnrolled = true
	f := newServiceFixture(t, emp, lenientSettings())
	ctx := context.Background()

	code, err := totp.GenerateCode(secret, time.Now())
	require.NoError(t, err)

	resp, err := f.svc.CheckIn(ctx, attendance.CheckInRequest{
		Method:       "fingerprint",
		EmployeeCode: emp.EmployeeCode,
		Proof:        code,
	})
	require.NoError(t, err)
	assert.NotNil(t, resp.CheckInTime)

	f = newServiceFixture(t, emp, lenientSettings())
	_, err = f.svc.CheckIn(ctx, attendance.CheckInRequest{
		Method:       "fingerprint",
		EmployeeCode: emp.EmployeeCode,
		Proof:        "12345",
	})
	assert.ErrorIs(t, err, attendance.ErrVerificationFailed)
}

func TestCheckIn_ManualGatedBySettings(t *testing.T) {
	emp := testEmployee()
	f := newServiceFixture(t, emp, lenientSettings())

	_, err := f.svc.CheckIn(context.Background(), attendance.CheckInRequest{
		Method:       "manual",
		EmployeeCode: emp.EmployeeCode,
	})
	assert.ErrorIs(t, err, attendance.ErrMethodNotAllowed)

	cfg := lenientSettings()
	cfg.AllowManualEntry = true
	f = newServiceFixture(t, emp, cfg)

	_, err = f.svc.CheckIn(context.Background(), attendance.CheckInRequest{
		Method:       "manual",
		EmployeeCode: emp.EmployeeCode,
	})
	assert.NoError(t, err)
}

func TestCheckIn_FillsAbsentPlaceholder(t *testing.T) {
	emp := testEmployee()
	f := newServiceFixture(t, emp, lenientSettings())
	ctx := context.Background()

	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	f.store.put(attendance.Attendance{EmployeeID: emp.ID, Date: today, Status: attendance.StatusAbsent})

	resp, err := f.svc.CheckIn(ctx, attendance.CheckInRequest{Method: "qr", QRData: emp.QRToken})
	require.NoError(t, err)
	assert.NotNil(t, resp.CheckInTime)
	assert.Equal(t, string(attendance.StatusPresent), resp.Status)
}

// raceWinnerStore fills the placeholder row just before the caller's
// SetCheckIn lands, simulating a concurrent kiosk winning the same fill.
type raceWinnerStore struct {
	*fakeAttendanceStore
	winner time.Time
}

func (r *raceWinnerStore) SetCheckIn(ctx context.Context, id string, checkIn time.Time, method attendance.VerificationMethod, status attendance.Status) error {
	if err := r.fakeAttendanceStore.SetCheckIn(ctx, id, r.winner, method, status); err != nil {
		return err
	}
	return r.fakeAttendanceStore.SetCheckIn(ctx, id, checkIn, method, status)
}

func TestCheckIn_PlaceholderFillRaceReturnsWinner(t *testing.T) {
	emp := testEmployee()
	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	winner := now.Add(-2 * time.Hour)

	inner := newFakeAttendanceStore()
	inner.put(attendance.Attendance{EmployeeID: emp.ID, Date: today, Status: attendance.StatusAbsent})
	store := &raceWinnerStore{fakeAttendanceStore: inner, winner: winner}

	directory := &fakeDirectory{employees: map[employee.Identity]employee.Employee{
		employee.QRIdentity(emp.QRToken): emp,
	}}
	svc := NewAttendanceService(store, &fakeSettingsRepo{cfg: lenientSettings()}, &stubEmployeeRepo{}, directory, verification.NewRegistry())

	resp, err := svc.CheckIn(context.Background(), attendance.CheckInRequest{Method: "qr", QRData: emp.QRToken})
	assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedIn)
	require.NotEmpty(t, resp.ID)
	require.NotNil(t, resp.CheckInTime)
	assert.Equal(t, winner.Format("2006-01-02 15:04:05"), *resp.CheckInTime)
}

func TestCheckOut_WithoutCheckIn(t *testing.T) {
	emp := testEmployee()
	f := newServiceFixture(t, emp, lenientSettings())

	_, err := f.svc.CheckOut(context.Background(), attendance.CheckOutRequest{EmployeeCode: emp.EmployeeCode})
	assert.ErrorIs(t, err, attendance.ErrNotCheckedIn)

	// An absent placeholder without a check-in does not count either
	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	f.store.put(attendance.Attendance{EmployeeID: emp.ID, Date: today, Status: attendance.StatusAbsent})

	_, err = f.svc.CheckOut(context.Background(), attendance.CheckOutRequest{EmployeeCode: emp.EmployeeCode})
	assert.ErrorIs(t, err, attendance.ErrNotCheckedIn)
}

func TestCheckOut_SecondAttemptPreservesHours(t *testing.T) {
	emp := testEmployee()
	f := newServiceFixture(t, emp, lenientSettings())
	ctx := context.Background()

	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	checkIn := now.Add(-8 * time.Hour)
	method := attendance.MethodQR
	f.store.put(attendance.Attendance{
		EmployeeID:         emp.ID,
		Date:               today,
		CheckIn:            &checkIn,
		VerificationMethod: &method,
		Status:             attendance.StatusPresent,
	})

	first, err := f.svc.CheckOut(ctx, attendance.CheckOutRequest{EmployeeCode: emp.EmployeeCode})
	require.NoError(t, err)
	require.NotNil(t, first.WorkingHours)
	assert.Equal(t, "8.00", *first.WorkingHours)

	second, err := f.svc.CheckOut(ctx, attendance.CheckOutRequest{EmployeeCode: emp.EmployeeCode})
	assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedOut)
	require.NotNil(t, second.WorkingHours)
	assert.Equal(t, "8.00", *second.WorkingHours)
	assert.Equal(t, first.CheckOutTime, second.CheckOutTime)
}

func TestCheckOut_BySessionIdentity(t *testing.T) {
	emp := testEmployee()
	f := newServiceFixture(t, emp, lenientSettings())
	ctx := context.Background()

	_, err := f.svc.CheckIn(ctx, attendance.CheckInRequest{Method: "qr", QRData: emp.QRToken})
	require.NoError(t, err)

	resp, err := f.svc.CheckOut(ctx, attendance.CheckOutRequest{UserID: emp.UserID})
	require.NoError(t, err)
	assert.NotNil(t, resp.CheckOutTime)
}

func TestMarkAbsentees(t *testing.T) {
	store := newFakeAttendanceStore()
	employees := &stubEmployeeRepo{activeWithoutAttendance: []string{"emp-1", "emp-2"}}
	svc := NewAttendanceService(store, &fakeSettingsRepo{cfg: lenientSettings()}, employees, &fakeDirectory{}, verification.NewRegistry())
	ctx := context.Background()

	marked, err := svc.MarkAbsentees(ctx, "2024-06-10")
	require.NoError(t, err)
	assert.Equal(t, int64(2), marked)

	// Re-running the sweep finds the rows already present
	marked, err = svc.MarkAbsentees(ctx, "2024-06-10")
	require.NoError(t, err)
	assert.Equal(t, int64(0), marked)

	_, err = svc.MarkAbsentees(ctx, "not-a-date")
	assert.Error(t, err)
}
