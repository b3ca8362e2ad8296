package attendance

import (
	"testing"
	"time"

	"github.com/attendly/attendance-backend-go/internal/domain/attendance"
	"github.com/attendly/attendance-backend-go/internal/domain/settings"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clock(t *testing.T, hour, minute int) time.Time {
	t.Helper()
	return time.Date(2024, 6, 10, hour, minute, 0, 0, time.UTC)
}

func TestClassifyCheckIn_WithinGracePeriod(t *testing.T) {
	cfg := settings.Settings{ExpectedCheckIn: "09:00", GracePeriodMinutes: 15}

	status, err := ClassifyCheckIn(clock(t, 9, 10), cfg)
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusPresent, status)
}

func TestClassifyCheckIn_AfterGracePeriod(t *testing.T) {
	cfg := settings.Settings{ExpectedCheckIn: "09:00", GracePeriodMinutes: 15}

	status, err := ClassifyCheckIn(clock(t, 9, 20), cfg)
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusLate, status)
}

func TestClassifyCheckIn_ExactlyAtDeadline(t *testing.T) {
	cfg := settings.Settings{ExpectedCheckIn: "09:00", GracePeriodMinutes: 15}

	// check-in <= expected+grace is present, strictly after is late
	status, err := ClassifyCheckIn(clock(t, 9, 15), cfg)
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusPresent, status)
}

func TestClassifyCheckIn_NoGracePeriod(t *testing.T) {
	cfg := settings.Settings{ExpectedCheckIn: "09:00", GracePeriodMinutes: 0}

	status, err := ClassifyCheckIn(clock(t, 9, 1), cfg)
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusLate, status)
}

func TestClassifyCheckIn_InvalidExpectedTime(t *testing.T) {
	cfg := settings.Settings{ExpectedCheckIn: "nine"}

	_, err := ClassifyCheckIn(clock(t, 9, 0), cfg)
	assert.Error(t, err)
}

func TestComputeWorkingHours_RegularDay(t *testing.T) {
	date := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)

	hours := ComputeWorkingHours(date, clock(t, 9, 0), clock(t, 17, 30))
	assert.Equal(t, "8.50", hours.StringFixed(2))
}

func TestComputeWorkingHours_OvernightShiftWraps(t *testing.T) {
	date := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)

	// 22:00 -> 06:00 is negative until wrapped by +24h
	hours := ComputeWorkingHours(date, clock(t, 22, 0), clock(t, 6, 0))
	assert.Equal(t, "8.00", hours.StringFixed(2))
}

func TestComputeWorkingHours_RoundsToTwoDecimals(t *testing.T) {
	date := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)

	in := time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC)
	out := time.Date(2024, 6, 10, 17, 20, 0, 0, time.UTC)

	// 8h20m = 8.3333... hours
	hours := ComputeWorkingHours(date, in, out)
	assert.Equal(t, "8.33", hours.StringFixed(2))
}

func TestComputeWorkingHours_IgnoresCalendarDayOfTimestamps(t *testing.T) {
	date := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)

	// Timestamps on other dates still anchor to the record's date
	in := time.Date(2024, 6, 11, 9, 0, 0, 0, time.UTC)
	out := time.Date(2024, 6, 12, 17, 0, 0, 0, time.UTC)

	hours := ComputeWorkingHours(date, in, out)
	assert.Equal(t, "8.00", hours.StringFixed(2))
}
