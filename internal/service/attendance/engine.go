package attendance

import (
	"fmt"
	"time"

	"github.com/attendly/attendance-backend-go/internal/domain/attendance"
	"github.com/attendly/attendance-backend-go/internal/domain/settings"
	"github.com/shopspring/decimal"
)

// ClassifyCheckIn classifies a check-in as present or late against the
// expected check-in time plus grace period. The settings value is injected by
// the caller; the engine holds no global state.
func ClassifyCheckIn(checkIn time.Time, cfg settings.Settings) (attendance.Status, error) {
	expected, err := time.Parse("15:04", cfg.ExpectedCheckIn)
	if err != nil {
		return "", fmt.Errorf("invalid expected check-in time %q: %w", cfg.ExpectedCheckIn, err)
	}

	deadline := time.Date(
		checkIn.Year(), checkIn.Month(), checkIn.Day(),
		expected.Hour(), expected.Minute(), 0, 0,
		checkIn.Location(),
	).Add(time.Duration(cfg.GracePeriodMinutes) * time.Minute)

	if checkIn.After(deadline) {
		return attendance.StatusLate, nil
	}
	return attendance.StatusPresent, nil
}

// ComputeWorkingHours computes elapsed hours between check-in and check-out,
// both anchored to the record's date by clock time. A check-out clock time
// before the check-in clock time means an overnight shift and wraps by +24h.
// The result is rounded to 2 decimal places.
func ComputeWorkingHours(date, checkIn, checkOut time.Time) decimal.Decimal {
	in := anchorToDate(date, checkIn)
	out := anchorToDate(date, checkOut)

	if out.Before(in) {
		out = out.Add(24 * time.Hour)
	}

	return decimal.NewFromFloat(out.Sub(in).Hours()).Round(2)
}

func anchorToDate(date, t time.Time) time.Time {
	return time.Date(
		date.Year(), date.Month(), date.Day(),
		t.Hour(), t.Minute(), t.Second(), 0, time.UTC,
	)
}
