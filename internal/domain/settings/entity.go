package settings

import "time"

// Settings is the single attendance configuration row. The attendance engine
// never reads it globally; callers fetch it and pass it in by value.
type Settings struct {
	ExpectedCheckIn    string // "HH:MM", 24h clock
	ExpectedCheckOut   string
	GracePeriodMinutes int
	RequireFingerprint bool
	RequireQRCode      bool
	AllowManualEntry   bool
	UpdatedAt          time.Time
}

// Default mirrors the values the system is seeded with.
func Default() Settings {
	return Settings{
		ExpectedCheckIn:    "09:00",
		ExpectedCheckOut:   "17:00",
		GracePeriodMinutes: 15,
		RequireFingerprint: true,
		RequireQRCode:      true,
		AllowManualEntry:   false,
	}
}
