package settings

import "github.com/attendly/attendance-backend-go/internal/pkg/validator"

type UpdateSettingsRequest struct {
	ExpectedCheckIn    *string `json:"expected_check_in_time,omitempty"`
	ExpectedCheckOut   *string `json:"expected_check_out_time,omitempty"`
	GracePeriodMinutes *int    `json:"grace_period_minutes,omitempty"`
	RequireFingerprint *bool   `json:"require_fingerprint,omitempty"`
	RequireQRCode      *bool   `json:"require_qr_code,omitempty"`
	AllowManualEntry   *bool   `json:"allow_manual_entry,omitempty"`
}

func (r *UpdateSettingsRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.ExpectedCheckIn != nil {
		if _, ok := validator.IsValidClockTime(*r.ExpectedCheckIn); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "expected_check_in_time",
				Message: "must be a 24h clock time like 09:00",
			})
		}
	}

	if r.ExpectedCheckOut != nil {
		if _, ok := validator.IsValidClockTime(*r.ExpectedCheckOut); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "expected_check_out_time",
				Message: "must be a 24h clock time like 17:00",
			})
		}
	}

	if r.GracePeriodMinutes != nil && *r.GracePeriodMinutes < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "grace_period_minutes",
			Message: "must not be negative",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type SettingsResponse struct {
	ExpectedCheckIn    string `json:"expected_check_in_time"`
	ExpectedCheckOut   string `json:"expected_check_out_time"`
	GracePeriodMinutes int    `json:"grace_period_minutes"`
	RequireFingerprint bool   `json:"require_fingerprint"`
	RequireQRCode      bool   `json:"require_qr_code"`
	AllowManualEntry   bool   `json:"allow_manual_entry"`
}
