package settings

import (
	"context"
	"fmt"

	"github.com/attendly/attendance-backend-go/internal/domain/settings"
)

type SettingsServiceImpl struct {
	settings.SettingsRepository
}

func NewSettingsService(settingsRepo settings.SettingsRepository) settings.SettingsService {
	return &SettingsServiceImpl{SettingsRepository: settingsRepo}
}

// Get implements settings.SettingsService.
func (s *SettingsServiceImpl) Get(ctx context.Context) (settings.SettingsResponse, error) {
	cfg, err := s.SettingsRepository.Get(ctx)
	if err != nil {
		return settings.SettingsResponse{}, fmt.Errorf("failed to get settings: %w", err)
	}

	return mapSettingsToResponse(cfg), nil
}

// Update implements settings.SettingsService. Absent fields keep their
// current value.
func (s *SettingsServiceImpl) Update(ctx context.Context, req settings.UpdateSettingsRequest) (settings.SettingsResponse, error) {
	if err := req.Validate(); err != nil {
		return settings.SettingsResponse{}, err
	}

	cfg, err := s.SettingsRepository.Get(ctx)
	if err != nil {
		return settings.SettingsResponse{}, fmt.Errorf("failed to get settings: %w", err)
	}

	if req.ExpectedCheckIn != nil {
		cfg.ExpectedCheckIn = *req.ExpectedCheckIn
	}
	if req.ExpectedCheckOut != nil {
		cfg.ExpectedCheckOut = *req.ExpectedCheckOut
	}
	if req.GracePeriodMinutes != nil {
		cfg.GracePeriodMinutes = *req.GracePeriodMinutes
	}
	if req.RequireFingerprint != nil {
		cfg.RequireFingerprint = *req.RequireFingerprint
	}
	if req.RequireQRCode != nil {
		cfg.RequireQRCode = *req.RequireQRCode
	}
	if req.AllowManualEntry != nil {
		cfg.AllowManualEntry = *req.AllowManualEntry
	}

	if err := s.SettingsRepository.Update(ctx, cfg); err != nil {
		return settings.SettingsResponse{}, fmt.Errorf("failed to update settings: %w", err)
	}

	return mapSettingsToResponse(cfg), nil
}

func mapSettingsToResponse(cfg settings.Settings) settings.SettingsResponse {
	return settings.SettingsResponse{
		ExpectedCheckIn:    cfg.ExpectedCheckIn,
		ExpectedCheckOut:   cfg.ExpectedCheckOut,
		GracePeriodMinutes: cfg.GracePeriodMinutes,
		RequireFingerprint: cfg.RequireFingerprint,
		RequireQRCode:      cfg.RequireQRCode,
		AllowManualEntry:   cfg.AllowManualEntry,
	}
}
