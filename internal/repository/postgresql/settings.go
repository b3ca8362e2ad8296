package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/attendly/attendance-backend-go/internal/domain/settings"
	"github.com/attendly/attendance-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type settingsRepositoryImpl struct {
	db *database.DB
}

func NewSettingsRepository(db *database.DB) settings.SettingsRepository {
	return &settingsRepositoryImpl{db: db}
}

// Get implements settings.SettingsRepository. The table holds exactly one
// row; a missing row falls back to the seeded defaults.
func (s *settingsRepositoryImpl) Get(ctx context.Context) (settings.Settings, error) {
	q := GetQuerier(ctx, s.db)

	query := `
		SELECT expected_check_in, expected_check_out, grace_period_minutes,
			require_fingerprint, require_qr_code, allow_manual_entry, updated_at
		FROM attendance_settings
		LIMIT 1
	`

	var cfg settings.Settings
	err := q.QueryRow(ctx, query).Scan(
		&cfg.ExpectedCheckIn, &cfg.ExpectedCheckOut, &cfg.GracePeriodMinutes,
		&cfg.RequireFingerprint, &cfg.RequireQRCode, &cfg.AllowManualEntry,
		&cfg.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return settings.Default(), nil
		}
		return settings.Settings{}, fmt.Errorf("failed to get settings: %w", err)
	}

	return cfg, nil
}

// Update implements settings.SettingsRepository.
func (s *settingsRepositoryImpl) Update(ctx context.Context, cfg settings.Settings) error {
	q := GetQuerier(ctx, s.db)

	query := `
		INSERT INTO attendance_settings (
			id, expected_check_in, expected_check_out, grace_period_minutes,
			require_fingerprint, require_qr_code, allow_manual_entry, updated_at
		) VALUES (1, $1, $2, $3, $4, $5, $6, NOW())
		ON CONFLICT (id) DO UPDATE SET
			expected_check_in = EXCLUDED.expected_check_in,
			expected_check_out = EXCLUDED.expected_check_out,
			grace_period_minutes = EXCLUDED.grace_period_minutes,
			require_fingerprint = EXCLUDED.require_fingerprint,
			require_qr_code = EXCLUDED.require_qr_code,
			allow_manual_entry = EXCLUDED.allow_manual_entry,
			updated_at = NOW()
	`

	_, err := q.Exec(ctx, query,
		cfg.ExpectedCheckIn, cfg.ExpectedCheckOut, cfg.GracePeriodMinutes,
		cfg.RequireFingerprint, cfg.RequireQRCode, cfg.AllowManualEntry,
	)
	if err != nil {
		return fmt.Errorf("failed to update settings: %w", err)
	}

	return nil
}
