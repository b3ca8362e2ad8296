package settings

import "context"

// SettingsRepository accesses the singleton configuration row.
type SettingsRepository interface {
	Get(ctx context.Context) (Settings, error)
	Update(ctx context.Context, s Settings) error
}
