package repositories

import (
	"context"

	"github.com/SscSPs/quarry_billing_app/internal/core/domain"
)

// SettingsRepository defines persistence for key/value settings
type SettingsRepository interface {
	// ListSettings returns every setting, optionally restricted to a category.
	ListSettings(ctx context.Context, category string) ([]domain.Setting, error)

	// FindSetting returns a single setting by key.
	FindSetting(ctx context.Context, key string) (*domain.Setting, error)

	// UpsertSetting creates or replaces a setting.
	UpsertSetting(ctx context.Context, setting domain.Setting) error
}
