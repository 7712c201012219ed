package services

import (
	"context"

	"github.com/SscSPs/quarry_billing_app/internal/core/domain"
	"github.com/SscSPs/quarry_billing_app/internal/dto"
)

// BillingSettingsProvider supplies the billing configuration for one request.
type BillingSettingsProvider interface {
	GetBillingSettings(ctx context.Context) (domain.BillingSettings, error)
}

// SettingsSvcFacade combines settings reads and writes
type SettingsSvcFacade interface {
	BillingSettingsProvider

	// ListSettings returns stored settings, optionally for one category.
	ListSettings(ctx context.Context, category string) ([]domain.Setting, error)

	// UpdateSetting validates and stores a setting value.
	UpdateSetting(ctx context.Context, key string, req dto.UpdateSettingRequest, userID string) (*domain.Setting, error)
}
