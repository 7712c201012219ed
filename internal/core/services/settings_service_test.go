package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/SscSPs/quarry_billing_app/internal/apperrors"
	"github.com/SscSPs/quarry_billing_app/internal/core/domain"
	"github.com/SscSPs/quarry_billing_app/internal/core/services"
	"github.com/SscSPs/quarry_billing_app/internal/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetBillingSettings_Defaults(t *testing.T) {
	svc := services.NewSettingsService(newFakeStore())

	settings, err := svc.GetBillingSettings(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "RCP", settings.ReceiptPrefix)
	assert.Equal(t, int64(1), settings.ReceiptStart)
	assert.Nil(t, settings.DefaultRate)
	assert.Nil(t, settings.DefaultPartnerRate)
}

func TestGetBillingSettings_StoredValues(t *testing.T) {
	store := newFakeStore()
	store.setSetting(domain.SettingDefaultRate, "1200")
	store.setSetting(domain.SettingDefaultPartnerRate, " 1000.50 ")
	store.setSetting(domain.SettingReceiptPrefix, "GP/")
	store.setSetting(domain.SettingReceiptStart, "250")
	svc := services.NewSettingsService(store)

	settings, err := svc.GetBillingSettings(context.Background())

	require.NoError(t, err)
	require.NotNil(t, settings.DefaultRate)
	assertDec(t, "1200", *settings.DefaultRate)
	require.NotNil(t, settings.DefaultPartnerRate)
	assertDec(t, "1000.50", *settings.DefaultPartnerRate)
	assert.Equal(t, "GP/", settings.ReceiptPrefix)
	assert.Equal(t, int64(250), settings.ReceiptStart)
}

func TestGetBillingSettings_InvalidValuesFallBack(t *testing.T) {
	store := newFakeStore()
	store.setSetting(domain.SettingDefaultRate, "lots")
	store.setSetting(domain.SettingDefaultPartnerRate, "-4")
	store.setSetting(domain.SettingReceiptPrefix, "RCP2025")
	store.setSetting(domain.SettingReceiptStart, "0")
	svc := services.NewSettingsService(store)

	settings, err := svc.GetBillingSettings(context.Background())

	require.NoError(t, err)
	assert.Nil(t, settings.DefaultRate)
	assert.Nil(t, settings.DefaultPartnerRate)
	assert.Equal(t, "RCP", settings.ReceiptPrefix)
	assert.Equal(t, int64(1), settings.ReceiptStart)
}

func TestUpdateSetting(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	svc := services.NewSettingsService(store)

	tests := []struct {
		name         string
		key          string
		req          dto.UpdateSettingRequest
		wantErr      error
		wantCategory string
	}{
		{"billing rate", domain.SettingDefaultRate, dto.UpdateSettingRequest{Value: "1150", Category: "misc"}, nil, domain.SettingCategoryBilling},
		{"billing prefix", domain.SettingReceiptPrefix, dto.UpdateSettingRequest{Value: "QB-"}, nil, domain.SettingCategoryBilling},
		{"free form", "quarry_name", dto.UpdateSettingRequest{Value: "Shree Sand"}, nil, "general"},
		{"custom category", "phone", dto.UpdateSettingRequest{Value: "12345", Category: "contact"}, nil, "contact"},
		{"bad rate", domain.SettingDefaultRate, dto.UpdateSettingRequest{Value: "zero"}, apperrors.ErrValidation, ""},
		{"rate below paise", domain.SettingDefaultRate, dto.UpdateSettingRequest{Value: "1150.125"}, apperrors.ErrValidation, ""},
		{"prefix ending in digit", domain.SettingReceiptPrefix, dto.UpdateSettingRequest{Value: "R1"}, apperrors.ErrValidation, ""},
		{"prefix with space", domain.SettingReceiptPrefix, dto.UpdateSettingRequest{Value: "R CP"}, apperrors.ErrValidation, ""},
		{"start below one", domain.SettingReceiptStart, dto.UpdateSettingRequest{Value: "0"}, apperrors.ErrValidation, ""},
		{"blank key", " ", dto.UpdateSettingRequest{Value: "x"}, apperrors.ErrValidation, ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			setting, err := svc.UpdateSetting(ctx, tc.key, tc.req, "user-1")
			if tc.wantErr != nil {
				assert.True(t, errors.Is(err, tc.wantErr), "got %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.wantCategory, setting.Category)

			stored, err := store.FindSetting(ctx, tc.key)
			require.NoError(t, err)
			assert.Equal(t, setting.Value, stored.Value)
		})
	}

	billing, err := svc.ListSettings(ctx, domain.SettingCategoryBilling)
	require.NoError(t, err)
	assert.Len(t, billing, 2)
}
