package services

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/SscSPs/quarry_billing_app/internal/apperrors"
	"github.com/SscSPs/quarry_billing_app/internal/core/domain"
	portsrepo "github.com/SscSPs/quarry_billing_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/quarry_billing_app/internal/core/ports/services"
	"github.com/SscSPs/quarry_billing_app/internal/dto"
	"github.com/SscSPs/quarry_billing_app/internal/utils/billing"
	"github.com/shopspring/decimal"
)

const (
	defaultReceiptPrefix = "RCP"
	defaultReceiptStart  = int64(1)
	maxReceiptPrefixLen  = 10
	defaultSettingsGroup = "general"
)

type settingsService struct {
	BaseService
	settingsRepo portsrepo.SettingsRepository
}

// NewSettingsService creates the settings store service. It is also the
// billing settings provider handed to the ledger services.
func NewSettingsService(repo portsrepo.SettingsRepository, options ...ServiceOption) portssvc.SettingsSvcFacade {
	return &settingsService{
		BaseService:  newBaseService(options...),
		settingsRepo: repo,
	}
}

var _ portssvc.SettingsSvcFacade = (*settingsService)(nil)

// GetBillingSettings reads the billing category once. Unparseable stored
// values are logged and replaced by their defaults.
func (s *settingsService) GetBillingSettings(ctx context.Context) (domain.BillingSettings, error) {
	settings := domain.BillingSettings{
		ReceiptPrefix: defaultReceiptPrefix,
		ReceiptStart:  defaultReceiptStart,
	}

	stored, err := s.settingsRepo.ListSettings(ctx, domain.SettingCategoryBilling)
	if err != nil {
		s.LogError(ctx, err, "Failed to load billing settings")
		return settings, fmt.Errorf("failed to load billing settings: %w", err)
	}

	for _, setting := range stored {
		value := strings.TrimSpace(setting.Value)
		switch setting.Key {
		case domain.SettingDefaultRate:
			if rate, err := parsePositiveDecimal(value); err == nil {
				settings.DefaultRate = &rate
			} else if value != "" {
				s.LogWarn(ctx, "Ignoring invalid billing setting", slog.String("key", setting.Key), slog.String("value", value))
			}
		case domain.SettingDefaultPartnerRate:
			if rate, err := parsePositiveDecimal(value); err == nil {
				settings.DefaultPartnerRate = &rate
			} else if value != "" {
				s.LogWarn(ctx, "Ignoring invalid billing setting", slog.String("key", setting.Key), slog.String("value", value))
			}
		case domain.SettingReceiptPrefix:
			if err := validateReceiptPrefix(value); err == nil {
				settings.ReceiptPrefix = value
			} else {
				s.LogWarn(ctx, "Ignoring invalid billing setting", slog.String("key", setting.Key), slog.String("value", value))
			}
		case domain.SettingReceiptStart:
			if start, err := parseReceiptStart(value); err == nil {
				settings.ReceiptStart = start
			} else {
				s.LogWarn(ctx, "Ignoring invalid billing setting", slog.String("key", setting.Key), slog.String("value", value))
			}
		}
	}

	return settings, nil
}

func (s *settingsService) ListSettings(ctx context.Context, category string) ([]domain.Setting, error) {
	settings, err := s.settingsRepo.ListSettings(ctx, strings.TrimSpace(category))
	if err != nil {
		s.LogError(ctx, err, "Failed to list settings", slog.String("category", category))
		return nil, err
	}
	if settings == nil {
		return []domain.Setting{}, nil
	}
	return settings, nil
}

// UpdateSetting stores a setting. Billing keys are checked so the ledger never
// reads a value it cannot use, and always live in the billing category.
func (s *settingsService) UpdateSetting(ctx context.Context, key string, req dto.UpdateSettingRequest, userID string) (*domain.Setting, error) {
	key = strings.TrimSpace(key)
	value := strings.TrimSpace(req.Value)
	if key == "" {
		return nil, fmt.Errorf("%w: setting key is required", apperrors.ErrValidation)
	}

	category := strings.TrimSpace(req.Category)
	if isBillingKey(key) {
		if err := validateBillingValue(key, value); err != nil {
			s.LogWarn(ctx, "Rejected billing setting", slog.String("key", key), slog.String("error", err.Error()))
			return nil, err
		}
		category = domain.SettingCategoryBilling
	}
	if category == "" {
		category = defaultSettingsGroup
	}

	now := s.Now()
	setting := domain.Setting{
		Key:      key,
		Value:    value,
		Category: category,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	if err := s.settingsRepo.UpsertSetting(ctx, setting); err != nil {
		s.LogError(ctx, err, "Failed to store setting", slog.String("key", key))
		return nil, err
	}

	s.LogInfo(ctx, "Setting updated", slog.String("key", key), slog.String("category", category))
	return &setting, nil
}

func isBillingKey(key string) bool {
	switch key {
	case domain.SettingDefaultRate, domain.SettingDefaultPartnerRate, domain.SettingReceiptPrefix, domain.SettingReceiptStart:
		return true
	}
	return false
}

func validateBillingValue(key, value string) error {
	var err error
	switch key {
	case domain.SettingDefaultRate, domain.SettingDefaultPartnerRate:
		_, err = parsePositiveDecimal(value)
	case domain.SettingReceiptPrefix:
		err = validateReceiptPrefix(value)
	case domain.SettingReceiptStart:
		_, err = parseReceiptStart(value)
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %v", apperrors.ErrValidation, key, err)
	}
	return nil
}

func parsePositiveDecimal(value string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, fmt.Errorf("'%s' is not a number", value)
	}
	if !d.IsPositive() {
		return decimal.Zero, fmt.Errorf("must be positive, got %s", d)
	}
	if err := billing.CheckMoney("rate", d); err != nil {
		return decimal.Zero, err
	}
	return d, nil
}

// validateReceiptPrefix rejects prefixes ending in a digit; those would be
// read back as part of the receipt number.
func validateReceiptPrefix(value string) error {
	if len(value) > maxReceiptPrefixLen {
		return fmt.Errorf("prefix longer than %d characters", maxReceiptPrefixLen)
	}
	if strings.ContainsAny(value, " \t") {
		return fmt.Errorf("prefix must not contain whitespace")
	}
	if n := len(value); n > 0 && value[n-1] >= '0' && value[n-1] <= '9' {
		return fmt.Errorf("prefix must not end with a digit")
	}
	return nil
}

func parseReceiptStart(value string) (int64, error) {
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("'%s' is not a whole number", value)
	}
	if n < 1 {
		return 0, fmt.Errorf("must be at least 1, got %d", n)
	}
	return n, nil
}
