package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/quarry_billing_app/internal/apperrors"
	"github.com/SscSPs/quarry_billing_app/internal/core/domain"
	portsrepo "github.com/SscSPs/quarry_billing_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/quarry_billing_app/internal/core/ports/services"
	"github.com/shopspring/decimal"
)

// reportingService implements the ReportingService interface
type reportingService struct {
	BaseService
	reportingRepo portsrepo.ReportingRepository
	settings      portssvc.BillingSettingsProvider
}

// NewReportingService creates a new reporting service with the provided options
func NewReportingService(repo portsrepo.ReportingRepository, settings portssvc.BillingSettingsProvider, options ...ServiceOption) portssvc.ReportingService {
	return &reportingService{
		BaseService:   newBaseService(options...),
		reportingRepo: repo,
		settings:      settings,
	}
}

// Ensure reportingService implements the ReportingService interface
var _ portssvc.ReportingService = (*reportingService)(nil)

func validatePeriod(from, to time.Time) error {
	if from.IsZero() || to.IsZero() {
		return fmt.Errorf("%w: report period requires both from and to", apperrors.ErrValidation)
	}
	if !from.Before(to) {
		return fmt.Errorf("%w: report period start must be before its end", apperrors.ErrValidation)
	}
	return nil
}

// FinancialSummary generates the period totals report
func (s *reportingService) FinancialSummary(ctx context.Context, from, to time.Time) (*domain.FinancialSummary, error) {
	if err := validatePeriod(from, to); err != nil {
		return nil, err
	}

	summary, err := s.reportingRepo.GetFinancialSummaryData(ctx, from, to)
	if err != nil {
		s.LogError(ctx, err, "Failed to get financial summary data",
			slog.Time("from", from), slog.Time("to", to))
		return nil, fmt.Errorf("failed to generate financial summary: %w", err)
	}
	if summary.ByPaymentMethod == nil {
		summary.ByPaymentMethod = []domain.PaymentMethodTotal{}
	}

	s.LogInfo(ctx, "Financial summary generated",
		slog.Int("receipts", summary.ReceiptCount))
	return summary, nil
}

// CreditAging totals each owner's buckets and flags owners over their limit.
// A zero credit limit means no limit.
func (s *reportingService) CreditAging(ctx context.Context, asOf time.Time) ([]domain.CreditAgingRow, error) {
	if asOf.IsZero() {
		return nil, fmt.Errorf("%w: as-of date is required", apperrors.ErrValidation)
	}

	rows, err := s.reportingRepo.GetCreditAgingData(ctx, asOf)
	if err != nil {
		s.LogError(ctx, err, "Failed to get credit aging data", slog.Time("as_of", asOf))
		return nil, fmt.Errorf("failed to generate credit aging report: %w", err)
	}

	for i := range rows {
		row := &rows[i]
		row.Outstanding = row.Current.Add(row.Days31To60).Add(row.Days61To90).Add(row.Over90)
		row.OverLimit = row.CreditLimit.IsPositive() && row.Outstanding.GreaterThan(row.CreditLimit)
	}
	if rows == nil {
		rows = []domain.CreditAgingRow{}
	}

	s.LogInfo(ctx, "Credit aging report generated", slog.Int("owners", len(rows)))
	return rows, nil
}

// PartnerSummary values partner quantities at the default rate to show the
// discount partners received. Without a default rate the comparison is left at zero.
func (s *reportingService) PartnerSummary(ctx context.Context, from, to time.Time) ([]domain.PartnerSummaryRow, error) {
	if err := validatePeriod(from, to); err != nil {
		return nil, err
	}

	settings, err := s.settings.GetBillingSettings(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := s.reportingRepo.GetPartnerSummaryData(ctx, from, to)
	if err != nil {
		s.LogError(ctx, err, "Failed to get partner summary data",
			slog.Time("from", from), slog.Time("to", to))
		return nil, fmt.Errorf("failed to generate partner summary: %w", err)
	}

	for i := range rows {
		row := &rows[i]
		row.AtDefaultRate = decimal.Zero
		row.PartnerAdvantage = decimal.Zero
		if settings.DefaultRate != nil {
			row.AtDefaultRate = row.BrassQty.Mul(*settings.DefaultRate)
			row.PartnerAdvantage = row.AtDefaultRate.Sub(row.MaterialBilled)
		}
	}
	if rows == nil {
		rows = []domain.PartnerSummaryRow{}
	}

	s.LogInfo(ctx, "Partner summary generated", slog.Int("partners", len(rows)))
	return rows, nil
}
