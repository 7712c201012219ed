package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/quarry_billing_app/internal/core/domain"
)

// ReportingRepository defines operations for retrieving report data
type ReportingRepository interface {
	// GetFinancialSummaryData aggregates active receipts dated within [from, to).
	GetFinancialSummaryData(ctx context.Context, from, to time.Time) (*domain.FinancialSummary, error)

	// GetCreditAgingData buckets outstanding receipt credit per owner as of a date.
	GetCreditAgingData(ctx context.Context, asOf time.Time) ([]domain.CreditAgingRow, error)

	// GetPartnerSummaryData aggregates partner-billed receipts within [from, to).
	GetPartnerSummaryData(ctx context.Context, from, to time.Time) ([]domain.PartnerSummaryRow, error)
}
