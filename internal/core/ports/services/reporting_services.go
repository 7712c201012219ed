package services

import (
	"context"
	"time"

	"github.com/SscSPs/quarry_billing_app/internal/core/domain"
)

// ReportingService defines operations for generating financial reports
type ReportingService interface {
	// FinancialSummary totals active receipts dated within [from, to).
	FinancialSummary(ctx context.Context, from, to time.Time) (*domain.FinancialSummary, error)

	// CreditAging buckets outstanding credit per owner as of a date.
	CreditAging(ctx context.Context, asOf time.Time) ([]domain.CreditAgingRow, error)

	// PartnerSummary compares partner billing with the default rate over [from, to).
	PartnerSummary(ctx context.Context, from, to time.Time) ([]domain.PartnerSummaryRow, error)
}
