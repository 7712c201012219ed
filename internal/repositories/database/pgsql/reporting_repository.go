package pgsql

import (
	"context"
	"time"

	"github.com/SscSPs/quarry_billing_app/internal/core/domain"
	portsrepo "github.com/SscSPs/quarry_billing_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// reportingRepository implements the ReportingRepository interface
type reportingRepository struct {
	BaseRepository
}

func newReportingRepository(db *pgxpool.Pool) portsrepo.ReportingRepository {
	return &reportingRepository{
		BaseRepository: BaseRepository{Pool: db},
	}
}

var _ portsrepo.ReportingRepository = (*reportingRepository)(nil)

// GetFinancialSummaryData totals active receipts in [from, to) and splits them by payment method.
func (r *reportingRepository) GetFinancialSummaryData(ctx context.Context, from, to time.Time) (*domain.FinancialSummary, error) {
	totals := `
		SELECT
			COUNT(*),
			COALESCE(SUM(brass_qty), 0),
			COALESCE(SUM(loading_charge), 0),
			COALESCE(SUM(total_amount), 0),
			COALESCE(SUM(cash_paid), 0),
			COALESCE(SUM(deposit_deducted), 0),
			COALESCE(SUM(credit_amount), 0)
		FROM receipts
		WHERE is_active AND date_time >= $1 AND date_time < $2`

	summary := domain.FinancialSummary{From: from, To: to}
	err := r.Pool.QueryRow(ctx, totals, from, to).Scan(
		&summary.ReceiptCount,
		&summary.BrassQty,
		&summary.LoadingCharges,
		&summary.TotalAmount,
		&summary.CashPaid,
		&summary.DepositDeducted,
		&summary.CreditAmount,
	)
	if err != nil {
		return nil, mapPgError(err, "error querying financial summary totals")
	}

	byMethod := `
		SELECT payment_method, COUNT(*), COALESCE(SUM(total_amount), 0)
		FROM receipts
		WHERE is_active AND date_time >= $1 AND date_time < $2
		GROUP BY payment_method
		ORDER BY payment_method`

	rows, err := r.Pool.Query(ctx, byMethod, from, to)
	if err != nil {
		return nil, mapPgError(err, "error querying payment method totals")
	}
	defer rows.Close()

	summary.ByPaymentMethod = []domain.PaymentMethodTotal{}
	for rows.Next() {
		var row domain.PaymentMethodTotal
		var method string
		if err := rows.Scan(&method, &row.ReceiptCount, &row.TotalAmount); err != nil {
			return nil, mapPgError(err, "error scanning payment method row")
		}
		row.PaymentMethod = domain.PaymentMethod(method)
		summary.ByPaymentMethod = append(summary.ByPaymentMethod, row)
	}
	if err := rows.Err(); err != nil {
		return nil, mapPgError(err, "error iterating payment method rows")
	}

	return &summary, nil
}

// GetCreditAgingData buckets positive receipt credit by days elapsed since the receipt date.
func (r *reportingRepository) GetCreditAgingData(ctx context.Context, asOf time.Time) ([]domain.CreditAgingRow, error) {
	query := `
		WITH aged AS (
			SELECT owner_id, credit_amount,
			       EXTRACT(DAY FROM ($1::timestamptz - date_time)) AS age_days
			FROM receipts
			WHERE is_active AND credit_amount > 0 AND date_time <= $1
		)
		SELECT
			o.owner_id,
			o.name,
			o.credit_limit,
			COALESCE(SUM(CASE WHEN a.age_days <= 30 THEN a.credit_amount END), 0),
			COALESCE(SUM(CASE WHEN a.age_days > 30 AND a.age_days <= 60 THEN a.credit_amount END), 0),
			COALESCE(SUM(CASE WHEN a.age_days > 60 AND a.age_days <= 90 THEN a.credit_amount END), 0),
			COALESCE(SUM(CASE WHEN a.age_days > 90 THEN a.credit_amount END), 0)
		FROM aged a
		JOIN truck_owners o ON o.owner_id = a.owner_id
		GROUP BY o.owner_id, o.name, o.credit_limit
		ORDER BY o.name`

	rows, err := r.Pool.Query(ctx, query, asOf)
	if err != nil {
		return nil, mapPgError(err, "error querying credit aging data")
	}
	defer rows.Close()

	var result []domain.CreditAgingRow
	for rows.Next() {
		var row domain.CreditAgingRow
		if err := rows.Scan(
			&row.OwnerID,
			&row.OwnerName,
			&row.CreditLimit,
			&row.Current,
			&row.Days31To60,
			&row.Days61To90,
			&row.Over90,
		); err != nil {
			return nil, mapPgError(err, "error scanning credit aging row")
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, mapPgError(err, "error iterating credit aging rows")
	}

	if len(result) == 0 {
		return []domain.CreditAgingRow{}, nil
	}
	return result, nil
}

// GetPartnerSummaryData groups receipts billed at the partner rate by owner.
func (r *reportingRepository) GetPartnerSummaryData(ctx context.Context, from, to time.Time) ([]domain.PartnerSummaryRow, error) {
	query := `
		SELECT
			owner_id,
			truck_owner,
			COUNT(*),
			COALESCE(SUM(brass_qty), 0),
			COALESCE(SUM(brass_qty * applied_rate), 0)
		FROM receipts
		WHERE is_active AND owner_type = 'partner' AND date_time >= $1 AND date_time < $2
		GROUP BY owner_id, truck_owner
		ORDER BY truck_owner`

	rows, err := r.Pool.Query(ctx, query, from, to)
	if err != nil {
		return nil, mapPgError(err, "error querying partner summary data")
	}
	defer rows.Close()

	var result []domain.PartnerSummaryRow
	for rows.Next() {
		var row domain.PartnerSummaryRow
		if err := rows.Scan(
			&row.OwnerID,
			&row.OwnerName,
			&row.ReceiptCount,
			&row.BrassQty,
			&row.MaterialBilled,
		); err != nil {
			return nil, mapPgError(err, "error scanning partner summary row")
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, mapPgError(err, "error iterating partner summary rows")
	}

	if len(result) == 0 {
		return []domain.PartnerSummaryRow{}, nil
	}
	return result, nil
}
