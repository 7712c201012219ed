package pgsql

import (
	"context"

	"github.com/SscSPs/quarry_billing_app/internal/core/domain"
	portsrepo "github.com/SscSPs/quarry_billing_app/internal/core/ports/repositories"
	"github.com/SscSPs/quarry_billing_app/internal/models"
	"github.com/SscSPs/quarry_billing_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxCreditPaymentRepository struct {
	BaseRepository
}

func newPgxCreditPaymentRepository(pool *pgxpool.Pool) portsrepo.CreditPaymentRepository {
	return &PgxCreditPaymentRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.CreditPaymentRepository = (*PgxCreditPaymentRepository)(nil)

func (r *PgxCreditPaymentRepository) AppendCreditPaymentInTx(ctx context.Context, tx pgx.Tx, payment domain.CreditPayment) error {
	m := mapping.ToModelCreditPayment(payment)
	query := `
		INSERT INTO credit_payments (payment_id, receipt_id, receipt_no, owner_id, amount,
		                             previous_credit, new_credit, notes, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);`

	_, err := tx.Exec(ctx, query,
		m.PaymentID, m.ReceiptID, m.ReceiptNo, m.OwnerID, m.Amount,
		m.PreviousCredit, m.NewCredit, m.Notes, m.CreatedAt, m.CreatedBy,
	)
	if err != nil {
		return mapPgError(err, "failed to append credit payment for receipt "+m.ReceiptID)
	}
	return nil
}

func (r *PgxCreditPaymentRepository) ListCreditPaymentsByReceipt(ctx context.Context, receiptID string) ([]domain.CreditPayment, error) {
	query := `
		SELECT payment_id, receipt_id, receipt_no, owner_id, amount, previous_credit, new_credit,
		       notes, created_at, created_by
		FROM credit_payments
		WHERE receipt_id = $1
		ORDER BY seq;`

	rows, err := r.Pool.Query(ctx, query, receiptID)
	if err != nil {
		return nil, mapPgError(err, "failed to list credit payments for receipt "+receiptID)
	}
	defer rows.Close()

	var payments []domain.CreditPayment
	for rows.Next() {
		var m models.CreditPayment
		if err := rows.Scan(
			&m.PaymentID,
			&m.ReceiptID,
			&m.ReceiptNo,
			&m.OwnerID,
			&m.Amount,
			&m.PreviousCredit,
			&m.NewCredit,
			&m.Notes,
			&m.CreatedAt,
			&m.CreatedBy,
		); err != nil {
			return nil, mapPgError(err, "failed to scan credit payment row")
		}
		payments = append(payments, mapping.ToDomainCreditPayment(m))
	}
	if err := rows.Err(); err != nil {
		return nil, mapPgError(err, "error iterating credit payment rows")
	}
	return payments, nil
}
