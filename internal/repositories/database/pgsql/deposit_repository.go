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

// PgxDepositLedgerRepository reads and appends deposit_transactions rows.
// The table has no update or delete path.
type PgxDepositLedgerRepository struct {
	BaseRepository
}

func newPgxDepositLedgerRepository(pool *pgxpool.Pool) portsrepo.DepositLedgerRepository {
	return &PgxDepositLedgerRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.DepositLedgerRepository = (*PgxDepositLedgerRepository)(nil)

func (r *PgxDepositLedgerRepository) ListDepositTransactions(ctx context.Context, ownerID string) ([]domain.DepositTransaction, error) {
	query := `
		SELECT transaction_id, owner_id, txn_type, amount, previous_balance, new_balance,
		       receipt_no, notes, created_at, created_by
		FROM deposit_transactions
		WHERE owner_id = $1
		ORDER BY seq;`

	rows, err := r.Pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, mapPgError(err, "failed to list deposit transactions for owner "+ownerID)
	}
	defer rows.Close()

	var entries []domain.DepositTransaction
	for rows.Next() {
		var m models.DepositTransaction
		if err := rows.Scan(
			&m.TransactionID,
			&m.OwnerID,
			&m.Type,
			&m.Amount,
			&m.PreviousBalance,
			&m.NewBalance,
			&m.ReceiptNo,
			&m.Notes,
			&m.CreatedAt,
			&m.CreatedBy,
		); err != nil {
			return nil, mapPgError(err, "failed to scan deposit transaction row")
		}
		entries = append(entries, mapping.ToDomainDepositTransaction(m))
	}
	if err := rows.Err(); err != nil {
		return nil, mapPgError(err, "error iterating deposit transaction rows")
	}
	return entries, nil
}

func (r *PgxDepositLedgerRepository) AppendDepositTransactionInTx(ctx context.Context, tx pgx.Tx, txn domain.DepositTransaction) error {
	m := mapping.ToModelDepositTransaction(txn)
	query := `
		INSERT INTO deposit_transactions (transaction_id, owner_id, txn_type, amount, previous_balance,
		                                  new_balance, receipt_no, notes, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);`

	_, err := tx.Exec(ctx, query,
		m.TransactionID, m.OwnerID, m.Type, m.Amount, m.PreviousBalance,
		m.NewBalance, m.ReceiptNo, m.Notes, m.CreatedAt, m.CreatedBy,
	)
	if err != nil {
		return mapPgError(err, "failed to append deposit transaction for owner "+m.OwnerID)
	}
	return nil
}
