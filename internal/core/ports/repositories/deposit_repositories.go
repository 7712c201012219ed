package repositories

import (
	"context"

	"github.com/SscSPs/quarry_billing_app/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// DepositLedgerReader defines read operations for the deposit ledger
type DepositLedgerReader interface {
	// ListDepositTransactions returns an owner's ledger oldest first.
	ListDepositTransactions(ctx context.Context, ownerID string) ([]domain.DepositTransaction, error)
}

// DepositLedgerWriter appends to the deposit ledger. There is intentionally no
// update or delete.
type DepositLedgerWriter interface {
	// AppendDepositTransactionInTx inserts a ledger entry inside tx.
	AppendDepositTransactionInTx(ctx context.Context, tx pgx.Tx, txn domain.DepositTransaction) error
}

// DepositLedgerRepository combines deposit ledger interfaces
type DepositLedgerRepository interface {
	DepositLedgerReader
	DepositLedgerWriter
}
