package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/quarry_billing_app/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// ReceiptReader defines read operations for receipts
type ReceiptReader interface {
	// FindReceiptByID retrieves an active receipt.
	FindReceiptByID(ctx context.Context, receiptID string) (*domain.Receipt, error)

	// ListReceipts retrieves active receipts newest first using token-based pagination.
	ListReceipts(ctx context.Context, filter domain.ReceiptFilter, limit int, nextToken *string) ([]domain.Receipt, *string, error)
}

// ReceiptNumbering defines the in-transaction operations used to issue receipt numbers.
type ReceiptNumbering interface {
	// LockReceiptNumbering serializes number issuing until tx ends.
	LockReceiptNumbering(ctx context.Context, tx pgx.Tx) error

	// FindHighestReceiptNumberInTx returns the largest trailing number across
	// every receipt ever issued, or nil when there are none.
	FindHighestReceiptNumberInTx(ctx context.Context, tx pgx.Tx) (*int64, error)

	// ReceiptNoExistsInTx reports whether a receipt number was already issued.
	ReceiptNoExistsInTx(ctx context.Context, tx pgx.Tx, receiptNo string) (bool, error)
}

// ReceiptWriter defines write operations for receipts
type ReceiptWriter interface {
	// SaveReceiptInTx inserts a receipt. A taken receipt number yields ErrConflict.
	SaveReceiptInTx(ctx context.Context, tx pgx.Tx, receipt domain.Receipt) error

	// FindReceiptByIDForUpdate selects an active receipt and locks it until tx ends.
	FindReceiptByIDForUpdate(ctx context.Context, tx pgx.Tx, receiptID string) (*domain.Receipt, error)

	// UpdateReceiptPaymentInTx stores cash paid, credit, status and notes.
	UpdateReceiptPaymentInTx(ctx context.Context, tx pgx.Tx, receipt domain.Receipt) error

	// DeactivateReceipt soft deletes a receipt.
	DeactivateReceipt(ctx context.Context, receiptID string, userID string, now time.Time) error
}

// ReceiptRepositoryFacade combines all receipt-related repository interfaces
type ReceiptRepositoryFacade interface {
	ReceiptReader
	ReceiptNumbering
	ReceiptWriter
}

// ReceiptRepositoryWithTx extends ReceiptRepositoryFacade with transaction capabilities
type ReceiptRepositoryWithTx interface {
	ReceiptRepositoryFacade
	TransactionManager
}
