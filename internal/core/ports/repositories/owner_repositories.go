package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/quarry_billing_app/internal/core/domain"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// OwnerReader defines read operations for truck owner data
type OwnerReader interface {
	// FindOwnerByName retrieves an owner by its unique name, active or not.
	FindOwnerByName(ctx context.Context, name string) (*domain.TruckOwner, error)

	// FindOwnerByID retrieves an owner by its internal ID.
	FindOwnerByID(ctx context.Context, ownerID string) (*domain.TruckOwner, error)

	// ListOwners retrieves a page of owners ordered by name.
	ListOwners(ctx context.Context, includeInactive bool, limit int, offset int) ([]domain.TruckOwner, error)
}

// OwnerWriter defines write operations for truck owner data
type OwnerWriter interface {
	// SaveOwner persists a new owner. Returns ErrDuplicate when the name is taken.
	SaveOwner(ctx context.Context, owner domain.TruckOwner) error

	// UpdateOwner updates the descriptive fields of an owner (not the balance).
	UpdateOwner(ctx context.Context, owner domain.TruckOwner) error

	// DeactivateOwner marks an owner as inactive.
	DeactivateOwner(ctx context.Context, ownerID string, userID string, now time.Time) error
}

// OwnerTransactionSupport defines the locked, in-transaction operations the
// ledger engine needs.
type OwnerTransactionSupport interface {
	// FindOwnerByNameForUpdate selects the owner row and locks it until tx ends.
	FindOwnerByNameForUpdate(ctx context.Context, tx pgx.Tx, name string) (*domain.TruckOwner, error)

	// FindOwnerByIDForUpdate selects the owner row by ID and locks it until tx ends.
	FindOwnerByIDForUpdate(ctx context.Context, tx pgx.Tx, ownerID string) (*domain.TruckOwner, error)

	// InsertOwnerIfAbsentInTx inserts the owner unless the name already exists.
	InsertOwnerIfAbsentInTx(ctx context.Context, tx pgx.Tx, owner domain.TruckOwner) error

	// UpdateDepositBalanceInTx overwrites the stored deposit balance.
	UpdateDepositBalanceInTx(ctx context.Context, tx pgx.Tx, ownerID string, newBalance decimal.Decimal, userID string, now time.Time) error

	// RecordReceiptActivityInTx stores the payment-type summary left by a receipt.
	RecordReceiptActivityInTx(ctx context.Context, tx pgx.Tx, ownerID string, method domain.PaymentMethod, vehicleNumber string, userID string, now time.Time) error
}

// OwnerRepositoryFacade combines all owner-related repository interfaces
type OwnerRepositoryFacade interface {
	OwnerReader
	OwnerWriter
	OwnerTransactionSupport
}

// OwnerRepositoryWithTx extends OwnerRepositoryFacade with transaction capabilities
type OwnerRepositoryWithTx interface {
	OwnerRepositoryFacade
	TransactionManager
}
