package services

import (
	"context"
	"fmt"
	"time"

	"github.com/SscSPs/quarry_billing_app/internal/apperrors"
	"github.com/SscSPs/quarry_billing_app/internal/core/domain"
	portsrepo "github.com/SscSPs/quarry_billing_app/internal/core/ports/repositories"
	"github.com/SscSPs/quarry_billing_app/internal/utils/billing"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// depositLedger moves an owner's deposit balance and appends the matching
// ledger entry. Callers must hold the owner's row lock in tx; the owner
// passed in is the locked row and is updated in place.
type depositLedger struct {
	owners  portsrepo.OwnerTransactionSupport
	entries portsrepo.DepositLedgerWriter
}

// depositMove describes one balance change.
type depositMove struct {
	Type      domain.DepositTxnType
	Amount    decimal.Decimal
	ReceiptNo *string
	Notes     string
	UserID    string
	At        time.Time
}

// add credits the full amount.
func (l depositLedger) add(ctx context.Context, tx pgx.Tx, owner *domain.TruckOwner, move depositMove) (*domain.DepositTransaction, error) {
	if !move.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: deposit amount must be positive", apperrors.ErrValidation)
	}
	move.Type = domain.DepositAdd
	return l.apply(ctx, tx, owner, move)
}

// deduct takes min(requested, balance, billCap). A non-positive billCap means
// the deduction is bounded by the balance only. Nothing is written and a nil
// entry is returned when the bounded amount is zero.
func (l depositLedger) deduct(ctx context.Context, tx pgx.Tx, owner *domain.TruckOwner, move depositMove, billCap decimal.Decimal) (*domain.DepositTransaction, error) {
	if !move.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: deduction must be positive", apperrors.ErrValidation)
	}
	actual := billing.CapDeduction(move.Amount, owner.DepositBalance, billCap)
	if actual.IsZero() {
		return nil, nil
	}
	move.Type = domain.DepositDeduct
	move.Amount = actual
	return l.apply(ctx, tx, owner, move)
}

func (l depositLedger) apply(ctx context.Context, tx pgx.Tx, owner *domain.TruckOwner, move depositMove) (*domain.DepositTransaction, error) {
	if err := billing.CheckMoney("deposit amount", move.Amount); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}
	previous := owner.DepositBalance
	next := previous.Add(move.Amount)
	if move.Type == domain.DepositDeduct {
		next = previous.Sub(move.Amount)
	}

	entry := domain.DepositTransaction{
		TransactionID:   uuid.NewString(),
		OwnerID:         owner.OwnerID,
		Type:            move.Type,
		Amount:          move.Amount,
		PreviousBalance: previous,
		NewBalance:      next,
		ReceiptNo:       move.ReceiptNo,
		Notes:           move.Notes,
		CreatedAt:       move.At,
		CreatedBy:       move.UserID,
	}
	if err := entry.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}

	if err := l.owners.UpdateDepositBalanceInTx(ctx, tx, owner.OwnerID, next, move.UserID, move.At); err != nil {
		return nil, fmt.Errorf("failed to update deposit balance: %w", err)
	}
	if err := l.entries.AppendDepositTransactionInTx(ctx, tx, entry); err != nil {
		return nil, fmt.Errorf("failed to append deposit transaction: %w", err)
	}

	owner.DepositBalance = next
	owner.LastUpdatedAt = move.At
	owner.LastUpdatedBy = move.UserID
	return &entry, nil
}
