package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SscSPs/quarry_billing_app/internal/apperrors"
	"github.com/SscSPs/quarry_billing_app/internal/core/domain"
	portsrepo "github.com/SscSPs/quarry_billing_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/quarry_billing_app/internal/core/ports/services"
	"github.com/SscSPs/quarry_billing_app/internal/dto"
	"github.com/SscSPs/quarry_billing_app/internal/utils/billing"
	"github.com/shopspring/decimal"
)

// depositService handles explicit deposit additions and deductions and
// audits the deposit ledger.
type depositService struct {
	BaseService
	ownerRepo   portsrepo.OwnerRepositoryWithTx
	depositRepo portsrepo.DepositLedgerRepository
	ledger      depositLedger
}

// NewDepositService creates a new deposit ledger service.
func NewDepositService(ownerRepo portsrepo.OwnerRepositoryWithTx, depositRepo portsrepo.DepositLedgerRepository, options ...ServiceOption) portssvc.DepositSvcFacade {
	return &depositService{
		BaseService: newBaseService(options...),
		ownerRepo:   ownerRepo,
		depositRepo: depositRepo,
		ledger:      depositLedger{owners: ownerRepo, entries: depositRepo},
	}
}

var _ portssvc.DepositSvcFacade = (*depositService)(nil)

// RecordDepositTransaction applies an add or deduct under the owner's row
// lock. A deduct is bounded by the current balance; an empty balance is a
// validation failure.
func (s *depositService) RecordDepositTransaction(ctx context.Context, ownerName string, req dto.RecordDepositRequest, userID string) (*domain.DepositTransaction, error) {
	name := normalizeOwnerName(ownerName)
	if name == "" {
		return nil, fmt.Errorf("%w: owner name is required", apperrors.ErrValidation)
	}
	if req.Type != domain.DepositAdd && req.Type != domain.DepositDeduct {
		return nil, fmt.Errorf("%w: unknown deposit transaction type '%s'", apperrors.ErrValidation, req.Type)
	}
	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: amount must be positive", apperrors.ErrValidation)
	}
	if err := billing.CheckMoney("amount", req.Amount); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}

	entry, err := s.recordOnce(ctx, name, req, userID)
	if errors.Is(err, apperrors.ErrConflict) {
		s.Metrics().ConflictRetried("record_deposit")
		s.LogWarn(ctx, "Deposit transaction conflicted, retrying", slog.String("owner", name))
		entry, err = s.recordOnce(ctx, name, req, userID)
	}
	if err != nil {
		return nil, err
	}

	s.Metrics().DepositMoved(entry.Type, entry.Amount)
	s.LogInfo(ctx, "Deposit transaction recorded",
		slog.String("owner_id", entry.OwnerID),
		slog.String("type", string(entry.Type)),
		slog.String("amount", entry.Amount.String()),
		slog.String("new_balance", entry.NewBalance.String()))
	return entry, nil
}

func (s *depositService) recordOnce(ctx context.Context, name string, req dto.RecordDepositRequest, userID string) (*domain.DepositTransaction, error) {
	tx, err := s.ownerRepo.Begin(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to begin deposit transaction")
		return nil, err
	}
	defer s.ownerRepo.Rollback(ctx, tx)

	owner, err := s.ownerRepo.FindOwnerByNameForUpdate(ctx, tx, name)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: truck owner %q does not exist", apperrors.ErrValidation, name)
		}
		s.LogError(ctx, err, "Failed to lock owner", slog.String("owner", name))
		return nil, err
	}
	if !owner.IsActive {
		return nil, fmt.Errorf("%w: truck owner %q is inactive", apperrors.ErrValidation, name)
	}

	move := depositMove{
		Amount:    req.Amount,
		ReceiptNo: trimmedOrNil(req.ReceiptNo),
		Notes:     strings.TrimSpace(req.Notes),
		UserID:    userID,
		At:        s.Now(),
	}

	var entry *domain.DepositTransaction
	if req.Type == domain.DepositAdd {
		entry, err = s.ledger.add(ctx, tx, owner, move)
	} else {
		entry, err = s.ledger.deduct(ctx, tx, owner, move, decimal.Zero)
		if err == nil && entry == nil {
			return nil, fmt.Errorf("%w: truck owner %q has no deposit balance", apperrors.ErrValidation, name)
		}
	}
	if err != nil {
		if !errors.Is(err, apperrors.ErrValidation) {
			s.LogError(ctx, err, "Failed to apply deposit transaction", slog.String("owner_id", owner.OwnerID))
		}
		return nil, err
	}

	if err := s.ownerRepo.Commit(ctx, tx); err != nil {
		s.LogError(ctx, err, "Failed to commit deposit transaction", slog.String("owner_id", owner.OwnerID))
		return nil, err
	}
	return entry, nil
}

func (s *depositService) ListDepositTransactions(ctx context.Context, ownerName string) (*domain.TruckOwner, []domain.DepositTransaction, error) {
	owner, err := s.findOwner(ctx, ownerName)
	if err != nil {
		return nil, nil, err
	}
	entries, err := s.depositRepo.ListDepositTransactions(ctx, owner.OwnerID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list deposit transactions", slog.String("owner_id", owner.OwnerID))
		return nil, nil, err
	}
	if entries == nil {
		entries = []domain.DepositTransaction{}
	}
	return owner, entries, nil
}

// VerifyDepositBalance replays the ledger from zero. The chain is consistent
// when every entry starts where the previous one ended and the final balance
// matches the stored one.
func (s *depositService) VerifyDepositBalance(ctx context.Context, ownerName string) (*domain.DepositBalanceCheck, error) {
	owner, entries, err := s.ListDepositTransactions(ctx, ownerName)
	if err != nil {
		return nil, err
	}

	replayed, chained := ReplayDepositLedger(entries)
	check := &domain.DepositBalanceCheck{
		OwnerID:         owner.OwnerID,
		StoredBalance:   owner.DepositBalance,
		ReplayedBalance: replayed,
		EntryCount:      len(entries),
		Consistent:      chained && replayed.Equal(owner.DepositBalance),
	}
	if !check.Consistent {
		s.LogWarn(ctx, "Deposit ledger does not reconstruct stored balance",
			slog.String("owner_id", owner.OwnerID),
			slog.String("stored", owner.DepositBalance.String()),
			slog.String("replayed", replayed.String()))
	}
	return check, nil
}

// ReplayDepositLedger folds ledger entries (oldest first) into a balance and
// reports whether each entry continued from the previous one.
func ReplayDepositLedger(entries []domain.DepositTransaction) (decimal.Decimal, bool) {
	balance := decimal.Zero
	chained := true
	for _, entry := range entries {
		if !entry.PreviousBalance.Equal(balance) || entry.Validate() != nil {
			chained = false
		}
		balance = entry.NewBalance
	}
	return balance, chained
}

func (s *depositService) findOwner(ctx context.Context, ownerName string) (*domain.TruckOwner, error) {
	name := normalizeOwnerName(ownerName)
	if name == "" {
		return nil, fmt.Errorf("%w: owner name is required", apperrors.ErrValidation)
	}
	owner, err := s.ownerRepo.FindOwnerByName(ctx, name)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find owner", slog.String("owner", name))
		}
		return nil, err
	}
	return owner, nil
}
