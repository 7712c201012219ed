package services

import (
	"context"

	"github.com/SscSPs/quarry_billing_app/internal/core/domain"
	"github.com/SscSPs/quarry_billing_app/internal/dto"
)

// DepositSvcFacade defines the deposit ledger operations
type DepositSvcFacade interface {
	// RecordDepositTransaction adds to or deducts from an owner's deposit and
	// appends the matching ledger entry.
	RecordDepositTransaction(ctx context.Context, ownerName string, req dto.RecordDepositRequest, userID string) (*domain.DepositTransaction, error)

	// ListDepositTransactions returns the owner and its ledger, oldest first.
	ListDepositTransactions(ctx context.Context, ownerName string) (*domain.TruckOwner, []domain.DepositTransaction, error)

	// VerifyDepositBalance replays the ledger and compares it with the stored balance.
	VerifyDepositBalance(ctx context.Context, ownerName string) (*domain.DepositBalanceCheck, error)
}
