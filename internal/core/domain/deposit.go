package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// DepositTxnType is the direction of a deposit ledger entry.
type DepositTxnType string

const (
	DepositAdd    DepositTxnType = "add"
	DepositDeduct DepositTxnType = "deduct"
)

// DepositTransaction is an append-only entry in an owner's deposit ledger.
// The owner's current balance equals NewBalance of the latest entry.
type DepositTransaction struct {
	TransactionID   string          `json:"transactionID"`
	OwnerID         string          `json:"ownerID"`
	Type            DepositTxnType  `json:"type"`
	Amount          decimal.Decimal `json:"amount"`
	PreviousBalance decimal.Decimal `json:"previousBalance"`
	NewBalance      decimal.Decimal `json:"newBalance"`
	ReceiptNo       *string         `json:"receiptNo,omitempty"`
	Notes           string          `json:"notes"`
	CreatedAt       time.Time       `json:"createdAt"`
	CreatedBy       string          `json:"createdBy"`
}

// Validate checks the balance transition recorded by the entry.
func (t DepositTransaction) Validate() error {
	if !t.Amount.IsPositive() {
		return fmt.Errorf("deposit transaction amount must be positive, got %s", t.Amount)
	}
	var want decimal.Decimal
	switch t.Type {
	case DepositAdd:
		want = t.PreviousBalance.Add(t.Amount)
	case DepositDeduct:
		want = t.PreviousBalance.Sub(t.Amount)
	default:
		return fmt.Errorf("unknown deposit transaction type '%s'", t.Type)
	}
	if !t.NewBalance.Equal(want) {
		return fmt.Errorf("new balance %s does not follow from previous balance %s and %s of %s",
			t.NewBalance, t.PreviousBalance, t.Type, t.Amount)
	}
	if t.NewBalance.IsNegative() {
		return fmt.Errorf("new balance must not be negative, got %s", t.NewBalance)
	}
	return nil
}

// DepositBalanceCheck is the result of replaying an owner's deposit ledger.
type DepositBalanceCheck struct {
	OwnerID         string          `json:"ownerID"`
	StoredBalance   decimal.Decimal `json:"storedBalance"`
	ReplayedBalance decimal.Decimal `json:"replayedBalance"`
	EntryCount      int             `json:"entryCount"`
	Consistent      bool            `json:"consistent"`
}
