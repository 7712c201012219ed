package services

import (
	"github.com/SscSPs/quarry_billing_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// LedgerMetrics receives ledger events for instrumentation.
type LedgerMetrics interface {
	ReceiptCreated(method domain.PaymentMethod, ownerType domain.OwnerType)
	DepositMoved(txnType domain.DepositTxnType, amount decimal.Decimal)
	ConflictRetried(operation string)
}
