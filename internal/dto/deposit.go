package dto

import (
	"github.com/SscSPs/quarry_billing_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// RecordDepositRequest adds money to or takes money from an owner's deposit.
type RecordDepositRequest struct {
	Type      domain.DepositTxnType `json:"type" binding:"required,oneof=add deduct"`
	Amount    decimal.Decimal       `json:"amount" binding:"dgt0"`
	ReceiptNo *string               `json:"receiptNo"`
	Notes     string                `json:"notes" binding:"max=500"`
}

// DepositHistoryResponse is an owner's ledger together with the stored balance.
type DepositHistoryResponse struct {
	Owner          string                      `json:"owner"`
	DepositBalance decimal.Decimal             `json:"depositBalance"`
	Transactions   []domain.DepositTransaction `json:"transactions"`
}
