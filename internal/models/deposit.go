package models

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

// DepositTransaction is a row of the append-only deposit_transactions table.
type DepositTransaction struct {
	TransactionID   string          `db:"transaction_id"`
	OwnerID         string          `db:"owner_id"`
	Type            string          `db:"txn_type"`
	Amount          decimal.Decimal `db:"amount"`
	PreviousBalance decimal.Decimal `db:"previous_balance"`
	NewBalance      decimal.Decimal `db:"new_balance"`
	ReceiptNo       sql.NullString  `db:"receipt_no"`
	Notes           string          `db:"notes"`
	CreatedAt       time.Time       `db:"created_at"`
	CreatedBy       string          `db:"created_by"`
}

// CreditPayment is a row of the credit_payments table.
type CreditPayment struct {
	PaymentID      string          `db:"payment_id"`
	ReceiptID      string          `db:"receipt_id"`
	ReceiptNo      string          `db:"receipt_no"`
	OwnerID        string          `db:"owner_id"`
	Amount         decimal.Decimal `db:"amount"`
	PreviousCredit decimal.Decimal `db:"previous_credit"`
	NewCredit      decimal.Decimal `db:"new_credit"`
	Notes          string          `db:"notes"`
	CreatedAt      time.Time       `db:"created_at"`
	CreatedBy      string          `db:"created_by"`
}
