package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreditPayment records a later settlement against a receipt's outstanding credit.
type CreditPayment struct {
	PaymentID      string          `json:"paymentID"`
	ReceiptID      string          `json:"receiptID"`
	ReceiptNo      string          `json:"receiptNo"`
	OwnerID        string          `json:"ownerID"`
	Amount         decimal.Decimal `json:"amount"`
	PreviousCredit decimal.Decimal `json:"previousCredit"`
	NewCredit      decimal.Decimal `json:"newCredit"`
	Notes          string          `json:"notes"`
	CreatedAt      time.Time       `json:"createdAt"`
	CreatedBy      string          `json:"createdBy"`
}
