package dto

import "github.com/shopspring/decimal"

// RecordCreditPaymentRequest settles part or all of a receipt's outstanding credit.
type RecordCreditPaymentRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"dgt0"`
	Notes  string          `json:"notes" binding:"max=500"`
}
