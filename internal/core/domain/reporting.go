package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentMethodTotal aggregates receipts billed under one payment method.
type PaymentMethodTotal struct {
	PaymentMethod PaymentMethod   `json:"paymentMethod"`
	ReceiptCount  int             `json:"receiptCount"`
	TotalAmount   decimal.Decimal `json:"totalAmount"`
}

// FinancialSummary is the period totals report.
type FinancialSummary struct {
	From            time.Time            `json:"from"`
	To              time.Time            `json:"to"`
	ReceiptCount    int                  `json:"receiptCount"`
	BrassQty        decimal.Decimal      `json:"brassQty"`
	LoadingCharges  decimal.Decimal      `json:"loadingCharges"`
	TotalAmount     decimal.Decimal      `json:"totalAmount"`
	CashPaid        decimal.Decimal      `json:"cashPaid"`
	DepositDeducted decimal.Decimal      `json:"depositDeducted"`
	CreditAmount    decimal.Decimal      `json:"creditAmount"`
	ByPaymentMethod []PaymentMethodTotal `json:"byPaymentMethod"`
}

// CreditAgingRow is one owner's outstanding credit bucketed by receipt age.
type CreditAgingRow struct {
	OwnerID     string          `json:"ownerID"`
	OwnerName   string          `json:"ownerName"`
	CreditLimit decimal.Decimal `json:"creditLimit"`
	Current     decimal.Decimal `json:"current"`     // 0-30 days
	Days31To60  decimal.Decimal `json:"days31To60"`  // 31-60 days
	Days61To90  decimal.Decimal `json:"days61To90"`  // 61-90 days
	Over90      decimal.Decimal `json:"over90"`      // older than 90 days
	Outstanding decimal.Decimal `json:"outstanding"` // sum of buckets
	OverLimit   bool            `json:"overLimit"`
}

// PartnerSummaryRow compares what a partner was billed with the regular rate.
type PartnerSummaryRow struct {
	OwnerID          string          `json:"ownerID"`
	OwnerName        string          `json:"ownerName"`
	ReceiptCount     int             `json:"receiptCount"`
	BrassQty         decimal.Decimal `json:"brassQty"`
	MaterialBilled   decimal.Decimal `json:"materialBilled"`
	AtDefaultRate    decimal.Decimal `json:"atDefaultRate"`
	PartnerAdvantage decimal.Decimal `json:"partnerAdvantage"`
}
