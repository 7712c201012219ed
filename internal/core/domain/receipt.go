package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentMethod is how a receipt was settled at the gate.
type PaymentMethod string

const (
	PaymentCash    PaymentMethod = "cash"
	PaymentCredit  PaymentMethod = "credit"
	PaymentDeposit PaymentMethod = "deposit"
)

// IsValid reports whether m is one of the known payment methods.
func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentCash, PaymentCredit, PaymentDeposit:
		return true
	}
	return false
}

// PaymentStatus summarises how much of a receipt has been paid.
type PaymentStatus string

const (
	StatusPaid    PaymentStatus = "paid"
	StatusPartial PaymentStatus = "partial"
	StatusUnpaid  PaymentStatus = "unpaid"
)

// IsValid reports whether s is one of the known payment statuses.
func (s PaymentStatus) IsValid() bool {
	switch s {
	case StatusPaid, StatusPartial, StatusUnpaid:
		return true
	}
	return false
}

// OwnerType is the rate category a receipt was billed under.
type OwnerType string

const (
	OwnerTypeRegular OwnerType = "regular"
	OwnerTypePartner OwnerType = "partner"
)

// Receipt is a single gate pass bill.
// CashPaid + DepositDeducted + CreditAmount always equals TotalAmount; a
// negative CreditAmount means the owner overpaid.
type Receipt struct {
	ReceiptID       string          `json:"receiptID"`
	ReceiptNo       string          `json:"receiptNo"`
	OwnerID         string          `json:"ownerID"`
	TruckOwner      string          `json:"truckOwner"`
	VehicleNumber   string          `json:"vehicleNumber"`
	BrassQty        decimal.Decimal `json:"brassQty"`
	Rate            decimal.Decimal `json:"rate"`
	AppliedRate     decimal.Decimal `json:"appliedRate"`
	LoadingCharge   decimal.Decimal `json:"loadingCharge"`
	TotalAmount     decimal.Decimal `json:"totalAmount"`
	CashPaid        decimal.Decimal `json:"cashPaid"`
	DepositDeducted decimal.Decimal `json:"depositDeducted"`
	CreditAmount    decimal.Decimal `json:"creditAmount"`
	PaymentStatus   PaymentStatus   `json:"paymentStatus"`
	PaymentMethod   PaymentMethod   `json:"paymentMethod"`
	OwnerType       OwnerType       `json:"ownerType"`
	DateTime        time.Time       `json:"dateTime"`
	Notes           string          `json:"notes"`
	IsActive        bool            `json:"isActive"`
	AuditFields
}

// SplitBalanced reports whether the cash/deposit/credit split adds up to the total.
func (r *Receipt) SplitBalanced() bool {
	return r.CashPaid.Add(r.DepositDeducted).Add(r.CreditAmount).Equal(r.TotalAmount)
}

// ReceiptFilter narrows receipt listings.
type ReceiptFilter struct {
	OwnerID string
	From    *time.Time
	To      *time.Time
	Status  *PaymentStatus
}
