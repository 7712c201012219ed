package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Receipt is a row of the receipts table.
type Receipt struct {
	ReceiptID       string          `db:"receipt_id"`
	ReceiptNo       string          `db:"receipt_no"`
	OwnerID         string          `db:"owner_id"`
	TruckOwner      string          `db:"truck_owner"` // owner name copied at issue time
	VehicleNumber   string          `db:"vehicle_number"`
	BrassQty        decimal.Decimal `db:"brass_qty"`
	Rate            decimal.Decimal `db:"rate"`
	AppliedRate     decimal.Decimal `db:"applied_rate"`
	LoadingCharge   decimal.Decimal `db:"loading_charge"`
	TotalAmount     decimal.Decimal `db:"total_amount"`
	CashPaid        decimal.Decimal `db:"cash_paid"`
	DepositDeducted decimal.Decimal `db:"deposit_deducted"`
	CreditAmount    decimal.Decimal `db:"credit_amount"`
	PaymentStatus   string          `db:"payment_status"`
	PaymentMethod   string          `db:"payment_method"`
	OwnerType       string          `db:"owner_type"`
	DateTime        time.Time       `db:"date_time"`
	Notes           string          `db:"notes"`
	IsActive        bool            `db:"is_active"`
	AuditFields
}
