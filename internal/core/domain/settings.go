package domain

import "github.com/shopspring/decimal"

// Well-known setting keys read by the billing engine.
const (
	SettingDefaultRate        = "default_rate"
	SettingDefaultPartnerRate = "default_partner_rate"
	SettingReceiptPrefix      = "receipt_prefix"
	SettingReceiptStart       = "receipt_start"

	SettingCategoryBilling = "billing"
)

// Setting is a single key/value configuration entry.
type Setting struct {
	Key      string `json:"key"`
	Value    string `json:"value"`
	Category string `json:"category"`
	AuditFields
}

// BillingSettings is the typed view of the billing category, fetched once per request.
type BillingSettings struct {
	DefaultRate        *decimal.Decimal
	DefaultPartnerRate *decimal.Decimal
	ReceiptPrefix      string
	ReceiptStart       int64
}
