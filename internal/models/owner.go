package models

import (
	"database/sql"

	"github.com/shopspring/decimal"
)

// TruckOwner is a row of the truck_owners table.
type TruckOwner struct {
	OwnerID           string              `db:"owner_id"`
	Name              string              `db:"name"`
	IsPartner         bool                `db:"is_partner"`
	PartnerRate       decimal.NullDecimal `db:"partner_rate"`
	DepositBalance    decimal.Decimal     `db:"deposit_balance"`
	CreditLimit       decimal.Decimal     `db:"credit_limit"`
	VehicleNumber     sql.NullString      `db:"vehicle_number"`
	LastPaymentMethod sql.NullString      `db:"last_payment_method"`
	IsActive          bool                `db:"is_active"`
	AuditFields
}
