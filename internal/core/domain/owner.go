package domain

import "github.com/shopspring/decimal"

// TruckOwner is a customer of the quarry. Name is the natural key used by
// every caller; OwnerID is an internal surrogate for foreign keys.
type TruckOwner struct {
	OwnerID           string           `json:"ownerID"`
	Name              string           `json:"name"`
	IsPartner         bool             `json:"isPartner"`
	PartnerRate       *decimal.Decimal `json:"partnerRate,omitempty"`
	DepositBalance    decimal.Decimal  `json:"depositBalance"` // never negative
	CreditLimit       decimal.Decimal  `json:"creditLimit"`
	VehicleNumber     *string          `json:"vehicleNumber,omitempty"`
	LastPaymentMethod *PaymentMethod   `json:"lastPaymentMethod,omitempty"`
	IsActive          bool             `json:"isActive"`
	AuditFields
}

// OwnerType returns the billing category implied by the partner flag.
func (o *TruckOwner) OwnerType() OwnerType {
	if o != nil && o.IsPartner {
		return OwnerTypePartner
	}
	return OwnerTypeRegular
}
