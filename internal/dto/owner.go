package dto

import (
	"time"

	"github.com/SscSPs/quarry_billing_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateOwnerRequest defines the data needed to register a truck owner up front.
type CreateOwnerRequest struct {
	Name          string           `json:"name" binding:"required,max=200"`
	IsPartner     bool             `json:"isPartner"`
	PartnerRate   *decimal.Decimal `json:"partnerRate" binding:"omitempty,dgt0"`
	CreditLimit   *decimal.Decimal `json:"creditLimit" binding:"omitempty,dgte0"`
	VehicleNumber *string          `json:"vehicleNumber"`
}

// UpdateOwnerRequest defines the owner fields staff may change.
// The deposit balance is not among them; it only moves through deposit transactions.
type UpdateOwnerRequest struct {
	IsPartner     *bool            `json:"isPartner"`
	PartnerRate   *decimal.Decimal `json:"partnerRate" binding:"omitempty,dgt0"`
	CreditLimit   *decimal.Decimal `json:"creditLimit" binding:"omitempty,dgte0"`
	VehicleNumber *string          `json:"vehicleNumber"`
	IsActive      *bool            `json:"isActive"`
}

// OwnerResponse defines the data returned for a truck owner.
type OwnerResponse struct {
	Name              string                `json:"name"`
	IsPartner         bool                  `json:"isPartner"`
	PartnerRate       *decimal.Decimal      `json:"partnerRate,omitempty"`
	DepositBalance    decimal.Decimal       `json:"depositBalance"`
	CreditLimit       decimal.Decimal       `json:"creditLimit"`
	VehicleNumber     *string               `json:"vehicleNumber,omitempty"`
	LastPaymentMethod *domain.PaymentMethod `json:"lastPaymentMethod,omitempty"`
	IsActive          bool                  `json:"isActive"`
	CreatedAt         time.Time             `json:"createdAt"`
	LastUpdatedAt     time.Time             `json:"lastUpdatedAt"`
}

// ToOwnerResponse converts a domain.TruckOwner to OwnerResponse DTO
func ToOwnerResponse(o *domain.TruckOwner) OwnerResponse {
	return OwnerResponse{
		Name:              o.Name,
		IsPartner:         o.IsPartner,
		PartnerRate:       o.PartnerRate,
		DepositBalance:    o.DepositBalance,
		CreditLimit:       o.CreditLimit,
		VehicleNumber:     o.VehicleNumber,
		LastPaymentMethod: o.LastPaymentMethod,
		IsActive:          o.IsActive,
		CreatedAt:         o.CreatedAt,
		LastUpdatedAt:     o.LastUpdatedAt,
	}
}

// ToListOwnerResponse converts a slice of owners.
func ToListOwnerResponse(owners []domain.TruckOwner) []OwnerResponse {
	res := make([]OwnerResponse, len(owners))
	for i := range owners {
		res[i] = ToOwnerResponse(&owners[i])
	}
	return res
}

// ListOwnersParams defines query parameters for listing owners.
type ListOwnersParams struct {
	IncludeInactive bool `form:"includeInactive"`
	Limit           int  `form:"limit,default=50" binding:"min=1,max=500"`
	Offset          int  `form:"offset,default=0" binding:"min=0"`
}
