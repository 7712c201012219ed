package mapping

import (
	"database/sql"

	"github.com/SscSPs/quarry_billing_app/internal/core/domain"
	"github.com/SscSPs/quarry_billing_app/internal/models"
	"github.com/shopspring/decimal"
)

// ToModelOwner converts a domain TruckOwner to a model TruckOwner
func ToModelOwner(d domain.TruckOwner) models.TruckOwner {
	m := models.TruckOwner{
		OwnerID:        d.OwnerID,
		Name:           d.Name,
		IsPartner:      d.IsPartner,
		DepositBalance: d.DepositBalance,
		CreditLimit:    d.CreditLimit,
		VehicleNumber:  toNullString(d.VehicleNumber),
		IsActive:       d.IsActive,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
	if d.PartnerRate != nil {
		m.PartnerRate = decimal.NewNullDecimal(*d.PartnerRate)
	}
	if d.LastPaymentMethod != nil {
		m.LastPaymentMethod = sql.NullString{String: string(*d.LastPaymentMethod), Valid: true}
	}
	return m
}

// ToDomainOwner converts a model TruckOwner to a domain TruckOwner
func ToDomainOwner(m models.TruckOwner) domain.TruckOwner {
	d := domain.TruckOwner{
		OwnerID:        m.OwnerID,
		Name:           m.Name,
		IsPartner:      m.IsPartner,
		DepositBalance: m.DepositBalance,
		CreditLimit:    m.CreditLimit,
		VehicleNumber:  fromNullString(m.VehicleNumber),
		IsActive:       m.IsActive,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
	if m.PartnerRate.Valid {
		rate := m.PartnerRate.Decimal
		d.PartnerRate = &rate
	}
	if m.LastPaymentMethod.Valid {
		method := domain.PaymentMethod(m.LastPaymentMethod.String)
		d.LastPaymentMethod = &method
	}
	return d
}

// ToDomainOwnerSlice converts a slice of model owners
func ToDomainOwnerSlice(ms []models.TruckOwner) []domain.TruckOwner {
	out := make([]domain.TruckOwner, len(ms))
	for i, m := range ms {
		out[i] = ToDomainOwner(m)
	}
	return out
}

func toNullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func fromNullString(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}
