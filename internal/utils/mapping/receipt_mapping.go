package mapping

import (
	"github.com/SscSPs/quarry_billing_app/internal/core/domain"
	"github.com/SscSPs/quarry_billing_app/internal/models"
)

// ToModelReceipt converts a domain Receipt to a model Receipt
func ToModelReceipt(d domain.Receipt) models.Receipt {
	return models.Receipt{
		ReceiptID:       d.ReceiptID,
		ReceiptNo:       d.ReceiptNo,
		OwnerID:         d.OwnerID,
		TruckOwner:      d.TruckOwner,
		VehicleNumber:   d.VehicleNumber,
		BrassQty:        d.BrassQty,
		Rate:            d.Rate,
		AppliedRate:     d.AppliedRate,
		LoadingCharge:   d.LoadingCharge,
		TotalAmount:     d.TotalAmount,
		CashPaid:        d.CashPaid,
		DepositDeducted: d.DepositDeducted,
		CreditAmount:    d.CreditAmount,
		PaymentStatus:   string(d.PaymentStatus),
		PaymentMethod:   string(d.PaymentMethod),
		OwnerType:       string(d.OwnerType),
		DateTime:        d.DateTime,
		Notes:           d.Notes,
		IsActive:        d.IsActive,
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainReceipt converts a model Receipt to a domain Receipt
func ToDomainReceipt(m models.Receipt) domain.Receipt {
	return domain.Receipt{
		ReceiptID:       m.ReceiptID,
		ReceiptNo:       m.ReceiptNo,
		OwnerID:         m.OwnerID,
		TruckOwner:      m.TruckOwner,
		VehicleNumber:   m.VehicleNumber,
		BrassQty:        m.BrassQty,
		Rate:            m.Rate,
		AppliedRate:     m.AppliedRate,
		LoadingCharge:   m.LoadingCharge,
		TotalAmount:     m.TotalAmount,
		CashPaid:        m.CashPaid,
		DepositDeducted: m.DepositDeducted,
		CreditAmount:    m.CreditAmount,
		PaymentStatus:   domain.PaymentStatus(m.PaymentStatus),
		PaymentMethod:   domain.PaymentMethod(m.PaymentMethod),
		OwnerType:       domain.OwnerType(m.OwnerType),
		DateTime:        m.DateTime,
		Notes:           m.Notes,
		IsActive:        m.IsActive,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainReceiptSlice converts a slice of model receipts
func ToDomainReceiptSlice(ms []models.Receipt) []domain.Receipt {
	out := make([]domain.Receipt, len(ms))
	for i, m := range ms {
		out[i] = ToDomainReceipt(m)
	}
	return out
}
