package mapping

import (
	"github.com/SscSPs/quarry_billing_app/internal/core/domain"
	"github.com/SscSPs/quarry_billing_app/internal/models"
)

// ToModelDepositTransaction converts a domain DepositTransaction to a model DepositTransaction
func ToModelDepositTransaction(d domain.DepositTransaction) models.DepositTransaction {
	return models.DepositTransaction{
		TransactionID:   d.TransactionID,
		OwnerID:         d.OwnerID,
		Type:            string(d.Type),
		Amount:          d.Amount,
		PreviousBalance: d.PreviousBalance,
		NewBalance:      d.NewBalance,
		ReceiptNo:       toNullString(d.ReceiptNo),
		Notes:           d.Notes,
		CreatedAt:       d.CreatedAt,
		CreatedBy:       d.CreatedBy,
	}
}

// ToDomainDepositTransaction converts a model DepositTransaction to a domain DepositTransaction
func ToDomainDepositTransaction(m models.DepositTransaction) domain.DepositTransaction {
	return domain.DepositTransaction{
		TransactionID:   m.TransactionID,
		OwnerID:         m.OwnerID,
		Type:            domain.DepositTxnType(m.Type),
		Amount:          m.Amount,
		PreviousBalance: m.PreviousBalance,
		NewBalance:      m.NewBalance,
		ReceiptNo:       fromNullString(m.ReceiptNo),
		Notes:           m.Notes,
		CreatedAt:       m.CreatedAt,
		CreatedBy:       m.CreatedBy,
	}
}

// ToModelCreditPayment converts a domain CreditPayment to a model CreditPayment
func ToModelCreditPayment(d domain.CreditPayment) models.CreditPayment {
	return models.CreditPayment{
		PaymentID:      d.PaymentID,
		ReceiptID:      d.ReceiptID,
		ReceiptNo:      d.ReceiptNo,
		OwnerID:        d.OwnerID,
		Amount:         d.Amount,
		PreviousCredit: d.PreviousCredit,
		NewCredit:      d.NewCredit,
		Notes:          d.Notes,
		CreatedAt:      d.CreatedAt,
		CreatedBy:      d.CreatedBy,
	}
}

// ToDomainCreditPayment converts a model CreditPayment to a domain CreditPayment
func ToDomainCreditPayment(m models.CreditPayment) domain.CreditPayment {
	return domain.CreditPayment{
		PaymentID:      m.PaymentID,
		ReceiptID:      m.ReceiptID,
		ReceiptNo:      m.ReceiptNo,
		OwnerID:        m.OwnerID,
		Amount:         m.Amount,
		PreviousCredit: m.PreviousCredit,
		NewCredit:      m.NewCredit,
		Notes:          m.Notes,
		CreatedAt:      m.CreatedAt,
		CreatedBy:      m.CreatedBy,
	}
}

// ToModelSetting converts a domain Setting to a model Setting
func ToModelSetting(d domain.Setting) models.Setting {
	return models.Setting{
		Key:         d.Key,
		Value:       d.Value,
		Category:    d.Category,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainSetting converts a model Setting to a domain Setting
func ToDomainSetting(m models.Setting) domain.Setting {
	return domain.Setting{
		Key:         m.Key,
		Value:       m.Value,
		Category:    m.Category,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}
