package services

import (
	"context"

	"github.com/SscSPs/quarry_billing_app/internal/core/domain"
	"github.com/SscSPs/quarry_billing_app/internal/dto"
)

// CreditPaymentSvcFacade defines settlement of outstanding receipt credit
type CreditPaymentSvcFacade interface {
	// RecordCreditPayment reduces a receipt's outstanding credit and logs the payment.
	RecordCreditPayment(ctx context.Context, receiptID string, req dto.RecordCreditPaymentRequest, userID string) (*domain.CreditPayment, error)

	// ListCreditPayments returns a receipt's payments, oldest first.
	ListCreditPayments(ctx context.Context, receiptID string) ([]domain.CreditPayment, error)
}
