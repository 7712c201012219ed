package services

import (
	"context"

	"github.com/SscSPs/quarry_billing_app/internal/core/domain"
	"github.com/SscSPs/quarry_billing_app/internal/dto"
)

// ReceiptReaderSvc defines read operations for receipts
type ReceiptReaderSvc interface {
	// GetReceiptByID retrieves an active receipt.
	GetReceiptByID(ctx context.Context, receiptID string) (*domain.Receipt, error)

	// ListReceipts retrieves a page of active receipts, newest first.
	ListReceipts(ctx context.Context, params dto.ListReceiptsParams) ([]domain.Receipt, *string, error)
}

// ReceiptWriterSvc defines the ledger-mutating receipt operations
type ReceiptWriterSvc interface {
	// CreateReceipt resolves the rate, deducts deposit, numbers and persists a
	// receipt as one unit of work.
	CreateReceipt(ctx context.Context, req dto.CreateReceiptRequest, userID string) (*domain.Receipt, error)

	// UpdateReceiptPayment changes cash paid, status or notes on a receipt.
	UpdateReceiptPayment(ctx context.Context, receiptID string, req dto.UpdateReceiptPaymentRequest, userID string) (*domain.Receipt, error)

	// DeactivateReceipt soft deletes a receipt. Deposit history is untouched.
	DeactivateReceipt(ctx context.Context, receiptID string, userID string) error
}

// ReceiptSvcFacade combines all receipt-related service interfaces
type ReceiptSvcFacade interface {
	ReceiptReaderSvc
	ReceiptWriterSvc
}
