package repositories

import (
	"context"

	"github.com/SscSPs/quarry_billing_app/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// CreditPaymentRepository stores the append-only credit payment log.
type CreditPaymentRepository interface {
	// AppendCreditPaymentInTx inserts a credit payment inside tx.
	AppendCreditPaymentInTx(ctx context.Context, tx pgx.Tx, payment domain.CreditPayment) error

	// ListCreditPaymentsByReceipt returns a receipt's payments oldest first.
	ListCreditPaymentsByReceipt(ctx context.Context, receiptID string) ([]domain.CreditPayment, error)
}
