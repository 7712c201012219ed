package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SscSPs/quarry_billing_app/internal/apperrors"
	"github.com/SscSPs/quarry_billing_app/internal/core/domain"
	portsrepo "github.com/SscSPs/quarry_billing_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/quarry_billing_app/internal/core/ports/services"
	"github.com/SscSPs/quarry_billing_app/internal/dto"
	"github.com/SscSPs/quarry_billing_app/internal/utils/billing"
	"github.com/google/uuid"
)

// creditPaymentService settles outstanding receipt credit and keeps the
// credit payment log.
type creditPaymentService struct {
	BaseService
	receiptRepo portsrepo.ReceiptRepositoryWithTx
	paymentRepo portsrepo.CreditPaymentRepository
}

// NewCreditPaymentService creates a new credit payment service.
func NewCreditPaymentService(receiptRepo portsrepo.ReceiptRepositoryWithTx, paymentRepo portsrepo.CreditPaymentRepository, options ...ServiceOption) portssvc.CreditPaymentSvcFacade {
	return &creditPaymentService{
		BaseService: newBaseService(options...),
		receiptRepo: receiptRepo,
		paymentRepo: paymentRepo,
	}
}

var _ portssvc.CreditPaymentSvcFacade = (*creditPaymentService)(nil)

// RecordCreditPayment moves amount from credit to cash on the receipt and
// appends a log entry, both in one transaction. Paying more than is
// outstanding is rejected.
func (s *creditPaymentService) RecordCreditPayment(ctx context.Context, receiptID string, req dto.RecordCreditPaymentRequest, userID string) (*domain.CreditPayment, error) {
	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: payment amount must be positive", apperrors.ErrValidation)
	}
	if err := billing.CheckMoney("payment amount", req.Amount); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}

	tx, err := s.receiptRepo.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer s.receiptRepo.Rollback(ctx, tx)

	receipt, err := s.receiptRepo.FindReceiptByIDForUpdate(ctx, tx, receiptID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to lock receipt", slog.String("receipt_id", receiptID))
		}
		return nil, err
	}

	outstanding := receipt.CreditAmount
	if !outstanding.IsPositive() {
		return nil, fmt.Errorf("%w: receipt %s has no outstanding credit", apperrors.ErrValidation, receipt.ReceiptNo)
	}
	if req.Amount.GreaterThan(outstanding) {
		return nil, fmt.Errorf("%w: payment %s exceeds outstanding credit %s", apperrors.ErrValidation, req.Amount, outstanding)
	}

	now := s.Now()
	applyCashPaid(receipt, receipt.CashPaid.Add(req.Amount))
	receipt.LastUpdatedAt = now
	receipt.LastUpdatedBy = userID

	payment := domain.CreditPayment{
		PaymentID:      uuid.NewString(),
		ReceiptID:      receipt.ReceiptID,
		ReceiptNo:      receipt.ReceiptNo,
		OwnerID:        receipt.OwnerID,
		Amount:         req.Amount,
		PreviousCredit: outstanding,
		NewCredit:      receipt.CreditAmount,
		Notes:          strings.TrimSpace(req.Notes),
		CreatedAt:      now,
		CreatedBy:      userID,
	}

	if err := s.receiptRepo.UpdateReceiptPaymentInTx(ctx, tx, *receipt); err != nil {
		s.LogError(ctx, err, "Failed to update receipt for credit payment", slog.String("receipt_id", receiptID))
		return nil, err
	}
	if err := s.paymentRepo.AppendCreditPaymentInTx(ctx, tx, payment); err != nil {
		s.LogError(ctx, err, "Failed to append credit payment", slog.String("receipt_id", receiptID))
		return nil, err
	}
	if err := s.receiptRepo.Commit(ctx, tx); err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Credit payment recorded",
		slog.String("receipt_id", receiptID),
		slog.String("amount", payment.Amount.String()),
		slog.String("new_credit", payment.NewCredit.String()))
	return &payment, nil
}

func (s *creditPaymentService) ListCreditPayments(ctx context.Context, receiptID string) ([]domain.CreditPayment, error) {
	if _, err := s.receiptRepo.FindReceiptByID(ctx, receiptID); err != nil {
		return nil, err
	}
	payments, err := s.paymentRepo.ListCreditPaymentsByReceipt(ctx, receiptID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list credit payments", slog.String("receipt_id", receiptID))
		return nil, err
	}
	if payments == nil {
		return []domain.CreditPayment{}, nil
	}
	return payments, nil
}
