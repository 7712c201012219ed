package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/quarry_billing_app/internal/apperrors"
	"github.com/SscSPs/quarry_billing_app/internal/core/domain"
	portsrepo "github.com/SscSPs/quarry_billing_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/quarry_billing_app/internal/core/ports/services"
	"github.com/SscSPs/quarry_billing_app/internal/dto"
	"github.com/SscSPs/quarry_billing_app/internal/utils/billing"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

const (
	maxNotesLen = 1000
	dateLayout  = "2006-01-02"
)

// receiptService is the ledger engine's entry point: it resolves the rate,
// computes the split, deducts deposit, numbers and persists receipts.
type receiptService struct {
	BaseService
	receiptRepo portsrepo.ReceiptRepositoryWithTx
	ownerRepo   portsrepo.OwnerRepositoryFacade
	settings    portssvc.BillingSettingsProvider
	ledger      depositLedger
}

// NewReceiptService creates a new receipt service.
func NewReceiptService(
	receiptRepo portsrepo.ReceiptRepositoryWithTx,
	ownerRepo portsrepo.OwnerRepositoryFacade,
	depositRepo portsrepo.DepositLedgerWriter,
	settings portssvc.BillingSettingsProvider,
	options ...ServiceOption,
) portssvc.ReceiptSvcFacade {
	return &receiptService{
		BaseService: newBaseService(options...),
		receiptRepo: receiptRepo,
		ownerRepo:   ownerRepo,
		settings:    settings,
		ledger:      depositLedger{owners: ownerRepo, entries: depositRepo},
	}
}

var _ portssvc.ReceiptSvcFacade = (*receiptService)(nil)

// receiptInput is a validated, normalized create request.
type receiptInput struct {
	ReceiptNo        string
	OwnerName        string
	VehicleNumber    string
	BrassQty         decimal.Decimal
	Rate             decimal.Decimal
	LoadingCharge    decimal.Decimal
	CashPaid         decimal.Decimal
	DepositRequested decimal.Decimal
	Method           *domain.PaymentMethod
	OwnerType        *domain.OwnerType
	AppliedRate      *decimal.Decimal
	RateOverride     bool
	DateTime         time.Time
	Notes            string
}

func (s *receiptService) validateCreate(req dto.CreateReceiptRequest) (receiptInput, error) {
	in := receiptInput{
		ReceiptNo:        billing.NormalizeReceiptNo(req.ReceiptNo),
		OwnerName:        normalizeOwnerName(req.TruckOwner),
		VehicleNumber:    strings.TrimSpace(req.VehicleNumber),
		BrassQty:         req.BrassQty.Decimal,
		Rate:             req.Rate.Decimal,
		LoadingCharge:    req.LoadingCharge.Decimal,
		CashPaid:         req.CashPaid.Decimal,
		DepositRequested: req.DepositDeducted.Decimal,
		Method:           req.PaymentMethod,
		OwnerType:        req.OwnerType,
		AppliedRate:      req.AppliedRate.DecimalPtr(),
		RateOverride:     req.RateOverride,
		Notes:            strings.TrimSpace(req.Notes),
	}

	var problems []string
	if in.OwnerName == "" {
		problems = append(problems, "truck owner is required")
	}
	if in.VehicleNumber == "" {
		problems = append(problems, "vehicle number is required")
	}
	if !in.BrassQty.IsPositive() {
		problems = append(problems, "brass quantity must be positive")
	}
	if !in.Rate.IsPositive() {
		problems = append(problems, "rate must be positive")
	}
	if in.LoadingCharge.IsNegative() {
		problems = append(problems, "loading charge must not be negative")
	}
	if in.CashPaid.IsNegative() {
		problems = append(problems, "cash paid must not be negative")
	}
	if in.DepositRequested.IsNegative() {
		problems = append(problems, "deposit deduction must not be negative")
	}
	if in.Method != nil && !in.Method.IsValid() {
		problems = append(problems, fmt.Sprintf("unknown payment method '%s'", *in.Method))
	}
	if in.Method != nil && *in.Method == domain.PaymentDeposit && !in.DepositRequested.IsPositive() {
		problems = append(problems, "deposit deduction is required for deposit payments")
	}
	if in.Method != nil && *in.Method != domain.PaymentDeposit && in.DepositRequested.IsPositive() {
		problems = append(problems, fmt.Sprintf("deposit deduction is not allowed for %s payments", *in.Method))
	}
	if err := billing.CheckQuantity("brass quantity", in.BrassQty); err != nil {
		problems = append(problems, err.Error())
	}
	for _, amount := range []struct {
		field string
		value decimal.Decimal
	}{
		{"rate", in.Rate},
		{"loading charge", in.LoadingCharge},
		{"cash paid", in.CashPaid},
		{"deposit deduction", in.DepositRequested},
	} {
		if err := billing.CheckMoney(amount.field, amount.value); err != nil {
			problems = append(problems, err.Error())
		}
	}
	if in.AppliedRate != nil {
		if err := billing.CheckMoney("applied rate", *in.AppliedRate); err != nil {
			problems = append(problems, err.Error())
		}
	}
	if in.ReceiptNo != "" {
		if err := billing.ValidateReceiptNo(in.ReceiptNo); err != nil {
			problems = append(problems, err.Error())
		}
	}
	if in.OwnerType != nil && *in.OwnerType != domain.OwnerTypeRegular && *in.OwnerType != domain.OwnerTypePartner {
		problems = append(problems, fmt.Sprintf("unknown owner type '%s'", *in.OwnerType))
	}
	if in.AppliedRate != nil && !in.AppliedRate.IsPositive() {
		problems = append(problems, "applied rate must be positive")
	}
	if len(in.Notes) > maxNotesLen {
		problems = append(problems, fmt.Sprintf("notes longer than %d characters", maxNotesLen))
	}
	if len(problems) > 0 {
		return in, fmt.Errorf("%w: %s", apperrors.ErrValidation, strings.Join(problems, "; "))
	}

	in.DateTime = s.Now()
	if req.DateTime != nil && !req.DateTime.IsZero() {
		in.DateTime = *req.DateTime
	}
	return in, nil
}

// CreateReceipt runs the whole receipt unit of work in one database
// transaction. A conflict (number collision, serialization failure) is
// retried once with a freshly generated number.
func (s *receiptService) CreateReceipt(ctx context.Context, req dto.CreateReceiptRequest, userID string) (*domain.Receipt, error) {
	in, err := s.validateCreate(req)
	if err != nil {
		s.LogWarn(ctx, "Receipt rejected", slog.String("error", err.Error()))
		return nil, err
	}

	settings, err := s.settings.GetBillingSettings(ctx)
	if err != nil {
		return nil, err
	}

	receipt, err := s.createReceiptOnce(ctx, in, settings, userID, false)
	if errors.Is(err, apperrors.ErrConflict) {
		s.Metrics().ConflictRetried("create_receipt")
		s.LogWarn(ctx, "Receipt creation conflicted, retrying with a generated number",
			slog.String("owner", in.OwnerName), slog.String("error", err.Error()))
		receipt, err = s.createReceiptOnce(ctx, in, settings, userID, true)
	}
	if err != nil {
		return nil, err
	}

	s.Metrics().ReceiptCreated(receipt.PaymentMethod, receipt.OwnerType)
	if receipt.DepositDeducted.IsPositive() {
		s.Metrics().DepositMoved(domain.DepositDeduct, receipt.DepositDeducted)
	}
	s.LogInfo(ctx, "Receipt created",
		slog.String("receipt_id", receipt.ReceiptID),
		slog.String("receipt_no", receipt.ReceiptNo),
		slog.String("owner_id", receipt.OwnerID),
		slog.String("total", receipt.TotalAmount.String()),
		slog.String("payment_method", string(receipt.PaymentMethod)))
	return receipt, nil
}

func (s *receiptService) createReceiptOnce(ctx context.Context, in receiptInput, settings domain.BillingSettings, userID string, forceGenerate bool) (*domain.Receipt, error) {
	tx, err := s.receiptRepo.Begin(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to begin receipt transaction")
		return nil, err
	}
	defer s.receiptRepo.Rollback(ctx, tx)

	now := s.Now()

	usesDeposit := in.DepositRequested.IsPositive()
	if in.Method != nil {
		usesDeposit = *in.Method == domain.PaymentDeposit
	}

	owner, err := s.lockOrCreateOwner(ctx, tx, in, usesDeposit, userID, now)
	if err != nil {
		return nil, err
	}

	rate := billing.ResolveRate(billing.RateInput{
		Owner:        owner,
		Rate:         in.Rate,
		OwnerType:    in.OwnerType,
		AppliedRate:  in.AppliedRate,
		RateOverride: in.RateOverride,
	}, settings)
	split := billing.CalculateSplit(in.BrassQty, rate.Rate, in.LoadingCharge, in.CashPaid, decimal.Zero)
	method := billing.InferPaymentMethod(split.TotalAmount, in.CashPaid, in.DepositRequested)
	if in.Method != nil {
		method = *in.Method
	}

	receiptNo, err := s.issueReceiptNo(ctx, tx, in.ReceiptNo, settings, forceGenerate)
	if err != nil {
		return nil, err
	}

	if usesDeposit {
		entry, err := s.ledger.deduct(ctx, tx, owner, depositMove{
			Amount:    in.DepositRequested,
			ReceiptNo: &receiptNo,
			Notes:     "Receipt " + receiptNo,
			UserID:    userID,
			At:        now,
		}, split.TotalAmount)
		if err != nil {
			s.LogError(ctx, err, "Failed to deduct deposit", slog.String("owner_id", owner.OwnerID))
			return nil, err
		}
		if entry == nil {
			s.LogInfo(ctx, "No deposit available, billing whole amount to cash and credit",
				slog.String("owner_id", owner.OwnerID))
		} else {
			split = billing.CalculateSplit(in.BrassQty, rate.Rate, in.LoadingCharge, in.CashPaid, entry.Amount)
			if entry.Amount.LessThan(in.DepositRequested) {
				s.LogInfo(ctx, "Deposit deduction capped",
					slog.String("requested", in.DepositRequested.String()),
					slog.String("deducted", entry.Amount.String()))
			}
		}
	}

	receipt := domain.Receipt{
		ReceiptID:       uuid.NewString(),
		ReceiptNo:       receiptNo,
		OwnerID:         owner.OwnerID,
		TruckOwner:      owner.Name,
		VehicleNumber:   in.VehicleNumber,
		BrassQty:        in.BrassQty,
		Rate:            rate.Rate,
		AppliedRate:     rate.AppliedRate,
		LoadingCharge:   in.LoadingCharge,
		TotalAmount:     split.TotalAmount,
		CashPaid:        split.CashPaid,
		DepositDeducted: split.DepositDeducted,
		CreditAmount:    split.CreditAmount,
		PaymentStatus:   split.Status,
		PaymentMethod:   method,
		OwnerType:       rate.OwnerType,
		DateTime:        in.DateTime,
		Notes:           in.Notes,
		IsActive:        true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.receiptRepo.SaveReceiptInTx(ctx, tx, receipt); err != nil {
		s.LogError(ctx, err, "Failed to save receipt", slog.String("receipt_no", receiptNo))
		return nil, err
	}
	if err := s.ownerRepo.RecordReceiptActivityInTx(ctx, tx, owner.OwnerID, method, in.VehicleNumber, userID, now); err != nil {
		s.LogError(ctx, err, "Failed to record owner activity", slog.String("owner_id", owner.OwnerID))
		return nil, err
	}

	if err := s.receiptRepo.Commit(ctx, tx); err != nil {
		s.LogError(ctx, err, "Failed to commit receipt", slog.String("receipt_no", receiptNo))
		return nil, err
	}
	return &receipt, nil
}

// lockOrCreateOwner returns the owner row locked for the rest of tx. Unknown
// names are provisioned as regular owners, except on the deposit path where
// the owner must already exist.
func (s *receiptService) lockOrCreateOwner(ctx context.Context, tx pgx.Tx, in receiptInput, usesDeposit bool, userID string, now time.Time) (*domain.TruckOwner, error) {
	owner, err := s.ownerRepo.FindOwnerByNameForUpdate(ctx, tx, in.OwnerName)
	if err == nil {
		if !owner.IsActive {
			return nil, fmt.Errorf("%w: truck owner %q is inactive", apperrors.ErrValidation, in.OwnerName)
		}
		return owner, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		s.LogError(ctx, err, "Failed to lock owner", slog.String("owner", in.OwnerName))
		return nil, err
	}
	if usesDeposit {
		return nil, fmt.Errorf("%w: truck owner %q does not exist, cannot pay from deposit", apperrors.ErrValidation, in.OwnerName)
	}

	vehicle := in.VehicleNumber
	newOwner := domain.TruckOwner{
		OwnerID:        uuid.NewString(),
		Name:           in.OwnerName,
		DepositBalance: decimal.Zero,
		CreditLimit:    decimal.Zero,
		VehicleNumber:  &vehicle,
		IsActive:       true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	if err := s.ownerRepo.InsertOwnerIfAbsentInTx(ctx, tx, newOwner); err != nil {
		s.LogError(ctx, err, "Failed to provision owner", slog.String("owner", in.OwnerName))
		return nil, err
	}
	// Another request may have inserted the same name first; either way the
	// row now exists and is locked here.
	owner, err = s.ownerRepo.FindOwnerByNameForUpdate(ctx, tx, in.OwnerName)
	if err != nil {
		s.LogError(ctx, err, "Failed to lock provisioned owner", slog.String("owner", in.OwnerName))
		return nil, err
	}
	if owner.OwnerID == newOwner.OwnerID {
		s.LogInfo(ctx, "Owner provisioned from receipt", slog.String("owner_id", owner.OwnerID))
	}
	return owner, nil
}

// maxNumberingAttempts bounds how many taken generated numbers are skipped.
const maxNumberingAttempts = 10

// issueReceiptNo takes the numbering lock and returns the caller's number if
// it is still free, otherwise the next free generated one.
func (s *receiptService) issueReceiptNo(ctx context.Context, tx pgx.Tx, requested string, settings domain.BillingSettings, forceGenerate bool) (string, error) {
	if err := s.receiptRepo.LockReceiptNumbering(ctx, tx); err != nil {
		s.LogError(ctx, err, "Failed to lock receipt numbering")
		return "", err
	}

	if requested != "" && !forceGenerate {
		exists, err := s.receiptRepo.ReceiptNoExistsInTx(ctx, tx, requested)
		if err != nil {
			s.LogError(ctx, err, "Failed to check receipt number", slog.String("receipt_no", requested))
			return "", err
		}
		if !exists {
			return requested, nil
		}
		s.LogInfo(ctx, "Receipt number taken, generating a new one", slog.String("requested", requested))
	}

	highest, err := s.receiptRepo.FindHighestReceiptNumberInTx(ctx, tx)
	if err != nil {
		s.LogError(ctx, err, "Failed to read highest receipt number")
		return "", err
	}
	next := billing.NextReceiptNumber(highest, settings.ReceiptStart)
	for attempt := 0; attempt < maxNumberingAttempts && next <= billing.MaxReceiptNumber; attempt, next = attempt+1, next+1 {
		receiptNo := billing.FormatReceiptNo(settings.ReceiptPrefix, next)
		exists, err := s.receiptRepo.ReceiptNoExistsInTx(ctx, tx, receiptNo)
		if err != nil {
			s.LogError(ctx, err, "Failed to check receipt number", slog.String("receipt_no", receiptNo))
			return "", err
		}
		if !exists {
			return receiptNo, nil
		}
		s.LogWarn(ctx, "Generated receipt number already taken, advancing", slog.String("receipt_no", receiptNo))
	}
	return "", fmt.Errorf("%w: no free receipt number after %d", apperrors.ErrConflict, next-1)
}

// UpdateReceiptPayment changes the settlement of an active receipt. A new
// cash amount recomputes credit and status against the unchanged total and
// deposit; a status on its own is stored as given.
func (s *receiptService) UpdateReceiptPayment(ctx context.Context, receiptID string, req dto.UpdateReceiptPaymentRequest, userID string) (*domain.Receipt, error) {
	if req.CashPaid != nil && req.CashPaid.IsNegative() {
		return nil, fmt.Errorf("%w: cash paid must not be negative", apperrors.ErrValidation)
	}
	if err := billing.CheckMoney("cash paid", req.CashPaid.Dec()); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}
	if req.PaymentStatus != nil && !req.PaymentStatus.IsValid() {
		return nil, fmt.Errorf("%w: unknown payment status '%s'", apperrors.ErrValidation, *req.PaymentStatus)
	}
	if req.Notes != nil && len(strings.TrimSpace(*req.Notes)) > maxNotesLen {
		return nil, fmt.Errorf("%w: notes longer than %d characters", apperrors.ErrValidation, maxNotesLen)
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

	if req.CashPaid == nil && req.PaymentStatus == nil && req.Notes == nil {
		s.LogDebug(ctx, "No fields provided for receipt payment update", slog.String("receipt_id", receiptID))
		return receipt, nil
	}

	switch {
	case req.CashPaid != nil:
		applyCashPaid(receipt, req.CashPaid.Dec())
		if req.PaymentStatus != nil && *req.PaymentStatus != receipt.PaymentStatus {
			s.LogDebug(ctx, "Ignoring payment status that contradicts cash paid",
				slog.String("requested", string(*req.PaymentStatus)),
				slog.String("computed", string(receipt.PaymentStatus)))
		}
	case req.PaymentStatus != nil:
		receipt.PaymentStatus = *req.PaymentStatus
	}
	if req.Notes != nil {
		receipt.Notes = strings.TrimSpace(*req.Notes)
	}
	receipt.LastUpdatedAt = s.Now()
	receipt.LastUpdatedBy = userID

	if err := s.receiptRepo.UpdateReceiptPaymentInTx(ctx, tx, *receipt); err != nil {
		s.LogError(ctx, err, "Failed to update receipt payment", slog.String("receipt_id", receiptID))
		return nil, err
	}
	if err := s.receiptRepo.Commit(ctx, tx); err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Receipt payment updated",
		slog.String("receipt_id", receiptID),
		slog.String("cash_paid", receipt.CashPaid.String()),
		slog.String("status", string(receipt.PaymentStatus)))
	return receipt, nil
}

// applyCashPaid recomputes credit and status from a new cash amount.
func applyCashPaid(r *domain.Receipt, cashPaid decimal.Decimal) {
	r.CashPaid = cashPaid
	r.CreditAmount = r.TotalAmount.Sub(cashPaid).Sub(r.DepositDeducted)
	r.PaymentStatus = billing.PaymentStatusFor(r.TotalAmount, cashPaid.Add(r.DepositDeducted))
}

func (s *receiptService) GetReceiptByID(ctx context.Context, receiptID string) (*domain.Receipt, error) {
	receipt, err := s.receiptRepo.FindReceiptByID(ctx, receiptID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find receipt", slog.String("receipt_id", receiptID))
		}
		return nil, err
	}
	return receipt, nil
}

func (s *receiptService) ListReceipts(ctx context.Context, params dto.ListReceiptsParams) ([]domain.Receipt, *string, error) {
	filter, err := s.receiptFilter(ctx, params)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			// unknown owner: nothing to list
			return []domain.Receipt{}, nil, nil
		}
		return nil, nil, err
	}

	receipts, next, err := s.receiptRepo.ListReceipts(ctx, filter, params.Limit, params.NextToken)
	if err != nil {
		s.LogError(ctx, err, "Failed to list receipts", slog.Int("limit", params.Limit))
		return nil, nil, err
	}
	if receipts == nil {
		receipts = []domain.Receipt{}
	}
	return receipts, next, nil
}

func (s *receiptService) receiptFilter(ctx context.Context, params dto.ListReceiptsParams) (domain.ReceiptFilter, error) {
	var filter domain.ReceiptFilter

	if name := normalizeOwnerName(params.Owner); name != "" {
		owner, err := s.ownerRepo.FindOwnerByName(ctx, name)
		if err != nil {
			return filter, err
		}
		filter.OwnerID = owner.OwnerID
	}
	if params.From != "" {
		from, err := time.Parse(dateLayout, params.From)
		if err != nil {
			return filter, fmt.Errorf("%w: invalid from date '%s'", apperrors.ErrValidation, params.From)
		}
		filter.From = &from
	}
	if params.To != "" {
		to, err := time.Parse(dateLayout, params.To)
		if err != nil {
			return filter, fmt.Errorf("%w: invalid to date '%s'", apperrors.ErrValidation, params.To)
		}
		// inclusive end date
		end := to.AddDate(0, 0, 1)
		filter.To = &end
	}
	if filter.From != nil && filter.To != nil && !filter.From.Before(*filter.To) {
		return filter, fmt.Errorf("%w: from date must not be after to date", apperrors.ErrValidation)
	}
	if params.Status != "" {
		status := domain.PaymentStatus(params.Status)
		if !status.IsValid() {
			return filter, fmt.Errorf("%w: unknown payment status '%s'", apperrors.ErrValidation, params.Status)
		}
		filter.Status = &status
	}
	return filter, nil
}

// DeactivateReceipt soft deletes a receipt. Balances and deposit history
// are left exactly as they were.
func (s *receiptService) DeactivateReceipt(ctx context.Context, receiptID string, userID string) error {
	if err := s.receiptRepo.DeactivateReceipt(ctx, receiptID, userID, s.Now()); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to deactivate receipt", slog.String("receipt_id", receiptID))
		}
		return err
	}
	s.LogInfo(ctx, "Receipt deactivated", slog.String("receipt_id", receiptID))
	return nil
}
