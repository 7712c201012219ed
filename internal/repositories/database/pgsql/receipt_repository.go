package pgsql

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/SscSPs/quarry_billing_app/internal/apperrors"
	"github.com/SscSPs/quarry_billing_app/internal/core/domain"
	portsrepo "github.com/SscSPs/quarry_billing_app/internal/core/ports/repositories"
	"github.com/SscSPs/quarry_billing_app/internal/models"
	"github.com/SscSPs/quarry_billing_app/internal/utils/mapping"
	"github.com/SscSPs/quarry_billing_app/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// receiptNumberingLockKey identifies the transaction-scoped advisory lock
// that serializes receipt number issuing.
const receiptNumberingLockKey int64 = 0x51425250 // "QBRP"

const receiptColumns = `receipt_id, receipt_no, owner_id, truck_owner, vehicle_number, brass_qty, rate,
	applied_rate, loading_charge, total_amount, cash_paid, deposit_deducted, credit_amount,
	payment_status, payment_method, owner_type, date_time, notes, is_active,
	created_at, created_by, last_updated_at, last_updated_by`

type PgxReceiptRepository struct {
	BaseRepository
}

// newPgxReceiptRepository creates a new repository for receipts.
func newPgxReceiptRepository(pool *pgxpool.Pool) portsrepo.ReceiptRepositoryWithTx {
	return &PgxReceiptRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ReceiptRepositoryWithTx = (*PgxReceiptRepository)(nil)

func scanReceipt(row rowScanner) (models.Receipt, error) {
	var m models.Receipt
	err := row.Scan(
		&m.ReceiptID,
		&m.ReceiptNo,
		&m.OwnerID,
		&m.TruckOwner,
		&m.VehicleNumber,
		&m.BrassQty,
		&m.Rate,
		&m.AppliedRate,
		&m.LoadingCharge,
		&m.TotalAmount,
		&m.CashPaid,
		&m.DepositDeducted,
		&m.CreditAmount,
		&m.PaymentStatus,
		&m.PaymentMethod,
		&m.OwnerType,
		&m.DateTime,
		&m.Notes,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func (r *PgxReceiptRepository) FindReceiptByID(ctx context.Context, receiptID string) (*domain.Receipt, error) {
	query := `SELECT ` + receiptColumns + ` FROM receipts WHERE receipt_id = $1 AND is_active;`
	m, err := scanReceipt(r.Pool.QueryRow(ctx, query, receiptID))
	if err != nil {
		return nil, mapPgError(err, "failed to find receipt "+receiptID)
	}
	receipt := mapping.ToDomainReceipt(m)
	return &receipt, nil
}

// ListReceipts pages through active receipts ordered by date_time DESC with
// receipt_id as the tie-breaker. The returned token points at the last
// receipt of the page.
func (r *PgxReceiptRepository) ListReceipts(ctx context.Context, filter domain.ReceiptFilter, limit int, nextToken *string) ([]domain.Receipt, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	// one extra row tells us whether there is a next page
	fetchLimit := limit + 1

	conditions := []string{"is_active"}
	var args []any
	arg := func(v any) string {
		args = append(args, v)
		return "$" + strconv.Itoa(len(args))
	}

	if filter.OwnerID != "" {
		conditions = append(conditions, "owner_id = "+arg(filter.OwnerID))
	}
	if filter.From != nil {
		conditions = append(conditions, "date_time >= "+arg(*filter.From))
	}
	if filter.To != nil {
		conditions = append(conditions, "date_time < "+arg(*filter.To))
	}
	if filter.Status != nil {
		conditions = append(conditions, "payment_status = "+arg(string(*filter.Status)))
	}
	if nextToken != nil && *nextToken != "" {
		lastDateTime, lastID, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", fmt.Errorf("%w: %v", apperrors.ErrValidation, err))
		}
		conditions = append(conditions, fmt.Sprintf("(date_time, receipt_id) < (%s, %s)", arg(lastDateTime), arg(lastID)))
	}

	query := `SELECT ` + receiptColumns + `
		FROM receipts
		WHERE ` + strings.Join(conditions, " AND ") + `
		ORDER BY date_time DESC, receipt_id DESC
		LIMIT ` + arg(fetchLimit) + `;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, mapPgError(err, "failed to query receipts")
	}
	defer rows.Close()

	modelReceipts := make([]models.Receipt, 0, fetchLimit)
	for rows.Next() {
		m, err := scanReceipt(rows)
		if err != nil {
			return nil, nil, mapPgError(err, "failed to scan receipt row")
		}
		modelReceipts = append(modelReceipts, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, mapPgError(err, "error iterating receipt rows")
	}

	var nextTokenVal *string
	results := modelReceipts
	if len(modelReceipts) > limit {
		last := modelReceipts[limit-1]
		token := pagination.EncodeToken(last.DateTime, last.ReceiptID)
		nextTokenVal = &token
		results = modelReceipts[:limit]
	}

	return mapping.ToDomainReceiptSlice(results), nextTokenVal, nil
}

func (r *PgxReceiptRepository) LockReceiptNumbering(ctx context.Context, tx pgx.Tx) error {
	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock($1);`, receiptNumberingLockKey); err != nil {
		return mapPgError(err, "failed to lock receipt numbering")
	}
	return nil
}

// FindHighestReceiptNumberInTx reads the trailing digits of every receipt
// number, soft deleted ones included, so a number is never handed out twice.
// A trailing run longer than 18 digits is not a receipt number and is skipped
// whole, never read in part.
func (r *PgxReceiptRepository) FindHighestReceiptNumberInTx(ctx context.Context, tx pgx.Tx) (*int64, error) {
	query := `
		SELECT MAX(CAST(substring(receipt_no FROM '(?:^|[^0-9])([0-9]{1,18})$') AS BIGINT))
		FROM receipts;`

	var highest *int64
	if err := tx.QueryRow(ctx, query).Scan(&highest); err != nil {
		return nil, mapPgError(err, "failed to read highest receipt number")
	}
	return highest, nil
}

func (r *PgxReceiptRepository) ReceiptNoExistsInTx(ctx context.Context, tx pgx.Tx, receiptNo string) (bool, error) {
	var exists bool
	err := tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM receipts WHERE receipt_no = $1);`, receiptNo).Scan(&exists)
	if err != nil {
		return false, mapPgError(err, "failed to check receipt number "+receiptNo)
	}
	return exists, nil
}

func (r *PgxReceiptRepository) SaveReceiptInTx(ctx context.Context, tx pgx.Tx, receipt domain.Receipt) error {
	m := mapping.ToModelReceipt(receipt)
	query := `INSERT INTO receipts (` + receiptColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23);`

	_, err := tx.Exec(ctx, query,
		m.ReceiptID, m.ReceiptNo, m.OwnerID, m.TruckOwner, m.VehicleNumber,
		m.BrassQty, m.Rate, m.AppliedRate, m.LoadingCharge, m.TotalAmount,
		m.CashPaid, m.DepositDeducted, m.CreditAmount,
		m.PaymentStatus, m.PaymentMethod, m.OwnerType, m.DateTime, m.Notes, m.IsActive,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: receipt number %s already issued", apperrors.ErrConflict, m.ReceiptNo)
		}
		return mapPgError(err, "failed to save receipt "+m.ReceiptNo)
	}
	return nil
}

func (r *PgxReceiptRepository) FindReceiptByIDForUpdate(ctx context.Context, tx pgx.Tx, receiptID string) (*domain.Receipt, error) {
	query := `SELECT ` + receiptColumns + ` FROM receipts WHERE receipt_id = $1 AND is_active FOR UPDATE;`
	m, err := scanReceipt(tx.QueryRow(ctx, query, receiptID))
	if err != nil {
		return nil, mapPgError(err, "failed to lock receipt "+receiptID)
	}
	receipt := mapping.ToDomainReceipt(m)
	return &receipt, nil
}

func (r *PgxReceiptRepository) UpdateReceiptPaymentInTx(ctx context.Context, tx pgx.Tx, receipt domain.Receipt) error {
	m := mapping.ToModelReceipt(receipt)
	query := `
		UPDATE receipts
		SET cash_paid = $2, credit_amount = $3, payment_status = $4, notes = $5,
		    last_updated_at = $6, last_updated_by = $7
		WHERE receipt_id = $1 AND is_active;`

	tag, err := tx.Exec(ctx, query,
		m.ReceiptID, m.CashPaid, m.CreditAmount, m.PaymentStatus, m.Notes, m.LastUpdatedAt, m.LastUpdatedBy)
	if err != nil {
		return mapPgError(err, "failed to update receipt payment "+m.ReceiptID)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxReceiptRepository) DeactivateReceipt(ctx context.Context, receiptID string, userID string, now time.Time) error {
	query := `
		UPDATE receipts
		SET is_active = FALSE, last_updated_at = $2, last_updated_by = $3
		WHERE receipt_id = $1 AND is_active;`

	tag, err := r.Pool.Exec(ctx, query, receiptID, now, userID)
	if err != nil {
		return mapPgError(err, "failed to deactivate receipt "+receiptID)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
