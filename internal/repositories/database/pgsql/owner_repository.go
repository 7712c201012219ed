package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/SscSPs/quarry_billing_app/internal/apperrors"
	"github.com/SscSPs/quarry_billing_app/internal/core/domain"
	portsrepo "github.com/SscSPs/quarry_billing_app/internal/core/ports/repositories"
	"github.com/SscSPs/quarry_billing_app/internal/models"
	"github.com/SscSPs/quarry_billing_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

const ownerColumns = `owner_id, name, is_partner, partner_rate, deposit_balance, credit_limit,
	vehicle_number, last_payment_method, is_active, created_at, created_by, last_updated_at, last_updated_by`

type PgxOwnerRepository struct {
	BaseRepository
}

// newPgxOwnerRepository creates a new repository for truck owners.
func newPgxOwnerRepository(pool *pgxpool.Pool) portsrepo.OwnerRepositoryWithTx {
	return &PgxOwnerRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.OwnerRepositoryWithTx = (*PgxOwnerRepository)(nil)

// rowScanner is satisfied by both pgx.Row and pgx.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanOwner(row rowScanner) (models.TruckOwner, error) {
	var m models.TruckOwner
	err := row.Scan(
		&m.OwnerID,
		&m.Name,
		&m.IsPartner,
		&m.PartnerRate,
		&m.DepositBalance,
		&m.CreditLimit,
		&m.VehicleNumber,
		&m.LastPaymentMethod,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func (r *PgxOwnerRepository) findOne(ctx context.Context, q pgxQuerier, query string, arg any) (*domain.TruckOwner, error) {
	m, err := scanOwner(q.QueryRow(ctx, query, arg))
	if err != nil {
		return nil, mapPgError(err, fmt.Sprintf("failed to find owner %v", arg))
	}
	owner := mapping.ToDomainOwner(m)
	return &owner, nil
}

// pgxQuerier is implemented by the pool and by pgx.Tx.
type pgxQuerier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func (r *PgxOwnerRepository) FindOwnerByName(ctx context.Context, name string) (*domain.TruckOwner, error) {
	return r.findOne(ctx, r.Pool, `SELECT `+ownerColumns+` FROM truck_owners WHERE name = $1;`, name)
}

func (r *PgxOwnerRepository) FindOwnerByID(ctx context.Context, ownerID string) (*domain.TruckOwner, error) {
	return r.findOne(ctx, r.Pool, `SELECT `+ownerColumns+` FROM truck_owners WHERE owner_id = $1;`, ownerID)
}

func (r *PgxOwnerRepository) ListOwners(ctx context.Context, includeInactive bool, limit int, offset int) ([]domain.TruckOwner, error) {
	if limit <= 0 {
		limit = 50
	}
	query := `SELECT ` + ownerColumns + `
		FROM truck_owners
		WHERE ($1 OR is_active)
		ORDER BY name
		LIMIT $2 OFFSET $3;`

	rows, err := r.Pool.Query(ctx, query, includeInactive, limit, offset)
	if err != nil {
		return nil, mapPgError(err, "failed to list owners")
	}
	defer rows.Close()

	var owners []models.TruckOwner
	for rows.Next() {
		m, err := scanOwner(rows)
		if err != nil {
			return nil, mapPgError(err, "failed to scan owner row")
		}
		owners = append(owners, m)
	}
	if err := rows.Err(); err != nil {
		return nil, mapPgError(err, "error iterating owner rows")
	}
	return mapping.ToDomainOwnerSlice(owners), nil
}

func (r *PgxOwnerRepository) SaveOwner(ctx context.Context, owner domain.TruckOwner) error {
	m := mapping.ToModelOwner(owner)
	query := `INSERT INTO truck_owners (` + ownerColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);`

	_, err := r.Pool.Exec(ctx, query,
		m.OwnerID, m.Name, m.IsPartner, m.PartnerRate, m.DepositBalance, m.CreditLimit,
		m.VehicleNumber, m.LastPaymentMethod, m.IsActive,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: truck owner %q already exists", apperrors.ErrDuplicate, m.Name)
		}
		return mapPgError(err, "failed to save owner "+m.Name)
	}
	return nil
}

// UpdateOwner writes the descriptive columns. The deposit balance is only
// ever changed through the ledger.
func (r *PgxOwnerRepository) UpdateOwner(ctx context.Context, owner domain.TruckOwner) error {
	m := mapping.ToModelOwner(owner)
	query := `
		UPDATE truck_owners
		SET is_partner = $2, partner_rate = $3, credit_limit = $4, vehicle_number = $5,
		    is_active = $6, last_updated_at = $7, last_updated_by = $8
		WHERE owner_id = $1;`

	tag, err := r.Pool.Exec(ctx, query,
		m.OwnerID, m.IsPartner, m.PartnerRate, m.CreditLimit, m.VehicleNumber,
		m.IsActive, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return mapPgError(err, "failed to update owner "+m.OwnerID)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxOwnerRepository) DeactivateOwner(ctx context.Context, ownerID string, userID string, now time.Time) error {
	query := `
		UPDATE truck_owners
		SET is_active = FALSE, last_updated_at = $2, last_updated_by = $3
		WHERE owner_id = $1;`

	tag, err := r.Pool.Exec(ctx, query, ownerID, now, userID)
	if err != nil {
		return mapPgError(err, "failed to deactivate owner "+ownerID)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxOwnerRepository) FindOwnerByNameForUpdate(ctx context.Context, tx pgx.Tx, name string) (*domain.TruckOwner, error) {
	return r.findOne(ctx, tx, `SELECT `+ownerColumns+` FROM truck_owners WHERE name = $1 FOR UPDATE;`, name)
}

func (r *PgxOwnerRepository) FindOwnerByIDForUpdate(ctx context.Context, tx pgx.Tx, ownerID string) (*domain.TruckOwner, error) {
	return r.findOne(ctx, tx, `SELECT `+ownerColumns+` FROM truck_owners WHERE owner_id = $1 FOR UPDATE;`, ownerID)
}

// InsertOwnerIfAbsentInTx relies on the unique name index: a concurrent
// insert of the same name waits for the other transaction and then does
// nothing.
func (r *PgxOwnerRepository) InsertOwnerIfAbsentInTx(ctx context.Context, tx pgx.Tx, owner domain.TruckOwner) error {
	m := mapping.ToModelOwner(owner)
	query := `INSERT INTO truck_owners (` + ownerColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		ON CONFLICT (name) DO NOTHING;`

	_, err := tx.Exec(ctx, query,
		m.OwnerID, m.Name, m.IsPartner, m.PartnerRate, m.DepositBalance, m.CreditLimit,
		m.VehicleNumber, m.LastPaymentMethod, m.IsActive,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return mapPgError(err, "failed to provision owner "+m.Name)
	}
	return nil
}

func (r *PgxOwnerRepository) UpdateDepositBalanceInTx(ctx context.Context, tx pgx.Tx, ownerID string, newBalance decimal.Decimal, userID string, now time.Time) error {
	query := `
		UPDATE truck_owners
		SET deposit_balance = $2, last_updated_at = $3, last_updated_by = $4
		WHERE owner_id = $1;`

	tag, err := tx.Exec(ctx, query, ownerID, newBalance, now, userID)
	if err != nil {
		return mapPgError(err, "failed to update deposit balance for owner "+ownerID)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxOwnerRepository) RecordReceiptActivityInTx(ctx context.Context, tx pgx.Tx, ownerID string, method domain.PaymentMethod, vehicleNumber string, userID string, now time.Time) error {
	query := `
		UPDATE truck_owners
		SET last_payment_method = $2,
		    vehicle_number = COALESCE(NULLIF($3, ''), vehicle_number),
		    last_updated_at = $4, last_updated_by = $5
		WHERE owner_id = $1;`

	if _, err := tx.Exec(ctx, query, ownerID, string(method), vehicleNumber, now, userID); err != nil {
		return mapPgError(err, "failed to record receipt activity for owner "+ownerID)
	}
	return nil
}
