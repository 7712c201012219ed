package pgsql

import (
	"context"

	"github.com/SscSPs/quarry_billing_app/internal/core/domain"
	portsrepo "github.com/SscSPs/quarry_billing_app/internal/core/ports/repositories"
	"github.com/SscSPs/quarry_billing_app/internal/models"
	"github.com/SscSPs/quarry_billing_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxSettingsRepository struct {
	BaseRepository
}

func newPgxSettingsRepository(pool *pgxpool.Pool) portsrepo.SettingsRepository {
	return &PgxSettingsRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.SettingsRepository = (*PgxSettingsRepository)(nil)

const settingColumns = `key, value, category, created_at, created_by, last_updated_at, last_updated_by`

func scanSetting(row rowScanner) (models.Setting, error) {
	var m models.Setting
	err := row.Scan(&m.Key, &m.Value, &m.Category, &m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy)
	return m, err
}

func (r *PgxSettingsRepository) ListSettings(ctx context.Context, category string) ([]domain.Setting, error) {
	query := `SELECT ` + settingColumns + `
		FROM settings
		WHERE ($1 = '' OR category = $1)
		ORDER BY category, key;`

	rows, err := r.Pool.Query(ctx, query, category)
	if err != nil {
		return nil, mapPgError(err, "failed to list settings")
	}
	defer rows.Close()

	var settings []domain.Setting
	for rows.Next() {
		m, err := scanSetting(rows)
		if err != nil {
			return nil, mapPgError(err, "failed to scan setting row")
		}
		settings = append(settings, mapping.ToDomainSetting(m))
	}
	if err := rows.Err(); err != nil {
		return nil, mapPgError(err, "error iterating setting rows")
	}
	return settings, nil
}

func (r *PgxSettingsRepository) FindSetting(ctx context.Context, key string) (*domain.Setting, error) {
	m, err := scanSetting(r.Pool.QueryRow(ctx, `SELECT `+settingColumns+` FROM settings WHERE key = $1;`, key))
	if err != nil {
		return nil, mapPgError(err, "failed to find setting "+key)
	}
	setting := mapping.ToDomainSetting(m)
	return &setting, nil
}

// UpsertSetting keeps the original creation audit fields on update.
func (r *PgxSettingsRepository) UpsertSetting(ctx context.Context, setting domain.Setting) error {
	m := mapping.ToModelSetting(setting)
	query := `
		INSERT INTO settings (` + settingColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (key) DO UPDATE SET
			value = EXCLUDED.value,
			category = EXCLUDED.category,
			last_updated_at = EXCLUDED.last_updated_at,
			last_updated_by = EXCLUDED.last_updated_by;`

	_, err := r.Pool.Exec(ctx, query,
		m.Key, m.Value, m.Category, m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy)
	if err != nil {
		return mapPgError(err, "failed to store setting "+m.Key)
	}
	return nil
}
