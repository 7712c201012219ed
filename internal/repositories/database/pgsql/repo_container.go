package pgsql

import (
	portsrepo "github.com/SscSPs/quarry_billing_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		OwnerRepo:         newPgxOwnerRepository(dbPool),
		ReceiptRepo:       newPgxReceiptRepository(dbPool),
		DepositRepo:       newPgxDepositLedgerRepository(dbPool),
		CreditPaymentRepo: newPgxCreditPaymentRepository(dbPool),
		SettingsRepo:      newPgxSettingsRepository(dbPool),
		ReportingRepo:     newReportingRepository(dbPool),
	}
}
