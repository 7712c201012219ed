package services

import (
	portsrepo "github.com/SscSPs/quarry_billing_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/quarry_billing_app/internal/core/ports/services"
	"github.com/SscSPs/quarry_billing_app/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, options ...ServiceOption) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// Settings come first; the ledger services read billing settings through it.
	container.Settings = NewSettingsService(repos.SettingsRepo, options...)

	container.Owner = NewOwnerService(repos.OwnerRepo, options...)
	container.Receipt = NewReceiptService(repos.ReceiptRepo, repos.OwnerRepo, repos.DepositRepo, container.Settings, options...)
	container.Deposit = NewDepositService(repos.OwnerRepo, repos.DepositRepo, options...)
	container.CreditPayment = NewCreditPaymentService(repos.ReceiptRepo, repos.CreditPaymentRepo, options...)
	container.Reporting = NewReportingService(repos.ReportingRepo, container.Settings, options...)
	container.Auth = NewAuthService(cfg, options...)

	return container
}

// Helper to check interface implementations at compile time
var (
	_ portssvc.ReceiptSvcFacade       = (*receiptService)(nil)
	_ portssvc.OwnerSvcFacade         = (*ownerService)(nil)
	_ portssvc.DepositSvcFacade       = (*depositService)(nil)
	_ portssvc.CreditPaymentSvcFacade = (*creditPaymentService)(nil)
	_ portssvc.SettingsSvcFacade      = (*settingsService)(nil)
	_ portssvc.ReportingService       = (*reportingService)(nil)
	_ portssvc.AuthSvcFacade          = (*authService)(nil)
)
