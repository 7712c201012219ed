package handlers_test

import (
	"context"
	"time"

	"github.com/SscSPs/quarry_billing_app/internal/core/domain"
	portssvc "github.com/SscSPs/quarry_billing_app/internal/core/ports/services"
	"github.com/SscSPs/quarry_billing_app/internal/dto"
	"github.com/stretchr/testify/mock"
)

// --- Mock ReceiptService ---
type MockReceiptService struct {
	mock.Mock
}

func (m *MockReceiptService) GetReceiptByID(ctx context.Context, receiptID string) (*domain.Receipt, error) {
	args := m.Called(ctx, receiptID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Receipt), args.Error(1)
}
func (m *MockReceiptService) ListReceipts(ctx context.Context, params dto.ListReceiptsParams) ([]domain.Receipt, *string, error) {
	args := m.Called(ctx, params)
	var next *string
	if args.Get(1) != nil {
		next = args.Get(1).(*string)
	}
	if args.Get(0) == nil {
		return nil, next, args.Error(2)
	}
	return args.Get(0).([]domain.Receipt), next, args.Error(2)
}
func (m *MockReceiptService) CreateReceipt(ctx context.Context, req dto.CreateReceiptRequest, userID string) (*domain.Receipt, error) {
	args := m.Called(ctx, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Receipt), args.Error(1)
}
func (m *MockReceiptService) UpdateReceiptPayment(ctx context.Context, receiptID string, req dto.UpdateReceiptPaymentRequest, userID string) (*domain.Receipt, error) {
	args := m.Called(ctx, receiptID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Receipt), args.Error(1)
}
func (m *MockReceiptService) DeactivateReceipt(ctx context.Context, receiptID string, userID string) error {
	args := m.Called(ctx, receiptID, userID)
	return args.Error(0)
}

var _ portssvc.ReceiptSvcFacade = (*MockReceiptService)(nil)

// --- Mock OwnerService ---
type MockOwnerService struct {
	mock.Mock
}

func (m *MockOwnerService) GetOwnerByName(ctx context.Context, name string) (*domain.TruckOwner, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TruckOwner), args.Error(1)
}
func (m *MockOwnerService) ListOwners(ctx context.Context, params dto.ListOwnersParams) ([]domain.TruckOwner, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TruckOwner), args.Error(1)
}
func (m *MockOwnerService) CreateOwner(ctx context.Context, req dto.CreateOwnerRequest, userID string) (*domain.TruckOwner, error) {
	args := m.Called(ctx, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TruckOwner), args.Error(1)
}
func (m *MockOwnerService) UpdateOwner(ctx context.Context, name string, req dto.UpdateOwnerRequest, userID string) (*domain.TruckOwner, error) {
	args := m.Called(ctx, name, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TruckOwner), args.Error(1)
}
func (m *MockOwnerService) DeactivateOwner(ctx context.Context, name string, userID string) error {
	args := m.Called(ctx, name, userID)
	return args.Error(0)
}

var _ portssvc.OwnerSvcFacade = (*MockOwnerService)(nil)

// --- Mock DepositService ---
type MockDepositService struct {
	mock.Mock
}

func (m *MockDepositService) RecordDepositTransaction(ctx context.Context, ownerName string, req dto.RecordDepositRequest, userID string) (*domain.DepositTransaction, error) {
	args := m.Called(ctx, ownerName, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DepositTransaction), args.Error(1)
}
func (m *MockDepositService) ListDepositTransactions(ctx context.Context, ownerName string) (*domain.TruckOwner, []domain.DepositTransaction, error) {
	args := m.Called(ctx, ownerName)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*domain.TruckOwner), args.Get(1).([]domain.DepositTransaction), args.Error(2)
}
func (m *MockDepositService) VerifyDepositBalance(ctx context.Context, ownerName string) (*domain.DepositBalanceCheck, error) {
	args := m.Called(ctx, ownerName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DepositBalanceCheck), args.Error(1)
}

var _ portssvc.DepositSvcFacade = (*MockDepositService)(nil)

// --- Mock CreditPaymentService ---
type MockCreditPaymentService struct {
	mock.Mock
}

func (m *MockCreditPaymentService) RecordCreditPayment(ctx context.Context, receiptID string, req dto.RecordCreditPaymentRequest, userID string) (*domain.CreditPayment, error) {
	args := m.Called(ctx, receiptID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CreditPayment), args.Error(1)
}
func (m *MockCreditPaymentService) ListCreditPayments(ctx context.Context, receiptID string) ([]domain.CreditPayment, error) {
	args := m.Called(ctx, receiptID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CreditPayment), args.Error(1)
}

var _ portssvc.CreditPaymentSvcFacade = (*MockCreditPaymentService)(nil)

// --- Mock SettingsService ---
type MockSettingsService struct {
	mock.Mock
}

func (m *MockSettingsService) GetBillingSettings(ctx context.Context) (domain.BillingSettings, error) {
	args := m.Called(ctx)
	return args.Get(0).(domain.BillingSettings), args.Error(1)
}
func (m *MockSettingsService) ListSettings(ctx context.Context, category string) ([]domain.Setting, error) {
	args := m.Called(ctx, category)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Setting), args.Error(1)
}
func (m *MockSettingsService) UpdateSetting(ctx context.Context, key string, req dto.UpdateSettingRequest, userID string) (*domain.Setting, error) {
	args := m.Called(ctx, key, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Setting), args.Error(1)
}

var _ portssvc.SettingsSvcFacade = (*MockSettingsService)(nil)

// --- Mock ReportingService ---
type MockReportingService struct {
	mock.Mock
}

func (m *MockReportingService) FinancialSummary(ctx context.Context, from, to time.Time) (*domain.FinancialSummary, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FinancialSummary), args.Error(1)
}
func (m *MockReportingService) CreditAging(ctx context.Context, asOf time.Time) ([]domain.CreditAgingRow, error) {
	args := m.Called(ctx, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CreditAgingRow), args.Error(1)
}
func (m *MockReportingService) PartnerSummary(ctx context.Context, from, to time.Time) ([]domain.PartnerSummaryRow, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PartnerSummaryRow), args.Error(1)
}

var _ portssvc.ReportingService = (*MockReportingService)(nil)

// --- Mock AuthService ---
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Login(ctx context.Context, username, password string) (string, time.Time, error) {
	args := m.Called(ctx, username, password)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

var _ portssvc.AuthSvcFacade = (*MockAuthService)(nil)
