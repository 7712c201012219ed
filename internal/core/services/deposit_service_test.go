package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/quarry_billing_app/internal/apperrors"
	"github.com/SscSPs/quarry_billing_app/internal/core/domain"
	portssvc "github.com/SscSPs/quarry_billing_app/internal/core/ports/services"
	"github.com/SscSPs/quarry_billing_app/internal/core/services"
	"github.com/SscSPs/quarry_billing_app/internal/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type DepositServiceTestSuite struct {
	suite.Suite
	store   *fakeStore
	metrics *recordingMetrics
	service portssvc.DepositSvcFacade
	owner   domain.TruckOwner
	ctx     context.Context
}

func (s *DepositServiceTestSuite) SetupTest() {
	s.store = newFakeStore()
	s.metrics = newRecordingMetrics()
	now := time.Date(2025, 3, 14, 10, 30, 0, 0, time.UTC)
	s.service = services.NewDepositService(s.store, s.store,
		services.WithClock(func() time.Time { return now }),
		services.WithLedgerMetrics(s.metrics))
	s.owner = s.store.addOwner(domain.TruckOwner{Name: "Deposit Owner"})
	s.ctx = context.Background()
}

func TestDepositService(t *testing.T) {
	suite.Run(t, new(DepositServiceTestSuite))
}

func (s *DepositServiceTestSuite) record(txnType domain.DepositTxnType, amount string) (*domain.DepositTransaction, error) {
	return s.service.RecordDepositTransaction(s.ctx, "Deposit Owner",
		dto.RecordDepositRequest{Type: txnType, Amount: dec(amount)}, "user-1")
}

func (s *DepositServiceTestSuite) TestAddThenDeduct() {
	added, err := s.record(domain.DepositAdd, "1500")
	s.Require().NoError(err)
	assertDec(s.T(), "0", added.PreviousBalance)
	assertDec(s.T(), "1500", added.NewBalance)
	s.Nil(added.ReceiptNo)
	s.Equal("user-1", added.CreatedBy)

	deducted, err := s.record(domain.DepositDeduct, "400")
	s.Require().NoError(err)
	assertDec(s.T(), "1500", deducted.PreviousBalance)
	assertDec(s.T(), "1100", deducted.NewBalance)

	stored, _ := s.store.ownerNamed("Deposit Owner")
	assertDec(s.T(), "1100", stored.DepositBalance)
	assertDec(s.T(), "1500", s.metrics.deposits[domain.DepositAdd])
	assertDec(s.T(), "400", s.metrics.deposits[domain.DepositDeduct])
}

func (s *DepositServiceTestSuite) TestDeductCappedByBalance() {
	_, err := s.record(domain.DepositAdd, "250")
	s.Require().NoError(err)

	entry, err := s.record(domain.DepositDeduct, "1000")

	s.Require().NoError(err)
	assertDec(s.T(), "250", entry.Amount)
	assertDec(s.T(), "0", entry.NewBalance)
}

func (s *DepositServiceTestSuite) TestDeductFromEmptyBalanceRejected() {
	_, err := s.record(domain.DepositDeduct, "100")

	s.ErrorIs(err, apperrors.ErrValidation)
	s.Empty(s.store.depositEntries(s.owner.OwnerID))
}

func (s *DepositServiceTestSuite) TestRejectsBadInput() {
	tests := []struct {
		name  string
		owner string
		req   dto.RecordDepositRequest
	}{
		{"blank owner", " ", dto.RecordDepositRequest{Type: domain.DepositAdd, Amount: dec("10")}},
		{"unknown type", "Deposit Owner", dto.RecordDepositRequest{Type: "refund", Amount: dec("10")}},
		{"zero amount", "Deposit Owner", dto.RecordDepositRequest{Type: domain.DepositAdd, Amount: dec("0")}},
		{"negative amount", "Deposit Owner", dto.RecordDepositRequest{Type: domain.DepositAdd, Amount: dec("-10")}},
		{"fraction of a paisa", "Deposit Owner", dto.RecordDepositRequest{Type: domain.DepositAdd, Amount: dec("10.005")}},
		{"unknown owner", "Nobody", dto.RecordDepositRequest{Type: domain.DepositAdd, Amount: dec("10")}},
	}
	for _, tc := range tests {
		s.Run(tc.name, func() {
			_, err := s.service.RecordDepositTransaction(s.ctx, tc.owner, tc.req, "user-1")
			s.ErrorIs(err, apperrors.ErrValidation)
		})
	}
	s.Empty(s.store.depositEntries(s.owner.OwnerID))
}

func (s *DepositServiceTestSuite) TestInactiveOwnerRejected() {
	s.Require().NoError(s.store.DeactivateOwner(s.ctx, s.owner.OwnerID, "user-1", time.Now()))

	_, err := s.record(domain.DepositAdd, "100")

	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *DepositServiceTestSuite) TestReceiptLinkAndNotes() {
	entry, err := s.service.RecordDepositTransaction(s.ctx, "Deposit Owner", dto.RecordDepositRequest{
		Type:      domain.DepositAdd,
		Amount:    dec("100"),
		ReceiptNo: strPtr(" RCP0009 "),
		Notes:     " advance ",
	}, "user-1")

	s.Require().NoError(err)
	s.Require().NotNil(entry.ReceiptNo)
	s.Equal("RCP0009", *entry.ReceiptNo)
	s.Equal("advance", entry.Notes)
}

func (s *DepositServiceTestSuite) TestHistoryAndVerification() {
	for _, step := range []struct {
		t domain.DepositTxnType
		a string
	}{
		{domain.DepositAdd, "1000"},
		{domain.DepositDeduct, "300"},
		{domain.DepositAdd, "50.50"},
		{domain.DepositDeduct, "2000"},
		{domain.DepositAdd, "10"},
	} {
		_, err := s.record(step.t, step.a)
		s.Require().NoError(err)
	}

	owner, entries, err := s.service.ListDepositTransactions(s.ctx, "Deposit Owner")
	s.Require().NoError(err)
	s.Len(entries, 5)
	assertDec(s.T(), "10", owner.DepositBalance)
	assertDec(s.T(), owner.DepositBalance.String(), entries[len(entries)-1].NewBalance)

	check, err := s.service.VerifyDepositBalance(s.ctx, "Deposit Owner")
	s.Require().NoError(err)
	s.True(check.Consistent)
	s.Equal(5, check.EntryCount)
	assertDec(s.T(), "10", check.ReplayedBalance)
}

func (s *DepositServiceTestSuite) TestVerificationDetectsDrift() {
	_, err := s.record(domain.DepositAdd, "500")
	s.Require().NoError(err)

	// balance changed without a ledger entry
	s.store.mu.Lock()
	o := s.store.owners[s.owner.OwnerID]
	o.DepositBalance = dec("700")
	s.store.owners[s.owner.OwnerID] = o
	s.store.mu.Unlock()

	check, err := s.service.VerifyDepositBalance(s.ctx, "Deposit Owner")
	s.Require().NoError(err)
	s.False(check.Consistent)
	assertDec(s.T(), "700", check.StoredBalance)
	assertDec(s.T(), "500", check.ReplayedBalance)
}

func (s *DepositServiceTestSuite) TestListUnknownOwner() {
	_, _, err := s.service.ListDepositTransactions(s.ctx, "Nobody")
	s.ErrorIs(err, apperrors.ErrNotFound)
}

func TestReplayDepositLedger(t *testing.T) {
	good := []domain.DepositTransaction{
		{Type: domain.DepositAdd, Amount: dec("100"), PreviousBalance: dec("0"), NewBalance: dec("100")},
		{Type: domain.DepositDeduct, Amount: dec("40"), PreviousBalance: dec("100"), NewBalance: dec("60")},
	}
	balance, chained := services.ReplayDepositLedger(good)
	assert.True(t, chained)
	assertDec(t, "60", balance)

	broken := append([]domain.DepositTransaction{}, good...)
	broken[1].PreviousBalance = dec("90")
	broken[1].NewBalance = dec("50")
	_, chained = services.ReplayDepositLedger(broken)
	assert.False(t, chained)

	balance, chained = services.ReplayDepositLedger(nil)
	assert.True(t, chained)
	assert.True(t, balance.IsZero())
}
