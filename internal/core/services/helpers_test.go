package services_test

import (
	"sync"
	"testing"

	"github.com/SscSPs/quarry_billing_app/internal/core/domain"
	"github.com/SscSPs/quarry_billing_app/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func dec(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

func decPtr(v string) *decimal.Decimal {
	d := dec(v)
	return &d
}

func amt(v string) dto.Amount {
	return dto.NewAmount(dec(v))
}

func amtPtr(v string) *dto.Amount {
	a := amt(v)
	return &a
}

func strPtr(s string) *string {
	return &s
}

func assertDec(t *testing.T, expected string, actual decimal.Decimal, msgAndArgs ...any) {
	t.Helper()
	assert.Truef(t, dec(expected).Equal(actual), "expected %s, got %s %v", expected, actual, msgAndArgs)
}

// recordingMetrics captures ledger events instead of exporting them.
type recordingMetrics struct {
	mu        sync.Mutex
	receipts  map[domain.PaymentMethod]int
	deposits  map[domain.DepositTxnType]decimal.Decimal
	conflicts map[string]int
}

func newRecordingMetrics() *recordingMetrics {
	return &recordingMetrics{
		receipts:  map[domain.PaymentMethod]int{},
		deposits:  map[domain.DepositTxnType]decimal.Decimal{},
		conflicts: map[string]int{},
	}
}

func (m *recordingMetrics) ReceiptCreated(method domain.PaymentMethod, ownerType domain.OwnerType) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.receipts[method]++
}

func (m *recordingMetrics) DepositMoved(txnType domain.DepositTxnType, amount decimal.Decimal) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deposits[txnType] = m.deposits[txnType].Add(amount)
}

func (m *recordingMetrics) ConflictRetried(operation string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.conflicts[operation]++
}

func (m *recordingMetrics) conflictCount(operation string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.conflicts[operation]
}
