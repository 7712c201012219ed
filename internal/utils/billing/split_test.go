package billing

import (
	"testing"

	"github.com/SscSPs/quarry_billing_app/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestCalculateSplit(t *testing.T) {
	tests := []struct {
		name       string
		qty        decimal.Decimal
		rate       decimal.Decimal
		loading    decimal.Decimal
		cash       decimal.Decimal
		deposit    decimal.Decimal
		wantTotal  decimal.Decimal
		wantCredit decimal.Decimal
		wantStatus domain.PaymentStatus
	}{
		{
			name: "fully paid in cash", qty: dec(2), rate: dec(1200), loading: dec(150), cash: dec(2550),
			wantTotal: dec(2550), wantCredit: dec(0), wantStatus: domain.StatusPaid,
		},
		{
			name: "partner partial payment", qty: dec(1), rate: dec(1000), loading: dec(150), cash: dec(500),
			wantTotal: dec(1150), wantCredit: dec(650), wantStatus: domain.StatusPartial,
		},
		{
			name: "nothing paid", qty: dec(3), rate: dec(1000), loading: dec(0),
			wantTotal: dec(3000), wantCredit: dec(3000), wantStatus: domain.StatusUnpaid,
		},
		{
			name: "deposit plus cash", qty: dec(1), rate: dec(850), loading: dec(150), cash: dec(200), deposit: dec(300),
			wantTotal: dec(1000), wantCredit: dec(500), wantStatus: domain.StatusPartial,
		},
		{
			name: "overpayment leaves negative credit", qty: dec(1), rate: dec(1000), cash: dec(1200),
			wantTotal: dec(1000), wantCredit: dec(-200), wantStatus: domain.StatusPaid,
		},
		{
			name: "fractional quantity", qty: decimal.RequireFromString("1.5"), rate: dec(1200), loading: dec(100), cash: dec(1900),
			wantTotal: dec(1900), wantCredit: dec(0), wantStatus: domain.StatusPaid,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateSplit(tt.qty, tt.rate, tt.loading, tt.cash, tt.deposit)
			assert.True(t, tt.wantTotal.Equal(got.TotalAmount), "total: want %s got %s", tt.wantTotal, got.TotalAmount)
			assert.True(t, tt.wantCredit.Equal(got.CreditAmount), "credit: want %s got %s", tt.wantCredit, got.CreditAmount)
			assert.Equal(t, tt.wantStatus, got.Status)
			assert.True(t, got.CashPaid.Add(got.DepositDeducted).Add(got.CreditAmount).Equal(got.TotalAmount),
				"split must add up to total")
		})
	}
}

func TestCalculateSplit_InvariantHoldsAcrossInputs(t *testing.T) {
	for qty := int64(1); qty <= 5; qty++ {
		for _, rate := range []int64{700, 1000, 1333} {
			for _, loading := range []int64{0, 150, 275} {
				for _, cash := range []int64{0, 499, 1000, 9000} {
					for _, deposit := range []int64{0, 300} {
						s := CalculateSplit(dec(qty), dec(rate), dec(loading), dec(cash), dec(deposit))
						assert.True(t, s.CashPaid.Add(s.DepositDeducted).Add(s.CreditAmount).Equal(s.TotalAmount))
					}
				}
			}
		}
	}
}

func TestInferPaymentMethod(t *testing.T) {
	assert.Equal(t, domain.PaymentDeposit, InferPaymentMethod(dec(1000), dec(0), dec(200)))
	assert.Equal(t, domain.PaymentCash, InferPaymentMethod(dec(1000), dec(1000), dec(0)))
	assert.Equal(t, domain.PaymentCredit, InferPaymentMethod(dec(1000), dec(400), dec(0)))
}

func TestCapDeduction(t *testing.T) {
	tests := []struct {
		name      string
		requested decimal.Decimal
		balance   decimal.Decimal
		billCap   decimal.Decimal
		want      decimal.Decimal
	}{
		{"capped by balance", dec(500), dec(300), dec(1000), dec(300)},
		{"capped by bill", dec(5000), dec(8000), dec(1150), dec(1150)},
		{"within both", dec(400), dec(800), dec(1000), dec(400)},
		{"empty balance", dec(400), dec(0), dec(1000), dec(0)},
		{"no bill cap", dec(400), dec(300), dec(0), dec(300)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CapDeduction(tt.requested, tt.balance, tt.billCap)
			assert.True(t, tt.want.Equal(got), "want %s got %s", tt.want, got)
			assert.True(t, got.LessThanOrEqual(tt.balance))
		})
	}
}

func TestParseAmount(t *testing.T) {
	assert.True(t, dec(150).Equal(ParseAmount("150")))
	assert.True(t, decimal.RequireFromString("12.5").Equal(ParseAmount(" 12.5 ")))
	assert.True(t, ParseAmount("abc").IsZero())
	assert.True(t, ParseAmount("").IsZero())
}

func TestCalculateSplit_RoundsTotalToPaise(t *testing.T) {
	qty := decimal.RequireFromString("1.125")
	rate := decimal.RequireFromString("1000.20")

	overpaid := CalculateSplit(qty, rate, decimal.Zero, dec(1200), decimal.Zero)
	assert.Equal(t, "1125.23", overpaid.TotalAmount.StringFixed(2))
	assert.Equal(t, "-74.77", overpaid.CreditAmount.StringFixed(2))
	assert.True(t, FitsScale(overpaid.TotalAmount, MoneyScale))
	assert.True(t, overpaid.CashPaid.Add(overpaid.CreditAmount).Equal(overpaid.TotalAmount))

	fromDeposit := CalculateSplit(qty, rate, decimal.Zero, decimal.Zero, decimal.RequireFromString("1125.23"))
	assert.True(t, fromDeposit.CreditAmount.IsZero())
	assert.Equal(t, domain.StatusPaid, fromDeposit.Status)
}
