package billing

import (
	"strings"

	"github.com/SscSPs/quarry_billing_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// Split is the canonical breakdown of a receipt's total.
type Split struct {
	MaterialCost    decimal.Decimal
	TotalAmount     decimal.Decimal
	CashPaid        decimal.Decimal
	DepositDeducted decimal.Decimal
	CreditAmount    decimal.Decimal
	Status          domain.PaymentStatus
}

// CalculateSplit computes total, credit and status for a receipt.
// Material cost and total are rounded to paise before credit is derived, so
// cash, deposit and credit add up to the stored total exactly.
// Credit may come out negative when more was paid than billed.
func CalculateSplit(qty, rate, loadingCharge, cashPaid, depositDeducted decimal.Decimal) Split {
	material := RoundMoney(qty.Mul(rate))
	total := RoundMoney(material.Add(loadingCharge))
	credit := total.Sub(cashPaid).Sub(depositDeducted)

	return Split{
		MaterialCost:    material,
		TotalAmount:     total,
		CashPaid:        cashPaid,
		DepositDeducted: depositDeducted,
		CreditAmount:    credit,
		Status:          PaymentStatusFor(total, cashPaid.Add(depositDeducted)),
	}
}

// PaymentStatusFor classifies how much of total has been covered by paid.
func PaymentStatusFor(total, paid decimal.Decimal) domain.PaymentStatus {
	switch {
	case paid.GreaterThanOrEqual(total):
		return domain.StatusPaid
	case paid.IsPositive():
		return domain.StatusPartial
	default:
		return domain.StatusUnpaid
	}
}

// InferPaymentMethod guesses the payment method when the caller left it out.
func InferPaymentMethod(total, cashPaid, depositRequested decimal.Decimal) domain.PaymentMethod {
	switch {
	case depositRequested.IsPositive():
		return domain.PaymentDeposit
	case cashPaid.GreaterThanOrEqual(total):
		return domain.PaymentCash
	default:
		return domain.PaymentCredit
	}
}

// CapDeduction bounds a requested deposit deduction by the available balance
// and by the bill. A non-positive cap (no bill limit) is ignored.
func CapDeduction(requested, balance, billCap decimal.Decimal) decimal.Decimal {
	actual := decimal.Min(requested, balance)
	if billCap.IsPositive() {
		actual = decimal.Min(actual, billCap)
	}
	if actual.IsNegative() {
		return decimal.Zero
	}
	return actual
}

// ParseAmount reads a form amount. Anything that is not a number counts as zero.
func ParseAmount(raw string) decimal.Decimal {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero
	}
	return d
}
