package billing

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Column scales of the money and quantity columns. Every value written to
// the ledger is already at these scales so what is returned is what is stored.
const (
	MoneyScale    int32 = 2
	QuantityScale int32 = 3
)

// RoundMoney rounds half away from zero to paise, the same way the
// database rounds a NUMERIC(14,2) column.
func RoundMoney(d decimal.Decimal) decimal.Decimal {
	return d.Round(MoneyScale)
}

// FitsScale reports whether d has no more than places fractional digits.
// Trailing zeros do not count.
func FitsScale(d decimal.Decimal, places int32) bool {
	return d.Equal(d.Truncate(places))
}

// CheckMoney returns a problem description when d carries more than paise.
func CheckMoney(field string, d decimal.Decimal) error {
	if !FitsScale(d, MoneyScale) {
		return fmt.Errorf("%s %s has more than %d decimal places", field, d, MoneyScale)
	}
	return nil
}

// CheckQuantity is CheckMoney for brass quantities.
func CheckQuantity(field string, d decimal.Decimal) error {
	if !FitsScale(d, QuantityScale) {
		return fmt.Errorf("%s %s has more than %d decimal places", field, d, QuantityScale)
	}
	return nil
}
