package dto

import (
	"bytes"
	"strconv"

	"github.com/SscSPs/quarry_billing_app/internal/utils/billing"
	"github.com/shopspring/decimal"
)

// Amount is a money or quantity value read permissively from the gate form.
// It accepts JSON numbers and numeric strings; anything else becomes zero.
type Amount struct {
	decimal.Decimal
}

// NewAmount wraps a decimal.
func NewAmount(d decimal.Decimal) Amount {
	return Amount{Decimal: d}
}

// UnmarshalJSON implements json.Unmarshaler.
func (a *Amount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		a.Decimal = decimal.Zero
		return nil
	}
	raw := string(data)
	if unquoted, err := strconv.Unquote(raw); err == nil {
		raw = unquoted
	}
	a.Decimal = billing.ParseAmount(raw)
	return nil
}

// Dec returns the underlying decimal, zero for a nil pointer.
func (a *Amount) Dec() decimal.Decimal {
	if a == nil {
		return decimal.Zero
	}
	return a.Decimal
}

// DecimalPtr returns a pointer to the underlying decimal, nil for a nil pointer.
func (a *Amount) DecimalPtr() *decimal.Decimal {
	if a == nil {
		return nil
	}
	d := a.Decimal
	return &d
}
