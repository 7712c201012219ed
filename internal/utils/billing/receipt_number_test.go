package billing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatReceiptNo(t *testing.T) {
	assert.Equal(t, "RCP0001", FormatReceiptNo("RCP", 1))
	assert.Equal(t, "RCP0042", FormatReceiptNo("RCP", 42))
	assert.Equal(t, "RCP12345", FormatReceiptNo("RCP", 12345))
	assert.Equal(t, "0007", FormatReceiptNo("", 7))
}

func TestTrailingNumber(t *testing.T) {
	n, ok := TrailingNumber("RCP0042")
	assert.True(t, ok)
	assert.Equal(t, int64(42), n)

	n, ok = TrailingNumber("GP-2024-117")
	assert.True(t, ok)
	assert.Equal(t, int64(117), n)

	_, ok = TrailingNumber("MANUAL")
	assert.False(t, ok)

	n, ok = TrailingNumber("GP999999999999999999")
	assert.True(t, ok)
	assert.Equal(t, MaxReceiptNumber, n)

	_, ok = TrailingNumber("RCP1000000000000000000")
	assert.False(t, ok, "runs longer than the scan width are not receipt numbers")
}

func TestValidateReceiptNo(t *testing.T) {
	tests := []struct {
		receiptNo string
		wantErr   bool
	}{
		{"BOOK-500", false},
		{"MANUAL", false},
		{"GP999999999999999998", false},
		{"GP999999999999999999", true},
		{"GP1000000000000000000", true},
		{"0000000000000000000001", true},
	}
	for _, tt := range tests {
		t.Run(tt.receiptNo, func(t *testing.T) {
			err := ValidateReceiptNo(tt.receiptNo)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestNextReceiptNumber(t *testing.T) {
	assert.Equal(t, int64(1), NextReceiptNumber(nil, 1))
	assert.Equal(t, int64(1001), NextReceiptNumber(nil, 1001))
	assert.Equal(t, int64(1), NextReceiptNumber(nil, 0))

	highest := int64(41)
	assert.Equal(t, int64(42), NextReceiptNumber(&highest, 1001))
}

func TestNormalizeReceiptNo(t *testing.T) {
	assert.Equal(t, "", NormalizeReceiptNo(nil))
	raw := "  RCP0009 "
	assert.Equal(t, "RCP0009", NormalizeReceiptNo(&raw))
}
