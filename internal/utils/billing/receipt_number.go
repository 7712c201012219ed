package billing

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	// minReceiptDigits is the zero padding applied to generated receipt numbers.
	minReceiptDigits = 4
	// MaxReceiptDigits is the longest trailing digit run read back as a
	// receipt number. Longer runs are ignored by numbering.
	MaxReceiptDigits = 18
	// MaxReceiptNumber is the highest number numbering can issue.
	MaxReceiptNumber int64 = 999_999_999_999_999_999
)

// FormatReceiptNo renders a generated receipt number, e.g. RCP0042.
func FormatReceiptNo(prefix string, n int64) string {
	return fmt.Sprintf("%s%0*d", prefix, minReceiptDigits, n)
}

// TrailingNumber extracts the trailing digits of a receipt number. A run
// longer than MaxReceiptDigits is not a receipt number.
func TrailingNumber(receiptNo string) (int64, bool) {
	i := len(receiptNo)
	for i > 0 && receiptNo[i-1] >= '0' && receiptNo[i-1] <= '9' {
		i--
	}
	if run := len(receiptNo) - i; run == 0 || run > MaxReceiptDigits {
		return 0, false
	}
	n, err := strconv.ParseInt(receiptNo[i:], 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// ValidateReceiptNo rejects a caller-supplied number that numbering could not
// continue from: a trailing digit run that is too long, or one already at
// the highest issuable number.
func ValidateReceiptNo(receiptNo string) error {
	i := len(receiptNo)
	for i > 0 && receiptNo[i-1] >= '0' && receiptNo[i-1] <= '9' {
		i--
	}
	if len(receiptNo)-i > MaxReceiptDigits {
		return fmt.Errorf("receipt number %q ends in more than %d digits", receiptNo, MaxReceiptDigits)
	}
	if n, ok := TrailingNumber(receiptNo); ok && n >= MaxReceiptNumber {
		return fmt.Errorf("receipt number %q is past the highest issuable number", receiptNo)
	}
	return nil
}

// NextReceiptNumber returns the number following the highest one issued, or
// start when nothing has been issued yet.
func NextReceiptNumber(highest *int64, start int64) int64 {
	if highest == nil {
		if start < 1 {
			return 1
		}
		return start
	}
	return *highest + 1
}

// NormalizeReceiptNo trims a caller-supplied receipt number; empty means "generate one".
func NormalizeReceiptNo(raw *string) string {
	if raw == nil {
		return ""
	}
	return strings.TrimSpace(*raw)
}
