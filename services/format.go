package services

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// IPINotApplicable is the token shown (and matched by the IPI filter) for a
// product without IPI.
const IPINotApplicable = "N/A"

// FormatBRL formats an amount as Brazilian Real the way the pt-BR locale does:
// "R$" prefix, a no-break space, "." thousands separators and "," before
// exactly 2 decimal places (e.g., R$ 1.234,56). Rounding is half away from
// zero.
func FormatBRL(amount decimal.Decimal) string {
	raw := amount.Abs().StringFixed(2)

	// Split into integer and decimal parts.
	parts := strings.SplitN(raw, ".", 2)
	intPart := parts[0]
	decPart := parts[1]

	result := "R$\u00a0" + applyThousandsGrouping(intPart) + "," + decPart
	if amount.IsNegative() && raw != "0.00" {
		result = "-" + result
	}
	return result
}

// applyThousandsGrouping inserts "." between every group of 3 digits,
// counting from the right.
func applyThousandsGrouping(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}

	var b strings.Builder
	lead := n % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < n; i += 3 {
		if b.Len() > 0 {
			b.WriteByte('.')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}

// FormatPercent renders a percentage with 2 decimals and a "%" suffix, as
// the calculator results do (e.g., 20.00%).
func FormatPercent(p decimal.Decimal) string {
	return p.StringFixed(2) + "%"
}

// FormatIPI renders an IPI value for the product table: "5%", "0%" or N/A.
func FormatIPI(ipi decimal.NullDecimal) string {
	if !ipi.Valid {
		return IPINotApplicable
	}
	return ipi.Decimal.String() + "%"
}

// FormatDateBR renders a calendar date as dd/mm/yyyy.
func FormatDateBR(t time.Time) string {
	return t.Format("02/01/2006")
}

// maxDecimalDigits bounds the digits ParseDecimal accepts, so a stored amount
// always formats in constant time.
const maxDecimalDigits = 40

// ParseDecimal parses user input into a decimal. Both "." and "," are
// accepted as decimal separators; when a "," is present any "." is treated
// as a thousands separator (1.234,56). The second return value is false for
// blank or non-numeric input, exponent notation, or more than
// maxDecimalDigits digits.
func ParseDecimal(s string) (decimal.Decimal, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, false
	}
	if strings.Contains(s, ",") {
		s = strings.ReplaceAll(s, ".", "")
		s = strings.ReplaceAll(s, ",", ".")
	}
	if !isPlainDecimal(s) {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

// isPlainDecimal reports whether s is an optionally signed number in
// positional notation with at most maxDecimalDigits digits.
func isPlainDecimal(s string) bool {
	if s != "" && (s[0] == '-' || s[0] == '+') {
		s = s[1:]
	}
	digits, dots := 0, 0
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
			digits++
		case r == '.':
			dots++
		default:
			return false
		}
	}
	return digits > 0 && digits <= maxDecimalDigits && dots <= 1
}

// ParseNullDecimal is ParseDecimal returning a NullDecimal that is invalid
// for blank or non-numeric input.
func ParseNullDecimal(s string) decimal.NullDecimal {
	d, ok := ParseDecimal(s)
	return decimal.NullDecimal{Decimal: d, Valid: ok}
}
