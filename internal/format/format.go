// Package format holds the display helpers shared by score
// explanations, the API and the CLI report.
package format

import (
	"fmt"
	"strings"
)

// Currency renders a dollar amount in compact form: $1.2B, $3.4M, $150K,
// or the exact value below a thousand.
func Currency(amount int64) string {
	abs := amount
	if abs < 0 {
		abs = -abs
	}
	switch {
	case abs >= 1_000_000_000:
		return fmt.Sprintf("$%.1fB", float64(amount)/1_000_000_000)
	case abs >= 1_000_000:
		return fmt.Sprintf("$%.1fM", float64(amount)/1_000_000)
	case abs >= 1_000:
		return fmt.Sprintf("$%.0fK", float64(amount)/1_000)
	default:
		return fmt.Sprintf("$%d", amount)
	}
}

// CurrencyFull renders a dollar amount with thousands separators and no
// fractional part, e.g. $1,250,000.
func CurrencyFull(amount int64) string {
	neg := amount < 0
	if neg {
		amount = -amount
	}
	s := fmt.Sprintf("%d", amount)
	var b strings.Builder
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	if neg {
		return "-$" + b.String()
	}
	return "$" + b.String()
}

// EIN renders a 9-digit EIN as NN-NNNNNNN. Anything that is not nine
// digits after stripping dashes is returned as-is.
func EIN(ein string) string {
	s := strings.ReplaceAll(ein, "-", "")
	if len(s) != 9 {
		return s
	}
	return s[:2] + "-" + s[2:]
}

var monthNames = []string{
	"", "Jan", "Feb", "Mar", "Apr", "May", "Jun",
	"Jul", "Aug", "Sep", "Oct", "Nov", "Dec",
}

// TaxPeriod renders a YYYYMM tax period as "Dec 2023".
func TaxPeriod(period int) string {
	s := fmt.Sprintf("%d", period)
	if len(s) != 6 {
		return s
	}
	var month int
	fmt.Sscanf(s[4:6], "%d", &month)
	if month < 1 || month > 12 {
		return s[4:6] + " " + s[:4]
	}
	return monthNames[month] + " " + s[:4]
}

// FormTypeName maps the registry form-type discriminator to its IRS
// form name.
func FormTypeName(formType int) string {
	switch formType {
	case 0:
		return "990"
	case 1:
		return "990-EZ"
	case 2:
		return "990-PF"
	default:
		return "Unknown"
	}
}
