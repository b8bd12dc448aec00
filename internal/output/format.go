package output

import (
	"strings"

	"github.com/shopspring/decimal"
)

// CurrencyCode is appended by FormatCurrency
const CurrencyCode = "KRW"

var hundred = decimal.NewFromInt(100)

// FormatAmount rounds to whole currency units (half to even) and groups thousands: 8,660,899
func FormatAmount(amount decimal.Decimal) string {
	digits := amount.RoundBank(0).Abs().StringFixed(0)

	var sb strings.Builder
	if amount.RoundBank(0).IsNegative() {
		sb.WriteByte('-')
	}
	lead := len(digits) % 3
	if lead == 0 {
		lead = 3
	}
	sb.WriteString(digits[:lead])
	for i := lead; i < len(digits); i += 3 {
		sb.WriteByte(',')
		sb.WriteString(digits[i : i+3])
	}
	return sb.String()
}

// FormatSignedAmount is FormatAmount with an explicit plus sign for positive values
func FormatSignedAmount(amount decimal.Decimal) string {
	if amount.RoundBank(0).IsPositive() {
		return "+" + FormatAmount(amount)
	}
	return FormatAmount(amount)
}

// FormatCurrency formats a decimal as currency
func FormatCurrency(amount decimal.Decimal) string {
	return FormatAmount(amount) + " " + CurrencyCode
}

// FormatPercent formats a fractional rate as a percentage with the given precision: 0.034 -> 3.4%
func FormatPercent(rate decimal.Decimal, places int32) string {
	return rate.Mul(hundred).StringFixed(places) + "%"
}
