package output

import (
	"strings"

	"github.com/shopspring/decimal"
)

var (
	hundred = decimal.NewFromInt(100)
	lakh    = decimal.NewFromInt(100000)
	crore   = decimal.NewFromInt(10000000)
)

// FormatCurrency formats a decimal as rupees with Indian digit grouping
// (##,##,###.##). Negative amounts get a leading minus: -₹1,000.00.
func FormatCurrency(amount decimal.Decimal) string {
	s := amount.Abs().StringFixed(2)
	whole, frac := s[:len(s)-3], s[len(s)-2:]

	prefix := "₹"
	if amount.IsNegative() && s != "0.00" {
		prefix = "-₹"
	}
	return prefix + groupIndian(whole) + "." + frac
}

// groupIndian inserts a comma before the last three digits and then after
// every two digits to the left of that.
func groupIndian(whole string) string {
	if len(whole) <= 3 {
		return whole
	}
	head, tail := whole[:len(whole)-3], whole[len(whole)-3:]

	var groups []string
	for len(head) > 2 {
		groups = append([]string{head[len(head)-2:]}, groups...)
		head = head[:len(head)-2]
	}
	if head != "" {
		groups = append([]string{head}, groups...)
	}
	return strings.Join(append(groups, tail), ",")
}

// FormatCompact renders large amounts in lakh or crore: ₹7.36 Cr, ₹12.50 L.
func FormatCompact(amount decimal.Decimal) string {
	abs := amount.Abs()
	sign := ""
	if amount.IsNegative() {
		sign = "-"
	}
	switch {
	case abs.GreaterThanOrEqual(crore):
		return sign + "₹" + abs.Div(crore).StringFixed(2) + " Cr"
	case abs.GreaterThanOrEqual(lakh):
		return sign + "₹" + abs.Div(lakh).StringFixed(2) + " L"
	}
	return FormatCurrency(amount)
}

// FormatPercentage formats a value already expressed in percent with 2 decimals.
func FormatPercentage(pct decimal.Decimal) string { return pct.StringFixed(2) + "%" }

// FormatRate formats a fraction (0.0754) as a percentage (7.54%).
func FormatRate(fraction decimal.Decimal) string {
	return FormatPercentage(fraction.Mul(hundred))
}

// FormatWeight formats a portfolio weight as whole percent, truncated.
func FormatWeight(w decimal.Decimal) string {
	return w.Mul(hundred).Truncate(0).String() + "%"
}
