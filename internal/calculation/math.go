package calculation

import "github.com/shopspring/decimal"

// compoundScale bounds the digits carried through repeated multiplication.
// decimal.Pow multiplies exactly, so (1+i)^360 would otherwise carry
// thousands of digits.
const compoundScale = 24

var (
	one     = decimal.NewFromInt(1)
	hundred = decimal.NewFromInt(100)
	twelve  = decimal.NewFromInt(12)
)

// compound returns base^n for n >= 0 by repeated squaring
func compound(base decimal.Decimal, n int) decimal.Decimal {
	result := one
	for n > 0 {
		if n&1 == 1 {
			result = result.Mul(base).Round(compoundScale)
		}
		base = base.Mul(base).Round(compoundScale)
		n >>= 1
	}
	return result
}

// percentToRate converts a 0-100 percentage into a fraction
func percentToRate(pct decimal.Decimal) decimal.Decimal {
	return pct.Div(hundred)
}

func clamp(x, lo, hi decimal.Decimal) decimal.Decimal {
	return decimal.Max(lo, decimal.Min(hi, x))
}
