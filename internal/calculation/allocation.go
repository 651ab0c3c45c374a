package calculation

import (
	"github.com/rgehrsitz/pfgo/internal/domain"
	"github.com/shopspring/decimal"
)

// split is an equity/debt/gold triple before normalization
type split struct {
	equity, debt, gold decimal.Decimal
}

func pct(v int64) decimal.Decimal {
	return decimal.New(v, -2)
}

var baseSplits = map[domain.RiskCategory]split{
	domain.RiskConservative: {equity: pct(30), debt: pct(60), gold: pct(10)},
	domain.RiskModerate:     {equity: pct(60), debt: pct(30), gold: pct(10)},
	domain.RiskAggressive:   {equity: pct(80), debt: pct(15), gold: pct(5)},
}

const (
	longHorizonYears  = 10
	shortHorizonYears = 3
)

// SuggestAllocation returns the equity/debt/gold split for a risk category and
// horizon. Long horizons (>= 10 years) tilt 5 points into equity, short ones
// (<= 3 years) take 15 points out; debt absorbs the difference within bounds
// and gold is never nudged. Weights are renormalized and rounded to two
// places, so the rounded total may drift from 1 by a hundredth.
func SuggestAllocation(risk domain.RiskCategory, horizonYears int) (domain.Allocation, error) {
	if horizonYears < 0 {
		return domain.Allocation{}, invalid("horizon", "must not be negative, got %d", horizonYears)
	}
	base, ok := baseSplits[risk]
	if !ok {
		risk = domain.RiskModerate
		base = baseSplits[risk]
	}

	s := base
	switch {
	case horizonYears >= longHorizonYears:
		s.equity = clamp(s.equity.Add(pct(5)), pct(20), pct(90))
		s.debt = clamp(one.Sub(s.equity).Sub(s.gold), pct(5), pct(75))
	case horizonYears <= shortHorizonYears:
		s.equity = clamp(s.equity.Sub(pct(15)), pct(10), pct(70))
		s.debt = clamp(one.Sub(s.equity).Sub(s.gold), pct(20), pct(85))
	}

	total := s.equity.Add(s.debt).Add(s.gold)
	return domain.Allocation{
		Risk:    risk,
		Horizon: horizonYears,
		Equity:  s.equity.Div(total).Round(2),
		Debt:    s.debt.Div(total).Round(2),
		Gold:    s.gold.Div(total).Round(2),
	}, nil
}
