package calculation

import (
	"github.com/rgehrsitz/pfgo/internal/domain"
	"github.com/shopspring/decimal"
)

// Annuity formulas use monthly compounding. A fractional year count is turned
// into whole months with round-half-to-even, so 2.5 months rounds to 2.

// MaxYears bounds every horizon the engine compounds over
const MaxYears = 100

var maxPeriods = decimal.NewFromInt(MaxYears * 12)

// Periods returns the number of monthly periods in years. Callers validate
// years against MaxYears first.
func Periods(years decimal.Decimal) int {
	return int(years.Mul(twelve).RoundBank(0).IntPart())
}

// monthlyRate converts an annual percentage into a periodic fraction
func monthlyRate(annualPct decimal.Decimal) decimal.Decimal {
	return percentToRate(annualPct).Div(twelve)
}

// annuityTerms validates the shared rate/years inputs and returns the
// periodic rate and the number of periods
func annuityTerms(annualPct, years decimal.Decimal) (decimal.Decimal, int, error) {
	if err := requireNonNegative("annual rate", annualPct); err != nil {
		return decimal.Zero, 0, err
	}
	if years.Mul(twelve).GreaterThan(maxPeriods) {
		return decimal.Zero, 0, invalid("years", "%s years exceeds the %d year limit", years.String(), MaxYears)
	}
	n := Periods(years)
	if n <= 0 {
		return decimal.Zero, 0, invalid("years", "%s years is less than one monthly period", years.String())
	}
	return monthlyRate(annualPct), n, nil
}

// annuityDueFactor is ((1+i)^n - 1) / i * (1+i), the future value of one unit
// contributed at the start of each of n periods
func annuityDueFactor(i decimal.Decimal, n int) decimal.Decimal {
	growth := compound(one.Add(i), n)
	return growth.Sub(one).Div(i).Mul(one.Add(i))
}

// FutureValue returns the value after years of monthly contributions made at
// the start of each month. At a zero rate it is contribution * months.
func FutureValue(contribution, annualRatePct, years decimal.Decimal) (decimal.Decimal, error) {
	if err := requireNonNegative("monthly contribution", contribution); err != nil {
		return decimal.Zero, err
	}
	i, n, err := annuityTerms(annualRatePct, years)
	if err != nil {
		return decimal.Zero, err
	}
	if i.IsZero() {
		return contribution.Mul(decimal.NewFromInt(int64(n))), nil
	}
	return contribution.Mul(annuityDueFactor(i, n)), nil
}

// RequiredContribution is the inverse of FutureValue: the monthly amount that
// grows to target. At a zero rate it is target / months.
func RequiredContribution(target, annualRatePct, years decimal.Decimal) (decimal.Decimal, error) {
	if err := requireNonNegative("target amount", target); err != nil {
		return decimal.Zero, err
	}
	i, n, err := annuityTerms(annualRatePct, years)
	if err != nil {
		return decimal.Zero, err
	}
	if i.IsZero() {
		return target.Div(decimal.NewFromInt(int64(n))), nil
	}
	return target.Div(annuityDueFactor(i, n)), nil
}

// LevelPayment returns the EMI that amortizes principal over years.
// At a zero rate it is principal / months.
func LevelPayment(principal, annualRatePct, years decimal.Decimal) (decimal.Decimal, error) {
	if err := requireNonNegative("principal", principal); err != nil {
		return decimal.Zero, err
	}
	i, n, err := annuityTerms(annualRatePct, years)
	if err != nil {
		return decimal.Zero, err
	}
	if i.IsZero() {
		return principal.Div(decimal.NewFromInt(int64(n))), nil
	}
	growth := compound(one.Add(i), n)
	return principal.Mul(i).Mul(growth).Div(growth.Sub(one)), nil
}

// SummarizeLoan returns the EMI together with the totals paid over the tenure
func SummarizeLoan(principal, annualRatePct, years decimal.Decimal) (domain.LoanSummary, error) {
	emi, err := LevelPayment(principal, annualRatePct, years)
	if err != nil {
		return domain.LoanSummary{}, err
	}
	months := Periods(years)
	total := emi.Mul(decimal.NewFromInt(int64(months)))
	return domain.LoanSummary{
		Principal:      principal,
		AnnualRatePct:  annualRatePct,
		Months:         months,
		MonthlyPayment: emi,
		TotalPaid:      total,
		TotalInterest:  total.Sub(principal),
	}, nil
}

// ProjectSIP returns the future value of a monthly SIP
func ProjectSIP(contribution, annualRatePct, years decimal.Decimal) (domain.SIPProjection, error) {
	fv, err := FutureValue(contribution, annualRatePct, years)
	if err != nil {
		return domain.SIPProjection{}, err
	}
	months := Periods(years)
	return domain.SIPProjection{
		MonthlyContribution: contribution,
		AnnualReturnPct:     annualRatePct,
		Years:               years,
		Months:              months,
		FutureValue:         fv,
		TotalInvested:       contribution.Mul(decimal.NewFromInt(int64(months))),
	}, nil
}

// PlanGoal returns the monthly SIP needed to reach target
func PlanGoal(target, annualRatePct, years decimal.Decimal) (domain.SIPProjection, error) {
	sip, err := RequiredContribution(target, annualRatePct, years)
	if err != nil {
		return domain.SIPProjection{}, err
	}
	months := Periods(years)
	return domain.SIPProjection{
		MonthlyContribution: sip,
		AnnualReturnPct:     annualRatePct,
		Years:               years,
		Months:              months,
		FutureValue:         target,
		TotalInvested:       sip.Mul(decimal.NewFromInt(int64(months))),
	}, nil
}
