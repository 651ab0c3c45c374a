package calculation

import (
	"github.com/rgehrsitz/pfgo/internal/domain"
	"github.com/shopspring/decimal"
)

// RetirementInput describes the expense to be funded in retirement.
//
// RetiredYears is accepted for callers that collect it but does not enter the
// corpus formula: the corpus is sized as a perpetuity at the safe withdrawal
// rate rather than drawn down over a fixed horizon.
type RetirementInput struct {
	MonthlyExpenseToday   decimal.Decimal
	YearsToRetirement     int
	RetiredYears          int
	InflationPct          decimal.Decimal
	SafeWithdrawalRatePct decimal.Decimal
}

// RetirementCorpus inflates today's monthly expense to the retirement date and
// sizes the corpus whose yield at the safe withdrawal rate covers it.
func RetirementCorpus(in RetirementInput) (domain.RetirementTarget, error) {
	if err := requireNonNegative("monthly expense", in.MonthlyExpenseToday); err != nil {
		return domain.RetirementTarget{}, err
	}
	if in.YearsToRetirement <= 0 {
		return domain.RetirementTarget{}, invalid("years to retirement", "must be positive, got %d", in.YearsToRetirement)
	}
	if in.YearsToRetirement > MaxYears {
		return domain.RetirementTarget{}, invalid("years to retirement", "%d exceeds the %d year limit", in.YearsToRetirement, MaxYears)
	}
	if in.InflationPct.LessThanOrEqual(hundred.Neg()) {
		return domain.RetirementTarget{}, invalid("inflation", "must be above -100%%, got %s", in.InflationPct.String())
	}
	if err := requirePositive("safe withdrawal rate", in.SafeWithdrawalRatePct); err != nil {
		return domain.RetirementTarget{}, err
	}

	factor := compound(one.Add(percentToRate(in.InflationPct)), in.YearsToRetirement)
	futureMonthly := in.MonthlyExpenseToday.Mul(factor)
	annualNeed := futureMonthly.Mul(twelve)
	corpus := annualNeed.Mul(hundred).Div(in.SafeWithdrawalRatePct)

	return domain.RetirementTarget{
		MonthlyExpenseToday:    in.MonthlyExpenseToday,
		YearsToRetirement:      in.YearsToRetirement,
		InflationPct:           in.InflationPct,
		SafeWithdrawalRatePct:  in.SafeWithdrawalRatePct,
		InflatedMonthlyExpense: futureMonthly,
		InflatedAnnualExpense:  annualNeed,
		CorpusRequired:         corpus,
	}, nil
}

// PlanRetirement sizes the corpus and backs out the monthly SIP that builds it
// by the retirement date at the accumulation return.
func PlanRetirement(in RetirementInput, accumulationReturnPct decimal.Decimal) (domain.RetirementPlan, error) {
	target, err := RetirementCorpus(in)
	if err != nil {
		return domain.RetirementPlan{}, err
	}
	sip, err := RequiredContribution(target.CorpusRequired, accumulationReturnPct, decimal.NewFromInt(int64(in.YearsToRetirement)))
	if err != nil {
		return domain.RetirementPlan{}, err
	}
	return domain.RetirementPlan{
		Target:                target,
		AccumulationReturnPct: accumulationReturnPct,
		RequiredMonthlySIP:    sip,
	}, nil
}
