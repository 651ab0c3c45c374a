package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/rgehrsitz/pfgo/internal/calculation"
	"github.com/rgehrsitz/pfgo/internal/compare"
	"github.com/rgehrsitz/pfgo/internal/config"
	"github.com/rgehrsitz/pfgo/internal/domain"
	"github.com/rgehrsitz/pfgo/internal/output"
	"github.com/rgehrsitz/pfgo/internal/tui/scenes"
	"github.com/shopspring/decimal"
)

// calcEnv is what a calculator may read when building its form and running
type calcEnv struct {
	engine      *calculation.CalculationEngine
	assumptions config.AssumptionsConfig
	profile     domain.UserProfile
}

// Outcome is the result of running a calculator. Exactly one of Report and
// Comparison is set.
type Outcome struct {
	Kind       string
	Summary    string
	Input      any
	Report     *output.Report
	Comparison *compare.ComparisonSet
}

// Calculator is one entry of the home menu
type Calculator struct {
	ID          string
	Title       string
	Description string
	Fields      func(env calcEnv) []scenes.FormField
	Run         func(ctx context.Context, env calcEnv, v formValues) (Outcome, error)
}

// Calculators lists every calculator in menu order
var Calculators = []Calculator{
	{
		ID: "tax", Title: "Tax", Description: "Income tax under one regime",
		Fields: taxFields, Run: runTax,
	},
	{
		ID: "compare", Title: "Compare", Description: "New vs old regime side by side",
		Fields: compareFields, Run: runCompare,
	},
	{
		ID: "sip", Title: "SIP", Description: "Future value of a monthly SIP",
		Fields: sipFields, Run: runSIP,
	},
	{
		ID: "goal", Title: "Goal", Description: "Monthly SIP needed for a target",
		Fields: goalFields, Run: runGoal,
	},
	{
		ID: "emi", Title: "EMI", Description: "Loan EMI and total interest",
		Fields: emiFields, Run: runEMI,
	},
	{
		ID: "retirement", Title: "Retirement", Description: "Corpus and SIP for retirement",
		Fields: retirementFields, Run: runRetirement,
	},
	{
		ID: "emergency", Title: "Emergency", Description: "Emergency fund target",
		Fields: emergencyFields, Run: runEmergency,
	},
	{
		ID: "allocate", Title: "Allocate", Description: "Equity/debt/gold split",
		Fields: allocateFields, Run: runAllocate,
	},
}

// findCalculator returns the calculator with id
func findCalculator(id string) (Calculator, bool) {
	for _, c := range Calculators {
		if c.ID == id {
			return c, true
		}
	}
	return Calculator{}, false
}

func menuItems() []scenes.MenuItem {
	items := make([]scenes.MenuItem, 0, len(Calculators))
	for _, c := range Calculators {
		items = append(items, scenes.MenuItem{ID: c.ID, Title: c.Title, Description: c.Description})
	}
	return items
}

// formValues holds raw form input keyed by field key
type formValues map[string]string

// amount parses a required rupee amount or percentage. A leading ₹ and
// digit separators are accepted.
func (v formValues) amount(key, label string) (decimal.Decimal, error) {
	raw := strings.TrimSpace(v[key])
	if raw == "" {
		return decimal.Zero, fmt.Errorf("%s is required", label)
	}
	cleaned := strings.TrimPrefix(raw, "₹")
	cleaned = strings.NewReplacer(",", "", "_", "").Replace(strings.TrimSpace(cleaned))
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid %s %q: not a number", label, raw)
	}
	return d, nil
}

// amountOr parses an optional amount, returning def when blank
func (v formValues) amountOr(key, label string, def decimal.Decimal) (decimal.Decimal, error) {
	if strings.TrimSpace(v[key]) == "" {
		return def, nil
	}
	return v.amount(key, label)
}

func (v formValues) integer(key, label string) (int, error) {
	raw := strings.TrimSpace(v[key])
	if raw == "" {
		return 0, fmt.Errorf("%s is required", label)
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: not a whole number", label, raw)
	}
	return n, nil
}

func (v formValues) yes(key string) bool {
	switch strings.ToLower(strings.TrimSpace(v[key])) {
	case "n", "no", "false", "0":
		return false
	}
	return true
}

func (v formValues) regime(key string) domain.Regime {
	return domain.NormalizeRegime(v[key])
}

func (v formValues) risk(key string) domain.RiskCategory {
	return domain.NormalizeRiskCategory(v[key])
}

func decimalText(d *decimal.Decimal) string {
	if d == nil {
		return ""
	}
	return d.String()
}

func floatText(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// annualIncomeDefault is twelve times the stored monthly income
func annualIncomeDefault(p domain.UserProfile) string {
	if p.MonthlyIncome == nil {
		return ""
	}
	return p.MonthlyIncome.Mul(decimal.NewFromInt(12)).String()
}

func incomeFields(env calcEnv) []scenes.FormField {
	return []scenes.FormField{
		{Key: "income", Label: "Gross annual income (₹)", Default: annualIncomeDefault(env.profile), Placeholder: "1200000"},
		{Key: "salaried", Label: "Salaried", Default: "yes", Hint: "yes/no"},
		{Key: "80c", Label: "80C investments (₹)", Default: "0", Hint: "old regime only"},
		{Key: "80d", Label: "80D health premium (₹)", Default: "0", Hint: "old regime only"},
	}
}

func readIncome(v formValues) (calculation.TaxInput, error) {
	income, err := v.amount("income", "income")
	if err != nil {
		return calculation.TaxInput{}, err
	}
	c80, err := v.amountOr("80c", "80C amount", decimal.Zero)
	if err != nil {
		return calculation.TaxInput{}, err
	}
	d80, err := v.amountOr("80d", "80D amount", decimal.Zero)
	if err != nil {
		return calculation.TaxInput{}, err
	}
	return calculation.TaxInput{
		GrossAnnualIncome: income,
		IsSalaried:        v.yes("salaried"),
		Section80C:        c80,
		Section80D:        d80,
	}, nil
}

func taxFields(env calcEnv) []scenes.FormField {
	fields := incomeFields(env)
	regime := scenes.FormField{Key: "regime", Label: "Regime", Default: string(env.profile.PreferredRegime()), Hint: "new/old"}
	return append([]scenes.FormField{fields[0], regime}, fields[1:]...)
}

func runTax(_ context.Context, env calcEnv, v formValues) (Outcome, error) {
	in, err := readIncome(v)
	if err != nil {
		return Outcome{}, err
	}
	in.Regime = v.regime("regime")
	est, err := env.engine.EstimateTax(in)
	if err != nil {
		return Outcome{}, err
	}
	return Outcome{
		Kind:    "tax",
		Summary: fmt.Sprintf("%s regime tax on %s: %s", est.Regime, output.FormatCurrency(in.GrossAnnualIncome), output.FormatCurrency(est.TotalTax)),
		Input:   in,
		Report:  output.NewTaxReport(est, env.engine.TaxConfig().CessRate()),
	}, nil
}

func compareFields(env calcEnv) []scenes.FormField {
	return incomeFields(env)
}

func runCompare(ctx context.Context, env calcEnv, v formValues) (Outcome, error) {
	in, err := readIncome(v)
	if err != nil {
		return Outcome{}, err
	}
	set, err := compare.NewCompareEngine(env.engine).Compare(ctx, in, compare.CompareOptions{BaseRegime: domain.RegimeNew})
	if err != nil {
		return Outcome{}, err
	}
	summary := fmt.Sprintf("%s regime cheaper by %s", set.Cheaper.Title(), output.FormatCurrency(set.Savings))
	if set.Tie {
		summary = "Regimes tie at " + output.FormatCurrency(set.BaseResult.TotalTax)
	}
	return Outcome{Kind: "compare", Summary: summary, Input: in, Comparison: set}, nil
}

func annuityFields(amountKey, amountLabel, amountDefault, rateLabel, rateDefault, yearsDefault string) []scenes.FormField {
	return []scenes.FormField{
		{Key: amountKey, Label: amountLabel, Default: amountDefault},
		{Key: "rate", Label: rateLabel, Default: rateDefault, Hint: "% p.a."},
		{Key: "years", Label: "Years", Default: yearsDefault},
	}
}

func readAnnuity(v formValues, amountKey, amountLabel, rateLabel string) (decimal.Decimal, decimal.Decimal, decimal.Decimal, error) {
	amt, err := v.amount(amountKey, amountLabel)
	if err != nil {
		return amt, decimal.Zero, decimal.Zero, err
	}
	rate, err := v.amount("rate", rateLabel)
	if err != nil {
		return amt, rate, decimal.Zero, err
	}
	years, err := v.amount("years", "years")
	return amt, rate, years, err
}

func sipFields(env calcEnv) []scenes.FormField {
	monthly := ""
	if savings, ok := env.profile.SavingsCapacity(); ok && savings.IsPositive() {
		monthly = savings.String()
	}
	return annuityFields("monthly", "Monthly SIP (₹)", monthly, "Expected return", "12", "10")
}

func runSIP(_ context.Context, env calcEnv, v formValues) (Outcome, error) {
	monthly, rate, years, err := readAnnuity(v, "monthly", "monthly SIP", "expected return")
	if err != nil {
		return Outcome{}, err
	}
	p, err := env.engine.ProjectSIP(monthly, rate, years)
	if err != nil {
		return Outcome{}, err
	}
	return Outcome{Kind: "sip", Summary: "SIP future value " + output.FormatCurrency(p.FutureValue), Input: p, Report: output.NewSIPReport(p)}, nil
}

func goalFields(calcEnv) []scenes.FormField {
	return annuityFields("target", "Target amount (₹)", "", "Expected return", "12", "10")
}

func runGoal(_ context.Context, env calcEnv, v formValues) (Outcome, error) {
	target, rate, years, err := readAnnuity(v, "target", "target amount", "expected return")
	if err != nil {
		return Outcome{}, err
	}
	p, err := env.engine.PlanGoal(target, rate, years)
	if err != nil {
		return Outcome{}, err
	}
	return Outcome{
		Kind:    "goal",
		Summary: "Goal " + output.FormatCurrency(target) + " needs " + output.FormatCurrency(p.MonthlyContribution) + "/month",
		Input:   p,
		Report:  output.NewGoalReport(p),
	}, nil
}

func emiFields(calcEnv) []scenes.FormField {
	return annuityFields("principal", "Loan principal (₹)", "", "Annual interest", "8.5", "20")
}

func runEMI(_ context.Context, env calcEnv, v formValues) (Outcome, error) {
	principal, rate, years, err := readAnnuity(v, "principal", "principal", "interest rate")
	if err != nil {
		return Outcome{}, err
	}
	l, err := env.engine.SummarizeLoan(principal, rate, years)
	if err != nil {
		return Outcome{}, err
	}
	return Outcome{Kind: "emi", Summary: "EMI " + output.FormatCurrency(l.MonthlyPayment), Input: l, Report: output.NewLoanReport(l)}, nil
}

func retirementFields(env calcEnv) []scenes.FormField {
	age := ""
	if env.profile.Age != nil {
		age = strconv.Itoa(*env.profile.Age)
	}
	a := env.assumptions
	return []scenes.FormField{
		{Key: "age", Label: "Current age", Default: age},
		{Key: "retire_age", Label: "Retirement age", Default: "60"},
		{Key: "expense", Label: "Monthly expense today (₹)", Default: decimalText(env.profile.MonthlyExpenses)},
		{Key: "inflation", Label: "Inflation", Default: floatText(a.InflationPct), Hint: "% p.a."},
		{Key: "swr", Label: "Safe withdrawal rate", Default: floatText(a.SafeWithdrawalRatePct), Hint: "% p.a."},
		{Key: "return", Label: "Return until retirement", Default: floatText(a.AccumulationReturnPct), Hint: "% p.a."},
	}
}

func runRetirement(_ context.Context, env calcEnv, v formValues) (Outcome, error) {
	age, err := v.integer("age", "current age")
	if err != nil {
		return Outcome{}, err
	}
	retireAge, err := v.integer("retire_age", "retirement age")
	if err != nil {
		return Outcome{}, err
	}
	if retireAge <= age {
		return Outcome{}, fmt.Errorf("retirement age %d must be greater than current age %d", retireAge, age)
	}
	expense, err := v.amount("expense", "monthly expense")
	if err != nil {
		return Outcome{}, err
	}
	a := env.assumptions
	inflation, err := v.amountOr("inflation", "inflation", a.Inflation())
	if err != nil {
		return Outcome{}, err
	}
	swr, err := v.amountOr("swr", "safe withdrawal rate", a.SafeWithdrawalRate())
	if err != nil {
		return Outcome{}, err
	}
	ret, err := v.amountOr("return", "return", a.AccumulationReturn())
	if err != nil {
		return Outcome{}, err
	}

	in := calculation.RetirementInput{
		MonthlyExpenseToday:   expense,
		YearsToRetirement:     retireAge - age,
		RetiredYears:          a.RetiredYears,
		InflationPct:          inflation,
		SafeWithdrawalRatePct: swr,
	}
	plan, err := env.engine.PlanRetirement(in, ret)
	if err != nil {
		return Outcome{}, err
	}
	return Outcome{
		Kind:    "retirement",
		Summary: "Retirement corpus " + output.FormatCompact(plan.Target.CorpusRequired),
		Input:   in,
		Report:  output.NewRetirementReport(plan),
	}, nil
}

func emergencyFields(env calcEnv) []scenes.FormField {
	months := env.profile.EmergencyMonths
	if months <= 0 {
		months = env.assumptions.EmergencyMonths
	}
	return []scenes.FormField{
		{Key: "expense", Label: "Monthly expense (₹)", Default: decimalText(env.profile.MonthlyExpenses)},
		{Key: "months", Label: "Months of cover", Default: strconv.Itoa(months)},
	}
}

func runEmergency(_ context.Context, env calcEnv, v formValues) (Outcome, error) {
	expense, err := v.amount("expense", "monthly expense")
	if err != nil {
		return Outcome{}, err
	}
	months, err := v.integer("months", "months")
	if err != nil {
		return Outcome{}, err
	}
	f, err := env.engine.SizeEmergencyFund(expense, months)
	if err != nil {
		return Outcome{}, err
	}
	return Outcome{Kind: "emergency", Summary: "Emergency fund " + output.FormatCurrency(f.Target), Input: f, Report: output.NewEmergencyReport(f)}, nil
}

func allocateFields(env calcEnv) []scenes.FormField {
	return []scenes.FormField{
		{Key: "risk", Label: "Risk appetite", Default: string(env.profile.Risk), Hint: "conservative/moderate/aggressive"},
		{Key: "horizon", Label: "Horizon (years)", Default: "10"},
	}
}

func runAllocate(_ context.Context, env calcEnv, v formValues) (Outcome, error) {
	horizon, err := v.integer("horizon", "horizon")
	if err != nil {
		return Outcome{}, err
	}
	alloc, err := env.engine.SuggestAllocation(v.risk("risk"), horizon)
	if err != nil {
		return Outcome{}, err
	}
	return Outcome{
		Kind:    "allocate",
		Summary: fmt.Sprintf("%s allocation for %d years", alloc.Risk, horizon),
		Input:   alloc,
		Report:  output.NewAllocationReport(alloc),
	}, nil
}
