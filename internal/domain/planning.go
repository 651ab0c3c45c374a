package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// RiskCategory is the investor's tolerance for volatility
type RiskCategory string

const (
	RiskConservative RiskCategory = "conservative"
	RiskModerate     RiskCategory = "moderate"
	RiskAggressive   RiskCategory = "aggressive"
)

// RiskCategories lists every category in ascending order of risk
var RiskCategories = []RiskCategory{RiskConservative, RiskModerate, RiskAggressive}

// Valid reports whether c is a known category
func (c RiskCategory) Valid() bool {
	switch c {
	case RiskConservative, RiskModerate, RiskAggressive:
		return true
	}
	return false
}

// NormalizeRiskCategory maps free text to a category, falling back to moderate
func NormalizeRiskCategory(s string) RiskCategory {
	c := RiskCategory(strings.ToLower(strings.TrimSpace(s)))
	if c.Valid() {
		return c
	}
	return RiskModerate
}

// AssetClass names a sleeve of the suggested portfolio
type AssetClass string

const (
	AssetEquity AssetClass = "equity"
	AssetDebt   AssetClass = "debt"
	AssetGold   AssetClass = "gold"
)

// AssetClasses lists the classes in display order
var AssetClasses = []AssetClass{AssetEquity, AssetDebt, AssetGold}

// Allocation is a three-way portfolio split. Weights are fractions in [0,1].
type Allocation struct {
	Risk    RiskCategory    `json:"risk"`
	Horizon int             `json:"horizon_years"`
	Equity  decimal.Decimal `json:"equity"`
	Debt    decimal.Decimal `json:"debt"`
	Gold    decimal.Decimal `json:"gold"`
}

// Weight returns the weight of the given asset class
func (a Allocation) Weight(class AssetClass) decimal.Decimal {
	switch class {
	case AssetEquity:
		return a.Equity
	case AssetDebt:
		return a.Debt
	case AssetGold:
		return a.Gold
	}
	return decimal.Zero
}

// Total returns the sum of all weights
func (a Allocation) Total() decimal.Decimal {
	return a.Equity.Add(a.Debt).Add(a.Gold)
}

// LoanSummary describes a level-payment loan
type LoanSummary struct {
	Principal      decimal.Decimal `json:"principal"`
	AnnualRatePct  decimal.Decimal `json:"annual_rate_pct"`
	Months         int             `json:"months"`
	MonthlyPayment decimal.Decimal `json:"monthly_payment"`
	TotalPaid      decimal.Decimal `json:"total_paid"`
	TotalInterest  decimal.Decimal `json:"total_interest"`
}

// RetirementTarget is the perpetuity-style corpus needed at retirement
type RetirementTarget struct {
	MonthlyExpenseToday    decimal.Decimal `json:"monthly_expense_today"`
	YearsToRetirement      int             `json:"years_to_retirement"`
	InflationPct           decimal.Decimal `json:"inflation_pct"`
	SafeWithdrawalRatePct  decimal.Decimal `json:"safe_withdrawal_rate_pct"`
	InflatedMonthlyExpense decimal.Decimal `json:"inflated_monthly_expense"`
	InflatedAnnualExpense  decimal.Decimal `json:"inflated_annual_expense"`
	CorpusRequired         decimal.Decimal `json:"corpus_required"`
}

// RetirementPlan adds the monthly contribution needed to build the corpus
type RetirementPlan struct {
	Target                RetirementTarget `json:"target"`
	AccumulationReturnPct decimal.Decimal  `json:"accumulation_return_pct"`
	RequiredMonthlySIP    decimal.Decimal  `json:"required_monthly_sip"`
}

// SIPProjection is the outcome of a recurring-contribution calculation, either
// projecting a future value or backing out the required contribution.
type SIPProjection struct {
	MonthlyContribution decimal.Decimal `json:"monthly_contribution"`
	AnnualReturnPct     decimal.Decimal `json:"annual_return_pct"`
	Years               decimal.Decimal `json:"years"`
	Months              int             `json:"months"`
	FutureValue         decimal.Decimal `json:"future_value"`
	TotalInvested       decimal.Decimal `json:"total_invested"`
}

// Gain returns the growth above the amount invested
func (p SIPProjection) Gain() decimal.Decimal {
	return p.FutureValue.Sub(p.TotalInvested)
}

// EmergencyFund is the cash buffer target
type EmergencyFund struct {
	MonthlyExpense decimal.Decimal `json:"monthly_expense"`
	Months         int             `json:"months"`
	Target         decimal.Decimal `json:"target"`
}
