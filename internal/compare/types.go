package compare

import (
	"github.com/rgehrsitz/pfgo/internal/domain"
	"github.com/rgehrsitz/pfgo/internal/output"
	"github.com/shopspring/decimal"
)

var twelve = decimal.NewFromInt(12)

// ComparisonResult is one regime's estimate plus its difference from the base
type ComparisonResult struct {
	Regime   domain.Regime      `json:"regime"`
	Estimate domain.TaxEstimate `json:"estimate"`

	// Key Metrics
	TotalTax        decimal.Decimal `json:"totalTax"`
	EffectiveRate   decimal.Decimal `json:"effectiveRate"`
	MonthlyTakeHome decimal.Decimal `json:"monthlyTakeHome"`

	// Comparison to Base
	TaxDiffFromBase decimal.Decimal `json:"taxDiffFromBase"`
}

// ComparisonSet is the outcome of estimating both regimes for the same inputs
type ComparisonSet struct {
	FinancialYear      string             `json:"financialYear"`
	GrossIncome        decimal.Decimal    `json:"grossIncome"`
	BaseRegime         domain.Regime      `json:"baseRegime"`
	BaseResult         *ComparisonResult  `json:"baseResult"`
	AlternativeResults []ComparisonResult `json:"alternativeResults"`
	Cheaper            domain.Regime      `json:"cheaper"`
	Savings            decimal.Decimal    `json:"savings"`
	Tie                bool               `json:"tie"`
	Recommendations    []string           `json:"recommendations"`
}

// Results returns the base result followed by the alternatives
func (cs *ComparisonSet) Results() []ComparisonResult {
	out := make([]ComparisonResult, 0, len(cs.AlternativeResults)+1)
	if cs.BaseResult != nil {
		out = append(out, *cs.BaseResult)
	}
	return append(out, cs.AlternativeResults...)
}

// Result returns the result for a regime, if present
func (cs *ComparisonSet) Result(r domain.Regime) (ComparisonResult, bool) {
	for _, res := range cs.Results() {
		if res.Regime == r {
			return res, true
		}
	}
	return ComparisonResult{}, false
}

// MetricsCalculator extracts key metrics from estimates
type MetricsCalculator struct{}

// NewMetricsCalculator creates a new metrics calculator
func NewMetricsCalculator() *MetricsCalculator {
	return &MetricsCalculator{}
}

// CalculateMetrics computes the display metrics for one estimate
func (mc *MetricsCalculator) CalculateMetrics(est domain.TaxEstimate) ComparisonResult {
	return ComparisonResult{
		Regime:          est.Regime,
		Estimate:        est,
		TotalTax:        est.TotalTax,
		EffectiveRate:   est.EffectiveRate,
		MonthlyTakeHome: est.GrossIncome.Sub(est.TotalTax).Div(twelve),
	}
}

// CalculateComparison fills the differences between a result and the base
func (mc *MetricsCalculator) CalculateComparison(result, base ComparisonResult) ComparisonResult {
	result.TaxDiffFromBase = result.TotalTax.Sub(base.TotalTax)
	return result
}

// GenerateRecommendations creates recommendations based on comparison results
func GenerateRecommendations(compSet *ComparisonSet, caps domain.DeductionCaps) []string {
	recommendations := []string{}
	if compSet.BaseResult == nil {
		return recommendations
	}

	if compSet.Tie {
		recommendations = append(recommendations,
			"Both regimes result in the same tax; the new regime needs no proof of investments")
	} else {
		recommendations = append(recommendations,
			compSet.Cheaper.Title()+" regime saves "+output.FormatCurrency(compSet.Savings)+" per year")
	}

	for _, res := range compSet.Results() {
		est := res.Estimate
		if est.TotalTax.IsZero() && est.Rebate.IsPositive() {
			recommendations = append(recommendations,
				res.Regime.Title()+" regime: taxable income is within the 87A rebate, no tax payable")
		}
	}

	if old, ok := compSet.Result(domain.RegimeOld); ok && compSet.Cheaper != domain.RegimeOld {
		room := caps.Section80C.Add(caps.Section80D).Sub(old.Estimate.OtherDeductions)
		if room.IsPositive() {
			recommendations = append(recommendations,
				"Unused 80C/80D room of "+output.FormatCurrency(room)+" could narrow the gap for the old regime")
		}
	}

	return recommendations
}
