package compare

import (
	"context"
	"fmt"

	"github.com/rgehrsitz/pfgo/internal/calculation"
	"github.com/rgehrsitz/pfgo/internal/domain"
)

// CompareEngine orchestrates regime comparison
type CompareEngine struct {
	CalcEngine        *calculation.CalculationEngine
	MetricsCalculator *MetricsCalculator
}

// NewCompareEngine creates a new comparison engine
func NewCompareEngine(calcEngine *calculation.CalculationEngine) *CompareEngine {
	return &CompareEngine{
		CalcEngine:        calcEngine,
		MetricsCalculator: NewMetricsCalculator(),
	}
}

// CompareOptions configures comparison behavior
type CompareOptions struct {
	BaseRegime domain.Regime // Regime the other is measured against; unknown means new
}

// Compare estimates the same income under both regimes. The Regime field of
// in is ignored.
func (ce *CompareEngine) Compare(ctx context.Context, in calculation.TaxInput, options CompareOptions) (*ComparisonSet, error) {
	base := options.BaseRegime
	if !base.Valid() {
		base = domain.RegimeNew
	}
	alt := domain.RegimeOld
	if base == domain.RegimeOld {
		alt = domain.RegimeNew
	}

	results := make(map[domain.Regime]ComparisonResult, 2)
	for _, regime := range []domain.Regime{base, alt} {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		in.Regime = regime
		est, err := ce.CalcEngine.EstimateTax(in)
		if err != nil {
			return nil, fmt.Errorf("failed to estimate %s regime: %w", regime, err)
		}
		results[regime] = ce.MetricsCalculator.CalculateMetrics(est)
	}

	baseResult := results[base]
	altResult := ce.MetricsCalculator.CalculateComparison(results[alt], baseResult)

	cfg := ce.CalcEngine.TaxConfig()
	compSet := &ComparisonSet{
		FinancialYear:      cfg.Metadata().FinancialYear,
		GrossIncome:        in.GrossAnnualIncome,
		BaseRegime:         base,
		BaseResult:         &baseResult,
		AlternativeResults: []ComparisonResult{altResult},
	}

	switch {
	case altResult.TaxDiffFromBase.IsNegative():
		compSet.Cheaper = alt
		compSet.Savings = altResult.TaxDiffFromBase.Neg()
	case altResult.TaxDiffFromBase.IsPositive():
		compSet.Cheaper = base
		compSet.Savings = altResult.TaxDiffFromBase
	default:
		compSet.Cheaper = domain.RegimeNew
		compSet.Tie = true
	}

	compSet.Recommendations = GenerateRecommendations(compSet, cfg.DeductionCaps())
	ce.CalcEngine.Logger.Debugf("regime comparison gross=%s cheaper=%s savings=%s",
		in.GrossAnnualIncome, compSet.Cheaper, compSet.Savings)

	return compSet, nil
}
