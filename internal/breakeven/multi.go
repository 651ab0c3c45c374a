package breakeven

import (
	"context"
	"fmt"

	"github.com/rgehrsitz/pfgo/internal/calculation"
	"github.com/rgehrsitz/pfgo/internal/output"
)

// OptimizeMultiDimensional solves every target for the same income and
// summarises the outcomes
func (s *Solver) OptimizeMultiDimensional(
	ctx context.Context,
	income calculation.TaxInput,
	constraints Constraints,
) (*MultiDimensionalResult, error) {
	if err := constraints.Validate(); err != nil {
		return nil, err
	}

	targets := []OptimizationTarget{
		OptimizeTotalDeductions,
		OptimizeSection80C,
	}

	mdResult := &MultiDimensionalResult{}
	for _, target := range targets {
		req := OptimizationRequest{
			Income:        income,
			Target:        target,
			Constraints:   constraints,
			MaxIterations: s.Options.MaxIterations,
			Tolerance:     s.Options.Tolerance,
		}

		result, err := s.Optimize(ctx, req)
		if err != nil {
			return nil, &SolverError{
				Operation: "optimize_multi_dimensional",
				Message:   fmt.Sprintf("target %s failed", target),
				Cause:     err,
			}
		}
		mdResult.Results = append(mdResult.Results, *result)
	}

	mdResult.Recommendations = s.generateMultiDimensionalRecommendations(mdResult)
	return mdResult, nil
}

// generateMultiDimensionalRecommendations turns solver results into advice
func (s *Solver) generateMultiDimensionalRecommendations(result *MultiDimensionalResult) []string {
	var recommendations []string

	for _, res := range result.Results {
		switch {
		case res.AlreadyCheaper:
			recommendations = append(recommendations,
				"The old regime already costs no more than the new regime; itemized deductions only add savings")
			return recommendations
		case !res.Success:
			recommendations = append(recommendations,
				fmt.Sprintf("%s: the new regime stays cheaper even at %s of deductions",
					targetLabel(res.Request.Target), output.FormatCurrency(res.MaxSearchedAmount)))
		case res.AdditionalNeeded.IsZero():
			recommendations = append(recommendations,
				fmt.Sprintf("%s: current deductions already reach the break-even", targetLabel(res.Request.Target)))
		default:
			recommendations = append(recommendations,
				fmt.Sprintf("%s: invest %s more to make the old regime break even",
					targetLabel(res.Request.Target), output.FormatCurrency(res.AdditionalNeeded)))
		}
	}

	return recommendations
}

func targetLabel(t OptimizationTarget) string {
	switch t {
	case OptimizeSection80C:
		return "80C only"
	case OptimizeTotalDeductions:
		return "80C + 80D"
	}
	return string(t)
}

// OptimizeAllTargets is a convenience method using the solver's default constraints
func (s *Solver) OptimizeAllTargets(ctx context.Context, income calculation.TaxInput) (*MultiDimensionalResult, error) {
	return s.OptimizeMultiDimensional(ctx, income, Constraints{})
}
