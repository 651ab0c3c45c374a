package breakeven

import (
	"context"
	"fmt"

	"github.com/rgehrsitz/pfgo/internal/calculation"
	"github.com/rgehrsitz/pfgo/internal/domain"
	"github.com/shopspring/decimal"
)

// Solver finds the itemized deductions at which the old regime stops costing
// more than the new one. Old-regime tax never increases with deductions, so
// the predicate "old <= new" is monotone and bisection applies.
type Solver struct {
	CalcEngine *calculation.CalculationEngine
	Options    SolverOptions
}

// NewSolver creates a new break-even solver
func NewSolver(calcEngine *calculation.CalculationEngine, options SolverOptions) *Solver {
	return &Solver{
		CalcEngine: calcEngine,
		Options:    options,
	}
}

// NewDefaultSolver creates a solver with default options
func NewDefaultSolver(calcEngine *calculation.CalculationEngine) *Solver {
	return NewSolver(calcEngine, DefaultSolverOptions())
}

// Optimize performs the search described by the request
func (s *Solver) Optimize(ctx context.Context, req OptimizationRequest) (*OptimizationResult, error) {
	if err := req.Constraints.Validate(); err != nil {
		return nil, err
	}

	if req.MaxIterations == 0 {
		req.MaxIterations = s.Options.MaxIterations
	}
	if !req.Tolerance.IsPositive() {
		req.Tolerance = s.Options.Tolerance
	}
	if !req.Tolerance.IsPositive() {
		req.Tolerance = decimal.NewFromInt(1)
	}

	switch req.Target {
	case OptimizeTotalDeductions, OptimizeSection80C:
		return s.solve(ctx, req)
	default:
		return nil, &SolverError{
			Operation: "optimize",
			Message:   fmt.Sprintf("unsupported optimization target: %s", req.Target),
		}
	}
}

// split maps a searched amount onto 80C and 80D for the request's target
func (s *Solver) split(req OptimizationRequest, amount, cap80C, cap80D decimal.Decimal) (decimal.Decimal, decimal.Decimal) {
	if req.Target == OptimizeSection80C {
		return decimal.Min(amount, cap80C), decimal.Min(req.Income.Section80D, cap80D)
	}
	c := decimal.Min(amount, cap80C)
	d := decimal.Min(amount.Sub(c), cap80D)
	return c, d
}

func (s *Solver) oldTax(req OptimizationRequest, c, d decimal.Decimal) (decimal.Decimal, error) {
	in := req.Income
	in.Regime = domain.RegimeOld
	in.Section80C = c
	in.Section80D = d
	est, err := s.CalcEngine.EstimateTax(in)
	if err != nil {
		return decimal.Zero, err
	}
	return est.TotalTax, nil
}

func (s *Solver) solve(ctx context.Context, req OptimizationRequest) (*OptimizationResult, error) {
	op := "optimize_" + string(req.Target)

	caps := s.CalcEngine.TaxConfig().DeductionCaps()
	cap80C, cap80D := caps.Section80C, caps.Section80D
	if m := req.Constraints.MaxSection80C; m != nil {
		cap80C = decimal.Min(cap80C, *m)
	}
	if m := req.Constraints.MaxSection80D; m != nil {
		cap80D = decimal.Min(cap80D, *m)
	}

	upper := cap80C
	current := decimal.Min(req.Income.Section80C, cap80C)
	if req.Target == OptimizeTotalDeductions {
		upper = cap80C.Add(cap80D)
		current = current.Add(decimal.Min(req.Income.Section80D, cap80D))
	}

	newIn := req.Income
	newIn.Regime = domain.RegimeNew
	newEst, err := s.CalcEngine.EstimateTax(newIn)
	if err != nil {
		return nil, &SolverError{Operation: op, Message: "failed to estimate new regime", Cause: err}
	}
	newTax := newEst.TotalTax

	curIn := req.Income
	curIn.Regime = domain.RegimeOld
	curEst, err := s.CalcEngine.EstimateTax(curIn)
	if err != nil {
		return nil, &SolverError{Operation: op, Message: "failed to estimate old regime", Cause: err}
	}

	result := &OptimizationResult{
		Request:           req,
		NewRegimeTax:      newTax,
		CurrentOldTax:     curEst.TotalTax,
		MaxSearchedAmount: upper,
	}

	finish := func(amount, tax decimal.Decimal) *OptimizationResult {
		c, d := s.split(req, amount, cap80C, cap80D)
		result.Section80C = c
		result.Section80D = d
		result.TotalDeductions = c.Add(d)
		result.AdditionalNeeded = decimal.Max(decimal.Zero, amount.Sub(current))
		result.OldRegimeTax = tax
		result.SavingsVsCurrent = curEst.TotalTax.Sub(tax)
		return result
	}

	// Steps are whole multiples of the tolerance; the last step is the cap.
	steps := upper.Div(req.Tolerance).Ceil().IntPart()
	at := func(k int64) decimal.Decimal {
		return decimal.Min(upper, req.Tolerance.Mul(decimal.NewFromInt(k)))
	}
	eval := func(k int64) (decimal.Decimal, error) {
		c, d := s.split(req, at(k), cap80C, cap80D)
		return s.oldTax(req, c, d)
	}

	lowTax, err := eval(0)
	if err != nil {
		return nil, &SolverError{Operation: op, Message: "failed to estimate old regime", Cause: err}
	}
	if lowTax.LessThanOrEqual(newTax) {
		result.Success = true
		result.AlreadyCheaper = true
		result.ConvergenceInfo = "Old regime is no costlier even without itemized deductions"
		return finish(decimal.Zero, lowTax), nil
	}

	highTax, err := eval(steps)
	if err != nil {
		return nil, &SolverError{Operation: op, Message: "failed to estimate old regime", Cause: err}
	}
	if highTax.GreaterThan(newTax) {
		result.ConvergenceInfo = "Not reachable within caps: old regime costs more even with maximum deductions"
		return finish(upper, highTax), nil
	}

	lo, hi := int64(0), steps
	hiTax := highTax
	for hi-lo > 1 {
		if result.Iterations >= req.MaxIterations {
			return nil, &SolverError{
				Operation: op,
				Message:   fmt.Sprintf("search did not converge after %d iterations", req.MaxIterations),
			}
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		result.Iterations++

		mid := lo + (hi-lo)/2
		tax, err := eval(mid)
		if err != nil {
			return nil, &SolverError{Operation: op, Message: "failed to estimate old regime", Cause: err}
		}
		if tax.LessThanOrEqual(newTax) {
			hi, hiTax = mid, tax
		} else {
			lo = mid
		}
	}

	result.Success = true
	result.ConvergenceInfo = fmt.Sprintf("Bisection converged to within %s", req.Tolerance.String())
	s.CalcEngine.Logger.Debugf("break-even %s at %s after %d iterations", req.Target, at(hi), result.Iterations)
	return finish(at(hi), hiTax), nil
}
