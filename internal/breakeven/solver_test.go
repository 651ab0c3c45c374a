package breakeven

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/rgehrsitz/pfgo/internal/calculation"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func newSolver() *Solver {
	return NewDefaultSolver(calculation.NewCalculationEngine())
}

func assertAmount(t *testing.T, want int64, got decimal.Decimal, msg string) {
	t.Helper()
	assert.True(t, got.Equal(d(want)), "%s: expected %d, got %s", msg, want, got.String())
}

func TestNewDefaultSolver(t *testing.T) {
	engine := calculation.NewCalculationEngine()
	solver := NewDefaultSolver(engine)

	assert.Same(t, engine, solver.CalcEngine)
	assert.Equal(t, DefaultSolverOptions(), solver.Options)
}

func TestOptimize_TotalDeductions(t *testing.T) {
	res, err := newSolver().Optimize(context.Background(), OptimizationRequest{
		Income: calculation.TaxInput{GrossAnnualIncome: d(800000), IsSalaried: true},
		Target: OptimizeTotalDeductions,
	})
	require.NoError(t, err)

	assert.True(t, res.Success)
	assert.False(t, res.AlreadyCheaper)
	assertAmount(t, 150000, res.Section80C, "80C")
	assertAmount(t, 12500, res.Section80D, "80D")
	assertAmount(t, 162500, res.TotalDeductions, "total")
	assertAmount(t, 162500, res.AdditionalNeeded, "additional")
	assertAmount(t, 31200, res.NewRegimeTax, "new tax")
	assertAmount(t, 31200, res.OldRegimeTax, "old tax at break-even")
	assertAmount(t, 65000, res.CurrentOldTax, "current old tax")
	assertAmount(t, 33800, res.SavingsVsCurrent, "savings")
	assert.Greater(t, res.Iterations, 0)
	assert.LessOrEqual(t, res.Iterations, 64)
}

func TestOptimize_Section80COnly(t *testing.T) {
	res, err := newSolver().Optimize(context.Background(), OptimizationRequest{
		Income: calculation.TaxInput{
			GrossAnnualIncome: d(800000),
			IsSalaried:        true,
			Section80C:        d(50000),
			Section80D:        d(25000),
		},
		Target: OptimizeSection80C,
	})
	require.NoError(t, err)

	assert.True(t, res.Success)
	assertAmount(t, 137500, res.Section80C, "80C")
	assertAmount(t, 25000, res.Section80D, "80D is held fixed")
	assertAmount(t, 87500, res.AdditionalNeeded, "additional beyond current 80C")
}

func TestOptimize_Section80COnlyRespects80DConstraint(t *testing.T) {
	max80D := d(10000)
	res, err := newSolver().Optimize(context.Background(), OptimizationRequest{
		Income: calculation.TaxInput{
			GrossAnnualIncome: d(800000),
			IsSalaried:        true,
			Section80D:        d(25000),
		},
		Target:      OptimizeSection80C,
		Constraints: Constraints{MaxSection80D: &max80D},
	})
	require.NoError(t, err)

	assertAmount(t, 10000, res.Section80D, "80D held at the constraint")
	assert.True(t, res.TotalDeductions.Equal(res.Section80C.Add(res.Section80D)))
}

func TestOptimize_NotReachable(t *testing.T) {
	res, err := newSolver().Optimize(context.Background(), OptimizationRequest{
		Income: calculation.TaxInput{GrossAnnualIncome: d(1500000), IsSalaried: true},
		Target: OptimizeTotalDeductions,
	})
	require.NoError(t, err)

	assert.False(t, res.Success)
	assert.Contains(t, res.ConvergenceInfo, "Not reachable within caps")
	assertAmount(t, 175000, res.TotalDeductions, "maxed deductions")
	assertAmount(t, 145600, res.NewRegimeTax, "new tax")
	assert.True(t, res.OldRegimeTax.GreaterThan(res.NewRegimeTax))
}

func TestOptimize_ConstraintsLowerTheCap(t *testing.T) {
	max80C := d(100000)
	res, err := newSolver().Optimize(context.Background(), OptimizationRequest{
		Income:      calculation.TaxInput{GrossAnnualIncome: d(800000), IsSalaried: true},
		Target:      OptimizeTotalDeductions,
		Constraints: Constraints{MaxSection80C: &max80C},
	})
	require.NoError(t, err)

	assert.False(t, res.Success)
	assertAmount(t, 125000, res.MaxSearchedAmount, "search bound")
}

func TestOptimize_AlreadyCheaper(t *testing.T) {
	res, err := newSolver().Optimize(context.Background(), OptimizationRequest{
		Income: calculation.TaxInput{GrossAnnualIncome: d(500000)},
		Target: OptimizeTotalDeductions,
	})
	require.NoError(t, err)

	assert.True(t, res.Success)
	assert.True(t, res.AlreadyCheaper)
	assert.True(t, res.TotalDeductions.IsZero())
	assert.Equal(t, 0, res.Iterations)
}

func TestOptimize_Errors(t *testing.T) {
	solver := newSolver()

	_, err := solver.Optimize(context.Background(), OptimizationRequest{Target: "ss_age"})
	var solverErr *SolverError
	require.True(t, errors.As(err, &solverErr))
	assert.Equal(t, "optimize", solverErr.Operation)

	neg := d(-1)
	_, err = solver.Optimize(context.Background(), OptimizationRequest{
		Target:      OptimizeTotalDeductions,
		Constraints: Constraints{MaxSection80D: &neg},
	})
	require.True(t, errors.As(err, &solverErr))
	assert.Equal(t, "validate_constraints", solverErr.Operation)

	_, err = solver.Optimize(context.Background(), OptimizationRequest{
		Income: calculation.TaxInput{GrossAnnualIncome: d(-5)},
		Target: OptimizeTotalDeductions,
	})
	assert.ErrorIs(t, err, calculation.ErrInvalidInput)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = solver.Optimize(ctx, OptimizationRequest{
		Income: calculation.TaxInput{GrossAnnualIncome: d(800000), IsSalaried: true},
		Target: OptimizeTotalDeductions,
	})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestOptimizeAllTargets(t *testing.T) {
	md, err := newSolver().OptimizeAllTargets(context.Background(), calculation.TaxInput{
		GrossAnnualIncome: d(800000),
		IsSalaried:        true,
	})
	require.NoError(t, err)
	require.Len(t, md.Results, 2)

	assert.True(t, md.Results[0].Success)
	assert.False(t, md.Results[1].Success, "80C alone cannot reach 1,62,500")
	require.Len(t, md.Recommendations, 2)
	assert.Contains(t, md.Recommendations[0], "invest ₹1,62,500.00 more")
	assert.Contains(t, md.Recommendations[1], "new regime stays cheaper")
}

func TestFormatters(t *testing.T) {
	res, err := newSolver().Optimize(context.Background(), OptimizationRequest{
		Income: calculation.TaxInput{GrossAnnualIncome: d(800000), IsSalaried: true},
		Target: OptimizeTotalDeductions,
	})
	require.NoError(t, err)

	table := (&TableFormatter{}).Format(res)
	assert.Contains(t, table, "DEDUCTION BREAK-EVEN")
	assert.Contains(t, table, "₹1,62,500.00")
	assert.Contains(t, table, "✓ Break-even found")

	out, err := (&JSONFormatter{Pretty: true}).Format(res)
	require.NoError(t, err)
	var decoded OptimizationResult
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.True(t, decoded.TotalDeductions.Equal(d(162500)))
	assert.Equal(t, OptimizeTotalDeductions, decoded.Request.Target)
}
