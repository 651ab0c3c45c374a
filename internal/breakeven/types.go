package breakeven

import (
	"github.com/rgehrsitz/pfgo/internal/calculation"
	"github.com/shopspring/decimal"
)

// OptimizationTarget defines which deduction the solver varies
type OptimizationTarget string

const (
	// OptimizeTotalDeductions varies 80C and 80D together, filling 80C first
	OptimizeTotalDeductions OptimizationTarget = "total_deductions"
	// OptimizeSection80C varies 80C only, keeping the requested 80D
	OptimizeSection80C OptimizationTarget = "section_80c"
	OptimizeAll        OptimizationTarget = "all"
)

// Constraints narrow the search below the statutory caps
type Constraints struct {
	// Upper bounds the user can actually invest (nil means the statutory cap)
	MaxSection80C *decimal.Decimal `json:"max_section_80c,omitempty"`
	MaxSection80D *decimal.Decimal `json:"max_section_80d,omitempty"`
}

// OptimizationRequest defines the parameters for a solver run
type OptimizationRequest struct {
	Income        calculation.TaxInput `json:"-"`
	Target        OptimizationTarget   `json:"target"`
	Constraints   Constraints          `json:"constraints"`
	MaxIterations int                  `json:"max_iterations"` // Maximum bisection steps
	Tolerance     decimal.Decimal      `json:"tolerance"`      // Search granularity in rupees
}

// OptimizationResult contains the results of a solver run
type OptimizationResult struct {
	// Solver metadata
	Request         OptimizationRequest `json:"request"`
	Success         bool                `json:"success"` // False when the break-even is not reachable within caps
	AlreadyCheaper  bool                `json:"already_cheaper"`
	Iterations      int                 `json:"iterations"`
	ConvergenceInfo string              `json:"convergence_info"`

	// Break-even deductions
	Section80C        decimal.Decimal `json:"section_80c"`
	Section80D        decimal.Decimal `json:"section_80d"`
	TotalDeductions   decimal.Decimal `json:"total_deductions"`
	AdditionalNeeded  decimal.Decimal `json:"additional_needed"`
	MaxSearchedAmount decimal.Decimal `json:"max_searched_amount"`

	// Tax at the break-even point
	OldRegimeTax     decimal.Decimal `json:"old_regime_tax"`
	NewRegimeTax     decimal.Decimal `json:"new_regime_tax"`
	CurrentOldTax    decimal.Decimal `json:"current_old_tax"`
	SavingsVsCurrent decimal.Decimal `json:"savings_vs_current"`
}

// MultiDimensionalResult contains results when solving for every target
type MultiDimensionalResult struct {
	Results         []OptimizationResult `json:"results"`
	Recommendations []string             `json:"recommendations"`
}

// SolverOptions configures the solver algorithm
type SolverOptions struct {
	Tolerance     decimal.Decimal // Search granularity in rupees
	MaxIterations int             // Maximum bisection steps
}

// DefaultSolverOptions returns default solver configuration
func DefaultSolverOptions() SolverOptions {
	return SolverOptions{
		Tolerance:     decimal.NewFromInt(1), // ₹1 granularity
		MaxIterations: 64,
	}
}

// Validate checks that the constraints are usable
func (c *Constraints) Validate() error {
	if c.MaxSection80C != nil && c.MaxSection80C.IsNegative() {
		return &SolverError{
			Operation: "validate_constraints",
			Message:   "max_section_80c cannot be negative",
		}
	}
	if c.MaxSection80D != nil && c.MaxSection80D.IsNegative() {
		return &SolverError{
			Operation: "validate_constraints",
			Message:   "max_section_80d cannot be negative",
		}
	}
	return nil
}

// SolverError represents errors from the break-even solver
type SolverError struct {
	Operation string
	Message   string
	Cause     error
}

func (e *SolverError) Error() string {
	if e.Cause != nil {
		return e.Operation + ": " + e.Message + ": " + e.Cause.Error()
	}
	return e.Operation + ": " + e.Message
}

func (e *SolverError) Unwrap() error {
	return e.Cause
}
