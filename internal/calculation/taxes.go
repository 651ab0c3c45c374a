package calculation

import (
	"fmt"

	"github.com/rgehrsitz/pfgo/internal/domain"
	"github.com/shopspring/decimal"
)

// TAX CALCULATION ASSUMPTIONS:
//
// 1. Default rules are FY 2024-25 (AY 2025-26) for resident individuals.
//
// 2. Rebate u/s 87A is all-or-nothing: taxable income at or below the
//    threshold waives the whole base tax, one rupee above waives nothing.
//    Marginal relief is not modelled.
//
// 3. Health and education cess is a flat percentage of post-rebate tax.
//    Surcharge on high incomes is not modelled.
//
// 4. Itemized deductions (80C, 80D) apply to the old regime only and are
//    truncated to their caps.

func amount(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}

// DefaultTaxRules returns the FY 2024-25 rules
func DefaultTaxRules() domain.TaxRules {
	return domain.TaxRules{
		Metadata: domain.TaxRulesMetadata{
			FinancialYear: "2024-25",
			Description:   "Resident individual, below 60",
		},
		CessRate: decimal.NewFromFloat(0.04),
		NewRegime: domain.RegimeRules{
			RebateThreshold:   decimal.NewFromInt(700000),
			StandardDeduction: decimal.NewFromInt(50000),
			Slabs: []domain.TaxSlab{
				{UpTo: amount(300000), Rate: decimal.Zero},
				{UpTo: amount(600000), Rate: decimal.NewFromFloat(0.05)},
				{UpTo: amount(900000), Rate: decimal.NewFromFloat(0.10)},
				{UpTo: amount(1200000), Rate: decimal.NewFromFloat(0.15)},
				{UpTo: amount(1500000), Rate: decimal.NewFromFloat(0.20)},
				{Rate: decimal.NewFromFloat(0.30)},
			},
		},
		OldRegime: domain.RegimeRules{
			RebateThreshold:   decimal.NewFromInt(500000),
			StandardDeduction: decimal.NewFromInt(50000),
			Slabs: []domain.TaxSlab{
				{UpTo: amount(250000), Rate: decimal.Zero},
				{UpTo: amount(500000), Rate: decimal.NewFromFloat(0.05)},
				{UpTo: amount(1000000), Rate: decimal.NewFromFloat(0.20)},
				{Rate: decimal.NewFromFloat(0.30)},
			},
		},
		DeductionCaps: domain.DeductionCaps{
			Section80C: decimal.NewFromInt(150000),
			Section80D: decimal.NewFromInt(25000),
		},
	}
}

// regimeConfig is the validated form of domain.RegimeRules
type regimeConfig struct {
	rebateThreshold   decimal.Decimal
	standardDeduction decimal.Decimal
	slabs             SlabTable
}

// TaxConfig is the read-only rule set shared by every estimate. Build it once
// with NewTaxConfig and pass it around by pointer.
type TaxConfig struct {
	metadata domain.TaxRulesMetadata
	cessRate decimal.Decimal
	caps     domain.DeductionCaps
	newRules regimeConfig
	oldRules regimeConfig
}

// NewTaxConfig validates rules and copies them into an immutable TaxConfig
func NewTaxConfig(rules domain.TaxRules) (*TaxConfig, error) {
	if rules.CessRate.IsNegative() || rules.CessRate.GreaterThan(one) {
		return nil, fmt.Errorf("cess rate %s outside [0,1]", rules.CessRate.String())
	}
	if rules.DeductionCaps.Section80C.IsNegative() {
		return nil, fmt.Errorf("80C cap cannot be negative")
	}
	if rules.DeductionCaps.Section80D.IsNegative() {
		return nil, fmt.Errorf("80D cap cannot be negative")
	}

	newRules, err := newRegimeConfig(rules.NewRegime)
	if err != nil {
		return nil, fmt.Errorf("new regime: %w", err)
	}
	oldRules, err := newRegimeConfig(rules.OldRegime)
	if err != nil {
		return nil, fmt.Errorf("old regime: %w", err)
	}

	return &TaxConfig{
		metadata: rules.Metadata,
		cessRate: rules.CessRate,
		caps:     rules.DeductionCaps,
		newRules: newRules,
		oldRules: oldRules,
	}, nil
}

// DefaultTaxConfig returns the config built from DefaultTaxRules
func DefaultTaxConfig() *TaxConfig {
	cfg, err := NewTaxConfig(DefaultTaxRules())
	if err != nil {
		panic(fmt.Sprintf("default tax rules are invalid: %v", err))
	}
	return cfg
}

func newRegimeConfig(r domain.RegimeRules) (regimeConfig, error) {
	if r.RebateThreshold.IsNegative() {
		return regimeConfig{}, fmt.Errorf("rebate threshold cannot be negative")
	}
	if r.StandardDeduction.IsNegative() {
		return regimeConfig{}, fmt.Errorf("standard deduction cannot be negative")
	}
	slabs, err := NewSlabTable(r.Slabs)
	if err != nil {
		return regimeConfig{}, err
	}
	return regimeConfig{
		rebateThreshold:   r.RebateThreshold,
		standardDeduction: r.StandardDeduction,
		slabs:             slabs,
	}, nil
}

func (c *TaxConfig) regime(r domain.Regime) regimeConfig {
	if r == domain.RegimeOld {
		return c.oldRules
	}
	return c.newRules
}

// CessRate returns the flat cess applied to post-rebate tax
func (c *TaxConfig) CessRate() decimal.Decimal { return c.cessRate }

// DeductionCaps returns the old-regime itemized deduction caps
func (c *TaxConfig) DeductionCaps() domain.DeductionCaps { return c.caps }

// Metadata returns the descriptive header of the rules
func (c *TaxConfig) Metadata() domain.TaxRulesMetadata { return c.metadata }

// RebateThreshold returns the 87A threshold for a regime
func (c *TaxConfig) RebateThreshold(r domain.Regime) decimal.Decimal {
	return c.regime(r).rebateThreshold
}

// StandardDeduction returns the salaried standard deduction for a regime
func (c *TaxConfig) StandardDeduction(r domain.Regime) decimal.Decimal {
	return c.regime(r).standardDeduction
}

// Slabs returns the slab table for a regime
func (c *TaxConfig) Slabs(r domain.Regime) SlabTable {
	return c.regime(r).slabs
}

// Rules converts the config back into its document form
func (c *TaxConfig) Rules() domain.TaxRules {
	return domain.TaxRules{
		Metadata: c.metadata,
		CessRate: c.cessRate,
		NewRegime: domain.RegimeRules{
			RebateThreshold:   c.newRules.rebateThreshold,
			StandardDeduction: c.newRules.standardDeduction,
			Slabs:             c.newRules.slabs.Slabs(),
		},
		OldRegime: domain.RegimeRules{
			RebateThreshold:   c.oldRules.rebateThreshold,
			StandardDeduction: c.oldRules.standardDeduction,
			Slabs:             c.oldRules.slabs.Slabs(),
		},
		DeductionCaps: c.caps,
	}
}

// TaxInput carries the arguments of one estimate. Section80C and Section80D
// are only honored under the old regime.
type TaxInput struct {
	GrossAnnualIncome decimal.Decimal
	IsSalaried        bool
	Regime            domain.Regime
	Section80C        decimal.Decimal
	Section80D        decimal.Decimal
}

// IncomeTaxCalculator estimates tax under either regime
type IncomeTaxCalculator struct {
	Config *TaxConfig
	Logger Logger
}

// NewIncomeTaxCalculator creates a calculator with the default rules
func NewIncomeTaxCalculator() *IncomeTaxCalculator {
	return NewIncomeTaxCalculatorWithConfig(DefaultTaxConfig())
}

// NewIncomeTaxCalculatorWithConfig creates a calculator with the given rules
func NewIncomeTaxCalculatorWithConfig(cfg *TaxConfig) *IncomeTaxCalculator {
	if cfg == nil {
		cfg = DefaultTaxConfig()
	}
	return &IncomeTaxCalculator{Config: cfg, Logger: NopLogger{}}
}

// Estimate computes the full tax breakdown for one regime. An unknown regime
// is treated as the new regime.
func (tc *IncomeTaxCalculator) Estimate(in TaxInput) (domain.TaxEstimate, error) {
	if err := requireNonNegative("gross annual income", in.GrossAnnualIncome); err != nil {
		return domain.TaxEstimate{}, err
	}
	if err := requireNonNegative("80C deduction", in.Section80C); err != nil {
		return domain.TaxEstimate{}, err
	}
	if err := requireNonNegative("80D deduction", in.Section80D); err != nil {
		return domain.TaxEstimate{}, err
	}

	regime := in.Regime
	if !regime.Valid() {
		tc.logger().Warnf("unknown regime %q, using new regime", string(regime))
		regime = domain.RegimeNew
	}

	cfg := tc.Config
	rules := cfg.regime(regime)

	stdDeduction := decimal.Zero
	if in.IsSalaried {
		stdDeduction = rules.standardDeduction
	}

	other := decimal.Zero
	if regime == domain.RegimeOld {
		caps := cfg.caps
		other = decimal.Min(caps.Section80C, in.Section80C).Add(decimal.Min(caps.Section80D, in.Section80D))
	}

	taxable := decimal.Max(decimal.Zero, in.GrossAnnualIncome.Sub(stdDeduction).Sub(other))
	baseTax := SlabTax(taxable, rules.slabs)

	rebate := decimal.Zero
	if taxable.LessThanOrEqual(rules.rebateThreshold) {
		rebate = baseTax
	}
	afterRebate := decimal.Max(decimal.Zero, baseTax.Sub(rebate))
	cess := afterRebate.Mul(cfg.cessRate)
	total := afterRebate.Add(cess)

	effective := decimal.Zero
	if in.GrossAnnualIncome.IsPositive() {
		effective = total.Div(in.GrossAnnualIncome)
	}

	tc.logger().Debugf("tax estimate regime=%s gross=%s taxable=%s base=%s rebate=%s total=%s",
		regime, in.GrossAnnualIncome, taxable, baseTax, rebate, total)

	return domain.TaxEstimate{
		Regime:            regime,
		GrossIncome:       in.GrossAnnualIncome,
		StandardDeduction: stdDeduction,
		OtherDeductions:   other,
		TaxableIncome:     taxable,
		BaseTax:           baseTax,
		Rebate:            rebate,
		Cess:              cess,
		TotalTax:          total,
		EffectiveRate:     effective,
	}, nil
}

func (tc *IncomeTaxCalculator) logger() Logger {
	if tc.Logger == nil {
		return NopLogger{}
	}
	return tc.Logger
}
