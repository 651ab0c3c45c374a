package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Regime identifies one of the two mutually exclusive income tax rule sets
type Regime string

const (
	RegimeNew Regime = "new"
	RegimeOld Regime = "old"
)

// Valid reports whether r is one of the known regimes
func (r Regime) Valid() bool {
	return r == RegimeNew || r == RegimeOld
}

// Title returns the display name of the regime
func (r Regime) Title() string {
	if r == RegimeOld {
		return "Old"
	}
	return "New"
}

// NormalizeRegime maps free text to a regime. Anything that is not "old"
// (after trimming and lower-casing) is treated as the new regime.
func NormalizeRegime(s string) Regime {
	if Regime(strings.ToLower(strings.TrimSpace(s))) == RegimeOld {
		return RegimeOld
	}
	return RegimeNew
}

// TaxSlab is one bracket of a progressive schedule. A nil UpTo marks the
// final, unbounded slab.
type TaxSlab struct {
	UpTo *decimal.Decimal `yaml:"up_to,omitempty" json:"up_to,omitempty"`
	Rate decimal.Decimal  `yaml:"rate" json:"rate"`
}

// Bounded reports whether the slab has an upper bound
func (s TaxSlab) Bounded() bool {
	return s.UpTo != nil
}

// RegimeRules contains the deduction, rebate and slab data for one regime
type RegimeRules struct {
	RebateThreshold   decimal.Decimal `yaml:"rebate_threshold" json:"rebate_threshold"`
	StandardDeduction decimal.Decimal `yaml:"standard_deduction" json:"standard_deduction"`
	Slabs             []TaxSlab       `yaml:"slabs" json:"slabs"`
}

// DeductionCaps holds the itemized deduction limits honored by the old regime
type DeductionCaps struct {
	Section80C decimal.Decimal `yaml:"section_80c" json:"section_80c"`
	Section80D decimal.Decimal `yaml:"section_80d" json:"section_80d"`
}

// TaxRulesMetadata describes where a rules document came from
type TaxRulesMetadata struct {
	FinancialYear string `yaml:"financial_year" json:"financial_year"`
	LastUpdated   string `yaml:"last_updated,omitempty" json:"last_updated,omitempty"`
	Description   string `yaml:"description,omitempty" json:"description,omitempty"`
}

// TaxRules is the on-disk shape of the tax configuration. It is loaded from
// YAML and converted into an immutable calculation.TaxConfig.
type TaxRules struct {
	Metadata      TaxRulesMetadata `yaml:"metadata" json:"metadata"`
	CessRate      decimal.Decimal  `yaml:"cess_rate" json:"cess_rate"`
	NewRegime     RegimeRules      `yaml:"new_regime" json:"new_regime"`
	OldRegime     RegimeRules      `yaml:"old_regime" json:"old_regime"`
	DeductionCaps DeductionCaps    `yaml:"old_regime_deduction_caps" json:"old_regime_deduction_caps"`
}

// TaxEstimate is the detailed outcome of one regime estimate
type TaxEstimate struct {
	Regime            Regime          `json:"regime"`
	GrossIncome       decimal.Decimal `json:"gross_income"`
	StandardDeduction decimal.Decimal `json:"standard_deduction"`
	OtherDeductions   decimal.Decimal `json:"other_deductions"`
	TaxableIncome     decimal.Decimal `json:"taxable_income"`
	BaseTax           decimal.Decimal `json:"base_tax"`
	Rebate            decimal.Decimal `json:"rebate"`
	Cess              decimal.Decimal `json:"cess"`
	TotalTax          decimal.Decimal `json:"total_tax"`
	EffectiveRate     decimal.Decimal `json:"effective_rate"`
}

// TaxAfterRebate returns the base tax less the rebate
func (e TaxEstimate) TaxAfterRebate() decimal.Decimal {
	return e.BaseTax.Sub(e.Rebate)
}
