package calculation

import (
	"github.com/rgehrsitz/pfgo/internal/domain"
	"github.com/shopspring/decimal"
)

// CalculationEngine is the entry point used by the CLI, chat and TUI front
// ends. It holds the shared tax rules and a logger; every calculator it
// exposes is otherwise stateless and safe for concurrent use.
type CalculationEngine struct {
	TaxCalc *IncomeTaxCalculator
	Logger  Logger
}

// NewCalculationEngine creates an engine with the default tax rules
func NewCalculationEngine() *CalculationEngine {
	return NewCalculationEngineWithConfig(DefaultTaxConfig())
}

// NewCalculationEngineWithConfig creates an engine with the given tax rules
func NewCalculationEngineWithConfig(cfg *TaxConfig) *CalculationEngine {
	ce := &CalculationEngine{TaxCalc: NewIncomeTaxCalculatorWithConfig(cfg)}
	ce.SetLogger(nil)
	return ce
}

// SetLogger sets the logger; nil installs a no-op logger
func (ce *CalculationEngine) SetLogger(l Logger) {
	if l == nil {
		l = NopLogger{}
	}
	ce.Logger = l
	ce.TaxCalc.Logger = l
}

// TaxConfig returns the rules the engine estimates with
func (ce *CalculationEngine) TaxConfig() *TaxConfig {
	return ce.TaxCalc.Config
}

// EstimateTax runs one regime estimate
func (ce *CalculationEngine) EstimateTax(in TaxInput) (domain.TaxEstimate, error) {
	est, err := ce.TaxCalc.Estimate(in)
	if err != nil {
		ce.Logger.Debugf("tax estimate rejected: %v", err)
		return domain.TaxEstimate{}, err
	}
	return est, nil
}

// ProjectSIP returns the future value of a monthly SIP
func (ce *CalculationEngine) ProjectSIP(monthly, annualReturnPct, years decimal.Decimal) (domain.SIPProjection, error) {
	p, err := ProjectSIP(monthly, annualReturnPct, years)
	if err != nil {
		ce.Logger.Debugf("sip projection rejected: %v", err)
		return p, err
	}
	ce.Logger.Debugf("sip projection monthly=%s rate=%s months=%d fv=%s", monthly, annualReturnPct, p.Months, p.FutureValue)
	return p, nil
}

// PlanGoal returns the monthly SIP required to reach target
func (ce *CalculationEngine) PlanGoal(target, annualReturnPct, years decimal.Decimal) (domain.SIPProjection, error) {
	p, err := PlanGoal(target, annualReturnPct, years)
	if err != nil {
		ce.Logger.Debugf("goal plan rejected: %v", err)
		return p, err
	}
	ce.Logger.Debugf("goal plan target=%s rate=%s months=%d sip=%s", target, annualReturnPct, p.Months, p.MonthlyContribution)
	return p, nil
}

// SummarizeLoan returns the EMI and totals for a loan
func (ce *CalculationEngine) SummarizeLoan(principal, annualRatePct, years decimal.Decimal) (domain.LoanSummary, error) {
	s, err := SummarizeLoan(principal, annualRatePct, years)
	if err != nil {
		ce.Logger.Debugf("loan summary rejected: %v", err)
		return s, err
	}
	ce.Logger.Debugf("loan principal=%s rate=%s months=%d emi=%s", principal, annualRatePct, s.Months, s.MonthlyPayment)
	return s, nil
}

// PlanRetirement sizes the corpus and the SIP that builds it
func (ce *CalculationEngine) PlanRetirement(in RetirementInput, accumulationReturnPct decimal.Decimal) (domain.RetirementPlan, error) {
	p, err := PlanRetirement(in, accumulationReturnPct)
	if err != nil {
		ce.Logger.Debugf("retirement plan rejected: %v", err)
		return p, err
	}
	ce.Logger.Debugf("retirement corpus=%s sip=%s", p.Target.CorpusRequired, p.RequiredMonthlySIP)
	return p, nil
}

// SizeEmergencyFund returns the emergency buffer target
func (ce *CalculationEngine) SizeEmergencyFund(monthlyExpense decimal.Decimal, months int) (domain.EmergencyFund, error) {
	return SizeEmergencyFund(monthlyExpense, months)
}

// SuggestAllocation returns the portfolio split for a risk category
func (ce *CalculationEngine) SuggestAllocation(risk domain.RiskCategory, horizonYears int) (domain.Allocation, error) {
	if !risk.Valid() {
		ce.Logger.Warnf("unknown risk category %q, using moderate", string(risk))
	}
	return SuggestAllocation(risk, horizonYears)
}
