package output

import (
	"fmt"
	"strings"

	"github.com/rgehrsitz/pfgo/internal/domain"
	"github.com/shopspring/decimal"
)

// Row is one label/value line of a report.
type Row struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Report is a calculator outcome ready for rendering. Rows carry the
// human-readable view; Result carries the raw value for machine formats.
type Report struct {
	Kind   string   `json:"kind"`
	Title  string   `json:"title"`
	Rows   []Row    `json:"-"`
	Notes  []string `json:"notes,omitempty"`
	Result any      `json:"result"`
}

func (r *Report) add(label, value string) {
	r.Rows = append(r.Rows, Row{Label: label, Value: value})
}

// NewTaxReport builds the tax estimate breakdown. Zero deductions and a zero
// rebate are omitted from the rows.
func NewTaxReport(est domain.TaxEstimate, cessRate decimal.Decimal) *Report {
	r := &Report{Kind: "tax", Title: "Tax Estimate", Result: est}
	r.add("Regime", est.Regime.Title())
	r.add("Gross Income", FormatCurrency(est.GrossIncome))
	if !est.StandardDeduction.IsZero() {
		r.add("Std Deduction", FormatCurrency(est.StandardDeduction))
	}
	if !est.OtherDeductions.IsZero() {
		r.add("Other Deductions", FormatCurrency(est.OtherDeductions))
	}
	r.add("Taxable Income", FormatCurrency(est.TaxableIncome))
	r.add("Base Tax", FormatCurrency(est.BaseTax))
	if !est.Rebate.IsZero() {
		r.add("Rebate (87A)", "-"+FormatCurrency(est.Rebate))
	}
	r.add(fmt.Sprintf("Cess (%s%%)", cessRate.Mul(hundred).String()), FormatCurrency(est.Cess))
	r.add("Total Tax", FormatCurrency(est.TotalTax))
	r.add("Effective Rate", FormatRate(est.EffectiveRate))
	return r
}

// NewSIPReport builds the future value of a monthly SIP.
func NewSIPReport(p domain.SIPProjection) *Report {
	r := &Report{Kind: "sip", Title: "SIP Projection", Result: p}
	r.add("Monthly SIP", FormatCurrency(p.MonthlyContribution))
	r.add("Annual Return", FormatPercentage(p.AnnualReturnPct))
	r.add("Months", fmt.Sprintf("%d", p.Months))
	r.add("Total Invested", FormatCurrency(p.TotalInvested))
	r.add("Future Value", FormatCurrency(p.FutureValue))
	r.add("Gain", FormatCurrency(p.Gain()))
	return r
}

// NewGoalReport builds the required monthly SIP for a target.
func NewGoalReport(p domain.SIPProjection) *Report {
	r := &Report{Kind: "goal", Title: "Goal Plan", Result: p}
	r.add("Target", FormatCurrency(p.FutureValue))
	r.add("Years", p.Years.String())
	r.add("Annual Return", FormatPercentage(p.AnnualReturnPct))
	r.add("Required SIP", FormatCurrency(p.MonthlyContribution))
	r.add("Total Invested", FormatCurrency(p.TotalInvested))
	return r
}

// NewLoanReport builds the EMI summary.
func NewLoanReport(s domain.LoanSummary) *Report {
	r := &Report{Kind: "emi", Title: "Loan EMI", Result: s}
	r.add("Principal", FormatCurrency(s.Principal))
	r.add("Annual Interest", FormatPercentage(s.AnnualRatePct))
	r.add("Months", fmt.Sprintf("%d", s.Months))
	r.add("EMI", FormatCurrency(s.MonthlyPayment))
	r.add("Total Interest", FormatCurrency(s.TotalInterest))
	r.add("Total Paid", FormatCurrency(s.TotalPaid))
	return r
}

// NewRetirementReport builds the corpus target and the SIP that reaches it.
func NewRetirementReport(p domain.RetirementPlan) *Report {
	t := p.Target
	r := &Report{Kind: "retirement", Title: "Retirement Plan", Result: p}
	r.add("Monthly Expense Today", FormatCurrency(t.MonthlyExpenseToday))
	r.add("Years To Retirement", fmt.Sprintf("%d", t.YearsToRetirement))
	r.add("Inflation", FormatPercentage(t.InflationPct))
	r.add("Monthly Expense At Retirement", FormatCurrency(t.InflatedMonthlyExpense))
	r.add("Annual Expense At Retirement", FormatCurrency(t.InflatedAnnualExpense))
	r.add("Safe Withdrawal Rate", FormatPercentage(t.SafeWithdrawalRatePct))
	r.add("Corpus Required", FormatCurrency(t.CorpusRequired))
	r.add("Accumulation Return", FormatPercentage(p.AccumulationReturnPct))
	r.add("Required Monthly SIP", FormatCurrency(p.RequiredMonthlySIP))
	return r
}

// NewEmergencyReport builds the emergency fund target.
func NewEmergencyReport(f domain.EmergencyFund) *Report {
	r := &Report{Kind: "emergency", Title: "Emergency Fund", Result: f}
	r.add("Monthly Expense", FormatCurrency(f.MonthlyExpense))
	r.add("Months", fmt.Sprintf("%d", f.Months))
	r.add("Target", FormatCurrency(f.Target))
	return r
}

// NewAllocationReport builds the suggested portfolio split.
func NewAllocationReport(a domain.Allocation) *Report {
	r := &Report{Kind: "allocate", Title: "Suggested Allocation", Result: a}
	r.add("Risk", string(a.Risk))
	r.add("Horizon", fmt.Sprintf("%d years", a.Horizon))
	for _, class := range domain.AssetClasses {
		r.add(titleCase(string(class)), FormatWeight(a.Weight(class)))
	}
	return r
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
