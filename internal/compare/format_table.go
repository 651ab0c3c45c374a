package compare

import (
	"fmt"
	"strings"

	"github.com/rgehrsitz/pfgo/internal/output"
	"github.com/shopspring/decimal"
)

// TableFormatter formats comparison results as a console table
type TableFormatter struct{}

// Format generates a side-by-side table of both regimes
func (tf *TableFormatter) Format(compSet *ComparisonSet) string {
	var sb strings.Builder

	results := compSet.Results()
	labelWidth := 20
	numWidth := 18
	width := labelWidth + (numWidth+1)*len(results)

	sb.WriteString("TAX REGIME COMPARISON\n")
	sb.WriteString(strings.Repeat("=", width) + "\n")
	sb.WriteString(fmt.Sprintf("Financial Year: %s\n", compSet.FinancialYear))
	sb.WriteString(fmt.Sprintf("Gross Income:   %s\n", output.FormatCurrency(compSet.GrossIncome)))
	sb.WriteString("\n")

	sb.WriteString(fmt.Sprintf("%-*s", labelWidth, ""))
	for i, res := range results {
		name := res.Regime.Title() + " Regime"
		if i == 0 {
			name += " (base)"
		}
		sb.WriteString(fmt.Sprintf(" %*s", numWidth, name))
	}
	sb.WriteString("\n" + strings.Repeat("-", width) + "\n")

	rows := []struct {
		label string
		value func(ComparisonResult) string
	}{
		{"Std Deduction", func(r ComparisonResult) string { return tf.money(r.Estimate.StandardDeduction) }},
		{"Other Deductions", func(r ComparisonResult) string { return tf.money(r.Estimate.OtherDeductions) }},
		{"Taxable Income", func(r ComparisonResult) string { return tf.money(r.Estimate.TaxableIncome) }},
		{"Base Tax", func(r ComparisonResult) string { return tf.money(r.Estimate.BaseTax) }},
		{"Rebate (87A)", func(r ComparisonResult) string { return tf.money(r.Estimate.Rebate) }},
		{"Cess", func(r ComparisonResult) string { return tf.money(r.Estimate.Cess) }},
		{"Total Tax", func(r ComparisonResult) string { return tf.money(r.TotalTax) }},
		{"Effective Rate", func(r ComparisonResult) string { return output.FormatRate(r.EffectiveRate) }},
		{"Monthly Take Home", func(r ComparisonResult) string { return tf.money(r.MonthlyTakeHome) }},
	}
	for _, row := range rows {
		sb.WriteString(fmt.Sprintf("%-*s", labelWidth, row.label))
		for _, res := range results {
			sb.WriteString(fmt.Sprintf(" %*s", numWidth, row.value(res)))
		}
		sb.WriteString("\n")
	}
	sb.WriteString(strings.Repeat("=", width) + "\n")

	if len(compSet.Recommendations) > 0 {
		sb.WriteString("\nRECOMMENDATIONS\n")
		sb.WriteString(strings.Repeat("-", width) + "\n")
		for _, rec := range compSet.Recommendations {
			sb.WriteString(fmt.Sprintf("• %s\n", rec))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// money rounds to whole rupees for the table columns
func (tf *TableFormatter) money(d decimal.Decimal) string {
	return output.FormatCurrency(d.Round(0))
}

// FormatCompact creates a single-line summary
func (tf *TableFormatter) FormatCompact(compSet *ComparisonSet) string {
	if compSet.Tie {
		return fmt.Sprintf("Both regimes: %s", output.FormatCurrency(compSet.BaseResult.TotalTax))
	}
	return fmt.Sprintf("%s regime cheaper by %s", compSet.Cheaper.Title(), output.FormatCurrency(compSet.Savings))
}
