package compare

import (
	"encoding/csv"
	"strings"
)

// CSVFormatter formats comparison results as CSV
type CSVFormatter struct{}

// Format generates CSV output for comparison results
func (cf *CSVFormatter) Format(compSet *ComparisonSet) (string, error) {
	var sb strings.Builder
	writer := csv.NewWriter(&sb)

	header := []string{
		"Regime",
		"Type",
		"Taxable Income",
		"Base Tax",
		"Rebate",
		"Cess",
		"Total Tax",
		"Effective Rate",
		"Monthly Take Home",
		"Tax Diff from Base",
	}
	if err := writer.Write(header); err != nil {
		return "", err
	}

	for i, res := range compSet.Results() {
		kind := "alternative"
		if i == 0 {
			kind = "base"
		}
		if err := writer.Write(cf.formatRow(res, kind)); err != nil {
			return "", err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", err
	}

	return sb.String(), nil
}

// formatRow formats a comparison result as a CSV row
func (cf *CSVFormatter) formatRow(result ComparisonResult, kind string) []string {
	est := result.Estimate
	return []string{
		string(result.Regime),
		kind,
		est.TaxableIncome.StringFixed(2),
		est.BaseTax.StringFixed(2),
		est.Rebate.StringFixed(2),
		est.Cess.StringFixed(2),
		result.TotalTax.StringFixed(2),
		result.EffectiveRate.StringFixed(4),
		result.MonthlyTakeHome.StringFixed(2),
		result.TaxDiffFromBase.StringFixed(2),
	}
}
