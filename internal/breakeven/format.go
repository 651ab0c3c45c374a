package breakeven

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rgehrsitz/pfgo/internal/output"
)

// TableFormatter formats solver results as a console table
type TableFormatter struct{}

// Format generates a formatted table for one solver result
func (tf *TableFormatter) Format(result *OptimizationResult) string {
	var sb strings.Builder

	sb.WriteString("DEDUCTION BREAK-EVEN\n")
	sb.WriteString(strings.Repeat("=", 60) + "\n")

	sb.WriteString(fmt.Sprintf("Target:              %s\n", targetLabel(result.Request.Target)))
	sb.WriteString(fmt.Sprintf("Gross Income:        %s\n", output.FormatCurrency(result.Request.Income.GrossAnnualIncome)))
	sb.WriteString(fmt.Sprintf("Status:              %s\n", tf.formatStatus(result.Success)))
	sb.WriteString(fmt.Sprintf("Iterations:          %d\n", result.Iterations))
	if result.ConvergenceInfo != "" {
		sb.WriteString(fmt.Sprintf("Convergence:         %s\n", result.ConvergenceInfo))
	}
	sb.WriteString("\n")

	if result.Success {
		sb.WriteString("BREAK-EVEN DEDUCTIONS\n")
		sb.WriteString(strings.Repeat("-", 60) + "\n")
		sb.WriteString(fmt.Sprintf("80C:                 %s\n", output.FormatCurrency(result.Section80C)))
		sb.WriteString(fmt.Sprintf("80D:                 %s\n", output.FormatCurrency(result.Section80D)))
		sb.WriteString(fmt.Sprintf("Total:               %s\n", output.FormatCurrency(result.TotalDeductions)))
		sb.WriteString(fmt.Sprintf("Additional Needed:   %s\n", output.FormatCurrency(result.AdditionalNeeded)))
		sb.WriteString("\n")
	}

	sb.WriteString("TAX\n")
	sb.WriteString(strings.Repeat("-", 60) + "\n")
	sb.WriteString(fmt.Sprintf("New Regime:          %s\n", output.FormatCurrency(result.NewRegimeTax)))
	sb.WriteString(fmt.Sprintf("Old Regime (now):    %s\n", output.FormatCurrency(result.CurrentOldTax)))
	label := "Old Regime (solved):"
	if !result.Success {
		label = "Old Regime (capped):"
	}
	sb.WriteString(fmt.Sprintf("%-20s %s\n", label, output.FormatCurrency(result.OldRegimeTax)))
	sb.WriteString("\n")

	return sb.String()
}

// FormatMultiDimensional formats results from every target
func (tf *TableFormatter) FormatMultiDimensional(result *MultiDimensionalResult) string {
	var sb strings.Builder

	sb.WriteString("DEDUCTION BREAK-EVEN SUMMARY\n")
	sb.WriteString(strings.Repeat("=", 60) + "\n")
	sb.WriteString(fmt.Sprintf("%-12s %-10s %16s %16s\n", "Target", "Status", "Deductions", "Additional"))
	sb.WriteString(strings.Repeat("-", 60) + "\n")
	for _, res := range result.Results {
		status := "reachable"
		if !res.Success {
			status = "capped"
		}
		sb.WriteString(fmt.Sprintf("%-12s %-10s %16s %16s\n",
			targetLabel(res.Request.Target),
			status,
			output.FormatCurrency(res.TotalDeductions),
			output.FormatCurrency(res.AdditionalNeeded)))
	}
	sb.WriteString("\n")

	if len(result.Recommendations) > 0 {
		sb.WriteString("RECOMMENDATIONS\n")
		sb.WriteString(strings.Repeat("-", 60) + "\n")
		for _, rec := range result.Recommendations {
			sb.WriteString(fmt.Sprintf("• %s\n", rec))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// JSONFormatter formats results as JSON
type JSONFormatter struct {
	Pretty bool
}

// Format generates JSON output
func (jf *JSONFormatter) Format(result *OptimizationResult) (string, error) {
	return jf.marshal(result)
}

// FormatMultiDimensional formats multi-target results as JSON
func (jf *JSONFormatter) FormatMultiDimensional(result *MultiDimensionalResult) (string, error) {
	return jf.marshal(result)
}

func (jf *JSONFormatter) marshal(v any) (string, error) {
	var data []byte
	var err error

	if jf.Pretty {
		data, err = json.MarshalIndent(v, "", "  ")
	} else {
		data, err = json.Marshal(v)
	}

	if err != nil {
		return "", err
	}

	return string(data), nil
}

func (tf *TableFormatter) formatStatus(success bool) string {
	if success {
		return "✓ Break-even found"
	}
	return "⚠ Not reachable within caps"
}
