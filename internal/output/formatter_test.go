package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/rgehrsitz/pfgo/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func sampleEstimate() domain.TaxEstimate {
	return domain.TaxEstimate{
		Regime:            domain.RegimeOld,
		GrossIncome:       d("1000000"),
		StandardDeduction: d("50000"),
		OtherDeductions:   d("150000"),
		TaxableIncome:     d("800000"),
		BaseTax:           d("72500"),
		Cess:              d("2900"),
		TotalTax:          d("75400"),
		EffectiveRate:     d("0.0754"),
	}
}

func rowValue(t *testing.T, r *Report, label string) string {
	t.Helper()
	for _, row := range r.Rows {
		if row.Label == label {
			return row.Value
		}
	}
	t.Fatalf("row %q not found", label)
	return ""
}

func TestNewTaxReport(t *testing.T) {
	r := NewTaxReport(sampleEstimate(), d("0.04"))

	assert.Equal(t, "tax", r.Kind)
	assert.Equal(t, "Old", rowValue(t, r, "Regime"))
	assert.Equal(t, "₹8,00,000.00", rowValue(t, r, "Taxable Income"))
	assert.Equal(t, "₹2,900.00", rowValue(t, r, "Cess (4%)"))
	assert.Equal(t, "₹75,400.00", rowValue(t, r, "Total Tax"))
	assert.Equal(t, "7.54%", rowValue(t, r, "Effective Rate"))

	for _, row := range r.Rows {
		assert.NotEqual(t, "Rebate (87A)", row.Label, "zero rebate is omitted")
	}
}

func TestNewTaxReport_ShowsRebate(t *testing.T) {
	est := domain.TaxEstimate{
		Regime:            domain.RegimeNew,
		GrossIncome:       d("750000"),
		StandardDeduction: d("50000"),
		TaxableIncome:     d("700000"),
		BaseTax:           d("25000"),
		Rebate:            d("25000"),
	}
	r := NewTaxReport(est, d("0.04"))
	assert.Equal(t, "-₹25,000.00", rowValue(t, r, "Rebate (87A)"))
	assert.Equal(t, "0.00%", rowValue(t, r, "Effective Rate"))
}

func TestNewAllocationReport(t *testing.T) {
	r := NewAllocationReport(domain.Allocation{
		Risk:    domain.RiskModerate,
		Horizon: 7,
		Equity:  d("0.6"),
		Debt:    d("0.3"),
		Gold:    d("0.1"),
	})
	assert.Equal(t, "60%", rowValue(t, r, "Equity"))
	assert.Equal(t, "30%", rowValue(t, r, "Debt"))
	assert.Equal(t, "10%", rowValue(t, r, "Gold"))
	assert.Equal(t, "7 years", rowValue(t, r, "Horizon"))
}

func TestGetFormatterByName(t *testing.T) {
	assert.Equal(t, "console", GetFormatterByName("console").Name())
	assert.Equal(t, "console", GetFormatterByName(" TEXT ").Name())
	assert.Equal(t, "json", GetFormatterByName("json-pretty").Name())
	assert.Nil(t, GetFormatterByName("pdf"))
	assert.Equal(t, []string{"console", "csv", "html", "json"}, AvailableFormatterNames())
}

func TestFormatterFunc(t *testing.T) {
	called := false
	f := FormatterFunc{ID: "custom", F: func(r *Report) ([]byte, error) {
		called = true
		return []byte(r.Kind), nil
	}}
	out, err := f.Format(&Report{Kind: "sip"})
	require.NoError(t, err)
	assert.True(t, called)
	assert.Equal(t, "sip", string(out))
	assert.Equal(t, "custom", f.Name())
}

func TestConsoleFormatter(t *testing.T) {
	out, err := ConsoleFormatter{}.Format(NewEmergencyReport(domain.EmergencyFund{
		MonthlyExpense: d("40000"),
		Months:         6,
		Target:         d("240000"),
	}))
	require.NoError(t, err)

	text := string(out)
	assert.Contains(t, text, "Emergency Fund")
	assert.Contains(t, text, "Target:")
	assert.Contains(t, text, "₹2,40,000.00")
	assert.Contains(t, text, Disclaimer)
}

func TestJSONFormatter(t *testing.T) {
	out, err := JSONFormatter{}.Format(NewTaxReport(sampleEstimate(), d("0.04")))
	require.NoError(t, err)

	var decoded struct {
		Kind   string          `json:"kind"`
		Result json.RawMessage `json:"result"`
	}
	require.NoError(t, json.Unmarshal(out, &decoded))
	assert.Equal(t, "tax", decoded.Kind)

	var est domain.TaxEstimate
	require.NoError(t, json.Unmarshal(decoded.Result, &est))
	assert.True(t, est.TotalTax.Equal(d("75400")))
	assert.Equal(t, domain.RegimeOld, est.Regime)
	assert.NotContains(t, string(out), "Rows")
}

func TestCSVFormatter(t *testing.T) {
	out, err := CSVFormatter{}.Format(NewLoanReport(domain.LoanSummary{
		Principal:      d("100000"),
		AnnualRatePct:  d("12"),
		Months:         12,
		MonthlyPayment: d("8884.88"),
		TotalPaid:      d("106618.56"),
		TotalInterest:  d("6618.56"),
	}))
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	assert.Equal(t, "label,value", lines[0])
	assert.Contains(t, lines, `EMI,"₹8,884.88"`)
}

func TestHTMLFormatter_Escapes(t *testing.T) {
	r := &Report{Kind: "x", Title: "<script>", Rows: []Row{{Label: "a&b", Value: "1"}}}
	out, err := HTMLFormatter{}.Format(r)
	require.NoError(t, err)
	assert.NotContains(t, string(out), "<script>")
	assert.Contains(t, string(out), "a&amp;b")
}

func TestWrite(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, "csv", &Report{Kind: "x"}))
	assert.Equal(t, "label,value\n", buf.String())

	err := Write(&buf, "pdf", &Report{Kind: "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "console, csv, html, json")
}
