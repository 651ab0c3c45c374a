package compare

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/rgehrsitz/pfgo/internal/calculation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleSet(t *testing.T) *ComparisonSet {
	t.Helper()
	cs, err := newEngine().Compare(context.Background(), calculation.TaxInput{
		GrossAnnualIncome: d(1800000),
		IsSalaried:        true,
		Section80C:        d(150000),
	}, CompareOptions{})
	require.NoError(t, err)
	return cs
}

func TestTableFormatter_Format(t *testing.T) {
	out := (&TableFormatter{}).Format(sampleSet(t))

	assert.Contains(t, out, "TAX REGIME COMPARISON")
	assert.Contains(t, out, "Financial Year: 2024-25")
	assert.Contains(t, out, "₹18,00,000.00")
	assert.Contains(t, out, "New Regime (base)")
	assert.Contains(t, out, "Old Regime")
	assert.Contains(t, out, "Monthly Take Home")
	assert.Contains(t, out, "RECOMMENDATIONS")
}

func TestTableFormatter_FormatCompact(t *testing.T) {
	cs := sampleSet(t)
	out := (&TableFormatter{}).FormatCompact(cs)
	assert.True(t, strings.HasPrefix(out, cs.Cheaper.Title()+" regime cheaper by ₹"))
}

func TestJSONFormatter_Format(t *testing.T) {
	cs := sampleSet(t)
	for _, pretty := range []bool{true, false} {
		out, err := (&JSONFormatter{Pretty: pretty}).Format(cs)
		require.NoError(t, err)

		var decoded ComparisonSet
		require.NoError(t, json.Unmarshal([]byte(out), &decoded))
		assert.Equal(t, cs.Cheaper, decoded.Cheaper)
		assert.True(t, cs.Savings.Equal(decoded.Savings))
		assert.Equal(t, pretty, strings.Contains(out, "\n  "))
	}
}

func TestCSVFormatter_Format(t *testing.T) {
	out, err := (&CSVFormatter{}).Format(sampleSet(t))
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "Regime,Type,Taxable Income"))
	assert.True(t, strings.HasPrefix(lines[1], "new,base,"))
	assert.True(t, strings.HasPrefix(lines[2], "old,alternative,"))
}
