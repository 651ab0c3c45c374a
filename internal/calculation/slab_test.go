package calculation

import (
	"testing"

	"github.com/rgehrsitz/pfgo/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestSlabTax_Boundaries(t *testing.T) {
	newSlabs := DefaultTaxConfig().Slabs(domain.RegimeNew)

	tests := []struct {
		name     string
		taxable  string
		expected string
	}{
		{"zero income", "0", "0"},
		{"inside nil slab", "250000", "0"},
		{"at first boundary", "300000", "0"},
		{"one rupee into second slab", "300001", "0.05"},
		{"at second boundary", "600000", "15000"},
		{"mid third slab", "650000", "20000"},
		{"at top bounded slab", "1500000", "150000"},
		{"into unbounded slab", "2000000", "300000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SlabTax(dec(tt.taxable), newSlabs)
			assert.True(t, dec(tt.expected).Equal(got), "expected %s, got %s", tt.expected, got)
		})
	}
}

func TestSlabTax_OldRegime(t *testing.T) {
	oldSlabs := DefaultTaxConfig().Slabs(domain.RegimeOld)

	// 5% of 250k + 20% of 300k
	got := SlabTax(dec("800000"), oldSlabs)
	assert.True(t, dec("72500").Equal(got), "got %s", got)
}

func TestSlabTax_Monotonic(t *testing.T) {
	cfg := DefaultTaxConfig()
	for _, regime := range []domain.Regime{domain.RegimeNew, domain.RegimeOld} {
		table := cfg.Slabs(regime)
		prev := decimal.Zero
		for income := int64(0); income <= 3000000; income += 12345 {
			tax := SlabTax(decimal.NewFromInt(income), table)
			assert.True(t, tax.GreaterThanOrEqual(prev), "%s regime: tax fell at %d", regime, income)
			prev = tax
		}
	}
}

func TestSlabTax_NegativeIncomeIsZero(t *testing.T) {
	got := SlabTax(dec("-100"), DefaultTaxConfig().Slabs(domain.RegimeNew))
	assert.True(t, got.IsZero())
}

func TestNewSlabTable_Validation(t *testing.T) {
	tests := []struct {
		name    string
		slabs   []domain.TaxSlab
		wantErr string
	}{
		{"empty", nil, "empty"},
		{"no unbounded slab", []domain.TaxSlab{{UpTo: amount(100), Rate: dec("0.1")}}, "final slab must be unbounded"},
		{"unbounded in the middle", []domain.TaxSlab{{Rate: dec("0.1")}, {Rate: dec("0.2")}}, "only the final slab"},
		{"decreasing bounds", []domain.TaxSlab{{UpTo: amount(200), Rate: dec("0")}, {UpTo: amount(100), Rate: dec("0.1")}, {Rate: dec("0.2")}}, "must exceed"},
		{"zero bound", []domain.TaxSlab{{UpTo: amount(0), Rate: dec("0")}, {Rate: dec("0.2")}}, "must exceed"},
		{"rate above one", []domain.TaxSlab{{Rate: dec("1.5")}}, "outside [0,1]"},
		{"negative rate", []domain.TaxSlab{{Rate: dec("-0.1")}}, "outside [0,1]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewSlabTable(tt.slabs)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestNewSlabTable_IsImmutable(t *testing.T) {
	bound := decimal.NewFromInt(100)
	src := []domain.TaxSlab{{UpTo: &bound, Rate: dec("0")}, {Rate: dec("0.5")}}

	table, err := NewSlabTable(src)
	require.NoError(t, err)

	// Mutating the source or a returned copy must not leak into the table
	bound = decimal.NewFromInt(1000)
	src[1].Rate = dec("0.9")
	out := table.Slabs()
	*out[0].UpTo = decimal.NewFromInt(5)

	got := SlabTax(dec("200"), table)
	assert.True(t, dec("50").Equal(got), "got %s", got)
	assert.Equal(t, 2, table.Len())
}
