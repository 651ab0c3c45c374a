package tui

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rgehrsitz/pfgo/internal/calculation"
	"github.com/rgehrsitz/pfgo/internal/config"
	"github.com/rgehrsitz/pfgo/internal/domain"
	"github.com/rgehrsitz/pfgo/internal/tui/scenes"
)

var testTime = time.Date(2025, 4, 1, 9, 0, 0, 0, time.UTC)

func testEnv(p domain.UserProfile) calcEnv {
	return calcEnv{
		engine:      calculation.NewCalculationEngine(),
		assumptions: config.DefaultSettings().Assumptions,
		profile:     p,
	}
}

func fieldDefaults(fields []scenes.FormField) map[string]string {
	out := make(map[string]string, len(fields))
	for _, f := range fields {
		out[f.Key] = f.Default
	}
	return out
}

func TestCalculators_Registry(t *testing.T) {
	ids := make([]string, 0, len(Calculators))
	for _, c := range Calculators {
		ids = append(ids, c.ID)
		assert.NotNil(t, c.Fields, c.ID)
		assert.NotNil(t, c.Run, c.ID)
	}
	assert.Equal(t, []string{"tax", "compare", "sip", "goal", "emi", "retirement", "emergency", "allocate"}, ids)

	_, ok := findCalculator("retirement")
	assert.True(t, ok)
	_, ok = findCalculator("nope")
	assert.False(t, ok)
}

func TestCalculators_FieldDefaultsFromProfile(t *testing.T) {
	p := domain.NewUserProfile(testTime)
	age := 35
	income := decimal.NewFromInt(100000)
	expenses := decimal.NewFromInt(40000)
	old := domain.RegimeOld
	p.Age = &age
	p.MonthlyIncome = &income
	p.MonthlyExpenses = &expenses
	p.RegimePreference = &old
	p.Risk = domain.RiskAggressive
	p.EmergencyMonths = 9
	env := testEnv(p)

	tax := fieldDefaults(taxFields(env))
	assert.Equal(t, "1200000", tax["income"])
	assert.Equal(t, "old", tax["regime"])
	assert.Equal(t, "regime", taxFields(env)[1].Key)

	assert.Equal(t, "60000", fieldDefaults(sipFields(env))["monthly"])

	ret := fieldDefaults(retirementFields(env))
	assert.Equal(t, "35", ret["age"])
	assert.Equal(t, "40000", ret["expense"])
	assert.Equal(t, "6", ret["inflation"])
	assert.Equal(t, "3.5", ret["swr"])
	assert.Equal(t, "12", ret["return"])

	em := fieldDefaults(emergencyFields(env))
	assert.Equal(t, "9", em["months"])

	assert.Equal(t, "aggressive", fieldDefaults(allocateFields(env))["risk"])
}

func TestCalculators_FieldDefaultsWithoutProfile(t *testing.T) {
	p := domain.NewUserProfile(testTime)
	p.EmergencyMonths = 0
	env := testEnv(p)

	assert.Empty(t, fieldDefaults(taxFields(env))["income"])
	assert.Equal(t, "new", fieldDefaults(taxFields(env))["regime"])
	assert.Empty(t, fieldDefaults(sipFields(env))["monthly"])
	assert.Empty(t, fieldDefaults(retirementFields(env))["age"])
	assert.Equal(t, "6", fieldDefaults(emergencyFields(env))["months"])
}

func TestCalculators_Run(t *testing.T) {
	env := testEnv(domain.NewUserProfile(testTime))

	tests := []struct {
		name   string
		id     string
		values formValues
		label  string
		want   string
	}{
		{
			name:   "old regime tax",
			id:     "tax",
			values: formValues{"income": "1000000", "regime": "old", "salaried": "yes", "80c": "150000", "80d": "25000"},
			label:  "Total Tax",
			want:   "₹70,200.00",
		},
		{
			name:   "non-salaried skips standard deduction",
			id:     "tax",
			values: formValues{"income": "700000", "regime": "new", "salaried": "no"},
			label:  "Total Tax",
			want:   "₹0.00",
		},
		{
			name:   "zero rate sip",
			id:     "sip",
			values: formValues{"monthly": "₹1,000", "rate": "0", "years": "1"},
			label:  "Future Value",
			want:   "₹12,000.00",
		},
		{
			name:   "zero rate emi",
			id:     "emi",
			values: formValues{"principal": "120000", "rate": "0", "years": "1"},
			label:  "EMI",
			want:   "₹10,000.00",
		},
		{
			name:   "zero rate goal",
			id:     "goal",
			values: formValues{"target": "240000", "rate": "0", "years": "2"},
			label:  "Required SIP",
			want:   "₹10,000.00",
		},
		{
			name: "one year to retirement",
			id:   "retirement",
			values: formValues{
				"age": "59", "retire_age": "60", "expense": "10000",
				"inflation": "10", "swr": "4", "return": "12",
			},
			label: "Corpus Required",
			want:  "₹33,00,000.00",
		},
		{
			name:   "emergency fund",
			id:     "emergency",
			values: formValues{"expense": "25000", "months": "4"},
			label:  "Target",
			want:   "₹1,00,000.00",
		},
		{
			name:   "aggressive long horizon",
			id:     "allocate",
			values: formValues{"risk": "Aggressive", "horizon": "10"},
			label:  "Equity",
			want:   "85%",
		},
		{
			name:   "unknown risk falls back to moderate",
			id:     "allocate",
			values: formValues{"risk": "yolo", "horizon": "5"},
			label:  "Risk",
			want:   "moderate",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calc, ok := findCalculator(tt.id)
			require.True(t, ok)
			out, err := calc.Run(context.Background(), env, tt.values)
			require.NoError(t, err)
			require.NotNil(t, out.Report)
			assert.Equal(t, tt.id, out.Kind)
			assert.NotEmpty(t, out.Summary)
			assert.Equal(t, tt.want, rowValue(out.Report, tt.label))
		})
	}
}

func TestCalculators_RunErrors(t *testing.T) {
	env := testEnv(domain.NewUserProfile(testTime))

	tests := []struct {
		name    string
		id      string
		values  formValues
		wantErr string
	}{
		{"missing income", "tax", formValues{"regime": "new"}, "income is required"},
		{"bad 80c", "compare", formValues{"income": "900000", "80c": "abc"}, `invalid 80C amount "abc"`},
		{"missing years", "sip", formValues{"monthly": "1000", "rate": "12"}, "years is required"},
		{"retire before now", "retirement", formValues{"age": "60", "retire_age": "60", "expense": "1"}, "retirement age 60 must be greater than current age 60"},
		{"fractional age", "retirement", formValues{"age": "30.5", "retire_age": "60"}, `invalid current age "30.5"`},
		{"negative horizon", "allocate", formValues{"risk": "moderate", "horizon": "-1"}, "invalid horizon"},
		{"negative months", "emergency", formValues{"expense": "100", "months": "-2"}, "invalid months"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calc, ok := findCalculator(tt.id)
			require.True(t, ok)
			_, err := calc.Run(context.Background(), env, tt.values)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestFormValues_Yes(t *testing.T) {
	v := formValues{"a": "No", "b": "", "c": "yes", "d": "false"}
	assert.False(t, v.yes("a"))
	assert.True(t, v.yes("b"))
	assert.True(t, v.yes("c"))
	assert.False(t, v.yes("d"))
}
