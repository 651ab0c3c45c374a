package chat

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rgehrsitz/pfgo/internal/calculation"
	"github.com/rgehrsitz/pfgo/internal/config"
	"github.com/rgehrsitz/pfgo/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memStore struct {
	profile domain.UserProfile
	loadErr error
	saveErr error
	saved   []domain.UserProfile
}

func (m *memStore) Load() (domain.UserProfile, error) { return m.profile, m.loadErr }

func (m *memStore) Save(p domain.UserProfile) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saved = append(m.saved, p)
	return nil
}

type recorded struct {
	kind, summary string
}

func newStore() *memStore {
	return &memStore{profile: domain.UserProfile{
		Name:            domain.DefaultProfileName,
		EmergencyMonths: domain.DefaultEmergencyMonths,
		Risk:            domain.RiskModerate,
	}}
}

// runSession feeds input to a fresh session and returns everything it printed
func runSession(t *testing.T, store *memStore, input string) (string, []recorded) {
	t.Helper()
	var out bytes.Buffer
	var results []recorded

	s := NewSession(calculation.NewCalculationEngine(), store, config.DefaultSettings().Assumptions, strings.NewReader(input), &out)
	s.OnResult = func(kind, summary string, _, _ any) {
		results = append(results, recorded{kind, summary})
	}
	require.NoError(t, s.Run(context.Background()))
	return out.String(), results
}

func TestSession_QuitSavesProfile(t *testing.T) {
	store := newStore()
	out, _ := runSession(t, store, "quit\n")

	assert.Contains(t, out, "Personal Finance Chatbot (India)")
	assert.Contains(t, out, "Saving profile… bye!")
	assert.Len(t, store.saved, 1)
}

func TestSession_EndOfInputDoesNotSave(t *testing.T) {
	store := newStore()
	out, _ := runSession(t, store, "")

	assert.Contains(t, out, "Goodbye!")
	assert.Empty(t, store.saved)
}

func TestSession_SaveFailureWarns(t *testing.T) {
	store := newStore()
	store.saveErr = errors.New("disk full")
	out, _ := runSession(t, store, "exit\n")

	assert.Contains(t, out, "[warn] Could not save profile: disk full")
}

func TestSession_CorruptProfileStillRuns(t *testing.T) {
	store := newStore()
	store.loadErr = errors.New("corrupt")
	out, _ := runSession(t, store, "help\nq\n")

	assert.Contains(t, out, "What I can do:")
	assert.Contains(t, out, "Saving profile… bye!")
}

func TestSession_UnknownInput(t *testing.T) {
	out, _ := runSession(t, newStore(), "blah blah\nquit\n")
	assert.Contains(t, out, "I didn't catch that. Type 'help' for options.")
}

func TestSession_TaxNewRegime(t *testing.T) {
	out, results := runSession(t, newStore(), "tax\n10,00,000\n\n\n")

	assert.Contains(t, out, "— Tax Estimate —")
	assert.Contains(t, out, "₹54,600.00")
	assert.Contains(t, out, "Std Deduction")
	assert.NotContains(t, out, "80C deductions")
	require.Len(t, results, 1)
	assert.Equal(t, "tax", results[0].kind)
}

func TestSession_TaxOldRegimeAsksDeductions(t *testing.T) {
	out, _ := runSession(t, newStore(), "tax\n1000000\ny\nold\n150000\n25000\n")

	assert.Contains(t, out, "80C deductions ₹ (max 1.5L): ")
	assert.Contains(t, out, "80D health insurance ₹ (max 25k): ")
	assert.Contains(t, out, "₹70,200.00")
}

func TestSession_TaxUsesPreferredRegime(t *testing.T) {
	store := newStore()
	old := domain.RegimeOld
	store.profile.RegimePreference = &old

	out, _ := runSession(t, store, "tax\n1000000\n\n\n\n\n")
	assert.Contains(t, out, "Regime new/old [old]: ")
	assert.Contains(t, out, "Old")
}

func TestSession_TaxRejectsBadIncome(t *testing.T) {
	out, results := runSession(t, newStore(), "tax\nlots\n")
	assert.Contains(t, out, "Please enter valid numbers.")
	assert.Empty(t, results)
}

func TestSession_SIP(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"future value", "sip\n1\n1000\n0\n1\n", "Future value ≈ ₹12,000.00"},
		{"required sip", "sip\n2\n120000\n0\n1\n", "Required monthly SIP ≈ ₹10,000.00"},
		{"invalid choice", "sip\n3\n", "Invalid choice."},
		{"bad number", "sip\n1\nten\n", "Please enter valid numbers."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, _ := runSession(t, newStore(), tt.input)
			assert.Contains(t, out, tt.want)
		})
	}
}

func TestSession_Goal(t *testing.T) {
	out, results := runSession(t, newStore(), "goal\n120000\n1\n0\n")

	assert.Contains(t, out, "To reach ₹1,20,000.00 in 1.0 years at 0.00% p.a., invest ≈ ₹10,000.00 per month.")
	require.Len(t, results, 1)
	assert.Equal(t, "goal", results[0].kind)
}

func TestSession_EMI(t *testing.T) {
	out, _ := runSession(t, newStore(), "emi\n120000\n0\n1\n")
	assert.Contains(t, out, "EMI ≈ ₹10,000.00 | Total Interest ≈ ₹0.00 | Total Paid ≈ ₹1,20,000.00")

	out, _ = runSession(t, newStore(), "emi\n120000\n-1\n1\n")
	assert.Contains(t, out, "Please enter valid numbers.")
}

func TestSession_Emergency(t *testing.T) {
	store := newStore()
	expenses := decimal.NewFromInt(40000)
	store.profile.MonthlyExpenses = &expenses

	out, _ := runSession(t, store, "emergency\n\n")
	assert.Contains(t, out, "Emergency fund target for 6 months: ₹2,40,000.00")

	out, _ = runSession(t, store, "emergency\n3\n")
	assert.Contains(t, out, "Emergency fund target for 3 months: ₹1,20,000.00")

	out, _ = runSession(t, newStore(), "emergency\nxyz\n")
	assert.Contains(t, out, "Please enter a number.")
}

func TestSession_Allocate(t *testing.T) {
	out, _ := runSession(t, newStore(), "allocate\nconservative\n2\n")

	assert.Contains(t, out, "Suggested allocation:")
	assert.Contains(t, out, "  Equity  : 15%")
	assert.Contains(t, out, "  Debt    : 75%")
	assert.Contains(t, out, "  Gold    : 10%")

	out, _ = runSession(t, newStore(), "allocate\n\nsoon\n")
	assert.Contains(t, out, "Please enter valid inputs.")
}

func TestSession_Retirement(t *testing.T) {
	store := newStore()
	age := 30
	expenses := decimal.NewFromInt(10000)
	store.profile.Age = &age
	store.profile.MonthlyExpenses = &expenses

	out, results := runSession(t, store, "retirement\n31\n10\n4\n\n")

	assert.Contains(t, out, "At 10.0% inflation, your monthly expense at retirement ≈ ₹11,000.00")
	assert.Contains(t, out, "Estimated retirement corpus needed (SWR 4.00%) ≈ ₹33,00,000.00")
	assert.Contains(t, out, "for 1 years at 12.0% p.a.")
	require.Len(t, results, 1)
	assert.Equal(t, "retirement", results[0].kind)
}

func TestSession_RetirementAgeMustExceedAge(t *testing.T) {
	out, _ := runSession(t, newStore(), "retirement\n40\n40\n")
	assert.Contains(t, out, "Retirement age must be greater than current age.")
}

func TestSession_ProfileUpdate(t *testing.T) {
	store := newStore()
	out, _ := runSession(t, store, "profile\nAsha\n35\n100000\n60000\n\nAggressive\nPune\nold\n")

	assert.Contains(t, out, "Current profile:")
	assert.Contains(t, out, "Saved ✔")
	require.Len(t, store.saved, 1)

	p := store.saved[0]
	assert.Equal(t, "Asha", p.Name)
	require.NotNil(t, p.Age)
	assert.Equal(t, 35, *p.Age)
	require.NotNil(t, p.MonthlyExpenses)
	assert.True(t, p.MonthlyExpenses.Equal(decimal.NewFromInt(60000)))
	assert.Equal(t, domain.DefaultEmergencyMonths, p.EmergencyMonths)
	assert.Equal(t, domain.RiskAggressive, p.Risk)
	require.NotNil(t, p.City)
	assert.Equal(t, "Pune", *p.City)
	assert.Equal(t, domain.RegimeOld, p.PreferredRegime())
}

func TestSession_ProfileUpdateRejectsBadAge(t *testing.T) {
	store := newStore()
	out, _ := runSession(t, store, "profile\n\nthirty\n\n\n\n\n\n\n")

	assert.Contains(t, out, `[error] invalid age "thirty"`)
	assert.Empty(t, store.saved)
}

func TestSession_ProfileUpdateCancelledAtEndOfInput(t *testing.T) {
	store := newStore()
	out, _ := runSession(t, store, "profile\nAsha\n")

	assert.Contains(t, out, "Update cancelled.")
	assert.Empty(t, store.saved)
}

func TestParseNumber(t *testing.T) {
	tests := map[string]string{
		"1500000":   "1500000",
		"15,00,000": "1500000",
		"₹1,50,000": "150000",
		" 1_000.5 ": "1000.5",
	}
	for in, want := range tests {
		got, err := parseNumber(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got.String(), in)
	}

	_, err := parseNumber("twelve")
	assert.Error(t, err)
}
