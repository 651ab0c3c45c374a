package calculation

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPeriods_RoundsHalfToEven(t *testing.T) {
	tests := []struct {
		years    string
		expected int
	}{
		{"1", 12},
		{"1.5", 18},
		{"0.125", 2},  // 1.5 months
		{"0.375", 4},  // 4.5 months
		{"0.04", 0},   // 0.48 months
		{"30", 360},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, Periods(dec(tt.years)), "years=%s", tt.years)
	}
}

func TestFutureValue(t *testing.T) {
	fv, err := FutureValue(dec("1000"), dec("12"), dec("1"))
	require.NoError(t, err)
	// ((1.01^12 - 1) / 0.01) * 1.01 = 12.8093...
	assert.InDelta(t, 12809.33, fv.InexactFloat64(), 0.01)

	fv, err = FutureValue(dec("1000"), decimal.Zero, dec("1"))
	require.NoError(t, err)
	assertDecimal(t, "12000", fv, "zero-rate future value")
}

func TestRequiredContribution(t *testing.T) {
	sip, err := RequiredContribution(dec("5000000"), dec("12"), dec("15"))
	require.NoError(t, err)
	assert.InDelta(t, 9909.31, sip.InexactFloat64(), 0.01)

	sip, err = RequiredContribution(dec("120000"), decimal.Zero, dec("2"))
	require.NoError(t, err)
	assertDecimal(t, "5000", sip, "zero-rate contribution")
}

func TestAnnuityRoundTrip(t *testing.T) {
	for _, rate := range []string{"0", "1", "6.5", "8", "12", "18.5"} {
		for _, years := range []string{"0.5", "1", "10", "30"} {
			x := dec("7500")
			fv, err := FutureValue(x, dec(rate), dec(years))
			require.NoError(t, err)

			back, err := RequiredContribution(fv, dec(rate), dec(years))
			require.NoError(t, err)
			assert.InDelta(t, 7500.0, back.InexactFloat64(), 1e-6, "rate=%s years=%s", rate, years)
		}
	}
}

func TestLevelPayment(t *testing.T) {
	emi, err := LevelPayment(dec("100000"), dec("12"), dec("1"))
	require.NoError(t, err)
	assert.InDelta(t, 8884.88, emi.InexactFloat64(), 0.01)

	emi, err = LevelPayment(dec("2500000"), dec("8.5"), dec("20"))
	require.NoError(t, err)
	assert.InDelta(t, 21695.58, emi.InexactFloat64(), 0.01)
}

func TestLevelPayment_ZeroRateIsExactDivision(t *testing.T) {
	emi, err := LevelPayment(dec("120000"), decimal.Zero, dec("1"))
	require.NoError(t, err)
	assertDecimal(t, "10000", emi, "emi")

	emi, err = LevelPayment(dec("100"), decimal.Zero, dec("0.25"))
	require.NoError(t, err)
	assert.True(t, emi.Equal(dec("100").Div(decimal.NewFromInt(3))))
}

func TestAnnuity_RejectsTooFewPeriods(t *testing.T) {
	_, err := FutureValue(dec("1000"), dec("10"), dec("0.04"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = RequiredContribution(dec("1000"), dec("10"), decimal.Zero)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = LevelPayment(dec("1000"), dec("10"), dec("-3"))
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestAnnuity_RejectsTooManyPeriods(t *testing.T) {
	tests := []struct {
		name  string
		years string
	}{
		{"just over the limit", "100.01"},
		{"thousand years", "1000"},
		{"overflows int64 months", "1e20"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			years := dec(tt.years)

			_, err := FutureValue(dec("1000"), dec("12"), years)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidInput)
			assert.Contains(t, err.Error(), "year limit")

			_, err = RequiredContribution(dec("1000000"), dec("12"), years)
			assert.ErrorIs(t, err, ErrInvalidInput)

			_, err = LevelPayment(dec("1000000"), dec("8.5"), years)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}

	fv, err := FutureValue(dec("1000"), dec("12"), dec("100"))
	require.NoError(t, err)
	assert.True(t, fv.IsPositive())
}

func TestAnnuity_RejectsNegativeAmounts(t *testing.T) {
	_, err := FutureValue(dec("-1"), dec("10"), dec("1"))
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = RequiredContribution(dec("-1"), dec("10"), dec("1"))
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = LevelPayment(dec("-1"), dec("10"), dec("1"))
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = LevelPayment(dec("1"), dec("-10"), dec("1"))
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestSummarizeLoan(t *testing.T) {
	s, err := SummarizeLoan(dec("120000"), decimal.Zero, dec("1"))
	require.NoError(t, err)

	assert.Equal(t, 12, s.Months)
	assertDecimal(t, "10000", s.MonthlyPayment, "emi")
	assertDecimal(t, "120000", s.TotalPaid, "total paid")
	assertDecimal(t, "0", s.TotalInterest, "interest")

	s, err = SummarizeLoan(dec("100000"), dec("12"), dec("1"))
	require.NoError(t, err)
	assert.InDelta(t, 6618.55, s.TotalInterest.InexactFloat64(), 0.1)
}

func TestProjectSIPAndPlanGoal(t *testing.T) {
	p, err := ProjectSIP(dec("5000"), decimal.Zero, dec("2"))
	require.NoError(t, err)
	assert.Equal(t, 24, p.Months)
	assertDecimal(t, "120000", p.TotalInvested, "invested")
	assertDecimal(t, "0", p.Gain(), "gain")

	g, err := PlanGoal(dec("240000"), decimal.Zero, dec("2"))
	require.NoError(t, err)
	assertDecimal(t, "10000", g.MonthlyContribution, "sip")
	assertDecimal(t, "240000", g.FutureValue, "target")
}
