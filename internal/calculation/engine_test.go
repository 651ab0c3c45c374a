package calculation

import (
	"strings"
	"testing"

	"github.com/rgehrsitz/pfgo/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCalculationEngine(t *testing.T) {
	engine := NewCalculationEngine()

	assert.NotNil(t, engine, "Should create engine")
	assert.NotNil(t, engine.TaxCalc, "Should initialize tax calculator")
	assert.NotNil(t, engine.TaxConfig(), "Should carry tax rules")
	assert.NotNil(t, engine.Logger, "Should initialize logger")
}

func TestCalculationEngine_SetLogger(t *testing.T) {
	engine := NewCalculationEngine()

	// Test setting a custom logger
	customLogger := &TestLogger{}
	engine.SetLogger(customLogger)

	assert.Equal(t, customLogger, engine.Logger, "Should set custom logger")
	assert.Equal(t, customLogger, engine.TaxCalc.Logger, "Should propagate to tax calculator")

	// Test setting nil logger (should use no-op logger)
	engine.SetLogger(nil)

	assert.NotNil(t, engine.Logger, "Should not be nil")
	assert.IsType(t, NopLogger{}, engine.Logger, "Should be no-op logger")
}

func TestCalculationEngine_WarnsOnUnknownRegime(t *testing.T) {
	engine := NewCalculationEngine()
	logger := &TestLogger{}
	engine.SetLogger(logger)

	est, err := engine.EstimateTax(TaxInput{
		GrossAnnualIncome: decimal.NewFromInt(1000000),
		Regime:            domain.Regime("legacy"),
	})

	require.NoError(t, err)
	assert.Equal(t, domain.RegimeNew, est.Regime, "Unknown regime should fall back to new")
	assert.True(t, logger.has("WARN: unknown regime"), "Should log the fallback")
}

func TestCalculationEngine_WarnsOnUnknownRisk(t *testing.T) {
	engine := NewCalculationEngine()
	logger := &TestLogger{}
	engine.SetLogger(logger)

	alloc, err := engine.SuggestAllocation(domain.RiskCategory("yolo"), 5)

	require.NoError(t, err)
	assert.Equal(t, domain.RiskModerate, alloc.Risk)
	assert.True(t, logger.has("WARN: unknown risk category"))
}

func TestCalculationEngine_ValidationErrorsPassThrough(t *testing.T) {
	engine := NewCalculationEngine()

	_, err := engine.SummarizeLoan(decimal.NewFromInt(100000), decimal.NewFromInt(10), decimal.Zero)

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Contains(t, err.Error(), "years")
}

// TestLogger is a simple logger for testing
type TestLogger struct {
	messages []string
}

func (tl *TestLogger) Debugf(format string, args ...interface{}) {
	tl.messages = append(tl.messages, "DEBUG: "+format)
}

func (tl *TestLogger) Infof(format string, args ...interface{}) {
	tl.messages = append(tl.messages, "INFO: "+format)
}

func (tl *TestLogger) Warnf(format string, args ...interface{}) {
	tl.messages = append(tl.messages, "WARN: "+format)
}

func (tl *TestLogger) Errorf(format string, args ...interface{}) {
	tl.messages = append(tl.messages, "ERROR: "+format)
}

func (tl *TestLogger) has(prefix string) bool {
	for _, m := range tl.messages {
		if strings.HasPrefix(m, prefix) {
			return true
		}
	}
	return false
}
