package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DefaultProfileName is used until the user tells us otherwise
const DefaultProfileName = "Friend"

// DefaultEmergencyMonths is the buffer size suggested when none is stored
const DefaultEmergencyMonths = 6

// UserProfile holds what the interactive front end remembers about the user.
// The calculation engine never reads it directly; callers resolve defaults
// from it before invoking a calculator.
type UserProfile struct {
	Name             string           `json:"name"`
	Age              *int             `json:"age"`
	MonthlyIncome    *decimal.Decimal `json:"monthly_income"`
	MonthlyExpenses  *decimal.Decimal `json:"monthly_expenses"`
	EmergencyMonths  int              `json:"emergency_months"`
	Risk             RiskCategory     `json:"risk"`
	City             *string          `json:"city"`
	RegimePreference *Regime          `json:"regime_preference"`
	CreatedAt        string           `json:"created_at"`
}

// NewUserProfile returns a profile populated with defaults
func NewUserProfile(now time.Time) UserProfile {
	return UserProfile{
		Name:            DefaultProfileName,
		EmergencyMonths: DefaultEmergencyMonths,
		Risk:            RiskModerate,
		CreatedAt:       now.Format("2006-01-02T15:04:05"),
	}
}

// SavingsCapacity returns income minus expenses, floored at zero. The second
// return value is false when either figure is unknown.
func (p UserProfile) SavingsCapacity() (decimal.Decimal, bool) {
	if p.MonthlyIncome == nil || p.MonthlyExpenses == nil {
		return decimal.Zero, false
	}
	return decimal.Max(decimal.Zero, p.MonthlyIncome.Sub(*p.MonthlyExpenses)), true
}

// PreferredRegime returns the stored regime preference or the new regime
func (p UserProfile) PreferredRegime() Regime {
	if p.RegimePreference == nil {
		return RegimeNew
	}
	return NormalizeRegime(string(*p.RegimePreference))
}
