package calculation

import (
	"github.com/rgehrsitz/pfgo/internal/domain"
	"github.com/shopspring/decimal"
)

// SizeEmergencyFund returns monthlyExpense * months
func SizeEmergencyFund(monthlyExpense decimal.Decimal, months int) (domain.EmergencyFund, error) {
	if err := requireNonNegative("monthly expense", monthlyExpense); err != nil {
		return domain.EmergencyFund{}, err
	}
	if months < 0 {
		return domain.EmergencyFund{}, invalid("months", "must not be negative, got %d", months)
	}
	return domain.EmergencyFund{
		MonthlyExpense: monthlyExpense,
		Months:         months,
		Target:         monthlyExpense.Mul(decimal.NewFromInt(int64(months))),
	}, nil
}
