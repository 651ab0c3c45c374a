package profile

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rgehrsitz/pfgo/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedStore(t *testing.T, name string) *Store {
	t.Helper()
	s := NewStore(filepath.Join(t.TempDir(), name))
	s.now = func() time.Time { return time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC) }
	return s
}

func TestStore_MissingFileGivesDefaults(t *testing.T) {
	s := fixedStore(t, "profile.json")

	p, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultProfileName, p.Name)
	assert.Equal(t, 6, p.EmergencyMonths)
	assert.Equal(t, domain.RiskModerate, p.Risk)
	assert.Equal(t, "2024-06-01T10:00:00", p.CreatedAt)
}

func TestStore_SaveAndLoad(t *testing.T) {
	s := fixedStore(t, "nested/profile.json")

	age := 34
	income := decimal.NewFromInt(150000)
	expenses := decimal.NewFromInt(60000)
	city := "Pune"
	old := domain.RegimeOld
	p := domain.NewUserProfile(time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC))
	p.Name = "Asha"
	p.Age = &age
	p.MonthlyIncome = &income
	p.MonthlyExpenses = &expenses
	p.City = &city
	p.Risk = domain.RiskAggressive
	p.RegimePreference = &old

	require.NoError(t, s.Save(p))
	_, err := os.Stat(s.Path() + ".tmp")
	assert.True(t, os.IsNotExist(err), "temp file is renamed away")

	loaded, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, "Asha", loaded.Name)
	require.NotNil(t, loaded.Age)
	assert.Equal(t, 34, *loaded.Age)
	assert.True(t, loaded.MonthlyIncome.Equal(income))
	assert.Equal(t, "Pune", *loaded.City)
	assert.Equal(t, domain.RiskAggressive, loaded.Risk)
	assert.Equal(t, domain.RegimeOld, loaded.PreferredRegime())
	assert.Equal(t, "2023-01-01T00:00:00", loaded.CreatedAt)

	capacity, ok := loaded.SavingsCapacity()
	require.True(t, ok)
	assert.True(t, capacity.Equal(decimal.NewFromInt(90000)))
}

func TestStore_CorruptFileGivesDefaults(t *testing.T) {
	s := fixedStore(t, "profile.json")
	require.NoError(t, os.WriteFile(s.Path(), []byte("{not json"), 0o600))

	p, err := s.Load()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrCorrupt)
	assert.Equal(t, domain.DefaultProfileName, p.Name)
	assert.Nil(t, p.MonthlyIncome)
}

func TestStore_LoadsNumericFieldsAndFillsGaps(t *testing.T) {
	s := fixedStore(t, "profile.json")
	doc := `{"name": "Ravi", "monthly_expenses": 45000.5, "risk": "AGGRESSIVE", "regime_preference": "Old"}`
	require.NoError(t, os.WriteFile(s.Path(), []byte(doc), 0o600))

	p, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, "Ravi", p.Name)
	assert.True(t, p.MonthlyExpenses.Equal(decimal.RequireFromString("45000.5")))
	assert.Equal(t, 6, p.EmergencyMonths, "missing fields keep their defaults")
	assert.Equal(t, domain.RiskAggressive, p.Risk)
	assert.Equal(t, domain.RegimeOld, *p.RegimePreference)
}
