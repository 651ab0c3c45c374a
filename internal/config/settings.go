package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/shopspring/decimal"
)

const appName = "pfgo"

// DefaultProfileFile is where the chat profile lives unless settings say otherwise
const DefaultProfileFile = ".pf_chatbot_profile.json"

// Settings holds all pfgo preferences.
type Settings struct {
	Paths       PathsConfig       `toml:"paths"`
	Assumptions AssumptionsConfig `toml:"assumptions"`
}

// PathsConfig holds file locations. Empty values mean the default location.
type PathsConfig struct {
	Profile string `toml:"profile,omitempty"`
	History string `toml:"history,omitempty"`
	Rules   string `toml:"rules,omitempty"`
}

// AssumptionsConfig holds the defaults used when the user does not supply a value.
type AssumptionsConfig struct {
	InflationPct          float64 `toml:"inflation_pct"`
	SafeWithdrawalRatePct float64 `toml:"safe_withdrawal_rate_pct"`
	AccumulationReturnPct float64 `toml:"accumulation_return_pct"`
	RetiredYears          int     `toml:"retired_years"`
	EmergencyMonths       int     `toml:"emergency_months"`
}

// DefaultSettings returns the default settings.
func DefaultSettings() Settings {
	return Settings{
		Assumptions: AssumptionsConfig{
			InflationPct:          6,
			SafeWithdrawalRatePct: 3.5,
			AccumulationReturnPct: 12,
			RetiredYears:          25,
			EmergencyMonths:       6,
		},
	}
}

// SettingsDir returns the XDG-compliant config directory.
func SettingsDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, appName)
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", appName)
}

// SettingsPath returns the full path to the settings file.
func SettingsPath() string {
	return filepath.Join(SettingsDir(), "config.toml")
}

// DataDir returns the XDG-compliant data directory.
func DataDir() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, appName)
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", appName)
}

// LoadSettings reads the settings file, returning defaults if it doesn't exist.
func LoadSettings() (Settings, error) {
	return LoadSettingsFrom(SettingsPath())
}

// LoadSettingsFrom reads settings from path, returning defaults if it doesn't exist.
func LoadSettingsFrom(path string) (Settings, error) {
	s := DefaultSettings()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return s, fmt.Errorf("reading settings: %w", err)
	}

	if err := toml.Unmarshal(data, &s); err != nil {
		return s, fmt.Errorf("parsing settings: %w", err)
	}
	if err := s.Validate(); err != nil {
		return s, fmt.Errorf("invalid settings in %s: %w", path, err)
	}

	return s, nil
}

// SaveSettings writes the settings to the default location.
func SaveSettings(s Settings) error {
	return SaveSettingsTo(SettingsPath(), s)
}

// SaveSettingsTo writes the settings to path.
func SaveSettingsTo(path string, s Settings) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating settings file: %w", err)
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(s)
}

// Validate rejects assumptions the calculators cannot use.
func (s Settings) Validate() error {
	a := s.Assumptions
	if a.InflationPct <= -100 {
		return fmt.Errorf("inflation_pct must be greater than -100")
	}
	if a.SafeWithdrawalRatePct <= 0 {
		return fmt.Errorf("safe_withdrawal_rate_pct must be positive")
	}
	if a.AccumulationReturnPct < 0 {
		return fmt.Errorf("accumulation_return_pct cannot be negative")
	}
	if a.RetiredYears < 0 {
		return fmt.Errorf("retired_years cannot be negative")
	}
	if a.EmergencyMonths < 0 {
		return fmt.Errorf("emergency_months cannot be negative")
	}
	return nil
}

// ProfilePath returns the configured profile path or ~/.pf_chatbot_profile.json.
func (s Settings) ProfilePath() string {
	if s.Paths.Profile != "" {
		return expandHome(s.Paths.Profile)
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, DefaultProfileFile)
}

// HistoryPath returns the configured history database path.
func (s Settings) HistoryPath() string {
	if s.Paths.History != "" {
		return expandHome(s.Paths.History)
	}
	return filepath.Join(DataDir(), "history.db")
}

// RulesPath returns the configured rules file, or "" for the built-in rules.
func (s Settings) RulesPath() string {
	return expandHome(s.Paths.Rules)
}

// Inflation returns the default inflation assumption in percent.
func (a AssumptionsConfig) Inflation() decimal.Decimal {
	return decimal.NewFromFloat(a.InflationPct)
}

// SafeWithdrawalRate returns the default safe withdrawal rate in percent.
func (a AssumptionsConfig) SafeWithdrawalRate() decimal.Decimal {
	return decimal.NewFromFloat(a.SafeWithdrawalRatePct)
}

// AccumulationReturn returns the default pre-retirement return in percent.
func (a AssumptionsConfig) AccumulationReturn() decimal.Decimal {
	return decimal.NewFromFloat(a.AccumulationReturnPct)
}

func expandHome(p string) string {
	if p == "~" || len(p) > 1 && p[:2] == "~/" {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, p[1:])
	}
	return p
}
