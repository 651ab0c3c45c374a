package main

import (
	"fmt"
	"strings"

	"github.com/rgehrsitz/pfgo/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

// decimalFlag reads a string flag as a decimal amount. Digit separators and
// a leading ₹ are accepted; anything else is an error.
func decimalFlag(cmd *cobra.Command, name string) (decimal.Decimal, error) {
	raw, err := cmd.Flags().GetString(name)
	if err != nil {
		return decimal.Zero, err
	}
	return parseAmount(name, raw)
}

func parseAmount(name, raw string) (decimal.Decimal, error) {
	s := strings.TrimSpace(raw)
	s = strings.TrimPrefix(s, "₹")
	s = strings.NewReplacer(",", "", "_", "").Replace(s)
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid --%s %q: not a number", name, raw)
	}
	return d, nil
}

// requiredDecimal is decimalFlag for flags that have no default
func requiredDecimal(cmd *cobra.Command, name string) (decimal.Decimal, error) {
	if !cmd.Flags().Changed(name) {
		return decimal.Zero, fmt.Errorf("--%s is required", name)
	}
	return decimalFlag(cmd, name)
}

// parseRegime accepts only the two regime names
func parseRegime(s string) (domain.Regime, error) {
	r := domain.Regime(strings.ToLower(strings.TrimSpace(s)))
	if !r.Valid() {
		return "", fmt.Errorf("unknown regime %q (valid: new, old)", s)
	}
	return r, nil
}

// parseRisk accepts only the three risk categories
func parseRisk(s string) (domain.RiskCategory, error) {
	c := domain.RiskCategory(strings.ToLower(strings.TrimSpace(s)))
	if !c.Valid() {
		return "", fmt.Errorf("unknown risk %q (valid: conservative, moderate, aggressive)", s)
	}
	return c, nil
}
