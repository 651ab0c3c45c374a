package config

import (
	"bytes"
	"fmt"
	"os"

	"github.com/rgehrsitz/pfgo/internal/calculation"
	"github.com/rgehrsitz/pfgo/internal/domain"
	"gopkg.in/yaml.v3"
)

// RulesParser handles parsing of tax rules files
type RulesParser struct{}

// NewRulesParser creates a new rules parser
func NewRulesParser() *RulesParser {
	return &RulesParser{}
}

// LoadFromFile loads and validates a YAML tax rules file
func (rp *RulesParser) LoadFromFile(filename string) (*calculation.TaxConfig, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	cfg, err := rp.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return cfg, nil
}

// Parse decodes a rules document. Unknown keys are rejected so that a
// misspelled field does not silently fall back to zero.
func (rp *RulesParser) Parse(data []byte) (*calculation.TaxConfig, error) {
	var rules domain.TaxRules
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&rules); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := rp.ValidateRules(&rules); err != nil {
		return nil, fmt.Errorf("rules validation failed: %w", err)
	}

	return calculation.NewTaxConfig(rules)
}

// ValidateRules checks the parts of a document that NewTaxConfig does not
func (rp *RulesParser) ValidateRules(rules *domain.TaxRules) error {
	if rules.Metadata.FinancialYear == "" {
		return fmt.Errorf("metadata.financial_year is required")
	}
	if len(rules.NewRegime.Slabs) == 0 {
		return fmt.Errorf("new_regime.slabs is required")
	}
	if len(rules.OldRegime.Slabs) == 0 {
		return fmt.Errorf("old_regime.slabs is required")
	}
	return nil
}

// MarshalRules renders the effective rules as YAML
func MarshalRules(cfg *calculation.TaxConfig) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(cfg.Rules()); err != nil {
		return nil, fmt.Errorf("encoding rules: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encoding rules: %w", err)
	}
	return buf.Bytes(), nil
}

// LoadTaxConfig returns the rules at path, or the built-in rules when path is empty
func LoadTaxConfig(path string) (*calculation.TaxConfig, error) {
	if path == "" {
		return calculation.DefaultTaxConfig(), nil
	}
	return NewRulesParser().LoadFromFile(path)
}
