/*
Package factory provides JSON to Go paycheck configuration conversion.

PURPOSE:
  Converts JSON configuration documents into benefits.PaycheckConfiguration
  values and back. The HTTP API accepts configuration updates in this
  shape and scenarios seed the store from it.

JSON SCHEMA:
  {
    "base_monthly_benefits_cost": "1000.00",
    "monthly_cost_per_dependent": "600.00",
    "high_wage_earner_annual_salary_threshold": "80000.00",
    "high_wage_earner_annual_deduction_rate": "0.02",
    "additional_monthly_cost_per_aged_dependent": "200.00",
    "dependent_age_threshold": 50,
    "checks_per_year": 26
  }

  Amounts may be JSON strings or numbers. Strings are preferred because
  numbers are read through the decoder before reaching decimal.

KEY FEATURES:
  - Every field is required; a missing field is an error, not a zero
  - The parsed configuration is validated before it is returned
  - Money amounts are limited to whole cents; the rate keeps its digits
  - ToJSON renders exactly what is stored, so GET then PUT is a no-op

USAGE:
  f := factory.NewConfigurationFactory()

  cfg, err := f.ParseConfiguration(factory.StandardConfigurationJSON())
  if err != nil {
      return err
  }
  store.SavePaycheckConfiguration(ctx, *cfg)

SEE ALSO:
  - benefits/types.go: PaycheckConfiguration and Validate
  - api/handlers.go: PUT /api/v1/paycheck-configuration
*/
package factory

import (
	"fmt"
	"strings"

	"github.com/goccy/go-json"
	"github.com/shopspring/decimal"

	"github.com/warp/benefits-engine/benefits"
)

// =============================================================================
// JSON SCHEMA TYPES
// =============================================================================

// ConfigurationJSON is the JSON representation of a paycheck configuration.
// Pointer fields distinguish "absent" from zero.
type ConfigurationJSON struct {
	BaseMonthlyBenefitsCost               *decimal.Decimal `json:"base_monthly_benefits_cost"`
	MonthlyCostPerDependent               *decimal.Decimal `json:"monthly_cost_per_dependent"`
	HighWageEarnerAnnualSalaryThreshold   *decimal.Decimal `json:"high_wage_earner_annual_salary_threshold"`
	HighWageEarnerAnnualDeductionRate     *decimal.Decimal `json:"high_wage_earner_annual_deduction_rate"`
	AdditionalMonthlyCostPerAgedDependent *decimal.Decimal `json:"additional_monthly_cost_per_aged_dependent"`
	DependentAgeThreshold                 *int             `json:"dependent_age_threshold"`
	ChecksPerYear                         *int             `json:"checks_per_year"`
}

// =============================================================================
// FACTORY
// =============================================================================

// ConfigurationFactory converts between JSON and PaycheckConfiguration.
type ConfigurationFactory struct{}

// NewConfigurationFactory creates a new configuration factory.
func NewConfigurationFactory() *ConfigurationFactory {
	return &ConfigurationFactory{}
}

// ParseConfiguration parses a JSON document into a validated configuration.
func (f *ConfigurationFactory) ParseConfiguration(jsonStr string) (*benefits.PaycheckConfiguration, error) {
	var cj ConfigurationJSON
	if err := json.Unmarshal([]byte(jsonStr), &cj); err != nil {
		return nil, fmt.Errorf("failed to parse configuration JSON: %w", err)
	}
	return f.FromJSON(cj)
}

// FromJSON converts ConfigurationJSON to a validated PaycheckConfiguration.
func (f *ConfigurationFactory) FromJSON(cj ConfigurationJSON) (*benefits.PaycheckConfiguration, error) {
	var missing []string
	amount := func(name string, v *decimal.Decimal) decimal.Decimal {
		if v == nil {
			missing = append(missing, name)
			return decimal.Zero
		}
		return *v
	}
	count := func(name string, v *int) int {
		if v == nil {
			missing = append(missing, name)
			return 0
		}
		return *v
	}

	cfg := &benefits.PaycheckConfiguration{
		BaseMonthlyBenefitsCost:               amount("base_monthly_benefits_cost", cj.BaseMonthlyBenefitsCost),
		MonthlyCostPerDependent:               amount("monthly_cost_per_dependent", cj.MonthlyCostPerDependent),
		HighWageEarnerAnnualSalaryThreshold:   amount("high_wage_earner_annual_salary_threshold", cj.HighWageEarnerAnnualSalaryThreshold),
		HighWageEarnerAnnualDeductionRate:     amount("high_wage_earner_annual_deduction_rate", cj.HighWageEarnerAnnualDeductionRate),
		AdditionalMonthlyCostPerAgedDependent: amount("additional_monthly_cost_per_aged_dependent", cj.AdditionalMonthlyCostPerAgedDependent),
		DependentAgeThreshold:                 count("dependent_age_threshold", cj.DependentAgeThreshold),
		ChecksPerYear:                         count("checks_per_year", cj.ChecksPerYear),
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: missing %s", benefits.ErrInvalidConfiguration, strings.Join(missing, ", "))
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ToJSON converts a configuration back to its JSON representation.
func (f *ConfigurationFactory) ToJSON(cfg benefits.PaycheckConfiguration) ConfigurationJSON {
	return ConfigurationJSON{
		BaseMonthlyBenefitsCost:               &cfg.BaseMonthlyBenefitsCost,
		MonthlyCostPerDependent:               &cfg.MonthlyCostPerDependent,
		HighWageEarnerAnnualSalaryThreshold:   &cfg.HighWageEarnerAnnualSalaryThreshold,
		HighWageEarnerAnnualDeductionRate:     &cfg.HighWageEarnerAnnualDeductionRate,
		AdditionalMonthlyCostPerAgedDependent: &cfg.AdditionalMonthlyCostPerAgedDependent,
		DependentAgeThreshold:                 &cfg.DependentAgeThreshold,
		ChecksPerYear:                         &cfg.ChecksPerYear,
	}
}

// Marshal renders a configuration as a JSON document.
func (f *ConfigurationFactory) Marshal(cfg benefits.PaycheckConfiguration) (string, error) {
	data, err := json.MarshalIndent(f.ToJSON(cfg), "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// =============================================================================
// PRESETS
// =============================================================================

// StandardConfigurationJSON returns the default employer configuration as JSON.
func StandardConfigurationJSON() string {
	return `{
  "base_monthly_benefits_cost": "1000.00",
  "monthly_cost_per_dependent": "600.00",
  "high_wage_earner_annual_salary_threshold": "80000.00",
  "high_wage_earner_annual_deduction_rate": "0.02",
  "additional_monthly_cost_per_aged_dependent": "200.00",
  "dependent_age_threshold": 50,
  "checks_per_year": 26
}`
}
