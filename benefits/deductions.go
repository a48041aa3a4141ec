/*
deductions.go - Per-paycheck deduction calculators

PURPOSE:
  Pure functions that spread monthly and annual benefits costs across
  paychecks. Each one is independently testable and has no knowledge of
  providers, statuses, or configuration lookup.

ROUNDING:
  Currency is rounded to 2 fractional digits, half away from zero
  (decimal.Round). Rounding happens only at the steps documented on each
  function; intermediate values keep full precision.

FORMULAS:
  Base:            round(baseMonthlyCost / checksPerMonth)
  Dependents:      round((round(n * costPerDependent) + aged * agedCost) / checksPerMonth)
  High wage earner round(round(salary * rate) / checksPerYear)

PRECONDITIONS:
  checksPerMonth and checksPerYear must be positive. A zero divisor panics
  inside decimal.Div; PaycheckService recovers it.

SEE ALSO:
  - paycheck.go: Decides when each calculator applies
  - eligibility.go: CalculateAge
*/
package benefits

import (
	"time"

	"github.com/shopspring/decimal"
)

// CurrencyPlaces is the number of fractional digits kept for money.
const CurrencyPlaces = 2

// RoundCurrency rounds to cents, half away from zero.
func RoundCurrency(d decimal.Decimal) decimal.Decimal {
	return d.Round(CurrencyPlaces)
}

// CalculateBaseDeduction returns the per-paycheck share of the flat monthly
// benefits cost.
func CalculateBaseDeduction(baseMonthlyCost, checksPerMonth decimal.Decimal) decimal.Decimal {
	return RoundCurrency(baseMonthlyCost.Div(checksPerMonth))
}

// DependentDeductionInput groups the dependent calculator's settings.
type DependentDeductionInput struct {
	MonthlyCostPerDependent               decimal.Decimal
	ChecksPerMonth                        decimal.Decimal
	AdditionalMonthlyCostPerAgedDependent decimal.Decimal
	DependentAgeThreshold                 int

	// AsOf is the date ages are measured against. Zero means today.
	AsOf time.Time
}

// CalculateDependentDeduction returns the per-paycheck share of the monthly
// dependent cost. Dependents strictly older than the threshold add the
// aged-dependent surcharge. Callers short-circuit an empty slice to zero.
func CalculateDependentDeduction(dependents []Dependent, in DependentDeductionInput) decimal.Decimal {
	asOf := in.AsOf
	if asOf.IsZero() {
		asOf = time.Now()
	}

	count := decimal.NewFromInt(int64(len(dependents)))
	monthly := RoundCurrency(count.Mul(in.MonthlyCostPerDependent))

	for _, d := range dependents {
		if CalculateAge(d.DateOfBirth, asOf) > in.DependentAgeThreshold {
			monthly = monthly.Add(in.AdditionalMonthlyCostPerAgedDependent)
		}
	}

	return RoundCurrency(monthly.Div(in.ChecksPerMonth))
}

// CalculateHighWageEarnerDeduction returns the per-paycheck share of the
// annual salary surcharge. Only the annual amount and the final division
// are rounded. Callers only invoke it above the salary threshold.
func CalculateHighWageEarnerDeduction(annualSalary, annualRate decimal.Decimal, checksPerYear int) decimal.Decimal {
	annual := RoundCurrency(annualSalary.Mul(annualRate))
	return RoundCurrency(annual.Div(decimal.NewFromInt(int64(checksPerYear))))
}

// CalculateGrossPaycheck returns the annual salary spread over checksPerYear.
func CalculateGrossPaycheck(annualSalary decimal.Decimal, checksPerYear int) decimal.Decimal {
	return RoundCurrency(annualSalary.Div(decimal.NewFromInt(int64(checksPerYear))))
}
