package benefits_test

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/warp/benefits-engine/benefits"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

func money(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func assertMoney(t *testing.T, want string, got decimal.Decimal, label ...string) {
	t.Helper()
	assert.True(t, money(want).Equal(got), "%s expected %s, got %s", strings.Join(label, " "), want, got)
}

// asOf is the fixed reference date used for dependent ages in tests.
var asOf = date(2025, time.June, 1)

func standardDependentInput() benefits.DependentDeductionInput {
	cfg := benefits.StandardConfiguration()
	return benefits.DependentDeductionInput{
		MonthlyCostPerDependent:               cfg.MonthlyCostPerDependent,
		ChecksPerMonth:                        cfg.ChecksPerMonth(),
		AdditionalMonthlyCostPerAgedDependent: cfg.AdditionalMonthlyCostPerAgedDependent,
		DependentAgeThreshold:                 cfg.DependentAgeThreshold,
		AsOf:                                  asOf,
	}
}

// =============================================================================
// ROUNDING
// =============================================================================

func TestRoundCurrency_HalfAwayFromZero(t *testing.T) {
	assertMoney(t, "0.13", benefits.RoundCurrency(money("0.125")))
	assertMoney(t, "-0.13", benefits.RoundCurrency(money("-0.125")))
	assertMoney(t, "0.12", benefits.RoundCurrency(money("0.1249")))
	assertMoney(t, "461.54", benefits.RoundCurrency(money("461.538461")))
}

func TestRoundCurrency_Idempotent(t *testing.T) {
	values := []string{"0", "0.01", "5508.12", "461.54", "-71.05", "1847.3044", "830.769230769", "0.005"}
	for _, v := range values {
		once := benefits.RoundCurrency(money(v))
		twice := benefits.RoundCurrency(once)
		assert.True(t, once.Equal(twice), "re-rounding %s changed %s to %s", v, once, twice)
	}
}

// =============================================================================
// BASE DEDUCTION
// =============================================================================

func TestBaseDeduction_SpreadsMonthlyCostOverChecksPerMonth(t *testing.T) {
	// GIVEN: $1000/month across 26 checks a year (26/12 checks per month)
	// THEN: 1000 / 2.1666... = 461.538... -> 461.54
	cfg := benefits.StandardConfiguration()
	got := benefits.CalculateBaseDeduction(cfg.BaseMonthlyBenefitsCost, cfg.ChecksPerMonth())
	assertMoney(t, "461.54", got)
}

func TestBaseDeduction_MonthlyPayroll(t *testing.T) {
	cfg := benefits.StandardConfiguration()
	cfg.ChecksPerYear = 12
	got := benefits.CalculateBaseDeduction(cfg.BaseMonthlyBenefitsCost, cfg.ChecksPerMonth())
	assertMoney(t, "1000.00", got)
}

func TestBaseDeduction_ZeroChecksPanics(t *testing.T) {
	assert.Panics(t, func() {
		benefits.CalculateBaseDeduction(money("1000"), decimal.Zero)
	})
}

// =============================================================================
// DEPENDENT DEDUCTION
// =============================================================================

func TestDependentDeduction_NoneAged(t *testing.T) {
	// GIVEN: Three dependents, all well under 50
	// THEN: 3 * 600 = 1800 / 2.1666... = 830.77
	deps := []benefits.Dependent{
		{ID: 1, Relationship: benefits.RelationshipSpouse, DateOfBirth: date(1998, time.March, 3)},
		{ID: 2, Relationship: benefits.RelationshipChild, DateOfBirth: date(2020, time.June, 23)},
		{ID: 3, Relationship: benefits.RelationshipChild, DateOfBirth: date(2021, time.May, 18)},
	}
	got := benefits.CalculateDependentDeduction(deps, standardDependentInput())
	assertMoney(t, "830.77", got)
}

func TestDependentDeduction_AgedDependentSurcharge(t *testing.T) {
	// GIVEN: One domestic partner aged 51
	// THEN: 600 + 200 = 800 / 2.1666... = 369.23
	deps := []benefits.Dependent{
		{ID: 4, Relationship: benefits.RelationshipDomesticPartner, DateOfBirth: date(1974, time.January, 2)},
	}
	got := benefits.CalculateDependentDeduction(deps, standardDependentInput())
	assertMoney(t, "369.23", got)
}

func TestDependentDeduction_AgeEqualToThresholdHasNoSurcharge(t *testing.T) {
	// GIVEN: A dependent who is exactly 50 on the reference date
	// THEN: Strict comparison, so only the base 600 applies
	dob := date(1975, time.January, 1)
	assert.Equal(t, 50, benefits.CalculateAge(dob, asOf))

	deps := []benefits.Dependent{{ID: 1, Relationship: benefits.RelationshipChild, DateOfBirth: dob}}
	got := benefits.CalculateDependentDeduction(deps, standardDependentInput())
	assertMoney(t, "276.92", got)
}

func TestDependentDeduction_MixedAges(t *testing.T) {
	// 2 * 600 + 200 = 1400 / 2.1666... = 646.15
	deps := []benefits.Dependent{
		{ID: 1, Relationship: benefits.RelationshipSpouse, DateOfBirth: date(1960, time.July, 4)},
		{ID: 2, Relationship: benefits.RelationshipChild, DateOfBirth: date(2010, time.July, 4)},
	}
	got := benefits.CalculateDependentDeduction(deps, standardDependentInput())
	assertMoney(t, "646.15", got)
}

func TestDependentDeduction_ZeroAsOfUsesToday(t *testing.T) {
	in := standardDependentInput()
	in.AsOf = time.Time{}

	// Born 100 years ago: aged on any "today"
	deps := []benefits.Dependent{{ID: 1, Relationship: benefits.RelationshipOther, DateOfBirth: time.Now().AddDate(-100, 0, 0)}}
	got := benefits.CalculateDependentDeduction(deps, in)
	assertMoney(t, "369.23", got)
}

// =============================================================================
// HIGH WAGE EARNER DEDUCTION
// =============================================================================

func TestHighWageEarnerDeduction_TwoStepRounding(t *testing.T) {
	tests := []struct {
		name   string
		salary string
		want   string
	}{
		// 143211.12 * 0.02 = 2864.2224 -> 2864.22 / 26 = 110.1623 -> 110.16
		{"scenario A salary", "143211.12", "110.16"},
		// 92365.22 * 0.02 = 1847.3044 -> 1847.30 / 26 = 71.0500 -> 71.05
		{"scenario B salary", "92365.22", "71.05"},
		{"round thousands", "130000.00", "100.00"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := benefits.CalculateHighWageEarnerDeduction(money(tt.salary), money("0.02"), 26)
			assertMoney(t, tt.want, got)
		})
	}
}

func TestGrossPaycheck(t *testing.T) {
	assertMoney(t, "5508.12", benefits.CalculateGrossPaycheck(money("143211.12"), 26))
	assertMoney(t, "3552.51", benefits.CalculateGrossPaycheck(money("92365.22"), 26))
	assertMoney(t, "2900.81", benefits.CalculateGrossPaycheck(money("75420.99"), 26))
}

// =============================================================================
// PAYCHECK RESULT
// =============================================================================

func TestPaycheckResult_DerivedTotals(t *testing.T) {
	results := []benefits.PaycheckResult{
		{GrossPaycheckSalary: money("5508.12"), BaseBenefitsDeduction: money("461.54"), DependentsDeduction: money("369.23"), HighWageEarnerDeduction: money("110.16")},
		{GrossPaycheckSalary: money("2900.81"), BaseBenefitsDeduction: money("461.54"), DependentsDeduction: decimal.Zero, HighWageEarnerDeduction: decimal.Zero},
		{GrossPaycheckSalary: money("100.00"), BaseBenefitsDeduction: money("461.54"), DependentsDeduction: money("830.77"), HighWageEarnerDeduction: decimal.Zero},
	}
	for _, r := range results {
		total := r.BaseBenefitsDeduction.Add(r.DependentsDeduction).Add(r.HighWageEarnerDeduction)
		assert.True(t, total.Equal(r.TotalBenefitsDeduction()))
		assert.True(t, r.GrossPaycheckSalary.Sub(total).Equal(r.NetPaycheckSalary()))
	}

	assertMoney(t, "940.93", results[0].TotalBenefitsDeduction())
	assertMoney(t, "4567.19", results[0].NetPaycheckSalary())
	assertMoney(t, "-1192.31", results[2].NetPaycheckSalary())
}

// =============================================================================
// CONFIGURATION
// =============================================================================

func TestConfiguration_ChecksPerMonth(t *testing.T) {
	cfg := benefits.StandardConfiguration()
	assert.Equal(t, "2.17", cfg.ChecksPerMonth().StringFixed(2))

	cfg.ChecksPerYear = 24
	assert.True(t, cfg.ChecksPerMonth().Equal(decimal.NewFromInt(2)))
}

func TestConfiguration_Validate(t *testing.T) {
	assert.NoError(t, benefits.StandardConfiguration().Validate())

	cfg := benefits.StandardConfiguration()
	cfg.ChecksPerYear = 0
	err := cfg.Validate()
	assert.ErrorIs(t, err, benefits.ErrInvalidConfiguration)
	assert.True(t, benefits.IsClientError(err))

	cfg = benefits.StandardConfiguration()
	cfg.MonthlyCostPerDependent = money("-1")
	assert.ErrorIs(t, cfg.Validate(), benefits.ErrInvalidConfiguration)

	cfg = benefits.StandardConfiguration()
	cfg.DependentAgeThreshold = -5
	assert.ErrorIs(t, cfg.Validate(), benefits.ErrInvalidConfiguration)

	// Money is whole cents; the rate may carry more digits
	cfg = benefits.StandardConfiguration()
	cfg.AdditionalMonthlyCostPerAgedDependent = money("200.005")
	assert.ErrorIs(t, cfg.Validate(), benefits.ErrInvalidConfiguration)

	cfg = benefits.StandardConfiguration()
	cfg.HighWageEarnerAnnualDeductionRate = money("0.0175")
	cfg.BaseMonthlyBenefitsCost = money("1000.100")
	assert.NoError(t, cfg.Validate())
}
