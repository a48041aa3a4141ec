/*
Package benefits provides the paycheck deduction engine.

PURPOSE:
  Turns an employee's salary and dependents, together with the employer's
  paycheck configuration, into a per-paycheck breakdown of gross pay and
  benefits deductions. Everything in this package is pure arithmetic over
  immutable values; persistence and transport live elsewhere.

KEY CONCEPTS IN THIS FILE (types.go):
  - Employee / Dependent: Request-scoped records supplied by a provider
  - PaycheckConfiguration: Employer-wide cost and rate settings
  - PaycheckResult: Gross pay plus the three deduction categories
  - Status / Result: Outcome tagging instead of thrown errors

DESIGN PRINCIPLES:
  1. Precision: All money is decimal.Decimal, rounded to cents at fixed steps
  2. Derived values are computed, never stored (totals, net pay)
  3. Outcomes are explicit: every service call returns a Result with a Status

USAGE:
  cfg := benefits.StandardConfiguration()
  svc := benefits.NewPaycheckService(cfgProvider, benefits.NewEmployeeService(empProvider))
  res := svc.ComputePaycheck(ctx, 3)
  if res.OK() {
      fmt.Println(res.Data.NetPaycheckSalary())
  }

SEE ALSO:
  - deductions.go: Calculators
  - employee.go: Employee lookup and validation
  - paycheck.go: Paycheck assembly
*/
package benefits

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// =============================================================================
// IDENTIFIERS
// =============================================================================

type EmployeeID int
type DependentID int

// =============================================================================
// RELATIONSHIP
// =============================================================================

// Relationship describes how a dependent relates to the employee.
type Relationship string

const (
	RelationshipSpouse          Relationship = "Spouse"
	RelationshipDomesticPartner Relationship = "DomesticPartner"
	RelationshipChild           Relationship = "Child"
	RelationshipOther           Relationship = "Other"
)

// IsPartner reports whether the relationship counts toward the partner maximum.
func (r Relationship) IsPartner() bool {
	return r == RelationshipSpouse || r == RelationshipDomesticPartner
}

// ParseRelationship accepts the canonical names case-insensitively, plus
// snake_case ("domestic_partner").
func ParseRelationship(s string) (Relationship, error) {
	normalized := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(s), "_", ""))
	switch normalized {
	case "spouse":
		return RelationshipSpouse, nil
	case "domesticpartner":
		return RelationshipDomesticPartner, nil
	case "child":
		return RelationshipChild, nil
	case "other":
		return RelationshipOther, nil
	}
	return "", fmt.Errorf("unknown relationship %q", s)
}

// =============================================================================
// EMPLOYEE / DEPENDENT
// =============================================================================

// Dependent is a person an employee claims for benefits purposes.
type Dependent struct {
	ID           DependentID
	FirstName    string
	LastName     string
	Relationship Relationship
	DateOfBirth  time.Time
}

// Employee is an employee record with its claimed dependents.
// Salary is annual.
type Employee struct {
	ID          EmployeeID
	FirstName   string
	LastName    string
	Salary      decimal.Decimal
	DateOfBirth time.Time
	Dependents  []Dependent
}

// FullName returns "First Last".
func (e Employee) FullName() string {
	return e.FirstName + " " + e.LastName
}

// HasDependents reports whether any dependents are claimed.
func (e Employee) HasDependents() bool {
	return len(e.Dependents) > 0
}

// =============================================================================
// PAYCHECK CONFIGURATION
// =============================================================================

// PaycheckConfiguration holds the employer-wide settings a calculation runs against.
// It is supplied whole; there are no partial updates.
type PaycheckConfiguration struct {
	BaseMonthlyBenefitsCost               decimal.Decimal
	MonthlyCostPerDependent               decimal.Decimal
	HighWageEarnerAnnualSalaryThreshold   decimal.Decimal
	HighWageEarnerAnnualDeductionRate     decimal.Decimal // fraction of salary, e.g. 0.02
	AdditionalMonthlyCostPerAgedDependent decimal.Decimal
	DependentAgeThreshold                 int // years
	ChecksPerYear                         int
}

var monthsPerYear = decimal.NewFromInt(12)

// ChecksPerMonth is the fractional average number of paychecks per month.
func (c PaycheckConfiguration) ChecksPerMonth() decimal.Decimal {
	return decimal.NewFromInt(int64(c.ChecksPerYear)).Div(monthsPerYear)
}

// Validate checks the configuration before it is stored.
// Calculations never call it; a bad stored configuration surfaces as a
// calculation failure instead.
func (c PaycheckConfiguration) Validate() error {
	if c.ChecksPerYear <= 0 {
		return fmt.Errorf("%w: checks per year must be positive, got %d", ErrInvalidConfiguration, c.ChecksPerYear)
	}
	if c.DependentAgeThreshold < 0 {
		return fmt.Errorf("%w: dependent age threshold must not be negative", ErrInvalidConfiguration)
	}
	// The rate is a fraction; everything else is money and must be
	// representable in whole cents.
	amounts := []struct {
		name  string
		value decimal.Decimal
		money bool
	}{
		{"base monthly benefits cost", c.BaseMonthlyBenefitsCost, true},
		{"monthly cost per dependent", c.MonthlyCostPerDependent, true},
		{"high wage earner salary threshold", c.HighWageEarnerAnnualSalaryThreshold, true},
		{"high wage earner deduction rate", c.HighWageEarnerAnnualDeductionRate, false},
		{"additional monthly cost per aged dependent", c.AdditionalMonthlyCostPerAgedDependent, true},
	}
	for _, a := range amounts {
		if a.value.IsNegative() {
			return fmt.Errorf("%w: %s must not be negative", ErrInvalidConfiguration, a.name)
		}
		if a.money && !a.value.Equal(a.value.Round(CurrencyPlaces)) {
			return fmt.Errorf("%w: %s %s has more than %d decimal places",
				ErrInvalidConfiguration, a.name, a.value.String(), CurrencyPlaces)
		}
	}
	return nil
}

// StandardConfiguration returns the default employer configuration:
// $1000/month base, $600/month per dependent, +$200/month per dependent
// over 50, 2% of salary above $80,000, 26 paychecks a year.
func StandardConfiguration() PaycheckConfiguration {
	return PaycheckConfiguration{
		BaseMonthlyBenefitsCost:               decimal.RequireFromString("1000.00"),
		MonthlyCostPerDependent:               decimal.RequireFromString("600.00"),
		HighWageEarnerAnnualSalaryThreshold:   decimal.RequireFromString("80000.00"),
		HighWageEarnerAnnualDeductionRate:     decimal.RequireFromString("0.02"),
		AdditionalMonthlyCostPerAgedDependent: decimal.RequireFromString("200.00"),
		DependentAgeThreshold:                 50,
		ChecksPerYear:                         26,
	}
}

// =============================================================================
// PAYCHECK RESULT
// =============================================================================

// PaycheckResult is one pay period's breakdown.
type PaycheckResult struct {
	GrossPaycheckSalary     decimal.Decimal
	BaseBenefitsDeduction   decimal.Decimal
	DependentsDeduction     decimal.Decimal
	HighWageEarnerDeduction decimal.Decimal
}

func (p PaycheckResult) TotalBenefitsDeduction() decimal.Decimal {
	return p.BaseBenefitsDeduction.Add(p.DependentsDeduction).Add(p.HighWageEarnerDeduction)
}

func (p PaycheckResult) NetPaycheckSalary() decimal.Decimal {
	return p.GrossPaycheckSalary.Sub(p.TotalBenefitsDeduction())
}

// =============================================================================
// STATUS / RESULT
// =============================================================================

// Status is the terminal outcome of a lookup or calculation.
type Status int

const (
	StatusSuccess Status = iota
	StatusNotFound
	StatusInvalidData
)

func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "success"
	case StatusNotFound:
		return "not_found"
	case StatusInvalidData:
		return "invalid_data"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// Result carries either data (StatusSuccess) or a failure status with an
// optional human-readable message.
type Result[T any] struct {
	Status  Status
	Data    T
	Message string
}

func Success[T any](data T) Result[T] {
	return Result[T]{Status: StatusSuccess, Data: data}
}

func Failure[T any](status Status, message string) Result[T] {
	return Result[T]{Status: status, Message: message}
}

func (r Result[T]) OK() bool { return r.Status == StatusSuccess }
