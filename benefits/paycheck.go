/*
paycheck.go - Paycheck assembly

PURPOSE:
  Orchestrates one employee's paycheck: fetch configuration, resolve the
  employee, run the calculators, and return a tagged Result.

FLOW:
  1. Configuration (absent -> InvalidData, calculation aborted)
  2. Employee lookup via EmployeeService (status propagated verbatim)
  3. Gross pay
  4. Base deduction
  5. Dependent deduction (0.00 without dependents)
  6. High wage earner deduction (0.00 at or below the threshold)

FAILURE BOUNDARY:
  Steps 3-6 run under a recover. A panic there (e.g. a zero checks-per-year
  configuration) becomes InvalidData with MessageCalculationFailed. Callers
  never see a panic or a raw error.

CONCURRENCY:
  PaycheckService holds no mutable state and is safe for concurrent use.
*/
package benefits

import (
	"context"
	"log"
	"time"

	"github.com/shopspring/decimal"
)

// PaycheckService computes per-paycheck benefits deductions.
type PaycheckService struct {
	config    ConfigurationProvider
	employees *EmployeeService

	// Now supplies the reference date for dependent ages.
	Now func() time.Time
}

func NewPaycheckService(config ConfigurationProvider, employees *EmployeeService) *PaycheckService {
	return &PaycheckService{
		config:    config,
		employees: employees,
		Now:       time.Now,
	}
}

// ComputePaycheck computes the paycheck for the employee with the given id.
func (s *PaycheckService) ComputePaycheck(ctx context.Context, id EmployeeID) Result[PaycheckResult] {
	cfg, ok := s.loadConfiguration(ctx)
	if !ok {
		return Failure[PaycheckResult](StatusInvalidData, MessageConfigurationUnavailable)
	}

	emp := s.employees.GetEmployee(ctx, id)
	if !emp.OK() {
		return Failure[PaycheckResult](emp.Status, emp.Message)
	}

	return s.assemble(*cfg, emp.Data)
}

// ComputePaycheckFor computes the paycheck for an employee the caller has
// already resolved and validated.
func (s *PaycheckService) ComputePaycheckFor(ctx context.Context, emp Employee) Result[PaycheckResult] {
	cfg, ok := s.loadConfiguration(ctx)
	if !ok {
		return Failure[PaycheckResult](StatusInvalidData, MessageConfigurationUnavailable)
	}
	return s.assemble(*cfg, emp)
}

func (s *PaycheckService) loadConfiguration(ctx context.Context) (*PaycheckConfiguration, bool) {
	cfg, err := s.config.GetPaycheckConfiguration(ctx)
	if err != nil {
		log.Printf("[Paycheck] Failed to load paycheck configuration: %v", err)
		return nil, false
	}
	return cfg, cfg != nil
}

func (s *PaycheckService) assemble(cfg PaycheckConfiguration, emp Employee) (res Result[PaycheckResult]) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[Paycheck] Calculation failed for employee %d: %v", emp.ID, r)
			res = Failure[PaycheckResult](StatusInvalidData, MessageCalculationFailed)
		}
	}()

	checksPerMonth := cfg.ChecksPerMonth()

	paycheck := PaycheckResult{
		GrossPaycheckSalary:     CalculateGrossPaycheck(emp.Salary, cfg.ChecksPerYear),
		BaseBenefitsDeduction:   CalculateBaseDeduction(cfg.BaseMonthlyBenefitsCost, checksPerMonth),
		DependentsDeduction:     decimal.Zero,
		HighWageEarnerDeduction: decimal.Zero,
	}

	if emp.HasDependents() {
		paycheck.DependentsDeduction = CalculateDependentDeduction(emp.Dependents, DependentDeductionInput{
			MonthlyCostPerDependent:               cfg.MonthlyCostPerDependent,
			ChecksPerMonth:                        checksPerMonth,
			AdditionalMonthlyCostPerAgedDependent: cfg.AdditionalMonthlyCostPerAgedDependent,
			DependentAgeThreshold:                 cfg.DependentAgeThreshold,
			AsOf:                                  s.now(),
		})
	}

	if emp.Salary.GreaterThan(cfg.HighWageEarnerAnnualSalaryThreshold) {
		paycheck.HighWageEarnerDeduction = CalculateHighWageEarnerDeduction(
			emp.Salary, cfg.HighWageEarnerAnnualDeductionRate, cfg.ChecksPerYear)
	}

	return Success(paycheck)
}

func (s *PaycheckService) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}
