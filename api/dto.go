/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types decouple
  the benefits domain model from the external API contract.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients
  - *Response: Envelopes

ENVELOPES:
  Success: {"data": ..., "success": true, "message": ""}
  Failure: {"success": false, "error": "...", "details": "..."}

MONEY:
  Amounts leave the API as strings with two decimal places ("461.54").
  Incoming salaries may be JSON strings or numbers.

SEE ALSO:
  - handlers.go: Uses these types
  - factory/configuration.go: ConfigurationJSON type
*/
package api

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/warp/benefits-engine/benefits"
	"github.com/warp/benefits-engine/factory"
	"github.com/warp/benefits-engine/store/sqlite"
)

const dateLayout = "2006-01-02"

// =============================================================================
// ENVELOPES
// =============================================================================

// APIResponse wraps every successful response.
type APIResponse struct {
	Data    any    `json:"data"`
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// ErrorResponse is returned for every failed request.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// =============================================================================
// EMPLOYEES & DEPENDENTS
// =============================================================================

// DependentDTO represents a dependent in API responses.
type DependentDTO struct {
	ID           int    `json:"id"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	Relationship string `json:"relationship"`
	DateOfBirth  string `json:"date_of_birth"`
	EmployeeID   int    `json:"employee_id,omitempty"`
}

// EmployeeDTO represents an employee in API responses.
type EmployeeDTO struct {
	ID          int            `json:"id"`
	FirstName   string         `json:"first_name"`
	LastName    string         `json:"last_name"`
	Salary      string         `json:"salary"`
	DateOfBirth string         `json:"date_of_birth"`
	Dependents  []DependentDTO `json:"dependents"`
}

// CreateEmployeeRequest is the request to create or replace an employee.
// A zero ID asks the store to assign one.
type CreateEmployeeRequest struct {
	ID          int                      `json:"id,omitempty"`
	FirstName   string                   `json:"first_name"`
	LastName    string                   `json:"last_name"`
	Salary      decimal.Decimal          `json:"salary"`
	DateOfBirth string                   `json:"date_of_birth"`
	Dependents  []CreateDependentRequest `json:"dependents,omitempty"`
}

// CreateDependentRequest is one dependent inside CreateEmployeeRequest.
type CreateDependentRequest struct {
	ID           int    `json:"id,omitempty"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	Relationship string `json:"relationship"`
	DateOfBirth  string `json:"date_of_birth"`
}

// =============================================================================
// PAYCHECKS
// =============================================================================

// PaycheckDTO is the per-paycheck deduction breakdown.
type PaycheckDTO struct {
	EmployeeID              int    `json:"employee_id"`
	GrossPaycheckSalary     string `json:"gross_paycheck_salary"`
	BaseBenefitsDeduction   string `json:"base_benefits_deduction"`
	DependentsDeduction     string `json:"dependents_deduction"`
	HighWageEarnerDeduction string `json:"high_wage_earner_deduction"`
	TotalBenefitsDeduction  string `json:"total_benefits_deduction"`
	NetPaycheckSalary       string `json:"net_paycheck_salary"`
}

// ConfigurationDTO is the active paycheck configuration and its version.
type ConfigurationDTO struct {
	Version int `json:"version"`
	factory.ConfigurationJSON
}

// =============================================================================
// PAY RUNS
// =============================================================================

// PayrunDTO represents a recorded pay run.
type PayrunDTO struct {
	ID              string          `json:"id"`
	Trigger         string          `json:"trigger"`
	Status          string          `json:"status"`
	EmployeeCount   int             `json:"employee_count"`
	FailedCount     int             `json:"failed_count"`
	TotalGross      string          `json:"total_gross"`
	TotalDeductions string          `json:"total_deductions"`
	TotalNet        string          `json:"total_net"`
	Error           string          `json:"error,omitempty"`
	StartedAt       string          `json:"started_at"`
	CompletedAt     string          `json:"completed_at,omitempty"`
	Items           []PayrunItemDTO `json:"items,omitempty"`
}

// PayrunItemDTO is one employee's line in a pay run.
type PayrunItemDTO struct {
	EmployeeID              int    `json:"employee_id"`
	EmployeeName            string `json:"employee_name"`
	Status                  string `json:"status"`
	Message                 string `json:"message,omitempty"`
	GrossPaycheckSalary     string `json:"gross_paycheck_salary"`
	BaseBenefitsDeduction   string `json:"base_benefits_deduction"`
	DependentsDeduction     string `json:"dependents_deduction"`
	HighWageEarnerDeduction string `json:"high_wage_earner_deduction"`
	NetPaycheckSalary       string `json:"net_paycheck_salary"`
}

// =============================================================================
// SCENARIOS
// =============================================================================

// ScenarioDTO describes a loadable demo scenario.
type ScenarioDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// LoadScenarioRequest is the request to load a scenario.
type LoadScenarioRequest struct {
	ScenarioID string `json:"scenario_id"`
}

// =============================================================================
// CONVERSIONS
// =============================================================================

func money(d decimal.Decimal) string {
	return d.StringFixed(benefits.CurrencyPlaces)
}

func toDependentDTO(d benefits.Dependent) DependentDTO {
	return DependentDTO{
		ID:           int(d.ID),
		FirstName:    d.FirstName,
		LastName:     d.LastName,
		Relationship: string(d.Relationship),
		DateOfBirth:  d.DateOfBirth.Format(dateLayout),
	}
}

func toEmployeeDTO(e benefits.Employee) EmployeeDTO {
	deps := make([]DependentDTO, len(e.Dependents))
	for i, d := range e.Dependents {
		deps[i] = toDependentDTO(d)
	}
	return EmployeeDTO{
		ID:          int(e.ID),
		FirstName:   e.FirstName,
		LastName:    e.LastName,
		Salary:      money(e.Salary),
		DateOfBirth: e.DateOfBirth.Format(dateLayout),
		Dependents:  deps,
	}
}

func toPaycheckDTO(id benefits.EmployeeID, p benefits.PaycheckResult) PaycheckDTO {
	return PaycheckDTO{
		EmployeeID:              int(id),
		GrossPaycheckSalary:     money(p.GrossPaycheckSalary),
		BaseBenefitsDeduction:   money(p.BaseBenefitsDeduction),
		DependentsDeduction:     money(p.DependentsDeduction),
		HighWageEarnerDeduction: money(p.HighWageEarnerDeduction),
		TotalBenefitsDeduction:  money(p.TotalBenefitsDeduction()),
		NetPaycheckSalary:       money(p.NetPaycheckSalary()),
	}
}

func toPayrunDTO(r sqlite.PayrunRecord) PayrunDTO {
	dto := PayrunDTO{
		ID:              r.ID,
		Trigger:         r.Trigger,
		Status:          r.Status,
		EmployeeCount:   r.EmployeeCount,
		FailedCount:     r.FailedCount,
		TotalGross:      money(r.TotalGross),
		TotalDeductions: money(r.TotalDeductions),
		TotalNet:        money(r.TotalNet),
		Error:           r.Error,
		StartedAt:       r.StartedAt.Format(time.RFC3339),
	}
	if r.CompletedAt != nil {
		dto.CompletedAt = r.CompletedAt.Format(time.RFC3339)
	}
	for _, it := range r.Items {
		dto.Items = append(dto.Items, PayrunItemDTO{
			EmployeeID:              int(it.EmployeeID),
			EmployeeName:            it.EmployeeName,
			Status:                  it.Status,
			Message:                 it.Message,
			GrossPaycheckSalary:     money(it.Gross),
			BaseBenefitsDeduction:   money(it.BaseDeduction),
			DependentsDeduction:     money(it.DependentsDeduction),
			HighWageEarnerDeduction: money(it.HighWageEarnerDeduction),
			NetPaycheckSalary:       money(it.Net),
		})
	}
	return dto
}

// toEmployee converts a request into a domain employee, rejecting
// malformed dates, relationships, and negative salaries.
func (req CreateEmployeeRequest) toEmployee() (benefits.Employee, error) {
	if req.FirstName == "" || req.LastName == "" {
		return benefits.Employee{}, errors.New("first_name and last_name are required")
	}
	if req.Salary.IsNegative() {
		return benefits.Employee{}, errors.New("salary must not be negative")
	}
	dob, err := time.Parse(dateLayout, req.DateOfBirth)
	if err != nil {
		return benefits.Employee{}, errors.New("invalid date_of_birth format (use YYYY-MM-DD)")
	}

	emp := benefits.Employee{
		ID:          benefits.EmployeeID(req.ID),
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Salary:      req.Salary,
		DateOfBirth: dob,
	}
	for i, d := range req.Dependents {
		rel, err := benefits.ParseRelationship(d.Relationship)
		if err != nil {
			return benefits.Employee{}, fmt.Errorf("dependents[%d]: %v", i, err)
		}
		ddob, err := time.Parse(dateLayout, d.DateOfBirth)
		if err != nil {
			return benefits.Employee{}, fmt.Errorf("dependents[%d]: invalid date_of_birth format (use YYYY-MM-DD)", i)
		}
		emp.Dependents = append(emp.Dependents, benefits.Dependent{
			ID:           benefits.DependentID(d.ID),
			FirstName:    d.FirstName,
			LastName:     d.LastName,
			Relationship: rel,
			DateOfBirth:  ddob,
		})
	}
	return emp, nil
}
