package benefits

import (
	"context"
	"log"
)

// EmployeeService resolves employee records and applies the partner rule.
type EmployeeService struct {
	provider EmployeeProvider
}

func NewEmployeeService(provider EmployeeProvider) *EmployeeService {
	return &EmployeeService{provider: provider}
}

// GetEmployee returns the employee with StatusSuccess, StatusNotFound when
// the provider has no such id, or StatusInvalidData when the employee
// claims more than MaxPartners partners.
func (s *EmployeeService) GetEmployee(ctx context.Context, id EmployeeID) Result[Employee] {
	emp, err := s.provider.GetEmployee(ctx, id)
	if err != nil {
		log.Printf("[Employees] Failed to load employee %d: %v", id, err)
		return Failure[Employee](StatusInvalidData, MessageEmployeeUnavailable)
	}
	if emp == nil {
		return Failure[Employee](StatusNotFound, "")
	}

	if emp.HasDependents() && !PartnersValid(emp.Dependents, MaxPartners) {
		return Failure[Employee](StatusInvalidData, TooManyPartnersMessage(*emp))
	}

	return Success(*emp)
}

// ListEmployees returns every valid employee. Employees that break the
// partner rule are left out rather than failing the whole listing.
func (s *EmployeeService) ListEmployees(ctx context.Context) Result[[]Employee] {
	all, err := s.provider.ListEmployees(ctx)
	if err != nil {
		log.Printf("[Employees] Failed to list employees: %v", err)
		return Failure[[]Employee](StatusInvalidData, MessageEmployeeUnavailable)
	}

	valid := make([]Employee, 0, len(all))
	for _, emp := range all {
		if emp.HasDependents() && !PartnersValid(emp.Dependents, MaxPartners) {
			log.Printf("[Employees] Skipping employee %d: partner maximum exceeded", emp.ID)
			continue
		}
		valid = append(valid, emp)
	}

	return Success(valid)
}
