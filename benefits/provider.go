package benefits

import "context"

// =============================================================================
// PROVIDERS - Data the engine consumes
// =============================================================================

// EmployeeProvider supplies employee records with their dependents.
// GetEmployee returns (nil, nil) when no employee has the id.
type EmployeeProvider interface {
	GetEmployee(ctx context.Context, id EmployeeID) (*Employee, error)
	ListEmployees(ctx context.Context) ([]Employee, error)
}

// ConfigurationProvider supplies the active paycheck configuration.
// GetPaycheckConfiguration returns (nil, nil) when none is configured.
type ConfigurationProvider interface {
	GetPaycheckConfiguration(ctx context.Context) (*PaycheckConfiguration, error)
}
