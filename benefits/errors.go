/*
errors.go - Error types and user-facing messages for the benefits engine

PURPOSE:
  Stores and providers report failures as Go errors. The services in this
  package convert them into a Status plus one of the messages below, so
  nothing past the service boundary has to inspect raw errors.

ERROR CATEGORIES:
  1. Lookup errors - Missing employee
  2. Validation errors - Partner maximum, malformed configuration,
     dependent owned by another employee

SEE ALSO:
  - employee.go: Produces TooManyPartnersMessage
  - paycheck.go: Produces the calculation failure messages
*/
package benefits

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	ErrEmployeeNotFound = errors.New("employee not found")

	// ErrInvalidConfiguration is returned when a configuration fails Validate.
	ErrInvalidConfiguration = errors.New("invalid paycheck configuration")

	// ErrTooManyPartners is returned when a write would store an employee
	// whose spouse/domestic partner count exceeds MaxPartners.
	ErrTooManyPartners = errors.New("partner maximum exceeded")

	// ErrDependentConflict is returned when a write reuses a dependent id
	// that belongs to a different employee.
	ErrDependentConflict = errors.New("dependent belongs to another employee")
)

// =============================================================================
// MESSAGES
// =============================================================================

const (
	MessageConfigurationUnavailable = "Paycheck calculation cannot be completed at this time, please try again later"
	MessageCalculationFailed        = "An error occurred calculating employee paycheck, please try again later"
	MessageEmployeeUnavailable      = "Employee data cannot be retrieved at this time, please try again later"
)

// TooManyPartnersMessage is the InvalidData message for an employee who
// claims more partners than allowed.
func TooManyPartnersMessage(e Employee) string {
	return fmt.Sprintf("Employee %s %s has claimed a number of spouse(s)/domestic partner(s) that exceeds the allowed maximum",
		e.FirstName, e.LastName)
}

// =============================================================================
// STRUCTURED ERRORS
// =============================================================================

// PartnerLimitError details a rejected employee write.
type PartnerLimitError struct {
	EmployeeID EmployeeID
	Partners   int
	Max        int
}

func (e *PartnerLimitError) Error() string {
	return fmt.Sprintf("employee %d claims %d partner(s), maximum is %d", e.EmployeeID, e.Partners, e.Max)
}

func (e *PartnerLimitError) Unwrap() error {
	return ErrTooManyPartners
}

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsNotFound returns true if the error indicates a missing record.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrEmployeeNotFound)
}

// IsClientError returns true if the error is due to invalid client input.
func IsClientError(err error) bool {
	return errors.Is(err, ErrInvalidConfiguration) ||
		errors.Is(err, ErrTooManyPartners) ||
		errors.Is(err, ErrDependentConflict)
}
