package benefits

import "time"

// DaysPerYear is the mean tropical year. Ages only increment once the
// elapsed-day count crosses a multiple of it.
const DaysPerYear = 365.242199

// MaxPartners is the number of spouses/domestic partners an employee may claim.
const MaxPartners = 1

// CalculateAge returns whole years between birthDate and asOf, measured in
// elapsed days over DaysPerYear and truncated. asOf before birthDate is
// not guarded.
func CalculateAge(birthDate, asOf time.Time) int {
	days := asOf.Sub(birthDate).Hours() / 24
	return int(days / DaysPerYear)
}

// PartnersValid reports whether the number of Spouse or DomesticPartner
// dependents is at most maxPartners.
func PartnersValid(dependents []Dependent, maxPartners int) bool {
	return CountPartners(dependents) <= maxPartners
}

// CountPartners counts the Spouse and DomesticPartner dependents.
func CountPartners(dependents []Dependent) int {
	n := 0
	for _, d := range dependents {
		if d.Relationship.IsPartner() {
			n++
		}
	}
	return n
}

// ValidateEmployee returns a *PartnerLimitError if e claims more than
// MaxPartners partners.
func ValidateEmployee(e Employee) error {
	if n := CountPartners(e.Dependents); n > MaxPartners {
		return &PartnerLimitError{EmployeeID: e.ID, Partners: n, Max: MaxPartners}
	}
	return nil
}
