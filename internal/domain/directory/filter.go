package directory

import "strings"

// FilterSet holds one predicate value per filterable field. An empty string
// means no constraint on that field. Name, id-number and email predicates
// match as case-insensitive substrings; the rest match exactly, ignoring
// case.
type FilterSet struct {
	FirstName         string
	OtherNames        string
	FirstSurname      string
	SecondSurname     string
	IDNumber          string
	Email             string
	IDType            string
	EmploymentCountry string
	Department        string
	Status            string
}

// IsZero reports whether no predicate is set.
func (f FilterSet) IsZero() bool {
	return f == FilterSet{}
}

// Matches reports whether the record satisfies every non-empty predicate.
func (f FilterSet) Matches(emp Employee) bool {
	return containsFold(emp.FirstName, f.FirstName) &&
		containsFold(emp.OtherNames, f.OtherNames) &&
		containsFold(emp.FirstSurname, f.FirstSurname) &&
		containsFold(emp.SecondSurname, f.SecondSurname) &&
		containsFold(emp.IDNumber, f.IDNumber) &&
		containsFold(emp.Email, f.Email) &&
		equalsFold(emp.IDType, f.IDType) &&
		equalsFold(emp.EmploymentCountry, f.EmploymentCountry) &&
		equalsFold(emp.Department, f.Department) &&
		equalsFold(emp.Status, f.Status)
}

// ApplyFilters returns the records matching every non-empty predicate in f,
// in their original order. It never mutates its input and recomputes from
// scratch on every call.
func ApplyFilters(records []Employee, f FilterSet) []Employee {
	if f.IsZero() {
		out := make([]Employee, len(records))
		copy(out, records)
		return out
	}
	out := make([]Employee, 0, len(records))
	for _, emp := range records {
		if f.Matches(emp) {
			out = append(out, emp)
		}
	}
	return out
}

func containsFold(value, predicate string) bool {
	if predicate == "" {
		return true
	}
	return strings.Contains(strings.ToLower(value), strings.ToLower(predicate))
}

func equalsFold(value, predicate string) bool {
	if predicate == "" {
		return true
	}
	return strings.EqualFold(value, predicate)
}
