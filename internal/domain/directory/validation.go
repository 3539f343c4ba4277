package directory

import (
	"regexp"
	"sort"
	"strings"
	"time"
	"unicode"
)

// HireDateWindowDays is how far back a hire date may lie.
const HireDateWindowDays = 31

type ValidationIssue struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// Validator accumulates field-level issues. Client-side validation is
// advisory: the service performs the authoritative checks, this one narrows
// input before a request is spent on it.
type Validator struct {
	issues []ValidationIssue
}

func NewValidator() *Validator {
	return &Validator{issues: make([]ValidationIssue, 0, 4)}
}

func (v *Validator) Add(field, reason string) {
	if v == nil || strings.TrimSpace(reason) == "" {
		return
	}
	v.issues = append(v.issues, ValidationIssue{Field: field, Reason: reason})
}

func (v *Validator) Required(field, value, reason string) {
	if strings.TrimSpace(value) == "" {
		v.Add(field, reason)
	}
}

func (v *Validator) Enum(field, value string, allowed []string, reason string) {
	if value == "" {
		return
	}
	for _, candidate := range allowed {
		if strings.EqualFold(value, candidate) {
			return
		}
	}
	v.Add(field, reason)
}

func (v *Validator) HasIssues() bool {
	return v != nil && len(v.issues) > 0
}

func (v *Validator) Issues() []ValidationIssue {
	if v == nil || len(v.issues) == 0 {
		return nil
	}
	out := make([]ValidationIssue, len(v.issues))
	copy(out, v.issues)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Field == out[j].Field {
			return out[i].Reason < out[j].Reason
		}
		return out[i].Field < out[j].Field
	})
	return out
}

var (
	namePattern       = regexp.MustCompile(`^[A-Za-z]+$`)
	nameSpacePattern  = regexp.MustCompile(`^[A-Za-z][A-Za-z ]*$`)
	idNumberPattern   = regexp.MustCompile(`^[A-Za-z0-9-]{1,20}$`)
	hireDateLayout    = "2006-01-02"
	reasonLettersOnly = "only letters are allowed"
	reasonLettersSp   = "only letters and spaces are allowed"
)

// ValidateDraft checks the draft against the service's documented rules and
// returns the issues found, sorted by field. now anchors the hire-date
// window.
func ValidateDraft(d Draft, now time.Time) []ValidationIssue {
	v := NewValidator()

	v.Required("first_name", d.FirstName, "is required")
	v.Required("first_surname", d.FirstSurname, "is required")
	v.Required("second_surname", d.SecondSurname, "is required")

	if d.FirstName != "" && !namePattern.MatchString(d.FirstName) {
		v.Add("first_name", reasonLettersOnly)
	}
	for field, value := range map[string]string{
		"other_names":    d.OtherNames,
		"first_surname":  d.FirstSurname,
		"second_surname": d.SecondSurname,
	} {
		if value != "" && !nameSpacePattern.MatchString(value) {
			v.Add(field, reasonLettersSp)
		}
	}

	v.Required("id_type", d.IDType, "is required")
	v.Enum("id_type", d.IDType, IDTypes, "must be one of CC, CE, PA, PE")
	v.Required("id_number", d.IDNumber, "is required")
	if d.IDNumber != "" && !idNumberPattern.MatchString(d.IDNumber) {
		v.Add("id_number", "must be 1-20 letters, digits or hyphens")
	}
	v.Required("employment_country", d.EmploymentCountry, "is required")
	v.Enum("employment_country", d.EmploymentCountry, Countries, "must be one of CO, US")
	v.Required("department", d.Department, "is required")
	v.Enum("department", d.Department, Departments, "must be a known department code")

	v.Required("hire_date", d.HireDate, "is required")
	if d.HireDate != "" {
		hired, err := time.Parse(hireDateLayout, d.HireDate)
		if err != nil {
			v.Add("hire_date", "must be a valid date in YYYY-MM-DD format")
		} else {
			today := now.Truncate(24 * time.Hour)
			if hired.After(today) {
				v.Add("hire_date", "must not be in the future")
			}
			if hired.Before(today.AddDate(0, 0, -HireDateWindowDays)) {
				v.Add("hire_date", "must not be more than 31 days in the past")
			}
		}
	}

	return v.Issues()
}

// UppercaseWarnings lists the name fields written in anything other than
// uppercase. The business convention is uppercase-only names, but the
// service normalizes case itself, so this warns without ever rewriting the
// user's input.
func UppercaseWarnings(d Draft) []string {
	var fields []string
	for _, nf := range []struct{ field, value string }{
		{"first_name", d.FirstName},
		{"other_names", d.OtherNames},
		{"first_surname", d.FirstSurname},
		{"second_surname", d.SecondSurname},
	} {
		if hasLowercase(nf.value) {
			fields = append(fields, nf.field)
		}
	}
	return fields
}

func hasLowercase(value string) bool {
	for _, r := range value {
		if unicode.IsLetter(r) && unicode.IsLower(r) {
			return true
		}
	}
	return false
}
