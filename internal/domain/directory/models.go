package directory

import "time"

// Employee is an employee record as the directory service returns it.
// id, email, status and the timestamps are server-owned; the client never
// sets them.
type Employee struct {
	ID                int64      `json:"id"`
	FirstName         string     `json:"first_name"`
	OtherNames        string     `json:"other_names"`
	FirstSurname      string     `json:"first_surname"`
	SecondSurname     string     `json:"second_surname"`
	EmploymentCountry string     `json:"employment_country"`
	IDType            string     `json:"id_type"`
	IDNumber          string     `json:"id_number"`
	Email             string     `json:"email"`
	HireDate          string     `json:"hire_date"`
	Department        string     `json:"department"`
	Status            string     `json:"status"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         *time.Time `json:"updated_at"`
}

// FullName joins the four name parts, skipping the optional ones when empty.
func (e Employee) FullName() string {
	name := e.FirstName
	for _, part := range []string{e.OtherNames, e.FirstSurname, e.SecondSurname} {
		if part == "" {
			continue
		}
		if name != "" {
			name += " "
		}
		name += part
	}
	return name
}

// Draft holds the editable fields of an employee record, either for a new
// record or as a working copy of an existing one.
type Draft struct {
	FirstName         string `json:"first_name"`
	OtherNames        string `json:"other_names"`
	FirstSurname      string `json:"first_surname"`
	SecondSurname     string `json:"second_surname"`
	EmploymentCountry string `json:"employment_country"`
	IDType            string `json:"id_type"`
	IDNumber          string `json:"id_number"`
	HireDate          string `json:"hire_date"`
	Department        string `json:"department"`
}

// NewDraft returns a draft with the same defaults the directory UI preselects.
func NewDraft() Draft {
	return Draft{
		IDType:            IDTypeCitizen,
		EmploymentCountry: CountryColombia,
		Department:        DepartmentOperations,
	}
}

// DraftOf copies the editable fields of an existing record. Server-derived
// fields (id, email, status, timestamps) are deliberately left behind.
func DraftOf(emp Employee) Draft {
	return Draft{
		FirstName:         emp.FirstName,
		OtherNames:        emp.OtherNames,
		FirstSurname:      emp.FirstSurname,
		SecondSurname:     emp.SecondSurname,
		EmploymentCountry: emp.EmploymentCountry,
		IDType:            emp.IDType,
		IDNumber:          emp.IDNumber,
		HireDate:          emp.HireDate,
		Department:        emp.Department,
	}
}

const (
	IDTypeCitizen       = "CC"
	IDTypeForeigner     = "CE"
	IDTypePassport      = "PA"
	IDTypeSpecialPermit = "PE"

	CountryColombia     = "CO"
	CountryUnitedStates = "US"

	DepartmentAdministration = "ADM"
	DepartmentFinance        = "FIN"
	DepartmentPurchasing     = "COM"
	DepartmentInfrastructure = "INF"
	DepartmentOperations     = "OPE"
	DepartmentHumanTalent    = "TH"
	DepartmentServices       = "SV"

	// StatusActive is the only status the service assigns.
	StatusActive = "Activo"
)

var (
	IDTypes   = []string{IDTypeCitizen, IDTypeForeigner, IDTypePassport, IDTypeSpecialPermit}
	Countries = []string{CountryColombia, CountryUnitedStates}

	Departments = []string{
		DepartmentAdministration,
		DepartmentFinance,
		DepartmentPurchasing,
		DepartmentInfrastructure,
		DepartmentOperations,
		DepartmentHumanTalent,
		DepartmentServices,
	}
)

func contains(values []string, value string) bool {
	for _, v := range values {
		if v == value {
			return true
		}
	}
	return false
}

func ValidIDType(v string) bool     { return contains(IDTypes, v) }
func ValidCountry(v string) bool    { return contains(Countries, v) }
func ValidDepartment(v string) bool { return contains(Departments, v) }
