package domain

// EmploymentType identifies an employment-type filter option
type EmploymentType string

const (
	EmploymentFullTime   EmploymentType = "FULLTIME"
	EmploymentPartTime   EmploymentType = "PARTTIME"
	EmploymentFreelance  EmploymentType = "FREELANCE"
	EmploymentInternship EmploymentType = "INTERNSHIP"
)

// SalaryRange identifies a minimum-package filter option.
// The zero value means no salary filter.
type SalaryRange string

const (
	SalaryAny   SalaryRange = ""
	Salary10LPA SalaryRange = "1000000"
	Salary20LPA SalaryRange = "2000000"
	Salary30LPA SalaryRange = "3000000"
	Salary40LPA SalaryRange = "4000000"
)

// Option pairs a filter id with its display label
type Option[ID ~string] struct {
	ID    ID
	Label string
}

// EmploymentTypes lists the employment-type checkboxes in display order
var EmploymentTypes = []Option[EmploymentType]{
	{ID: EmploymentFullTime, Label: "Full Time"},
	{ID: EmploymentPartTime, Label: "Part Time"},
	{ID: EmploymentFreelance, Label: "Freelance"},
	{ID: EmploymentInternship, Label: "Internship"},
}

// SalaryRanges lists the salary radio buttons in display order
var SalaryRanges = []Option[SalaryRange]{
	{ID: Salary10LPA, Label: "10 LPA and above"},
	{ID: Salary20LPA, Label: "20 LPA and above"},
	{ID: Salary30LPA, Label: "30 LPA and above"},
	{ID: Salary40LPA, Label: "40 LPA and above"},
}

// ParseEmploymentType reports whether s names a known employment type
func ParseEmploymentType(s string) (EmploymentType, bool) {
	for _, o := range EmploymentTypes {
		if string(o.ID) == s {
			return o.ID, true
		}
	}
	return "", false
}

// ParseSalaryRange reports whether s names a known salary range.
// The empty string is valid and clears the filter.
func ParseSalaryRange(s string) (SalaryRange, bool) {
	if s == "" {
		return SalaryAny, true
	}
	for _, o := range SalaryRanges {
		if string(o.ID) == s {
			return o.ID, true
		}
	}
	return "", false
}

// Label returns the display label for a salary range, or "Any" when unset
func (s SalaryRange) Label() string {
	for _, o := range SalaryRanges {
		if o.ID == s {
			return o.Label
		}
	}
	return "Any"
}
