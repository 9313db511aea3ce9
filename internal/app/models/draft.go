package models

// Grades lists the four grades a student can register with.
var Grades = []string{"9th Grade", "10th Grade", "11th Grade", "12th Grade"}

// SubjectCatalog is the fixed list of subjects offered. A registration
// must select at least one of these; free-text subjects are carried
// separately and do not count toward the requirement.
var SubjectCatalog = []string{
	"SAT", "ACT", "PSAT", "AP Calculus AB", "AP Calculus BC", "AP Statistics",
	"AP Biology", "AP Chemistry", "AP Physics", "AP English Language", "AP English Literature",
}

// IsValidGrade reports whether grade is one of the offered grades.
func IsValidGrade(grade string) bool {
	for _, g := range Grades {
		if g == grade {
			return true
		}
	}
	return false
}

// IsCatalogSubject reports whether subject is part of the fixed catalog.
func IsCatalogSubject(subject string) bool {
	for _, s := range SubjectCatalog {
		if s == subject {
			return true
		}
	}
	return false
}

// RegistrationDraft is the in-progress registration record held for the
// duration of a wizard session. It is mutated field by field as the user
// fills in the form and discarded on successful submission or when the
// session is abandoned.
type RegistrationDraft struct {
	StudentName       string
	StudentEmail      string
	StudentCredential string
	Grade             string
	SchoolName        string
	City              string
	Zipcode           string
	Subjects          []string
	OtherSubjects     string
	ParentName        string
	ParentEmail       string
	ParentPhone       string
}
