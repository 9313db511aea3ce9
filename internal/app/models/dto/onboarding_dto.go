package dto

// StudentInfoRequest carries the first wizard step's fields. Fields are
// not individually required: partial saves are allowed and completeness
// is enforced only when moving forward.
type StudentInfoRequest struct {
	FullName string `json:"fullName" example:"Ada Lovelace"`
	Email    string `json:"email" example:"ada@example.com"`
	Password string `json:"password" example:"s3cret-pass"`
}

// AcademicInfoRequest carries the second wizard step's fields.
type AcademicInfoRequest struct {
	Grade         string   `json:"grade" example:"11th Grade"`
	SchoolName    string   `json:"schoolName" example:"Westlake High"`
	City          string   `json:"city" example:"Austin"`
	Zipcode       string   `json:"zipcode" example:"78746"`
	Subjects      []string `json:"subjects" example:"SAT,AP Calculus AB"`
	OtherSubjects string   `json:"otherSubjects,omitempty" example:"Competition math"`
}

// ParentInfoRequest carries the third wizard step's fields. The phone is
// informational until it has been verified through the verification
// endpoints.
type ParentInfoRequest struct {
	FullName string `json:"fullName" example:"Grace Lovelace"`
	Email    string `json:"email" example:"grace@example.com"`
	Phone    string `json:"phone" example:"+1 512-555-1234"`
}

// DraftResponse mirrors the draft back to the client so a reloaded page
// can repopulate the form.
type DraftResponse struct {
	StudentName   string   `json:"studentName"`
	StudentEmail  string   `json:"studentEmail"`
	Grade         string   `json:"grade"`
	SchoolName    string   `json:"schoolName"`
	City          string   `json:"city"`
	Zipcode       string   `json:"zipcode"`
	Subjects      []string `json:"subjects"`
	OtherSubjects string   `json:"otherSubjects,omitempty"`
	ParentName    string   `json:"parentName"`
	ParentEmail   string   `json:"parentEmail"`
	ParentPhone   string   `json:"parentPhone"`
}

// SessionResponse is the wizard session as seen by the client.
type SessionResponse struct {
	SessionID     string        `json:"sessionId" example:"0b9ff2a4-5c0f-4bb4-8a35-8d2fb1f0a9be"`
	Step          int           `json:"step" example:"1"`
	Status        string        `json:"status" example:"IN_PROGRESS"`
	StepComplete  bool          `json:"stepComplete" example:"false"`
	PhoneVerified bool          `json:"phoneVerified" example:"false"`
	Draft         DraftResponse `json:"draft"`
}

// RegistrationResultResponse is returned after a successful submission.
type RegistrationResultResponse struct {
	AccountID   int64  `json:"accountId" example:"42"`
	StudentID   int64  `json:"studentId" example:"17"`
	AccessToken string `json:"accessToken"`
	TokenType   string `json:"tokenType" example:"Bearer"`
	ExpiresIn   int64  `json:"expiresIn" example:"3600"`
}

// CatalogResponse lists the grades and subjects offered, so clients can
// render the pickers without hardcoding the catalog.
type CatalogResponse struct {
	Grades   []string `json:"grades"`
	Subjects []string `json:"subjects"`
}
