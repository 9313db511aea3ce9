// Package wizard implements the three-step registration wizard as a pure
// state machine. Transitions are functions of (State, Event) with no side
// effects, so the gating rules can be tested without any HTTP or database
// environment. Persisting the draft and invoking external services is the
// caller's job.
package wizard

import (
	"github.com/eduadmin/enroll/internal/app/models"
	"github.com/eduadmin/enroll/internal/pkg/apperrors"
	"github.com/eduadmin/enroll/internal/pkg/validation"
)

// Step identifies the active wizard step.
type Step int

const (
	// StepStudentInfo collects the student's name, email and credential.
	StepStudentInfo Step = iota + 1
	// StepAcademicInfo collects grade, school, location and subjects.
	StepAcademicInfo
	// StepParentInfo collects parent contact details and requires a
	// verified phone number.
	StepParentInfo
)

// Status tracks the submission lifecycle of the wizard.
type Status string

const (
	// StatusInProgress means the user is still filling in steps.
	StatusInProgress Status = "IN_PROGRESS"
	// StatusSubmitting means the submission adapter has been invoked.
	StatusSubmitting Status = "SUBMITTING"
	// StatusDone is the successful terminal state.
	StatusDone Status = "DONE"
	// StatusFailed means submission failed; the draft is preserved so the
	// user can retry.
	StatusFailed Status = "FAILED"
)

// State is the complete wizard state. It is a value type: Apply returns a
// new State and never mutates its input.
type State struct {
	Step          Step
	Status        Status
	Draft         models.RegistrationDraft
	PhoneVerified bool
	VerifiedPhone string
}

// NewState returns the initial wizard state with an empty draft.
func NewState() State {
	return State{
		Step:   StepStudentInfo,
		Status: StatusInProgress,
	}
}

// Event is a wizard input.
type Event interface {
	isEvent()
}

// SetStudentInfo updates the student fields of the draft.
type SetStudentInfo struct {
	Name       string
	Email      string
	Credential string
}

// SetAcademicInfo updates the academic fields of the draft.
type SetAcademicInfo struct {
	Grade         string
	SchoolName    string
	City          string
	Zipcode       string
	Subjects      []string
	OtherSubjects string
}

// SetParentInfo updates the parent contact fields of the draft.
type SetParentInfo struct {
	Name  string
	Email string
	Phone string
}

// PhoneVerified records that the verification sub-flow reached its
// verified terminal state for the given number. The draft's parent phone
// is set from the verified number, never from unverified input.
type PhoneVerified struct {
	Phone string
}

// Next advances to the following step when the current step's predicate
// holds.
type Next struct{}

// Previous returns to the prior step without clearing entered data.
type Previous struct{}

// Submit moves the wizard into the submitting state; the caller then runs
// the submission adapter and reports back.
type Submit struct{}

// SubmitSucceeded marks the registration as done.
type SubmitSucceeded struct{}

// SubmitFailed marks the submission as failed, keeping the draft for a
// retry.
type SubmitFailed struct{}

func (SetStudentInfo) isEvent()  {}
func (SetAcademicInfo) isEvent() {}
func (SetParentInfo) isEvent()   {}
func (PhoneVerified) isEvent()   {}
func (Next) isEvent()            {}
func (Previous) isEvent()        {}
func (Submit) isEvent()          {}
func (SubmitSucceeded) isEvent() {}
func (SubmitFailed) isEvent()    {}

// Apply computes the next state for an event. It returns an error and the
// unchanged state when the event is not legal in the current state; the
// session is never corrupted by a rejected event.
func Apply(s State, e Event) (State, error) {
	switch ev := e.(type) {
	case SetStudentInfo:
		if err := editable(s, StepStudentInfo); err != nil {
			return s, err
		}
		s.Draft.StudentName = ev.Name
		s.Draft.StudentEmail = ev.Email
		s.Draft.StudentCredential = ev.Credential
		return s, nil

	case SetAcademicInfo:
		if err := editable(s, StepAcademicInfo); err != nil {
			return s, err
		}
		// Empty fields are fine (partial saves), but a grade or subject
		// outside the catalog is rejected outright.
		if ev.Grade != "" && !models.IsValidGrade(ev.Grade) {
			return s, apperrors.ErrInvalidGrade
		}
		for _, subject := range ev.Subjects {
			if !models.IsCatalogSubject(subject) {
				return s, apperrors.ErrUnknownSubject
			}
		}
		s.Draft.Grade = ev.Grade
		s.Draft.SchoolName = ev.SchoolName
		s.Draft.City = ev.City
		s.Draft.Zipcode = ev.Zipcode
		s.Draft.Subjects = append([]string(nil), ev.Subjects...)
		s.Draft.OtherSubjects = ev.OtherSubjects
		return s, nil

	case SetParentInfo:
		if err := editable(s, StepParentInfo); err != nil {
			return s, err
		}
		s.Draft.ParentName = ev.Name
		s.Draft.ParentEmail = ev.Email
		// A verified phone is authoritative; unverified edits to the
		// number are kept but no longer count as verified.
		s.Draft.ParentPhone = ev.Phone
		return s, nil

	case PhoneVerified:
		if s.Status != StatusInProgress {
			return s, apperrors.ErrAlreadySubmitted
		}
		s.PhoneVerified = true
		s.VerifiedPhone = ev.Phone
		s.Draft.ParentPhone = ev.Phone
		return s, nil

	case Next:
		if s.Status != StatusInProgress && s.Status != StatusFailed {
			return s, apperrors.ErrAlreadySubmitted
		}
		if s.Step >= StepParentInfo {
			return s, apperrors.ErrWrongStep
		}
		if !StepComplete(s, s.Step) {
			return s, apperrors.ErrStepIncomplete
		}
		s.Step++
		s.Status = StatusInProgress
		return s, nil

	case Previous:
		if s.Status != StatusInProgress && s.Status != StatusFailed {
			return s, apperrors.ErrAlreadySubmitted
		}
		if s.Step <= StepStudentInfo {
			return s, apperrors.ErrNoPreviousStep
		}
		s.Step--
		// Navigating after a failed submission resumes editing.
		s.Status = StatusInProgress
		return s, nil

	case Submit:
		if s.Status != StatusInProgress && s.Status != StatusFailed {
			return s, apperrors.ErrAlreadySubmitted
		}
		if s.Step != StepParentInfo {
			return s, apperrors.ErrWrongStep
		}
		if !StepComplete(s, StepParentInfo) {
			return s, apperrors.ErrNotSubmittable
		}
		s.Status = StatusSubmitting
		return s, nil

	case SubmitSucceeded:
		if s.Status != StatusSubmitting {
			return s, apperrors.ErrWrongStep
		}
		s.Status = StatusDone
		return s, nil

	case SubmitFailed:
		if s.Status != StatusSubmitting {
			return s, apperrors.ErrWrongStep
		}
		s.Status = StatusFailed
		return s, nil
	}

	return s, apperrors.ErrBadRequest
}

// editable rejects field edits outside the matching active step or after
// submission has started.
func editable(s State, step Step) error {
	if s.Status != StatusInProgress && s.Status != StatusFailed {
		return apperrors.ErrAlreadySubmitted
	}
	if s.Step != step {
		return apperrors.ErrWrongStep
	}
	return nil
}

// StepComplete is the per-step validity predicate gating forward
// navigation. It is pure and recomputed on demand.
func StepComplete(s State, step Step) bool {
	d := s.Draft
	switch step {
	case StepStudentInfo:
		return d.StudentName != "" &&
			validation.IsValidEmail(d.StudentEmail) &&
			d.StudentCredential != ""

	case StepAcademicInfo:
		if !models.IsValidGrade(d.Grade) {
			return false
		}
		if d.SchoolName == "" || d.City == "" || d.Zipcode == "" {
			return false
		}
		if len(d.Subjects) == 0 {
			return false
		}
		for _, subject := range d.Subjects {
			if !models.IsCatalogSubject(subject) {
				return false
			}
		}
		return true

	case StepParentInfo:
		return d.ParentName != "" &&
			validation.IsValidEmail(d.ParentEmail) &&
			d.ParentPhone != "" &&
			s.PhoneVerified &&
			s.VerifiedPhone == d.ParentPhone
	}
	return false
}
