package wizard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eduadmin/enroll/internal/pkg/apperrors"
)

func completeStudentStep(t *testing.T, s State) State {
	t.Helper()
	s, err := Apply(s, SetStudentInfo{Name: "Ada Lovelace", Email: "ada@example.com", Credential: "s3cret-pass"})
	require.NoError(t, err)
	s, err = Apply(s, Next{})
	require.NoError(t, err)
	return s
}

func completeAcademicStep(t *testing.T, s State) State {
	t.Helper()
	s, err := Apply(s, SetAcademicInfo{
		Grade:      "11th Grade",
		SchoolName: "Westlake High",
		City:       "Austin",
		Zipcode:    "78746",
		Subjects:   []string{"SAT", "AP Calculus AB"},
	})
	require.NoError(t, err)
	s, err = Apply(s, Next{})
	require.NoError(t, err)
	return s
}

func completeParentStep(t *testing.T, s State) State {
	t.Helper()
	s, err := Apply(s, SetParentInfo{Name: "Grace Lovelace", Email: "grace@example.com", Phone: "+1 512-555-1234"})
	require.NoError(t, err)
	s, err = Apply(s, PhoneVerified{Phone: "+1 512-555-1234"})
	require.NoError(t, err)
	return s
}

func TestNewState(t *testing.T) {
	s := NewState()
	assert.Equal(t, StepStudentInfo, s.Step)
	assert.Equal(t, StatusInProgress, s.Status)
	assert.False(t, s.PhoneVerified)
}

func TestNextBlockedByInvalidEmail(t *testing.T) {
	s := NewState()

	s, err := Apply(s, SetStudentInfo{Name: "Ada", Email: "not-an-email", Credential: "pw"})
	require.NoError(t, err)

	_, err = Apply(s, Next{})
	assert.ErrorIs(t, err, apperrors.ErrStepIncomplete)

	s, err = Apply(s, SetStudentInfo{Name: "Ada", Email: "ada@example.com", Credential: "pw"})
	require.NoError(t, err)
	s, err = Apply(s, Next{})
	require.NoError(t, err)
	assert.Equal(t, StepAcademicInfo, s.Step)
}

func TestUnknownSubjectRejectedOnSave(t *testing.T) {
	s := completeStudentStep(t, NewState())

	_, err := Apply(s, SetAcademicInfo{
		Grade:      "9th Grade",
		SchoolName: "Lincoln Middle",
		City:       "Dallas",
		Zipcode:    "75201",
		Subjects:   []string{"SAT", "Underwater Basket Weaving"},
	})
	assert.ErrorIs(t, err, apperrors.ErrUnknownSubject)
}

func TestInvalidGradeRejectedOnSave(t *testing.T) {
	s := completeStudentStep(t, NewState())

	_, err := Apply(s, SetAcademicInfo{
		Grade:      "Kindergarten",
		SchoolName: "Lincoln Middle",
		City:       "Dallas",
		Zipcode:    "75201",
		Subjects:   []string{"SAT"},
	})
	assert.ErrorIs(t, err, apperrors.ErrInvalidGrade)
}

func TestNextBlockedByEmptySubjects(t *testing.T) {
	s := completeStudentStep(t, NewState())

	s, err := Apply(s, SetAcademicInfo{
		Grade:         "9th Grade",
		SchoolName:    "Lincoln Middle",
		City:          "Dallas",
		Zipcode:       "75201",
		OtherSubjects: "Competition math",
	})
	require.NoError(t, err)

	// Free-text subjects do not satisfy the catalog requirement.
	_, err = Apply(s, Next{})
	assert.ErrorIs(t, err, apperrors.ErrStepIncomplete)
}

func TestEditsRejectedOnWrongStep(t *testing.T) {
	s := NewState()

	_, err := Apply(s, SetAcademicInfo{Grade: "9th Grade"})
	assert.ErrorIs(t, err, apperrors.ErrWrongStep)

	_, err = Apply(s, SetParentInfo{Name: "Grace"})
	assert.ErrorIs(t, err, apperrors.ErrWrongStep)
}

func TestPreviousPreservesData(t *testing.T) {
	s := completeStudentStep(t, NewState())
	s = completeAcademicStep(t, s)

	s, err := Apply(s, Previous{})
	require.NoError(t, err)
	assert.Equal(t, StepAcademicInfo, s.Step)
	assert.Equal(t, "Westlake High", s.Draft.SchoolName)

	s, err = Apply(s, Previous{})
	require.NoError(t, err)
	assert.Equal(t, StepStudentInfo, s.Step)
	assert.Equal(t, "ada@example.com", s.Draft.StudentEmail)

	_, err = Apply(s, Previous{})
	assert.ErrorIs(t, err, apperrors.ErrNoPreviousStep)
}

func TestSubmitRequiresVerifiedPhone(t *testing.T) {
	s := completeStudentStep(t, NewState())
	s = completeAcademicStep(t, s)

	s, err := Apply(s, SetParentInfo{Name: "Grace", Email: "grace@example.com", Phone: "+1 512-555-1234"})
	require.NoError(t, err)

	_, err = Apply(s, Submit{})
	assert.ErrorIs(t, err, apperrors.ErrNotSubmittable)
}

func TestSubmitRequiresVerifiedPhoneToMatchDraft(t *testing.T) {
	s := completeStudentStep(t, NewState())
	s = completeAcademicStep(t, s)
	s = completeParentStep(t, s)

	// Changing the number after verification invalidates the check even
	// though PhoneVerified is still set.
	s, err := Apply(s, SetParentInfo{Name: "Grace", Email: "grace@example.com", Phone: "+1 512-555-9999"})
	require.NoError(t, err)

	_, err = Apply(s, Submit{})
	assert.ErrorIs(t, err, apperrors.ErrNotSubmittable)
}

func TestReverifiedNumberIsSubmittable(t *testing.T) {
	s := completeStudentStep(t, NewState())
	s = completeAcademicStep(t, s)
	s = completeParentStep(t, s)

	s, err := Apply(s, SetParentInfo{Name: "Grace", Email: "grace@example.com", Phone: "+1 512-555-9999"})
	require.NoError(t, err)
	_, err = Apply(s, Submit{})
	require.ErrorIs(t, err, apperrors.ErrNotSubmittable)

	// Verifying the edited number restores submittability.
	s, err = Apply(s, PhoneVerified{Phone: "+1 512-555-9999"})
	require.NoError(t, err)
	s, err = Apply(s, Submit{})
	require.NoError(t, err)
	assert.Equal(t, StatusSubmitting, s.Status)
}

func TestPhoneVerifiedSetsDraftPhone(t *testing.T) {
	s := completeStudentStep(t, NewState())
	s = completeAcademicStep(t, s)

	s, err := Apply(s, PhoneVerified{Phone: "+1 512-555-1234"})
	require.NoError(t, err)
	assert.True(t, s.PhoneVerified)
	assert.Equal(t, "+1 512-555-1234", s.Draft.ParentPhone)
	assert.Equal(t, s.VerifiedPhone, s.Draft.ParentPhone)
}

func TestSubmitLifecycle(t *testing.T) {
	s := completeStudentStep(t, NewState())
	s = completeAcademicStep(t, s)
	s = completeParentStep(t, s)

	s, err := Apply(s, Submit{})
	require.NoError(t, err)
	assert.Equal(t, StatusSubmitting, s.Status)

	// No edits or double submits while the adapter runs.
	_, err = Apply(s, SetParentInfo{Name: "x"})
	assert.ErrorIs(t, err, apperrors.ErrAlreadySubmitted)
	_, err = Apply(s, Submit{})
	assert.ErrorIs(t, err, apperrors.ErrAlreadySubmitted)

	s, err = Apply(s, SubmitSucceeded{})
	require.NoError(t, err)
	assert.Equal(t, StatusDone, s.Status)

	_, err = Apply(s, Submit{})
	assert.ErrorIs(t, err, apperrors.ErrAlreadySubmitted)
}

func TestFailedSubmitCanRetry(t *testing.T) {
	s := completeStudentStep(t, NewState())
	s = completeAcademicStep(t, s)
	s = completeParentStep(t, s)

	s, err := Apply(s, Submit{})
	require.NoError(t, err)
	s, err = Apply(s, SubmitFailed{})
	require.NoError(t, err)
	assert.Equal(t, StatusFailed, s.Status)
	assert.Equal(t, "ada@example.com", s.Draft.StudentEmail)

	s, err = Apply(s, Submit{})
	require.NoError(t, err)
	assert.Equal(t, StatusSubmitting, s.Status)
}

func TestFailedSubmitAllowsNavigatingBack(t *testing.T) {
	s := completeStudentStep(t, NewState())
	s = completeAcademicStep(t, s)
	s = completeParentStep(t, s)

	s, err := Apply(s, Submit{})
	require.NoError(t, err)
	s, err = Apply(s, SubmitFailed{})
	require.NoError(t, err)

	// The user can walk back to fix a rejected email and come forward
	// again.
	s, err = Apply(s, Previous{})
	require.NoError(t, err)
	assert.Equal(t, StatusInProgress, s.Status)
	assert.Equal(t, StepAcademicInfo, s.Step)

	s, err = Apply(s, Next{})
	require.NoError(t, err)
	assert.Equal(t, StepParentInfo, s.Step)

	s, err = Apply(s, Submit{})
	require.NoError(t, err)
	assert.Equal(t, StatusSubmitting, s.Status)
}

func TestApplyDoesNotMutateInput(t *testing.T) {
	s := NewState()
	next, err := Apply(s, SetStudentInfo{Name: "Ada", Email: "ada@example.com", Credential: "pw"})
	require.NoError(t, err)
	assert.Empty(t, s.Draft.StudentName)
	assert.Equal(t, "Ada", next.Draft.StudentName)
}
