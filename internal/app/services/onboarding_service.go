package services

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/eduadmin/enroll/internal/app/models"
	"github.com/eduadmin/enroll/internal/app/models/dto"
	"github.com/eduadmin/enroll/internal/app/sessions"
	"github.com/eduadmin/enroll/internal/app/wizard"
	"github.com/eduadmin/enroll/internal/pkg/apperrors"
	"github.com/eduadmin/enroll/internal/pkg/auth"
	"github.com/eduadmin/enroll/internal/pkg/email"
	"github.com/eduadmin/enroll/internal/pkg/metrics"
)

// OnboardingService drives wizard sessions and turns a completed draft
// into persistent account, student and parent records.
type OnboardingService struct {
	store      *sessions.Store
	users      UserStore
	students   StudentStore
	parents    ParentStore
	jwtService *auth.JWTService
	mailer     email.Service
	logger     zerolog.Logger
}

// NewOnboardingService creates a new OnboardingService
func NewOnboardingService(
	store *sessions.Store,
	users UserStore,
	students StudentStore,
	parents ParentStore,
	jwtService *auth.JWTService,
	mailer email.Service,
	logger zerolog.Logger,
) *OnboardingService {
	return &OnboardingService{
		store:      store,
		users:      users,
		students:   students,
		parents:    parents,
		jwtService: jwtService,
		mailer:     mailer,
		logger:     logger,
	}
}

// Start opens a fresh wizard session.
func (s *OnboardingService) Start() *sessions.Session {
	sess := s.store.Create()
	s.logger.Info().Str("session_id", sess.ID).Msg("Onboarding session started")
	return sess
}

// Get looks up an existing session.
func (s *OnboardingService) Get(id string) (*sessions.Session, error) {
	return s.store.Get(id)
}

// Abandon discards a session and its draft.
func (s *OnboardingService) Abandon(id string) error {
	if _, err := s.store.Get(id); err != nil {
		return err
	}
	s.store.Delete(id)
	s.logger.Info().Str("session_id", id).Msg("Onboarding session abandoned")
	return nil
}

// apply runs a wizard event against a session under its lock.
func (s *OnboardingService) apply(sess *sessions.Session, event wizard.Event) error {
	return sess.WithLock(func(sess *sessions.Session) error {
		next, err := wizard.Apply(sess.Wizard, event)
		if err != nil {
			return err
		}
		sess.Wizard = next
		return nil
	})
}

// UpdateStudentInfo saves the first step's fields into the draft.
func (s *OnboardingService) UpdateStudentInfo(sess *sessions.Session, req dto.StudentInfoRequest) error {
	return s.apply(sess, wizard.SetStudentInfo{
		Name:       req.FullName,
		Email:      req.Email,
		Credential: req.Password,
	})
}

// UpdateAcademicInfo saves the second step's fields into the draft.
func (s *OnboardingService) UpdateAcademicInfo(sess *sessions.Session, req dto.AcademicInfoRequest) error {
	return s.apply(sess, wizard.SetAcademicInfo{
		Grade:         req.Grade,
		SchoolName:    req.SchoolName,
		City:          req.City,
		Zipcode:       req.Zipcode,
		Subjects:      req.Subjects,
		OtherSubjects: req.OtherSubjects,
	})
}

// UpdateParentInfo saves the third step's fields into the draft.
func (s *OnboardingService) UpdateParentInfo(sess *sessions.Session, req dto.ParentInfoRequest) error {
	return s.apply(sess, wizard.SetParentInfo{
		Name:  req.FullName,
		Email: req.Email,
		Phone: req.Phone,
	})
}

// Next advances the wizard one step.
func (s *OnboardingService) Next(sess *sessions.Session) error {
	return s.apply(sess, wizard.Next{})
}

// Previous moves the wizard back one step, keeping entered data.
func (s *OnboardingService) Previous(sess *sessions.Session) error {
	return s.apply(sess, wizard.Previous{})
}

// Submit finalizes the registration: it moves the wizard into its
// submitting state, then creates the account, the student record and the
// parent record in that order. The whole operation runs under the session
// lock so a double-click cannot submit twice. On failure the draft is
// preserved and the wizard is left retryable.
func (s *OnboardingService) Submit(ctx context.Context, sess *sessions.Session) (*dto.RegistrationResultResponse, error) {
	var result *dto.RegistrationResultResponse
	var studentName, studentEmail string

	err := sess.WithLock(func(sess *sessions.Session) error {
		submitting, err := wizard.Apply(sess.Wizard, wizard.Submit{})
		if err != nil {
			return err
		}
		sess.Wizard = submitting

		res, err := s.persist(ctx, submitting.Draft)
		if err != nil {
			failed, applyErr := wizard.Apply(sess.Wizard, wizard.SubmitFailed{})
			if applyErr == nil {
				sess.Wizard = failed
			}
			s.logger.Error().Err(err).Str("session_id", sess.ID).Msg("Registration submission failed")
			return err
		}

		done, err := wizard.Apply(sess.Wizard, wizard.SubmitSucceeded{})
		if err != nil {
			return err
		}
		sess.Wizard = done
		result = res
		studentName = done.Draft.StudentName
		studentEmail = done.Draft.StudentEmail
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.RegistrationsCompleted.Inc()
	s.logger.Info().
		Str("session_id", sess.ID).
		Int64("account_id", result.AccountID).
		Int64("student_id", result.StudentID).
		Msg("Registration completed")

	// The welcome email is best effort; the registration stands either way.
	if err := s.mailer.SendWelcomeEmail(studentEmail, studentName); err != nil {
		s.logger.Warn().Err(err).Str("session_id", sess.ID).Msg("Failed to send welcome email")
	}

	s.store.Delete(sess.ID)
	return result, nil
}

// persist writes the draft out as account, student and parent rows.
func (s *OnboardingService) persist(ctx context.Context, draft models.RegistrationDraft) (*dto.RegistrationResultResponse, error) {
	hashed, err := auth.HashPassword(draft.StudentCredential)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Email:    draft.StudentEmail,
		Password: hashed,
		IsActive: true,
	}
	accountID, err := s.users.Create(ctx, user)
	if err != nil {
		if errors.Is(err, apperrors.ErrEmailAlreadyExists) {
			return nil, err
		}
		return nil, apperrors.NewCustomError(err, "could not create account")
	}

	student := &models.Student{
		UserID:        accountID,
		FullName:      draft.StudentName,
		Grade:         draft.Grade,
		SchoolName:    draft.SchoolName,
		City:          draft.City,
		Zipcode:       draft.Zipcode,
		Subjects:      draft.Subjects,
		OtherSubjects: draft.OtherSubjects,
	}
	studentID, err := s.students.Create(ctx, student)
	if err != nil {
		return nil, apperrors.NewCustomError(err, "could not create student record")
	}

	parent := &models.ParentInfo{
		StudentID: studentID,
		FullName:  draft.ParentName,
		Email:     draft.ParentEmail,
		Phone:     draft.ParentPhone,
	}
	if _, err := s.parents.Create(ctx, parent); err != nil {
		return nil, apperrors.NewCustomError(err, "could not create parent record")
	}

	token, expiresIn, err := s.jwtService.GenerateToken(accountID, draft.StudentEmail)
	if err != nil {
		return nil, apperrors.NewCustomError(err, "could not issue access token")
	}

	return &dto.RegistrationResultResponse{
		AccountID:   accountID,
		StudentID:   studentID,
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   expiresIn,
	}, nil
}
