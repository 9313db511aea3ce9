package services

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"regexp"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/eduadmin/enroll/internal/app/models"
	"github.com/eduadmin/enroll/internal/app/sessions"
	"github.com/eduadmin/enroll/internal/app/wizard"
	"github.com/eduadmin/enroll/internal/pkg/apperrors"
	"github.com/eduadmin/enroll/internal/pkg/metrics"
	"github.com/eduadmin/enroll/internal/pkg/sms"
	"github.com/eduadmin/enroll/internal/pkg/validation"
)

var otpPattern = regexp.MustCompile(`^\d{6}$`)

// VerificationService runs the phone verification sub-flow inside a wizard
// session: a number is submitted, a one-time code is texted to it, and the
// code must be confirmed before the wizard accepts the number as verified.
type VerificationService struct {
	verifications  VerificationStore
	gateway        sms.Gateway
	codeTTL        time.Duration
	resendInterval time.Duration
	logger         zerolog.Logger

	mu       sync.Mutex
	limiters map[string]*rate.Limiter
}

// NewVerificationService creates a new VerificationService
func NewVerificationService(
	verifications VerificationStore,
	gateway sms.Gateway,
	codeTTL time.Duration,
	resendInterval time.Duration,
	logger zerolog.Logger,
) *VerificationService {
	return &VerificationService{
		verifications:  verifications,
		gateway:        gateway,
		codeTTL:        codeTTL,
		resendInterval: resendInterval,
		logger:         logger,
		limiters:       make(map[string]*rate.Limiter),
	}
}

// SubmitPhone starts (or restarts) verification for a phone number. The
// number is normalized before anything else, so the code is always sent to
// the formatted form the wizard will later compare against. Returns the
// formatted number the code was sent to.
func (s *VerificationService) SubmitPhone(ctx context.Context, sess *sessions.Session, rawPhone string) (string, error) {
	formatted := validation.FormatPhone(rawPhone)
	if !validation.IsValidPhone(formatted) {
		return "", apperrors.ErrInvalidPhone
	}

	if !s.allowSend(formatted) {
		return "", apperrors.ErrResendThrottled
	}

	code, err := generateCode()
	if err != nil {
		return "", fmt.Errorf("failed to generate verification code: %w", err)
	}

	now := time.Now()
	record := &models.PhoneVerification{
		ID:          uuid.New().String(),
		PhoneNumber: formatted,
		Code:        code,
		CreatedAt:   now,
		ExpiresAt:   now.Add(s.codeTTL),
	}

	err = sess.WithLock(func(sess *sessions.Session) error {
		switch sess.Flow {
		case models.VerificationAwaitingPhone, models.VerificationAwaitingCode,
			models.VerificationCancelled, models.VerificationVerified:
			// A resubmitted, reopened or already-verified flow starts over
			// with a fresh challenge. The wizard only accepts the number once
			// the new code is confirmed, so editing the parent phone after a
			// verification always has a path back to a verified state.
		default:
			return apperrors.ErrVerificationFlowState
		}

		if err := s.verifications.Create(ctx, record); err != nil {
			return err
		}

		message := fmt.Sprintf("Your verification code is %s. It expires in %d minutes.", code, int(s.codeTTL.Minutes()))
		if err := s.gateway.Send(formatted, message); err != nil {
			// The unused record ages out on its own.
			s.logger.Error().Err(err).Str("phone", formatted).Msg("Failed to send verification SMS")
			return apperrors.NewCustomError(apperrors.ErrExternalService, "could not send verification code")
		}

		sess.Flow = models.VerificationAwaitingCode
		sess.FlowPhone = formatted
		sess.VerificationID = record.ID
		return nil
	})
	if err != nil {
		return "", err
	}

	metrics.VerificationCodesSent.Inc()
	s.logger.Info().Str("session_id", sess.ID).Str("phone", formatted).Msg("Verification code sent")
	return formatted, nil
}

// ConfirmCode checks the submitted OTP against the outstanding challenge.
// On success the wizard is told the number is verified and the sub-flow
// reaches its terminal state. Returns the verified number.
func (s *VerificationService) ConfirmCode(ctx context.Context, sess *sessions.Session, code string) (string, error) {
	if !otpPattern.MatchString(code) {
		return "", apperrors.ErrOTPMalformed
	}

	var phone string
	err := sess.WithLock(func(sess *sessions.Session) error {
		if sess.Flow != models.VerificationAwaitingCode {
			return apperrors.ErrVerificationFlowState
		}

		record, err := s.verifications.GetByID(ctx, sess.VerificationID)
		if err != nil {
			if errors.Is(err, apperrors.ErrVerificationNotFound) {
				return apperrors.ErrVerificationFailed
			}
			return err
		}

		// The code is matched before the expiry check: a wrong code is
		// "Invalid OTP" even when the challenge has already lapsed.
		if record.Code != code {
			return apperrors.ErrOTPInvalid
		}
		if record.Expired(time.Now()) {
			return apperrors.ErrOTPExpired
		}

		if err := s.verifications.MarkVerified(ctx, record.ID); err != nil {
			return err
		}

		next, err := wizard.Apply(sess.Wizard, wizard.PhoneVerified{Phone: record.PhoneNumber})
		if err != nil {
			return err
		}
		sess.Wizard = next
		sess.Flow = models.VerificationVerified
		sess.VerificationID = ""
		phone = record.PhoneNumber
		return nil
	})
	if err != nil {
		return "", err
	}

	metrics.VerificationsCompleted.Inc()
	s.logger.Info().Str("session_id", sess.ID).Str("phone", phone).Msg("Phone verified")
	return phone, nil
}

// Back abandons the outstanding code and returns the sub-flow to the
// number entry state. Whatever the user typed into the code field is gone;
// the challenge row is left to expire on its own.
func (s *VerificationService) Back(ctx context.Context, sess *sessions.Session) error {
	return sess.WithLock(func(sess *sessions.Session) error {
		if sess.Flow != models.VerificationAwaitingCode {
			return apperrors.ErrVerificationFlowState
		}

		sess.Flow = models.VerificationAwaitingPhone
		sess.VerificationID = ""
		sess.FlowPhone = ""
		return nil
	})
}

// Cancel closes the sub-flow without verifying. The abandoned challenge is
// not touched; it ages out at its expiry deadline. A later SubmitPhone
// reopens the flow from scratch.
func (s *VerificationService) Cancel(ctx context.Context, sess *sessions.Session) error {
	return sess.WithLock(func(sess *sessions.Session) error {
		if sess.Flow == models.VerificationVerified {
			return apperrors.ErrVerificationFlowState
		}

		sess.Flow = models.VerificationCancelled
		sess.VerificationID = ""
		sess.FlowPhone = ""
		return nil
	})
}

// PurgeExpired removes stale OTP rows; run periodically. This is the only
// place abandoned challenges are cleaned up.
func (s *VerificationService) PurgeExpired(ctx context.Context) error {
	return s.verifications.DeleteExpired(ctx, time.Now())
}

// allowSend enforces the per-number resend interval.
func (s *VerificationService) allowSend(phone string) bool {
	if s.resendInterval <= 0 {
		return true
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	limiter, ok := s.limiters[phone]
	if !ok {
		limiter = rate.NewLimiter(rate.Every(s.resendInterval), 1)
		s.limiters[phone] = limiter
	}
	return limiter.Allow()
}

// generateCode produces a uniformly random 6-digit code.
func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
