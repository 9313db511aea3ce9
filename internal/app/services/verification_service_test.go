package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eduadmin/enroll/internal/app/models"
	"github.com/eduadmin/enroll/internal/app/sessions"
	"github.com/eduadmin/enroll/internal/pkg/apperrors"
)

type verificationFixture struct {
	svc     *VerificationService
	store   *fakeVerificationStore
	gateway *fakeGateway
	sess    *sessions.Session
}

func newVerificationFixture(t *testing.T, resendInterval time.Duration) *verificationFixture {
	t.Helper()
	store := newFakeVerificationStore()
	gateway := &fakeGateway{}
	sessStore := sessions.NewStore(time.Hour, zerolog.Nop())
	t.Cleanup(sessStore.Close)

	return &verificationFixture{
		svc:     NewVerificationService(store, gateway, 10*time.Minute, resendInterval, zerolog.Nop()),
		store:   store,
		gateway: gateway,
		sess:    sessStore.Create(),
	}
}

// sentCode digs the 6-digit code out of the text message.
func sentCode(t *testing.T, message string) string {
	t.Helper()
	for _, word := range strings.Fields(message) {
		trimmed := strings.TrimSuffix(word, ".")
		if len(trimmed) == 6 && strings.Trim(trimmed, "0123456789") == "" {
			return trimmed
		}
	}
	t.Fatalf("no code found in message %q", message)
	return ""
}

func TestSubmitPhoneFormatsAndSends(t *testing.T) {
	f := newVerificationFixture(t, 0)

	phone, err := f.svc.SubmitPhone(context.Background(), f.sess, "(512) 555-1234")
	require.NoError(t, err)
	assert.Equal(t, "+1 512-555-1234", phone)
	assert.Equal(t, models.VerificationAwaitingCode, f.sess.Flow)
	assert.Equal(t, phone, f.sess.FlowPhone)
	assert.NotEmpty(t, f.sess.VerificationID)

	sms := f.gateway.last()
	assert.Equal(t, phone, sms.To)
	assert.Len(t, sentCode(t, sms.Message), 6)
}

func TestSubmitPhoneRejectsInvalidNumber(t *testing.T) {
	f := newVerificationFixture(t, 0)

	_, err := f.svc.SubmitPhone(context.Background(), f.sess, "123")
	assert.ErrorIs(t, err, apperrors.ErrInvalidPhone)
	assert.Equal(t, models.VerificationAwaitingPhone, f.sess.Flow)
}

func TestSubmitPhoneThrottlesResends(t *testing.T) {
	f := newVerificationFixture(t, time.Minute)

	_, err := f.svc.SubmitPhone(context.Background(), f.sess, "5125551234")
	require.NoError(t, err)

	_, err = f.svc.SubmitPhone(context.Background(), f.sess, "512-555-1234")
	assert.ErrorIs(t, err, apperrors.ErrResendThrottled)

	// A different number is not throttled.
	_, err = f.svc.SubmitPhone(context.Background(), f.sess, "5125559999")
	assert.NoError(t, err)
}

func TestSubmitPhoneSMSFailure(t *testing.T) {
	f := newVerificationFixture(t, 0)
	f.gateway.err = assert.AnError

	_, err := f.svc.SubmitPhone(context.Background(), f.sess, "5125551234")
	assert.ErrorIs(t, err, apperrors.ErrExternalService)
	assert.Equal(t, models.VerificationAwaitingPhone, f.sess.Flow)
}

func TestConfirmCodeSuccess(t *testing.T) {
	f := newVerificationFixture(t, 0)

	phone, err := f.svc.SubmitPhone(context.Background(), f.sess, "5125551234")
	require.NoError(t, err)
	code := sentCode(t, f.gateway.last().Message)

	verified, err := f.svc.ConfirmCode(context.Background(), f.sess, code)
	require.NoError(t, err)
	assert.Equal(t, phone, verified)
	assert.Equal(t, models.VerificationVerified, f.sess.Flow)
	assert.True(t, f.sess.Wizard.PhoneVerified)
	assert.Equal(t, phone, f.sess.Wizard.VerifiedPhone)
	assert.Equal(t, phone, f.sess.Wizard.Draft.ParentPhone)
}

func TestConfirmCodeMalformed(t *testing.T) {
	f := newVerificationFixture(t, 0)

	_, err := f.svc.SubmitPhone(context.Background(), f.sess, "5125551234")
	require.NoError(t, err)

	for _, code := range []string{"", "123", "1234567", "12a456"} {
		_, err := f.svc.ConfirmCode(context.Background(), f.sess, code)
		assert.ErrorIs(t, err, apperrors.ErrOTPMalformed, "code %q", code)
	}
}

func TestConfirmCodeMismatch(t *testing.T) {
	f := newVerificationFixture(t, 0)

	_, err := f.svc.SubmitPhone(context.Background(), f.sess, "5125551234")
	require.NoError(t, err)
	code := sentCode(t, f.gateway.last().Message)

	wrong := "000000"
	if wrong == code {
		wrong = "000001"
	}

	_, err = f.svc.ConfirmCode(context.Background(), f.sess, wrong)
	assert.ErrorIs(t, err, apperrors.ErrOTPInvalid)
	// A mismatch does not end the flow; the user may retry.
	assert.Equal(t, models.VerificationAwaitingCode, f.sess.Flow)
}

func TestConfirmCodeExpired(t *testing.T) {
	f := newVerificationFixture(t, 0)

	_, err := f.svc.SubmitPhone(context.Background(), f.sess, "5125551234")
	require.NoError(t, err)
	code := sentCode(t, f.gateway.last().Message)

	f.store.expire(f.sess.VerificationID)

	_, err = f.svc.ConfirmCode(context.Background(), f.sess, code)
	assert.ErrorIs(t, err, apperrors.ErrOTPExpired)
}

func TestConfirmWrongCodeOnExpiredChallenge(t *testing.T) {
	f := newVerificationFixture(t, 0)

	_, err := f.svc.SubmitPhone(context.Background(), f.sess, "5125551234")
	require.NoError(t, err)
	code := sentCode(t, f.gateway.last().Message)
	f.store.expire(f.sess.VerificationID)

	wrong := "000000"
	if wrong == code {
		wrong = "000001"
	}

	// A mismatch wins over expiry: the code never matched, so the error is
	// the mismatch, not the lapsed deadline.
	_, err = f.svc.ConfirmCode(context.Background(), f.sess, wrong)
	assert.ErrorIs(t, err, apperrors.ErrOTPInvalid)
}

func TestConfirmCodeMissingRecord(t *testing.T) {
	f := newVerificationFixture(t, 0)

	_, err := f.svc.SubmitPhone(context.Background(), f.sess, "5125551234")
	require.NoError(t, err)
	code := sentCode(t, f.gateway.last().Message)

	require.NoError(t, f.store.Delete(context.Background(), f.sess.VerificationID))

	_, err = f.svc.ConfirmCode(context.Background(), f.sess, code)
	assert.ErrorIs(t, err, apperrors.ErrVerificationFailed)
}

func TestConfirmCodeWrongFlowState(t *testing.T) {
	f := newVerificationFixture(t, 0)

	_, err := f.svc.ConfirmCode(context.Background(), f.sess, "123456")
	assert.ErrorIs(t, err, apperrors.ErrVerificationFlowState)
}

func TestBackAbandonsChallenge(t *testing.T) {
	f := newVerificationFixture(t, 0)

	_, err := f.svc.SubmitPhone(context.Background(), f.sess, "5125551234")
	require.NoError(t, err)
	verificationID := f.sess.VerificationID

	require.NoError(t, f.svc.Back(context.Background(), f.sess))
	assert.Equal(t, models.VerificationAwaitingPhone, f.sess.Flow)
	assert.Empty(t, f.sess.VerificationID)

	// The abandoned challenge is not deleted; it ages out via the janitor.
	record, err := f.store.GetByID(context.Background(), verificationID)
	require.NoError(t, err)
	assert.False(t, record.Verified)
}

func TestCancelAndReopen(t *testing.T) {
	f := newVerificationFixture(t, 0)

	_, err := f.svc.SubmitPhone(context.Background(), f.sess, "5125551234")
	require.NoError(t, err)
	verificationID := f.sess.VerificationID

	require.NoError(t, f.svc.Cancel(context.Background(), f.sess))
	assert.Equal(t, models.VerificationCancelled, f.sess.Flow)

	// Cancelling mutates no record; the challenge simply expires later.
	_, err = f.store.GetByID(context.Background(), verificationID)
	require.NoError(t, err)

	// A cancelled flow can be reopened with a fresh number.
	phone, err := f.svc.SubmitPhone(context.Background(), f.sess, "5125559999")
	require.NoError(t, err)
	assert.Equal(t, "+1 512-555-9999", phone)
	assert.Equal(t, models.VerificationAwaitingCode, f.sess.Flow)
}

func TestResubmitAfterVerifiedStartsFresh(t *testing.T) {
	f := newVerificationFixture(t, 0)

	_, err := f.svc.SubmitPhone(context.Background(), f.sess, "5125551234")
	require.NoError(t, err)
	_, err = f.svc.ConfirmCode(context.Background(), f.sess, sentCode(t, f.gateway.last().Message))
	require.NoError(t, err)
	require.Equal(t, models.VerificationVerified, f.sess.Flow)

	// Changing the number after verification starts a new challenge rather
	// than leaving the session stuck with a stale verified number.
	phone, err := f.svc.SubmitPhone(context.Background(), f.sess, "5125559999")
	require.NoError(t, err)
	assert.Equal(t, "+1 512-555-9999", phone)
	assert.Equal(t, models.VerificationAwaitingCode, f.sess.Flow)

	verified, err := f.svc.ConfirmCode(context.Background(), f.sess, sentCode(t, f.gateway.last().Message))
	require.NoError(t, err)
	assert.Equal(t, "+1 512-555-9999", verified)
	assert.Equal(t, models.VerificationVerified, f.sess.Flow)
	assert.Equal(t, "+1 512-555-9999", f.sess.Wizard.VerifiedPhone)
	assert.Equal(t, "+1 512-555-9999", f.sess.Wizard.Draft.ParentPhone)
}

func TestCancelAfterVerifiedRejected(t *testing.T) {
	f := newVerificationFixture(t, 0)

	_, err := f.svc.SubmitPhone(context.Background(), f.sess, "5125551234")
	require.NoError(t, err)
	code := sentCode(t, f.gateway.last().Message)
	_, err = f.svc.ConfirmCode(context.Background(), f.sess, code)
	require.NoError(t, err)

	err = f.svc.Cancel(context.Background(), f.sess)
	assert.ErrorIs(t, err, apperrors.ErrVerificationFlowState)
}

func TestPurgeExpired(t *testing.T) {
	f := newVerificationFixture(t, 0)

	_, err := f.svc.SubmitPhone(context.Background(), f.sess, "5125551234")
	require.NoError(t, err)
	f.store.expire(f.sess.VerificationID)

	require.NoError(t, f.svc.PurgeExpired(context.Background()))

	_, err = f.store.GetByID(context.Background(), f.sess.VerificationID)
	assert.ErrorIs(t, err, apperrors.ErrVerificationNotFound)
}
