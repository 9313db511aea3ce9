package services

import (
	"context"
	"sync"
	"time"

	stripe "github.com/stripe/stripe-go/v79"

	"github.com/eduadmin/enroll/internal/app/models"
	"github.com/eduadmin/enroll/internal/pkg/apperrors"
)

// callLog records the order of persistence calls across fakes so tests
// can assert the submission sequence.
type callLog struct {
	mu    sync.Mutex
	calls []string
}

func (l *callLog) add(name string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.calls = append(l.calls, name)
}

func (l *callLog) all() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.calls...)
}

type fakeUserStore struct {
	log         *callLog
	nextID      int64
	emails      map[string]bool
	lastCreated *models.User
	err         error
}

func newFakeUserStore(log *callLog) *fakeUserStore {
	return &fakeUserStore{log: log, nextID: 100, emails: map[string]bool{}}
}

func (f *fakeUserStore) Create(ctx context.Context, user *models.User) (int64, error) {
	f.log.add("users.Create")
	if f.err != nil {
		return 0, f.err
	}
	if f.emails[user.Email] {
		return 0, apperrors.ErrEmailAlreadyExists
	}
	f.emails[user.Email] = true
	f.nextID++
	user.ID = f.nextID
	f.lastCreated = user
	return user.ID, nil
}

func (f *fakeUserStore) EmailExists(ctx context.Context, email string) (bool, error) {
	return f.emails[email], nil
}

type fakeStudentStore struct {
	log     *callLog
	nextID  int64
	created []*models.Student
	err     error
}

func newFakeStudentStore(log *callLog) *fakeStudentStore {
	return &fakeStudentStore{log: log, nextID: 200}
}

func (f *fakeStudentStore) Create(ctx context.Context, student *models.Student) (int64, error) {
	f.log.add("students.Create")
	if f.err != nil {
		return 0, f.err
	}
	f.nextID++
	student.ID = f.nextID
	f.created = append(f.created, student)
	return student.ID, nil
}

type fakeParentStore struct {
	log     *callLog
	nextID  int64
	created []*models.ParentInfo
	err     error
}

func newFakeParentStore(log *callLog) *fakeParentStore {
	return &fakeParentStore{log: log, nextID: 300}
}

func (f *fakeParentStore) Create(ctx context.Context, parent *models.ParentInfo) (int64, error) {
	f.log.add("parents.Create")
	if f.err != nil {
		return 0, f.err
	}
	f.nextID++
	parent.ID = f.nextID
	f.created = append(f.created, parent)
	return parent.ID, nil
}

type fakeVerificationStore struct {
	mu      sync.Mutex
	records map[string]*models.PhoneVerification
}

func newFakeVerificationStore() *fakeVerificationStore {
	return &fakeVerificationStore{records: map[string]*models.PhoneVerification{}}
}

func (f *fakeVerificationStore) Create(ctx context.Context, v *models.PhoneVerification) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	clone := *v
	f.records[v.ID] = &clone
	return nil
}

func (f *fakeVerificationStore) GetByID(ctx context.Context, id string) (*models.PhoneVerification, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.records[id]
	if !ok {
		return nil, apperrors.ErrVerificationNotFound
	}
	clone := *v
	return &clone, nil
}

func (f *fakeVerificationStore) MarkVerified(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.records[id]
	if !ok {
		return apperrors.ErrVerificationNotFound
	}
	v.Verified = true
	return nil
}

func (f *fakeVerificationStore) Delete(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.records, id)
	return nil
}

func (f *fakeVerificationStore) DeleteExpired(ctx context.Context, now time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for id, v := range f.records {
		if v.Expired(now) {
			delete(f.records, id)
		}
	}
	return nil
}

// expire backdates a record so the next confirmation sees it as expired.
func (f *fakeVerificationStore) expire(id string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if v, ok := f.records[id]; ok {
		v.ExpiresAt = time.Now().Add(-time.Minute)
	}
}

type sentSMS struct {
	To      string
	Message string
}

type fakeGateway struct {
	mu   sync.Mutex
	sent []sentSMS
	err  error
}

func (f *fakeGateway) Send(to, message string) error {
	if f.err != nil {
		return f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, sentSMS{To: to, Message: message})
	return nil
}

func (f *fakeGateway) last() sentSMS {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.sent[len(f.sent)-1]
}

type fakePaymentStore struct {
	mu       sync.Mutex
	nextID   int64
	payments map[int64]*models.Payment
}

func newFakePaymentStore() *fakePaymentStore {
	return &fakePaymentStore{nextID: 400, payments: map[int64]*models.Payment{}}
}

func (f *fakePaymentStore) Create(ctx context.Context, p *models.Payment) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	p.ID = f.nextID
	p.CreatedAt = time.Now()
	clone := *p
	f.payments[p.ID] = &clone
	return p.ID, nil
}

func (f *fakePaymentStore) SetCheckoutSessionID(ctx context.Context, id int64, sessionID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.payments[id]
	if !ok {
		return apperrors.ErrPaymentNotFound
	}
	p.CheckoutSessionID = sessionID
	return nil
}

func (f *fakePaymentStore) MarkCompleted(ctx context.Context, sessionID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.payments {
		if p.CheckoutSessionID == sessionID && p.Status == models.PaymentStatusPending {
			p.Status = models.PaymentStatusCompleted
			return nil
		}
	}
	return apperrors.ErrPaymentNotFound
}

type fakeCheckoutClient struct {
	params  *stripe.CheckoutSessionParams
	session *stripe.CheckoutSession
	err     error
}

func (f *fakeCheckoutClient) CreateSession(params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error) {
	f.params = params
	if f.err != nil {
		return nil, f.err
	}
	return f.session, nil
}

type fakeMailer struct {
	mu   sync.Mutex
	sent []string
	err  error
}

func (f *fakeMailer) SendWelcomeEmail(toEmail, toName string) error {
	if f.err != nil {
		return f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, toEmail)
	return nil
}
