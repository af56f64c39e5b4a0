package service_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"servigo-backend/internal/domain"
	"servigo-backend/internal/repository"
)

// stubTransactor runs the transactional closure against the same mock repos,
// so tests observe every write a transaction would carry.
type stubTransactor struct {
	repos repository.Repos
}

func (t *stubTransactor) Transact(ctx context.Context, fn func(repository.Repos) error) error {
	return fn(t.repos)
}

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id int32) (*domain.User, error) {
	args := m.Called(ctx, id)
	if u := args.Get(0); u != nil {
		return u.(*domain.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if u := args.Get(0); u != nil {
		return u.(*domain.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserRepository) ListPending(ctx context.Context) ([]domain.User, error) {
	args := m.Called(ctx)
	if u := args.Get(0); u != nil {
		return u.([]domain.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserRepository) ListPendingBefore(ctx context.Context, cutoff time.Time) ([]domain.User, error) {
	args := m.Called(ctx, cutoff)
	if u := args.Get(0); u != nil {
		return u.([]domain.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserRepository) UpdateStatus(ctx context.Context, id int32, status domain.UserStatus, verification domain.VerificationStatus, isActive bool, reason *string) (*domain.User, error) {
	args := m.Called(ctx, id, status, verification, isActive, reason)
	if u := args.Get(0); u != nil {
		return u.(*domain.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserRepository) SetDocumentURL(ctx context.Context, userID int32, slot domain.DocumentSlot, url string) error {
	args := m.Called(ctx, userID, slot, url)
	return args.Error(0)
}

func (m *MockUserRepository) ListAdmins(ctx context.Context) ([]domain.User, error) {
	args := m.Called(ctx)
	if u := args.Get(0); u != nil {
		return u.([]domain.User), args.Error(1)
	}
	return nil, args.Error(1)
}

type MockDocumentRepository struct {
	mock.Mock
}

func (m *MockDocumentRepository) Create(ctx context.Context, doc *domain.Document) error {
	args := m.Called(ctx, doc)
	return args.Error(0)
}

func (m *MockDocumentRepository) GetByID(ctx context.Context, id int32) (*domain.Document, error) {
	args := m.Called(ctx, id)
	if d := args.Get(0); d != nil {
		return d.(*domain.Document), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockDocumentRepository) ListByUser(ctx context.Context, userID int32) ([]domain.Document, error) {
	args := m.Called(ctx, userID)
	if d := args.Get(0); d != nil {
		return d.([]domain.Document), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockDocumentRepository) MarkReviewed(ctx context.Context, userID int32, state domain.DocumentState, reviewerID int32) error {
	args := m.Called(ctx, userID, state, reviewerID)
	return args.Error(0)
}

type MockOfferRepository struct {
	mock.Mock
}

func (m *MockOfferRepository) Create(ctx context.Context, offer *domain.ServiceOffer) error {
	args := m.Called(ctx, offer)
	return args.Error(0)
}

func (m *MockOfferRepository) GetByID(ctx context.Context, id int32) (*domain.ServiceOffer, error) {
	args := m.Called(ctx, id)
	if o := args.Get(0); o != nil {
		return o.(*domain.ServiceOffer), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockOfferRepository) ListByService(ctx context.Context, serviceID int32) ([]domain.ServiceOffer, error) {
	args := m.Called(ctx, serviceID)
	if o := args.Get(0); o != nil {
		return o.([]domain.ServiceOffer), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockOfferRepository) ListByProfessional(ctx context.Context, professionalID int32) ([]domain.ServiceOffer, error) {
	args := m.Called(ctx, professionalID)
	if o := args.Get(0); o != nil {
		return o.([]domain.ServiceOffer), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockOfferRepository) UpdateStatus(ctx context.Context, id int32, to domain.OfferStatus) (*domain.ServiceOffer, error) {
	args := m.Called(ctx, id, to)
	if o := args.Get(0); o != nil {
		return o.(*domain.ServiceOffer), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockOfferRepository) RejectSiblings(ctx context.Context, serviceID, acceptedID int32) error {
	args := m.Called(ctx, serviceID, acceptedID)
	return args.Error(0)
}

type MockNotificationRepository struct {
	mock.Mock
}

func (m *MockNotificationRepository) Create(ctx context.Context, note *domain.Notification) error {
	args := m.Called(ctx, note)
	return args.Error(0)
}

func (m *MockNotificationRepository) ListPendingDispatch(ctx context.Context, limit int32) ([]domain.Notification, error) {
	args := m.Called(ctx, limit)
	if n := args.Get(0); n != nil {
		return n.([]domain.Notification), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockNotificationRepository) MarkSent(ctx context.Context, id int32) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockNotificationRepository) MarkFailed(ctx context.Context, id int32, reason string, maxAttempts int32) error {
	args := m.Called(ctx, id, reason, maxAttempts)
	return args.Error(0)
}

func (m *MockNotificationRepository) ListByUser(ctx context.Context, userID int32, limit, offset int32) ([]domain.Notification, int32, error) {
	args := m.Called(ctx, userID, limit, offset)
	if n := args.Get(0); n != nil {
		return n.([]domain.Notification), args.Get(1).(int32), args.Error(2)
	}
	return nil, 0, args.Error(2)
}

func (m *MockNotificationRepository) MarkRead(ctx context.Context, id, userID int32) error {
	args := m.Called(ctx, id, userID)
	return args.Error(0)
}

type MockStorage struct {
	mock.Mock
}

func (m *MockStorage) Upload(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	args := m.Called(ctx, key, data, contentType)
	return args.String(0), args.Error(1)
}

func (m *MockStorage) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockStorage) Exists(ctx context.Context, key string) (bool, int64, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Get(1).(int64), args.Error(2)
}

type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) Send(ctx context.Context, toEmail, toName, subject, body string) error {
	args := m.Called(ctx, toEmail, toName, subject, body)
	return args.Error(0)
}

type testRepos struct {
	users  *MockUserRepository
	docs   *MockDocumentRepository
	offers *MockOfferRepository
	notes  *MockNotificationRepository
}

func newTestRepos() (testRepos, repository.Repos, *stubTransactor) {
	tr := testRepos{
		users:  new(MockUserRepository),
		docs:   new(MockDocumentRepository),
		offers: new(MockOfferRepository),
		notes:  new(MockNotificationRepository),
	}
	repos := repository.Repos{
		Users:         tr.users,
		Documents:     tr.docs,
		Offers:        tr.offers,
		Notifications: tr.notes,
	}
	return tr, repos, &stubTransactor{repos: repos}
}
