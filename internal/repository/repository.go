package repository

import (
	"context"
	"errors"
	"time"

	"servigo-backend/internal/domain"
)

var (
	// ErrNotFound is returned when a lookup matches no row.
	ErrNotFound = errors.New("not found")
	// ErrConflict is returned when a compare-and-swap update finds the row
	// in a state other than the one the transition requires.
	ErrConflict = errors.New("conflicting state")
	// ErrDuplicate is returned when an insert violates a uniqueness constraint.
	ErrDuplicate = errors.New("already exists")
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id int32) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	// ListPending returns the FIFO review queue: every user whose status is
	// pending, oldest registration first.
	ListPending(ctx context.Context) ([]domain.User, error)
	// ListPendingBefore returns pending users registered before the cutoff.
	ListPendingBefore(ctx context.Context, cutoff time.Time) ([]domain.User, error)
	// UpdateStatus moves a pending user to a terminal review state. The
	// update only applies while status is still pending; on a non-pending
	// row it returns ErrConflict, on a missing row ErrNotFound.
	UpdateStatus(ctx context.Context, id int32, status domain.UserStatus, verification domain.VerificationStatus, isActive bool, reason *string) (*domain.User, error)
	// SetDocumentURL points the user's slot column at a freshly uploaded
	// document and refreshes updated_at.
	SetDocumentURL(ctx context.Context, userID int32, slot domain.DocumentSlot, url string) error
	ListAdmins(ctx context.Context) ([]domain.User, error)
}

type DocumentRepository interface {
	Create(ctx context.Context, doc *domain.Document) error
	GetByID(ctx context.Context, id int32) (*domain.Document, error)
	ListByUser(ctx context.Context, userID int32) ([]domain.Document, error)
	// MarkReviewed stamps every pending document of the user with the
	// outcome of the account review.
	MarkReviewed(ctx context.Context, userID int32, state domain.DocumentState, reviewerID int32) error
}

type OfferRepository interface {
	Create(ctx context.Context, offer *domain.ServiceOffer) error
	GetByID(ctx context.Context, id int32) (*domain.ServiceOffer, error)
	ListByService(ctx context.Context, serviceID int32) ([]domain.ServiceOffer, error)
	ListByProfessional(ctx context.Context, professionalID int32) ([]domain.ServiceOffer, error)
	// UpdateStatus transitions an offer out of pending. Non-pending rows
	// yield ErrConflict, missing rows ErrNotFound.
	UpdateStatus(ctx context.Context, id int32, to domain.OfferStatus) (*domain.ServiceOffer, error)
	// RejectSiblings rejects every other pending offer on the service.
	RejectSiblings(ctx context.Context, serviceID, acceptedID int32) error
}

type NotificationRepository interface {
	Create(ctx context.Context, note *domain.Notification) error
	// ListPendingDispatch returns undelivered outbox rows, oldest first.
	ListPendingDispatch(ctx context.Context, limit int32) ([]domain.Notification, error)
	MarkSent(ctx context.Context, id int32) error
	// MarkFailed records a delivery failure. The row stays pending for the
	// next dispatch run until attempts reaches maxAttempts, then it is
	// parked as failed.
	MarkFailed(ctx context.Context, id int32, reason string, maxAttempts int32) error
	ListByUser(ctx context.Context, userID int32, limit, offset int32) ([]domain.Notification, int32, error)
	MarkRead(ctx context.Context, id, userID int32) error
}

// Repos bundles the per-table repositories. A Transactor hands out a
// tx-scoped copy so multi-table writes commit or roll back together.
type Repos struct {
	Users         UserRepository
	Documents     DocumentRepository
	Offers        OfferRepository
	Notifications NotificationRepository
}

type Transactor interface {
	Transact(ctx context.Context, fn func(Repos) error) error
}
