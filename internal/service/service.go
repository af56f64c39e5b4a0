package service

import (
	"context"

	"servigo-backend/internal/domain"
)

type AuthService interface {
	Register(ctx context.Context, email, fullName, phone string, userType domain.UserType, password string) (*domain.User, error)
	Login(ctx context.Context, email, password string) (*domain.User, string, string, error) // user, access, refresh
	Refresh(ctx context.Context, refreshToken string) (string, string, error)
}

// VerificationService mediates all reads and writes of user review state
// and verification documents.
type VerificationService interface {
	// ListPendingUsers returns the FIFO review queue, oldest first.
	ListPendingUsers(ctx context.Context) ([]domain.User, error)
	GetUser(ctx context.Context, id int32) (*domain.User, error)
	// UpdateUserStatus moves a pending user to approved or rejected. A
	// rejection without a reason stores the default reason. The documents
	// of the user and the outbox notification are written in the same
	// transaction as the status change.
	UpdateUserStatus(ctx context.Context, id int32, status domain.UserStatus, reason string, reviewerID int32) (*domain.User, error)
	// ApproveUser is the one-shot approval entry point (the server-side
	// approve procedure contract): equivalent to UpdateUserStatus with
	// approved and no reason.
	ApproveUser(ctx context.Context, userID, reviewerID int32) (*domain.User, error)
	// UploadVerificationDocument stores the blob, records the document row
	// with pending state and points the user's slot URL at it. Returns the
	// public URL.
	UploadVerificationDocument(ctx context.Context, userID int32, slot domain.DocumentSlot, data []byte, filename, contentType string) (string, error)
	ListUserDocuments(ctx context.Context, userID int32) ([]domain.Document, error)
}

type OfferService interface {
	CreateOffer(ctx context.Context, professionalID, serviceID, clientID int32, amountCents int64, description string) (*domain.ServiceOffer, error)
	GetOffer(ctx context.Context, id int32) (*domain.ServiceOffer, error)
	ListOffersByService(ctx context.Context, serviceID int32) ([]domain.ServiceOffer, error)
	ListMyOffers(ctx context.Context, professionalID int32) ([]domain.ServiceOffer, error)
	AcceptOffer(ctx context.Context, clientID, offerID int32) (*domain.ServiceOffer, error)
	RejectOffer(ctx context.Context, clientID, offerID int32) (*domain.ServiceOffer, error)
	CancelOffer(ctx context.Context, professionalID, offerID int32) (*domain.ServiceOffer, error)
}

type NotificationService interface {
	GetNotifications(ctx context.Context, userID int32, page, pageSize int32) ([]domain.Notification, int32, error)
	MarkAsRead(ctx context.Context, userID, notificationID int32) error
	// DispatchPending drains the outbox: emails each undelivered row and
	// records the outcome. Returns how many were delivered.
	DispatchPending(ctx context.Context) (int, error)
}

type EmailService interface {
	Send(ctx context.Context, toEmail, toName, subject, body string) error
}
