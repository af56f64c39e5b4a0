package service

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"servigo-backend/internal/domain"
	"servigo-backend/internal/logger"
	"servigo-backend/internal/repository"
	"servigo-backend/internal/storage"
)

var allowedDocumentTypes = map[string]string{
	"image/jpeg":      ".jpg",
	"image/png":       ".png",
	"application/pdf": ".pdf",
}

type verificationService struct {
	repos          repository.Repos
	tx             repository.Transactor
	blobs          storage.Interface
	maxUploadBytes int64
}

func NewVerificationService(repos repository.Repos, tx repository.Transactor, blobs storage.Interface, maxUploadBytes int64) VerificationService {
	return &verificationService{
		repos:          repos,
		tx:             tx,
		blobs:          blobs,
		maxUploadBytes: maxUploadBytes,
	}
}

func (s *verificationService) ListPendingUsers(ctx context.Context) ([]domain.User, error) {
	return s.repos.Users.ListPending(ctx)
}

func (s *verificationService) GetUser(ctx context.Context, id int32) (*domain.User, error) {
	user, err := s.repos.Users.GetByID(ctx, id)
	if err != nil {
		return nil, mapRepoError(err)
	}
	return user, nil
}

func (s *verificationService) UpdateUserStatus(ctx context.Context, id int32, status domain.UserStatus, reason string, reviewerID int32) (*domain.User, error) {
	logger.EnterMethod("verificationService.UpdateUserStatus", "userID", id, "status", status)

	var (
		verification domain.VerificationStatus
		isActive     bool
		docState     domain.DocumentState
		storedReason *string
		note         domain.Notification
	)

	switch status {
	case domain.UserStatusApproved:
		verification = domain.VerificationVerified
		isActive = true
		docState = domain.DocumentApproved
		note = domain.Notification{
			Kind:  domain.NotificationAccountApproved,
			Title: "Your account has been verified",
			Body:  "Your documents were reviewed and your account is now active. Welcome to ServiGo.",
		}
	case domain.UserStatusRejected:
		verification = domain.VerificationRejected
		isActive = false
		docState = domain.DocumentRejected
		if strings.TrimSpace(reason) == "" {
			reason = domain.DefaultRejectionReason
		}
		storedReason = &reason
		note = domain.Notification{
			Kind:  domain.NotificationAccountRejected,
			Title: "Your verification was rejected",
			Body:  fmt.Sprintf("Your account could not be verified. Reason: %s. You may upload new documents and re-apply.", reason),
		}
	default:
		return nil, fmt.Errorf("%w: status must be approved or rejected, got %q", ErrValidation, status)
	}

	var updated *domain.User
	err := s.tx.Transact(ctx, func(r repository.Repos) error {
		u, err := r.Users.UpdateStatus(ctx, id, status, verification, isActive, storedReason)
		if err != nil {
			return err
		}
		if err := r.Documents.MarkReviewed(ctx, id, docState, reviewerID); err != nil {
			return fmt.Errorf("failed to mark documents reviewed: %w", err)
		}
		note.UserID = id
		if err := r.Notifications.Create(ctx, &note); err != nil {
			return fmt.Errorf("failed to enqueue notification: %w", err)
		}
		updated = u
		return nil
	})
	if err != nil {
		logger.ExitMethodWithError("verificationService.UpdateUserStatus", err, "userID", id)
		return nil, mapRepoError(err)
	}

	logger.ExitMethod("verificationService.UpdateUserStatus", "userID", id, "status", updated.Status)
	return updated, nil
}

func (s *verificationService) ApproveUser(ctx context.Context, userID, reviewerID int32) (*domain.User, error) {
	return s.UpdateUserStatus(ctx, userID, domain.UserStatusApproved, "", reviewerID)
}

func (s *verificationService) UploadVerificationDocument(ctx context.Context, userID int32, slot domain.DocumentSlot, data []byte, filename, contentType string) (string, error) {
	logger.EnterMethod("verificationService.UploadVerificationDocument", "userID", userID, "slot", slot, "size", len(data))

	if !domain.ValidSlot(slot) {
		return "", fmt.Errorf("%w: unknown document slot %q", ErrValidation, slot)
	}
	if len(data) == 0 {
		return "", fmt.Errorf("%w: empty document upload", ErrValidation)
	}
	if int64(len(data)) > s.maxUploadBytes {
		return "", fmt.Errorf("%w: document exceeds %d bytes", ErrValidation, s.maxUploadBytes)
	}
	defaultExt, ok := allowedDocumentTypes[contentType]
	if !ok {
		return "", fmt.Errorf("%w: unsupported content type %q", ErrValidation, contentType)
	}

	if _, err := s.repos.Users.GetByID(ctx, userID); err != nil {
		return "", mapRepoError(err)
	}

	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" {
		ext = defaultExt
	}
	key := fmt.Sprintf("verification/%d/%s_%d%s", userID, slot, time.Now().UnixNano(), ext)

	url, err := s.blobs.Upload(ctx, key, data, contentType)
	if err != nil {
		return "", fmt.Errorf("failed to store document: %w", err)
	}

	err = s.tx.Transact(ctx, func(r repository.Repos) error {
		doc := &domain.Document{
			UserID: userID,
			Slot:   slot,
			URL:    url,
			State:  domain.DocumentPending,
		}
		if err := r.Documents.Create(ctx, doc); err != nil {
			return fmt.Errorf("failed to record document: %w", err)
		}
		if err := r.Users.SetDocumentURL(ctx, userID, slot, url); err != nil {
			return fmt.Errorf("failed to link document to user: %w", err)
		}
		return nil
	})
	if err != nil {
		// The blob is already written; remove it so a failed registration
		// leaves no orphaned object behind.
		if delErr := s.blobs.Delete(ctx, key); delErr != nil {
			logger.Error("Failed to clean up orphaned document blob", "key", key, "error", delErr)
		}
		logger.ExitMethodWithError("verificationService.UploadVerificationDocument", err, "userID", userID)
		return "", mapRepoError(err)
	}

	logger.ExitMethod("verificationService.UploadVerificationDocument", "userID", userID, "slot", slot)
	return url, nil
}

func (s *verificationService) ListUserDocuments(ctx context.Context, userID int32) ([]domain.Document, error) {
	return s.repos.Documents.ListByUser(ctx, userID)
}

// mapRepoError translates repository sentinels into service sentinels so
// handlers never import the repository package for error checks.
func mapRepoError(err error) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return ErrNotFound
	case errors.Is(err, repository.ErrConflict):
		return ErrConflict
	case errors.Is(err, repository.ErrDuplicate):
		return ErrDuplicateEmail
	default:
		return err
	}
}
