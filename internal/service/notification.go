package service

import (
	"context"

	"servigo-backend/internal/domain"
	"servigo-backend/internal/logger"
	"servigo-backend/internal/repository"
)

type notificationService struct {
	noteRepo    repository.NotificationRepository
	userRepo    repository.UserRepository
	email       EmailService
	batchSize   int32
	maxAttempts int32
}

func NewNotificationService(noteRepo repository.NotificationRepository, userRepo repository.UserRepository, email EmailService, batchSize, maxAttempts int32) NotificationService {
	return &notificationService{
		noteRepo:    noteRepo,
		userRepo:    userRepo,
		email:       email,
		batchSize:   batchSize,
		maxAttempts: maxAttempts,
	}
}

func (s *notificationService) GetNotifications(ctx context.Context, userID int32, page, pageSize int32) ([]domain.Notification, int32, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return s.noteRepo.ListByUser(ctx, userID, pageSize, (page-1)*pageSize)
}

func (s *notificationService) MarkAsRead(ctx context.Context, userID, notificationID int32) error {
	if err := s.noteRepo.MarkRead(ctx, notificationID, userID); err != nil {
		return mapRepoError(err)
	}
	return nil
}

// DispatchPending drains one batch of the outbox. Delivery failures are
// recorded on the row and retried on later runs; a failure never blocks the
// rest of the batch.
func (s *notificationService) DispatchPending(ctx context.Context) (int, error) {
	notes, err := s.noteRepo.ListPendingDispatch(ctx, s.batchSize)
	if err != nil {
		return 0, err
	}

	sent := 0
	for _, note := range notes {
		user, err := s.userRepo.GetByID(ctx, note.UserID)
		if err != nil {
			logger.Error("Outbox row references unknown user", "notificationID", note.ID, "userID", note.UserID, "error", err)
			if markErr := s.noteRepo.MarkFailed(ctx, note.ID, "recipient lookup failed", s.maxAttempts); markErr != nil {
				logger.Error("Failed to record dispatch failure", "notificationID", note.ID, "error", markErr)
			}
			continue
		}

		if err := s.email.Send(ctx, user.Email, user.FullName, note.Title, note.Body); err != nil {
			logger.Error("Failed to deliver notification", "notificationID", note.ID, "email", user.Email, "error", err)
			if markErr := s.noteRepo.MarkFailed(ctx, note.ID, err.Error(), s.maxAttempts); markErr != nil {
				logger.Error("Failed to record dispatch failure", "notificationID", note.ID, "error", markErr)
			}
			continue
		}

		if err := s.noteRepo.MarkSent(ctx, note.ID); err != nil {
			logger.Error("Failed to mark notification sent", "notificationID", note.ID, "error", err)
			continue
		}
		sent++
	}

	logger.Info("Outbox dispatch finished", "batch", len(notes), "sent", sent)
	return sent, nil
}
