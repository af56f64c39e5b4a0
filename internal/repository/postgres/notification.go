package postgres

import (
	"context"
	"database/sql"
	"time"

	"servigo-backend/internal/domain"
	"servigo-backend/internal/logger"
	"servigo-backend/internal/repository"
)

const notificationColumns = `id, user_id, kind, title, body, status, attempts, last_error, is_read, created_at, sent_at`

type notificationRepository struct {
	db DBTX
}

func NewNotificationRepository(db DBTX) repository.NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Create(ctx context.Context, n *domain.Notification) error {
	logger.EnterMethod("notificationRepository.Create", "userID", n.UserID, "kind", n.Kind)
	query := `INSERT INTO notifications (user_id, kind, title, body, status, attempts, is_read, created_at)
	          VALUES ($1, $2, $3, $4, $5, 0, FALSE, $6) RETURNING id`
	n.Status = domain.NotificationPending
	n.CreatedAt = time.Now().UTC()
	err := r.db.QueryRowContext(ctx, query, n.UserID, n.Kind, n.Title, n.Body, n.Status, n.CreatedAt).Scan(&n.ID)
	if err != nil {
		logger.ExitMethodWithError("notificationRepository.Create", err, "userID", n.UserID)
		return translateError(err)
	}
	logger.ExitMethod("notificationRepository.Create", "notificationID", n.ID)
	return nil
}

func (r *notificationRepository) ListPendingDispatch(ctx context.Context, limit int32) ([]domain.Notification, error) {
	query := `SELECT ` + notificationColumns + ` FROM notifications
	          WHERE status = 'pending' ORDER BY created_at ASC LIMIT $1`
	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return r.scanMany(rows)
}

func (r *notificationRepository) MarkSent(ctx context.Context, id int32) error {
	query := `UPDATE notifications SET status = 'sent', sent_at = $1, last_error = NULL WHERE id = $2`
	_, err := r.db.ExecContext(ctx, query, time.Now().UTC(), id)
	return err
}

func (r *notificationRepository) MarkFailed(ctx context.Context, id int32, reason string, maxAttempts int32) error {
	query := `UPDATE notifications
	          SET attempts = attempts + 1, last_error = $1,
	              status = CASE WHEN attempts + 1 >= $2 THEN 'failed' ELSE 'pending' END
	          WHERE id = $3`
	_, err := r.db.ExecContext(ctx, query, reason, maxAttempts, id)
	return err
}

func (r *notificationRepository) ListByUser(ctx context.Context, userID int32, limit, offset int32) ([]domain.Notification, int32, error) {
	query := `SELECT ` + notificationColumns + ` FROM notifications
	          WHERE user_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.db.QueryContext(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	notes, err := r.scanMany(rows)
	if err != nil {
		return nil, 0, err
	}

	var count int32
	countQuery := `SELECT count(*) FROM notifications WHERE user_id = $1`
	if err := r.db.QueryRowContext(ctx, countQuery, userID).Scan(&count); err != nil {
		return nil, 0, err
	}
	return notes, count, nil
}

func (r *notificationRepository) MarkRead(ctx context.Context, id, userID int32) error {
	query := `UPDATE notifications SET is_read = TRUE WHERE id = $1 AND user_id = $2`
	res, err := r.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *notificationRepository) scanMany(rows *sql.Rows) ([]domain.Notification, error) {
	var notes []domain.Notification
	for rows.Next() {
		var n domain.Notification
		if err := rows.Scan(&n.ID, &n.UserID, &n.Kind, &n.Title, &n.Body, &n.Status, &n.Attempts, &n.LastError, &n.IsRead, &n.CreatedAt, &n.SentAt); err != nil {
			return nil, err
		}
		notes = append(notes, n)
	}
	return notes, rows.Err()
}
