package postgres_test

import (
	"context"
	"database/sql/driver"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"

	"servigo-backend/internal/domain"
	"servigo-backend/internal/repository"
	"servigo-backend/internal/repository/postgres"
)

var notificationCols = []string{
	"id", "user_id", "kind", "title", "body", "status", "attempts", "last_error", "is_read", "created_at", "sent_at",
}

func notificationRow(id int32, kind domain.NotificationKind, createdAt time.Time) []driver.Value {
	return []driver.Value{id, int32(5), string(kind), "Title", "Body", "pending", int32(0), nil, false, createdAt, nil}
}

func TestNotificationRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := postgres.NewNotificationRepository(db)

	n := &domain.Notification{
		UserID: 5,
		Kind:   domain.NotificationAccountApproved,
		Title:  "Cuenta aprobada",
		Body:   "Tu cuenta fue aprobada.",
	}

	mock.ExpectQuery("INSERT INTO notifications").
		WithArgs(n.UserID, string(n.Kind), n.Title, n.Body, string(domain.NotificationPending), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(42))

	err = repo.Create(context.Background(), n)
	assert.NoError(t, err)
	assert.Equal(t, int32(42), n.ID)
	assert.Equal(t, domain.NotificationPending, n.Status)
}

func TestNotificationRepository_ListPendingDispatch(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := postgres.NewNotificationRepository(db)

	older := time.Now().Add(-time.Hour)
	rows := sqlmock.NewRows(notificationCols).
		AddRow(notificationRow(1, domain.NotificationAccountApproved, older)...).
		AddRow(notificationRow(2, domain.NotificationAccountRejected, time.Now())...)

	mock.ExpectQuery("SELECT (.+) FROM notifications").
		WithArgs(int32(100)).
		WillReturnRows(rows)

	notes, err := repo.ListPendingDispatch(context.Background(), 100)
	assert.NoError(t, err)
	assert.Len(t, notes, 2)
	assert.Equal(t, int32(1), notes[0].ID)
}

func TestNotificationRepository_MarkFailed(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := postgres.NewNotificationRepository(db)

	mock.ExpectExec("UPDATE notifications").
		WithArgs("smtp timeout", int32(5), int32(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err = repo.MarkFailed(context.Background(), 7, "smtp timeout", 5)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNotificationRepository_MarkRead(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := postgres.NewNotificationRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mock.ExpectExec("UPDATE notifications SET is_read = TRUE").
			WithArgs(int32(1), int32(5)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.MarkRead(ctx, 1, 5))
	})

	t.Run("NotOwnedOrMissing", func(t *testing.T) {
		mock.ExpectExec("UPDATE notifications SET is_read = TRUE").
			WithArgs(int32(1), int32(6)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, repo.MarkRead(ctx, 1, 6), repository.ErrNotFound)
	})
}
