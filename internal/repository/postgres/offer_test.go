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

var offerCols = []string{
	"id", "service_id", "professional_id", "client_id", "amount_cents", "description", "status", "created_at", "updated_at",
}

func offerRow(id int32, status domain.OfferStatus) []driver.Value {
	now := time.Now()
	return []driver.Value{id, int32(10), int32(20), int32(30), int64(5000), "fix sink", string(status), now, now}
}

func TestOfferRepository_UpdateStatus(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := postgres.NewOfferRepository(db)
	ctx := context.Background()

	t.Run("AcceptsPendingOffer", func(t *testing.T) {
		rows := sqlmock.NewRows(offerCols).AddRow(offerRow(1, domain.OfferStatusAccepted)...)

		mock.ExpectQuery("UPDATE service_offers").
			WithArgs(string(domain.OfferStatusAccepted), sqlmock.AnyArg(), int32(1)).
			WillReturnRows(rows)

		offer, err := repo.UpdateStatus(ctx, 1, domain.OfferStatusAccepted)
		assert.NoError(t, err)
		assert.Equal(t, domain.OfferStatusAccepted, offer.Status)
	})

	t.Run("ConflictWhenAlreadyResolved", func(t *testing.T) {
		mock.ExpectQuery("UPDATE service_offers").
			WithArgs(string(domain.OfferStatusRejected), sqlmock.AnyArg(), int32(1)).
			WillReturnRows(sqlmock.NewRows(offerCols))
		mock.ExpectQuery("SELECT (.+) FROM service_offers WHERE id = \\$1").
			WithArgs(int32(1)).
			WillReturnRows(sqlmock.NewRows(offerCols).AddRow(offerRow(1, domain.OfferStatusAccepted)...))

		_, err := repo.UpdateStatus(ctx, 1, domain.OfferStatusRejected)
		assert.ErrorIs(t, err, repository.ErrConflict)
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectQuery("UPDATE service_offers").
			WithArgs(string(domain.OfferStatusAccepted), sqlmock.AnyArg(), int32(7)).
			WillReturnRows(sqlmock.NewRows(offerCols))
		mock.ExpectQuery("SELECT (.+) FROM service_offers WHERE id = \\$1").
			WithArgs(int32(7)).
			WillReturnRows(sqlmock.NewRows(offerCols))

		_, err := repo.UpdateStatus(ctx, 7, domain.OfferStatusAccepted)
		assert.ErrorIs(t, err, repository.ErrNotFound)
	})
}

func TestOfferRepository_RejectSiblings(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := postgres.NewOfferRepository(db)

	mock.ExpectExec("UPDATE service_offers SET status = 'rejected'").
		WithArgs(sqlmock.AnyArg(), int32(10), int32(1)).
		WillReturnResult(sqlmock.NewResult(0, 3))

	err = repo.RejectSiblings(context.Background(), 10, 1)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
