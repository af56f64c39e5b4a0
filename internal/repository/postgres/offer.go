package postgres

import (
	"context"
	"time"

	"servigo-backend/internal/domain"
	"servigo-backend/internal/repository"
)

const offerColumns = `id, service_id, professional_id, client_id, amount_cents, description, status, created_at, updated_at`

type offerRepository struct {
	db DBTX
}

func NewOfferRepository(db DBTX) repository.OfferRepository {
	return &offerRepository{db: db}
}

func (r *offerRepository) Create(ctx context.Context, o *domain.ServiceOffer) error {
	query := `INSERT INTO service_offers (service_id, professional_id, client_id, amount_cents, description, status, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id`
	now := time.Now().UTC()
	o.CreatedAt = now
	o.UpdatedAt = now
	err := r.db.QueryRowContext(ctx, query,
		o.ServiceID, o.ProfessionalID, o.ClientID, o.AmountCents, o.Description, o.Status, o.CreatedAt, o.UpdatedAt,
	).Scan(&o.ID)
	return translateError(err)
}

func (r *offerRepository) GetByID(ctx context.Context, id int32) (*domain.ServiceOffer, error) {
	query := `SELECT ` + offerColumns + ` FROM service_offers WHERE id = $1`
	o := &domain.ServiceOffer{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&o.ID, &o.ServiceID, &o.ProfessionalID, &o.ClientID, &o.AmountCents, &o.Description, &o.Status, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		return nil, translateError(err)
	}
	return o, nil
}

func (r *offerRepository) ListByService(ctx context.Context, serviceID int32) ([]domain.ServiceOffer, error) {
	query := `SELECT ` + offerColumns + ` FROM service_offers WHERE service_id = $1 ORDER BY created_at ASC`
	return r.list(ctx, query, serviceID)
}

func (r *offerRepository) ListByProfessional(ctx context.Context, professionalID int32) ([]domain.ServiceOffer, error) {
	query := `SELECT ` + offerColumns + ` FROM service_offers WHERE professional_id = $1 ORDER BY created_at DESC`
	return r.list(ctx, query, professionalID)
}

// UpdateStatus only moves offers that are still pending; the guard in the
// WHERE clause makes accept/reject/cancel first-write-wins.
func (r *offerRepository) UpdateStatus(ctx context.Context, id int32, to domain.OfferStatus) (*domain.ServiceOffer, error) {
	query := `UPDATE service_offers SET status = $1, updated_at = $2
	          WHERE id = $3 AND status = 'pending'
	          RETURNING ` + offerColumns
	o := &domain.ServiceOffer{}
	err := r.db.QueryRowContext(ctx, query, to, time.Now().UTC(), id).Scan(
		&o.ID, &o.ServiceID, &o.ProfessionalID, &o.ClientID, &o.AmountCents, &o.Description, &o.Status, &o.CreatedAt, &o.UpdatedAt,
	)
	if err := translateError(err); err != nil {
		if err == repository.ErrNotFound {
			if _, getErr := r.GetByID(ctx, id); getErr == nil {
				return nil, repository.ErrConflict
			}
		}
		return nil, err
	}
	return o, nil
}

func (r *offerRepository) RejectSiblings(ctx context.Context, serviceID, acceptedID int32) error {
	query := `UPDATE service_offers SET status = 'rejected', updated_at = $1
	          WHERE service_id = $2 AND id <> $3 AND status = 'pending'`
	_, err := r.db.ExecContext(ctx, query, time.Now().UTC(), serviceID, acceptedID)
	return err
}

func (r *offerRepository) list(ctx context.Context, query string, arg any) ([]domain.ServiceOffer, error) {
	rows, err := r.db.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var offers []domain.ServiceOffer
	for rows.Next() {
		var o domain.ServiceOffer
		if err := rows.Scan(&o.ID, &o.ServiceID, &o.ProfessionalID, &o.ClientID, &o.AmountCents, &o.Description, &o.Status, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, err
		}
		offers = append(offers, o)
	}
	return offers, rows.Err()
}
