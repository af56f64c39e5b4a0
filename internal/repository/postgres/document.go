package postgres

import (
	"context"
	"time"

	"servigo-backend/internal/domain"
	"servigo-backend/internal/repository"
)

type documentRepository struct {
	db DBTX
}

func NewDocumentRepository(db DBTX) repository.DocumentRepository {
	return &documentRepository{db: db}
}

func (r *documentRepository) Create(ctx context.Context, d *domain.Document) error {
	query := `INSERT INTO documents (user_id, slot, url, state, uploaded_at)
	          VALUES ($1, $2, $3, $4, $5) RETURNING id`
	d.UploadedAt = time.Now().UTC()
	err := r.db.QueryRowContext(ctx, query, d.UserID, d.Slot, d.URL, d.State, d.UploadedAt).Scan(&d.ID)
	return translateError(err)
}

func (r *documentRepository) GetByID(ctx context.Context, id int32) (*domain.Document, error) {
	d := &domain.Document{}
	query := `SELECT id, user_id, slot, url, state, reviewer_id, reviewed_at, uploaded_at
	          FROM documents WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&d.ID, &d.UserID, &d.Slot, &d.URL, &d.State, &d.ReviewerID, &d.ReviewedAt, &d.UploadedAt,
	)
	if err != nil {
		return nil, translateError(err)
	}
	return d, nil
}

func (r *documentRepository) ListByUser(ctx context.Context, userID int32) ([]domain.Document, error) {
	query := `SELECT id, user_id, slot, url, state, reviewer_id, reviewed_at, uploaded_at
	          FROM documents WHERE user_id = $1 ORDER BY uploaded_at DESC`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var docs []domain.Document
	for rows.Next() {
		var d domain.Document
		if err := rows.Scan(&d.ID, &d.UserID, &d.Slot, &d.URL, &d.State, &d.ReviewerID, &d.ReviewedAt, &d.UploadedAt); err != nil {
			return nil, err
		}
		docs = append(docs, d)
	}
	return docs, rows.Err()
}

func (r *documentRepository) MarkReviewed(ctx context.Context, userID int32, state domain.DocumentState, reviewerID int32) error {
	query := `UPDATE documents SET state = $1, reviewer_id = $2, reviewed_at = $3
	          WHERE user_id = $4 AND state = 'pending'`
	_, err := r.db.ExecContext(ctx, query, state, reviewerID, time.Now().UTC(), userID)
	return err
}
