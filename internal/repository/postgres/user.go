package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"servigo-backend/internal/domain"
	"servigo-backend/internal/logger"
	"servigo-backend/internal/repository"
)

const userColumns = `id, email, full_name, phone, user_type, status, verification_status,
	is_active, is_admin, rejection_reason, dni_front_url, dni_back_url, certification_url,
	password_hash, created_at, updated_at`

type userRepository struct {
	db DBTX
}

func NewUserRepository(db DBTX) repository.UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, u *domain.User) error {
	query := `INSERT INTO users (email, full_name, phone, user_type, status, verification_status, is_active, is_admin, password_hash, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11) RETURNING id`
	now := time.Now().UTC()
	u.CreatedAt = now
	u.UpdatedAt = now
	err := r.db.QueryRowContext(ctx, query,
		u.Email, u.FullName, u.Phone, u.UserType, u.Status, u.VerificationStatus,
		u.IsActive, u.IsAdmin, u.PasswordHash, u.CreatedAt, u.UpdatedAt,
	).Scan(&u.ID)
	return translateError(err)
}

func (r *userRepository) GetByID(ctx context.Context, id int32) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return r.scanOne(r.db.QueryRowContext(ctx, query, id))
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE LOWER(email) = LOWER($1)`
	return r.scanOne(r.db.QueryRowContext(ctx, query, email))
}

func (r *userRepository) ListPending(ctx context.Context) ([]domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE status = 'pending' ORDER BY created_at ASC`
	logger.DatabaseCall("SELECT", "users pending queue")
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		logger.DatabaseResult("SELECT", 0, err)
		return nil, err
	}
	defer rows.Close()
	users, err := r.scanMany(rows)
	logger.DatabaseResult("SELECT", int64(len(users)), err)
	return users, err
}

func (r *userRepository) ListPendingBefore(ctx context.Context, cutoff time.Time) ([]domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE status = 'pending' AND created_at < $1 ORDER BY created_at ASC`
	rows, err := r.db.QueryContext(ctx, query, cutoff)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return r.scanMany(rows)
}

func (r *userRepository) ListAdmins(ctx context.Context) ([]domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE is_admin = TRUE`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return r.scanMany(rows)
}

// UpdateStatus carries the pending guard in the WHERE clause: the row moves
// out of pending exactly once, regardless of how many admins race on it.
func (r *userRepository) UpdateStatus(ctx context.Context, id int32, status domain.UserStatus, verification domain.VerificationStatus, isActive bool, reason *string) (*domain.User, error) {
	query := `UPDATE users
	          SET status = $1, verification_status = $2, is_active = $3, rejection_reason = $4, updated_at = $5
	          WHERE id = $6 AND status = 'pending'
	          RETURNING ` + userColumns
	logger.DatabaseCall("UPDATE", "users status transition", "userID", id, "status", status)
	u, err := r.scanOne(r.db.QueryRowContext(ctx, query, status, verification, isActive, reason, time.Now().UTC(), id))
	if err == repository.ErrNotFound {
		// Distinguish a missing row from a row that already left pending.
		if _, getErr := r.GetByID(ctx, id); getErr == nil {
			return nil, repository.ErrConflict
		}
		return nil, repository.ErrNotFound
	}
	if err != nil {
		logger.DatabaseResult("UPDATE", 0, err, "userID", id)
		return nil, err
	}
	logger.DatabaseResult("UPDATE", 1, nil, "userID", id, "status", status)
	return u, nil
}

func (r *userRepository) SetDocumentURL(ctx context.Context, userID int32, slot domain.DocumentSlot, url string) error {
	var column string
	switch slot {
	case domain.SlotIDFront:
		column = "dni_front_url"
	case domain.SlotIDBack:
		column = "dni_back_url"
	case domain.SlotCertification:
		column = "certification_url"
	case domain.SlotOther:
		// "other" documents live only in the documents table.
		return nil
	default:
		return fmt.Errorf("unknown document slot %q", slot)
	}
	query := fmt.Sprintf(`UPDATE users SET %s = $1, updated_at = $2 WHERE id = $3`, column)
	res, err := r.db.ExecContext(ctx, query, url, time.Now().UTC(), userID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *userRepository) scanOne(row *sql.Row) (*domain.User, error) {
	u := &domain.User{}
	err := row.Scan(
		&u.ID, &u.Email, &u.FullName, &u.Phone, &u.UserType, &u.Status, &u.VerificationStatus,
		&u.IsActive, &u.IsAdmin, &u.RejectionReason, &u.DNIFrontURL, &u.DNIBackURL, &u.CertificationURL,
		&u.PasswordHash, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, translateError(err)
	}
	return u, nil
}

func (r *userRepository) scanMany(rows *sql.Rows) ([]domain.User, error) {
	var users []domain.User
	for rows.Next() {
		var u domain.User
		if err := rows.Scan(
			&u.ID, &u.Email, &u.FullName, &u.Phone, &u.UserType, &u.Status, &u.VerificationStatus,
			&u.IsActive, &u.IsAdmin, &u.RejectionReason, &u.DNIFrontURL, &u.DNIBackURL, &u.CertificationURL,
			&u.PasswordHash, &u.CreatedAt, &u.UpdatedAt,
		); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}
