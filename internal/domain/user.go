package domain

import "time"

type UserType string

const (
	UserTypeClient   UserType = "client"
	UserTypeProvider UserType = "provider"
)

// UserStatus is the review-queue state of an account.
// Transitions are pending -> approved or pending -> rejected; both terminal.
type UserStatus string

const (
	UserStatusPending  UserStatus = "pending"
	UserStatusApproved UserStatus = "approved"
	UserStatusRejected UserStatus = "rejected"
)

// VerificationStatus is the field the mobile gate reads. The admin surface
// only ever writes verified/rejected; in_review and banned are reserved for
// back-office tooling that sets them directly.
type VerificationStatus string

const (
	VerificationPending  VerificationStatus = "pending"
	VerificationInReview VerificationStatus = "in_review"
	VerificationVerified VerificationStatus = "verified"
	VerificationRejected VerificationStatus = "rejected"
	VerificationBanned   VerificationStatus = "banned"
)

// DefaultRejectionReason is stored when an admin rejects without giving one.
const DefaultRejectionReason = "Documentación rechazada"

type User struct {
	ID                 int32              `json:"id"`
	Email              string             `json:"email"`
	FullName           string             `json:"full_name"`
	Phone              string             `json:"phone"`
	UserType           UserType           `json:"user_type"`
	Status             UserStatus         `json:"status"`
	VerificationStatus VerificationStatus `json:"verification_status"`
	IsActive           bool               `json:"is_active"`
	IsAdmin            bool               `json:"is_admin"`
	RejectionReason    *string            `json:"rejection_reason,omitempty"`
	DNIFrontURL        *string            `json:"dni_front_url,omitempty"`
	DNIBackURL         *string            `json:"dni_back_url,omitempty"`
	CertificationURL   *string            `json:"certification_url,omitempty"`
	PasswordHash       string             `json:"-"`
	CreatedAt          time.Time          `json:"created_at"`
	UpdatedAt          time.Time          `json:"updated_at"`
}

// IsVerified reports whether the account has passed review and may use the
// full application (the mobile gate check).
func (u *User) IsVerified() bool {
	return u.Status == UserStatusApproved && u.IsActive
}
