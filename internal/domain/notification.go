package domain

import "time"

type NotificationKind string

const (
	NotificationAccountApproved NotificationKind = "account_approved"
	NotificationAccountRejected NotificationKind = "account_rejected"
	NotificationOfferAccepted   NotificationKind = "offer_accepted"
	NotificationOfferRejected   NotificationKind = "offer_rejected"
	NotificationReviewReminder  NotificationKind = "review_reminder"
)

type NotificationStatus string

const (
	NotificationPending NotificationStatus = "pending"
	NotificationSent    NotificationStatus = "sent"
	NotificationFailed  NotificationStatus = "failed"
)

// Notification is an outbox row. It is written in the same database
// transaction as the state change it announces and delivered later by the
// dispatch job, so a crashed email provider never rolls back a review.
type Notification struct {
	ID        int32              `json:"id"`
	UserID    int32              `json:"user_id"`
	Kind      NotificationKind   `json:"kind"`
	Title     string             `json:"title"`
	Body      string             `json:"body"`
	Status    NotificationStatus `json:"status"`
	Attempts  int32              `json:"attempts"`
	LastError *string            `json:"last_error,omitempty"`
	IsRead    bool               `json:"is_read"`
	CreatedAt time.Time          `json:"created_at"`
	SentAt    *time.Time         `json:"sent_at,omitempty"`
}
