package domain

import "time"

type OfferStatus string

const (
	OfferStatusPending   OfferStatus = "pending"
	OfferStatusAccepted  OfferStatus = "accepted"
	OfferStatusRejected  OfferStatus = "rejected"
	OfferStatusCancelled OfferStatus = "cancelled"
)

// ServiceOffer is a professional's bid on a client's service request.
// Accept/reject/cancel only apply while the offer is still pending.
type ServiceOffer struct {
	ID             int32       `json:"id"`
	ServiceID      int32       `json:"service_id"`
	ProfessionalID int32       `json:"professional_id"`
	ClientID       int32       `json:"client_id"`
	AmountCents    int64       `json:"amount_cents"`
	Description    string      `json:"description"`
	Status         OfferStatus `json:"status"`
	CreatedAt      time.Time   `json:"created_at"`
	UpdatedAt      time.Time   `json:"updated_at"`
}
