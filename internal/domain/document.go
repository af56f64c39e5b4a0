package domain

import "time"

// DocumentSlot is the logical category of an uploaded verification file.
// A user has at most one current document per slot; re-uploads supersede.
type DocumentSlot string

const (
	SlotIDFront       DocumentSlot = "id_front"
	SlotIDBack        DocumentSlot = "id_back"
	SlotCertification DocumentSlot = "certification"
	SlotOther         DocumentSlot = "other"
)

// ValidSlot reports whether s is one of the known document slots.
func ValidSlot(s DocumentSlot) bool {
	switch s {
	case SlotIDFront, SlotIDBack, SlotCertification, SlotOther:
		return true
	}
	return false
}

type DocumentState string

const (
	DocumentPending  DocumentState = "pending"
	DocumentApproved DocumentState = "approved"
	DocumentRejected DocumentState = "rejected"
)

type Document struct {
	ID         int32         `json:"id"`
	UserID     int32         `json:"user_id"`
	Slot       DocumentSlot  `json:"slot"`
	URL        string        `json:"url"`
	State      DocumentState `json:"state"`
	ReviewerID *int32        `json:"reviewer_id,omitempty"`
	ReviewedAt *time.Time    `json:"reviewed_at,omitempty"`
	UploadedAt time.Time     `json:"uploaded_at"`
}
