package http

import (
	"net/http"

	"servigo-backend/internal/service"
)

// UserHandler serves the authenticated user's own profile and the mobile
// gate read.
type UserHandler struct {
	verifySvc service.VerificationService
}

func NewUserHandler(verifySvc service.VerificationService) *UserHandler {
	return &UserHandler{verifySvc: verifySvc}
}

func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFrom(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "unauthenticated"})
		return
	}

	user, err := h.verifySvc.GetUser(r.Context(), claims.UserID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

type verificationStateResponse struct {
	Status             string  `json:"status"`
	VerificationStatus string  `json:"verification_status"`
	IsActive           bool    `json:"is_active"`
	RejectionReason    *string `json:"rejection_reason,omitempty"`
}

// VerificationState is the pure read the mobile gate screen branches on:
// anything other than an approved, active account keeps the blocking
// "pending approval" screen up.
func (h *UserHandler) VerificationState(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFrom(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "unauthenticated"})
		return
	}

	user, err := h.verifySvc.GetUser(r.Context(), claims.UserID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, verificationStateResponse{
		Status:             string(user.Status),
		VerificationStatus: string(user.VerificationStatus),
		IsActive:           user.IsActive,
		RejectionReason:    user.RejectionReason,
	})
}
