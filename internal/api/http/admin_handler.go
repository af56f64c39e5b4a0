package http

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"servigo-backend/internal/domain"
	"servigo-backend/internal/service"
)

// AdminHandler is the review back-office surface: the pending queue and the
// approve/reject actions.
type AdminHandler struct {
	verifySvc service.VerificationService
}

func NewAdminHandler(verifySvc service.VerificationService) *AdminHandler {
	return &AdminHandler{verifySvc: verifySvc}
}

func (h *AdminHandler) ListPending(w http.ResponseWriter, r *http.Request) {
	users, err := h.verifySvc.ListPendingUsers(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if users == nil {
		users = []domain.User{}
	}
	writeJSON(w, http.StatusOK, users)
}

func (h *AdminHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	user, err := h.verifySvc.GetUser(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (h *AdminHandler) ListUserDocuments(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	docs, err := h.verifySvc.ListUserDocuments(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, docs)
}

func (h *AdminHandler) Approve(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	claims, _ := claimsFrom(r.Context())

	user, err := h.verifySvc.ApproveUser(r.Context(), id, claims.UserID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

type rejectRequest struct {
	Reason string `json:"reason"`
}

// Reject requires a free-text reason at this boundary; the service-level
// default only backstops non-HTTP callers.
func (h *AdminHandler) Reject(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	claims, _ := claimsFrom(r.Context())

	var req rejectRequest
	if err := decodeBody(r, &req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Reason) == "" {
		writeBadRequest(w, "a rejection reason is required")
		return
	}

	user, err := h.verifySvc.UpdateUserStatus(r.Context(), id, domain.UserStatusRejected, req.Reason, claims.UserID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func pathID(w http.ResponseWriter, r *http.Request) (int32, bool) {
	raw := mux.Vars(r)["id"]
	id, err := strconv.ParseInt(raw, 10, 32)
	if err != nil || id <= 0 {
		writeBadRequest(w, "invalid id")
		return 0, false
	}
	return int32(id), true
}
