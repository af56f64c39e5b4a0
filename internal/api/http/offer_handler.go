package http

import (
	"net/http"
	"strconv"

	"servigo-backend/internal/domain"
	"servigo-backend/internal/service"
)

type OfferHandler struct {
	offerSvc service.OfferService
}

func NewOfferHandler(offerSvc service.OfferService) *OfferHandler {
	return &OfferHandler{offerSvc: offerSvc}
}

type createOfferRequest struct {
	ServiceID   int32  `json:"service_id"`
	ClientID    int32  `json:"client_id"`
	AmountCents int64  `json:"amount_cents"`
	Description string `json:"description"`
}

func (h *OfferHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFrom(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "unauthenticated"})
		return
	}

	var req createOfferRequest
	if err := decodeBody(r, &req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}

	offer, err := h.offerSvc.CreateOffer(r.Context(), claims.UserID, req.ServiceID, req.ClientID, req.AmountCents, req.Description)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, offer)
}

func (h *OfferHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	offer, err := h.offerSvc.GetOffer(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, offer)
}

func (h *OfferHandler) List(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFrom(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "unauthenticated"})
		return
	}

	var (
		offers []domain.ServiceOffer
		err    error
	)
	if raw := r.URL.Query().Get("service_id"); raw != "" {
		serviceID, parseErr := strconv.ParseInt(raw, 10, 32)
		if parseErr != nil {
			writeBadRequest(w, "invalid service_id")
			return
		}
		offers, err = h.offerSvc.ListOffersByService(r.Context(), int32(serviceID))
	} else {
		offers, err = h.offerSvc.ListMyOffers(r.Context(), claims.UserID)
	}
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if offers == nil {
		offers = []domain.ServiceOffer{}
	}
	writeJSON(w, http.StatusOK, offers)
}

func (h *OfferHandler) Accept(w http.ResponseWriter, r *http.Request) {
	h.resolve(w, r, domain.OfferStatusAccepted)
}

func (h *OfferHandler) Reject(w http.ResponseWriter, r *http.Request) {
	h.resolve(w, r, domain.OfferStatusRejected)
}

func (h *OfferHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFrom(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "unauthenticated"})
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	offer, err := h.offerSvc.CancelOffer(r.Context(), claims.UserID, id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, offer)
}

func (h *OfferHandler) resolve(w http.ResponseWriter, r *http.Request, to domain.OfferStatus) {
	claims, ok := claimsFrom(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "unauthenticated"})
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var (
		offer *domain.ServiceOffer
		err   error
	)
	if to == domain.OfferStatusAccepted {
		offer, err = h.offerSvc.AcceptOffer(r.Context(), claims.UserID, id)
	} else {
		offer, err = h.offerSvc.RejectOffer(r.Context(), claims.UserID, id)
	}
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, offer)
}
