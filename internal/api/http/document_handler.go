package http

import (
	"io"
	"net/http"

	"github.com/gorilla/mux"

	"servigo-backend/internal/domain"
	"servigo-backend/internal/service"
)

type DocumentHandler struct {
	verifySvc      service.VerificationService
	maxUploadBytes int64
}

func NewDocumentHandler(verifySvc service.VerificationService, maxUploadBytes int64) *DocumentHandler {
	return &DocumentHandler{verifySvc: verifySvc, maxUploadBytes: maxUploadBytes}
}

type uploadResponse struct {
	URL string `json:"url"`
}

// Upload accepts a multipart form with a single "file" part and stores it
// under the slot named in the path.
func (h *DocumentHandler) Upload(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFrom(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "unauthenticated"})
		return
	}

	slot := domain.DocumentSlot(mux.Vars(r)["slot"])
	if !domain.ValidSlot(slot) {
		writeBadRequest(w, "unknown document slot")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)
	if err := r.ParseMultipartForm(h.maxUploadBytes); err != nil {
		writeBadRequest(w, "invalid multipart form or file too large")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeBadRequest(w, "missing file part")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		writeBadRequest(w, "failed to read file")
		return
	}

	contentType := header.Header.Get("Content-Type")
	url, err := h.verifySvc.UploadVerificationDocument(r.Context(), claims.UserID, slot, data, header.Filename, contentType)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, uploadResponse{URL: url})
}

func (h *DocumentHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFrom(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "unauthenticated"})
		return
	}

	docs, err := h.verifySvc.ListUserDocuments(r.Context(), claims.UserID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, docs)
}
