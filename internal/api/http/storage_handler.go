package http

import (
	"io"
	"mime"
	"net/http"
	"path/filepath"

	"github.com/gorilla/mux"

	"servigo-backend/internal/storage"
)

// StorageHandler serves files written by the mock storage backend. It is
// only mounted when storage.type is "mock"; in production documents are
// public GCS URLs and never pass through this server.
type StorageHandler struct {
	mock *storage.MockStorage
}

func NewStorageHandler(mock *storage.MockStorage) *StorageHandler {
	return &StorageHandler{mock: mock}
}

func (h *StorageHandler) Download(w http.ResponseWriter, r *http.Request) {
	key := mux.Vars(r)["key"]
	if key == "" {
		http.Error(w, "Missing key", http.StatusBadRequest)
		return
	}

	file, err := h.mock.Open(key)
	if err != nil {
		http.Error(w, "File not found", http.StatusNotFound)
		return
	}
	defer file.Close()

	contentType := mime.TypeByExtension(filepath.Ext(key))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	w.Header().Set("Content-Type", contentType)
	if _, err := io.Copy(w, file); err != nil {
		// Response already started; nothing sensible left to send.
		return
	}
}
