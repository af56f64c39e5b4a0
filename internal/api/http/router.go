package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"servigo-backend/internal/security"
)

// Handlers bundles the HTTP surface dependencies for routing.
type Handlers struct {
	Auth         *AuthHandler
	User         *UserHandler
	Document     *DocumentHandler
	Admin        *AdminHandler
	Offer        *OfferHandler
	Notification *NotificationHandler
	MockStorage  *StorageHandler // nil unless mock storage is configured
	TokenManager security.TokenManager
}

// NewRouter mounts the full API.
func NewRouter(h Handlers) *mux.Router {
	r := mux.NewRouter()
	authMW := NewAuthMiddleware(h.TokenManager)

	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)

	api := r.PathPrefix("/api/v1").Subrouter()

	// Public
	api.HandleFunc("/auth/register", h.Auth.Register).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", h.Auth.Login).Methods(http.MethodPost)
	api.HandleFunc("/auth/refresh", h.Auth.Refresh).Methods(http.MethodPost)

	if h.MockStorage != nil {
		api.HandleFunc("/files/{key:.+}", h.MockStorage.Download).Methods(http.MethodGet)
	}

	// Authenticated
	authed := api.NewRoute().Subrouter()
	authed.Use(authMW.Authenticate)
	authed.HandleFunc("/me", h.User.Me).Methods(http.MethodGet)
	authed.HandleFunc("/me/verification", h.User.VerificationState).Methods(http.MethodGet)
	authed.HandleFunc("/me/documents", h.Document.ListMine).Methods(http.MethodGet)
	authed.HandleFunc("/me/documents/{slot}", h.Document.Upload).Methods(http.MethodPost)
	authed.HandleFunc("/me/notifications", h.Notification.List).Methods(http.MethodGet)
	authed.HandleFunc("/me/notifications/{id}/read", h.Notification.MarkRead).Methods(http.MethodPost)

	authed.HandleFunc("/offers", h.Offer.Create).Methods(http.MethodPost)
	authed.HandleFunc("/offers", h.Offer.List).Methods(http.MethodGet)
	authed.HandleFunc("/offers/{id}", h.Offer.Get).Methods(http.MethodGet)
	authed.HandleFunc("/offers/{id}/accept", h.Offer.Accept).Methods(http.MethodPost)
	authed.HandleFunc("/offers/{id}/reject", h.Offer.Reject).Methods(http.MethodPost)
	authed.HandleFunc("/offers/{id}/cancel", h.Offer.Cancel).Methods(http.MethodPost)

	// Admin review surface
	admin := authed.PathPrefix("/admin").Subrouter()
	admin.Use(authMW.RequireAdmin)
	admin.HandleFunc("/users/pending", h.Admin.ListPending).Methods(http.MethodGet)
	admin.HandleFunc("/users/{id}", h.Admin.GetUser).Methods(http.MethodGet)
	admin.HandleFunc("/users/{id}/documents", h.Admin.ListUserDocuments).Methods(http.MethodGet)
	admin.HandleFunc("/users/{id}/approve", h.Admin.Approve).Methods(http.MethodPost)
	admin.HandleFunc("/users/{id}/reject", h.Admin.Reject).Methods(http.MethodPost)

	return r
}
