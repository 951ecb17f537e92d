package mock

import (
	"context"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
)

type contextKey string

const userIDKey contextKey = "userID"

// Router routes the mock portal API under /api.
func (p *PortalService) Router() http.Handler {
	router := mux.NewRouter()
	api := router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/auth/mobile/login", p.loginHandler).Methods(http.MethodPost)
	api.HandleFunc("/auth/mobile/refresh", p.refreshHandler).Methods(http.MethodPost)
	api.HandleFunc("/auth/mobile/logout", p.authenticated(p.logoutHandler)).Methods(http.MethodPost)

	api.HandleFunc("/user/profile", p.authenticated(p.profileHandler)).Methods(http.MethodGet)
	api.HandleFunc("/user/appointments", p.authenticated(p.appointmentsHandler)).Methods(http.MethodGet)
	api.HandleFunc("/user/appointments", p.authenticated(p.bookAppointmentHandler)).Methods(http.MethodPost)
	api.HandleFunc("/documents", p.authenticated(p.documentsHandler)).Methods(http.MethodGet)
	api.HandleFunc("/documents", p.authenticated(p.uploadDocumentHandler)).Methods(http.MethodPost)
	api.HandleFunc("/documents/{id}/download", p.authenticated(p.downloadHandler)).Methods(http.MethodGet)
	api.HandleFunc("/folders", p.authenticated(p.foldersHandler)).Methods(http.MethodGet)
	api.HandleFunc("/admin/tools/{id}", p.authenticated(p.toolHandler)).Methods(http.MethodGet)
	return router
}

// authenticated rejects requests without a live access token with 401.
func (p *PortalService) authenticated(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p.countResource()
		header := r.Header.Get("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			writeError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}
		userID, err := p.verify(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			writeError(w, http.StatusUnauthorized, err.Error())
			return
		}
		next(w, r.WithContext(context.WithValue(r.Context(), userIDKey, userID)))
	}
}
