package httpserver

import (
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/Popap2/forymusic/internal/api/handlers"
	"github.com/Popap2/forymusic/internal/web"
)

// SetupRouter configures the main router: public account and catalog
// endpoints, the admin-gated track mutations, and the uploads file server.
func SetupRouter(h *handlers.Handlers, uploadsDir string) *mux.Router {
	r := mux.NewRouter()

	// Public Endpoints
	r.HandleFunc("/health", handlers.HealthCheck).Methods("GET")
	r.HandleFunc("/api/info", h.GetInfo).Methods("GET")

	addAccountRoutes(r, h)
	addTrackRoutes(r, h)

	// Locally stored audio (public)
	web.AddRoutes(r, uploadsDir, h.Logger)

	// Unknown paths and wrong methods answer JSON like the rest of the API.
	r.NotFoundHandler = jsonError(http.StatusNotFound, "Not found")
	r.MethodNotAllowedHandler = jsonError(http.StatusMethodNotAllowed, "Method not allowed")

	return r
}

// jsonError builds a fixed-status handler whose body matches the error
// shape of the API handlers.
func jsonError(code int, message string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.WriteHeader(code)
		fmt.Fprintf(w, `{"error":%q}`, message)
	})
}

// addAccountRoutes configures the listener account endpoints.
func addAccountRoutes(r *mux.Router, h *handlers.Handlers) {
	r.HandleFunc("/api/register", h.Register).Methods("POST")
	r.HandleFunc("/api/login", h.Login).Methods("POST")
	r.HandleFunc("/api/account/{id}", h.GetAccount).Methods("GET")
	r.HandleFunc("/api/account/{id}/likes", h.UpdateLikes).Methods("PUT")
	r.HandleFunc("/api/account/{id}/playlists", h.UpdatePlaylists).Methods("PUT")
}

// addTrackRoutes configures the catalog endpoints. Mutations carry the
// admin token check inside the handlers, reads are public.
func addTrackRoutes(r *mux.Router, h *handlers.Handlers) {
	r.HandleFunc("/api/tracks", h.ListTracks).Methods("GET")
	r.HandleFunc("/api/tracks", h.CreateTrack).Methods("POST")
	r.HandleFunc("/api/tracks/upload", h.UploadTrack).Methods("POST")
	r.HandleFunc("/api/tracks/{id}", h.UpdateTrack).Methods("PUT")
	r.HandleFunc("/api/tracks/{id}", h.DeleteTrack).Methods("DELETE")
}
