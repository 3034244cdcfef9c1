// filepath: internal/api/handlers/main_test.go
package handlers

import (
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"

	"github.com/Popap2/forymusic/internal/auth"
	"github.com/Popap2/forymusic/internal/config"
	"github.com/Popap2/forymusic/internal/logging"
	"github.com/Popap2/forymusic/internal/services/mocks"
)

const testAdminSecret = "sesam-open-up"

// handlerMocks bundles the mocked services behind a test Handlers instance.
type handlerMocks struct {
	Info    *mocks.MockInfoService
	Account *mocks.MockAccountService
	Track   *mocks.MockTrackService
	Upload  *mocks.MockUploadService
	Auditor *mocks.MockAuditor
}

// newTestHandlers builds a Handlers wired to fresh mocks and a fixed
// admin secret.
func newTestHandlers(t *testing.T) (*Handlers, *handlerMocks) {
	t.Helper()

	m := &handlerMocks{
		Info:    new(mocks.MockInfoService),
		Account: new(mocks.MockAccountService),
		Track:   new(mocks.MockTrackService),
		Upload:  new(mocks.MockUploadService),
		Auditor: new(mocks.MockAuditor),
	}

	cfg := &config.Config{MaxUploadSizeBytes: 8 << 20}

	h := NewHandlers(
		m.Info,
		m.Account,
		m.Track,
		m.Upload,
		auth.NewSecretAuthorizer(testAdminSecret),
		m.Auditor,
		cfg,
		logging.NewLogger("error"),
	)
	return h, m
}

// setupAPITestServer starts a test server with the same route shape the
// real router uses, so path variables and methods are exercised.
func setupAPITestServer(t *testing.T) (*httptest.Server, *handlerMocks, func()) {
	t.Helper()

	h, m := newTestHandlers(t)

	r := mux.NewRouter()
	r.HandleFunc("/api/register", h.Register).Methods("POST")
	r.HandleFunc("/api/login", h.Login).Methods("POST")
	r.HandleFunc("/api/account/{id}", h.GetAccount).Methods("GET")
	r.HandleFunc("/api/account/{id}/likes", h.UpdateLikes).Methods("PUT")
	r.HandleFunc("/api/account/{id}/playlists", h.UpdatePlaylists).Methods("PUT")
	r.HandleFunc("/api/tracks", h.ListTracks).Methods("GET")
	r.HandleFunc("/api/tracks", h.CreateTrack).Methods("POST")
	r.HandleFunc("/api/tracks/upload", h.UploadTrack).Methods("POST")
	r.HandleFunc("/api/tracks/{id}", h.UpdateTrack).Methods("PUT")
	r.HandleFunc("/api/tracks/{id}", h.DeleteTrack).Methods("DELETE")
	r.HandleFunc("/api/info", h.GetInfo).Methods("GET")
	r.HandleFunc("/health", HealthCheck).Methods("GET")

	server := httptest.NewServer(r)
	return server, m, server.Close
}
