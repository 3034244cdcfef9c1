// internal/api/handlers/health_handler.go
package handlers

import "net/http"

// HealthCheck answers while the process can serve requests. It checks
// no dependencies, a database outage still reports healthy here.
func HealthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK\n"))
}
