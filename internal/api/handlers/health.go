package handlers

import "net/http"

// Health handles GET /healthz. It reports liveness only and does not touch
// the WordPress API.
func Health() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
