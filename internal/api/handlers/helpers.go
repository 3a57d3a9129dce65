package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/KingAbe1/wp-next-blog/internal/wordpress"
)

// maxPerPage is the largest page size WordPress accepts.
const maxPerPage = 100

// writeJSON encodes v as JSON and writes it to the response with the given
// HTTP status code. Content-Type is always set to application/json.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		// Headers are already sent; the status cannot change any more.
		slog.Error("failed to encode response", "error", err)
	}
}

// writeError writes a JSON error response with the given HTTP status code.
// The response body is {"error": "message"}.
func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}

// writeFetchError maps a content fetch failure to a response:
//
//	not found              → 404
//	base URL not set       → 503
//	upstream unreachable,
//	non-2xx or not JSON    → 502
//
// Anything else is a 500.
func writeFetchError(w http.ResponseWriter, err error, what string) {
	var (
		transportErr *wordpress.TransportError
		statusErr    *wordpress.HTTPStatusError
		formatErr    *wordpress.FormatError
	)

	switch {
	case wordpress.IsNotFound(err):
		writeError(w, http.StatusNotFound, what+" not found")
	case errors.Is(err, wordpress.ErrConfiguration):
		slog.Error("content source not configured", "error", err)
		writeError(w, http.StatusServiceUnavailable,
			"WordPress API URL is not configured. Set NEXT_PUBLIC_BASE_URL or WORDPRESS_API_URL.")
	case errors.As(err, &formatErr):
		slog.Error("content source returned an unexpected format", "what", what, "error", err)
		writeError(w, http.StatusBadGateway, "WordPress API returned a non-JSON response. Check the configured base URL.")
	case errors.As(err, &statusErr):
		slog.Error("content source returned an error status", "what", what, "status", statusErr.StatusCode, "error", err)
		writeError(w, http.StatusBadGateway,
			fmt.Sprintf("Failed to fetch %s: %d %s", what, statusErr.StatusCode, statusErr.Status))
	case errors.As(err, &transportErr):
		slog.Error("content source unreachable", "what", what, "error", err)
		writeError(w, http.StatusBadGateway, "Failed to reach the WordPress API")
	default:
		slog.Error("failed to fetch content", "what", what, "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to fetch "+what)
	}
}

// queryInt reads a positive integer query parameter. It returns def when the
// parameter is absent and an error when it is malformed or outside
// [1, upper]. An upper of 0 means no bound.
func queryInt(r *http.Request, name string, def, upper int) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return def, nil
	}

	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %q parameter: %q is not a number", name, raw)
	}
	if n < 1 || (upper > 0 && n > upper) {
		if upper > 0 {
			return 0, fmt.Errorf("invalid %q parameter: must be between 1 and %d", name, upper)
		}
		return 0, fmt.Errorf("invalid %q parameter: must be >= 1", name)
	}
	return n, nil
}

// queryIDs reads a comma-separated list of ids such as "3,7".
func queryIDs(r *http.Request, name string) ([]int64, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return nil, nil
	}

	var ids []int64
	for _, part := range strings.Split(raw, ",") {
		id, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
		if err != nil || id < 1 {
			return nil, fmt.Errorf("invalid %q parameter: %q is not an id", name, part)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// slugParam extracts a slug from a chi URL parameter.
func slugParam(r *http.Request, param string) (string, error) {
	slug := strings.TrimSpace(chi.URLParam(r, param))
	if slug == "" {
		return "", fmt.Errorf("missing URL parameter %q", param)
	}
	return slug, nil
}
