package api

import (
	"log/slog"
	"net/http"

	"ancine-api/internal/logging"

	"github.com/goccy/go-json"
)

// Pagination is the cursor envelope returned alongside every page.
type Pagination struct {
	TotalFilteredCount int64 `json:"total_filtered_count"`
	PerPage            int   `json:"per_page"`
	NextCursor         any   `json:"next_cursor"`
	HasNext            bool  `json:"has_next"`
}

// Envelope wraps one page of records with its pagination state.
type Envelope struct {
	Data       []map[string]any `json:"data"`
	Pagination Pagination       `json:"pagination"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// writeError logs the full failure with the request ID and sends the client
// the sanitized status/message pair.
func writeError(r *http.Request, w http.ResponseWriter, err error) {
	status, message := statusForError(err)
	logger := logging.FromContext(r.Context())
	level := slog.LevelWarn
	if status >= 500 {
		level = slog.LevelError
	}
	logger.Log(r.Context(), level, "request failed",
		slog.Int("status", status),
		slog.String("error", err.Error()),
	)
	writeJSON(w, status, map[string]string{"error": message})
}
