package health

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	applog "github.com/janisto/travel-profiles/internal/platform/logging"
)

const pingTimeout = 2 * time.Second

// Response is the payload for the health endpoint.
type Response struct {
	Status string `json:"status"`
}

// Pinger reports whether a dependency is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Handler returns a plain HTTP handler for the health check endpoint. It answers
// 503 when db cannot be reached. A nil db always reports healthy.
func Handler(db Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if db != nil {
			ctx, cancel := context.WithTimeout(r.Context(), pingTimeout)
			defer cancel()
			if err := db.Ping(ctx); err != nil {
				applog.LogError(r.Context(), "health check failed", err)
				w.WriteHeader(http.StatusServiceUnavailable)
				_ = json.NewEncoder(w).Encode(Response{Status: "unavailable"})
				return
			}
		}
		_ = json.NewEncoder(w).Encode(Response{Status: "healthy"})
	}
}
