package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/cloo-solutions/chairside/internal/api"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	db Pinger
}

// NewHealthHandler reports liveness. db may be nil, in which case the
// database is not checked.
func NewHealthHandler(db Pinger) *HealthHandler {
	return &HealthHandler{db: db}
}

func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	if h.db != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := h.db.Ping(ctx); err != nil {
			api.Error(w, http.StatusServiceUnavailable, "database unavailable")
			return
		}
	}
	api.Success(w, http.StatusOK, map[string]string{"status": "ok"})
}
