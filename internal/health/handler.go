package health

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/Lelo88/product-api-golang/internal/httpx"
	"github.com/Lelo88/product-api-golang/internal/logger"
)

const readyTimeout = 2 * time.Second

// Pinger es lo mínimo que /ready necesita del store.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Handler encapsula endpoints de health.
type Handler struct {
	db Pinger
}

// New crea un handler de health. db puede ser nil: /ready lo reporta.
func New(db Pinger) *Handler {
	return &Handler{db: db}
}

// Health indica si el proceso está vivo.
// NO chequea base de datos. Eso va en /ready.
func (handler *Handler) Health(w http.ResponseWriter, r *http.Request) {
	httpx.OK(w, r, http.StatusOK, map[string]any{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

// Ready indica si la app puede atender tráfico (store alcanzable).
func (handler *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	if handler.db == nil {
		httpx.Fail(w, r, http.StatusServiceUnavailable, "database pool not configured")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), readyTimeout)
	defer cancel()

	if err := handler.db.Ping(ctx); err != nil {
		logger.FromContext(r.Context()).Warn("readiness check failed", zap.Error(err))
		httpx.Fail(w, r, http.StatusServiceUnavailable, "database is not reachable")
		return
	}

	httpx.OK(w, r, http.StatusOK, map[string]any{"status": "ready"})
}
