package httpx

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
)

// RoutePattern devuelve el patrón de chi que atendió el request
// (p.ej. /api/products/{id}) o "unknown" si no hubo match.
// Solo está completo después de que el router despachó el request.
func RoutePattern(r *http.Request) string {
	if routeContext := chi.RouteContext(r.Context()); routeContext != nil {
		if pattern := strings.TrimSpace(routeContext.RoutePattern()); pattern != "" {
			return pattern
		}
	}
	return "unknown"
}
