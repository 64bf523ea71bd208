package docs

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// RegisterRoutes monta /docs (Swagger UI) y /docs/openapi.yaml.
func RegisterRoutes(r chi.Router) {
	// /docs sin slash redirige para que las rutas relativas de la UI resuelvan.
	r.Method(http.MethodGet, "/docs", http.RedirectHandler("/docs/", http.StatusMovedPermanently))

	r.Route("/docs", func(r chi.Router) {
		r.Get("/", SwaggerUIHandler())
		r.Get("/openapi.yaml", OpenAPIHandler())
	})
}
