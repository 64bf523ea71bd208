package products

import "github.com/go-chi/chi/v5"

// RegisterRoutes registra las rutas de products en el router.
func RegisterRoutes(route chi.Router, handler *Handler) {
	route.Route("/api/products", func(route chi.Router) {
		route.Get("/", handler.List)
		route.Post("/", handler.Create)
		route.Get("/{id}", handler.GetByID)
		route.Put("/{id}", handler.Replace)
		route.Patch("/{id}", handler.ToggleAvailability)
		route.Delete("/{id}", handler.Delete)
	})
}
