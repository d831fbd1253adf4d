package products

import (
	"github.com/dalemusser/storefront/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes mounts the catalog routes. Reads are public; mutations require
// an admin session. Typically: r.Mount("/product", products.Routes(h))
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.HandleList)
	r.Get("/{id}", h.HandleGet)

	r.Group(func(pr chi.Router) {
		pr.Use(auth.RequireRole("admin"))
		pr.Post("/", h.HandleCreate)
		pr.Put("/{id}", h.HandleUpdate)
		pr.Delete("/{id}", h.HandleDelete)
	})

	return r
}
