package cart

import (
	"github.com/dalemusser/storefront/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes mounts the cart routes. Every route requires a signed-in
// session. Typically: r.Mount("/cart", cart.Routes(h))
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(auth.RequireSignedIn)

		pr.Post("/add", h.HandleAdd)
		pr.Put("/update", h.HandleUpdate)
		pr.Delete("/delete", h.HandleRemove)
		pr.Get("/get", h.HandleGet)
	})

	return r
}
