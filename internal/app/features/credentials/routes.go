package credentials

import "github.com/go-chi/chi/v5"

// Routes wires the credential endpoints onto a subrouter.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Post("/signup", h.HandleSignup)
	r.Post("/signin", h.HandleSignin)
	r.Post("/signout", h.HandleSignout)
	return r
}
