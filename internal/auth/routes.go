package auth

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// SetupRoutes returns the public authentication routes, mounted at
// /api/auth.
func (h *Handler) SetupRoutes() http.Handler {
	r := chi.NewRouter()

	r.Post("/login", h.LoginHandler)

	return r
}
