package suggestions

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/CovertCollective/CC-Backend/internal/middleware"
)

// SetupRoutes returns the suggestion routes, mounted at /api/suggestions.
// Any authenticated member may submit; listing and deletion are admin-only.
func (h *Handler) SetupRoutes(verifier middleware.TokenVerifier) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.AuthMiddleware(verifier))

	r.Post("/", h.CreateHandler)

	r.Group(func(r chi.Router) {
		r.Use(middleware.AdminMiddleware)
		r.Get("/", h.ListHandler)
		r.Delete("/{id}", h.DeleteHandler)
	})

	return r
}
