package missions

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/CovertCollective/CC-Backend/internal/middleware"
)

// SetupRoutes returns the mission routes, mounted at /api/missions. Listing
// is open to any authenticated member; mutations are admin-only.
func (h *Handler) SetupRoutes(verifier middleware.TokenVerifier) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.AuthMiddleware(verifier))

	r.Get("/", h.ListHandler)

	r.Group(func(r chi.Router) {
		r.Use(middleware.AdminMiddleware)
		r.Post("/", h.CreateHandler)
		r.Put("/{id}", h.UpdateHandler)
		r.Delete("/{id}", h.DeleteHandler)
	})

	return r
}
