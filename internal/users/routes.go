package users

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/CovertCollective/CC-Backend/internal/middleware"
)

// SetupRoutes returns the admin-gated user management routes, mounted at
// /api/users.
func (h *Handler) SetupRoutes(verifier middleware.TokenVerifier) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.AuthMiddleware(verifier))
	r.Use(middleware.AdminMiddleware)

	r.Get("/", h.ListHandler)
	r.Post("/", h.CreateHandler)
	r.Put("/{id}", h.UpdateHandler)
	r.Delete("/{id}", h.DeleteHandler)

	return r
}

// SetupProfileRoutes returns the authenticated self-service routes, mounted
// at /api/user.
func (h *Handler) SetupProfileRoutes(verifier middleware.TokenVerifier) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.AuthMiddleware(verifier))

	r.Get("/profile", h.ProfileHandler)

	return r
}
