package main

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"

	"github.com/CovertCollective/CC-Backend/internal/auth"
	"github.com/CovertCollective/CC-Backend/internal/config"
	"github.com/CovertCollective/CC-Backend/internal/httputil"
	"github.com/CovertCollective/CC-Backend/internal/middleware"
	"github.com/CovertCollective/CC-Backend/internal/missions"
	"github.com/CovertCollective/CC-Backend/internal/store"
	"github.com/CovertCollective/CC-Backend/internal/suggestions"
	"github.com/CovertCollective/CC-Backend/internal/token"
	"github.com/CovertCollective/CC-Backend/internal/users"
)

func HealthHandler(w http.ResponseWriter, r *http.Request) {
	httputil.RespondJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"message": "Covert Collective backend is running",
	})
}

func main() {
	_ = godotenv.Load(".env.local")

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config: ", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal("Invalid config: ", err)
	}

	backend, err := store.NewFileBackend(cfg.DataDir)
	if err != nil {
		log.Fatal("Failed to create data directory: ", err)
	}

	userStore := store.NewCollection[users.User](backend, "users")
	missionStore := store.NewCollection[missions.Mission](backend, "missions")
	suggestionStore := store.NewCollection[suggestions.Suggestion](backend, "suggestions")

	if err := users.Bootstrap(userStore, cfg.AdminEmail, cfg.AdminPassword); err != nil {
		log.Fatal("Failed to bootstrap admin user: ", err)
	}

	tokens := token.NewService([]byte(cfg.TokenSecret))

	authHandler := auth.NewHandler(userStore, tokens)
	userHandler := users.NewHandler(userStore)
	missionHandler := missions.NewHandler(missionStore)
	suggestionHandler := suggestions.NewHandler(suggestionStore, userStore)

	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(middleware.CORSMiddleware(cfg.AllowedOrigins))

	r.Get("/api/health", HealthHandler)
	r.Mount("/api/auth", authHandler.SetupRoutes())
	r.Mount("/api/user", userHandler.SetupProfileRoutes(tokens))
	r.Mount("/api/users", userHandler.SetupRoutes(tokens))
	r.Mount("/api/missions", missionHandler.SetupRoutes(tokens))
	r.Mount("/api/suggestions", suggestionHandler.SetupRoutes(tokens))

	log.Printf("Server listening on port :%s...", cfg.Port)
	if err := http.ListenAndServe("0.0.0.0:"+cfg.Port, r); err != nil {
		log.Fatal("Server stopped: ", err)
	}
}
