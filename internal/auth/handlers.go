package auth

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/CovertCollective/CC-Backend/internal/credentials"
	"github.com/CovertCollective/CC-Backend/internal/httputil"
	"github.com/CovertCollective/CC-Backend/internal/store"
	"github.com/CovertCollective/CC-Backend/internal/token"
	"github.com/CovertCollective/CC-Backend/internal/users"
)

// Handler serves the authentication routes.
type Handler struct {
	users  *store.Collection[users.User]
	tokens *token.Service
}

func NewHandler(userStore *store.Collection[users.User], tokens *token.Service) *Handler {
	return &Handler{users: userStore, tokens: tokens}
}

type loginResponse struct {
	Token string     `json:"token"`
	User  users.User `json:"user"`
}

// LoginHandler authenticates an email/password pair. An unknown email is
// auto-registered as a fresh recruit; a known email must verify against the
// stored digest. Both branches return a session token and the user record
// with the digest stripped.
func (h *Handler) LoginHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request format")
		return
	}

	if req.Email == "" || req.Password == "" {
		httputil.RespondError(w, http.StatusBadRequest, "Email and password required")
		return
	}

	records, err := h.users.Load()
	if err != nil {
		log.Printf("[auth] login: %v", err)
		httputil.RespondError(w, http.StatusInternalServerError, "Server error")
		return
	}

	var user users.User
	found := false
	for _, u := range records {
		if u.Email == req.Email {
			user = u
			found = true
			break
		}
	}

	if !found {
		user, err = h.register(req.Email, req.Password)
		if err != nil {
			log.Printf("[auth] auto-register: %v", err)
			httputil.RespondError(w, http.StatusInternalServerError, "Server error")
			return
		}
	}

	// Also covers the race where a concurrent login registered the email
	// first and register returned that record instead of a fresh one.
	if !credentials.Verify(req.Password, user.Password) {
		httputil.RespondError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	signed, err := h.tokens.Issue(user.ID, user.Email, user.IsAdmin)
	if err != nil {
		log.Printf("[auth] issue token: %v", err)
		httputil.RespondError(w, http.StatusInternalServerError, "Server error")
		return
	}

	httputil.RespondJSON(w, http.StatusOK, loginResponse{
		Token: signed,
		User:  user.Public(),
	})
}

// register creates a recruit for an email that has no existing record. The
// email is re-checked under the collection lock in case a concurrent login
// won the race.
func (h *Handler) register(email, password string) (users.User, error) {
	digest, err := credentials.Hash(password)
	if err != nil {
		return users.User{}, err
	}

	var user users.User
	err = h.users.Update(func(records []users.User) ([]users.User, error) {
		for _, u := range records {
			if u.Email == email {
				user = u
				return records, nil
			}
		}

		id := store.NextID(records, func(u users.User) int { return u.ID })
		user = users.NewRecruit(id, email, digest)
		return append(records, user), nil
	})
	if err != nil {
		return users.User{}, err
	}
	return user, nil
}
