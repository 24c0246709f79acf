package users

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/CovertCollective/CC-Backend/internal/credentials"
	"github.com/CovertCollective/CC-Backend/internal/httputil"
	"github.com/CovertCollective/CC-Backend/internal/store"
	"github.com/CovertCollective/CC-Backend/internal/utils"
)

var (
	errUserExists   = errors.New("user already exists")
	errUserNotFound = errors.New("user not found")
)

// Handler serves the user management routes over an injected collection.
type Handler struct {
	users *store.Collection[User]
}

func NewHandler(users *store.Collection[User]) *Handler {
	return &Handler{users: users}
}

// ProfileHandler returns the authenticated caller's own record.
func (h *Handler) ProfileHandler(w http.ResponseWriter, r *http.Request) {
	claims, ok := utils.GetClaimsFromContext(r.Context())
	if !ok {
		httputil.RespondError(w, http.StatusUnauthorized, "Access denied. No token provided.")
		return
	}

	records, err := h.users.Load()
	if err != nil {
		log.Printf("[users] profile: %v", err)
		httputil.RespondError(w, http.StatusInternalServerError, "Server error")
		return
	}

	for _, u := range records {
		if u.ID == claims.ID {
			httputil.RespondJSON(w, http.StatusOK, u.Public())
			return
		}
	}
	httputil.RespondError(w, http.StatusNotFound, "User not found")
}

// ListHandler returns all users with password digests stripped.
func (h *Handler) ListHandler(w http.ResponseWriter, r *http.Request) {
	records, err := h.users.Load()
	if err != nil {
		log.Printf("[users] list: %v", err)
		httputil.RespondError(w, http.StatusInternalServerError, "Server error")
		return
	}

	httputil.RespondJSON(w, http.StatusOK, PublicAll(records))
}

// CreateHandler creates a user with an explicit email, password and
// codename. Duplicate emails are rejected.
func (h *Handler) CreateHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email     string `json:"email"`
		Password  string `json:"password"`
		Codename  string `json:"codename"`
		Rank      string `json:"rank"`
		GoatLevel int    `json:"goatLevel"`
		Rizz      int    `json:"rizz"`
		IsAdmin   bool   `json:"isAdmin"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request format")
		return
	}

	if req.Email == "" || req.Password == "" || req.Codename == "" {
		httputil.RespondError(w, http.StatusBadRequest, "Missing required fields")
		return
	}

	digest, err := credentials.Hash(req.Password)
	if err != nil {
		log.Printf("[users] create: hash password: %v", err)
		httputil.RespondError(w, http.StatusInternalServerError, "Server error")
		return
	}

	if req.Rank == "" {
		req.Rank = DefaultRank
	}
	if req.GoatLevel == 0 {
		req.GoatLevel = 50
	}
	if req.Rizz == 0 {
		req.Rizz = 50
	}

	var created User
	err = h.users.Update(func(records []User) ([]User, error) {
		for _, u := range records {
			if u.Email == req.Email {
				return nil, errUserExists
			}
		}

		now := time.Now().UTC()
		created = User{
			ID:        store.NextID(records, func(u User) int { return u.ID }),
			Email:     req.Email,
			Password:  digest,
			Codename:  req.Codename,
			Rank:      req.Rank,
			GoatLevel: req.GoatLevel,
			Rizz:      req.Rizz,
			Status:    DefaultStatus,
			IsAdmin:   req.IsAdmin,
			JoinDate:  now,
			CreatedAt: now,
		}
		return append(records, created), nil
	})
	if errors.Is(err, errUserExists) {
		httputil.RespondError(w, http.StatusBadRequest, "User already exists")
		return
	}
	if err != nil {
		log.Printf("[users] create: %v", err)
		httputil.RespondError(w, http.StatusInternalServerError, "Server error")
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, created.Public())
}

// UpdateHandler overwrites the mutable fields of a user. Omitted fields are
// written as their zero values; email, password and creation timestamps are
// untouched.
func (h *Handler) UpdateHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	var req struct {
		Codename  string `json:"codename"`
		Rank      string `json:"rank"`
		GoatLevel int    `json:"goatLevel"`
		Rizz      int    `json:"rizz"`
		Status    string `json:"status"`
		IsAdmin   bool   `json:"isAdmin"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request format")
		return
	}

	var updated User
	err = h.users.Update(func(records []User) ([]User, error) {
		for i, u := range records {
			if u.ID != id {
				continue
			}
			u.Codename = req.Codename
			u.Rank = req.Rank
			u.GoatLevel = req.GoatLevel
			u.Rizz = req.Rizz
			u.Status = req.Status
			u.IsAdmin = req.IsAdmin
			u.UpdatedAt = time.Now().UTC()
			records[i] = u
			updated = u
			return records, nil
		}
		return nil, errUserNotFound
	})
	if errors.Is(err, errUserNotFound) {
		httputil.RespondError(w, http.StatusNotFound, "User not found")
		return
	}
	if err != nil {
		log.Printf("[users] update: %v", err)
		httputil.RespondError(w, http.StatusInternalServerError, "Server error")
		return
	}

	httputil.RespondJSON(w, http.StatusOK, updated.Public())
}

// DeleteHandler removes a user by id. Hard delete; the id is never reused.
func (h *Handler) DeleteHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	err = h.users.Update(func(records []User) ([]User, error) {
		remaining := records[:0:0]
		for _, u := range records {
			if u.ID != id {
				remaining = append(remaining, u)
			}
		}
		if len(remaining) == len(records) {
			return nil, errUserNotFound
		}
		return remaining, nil
	})
	if errors.Is(err, errUserNotFound) {
		httputil.RespondError(w, http.StatusNotFound, "User not found")
		return
	}
	if err != nil {
		log.Printf("[users] delete: %v", err)
		httputil.RespondError(w, http.StatusInternalServerError, "Server error")
		return
	}

	httputil.RespondMessage(w, "User deleted successfully")
}
