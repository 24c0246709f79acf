package suggestions

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/CovertCollective/CC-Backend/internal/httputil"
	"github.com/CovertCollective/CC-Backend/internal/store"
	"github.com/CovertCollective/CC-Backend/internal/users"
	"github.com/CovertCollective/CC-Backend/internal/utils"
)

var errSuggestionNotFound = errors.New("suggestion not found")

// Handler serves the suggestion routes. The user collection is consulted on
// submission to denormalize the author's codename.
type Handler struct {
	suggestions *store.Collection[Suggestion]
	users       *store.Collection[users.User]
}

func NewHandler(suggestions *store.Collection[Suggestion], userStore *store.Collection[users.User]) *Handler {
	return &Handler{suggestions: suggestions, users: userStore}
}

// ListHandler returns all suggestions. Admin-only.
func (h *Handler) ListHandler(w http.ResponseWriter, r *http.Request) {
	records, err := h.suggestions.Load()
	if err != nil {
		log.Printf("[suggestions] list: %v", err)
		httputil.RespondError(w, http.StatusInternalServerError, "Server error")
		return
	}

	httputil.RespondJSON(w, http.StatusOK, records)
}

// CreateHandler records a suggestion from the authenticated caller.
func (h *Handler) CreateHandler(w http.ResponseWriter, r *http.Request) {
	claims, ok := utils.GetClaimsFromContext(r.Context())
	if !ok {
		httputil.RespondError(w, http.StatusUnauthorized, "Access denied. No token provided.")
		return
	}

	var req struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request format")
		return
	}

	if req.Text == "" {
		httputil.RespondError(w, http.StatusBadRequest, "Suggestion text required")
		return
	}

	author, err := h.findAuthor(claims.ID)
	if err != nil {
		log.Printf("[suggestions] create: %v", err)
		httputil.RespondError(w, http.StatusInternalServerError, "Server error")
		return
	}
	if author == nil {
		// The token outlived its user record.
		httputil.RespondError(w, http.StatusNotFound, "User not found")
		return
	}

	var created Suggestion
	err = h.suggestions.Update(func(records []Suggestion) ([]Suggestion, error) {
		now := time.Now().UTC()
		created = Suggestion{
			ID:        store.NextID(records, func(s Suggestion) int { return s.ID }),
			Text:      req.Text,
			From:      author.Codename,
			UserID:    author.ID,
			Date:      now,
			CreatedAt: now,
		}
		return append(records, created), nil
	})
	if err != nil {
		log.Printf("[suggestions] create: %v", err)
		httputil.RespondError(w, http.StatusInternalServerError, "Server error")
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, created)
}

// DeleteHandler removes a suggestion by id. Admin-only.
func (h *Handler) DeleteHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid suggestion ID")
		return
	}

	err = h.suggestions.Update(func(records []Suggestion) ([]Suggestion, error) {
		remaining := records[:0:0]
		for _, s := range records {
			if s.ID != id {
				remaining = append(remaining, s)
			}
		}
		if len(remaining) == len(records) {
			return nil, errSuggestionNotFound
		}
		return remaining, nil
	})
	if errors.Is(err, errSuggestionNotFound) {
		httputil.RespondError(w, http.StatusNotFound, "Suggestion not found")
		return
	}
	if err != nil {
		log.Printf("[suggestions] delete: %v", err)
		httputil.RespondError(w, http.StatusInternalServerError, "Server error")
		return
	}

	httputil.RespondMessage(w, "Suggestion deleted successfully")
}

func (h *Handler) findAuthor(id int) (*users.User, error) {
	records, err := h.users.Load()
	if err != nil {
		return nil, err
	}
	for _, u := range records {
		if u.ID == id {
			return &u, nil
		}
	}
	return nil, nil
}
