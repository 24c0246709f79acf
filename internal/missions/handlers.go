package missions

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
)

var errMissionNotFound = errors.New("mission not found")

// Handler serves the mission routes over an injected collection.
type Handler struct {
	missions *store.Collection[Mission]
}

func NewHandler(missions *store.Collection[Mission]) *Handler {
	return &Handler{missions: missions}
}

// ListHandler returns all missions. Visible to any authenticated member.
func (h *Handler) ListHandler(w http.ResponseWriter, r *http.Request) {
	records, err := h.missions.Load()
	if err != nil {
		log.Printf("[missions] list: %v", err)
		httputil.RespondError(w, http.StatusInternalServerError, "Server error")
		return
	}

	httputil.RespondJSON(w, http.StatusOK, records)
}

// CreateHandler creates a mission. Title and description are required;
// required rank and status default.
func (h *Handler) CreateHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Title        string `json:"title"`
		Description  string `json:"description"`
		RequiredRank string `json:"requiredRank"`
		Status       string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request format")
		return
	}

	if req.Title == "" || req.Description == "" {
		httputil.RespondError(w, http.StatusBadRequest, "Title and description required")
		return
	}

	if req.RequiredRank == "" {
		req.RequiredRank = DefaultRequiredRank
	}
	if req.Status == "" {
		req.Status = DefaultStatus
	}

	var created Mission
	err := h.missions.Update(func(records []Mission) ([]Mission, error) {
		created = Mission{
			ID:           store.NextID(records, func(m Mission) int { return m.ID }),
			Title:        req.Title,
			Description:  req.Description,
			RequiredRank: req.RequiredRank,
			Status:       req.Status,
			CreatedAt:    time.Now().UTC(),
		}
		return append(records, created), nil
	})
	if err != nil {
		log.Printf("[missions] create: %v", err)
		httputil.RespondError(w, http.StatusInternalServerError, "Server error")
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, created)
}

// UpdateHandler overwrites the mutable fields of a mission. Omitted fields
// are written as their zero values.
func (h *Handler) UpdateHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid mission ID")
		return
	}

	var req struct {
		Title        string `json:"title"`
		Description  string `json:"description"`
		RequiredRank string `json:"requiredRank"`
		Status       string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request format")
		return
	}

	var updated Mission
	err = h.missions.Update(func(records []Mission) ([]Mission, error) {
		for i, m := range records {
			if m.ID != id {
				continue
			}
			m.Title = req.Title
			m.Description = req.Description
			m.RequiredRank = req.RequiredRank
			m.Status = req.Status
			m.UpdatedAt = time.Now().UTC()
			records[i] = m
			updated = m
			return records, nil
		}
		return nil, errMissionNotFound
	})
	if errors.Is(err, errMissionNotFound) {
		httputil.RespondError(w, http.StatusNotFound, "Mission not found")
		return
	}
	if err != nil {
		log.Printf("[missions] update: %v", err)
		httputil.RespondError(w, http.StatusInternalServerError, "Server error")
		return
	}

	httputil.RespondJSON(w, http.StatusOK, updated)
}

// DeleteHandler removes a mission by id.
func (h *Handler) DeleteHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid mission ID")
		return
	}

	err = h.missions.Update(func(records []Mission) ([]Mission, error) {
		remaining := records[:0:0]
		for _, m := range records {
			if m.ID != id {
				remaining = append(remaining, m)
			}
		}
		if len(remaining) == len(records) {
			return nil, errMissionNotFound
		}
		return remaining, nil
	})
	if errors.Is(err, errMissionNotFound) {
		httputil.RespondError(w, http.StatusNotFound, "Mission not found")
		return
	}
	if err != nil {
		log.Printf("[missions] delete: %v", err)
		httputil.RespondError(w, http.StatusInternalServerError, "Server error")
		return
	}

	httputil.RespondMessage(w, "Mission deleted successfully")
}
