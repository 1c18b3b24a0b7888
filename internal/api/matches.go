package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/vovakirdan/tui-pong/internal/multiplayer"
	"github.com/vovakirdan/tui-pong/internal/storage"
)

// MatchHandler groups dependencies.
type MatchHandler struct {
	store *storage.Store
}

func NewMatchHandler(store *storage.Store) *MatchHandler {
	return &MatchHandler{store: store}
}

// Routes registers routes for matches.
func (h *MatchHandler) Routes(r chi.Router) {
	r.Post("/matches", h.Create)
	r.Get("/matches", h.List)
	r.Get("/matches/{id}", h.Get)
}

// Create POST /matches
func (h *MatchHandler) Create(w http.ResponseWriter, r *http.Request) {
	var rec multiplayer.MatchRecord
	if err := decodeJSONStrict(r, &rec); err != nil {
		errorJSON(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	id, err := h.store.SaveMatchResult(r.Context(), rec)
	if err != nil {
		storeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, createdResponse{ID: id})
}

// List GET /matches?limit=20&user_id=7
func (h *MatchHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := clamp(parseInt(r.URL.Query().Get("limit"), 20), 1, 100)

	var (
		matches []storage.Match
		err     error
	)
	if userID := parseInt(r.URL.Query().Get("user_id"), 0); userID > 0 {
		matches, err = h.store.UserMatches(r.Context(), int64(userID), limit)
	} else {
		matches, err = h.store.RecentMatches(r.Context(), limit)
	}
	if err != nil {
		storeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, matches)
}

// Get GET /matches/{id}
func (h *MatchHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "id")
	if !ok {
		errorJSON(w, http.StatusBadRequest, "invalid id")
		return
	}
	m, err := h.store.Match(r.Context(), id)
	if err != nil {
		storeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, m)
}
