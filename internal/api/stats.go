package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/vovakirdan/tui-pong/internal/storage"
)

// StatsHandler groups dependencies.
type StatsHandler struct {
	store *storage.Store
}

func NewStatsHandler(store *storage.Store) *StatsHandler {
	return &StatsHandler{store: store}
}

// Routes registers routes for user statistics.
func (h *StatsHandler) Routes(r chi.Router) {
	r.Get("/stats", h.List)
	r.Get("/stats/{userID}", h.Get)
	r.Post("/stats/{userID}", h.Put)
	r.Delete("/stats/{userID}", h.Reset)
}

// List GET /stats
func (h *StatsHandler) List(w http.ResponseWriter, r *http.Request) {
	all, err := h.store.AllStats(r.Context())
	if err != nil {
		storeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, all)
}

// Get GET /stats/{userID}
func (h *StatsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "userID")
	if !ok {
		errorJSON(w, http.StatusBadRequest, "invalid user id")
		return
	}
	st, err := h.store.Stats(r.Context(), id)
	if err != nil {
		storeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, st)
}

// Put POST /stats/{userID} replaces the user's counters.
func (h *StatsHandler) Put(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "userID")
	if !ok {
		errorJSON(w, http.StatusBadRequest, "invalid user id")
		return
	}
	var payload storage.UserStats
	if err := decodeJSONStrict(r, &payload); err != nil {
		errorJSON(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	if payload.UserID != 0 && payload.UserID != id {
		errorJSON(w, http.StatusBadRequest, "user_id does not match path")
		return
	}
	payload.UserID = id

	if err := h.store.UpsertStats(r.Context(), payload); err != nil {
		storeError(w, err)
		return
	}
	st, err := h.store.Stats(r.Context(), id)
	if err != nil {
		storeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, st)
}

// Reset DELETE /stats/{userID}
func (h *StatsHandler) Reset(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "userID")
	if !ok {
		errorJSON(w, http.StatusBadRequest, "invalid user id")
		return
	}
	if err := h.store.ResetStats(r.Context(), id); err != nil {
		storeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
