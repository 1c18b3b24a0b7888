package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/vovakirdan/tui-pong/internal/storage"
)

// UserHandler groups dependencies.
type UserHandler struct {
	store *storage.Store
}

func NewUserHandler(store *storage.Store) *UserHandler {
	return &UserHandler{store: store}
}

type createUserRequest struct {
	Nick   string `json:"nick"`
	Avatar string `json:"avatar"`
}

// Routes registers routes for users.
func (h *UserHandler) Routes(r chi.Router) {
	r.Get("/users", h.List)
	r.Post("/users", h.Create)
	r.Get("/users/{id}", h.Get)
	r.Delete("/users/{id}", h.Delete)
}

// List GET /users, or GET /users?nick=ann for an exact lookup.
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	if nick := r.URL.Query().Get("nick"); nick != "" {
		u, err := h.store.UserByNick(r.Context(), nick)
		if err != nil {
			storeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, []storage.User{u})
		return
	}

	users, err := h.store.Users(r.Context())
	if err != nil {
		storeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, users)
}

// Create POST /users
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var payload createUserRequest
	if err := decodeJSONStrict(r, &payload); err != nil {
		errorJSON(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	u, err := h.store.CreateUser(r.Context(), payload.Nick, payload.Avatar)
	if err != nil {
		storeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, u)
}

// Get GET /users/{id}
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "id")
	if !ok {
		errorJSON(w, http.StatusBadRequest, "invalid id")
		return
	}
	u, err := h.store.User(r.Context(), id)
	if err != nil {
		storeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, u)
}

// Delete DELETE /users/{id}
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "id")
	if !ok {
		errorJSON(w, http.StatusBadRequest, "invalid id")
		return
	}
	if err := h.store.DeleteUser(r.Context(), id); err != nil {
		storeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
