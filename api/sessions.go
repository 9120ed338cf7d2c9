package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"footballers-server/server"
)

// infoTimeout bounds how long a handler waits for a busy session loop.
const infoTimeout = 2 * time.Second

// SessionHandler exposes session administration.
type SessionHandler struct {
	sessions *server.SessionManager
}

func NewSessionHandler(sm *server.SessionManager) *SessionHandler {
	return &SessionHandler{sessions: sm}
}

// Routes registers session routes
func (h *SessionHandler) Routes(r chi.Router) {
	r.Get("/sessions", h.List)
	r.Post("/sessions", h.Create)
	r.Get("/sessions/{id}", h.Get)
	r.Delete("/sessions/{id}", h.Delete)
}

// List returns a summary of every session, oldest first.
func (h *SessionHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), infoTimeout)
	defer cancel()

	infos := make([]server.SessionInfo, 0)
	for _, s := range h.sessions.List() {
		info, err := s.Info(ctx)
		if err != nil {
			continue // closed while listing
		}
		infos = append(infos, info)
	}
	writeJSON(w, http.StatusOK, infos)
}

// Create starts a new session.
func (h *SessionHandler) Create(w http.ResponseWriter, r *http.Request) {
	s := h.sessions.Create()
	ctx, cancel := context.WithTimeout(r.Context(), infoTimeout)
	defer cancel()

	info, err := s.Info(ctx)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusCreated, info)
}

// Get returns one session summary.
func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	s, err := h.sessions.Get(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusNotFound, err)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), infoTimeout)
	defer cancel()

	info, err := s.Info(ctx)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, server.ErrSessionClosed) {
			status = http.StatusGone
		}
		writeError(w, status, err)
		return
	}
	writeJSON(w, http.StatusOK, info)
}

// Delete stops a session. Its peers are disconnected on their next input.
func (h *SessionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.Close(chi.URLParam(r, "id")); err != nil {
		writeError(w, http.StatusNotFound, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
