package server

import (
	"errors"
	"fmt"
	"log"
	"sort"
	"sync"

	"github.com/google/uuid"
)

// ErrSessionNotFound is returned for an id no session is registered under.
var ErrSessionNotFound = errors.New("session not found")

// SessionManager manages all active sessions.
type SessionManager struct {
	sessions      map[string]*Session
	sessionsMutex sync.RWMutex
	defaults      SessionConfig
}

// NewSessionManager creates an empty manager. New sessions use defaults.
func NewSessionManager(defaults SessionConfig) *SessionManager {
	return &SessionManager{
		sessions: make(map[string]*Session),
		defaults: defaults,
	}
}

// Create starts a session under a fresh id.
func (sm *SessionManager) Create() *Session {
	return sm.CreateWith(sm.defaults)
}

// CreateWith starts a session under a fresh id with its own configuration.
func (sm *SessionManager) CreateWith(cfg SessionConfig) *Session {
	id := uuid.NewString()
	s := NewSession(id, cfg)

	sm.sessionsMutex.Lock()
	sm.sessions[id] = s
	sm.sessionsMutex.Unlock()

	log.Printf("Created session %s", id)
	return s
}

// Get returns the session registered under id.
func (sm *SessionManager) Get(id string) (*Session, error) {
	sm.sessionsMutex.RLock()
	defer sm.sessionsMutex.RUnlock()
	s, exists := sm.sessions[id]
	if !exists {
		return nil, fmt.Errorf("session %q: %w", id, ErrSessionNotFound)
	}
	return s, nil
}

// List returns every session, oldest first.
func (sm *SessionManager) List() []*Session {
	sm.sessionsMutex.RLock()
	out := make([]*Session, 0, len(sm.sessions))
	for _, s := range sm.sessions {
		out = append(out, s)
	}
	sm.sessionsMutex.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}

// Close stops and forgets the session registered under id.
func (sm *SessionManager) Close(id string) error {
	sm.sessionsMutex.Lock()
	s, exists := sm.sessions[id]
	delete(sm.sessions, id)
	sm.sessionsMutex.Unlock()

	if !exists {
		return fmt.Errorf("session %q: %w", id, ErrSessionNotFound)
	}
	s.Close()
	return nil
}

// CloseAll gracefully shuts down all sessions.
func (sm *SessionManager) CloseAll() {
	sm.sessionsMutex.Lock()
	defer sm.sessionsMutex.Unlock()
	for id, s := range sm.sessions {
		s.Close()
		delete(sm.sessions, id)
	}
	log.Println("All sessions closed.")
}
